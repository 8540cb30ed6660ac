package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"finledger/internal/core/types"
)

// dateLayout matches the period line of the rendered document.
const dateLayout = "Mon Jan 02 2006"

// ArtifactWriter renders a completed report's summary into a PDF document
// under the reports directory.
type ArtifactWriter struct {
	dir string
}

// NewArtifactWriter creates a writer rooted at dir. The directory is
// created lazily on first render.
func NewArtifactWriter(dir string) *ArtifactWriter {
	return &ArtifactWriter{dir: dir}
}

// Render writes a minimal document with the report title, the resolved
// period and one line per summary entry. The file name is
// "{type with spaces replaced by underscores}_{epoch-millis}.pdf" and the
// returned URL is "/reports/{fileName}".
func (w *ArtifactWriter) Render(typ Type, rng Range, summary map[string]types.Money) (fileName, fileURL string, err error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create reports dir: %w", err)
	}

	fileName = fmt.Sprintf("%s_%d.pdf",
		strings.ReplaceAll(string(typ), " ", "_"),
		time.Now().UnixMilli(),
	)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, fmt.Sprintf("%s Report", typ), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Period: %s - %s",
		rng.StartDate.Format(dateLayout), rng.EndDate.Format(dateLayout)),
		"", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.CellFormat(0, 8, "Summary:", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// Map iteration order is random; sort for a stable document.
	keys := make([]string, 0, len(summary))
	for k := range summary {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		pdf.CellFormat(0, 8, fmt.Sprintf("%s: %s", k, summary[k].String()), "", 1, "L", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filepath.Join(w.dir, fileName)); err != nil {
		return "", "", fmt.Errorf("write report pdf: %w", err)
	}

	return fileName, "/reports/" + fileName, nil
}

// Path resolves a stored file name to its on-disk location.
func (w *ArtifactWriter) Path(fileName string) string {
	return filepath.Join(w.dir, fileName)
}

// Exists reports whether the artifact is still present on disk.
func (w *ArtifactWriter) Exists(fileName string) bool {
	info, err := os.Stat(w.Path(fileName))
	return err == nil && !info.IsDir()
}
