package report

import (
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finledger/internal/core/types"
)

func TestArtifactWriter_Render(t *testing.T) {
	w := NewArtifactWriter(t.TempDir())

	rng := Range{
		StartDate: date(2025, time.January, 1),
		EndDate:   time.Date(2025, time.March, 31, 23, 59, 59, 0, time.UTC),
	}
	summary := map[string]types.Money{
		"totalIncome":  types.MustMoney("1000"),
		"totalExpense": types.MustMoney("400"),
		"netIncome":    types.MustMoney("600"),
	}

	fileName, fileURL, err := w.Render(TypeIncomeStatement, rng, summary)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^Income_Statement_\d+\.pdf$`), fileName)
	assert.Equal(t, "/reports/"+fileName, fileURL)

	assert.True(t, w.Exists(fileName))
	info, err := os.Stat(w.Path(fileName))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestArtifactWriter_CreatesDirectory(t *testing.T) {
	dir := t.TempDir() + "/nested/reports"
	w := NewArtifactWriter(dir)

	_, _, err := w.Render(TypeCashFlow, Range{StartDate: date(2025, time.May, 1), EndDate: date(2025, time.May, 31)}, nil)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestArtifactWriter_Exists(t *testing.T) {
	w := NewArtifactWriter(t.TempDir())
	assert.False(t, w.Exists("Tax_Summary_123.pdf"))
}
