package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	"finledger/internal/core/id"
	"finledger/pkg/logger"
)

// CompressionAlgo specifies the compression algorithm used for a payload.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// AuditEntry is one recorded lifecycle event.
type AuditEntry struct {
	ID                id.ID           `db:"id"`
	EntityType        string          `db:"entity_type"`
	EntityID          id.ID           `db:"entity_id"`
	Action            string          `db:"action"`
	UserID            string          `db:"user_id"`
	Payload           json.RawMessage `db:"payload"`
	PayloadCompressed []byte          `db:"payload_compressed"`
	CompressionAlgo   CompressionAlgo `db:"compression_algo"`
	CreatedAt         time.Time       `db:"created_at"`
}

// AuditService records entity lifecycle events. Large payloads (report
// data can carry every matched record) are zstd-compressed before storage.
// Recording is best-effort: failures are logged and never propagate into
// the pipeline that triggered them.
type AuditService struct {
	txManager         *TxManager
	entityType        string
	encoder           *zstd.Encoder
	compressThreshold int // bytes
}

// NewAuditService creates an audit service for one entity type.
func NewAuditService(txManager *TxManager, entityType string) (*AuditService, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	return &AuditService{
		txManager:         txManager,
		entityType:        entityType,
		encoder:           encoder,
		compressThreshold: 10 * 1024,
	}, nil
}

// Record persists one audit entry. payload may be nil.
func (s *AuditService) Record(ctx context.Context, action string, entityID id.ID, userID string, payload any) {
	entry := AuditEntry{
		ID:              id.New(),
		EntityType:      s.entityType,
		EntityID:        entityID,
		Action:          action,
		UserID:          userID,
		CompressionAlgo: CompressionNone,
		CreatedAt:       time.Now(),
	}

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			logger.Warn(ctx, "audit payload marshal failed", "error", err, "action", action)
			return
		}
		if len(raw) >= s.compressThreshold {
			entry.PayloadCompressed = s.encoder.EncodeAll(raw, nil)
			entry.CompressionAlgo = CompressionZstd
		} else {
			entry.Payload = raw
		}
	}

	const q = `
		INSERT INTO sys_audit_log
			(id, entity_type, entity_id, action, user_id, payload, payload_compressed, compression_algo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.txManager.GetQuerier(ctx).Exec(ctx, q,
		entry.ID, entry.EntityType, entry.EntityID, entry.Action, entry.UserID,
		entry.Payload, entry.PayloadCompressed, entry.CompressionAlgo, entry.CreatedAt,
	)
	if err != nil {
		logger.Warn(ctx, "audit insert failed", "error", err, "action", action, "entity_id", entityID.String())
	}
}
