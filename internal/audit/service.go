package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/noah-isme/sales-commission/internal/common"
	dbgen "github.com/noah-isme/sales-commission/internal/db/gen"
)

// Store defines the database operations required for auditing.
type Store interface {
	InsertAuditLog(ctx context.Context, arg dbgen.InsertAuditLogParams) error
	ListAuditLogs(ctx context.Context, arg dbgen.ListAuditLogsParams) ([]dbgen.AuditLog, error)
	CountAuditLogs(ctx context.Context, resourceType pgtype.Text) (int64, error)
}

// Entry is one administrative action.
type Entry struct {
	Actor        string
	Action       string
	ResourceType string
	ResourceID   string
	Method       string
	Path         string
	Status       int
	IP           string
	RequestID    string
	Metadata     map[string]any
}

// Log is a stored entry.
type Log struct {
	ID           uuid.UUID       `json:"id"`
	Actor        string          `json:"actor,omitempty"`
	Action       string          `json:"action"`
	ResourceType string          `json:"resource_type"`
	ResourceID   string          `json:"resource_id,omitempty"`
	Method       string          `json:"method"`
	Path         string          `json:"path"`
	Status       int             `json:"status"`
	IP           string          `json:"ip,omitempty"`
	RequestID    string          `json:"request_id,omitempty"`
	Metadata     json.RawMessage `json:"metadata,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Service persists the audit trail of factor, payment-status and queue changes.
type Service struct {
	Store   Store
	Enabled bool
}

// Record stores e when auditing is enabled.
func (s Service) Record(ctx context.Context, e Entry) error {
	if !s.Enabled {
		return nil
	}
	if s.Store == nil {
		return errors.New("audit: store not configured")
	}
	if strings.TrimSpace(e.Method) == "" || strings.TrimSpace(e.Path) == "" {
		return errors.New("audit: method and path are required")
	}
	var metadata []byte
	if len(e.Metadata) > 0 {
		raw, err := json.Marshal(e.Metadata)
		if err != nil {
			return fmt.Errorf("audit: encode metadata: %w", err)
		}
		metadata = raw
	}
	status := e.Status
	if status == 0 {
		status = 200
	}
	return s.Store.InsertAuditLog(ctx, dbgen.InsertAuditLogParams{
		Actor:        text(e.Actor),
		Action:       strings.TrimSpace(e.Action),
		ResourceType: valueOr(e.ResourceType, "unknown"),
		ResourceID:   text(e.ResourceID),
		Method:       strings.ToUpper(e.Method),
		Path:         e.Path,
		Status:       int32(status),
		Ip:           text(e.IP),
		RequestID:    text(e.RequestID),
		Metadata:     metadata,
	})
}

// List returns entries newest first, optionally restricted to one resource type.
func (s Service) List(ctx context.Context, resourceType string, limit, offset int) ([]Log, int64, error) {
	if s.Store == nil {
		return nil, 0, errors.New("audit: store not configured")
	}
	filter := text(resourceType)
	total, err := s.Store.CountAuditLogs(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count audit logs: %w", err)
	}
	rows, err := s.Store.ListAuditLogs(ctx, dbgen.ListAuditLogsParams{
		ResourceType: filter,
		Limit:        int32(limit),
		Offset:       int32(offset),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}
	out := make([]Log, 0, len(rows))
	for _, r := range rows {
		out = append(out, Log{
			ID:           common.FromPgUUID(r.ID),
			Actor:        r.Actor.String,
			Action:       r.Action,
			ResourceType: r.ResourceType,
			ResourceID:   r.ResourceID.String,
			Method:       r.Method,
			Path:         r.Path,
			Status:       int(r.Status),
			IP:           r.Ip.String,
			RequestID:    r.RequestID.String,
			Metadata:     json.RawMessage(r.Metadata),
			CreatedAt:    r.CreatedAt.Time,
		})
	}
	return out, total, nil
}

func text(v string) pgtype.Text {
	v = strings.TrimSpace(v)
	if v == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: v, Valid: true}
}

func valueOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return strings.TrimSpace(v)
}
