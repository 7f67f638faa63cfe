package store

import (
	"context"
	"time"
)

// AuditEntry is an append-only record of an administrative action.
type AuditEntry struct {
	ID           string         `json:"id"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resourceType"`
	ResourceID   string         `json:"resourceId"`
	Actor        string         `json:"actor"`
	Details      map[string]any `json:"details,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// CreateAudit appends one audit record. Audit rows are never updated or
// deleted.
func (s *Store) CreateAudit(ctx context.Context, a *AuditEntry) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO audit_logs (id, action, resource_type, resource_id, actor, details)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.Action, a.ResourceType, a.ResourceID, a.Actor, a.Details,
	)
	return mapErr("create audit", err)
}

// ListAuditByResource returns the audit trail for one resource, newest
// first.
func (s *Store) ListAuditByResource(ctx context.Context, resourceType, resourceID string, limit int) ([]*AuditEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, action, resource_type, resource_id, actor, details, created_at
		FROM audit_logs
		WHERE resource_type = $1 AND resource_id = $2
		ORDER BY created_at DESC LIMIT $3`,
		resourceType, resourceID, limit)
	if err != nil {
		return nil, mapErr("list audit", err)
	}
	defer rows.Close()

	var entries []*AuditEntry
	for rows.Next() {
		var a AuditEntry
		if err := rows.Scan(&a.ID, &a.Action, &a.ResourceType, &a.ResourceID, &a.Actor, &a.Details, &a.CreatedAt); err != nil {
			return nil, mapErr("scan audit", err)
		}
		entries = append(entries, &a)
	}
	return entries, mapErr("list audit", rows.Err())
}
