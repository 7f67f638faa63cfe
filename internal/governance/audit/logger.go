// Package audit implements the audit logging service.
//
// Audit logs are append-only compliance records. Hard-delete is NOT allowed.
package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sidyfoba/solarcom-console/internal/pkg/logger"
	"github.com/sidyfoba/solarcom-console/internal/pkg/worker"
	"github.com/sidyfoba/solarcom-console/internal/store"
)

// Recorder persists audit entries.
type Recorder interface {
	CreateAudit(ctx context.Context, a *store.AuditEntry) error
}

// Logger writes audit records to the database. With pools attached the
// write is detached from the request context, so a client disconnect
// cannot lose the record of a mutation that already happened.
type Logger struct {
	recorder Recorder
	pools    *worker.Pools
}

// NewLogger creates a new audit Logger. pools may be nil; writes are then
// synchronous on the caller's context.
func NewLogger(recorder Recorder, pools *worker.Pools) *Logger {
	return &Logger{recorder: recorder, pools: pools}
}

// LogAction records an auditable action.
func (l *Logger) LogAction(ctx context.Context, action, resourceType, resourceID, actor string, details map[string]any) error {
	entry := &store.AuditEntry{
		ID:           generateAuditID(),
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Actor:        actor,
		Details:      details,
	}

	if l.pools != nil {
		if err := l.pools.SubmitDetached("general", func(ctx context.Context) {
			if err := l.recorder.CreateAudit(ctx, entry); err != nil {
				logWriteFailure(entry, err)
			}
		}); err != nil {
			logWriteFailure(entry, err)
			return fmt.Errorf("submit audit write: %w", err)
		}
		return nil
	}

	if err := l.recorder.CreateAudit(ctx, entry); err != nil {
		logWriteFailure(entry, err)
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

func logWriteFailure(entry *store.AuditEntry, err error) {
	logger.Error("Failed to write audit log",
		zap.String("action", entry.Action),
		zap.String("resource_type", entry.ResourceType),
		zap.String("resource_id", entry.ResourceID),
		zap.Error(err),
	)
}

// LogTemplateChange records a template mutation.
func (l *Logger) LogTemplateChange(ctx context.Context, operation string, family, templateID, actor string) error {
	return l.LogAction(ctx, "template."+operation, "template", templateID, actor, map[string]any{
		"family": family,
	})
}

// LogInstanceChange records an instance mutation.
func (l *Logger) LogInstanceChange(ctx context.Context, operation string, family, instanceID, actor string) error {
	return l.LogAction(ctx, "instance."+operation, "instance", instanceID, actor, map[string]any{
		"family": family,
	})
}

func generateAuditID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return fmt.Sprintf("audit-%s", id.String())
}
