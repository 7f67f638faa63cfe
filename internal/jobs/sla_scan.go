// Package jobs defines River Queue job types for background processing.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"go.uber.org/zap"

	"github.com/sidyfoba/solarcom-console/internal/pkg/logger"
	"github.com/sidyfoba/solarcom-console/internal/pkg/worker"
	"github.com/sidyfoba/solarcom-console/internal/schema"
	"github.com/sidyfoba/solarcom-console/internal/store"
)

// SLAScanArgs is a periodic job that flags open tickets whose SLA
// deadline has passed and raises a notification for each.
type SLAScanArgs struct{}

// Kind returns the job kind identifier for the SLA breach scan.
func (SLAScanArgs) Kind() string { return "sla_breach_scan" }

// InsertOpts ensures at most one scan is enqueued within the same period.
func (SLAScanArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		Queue:       river.QueueDefault,
		MaxAttempts: 1,
		UniqueOpts: river.UniqueOpts{
			ByPeriod: time.Hour,
			ByQueue:  true,
			ByArgs:   true,
		},
	}
}

// SLAScanStore is the persistence surface the scan needs.
type SLAScanStore interface {
	ListOverdueOpenTickets(ctx context.Context, now time.Time) ([]*schema.Instance, error)
	MarkSLABreached(ctx context.Context, id string) error
	CreateNotification(ctx context.Context, n *store.Notification) error
}

// SLAScanWorker walks overdue open tickets, marks each breached exactly
// once and writes one notification per breach.
type SLAScanWorker struct {
	river.WorkerDefaults[SLAScanArgs]
	store SLAScanStore
	pools *worker.Pools
	now   func() time.Time
}

// NewSLAScanWorker creates a scan worker. The pools argument may be nil;
// tickets are then processed inline.
func NewSLAScanWorker(store SLAScanStore, pools *worker.Pools) *SLAScanWorker {
	return &SLAScanWorker{store: store, pools: pools, now: time.Now}
}

// Work scans for breached tickets. Each ticket is handled independently;
// a failure on one never blocks the rest.
func (w *SLAScanWorker) Work(ctx context.Context, _ *river.Job[SLAScanArgs]) error {
	if w == nil || w.store == nil {
		return fmt.Errorf("sla scan worker is not initialized")
	}

	now := w.now().UTC()
	tickets, err := w.store.ListOverdueOpenTickets(ctx, now)
	if err != nil {
		return fmt.Errorf("list overdue tickets: %w", err)
	}
	if len(tickets) == 0 {
		return nil
	}

	// Completions are drained over a channel buffered to the ticket count:
	// tasks skipped while queued after cancellation never report, and a
	// late completion must not block once the drain has bailed out.
	results := make(chan bool, len(tickets))
	submitted := 0
	for _, ticket := range tickets {
		ticket := ticket
		task := func(ctx context.Context) {
			if err := w.flagBreach(ctx, ticket); err != nil {
				logger.Warn("failed to flag SLA breach",
					zap.String("ticket_id", ticket.ID),
					zap.Error(err),
				)
				results <- false
				return
			}
			results <- true
		}
		if w.pools != nil {
			if err := w.pools.General.Submit(ctx, task); err != nil {
				logger.Warn("failed to submit SLA breach task",
					zap.String("ticket_id", ticket.ID),
					zap.Error(err),
				)
				continue
			}
		} else {
			task(ctx)
		}
		submitted++
	}

	breached := 0
	for received := 0; received < submitted; received++ {
		select {
		case ok := <-results:
			if ok {
				breached++
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	logger.Info("SLA breach scan completed",
		zap.Int("overdue", len(tickets)),
		zap.Int("flagged", breached),
	)
	return nil
}

func (w *SLAScanWorker) flagBreach(ctx context.Context, ticket *schema.Instance) error {
	if err := w.store.MarkSLABreached(ctx, ticket.ID); err != nil {
		return fmt.Errorf("mark breached: %w", err)
	}

	deadline := ""
	if ticket.SLADeadline != nil {
		deadline = ticket.SLADeadline.Format(time.RFC3339)
	}
	n := &store.Notification{
		ID:         newNotificationID(),
		Kind:       store.NotificationSLABreach,
		Title:      fmt.Sprintf("SLA breached: %s", ticket.Name),
		Body:       fmt.Sprintf("Ticket %s missed its SLA deadline (%s)", ticket.Name, deadline),
		ResourceID: ticket.ID,
	}
	if err := w.store.CreateNotification(ctx, n); err != nil {
		return fmt.Errorf("create breach notification: %w", err)
	}
	return nil
}

func newNotificationID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
