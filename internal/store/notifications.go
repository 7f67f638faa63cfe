package store

import (
	"context"
	"time"
)

// Notification is a server-generated message surfaced in the console,
// used for SLA breach alerts among other things.
type Notification struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	ResourceID string    `json:"resourceId,omitempty"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Notification kinds.
const (
	NotificationSLABreach = "sla_breach"
	NotificationSystem    = "system"
)

const notificationColumns = "id, kind, title, body, resource_id, read, created_at"

// CreateNotification inserts a notification.
func (s *Store) CreateNotification(ctx context.Context, n *Notification) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO notifications (id, kind, title, body, resource_id)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))`,
		n.ID, n.Kind, n.Title, n.Body, n.ResourceID,
	)
	return mapErr("create notification", err)
}

// ListNotifications returns notifications newest first.
func (s *Store) ListNotifications(ctx context.Context, limit, offset int) ([]*Notification, int, error) {
	var total int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM notifications`).Scan(&total); err != nil {
		return nil, 0, mapErr("count notifications", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, mapErr("list notifications", err)
	}
	defer rows.Close()

	var notifications []*Notification
	for rows.Next() {
		var (
			n        Notification
			resource *string
		)
		if err := rows.Scan(&n.ID, &n.Kind, &n.Title, &n.Body, &resource, &n.Read, &n.CreatedAt); err != nil {
			return nil, 0, mapErr("scan notification", err)
		}
		if resource != nil {
			n.ResourceID = *resource
		}
		notifications = append(notifications, &n)
	}
	return notifications, total, mapErr("list notifications", rows.Err())
}

// MarkNotificationRead flags one notification as read.
func (s *Store) MarkNotificationRead(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return mapErr("mark notification read", err)
	}
	if tag.RowsAffected() == 0 {
		return mapErr("mark notification read", errNoRowsAffected)
	}
	return nil
}

// DeleteNotificationsBefore removes read notifications older than the
// cutoff and reports how many were deleted.
func (s *Store) DeleteNotificationsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM notifications WHERE read = TRUE AND created_at < $1`, cutoff)
	if err != nil {
		return 0, mapErr("delete notifications", err)
	}
	return tag.RowsAffected(), nil
}
