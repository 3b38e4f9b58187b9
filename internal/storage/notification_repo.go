package storage

import (
	"context"
	"fmt"

	"github.com/gym-manager/internal/model"
)

type NotificationRepository struct {
	db *Database
}

func NewNotificationRepository(db *Database) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create writes a notification row. Rows sharing a recipient and dedupe
// key are written once; a repeat is silently dropped so scheduled sweeps
// can re-run safely.
func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	query := `
		INSERT INTO notifications (recipient_id, kind, body, dedupe_key)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (recipient_id, dedupe_key) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, n.RecipientID, n.Kind, n.Body, n.DedupeKey); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *NotificationRepository) FindByRecipient(ctx context.Context, recipientID string, unreadOnly bool, limit, offset int) ([]model.Notification, error) {
	var ns []model.Notification
	query := `
		SELECT id, recipient_id, kind, body, dedupe_key, is_read, created_at
		FROM notifications WHERE recipient_id = $1
	`
	if unreadOnly {
		query += ` AND is_read = false`
	}
	query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	if err := r.db.SelectContext(ctx, &ns, query, recipientID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to find notifications: %w", err)
	}
	return ns, nil
}

// MarkRead flips the read flag; scoped by recipient so one member cannot
// mark another's notifications.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, recipientID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = true WHERE id = $1 AND recipient_id = $2`, id, recipientID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("notification not found")
	}
	return nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = false`, recipientID)
	return count, err
}
