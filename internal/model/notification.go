package model

import "time"

type NotificationKind string

const (
	NotificationKindClassReminder     NotificationKind = "class_reminder"
	NotificationKindMembershipExpiry  NotificationKind = "membership_expiry"
	NotificationKindReservationBooked NotificationKind = "reservation_booked"
)

type Notification struct {
	ID          string           `json:"id" db:"id"`
	RecipientID string           `json:"recipient_id" db:"recipient_id"`
	Kind        NotificationKind `json:"kind" db:"kind"`
	Body        string           `json:"body" db:"body"`
	// DedupeKey keeps scheduled sweeps from notifying twice for the
	// same event; unique per recipient.
	DedupeKey string    `json:"-" db:"dedupe_key"`
	IsRead    bool      `json:"is_read" db:"is_read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
