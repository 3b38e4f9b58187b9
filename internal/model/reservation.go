package model

import "time"

type ReservationStatus string

const (
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

type Reservation struct {
	ID          string            `json:"id" db:"id"`
	ClassID     string            `json:"class_id" db:"class_id"`
	MemberID    string            `json:"member_id" db:"member_id"`
	BookingCode string            `json:"booking_code" db:"booking_code"`
	Status      ReservationStatus `json:"status" db:"status"`
	CreatedAt   time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at" db:"updated_at"`
}

type CreateReservationRequest struct {
	ClassID string `json:"class_id"`
}
