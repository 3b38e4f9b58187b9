package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gym-manager/internal/model"
)

var (
	ErrClassFull     = errors.New("class is full")
	ErrAlreadyBooked = errors.New("member already booked this class")
)

type ReservationRepository struct {
	db *Database
}

func NewReservationRepository(db *Database) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// Book confirms a seat for the member. The capacity check and the insert
// run in one transaction so two concurrent bookings cannot both take the
// last seat.
func (r *ReservationRepository) Book(ctx context.Context, classID, memberID string) (*model.Reservation, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var capacity int
	err = tx.GetContext(ctx, &capacity, `SELECT capacity FROM classes WHERE id = $1 FOR UPDATE`, classID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("class not found")
		}
		return nil, fmt.Errorf("failed to load class: %w", err)
	}

	var existing bool
	err = tx.GetContext(ctx, &existing,
		`SELECT EXISTS(SELECT 1 FROM reservations WHERE class_id = $1 AND member_id = $2 AND status = 'confirmed')`,
		classID, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to check booking: %w", err)
	}
	if existing {
		return nil, ErrAlreadyBooked
	}

	var confirmed int
	err = tx.GetContext(ctx, &confirmed,
		`SELECT COUNT(*) FROM reservations WHERE class_id = $1 AND status = 'confirmed'`, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to count reservations: %w", err)
	}
	if confirmed >= capacity {
		return nil, ErrClassFull
	}

	var res model.Reservation
	query := `
		INSERT INTO reservations (class_id, member_id, booking_code, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, class_id, member_id, booking_code, status, created_at, updated_at
	`
	err = tx.QueryRowxContext(ctx, query, classID, memberID, uuid.NewString(), model.ReservationStatusConfirmed).
		StructScan(&res)
	if err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit reservation: %w", err)
	}
	return &res, nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	var res model.Reservation
	query := `SELECT id, class_id, member_id, booking_code, status, created_at, updated_at FROM reservations WHERE id = $1`
	err := r.db.GetContext(ctx, &res, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find reservation: %w", err)
	}
	return &res, nil
}

func (r *ReservationRepository) FindByMember(ctx context.Context, memberID string) ([]model.Reservation, error) {
	var rs []model.Reservation
	query := `
		SELECT id, class_id, member_id, booking_code, status, created_at, updated_at
		FROM reservations WHERE member_id = $1 ORDER BY created_at DESC
	`
	if err := r.db.SelectContext(ctx, &rs, query, memberID); err != nil {
		return nil, fmt.Errorf("failed to find reservations: %w", err)
	}
	return rs, nil
}

// FindConfirmedByClass returns the confirmed attendee list for a class;
// used by the reminder sweep.
func (r *ReservationRepository) FindConfirmedByClass(ctx context.Context, classID string) ([]model.Reservation, error) {
	var rs []model.Reservation
	query := `
		SELECT id, class_id, member_id, booking_code, status, created_at, updated_at
		FROM reservations WHERE class_id = $1 AND status = 'confirmed'
	`
	if err := r.db.SelectContext(ctx, &rs, query, classID); err != nil {
		return nil, fmt.Errorf("failed to find attendees: %w", err)
	}
	return rs, nil
}

func (r *ReservationRepository) Cancel(ctx context.Context, id string) error {
	query := `UPDATE reservations SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`
	result, err := r.db.ExecContext(ctx, query,
		model.ReservationStatusCancelled, time.Now(), id, model.ReservationStatusConfirmed)
	if err != nil {
		return fmt.Errorf("failed to cancel reservation: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("reservation not found")
	}
	return nil
}
