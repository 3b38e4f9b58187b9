package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gym-manager/internal/model"
)

type ClassRepository struct {
	db *Database
}

func NewClassRepository(db *Database) *ClassRepository {
	return &ClassRepository{db: db}
}

// selectWithReserved pulls the confirmed reservation count alongside the
// class row so the seats-left view can be derived without a second query.
const selectWithReserved = `
	SELECT c.id, c.name, c.description, c.trainer_id, c.room_id, c.starts_at,
	       c.duration_min, c.capacity, c.created_at, c.updated_at,
	       COUNT(r.id) FILTER (WHERE r.status = 'confirmed') AS reserved
	FROM classes c
	LEFT JOIN reservations r ON r.class_id = c.id
`

func (r *ClassRepository) Create(ctx context.Context, req *model.CreateClassRequest) (*model.Class, error) {
	var c model.Class
	query := `
		INSERT INTO classes (name, description, trainer_id, room_id, starts_at, duration_min, capacity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, description, trainer_id, room_id, starts_at, duration_min, capacity, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		req.Name, req.Description, req.TrainerID, req.RoomID, req.StartsAt, req.DurationMin, req.Capacity).
		StructScan(&c)
	if err != nil {
		return nil, fmt.Errorf("failed to create class: %w", err)
	}
	return &c, nil
}

func (r *ClassRepository) FindByID(ctx context.Context, id string) (*model.Class, error) {
	var c model.Class
	query := selectWithReserved + ` WHERE c.id = $1 GROUP BY c.id`
	err := r.db.GetContext(ctx, &c, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find class: %w", err)
	}
	return &c, nil
}

func (r *ClassRepository) FindUpcoming(ctx context.Context, after time.Time, limit, offset int) ([]model.Class, error) {
	var classes []model.Class
	query := selectWithReserved + `
		WHERE c.starts_at >= $1
		GROUP BY c.id
		ORDER BY c.starts_at
		LIMIT $2 OFFSET $3
	`
	if err := r.db.SelectContext(ctx, &classes, query, after, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to find classes: %w", err)
	}
	return classes, nil
}

// FindStartingBetween returns classes whose start time falls inside the
// window; used by the reminder sweep.
func (r *ClassRepository) FindStartingBetween(ctx context.Context, from, to time.Time) ([]model.Class, error) {
	var classes []model.Class
	query := selectWithReserved + `
		WHERE c.starts_at >= $1 AND c.starts_at < $2
		GROUP BY c.id
	`
	if err := r.db.SelectContext(ctx, &classes, query, from, to); err != nil {
		return nil, fmt.Errorf("failed to find classes in window: %w", err)
	}
	return classes, nil
}

func (r *ClassRepository) Update(ctx context.Context, id string, req *model.UpdateClassRequest) (*model.Class, error) {
	c, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.TrainerID != nil {
		c.TrainerID = *req.TrainerID
	}
	if req.RoomID != nil {
		c.RoomID = *req.RoomID
	}
	if req.StartsAt != nil {
		c.StartsAt = *req.StartsAt
	}
	if req.DurationMin != nil {
		c.DurationMin = *req.DurationMin
	}
	if req.Capacity != nil {
		c.Capacity = *req.Capacity
	}

	query := `
		UPDATE classes SET name = $1, description = $2, trainer_id = $3, room_id = $4,
		       starts_at = $5, duration_min = $6, capacity = $7, updated_at = $8
		WHERE id = $9
		RETURNING id, name, description, trainer_id, room_id, starts_at, duration_min, capacity, created_at, updated_at
	`
	reserved := c.Reserved
	err = r.db.QueryRowxContext(ctx, query,
		c.Name, c.Description, c.TrainerID, c.RoomID, c.StartsAt, c.DurationMin, c.Capacity, time.Now(), id).
		StructScan(c)
	if err != nil {
		return nil, fmt.Errorf("failed to update class: %w", err)
	}
	c.Reserved = reserved
	return c, nil
}

func (r *ClassRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete class: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("class not found")
	}
	return nil
}
