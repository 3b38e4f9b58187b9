package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gym-manager/internal/model"
)

// InventoryRepository covers rooms and the equipment inside them.
type InventoryRepository struct {
	db *Database
}

func NewInventoryRepository(db *Database) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) CreateRoom(ctx context.Context, req *model.CreateRoomRequest) (*model.Room, error) {
	var room model.Room
	query := `
		INSERT INTO rooms (name, capacity)
		VALUES ($1, $2)
		RETURNING id, name, capacity, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query, req.Name, req.Capacity).StructScan(&room)
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return &room, nil
}

func (r *InventoryRepository) FindRoomByID(ctx context.Context, id string) (*model.Room, error) {
	var room model.Room
	err := r.db.GetContext(ctx, &room, `SELECT id, name, capacity, created_at, updated_at FROM rooms WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find room: %w", err)
	}
	return &room, nil
}

func (r *InventoryRepository) FindRooms(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	err := r.db.SelectContext(ctx, &rooms, `SELECT id, name, capacity, created_at, updated_at FROM rooms ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (r *InventoryRepository) CreateEquipment(ctx context.Context, req *model.CreateEquipmentRequest) (*model.Equipment, error) {
	var eq model.Equipment
	query := `
		INSERT INTO equipment (room_id, name, quantity)
		VALUES ($1, $2, $3)
		RETURNING id, room_id, name, quantity, is_operational, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query, req.RoomID, req.Name, req.Quantity).StructScan(&eq)
	if err != nil {
		return nil, fmt.Errorf("failed to create equipment: %w", err)
	}
	return &eq, nil
}

func (r *InventoryRepository) FindEquipmentByRoom(ctx context.Context, roomID string) ([]model.Equipment, error) {
	var eqs []model.Equipment
	query := `
		SELECT id, room_id, name, quantity, is_operational, created_at, updated_at
		FROM equipment WHERE room_id = $1 ORDER BY name
	`
	if err := r.db.SelectContext(ctx, &eqs, query, roomID); err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	return eqs, nil
}

func (r *InventoryRepository) UpdateEquipment(ctx context.Context, id string, req *model.UpdateEquipmentRequest) (*model.Equipment, error) {
	var eq model.Equipment
	err := r.db.GetContext(ctx, &eq,
		`SELECT id, room_id, name, quantity, is_operational, created_at, updated_at FROM equipment WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find equipment: %w", err)
	}

	if req.Name != nil {
		eq.Name = *req.Name
	}
	if req.Quantity != nil {
		eq.Quantity = *req.Quantity
	}
	if req.IsOperational != nil {
		eq.IsOperational = *req.IsOperational
	}

	query := `
		UPDATE equipment SET name = $1, quantity = $2, is_operational = $3, updated_at = $4
		WHERE id = $5
		RETURNING id, room_id, name, quantity, is_operational, created_at, updated_at
	`
	err = r.db.QueryRowxContext(ctx, query, eq.Name, eq.Quantity, eq.IsOperational, time.Now(), id).StructScan(&eq)
	if err != nil {
		return nil, fmt.Errorf("failed to update equipment: %w", err)
	}
	return &eq, nil
}

func (r *InventoryRepository) DeleteEquipment(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete equipment: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("equipment not found")
	}
	return nil
}
