package storage

import (
	"context"
	"fmt"

	"github.com/gym-manager/internal/model"
)

type NoteRepository struct {
	db *Database
}

func NewNoteRepository(db *Database) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(ctx context.Context, trainerID string, req *model.CreateNoteRequest) (*model.TrainerNote, error) {
	var note model.TrainerNote
	query := `
		INSERT INTO trainer_notes (trainer_id, member_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, trainer_id, member_id, body, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query, trainerID, req.MemberID, req.Body).StructScan(&note)
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return &note, nil
}

func (r *NoteRepository) FindByMember(ctx context.Context, memberID string) ([]model.TrainerNote, error) {
	var notes []model.TrainerNote
	query := `
		SELECT id, trainer_id, member_id, body, created_at, updated_at
		FROM trainer_notes WHERE member_id = $1 ORDER BY created_at DESC
	`
	if err := r.db.SelectContext(ctx, &notes, query, memberID); err != nil {
		return nil, fmt.Errorf("failed to find notes: %w", err)
	}
	return notes, nil
}

func (r *NoteRepository) Delete(ctx context.Context, id, trainerID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM trainer_notes WHERE id = $1 AND trainer_id = $2`, id, trainerID)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("note not found")
	}
	return nil
}
