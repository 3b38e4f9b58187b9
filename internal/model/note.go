package model

import "time"

// TrainerNote is a trainer-authored observation about a member, visible
// to trainers and admins only.
type TrainerNote struct {
	ID        string    `json:"id" db:"id"`
	TrainerID string    `json:"trainer_id" db:"trainer_id"`
	MemberID  string    `json:"member_id" db:"member_id"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type CreateNoteRequest struct {
	MemberID string `json:"member_id"`
	Body     string `json:"body"`
}
