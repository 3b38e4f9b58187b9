package model

import "time"

type Class struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description,omitempty" db:"description"`
	TrainerID   string    `json:"trainer_id" db:"trainer_id"`
	RoomID      string    `json:"room_id" db:"room_id"`
	StartsAt    time.Time `json:"starts_at" db:"starts_at"`
	DurationMin int       `json:"duration_min" db:"duration_min"`
	Capacity    int       `json:"capacity" db:"capacity"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	// Reserved is the confirmed reservation count, filled by list/find
	// queries via a join. Not a column on the classes table.
	Reserved int `json:"-" db:"reserved"`
}

// ClassView is the API shape of a class with the derived seats-left
// field filled in.
type ClassView struct {
	Class
	SeatsLeft int `json:"seats_left"`
}

// NewClassView derives seats left from capacity and the confirmed
// reservation count. Overbooked classes report zero, never negative.
func NewClassView(c Class) ClassView {
	seats := c.Capacity - c.Reserved
	if seats < 0 {
		seats = 0
	}
	return ClassView{Class: c, SeatsLeft: seats}
}

type CreateClassRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	TrainerID   string    `json:"trainer_id"`
	RoomID      string    `json:"room_id"`
	StartsAt    time.Time `json:"starts_at"`
	DurationMin int       `json:"duration_min"`
	Capacity    int       `json:"capacity"`
}

type UpdateClassRequest struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	TrainerID   *string    `json:"trainer_id,omitempty"`
	RoomID      *string    `json:"room_id,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	DurationMin *int       `json:"duration_min,omitempty"`
	Capacity    *int       `json:"capacity,omitempty"`
}
