package model

import "time"

type Room struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Capacity  int       `json:"capacity" db:"capacity"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type Equipment struct {
	ID            string    `json:"id" db:"id"`
	RoomID        string    `json:"room_id" db:"room_id"`
	Name          string    `json:"name" db:"name"`
	Quantity      int       `json:"quantity" db:"quantity"`
	IsOperational bool      `json:"is_operational" db:"is_operational"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

type CreateRoomRequest struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

type CreateEquipmentRequest struct {
	RoomID   string `json:"room_id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type UpdateEquipmentRequest struct {
	Name          *string `json:"name,omitempty"`
	Quantity      *int    `json:"quantity,omitempty"`
	IsOperational *bool   `json:"is_operational,omitempty"`
}
