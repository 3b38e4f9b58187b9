package model

import "time"

type Membership struct {
	ID        string    `json:"id" db:"id"`
	MemberID  string    `json:"member_id" db:"member_id"`
	Plan      string    `json:"plan" db:"plan"`
	StartsAt  time.Time `json:"starts_at" db:"starts_at"`
	EndsAt    time.Time `json:"ends_at" db:"ends_at"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// MembershipView is the API shape of a membership with the derived
// days-remaining field filled in.
type MembershipView struct {
	Membership
	DaysRemaining int `json:"days_remaining"`
}

// NewMembershipView computes days remaining against the supplied clock.
// An expired or inactive membership reports zero, never a negative count.
func NewMembershipView(m Membership, now time.Time) MembershipView {
	days := 0
	if m.IsActive && m.EndsAt.After(now) {
		days = int(m.EndsAt.Sub(now).Hours() / 24)
	}
	return MembershipView{Membership: m, DaysRemaining: days}
}

type CreateMembershipRequest struct {
	MemberID string    `json:"member_id"`
	Plan     string    `json:"plan"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

type UpdateMembershipRequest struct {
	Plan     *string    `json:"plan,omitempty"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
	IsActive *bool      `json:"is_active,omitempty"`
}
