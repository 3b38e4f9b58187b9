package model

import "time"

type Coupon struct {
	ID         string    `json:"id" db:"id"`
	Code       string    `json:"code" db:"code"`
	PercentOff int       `json:"percent_off" db:"percent_off"`
	ExpiresAt  time.Time `json:"expires_at" db:"expires_at"`
	IsActive   bool      `json:"is_active" db:"is_active"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Redeemable reports whether the coupon can still be applied. Discount
// arithmetic happens at the point of sale, not here.
func (c *Coupon) Redeemable(now time.Time) bool {
	return c.IsActive && now.Before(c.ExpiresAt)
}

type CreateCouponRequest struct {
	// Code is optional; a random one is generated when empty.
	Code       string    `json:"code,omitempty"`
	PercentOff int       `json:"percent_off"`
	ExpiresAt  time.Time `json:"expires_at"`
}
