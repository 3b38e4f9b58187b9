package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewMembershipView(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		m    Membership
		want int
	}{
		{
			"thirty days out",
			Membership{IsActive: true, EndsAt: now.AddDate(0, 0, 30)},
			30,
		},
		{
			"partial day rounds down",
			Membership{IsActive: true, EndsAt: now.Add(36 * time.Hour)},
			1,
		},
		{
			"expired reports zero",
			Membership{IsActive: true, EndsAt: now.AddDate(0, 0, -5)},
			0,
		},
		{
			"inactive reports zero",
			Membership{IsActive: false, EndsAt: now.AddDate(0, 0, 30)},
			0,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NewMembershipView(tc.m, now).DaysRemaining)
		})
	}
}

func TestNewClassView(t *testing.T) {
	assert.Equal(t, 8, NewClassView(Class{Capacity: 10, Reserved: 2}).SeatsLeft)
	assert.Equal(t, 0, NewClassView(Class{Capacity: 10, Reserved: 10}).SeatsLeft)
	// Capacity shrunk after bookings were taken.
	assert.Equal(t, 0, NewClassView(Class{Capacity: 5, Reserved: 7}).SeatsLeft)
}

func TestCouponRedeemable(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	active := Coupon{IsActive: true, ExpiresAt: now.Add(time.Hour)}
	assert.True(t, active.Redeemable(now))
	assert.False(t, active.Redeemable(now.Add(2*time.Hour)))

	inactive := Coupon{IsActive: false, ExpiresAt: now.Add(time.Hour)}
	assert.False(t, inactive.Redeemable(now))
}
