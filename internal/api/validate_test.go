package api

import (
	"testing"
	"time"

	"github.com/gym-manager/internal/model"
	"github.com/stretchr/testify/assert"
)

func fields(errs []FieldError) []string {
	names := make([]string, 0, len(errs))
	for _, e := range errs {
		names = append(names, e.Field)
	}
	return names
}

func TestValidateRegister(t *testing.T) {
	cases := []struct {
		name string
		req  model.RegisterRequest
		want []string
	}{
		{
			"valid",
			model.RegisterRequest{Email: "a@example.com", Password: "longenough", Name: "A"},
			nil,
		},
		{
			"everything missing",
			model.RegisterRequest{},
			[]string{"email", "password", "name"},
		},
		{
			"bad email and short password",
			model.RegisterRequest{Email: "not-an-email", Password: "short", Name: "A"},
			[]string{"email", "password"},
		},
		{
			"email without domain dot",
			model.RegisterRequest{Email: "a@example", Password: "longenough", Name: "A"},
			[]string{"email"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := validateRegister(&tc.req)
			assert.ElementsMatch(t, tc.want, fields(errs))
		})
	}
}

func TestValidateCreateMembershipDates(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	errs := validateCreateMembership(&model.CreateMembershipRequest{
		MemberID: "m1",
		Plan:     "gold",
		StartsAt: start,
		EndsAt:   start.Add(-time.Hour),
	})
	assert.Equal(t, []string{"ends_at"}, fields(errs))

	errs = validateCreateMembership(&model.CreateMembershipRequest{
		MemberID: "m1",
		Plan:     "gold",
		StartsAt: start,
		EndsAt:   start.AddDate(0, 1, 0),
	})
	assert.Empty(t, errs)
}

func TestValidateCreateClass(t *testing.T) {
	errs := validateCreateClass(&model.CreateClassRequest{
		Name:      "Yoga",
		TrainerID: "t1",
		RoomID:    "r1",
		StartsAt:  time.Now(),
	})
	assert.ElementsMatch(t, []string{"duration_min", "capacity"}, fields(errs))
}

func TestValidateCreateCoupon(t *testing.T) {
	errs := validateCreateCoupon(&model.CreateCouponRequest{PercentOff: 0})
	assert.ElementsMatch(t, []string{"percent_off", "expires_at"}, fields(errs))

	errs = validateCreateCoupon(&model.CreateCouponRequest{PercentOff: 101, ExpiresAt: time.Now()})
	assert.Equal(t, []string{"percent_off"}, fields(errs))
}
