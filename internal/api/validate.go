package api

import (
	"strings"

	"github.com/gym-manager/internal/model"
)

// FieldError is a single field-level validation failure returned to the
// client before any domain call is made.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func fieldErr(field, message string) FieldError {
	return FieldError{Field: field, Message: message}
}

func validateRegister(req *model.RegisterRequest) []FieldError {
	var errs []FieldError
	if req.Email == "" {
		errs = append(errs, fieldErr("email", "is required"))
	} else if !isValidEmail(req.Email) {
		errs = append(errs, fieldErr("email", "invalid format"))
	}
	if req.Password == "" {
		errs = append(errs, fieldErr("password", "is required"))
	} else if len(req.Password) < 8 {
		errs = append(errs, fieldErr("password", "must be at least 8 characters"))
	}
	if req.Name == "" {
		errs = append(errs, fieldErr("name", "is required"))
	}
	return errs
}

func validateLogin(req *model.LoginRequest) []FieldError {
	var errs []FieldError
	if req.Email == "" {
		errs = append(errs, fieldErr("email", "is required"))
	}
	if req.Password == "" {
		errs = append(errs, fieldErr("password", "is required"))
	}
	return errs
}

func validateCreateMembership(req *model.CreateMembershipRequest) []FieldError {
	var errs []FieldError
	if req.MemberID == "" {
		errs = append(errs, fieldErr("member_id", "is required"))
	}
	if req.Plan == "" {
		errs = append(errs, fieldErr("plan", "is required"))
	}
	if req.StartsAt.IsZero() {
		errs = append(errs, fieldErr("starts_at", "is required"))
	}
	if req.EndsAt.IsZero() {
		errs = append(errs, fieldErr("ends_at", "is required"))
	} else if !req.StartsAt.IsZero() && !req.EndsAt.After(req.StartsAt) {
		errs = append(errs, fieldErr("ends_at", "must be after starts_at"))
	}
	return errs
}

func validateCreateClass(req *model.CreateClassRequest) []FieldError {
	var errs []FieldError
	if req.Name == "" {
		errs = append(errs, fieldErr("name", "is required"))
	}
	if req.TrainerID == "" {
		errs = append(errs, fieldErr("trainer_id", "is required"))
	}
	if req.RoomID == "" {
		errs = append(errs, fieldErr("room_id", "is required"))
	}
	if req.StartsAt.IsZero() {
		errs = append(errs, fieldErr("starts_at", "is required"))
	}
	if req.DurationMin <= 0 {
		errs = append(errs, fieldErr("duration_min", "must be positive"))
	}
	if req.Capacity <= 0 {
		errs = append(errs, fieldErr("capacity", "must be positive"))
	}
	return errs
}

func validateCreateCoupon(req *model.CreateCouponRequest) []FieldError {
	var errs []FieldError
	if req.PercentOff < 1 || req.PercentOff > 100 {
		errs = append(errs, fieldErr("percent_off", "must be between 1 and 100"))
	}
	if req.ExpiresAt.IsZero() {
		errs = append(errs, fieldErr("expires_at", "is required"))
	}
	return errs
}

func validateCreateNote(req *model.CreateNoteRequest) []FieldError {
	var errs []FieldError
	if req.MemberID == "" {
		errs = append(errs, fieldErr("member_id", "is required"))
	}
	if strings.TrimSpace(req.Body) == "" {
		errs = append(errs, fieldErr("body", "is required"))
	}
	return errs
}

// isValidEmail performs a basic email validation
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	if len(parts[0]) == 0 || len(parts[1]) == 0 {
		return false
	}
	if !strings.Contains(parts[1], ".") {
		return false
	}
	return true
}
