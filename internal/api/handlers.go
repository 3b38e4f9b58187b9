package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gym-manager/internal/auth"
	"github.com/gym-manager/internal/middleware"
	"github.com/gym-manager/internal/model"
	"github.com/gym-manager/internal/scheduler"
	"github.com/gym-manager/internal/storage"
)

// Handler contains all API handlers
type Handler struct {
	verifier      *auth.Verifier
	users         *storage.UserRepository
	memberships   *storage.MembershipRepository
	classes       *storage.ClassRepository
	reservations  *storage.ReservationRepository
	inventory     *storage.InventoryRepository
	coupons       *storage.CouponRepository
	notes         *storage.NoteRepository
	notifications *storage.NotificationRepository
	reminder      *scheduler.Reminder
	now           func() time.Time
}

// NewHandler creates a new API handler
func NewHandler(
	verifier *auth.Verifier,
	users *storage.UserRepository,
	memberships *storage.MembershipRepository,
	classes *storage.ClassRepository,
	reservations *storage.ReservationRepository,
	inventory *storage.InventoryRepository,
	coupons *storage.CouponRepository,
	notes *storage.NoteRepository,
	notifications *storage.NotificationRepository,
	reminder *scheduler.Reminder,
) *Handler {
	return &Handler{
		verifier:      verifier,
		users:         users,
		memberships:   memberships,
		classes:       classes,
		reservations:  reservations,
		inventory:     inventory,
		coupons:       coupons,
		notes:         notes,
		notifications: notifications,
		reminder:      reminder,
		now:           time.Now,
	}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondFieldErrors(w http.ResponseWriter, errs []FieldError) {
	respondJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":  "validation failed",
		"fields": errs,
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// Auth handlers

// Register godoc
// @Summary Register a new member
// @Description Create a new member account with email and password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Registration details"
// @Success 201 {object} model.AuthResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "Email already registered"
// @Failure 500 {object} map[string]string "Server error"
// @Router /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := validateRegister(&req); len(errs) > 0 {
		respondFieldErrors(w, errs)
		return
	}

	resp, err := h.verifier.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, auth.ErrDuplicateEmail) {
			respondError(w, http.StatusConflict, "email already registered")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to register")
		return
	}

	respondJSON(w, http.StatusCreated, resp)
}

// Login godoc
// @Summary Member login
// @Description Authenticate a member and return a bearer token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login credentials"
// @Success 200 {object} model.AuthResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 500 {object} map[string]string "Server error"
// @Router /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := validateLogin(&req); len(errs) > 0 {
		respondFieldErrors(w, errs)
		return
	}

	resp, err := h.verifier.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// GetProfile godoc
// @Summary Get own profile
// @Description Get the authenticated member's profile
// @Tags Authentication
// @Produce json
// @Success 200 {object} model.User
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /auth/profile [get]
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.users.FindByID(r.Context(), identity.UserID)
	if err != nil || user == nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// GrantRole godoc
// @Summary Grant a role
// @Description Grant a named role to a member (admin only)
// @Tags Members
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body model.GrantRoleRequest true "Role to grant"
// @Success 200 {object} model.User
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /members/{id}/roles [post]
func (h *Handler) GrantRole(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	var req model.GrantRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Role == "" {
		respondError(w, http.StatusBadRequest, "role is required")
		return
	}

	user, err := h.users.FindByID(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}

	if err := h.users.GrantRole(r.Context(), userID, req.Role); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err = h.users.FindByID(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to reload user")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// RevokeRole godoc
// @Summary Revoke a role
// @Description Remove a named role from a member (admin only)
// @Tags Members
// @Produce json
// @Param id path string true "User ID"
// @Param role path string true "Role name"
// @Success 200 {object} model.User
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /members/{id}/roles/{role} [delete]
func (h *Handler) RevokeRole(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	roleName := r.PathValue("role")

	user, err := h.users.FindByID(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}

	if err := h.users.RevokeRole(r.Context(), userID, roleName); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to revoke role")
		return
	}

	user, err = h.users.FindByID(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to reload user")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// ListMembers godoc
// @Summary List members
// @Description Paginated member list (trainer or admin)
// @Tags Members
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /members [get]
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	users, err := h.users.FindMembers(r.Context(), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list members")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"members": users,
		"limit":   limit,
		"offset":  offset,
	})
}

// Health godoc
// @Summary Health check
// @Description Check if the API is running
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{} "Health status"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"reminder": h.reminder.IsRunning(),
	})
}
