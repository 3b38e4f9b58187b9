package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gym-manager/internal/middleware"
	"github.com/gym-manager/internal/model"
	"github.com/gym-manager/internal/storage"
)

// BookClass godoc
// @Summary Book a class
// @Description Reserve a seat in a class for the authenticated member
// @Tags Reservations
// @Accept json
// @Produce json
// @Param request body model.CreateReservationRequest true "Class to book"
// @Success 201 {object} model.Reservation
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Class full or already booked"
// @Failure 500 {object} map[string]string "Server error"
// @Security BearerAuth
// @Router /reservations [post]
func (h *Handler) BookClass(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req model.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ClassID == "" {
		respondError(w, http.StatusBadRequest, "class_id is required")
		return
	}

	res, err := h.reservations.Book(r.Context(), req.ClassID, identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrClassFull):
			respondError(w, http.StatusConflict, "class is full")
		case errors.Is(err, storage.ErrAlreadyBooked):
			respondError(w, http.StatusConflict, "already booked")
		default:
			respondError(w, http.StatusInternalServerError, "failed to book class")
		}
		return
	}

	// Booking confirmation lands in the member's notification feed; a
	// failure here does not unwind the booking.
	class, err := h.classes.FindByID(r.Context(), req.ClassID)
	if err == nil && class != nil {
		_ = h.notifications.Create(r.Context(), &model.Notification{
			RecipientID: identity.UserID,
			Kind:        model.NotificationKindReservationBooked,
			Body:        fmt.Sprintf("Booked: %s (code %s)", class.Name, res.BookingCode),
			DedupeKey:   "booking:" + res.ID,
		})
	}

	respondJSON(w, http.StatusCreated, res)
}

// GetMyReservations godoc
// @Summary List own reservations
// @Description Reservations of the authenticated member
// @Tags Reservations
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /reservations/mine [get]
func (h *Handler) GetMyReservations(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	rs, err := h.reservations.FindByMember(r.Context(), identity.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch reservations")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"reservations": rs})
}

// CancelReservation godoc
// @Summary Cancel a reservation
// @Description Cancel an own confirmed reservation
// @Tags Reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} map[string]string "Cancellation status"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not the owner"
// @Failure 404 {object} map[string]string "Reservation not found"
// @Security BearerAuth
// @Router /reservations/{id} [delete]
func (h *Handler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	res, err := h.reservations.FindByID(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch reservation")
		return
	}
	if res == nil {
		respondError(w, http.StatusNotFound, "reservation not found")
		return
	}
	if res.MemberID != identity.UserID && !identity.HasRole(model.RoleAdmin) {
		respondError(w, http.StatusForbidden, "forbidden")
		return
	}

	if err := h.reservations.Cancel(r.Context(), res.ID); err != nil {
		respondError(w, http.StatusNotFound, "reservation not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}
