package api

import (
	"encoding/json"
	"net/http"

	"github.com/gym-manager/internal/middleware"
	"github.com/gym-manager/internal/model"
)

// CreateNote godoc
// @Summary Write a trainer note
// @Description Record an observation about a member (trainer or admin)
// @Tags Notes
// @Accept json
// @Produce json
// @Param request body model.CreateNoteRequest true "Note details"
// @Success 201 {object} model.TrainerNote
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /notes [post]
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req model.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := validateCreateNote(&req); len(errs) > 0 {
		respondFieldErrors(w, errs)
		return
	}

	note, err := h.notes.Create(r.Context(), identity.UserID, &req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create note")
		return
	}

	respondJSON(w, http.StatusCreated, note)
}

// ListMemberNotes godoc
// @Summary List notes about a member
// @Description Trainer notes for one member, newest first (trainer or admin)
// @Tags Notes
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /members/{id}/notes [get]
func (h *Handler) ListMemberNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.notes.FindByMember(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch notes")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"notes": notes})
}

// DeleteNote godoc
// @Summary Delete an own note
// @Tags Notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} map[string]string "Deletion status"
// @Failure 404 {object} map[string]string "Note not found"
// @Security BearerAuth
// @Router /notes/{id} [delete]
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.notes.Delete(r.Context(), r.PathValue("id"), identity.UserID); err != nil {
		respondError(w, http.StatusNotFound, "note not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
