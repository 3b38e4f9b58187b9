package api

import (
	"encoding/json"
	"net/http"

	"github.com/gym-manager/internal/middleware"
	"github.com/gym-manager/internal/model"
)

// CreateMembership godoc
// @Summary Create a membership
// @Description Open a membership for a member (admin only)
// @Tags Memberships
// @Accept json
// @Produce json
// @Param request body model.CreateMembershipRequest true "Membership details"
// @Success 201 {object} model.MembershipView
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Server error"
// @Security BearerAuth
// @Router /memberships [post]
func (h *Handler) CreateMembership(w http.ResponseWriter, r *http.Request) {
	var req model.CreateMembershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := validateCreateMembership(&req); len(errs) > 0 {
		respondFieldErrors(w, errs)
		return
	}

	m, err := h.memberships.Create(r.Context(), &req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create membership")
		return
	}

	respondJSON(w, http.StatusCreated, model.NewMembershipView(*m, h.now()))
}

// GetMyMemberships godoc
// @Summary List own memberships
// @Description Memberships of the authenticated member with days remaining
// @Tags Memberships
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /memberships/mine [get]
func (h *Handler) GetMyMemberships(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ms, err := h.memberships.FindByMember(r.Context(), identity.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch memberships")
		return
	}

	now := h.now()
	views := make([]model.MembershipView, 0, len(ms))
	for _, m := range ms {
		views = append(views, model.NewMembershipView(m, now))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"memberships": views})
}

// UpdateMembership godoc
// @Summary Update a membership
// @Description Change plan, end date or active flag (admin only)
// @Tags Memberships
// @Accept json
// @Produce json
// @Param id path string true "Membership ID"
// @Param request body model.UpdateMembershipRequest true "Fields to update"
// @Success 200 {object} model.MembershipView
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Membership not found"
// @Security BearerAuth
// @Router /memberships/{id} [put]
func (h *Handler) UpdateMembership(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req model.UpdateMembershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.memberships.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update membership")
		return
	}
	if m == nil {
		respondError(w, http.StatusNotFound, "membership not found")
		return
	}

	respondJSON(w, http.StatusOK, model.NewMembershipView(*m, h.now()))
}
