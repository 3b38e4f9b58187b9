package api

import (
	"encoding/json"
	"net/http"

	"github.com/gym-manager/internal/model"
)

// CreateClass godoc
// @Summary Create a class
// @Description Schedule a new class (trainer or admin)
// @Tags Classes
// @Accept json
// @Produce json
// @Param request body model.CreateClassRequest true "Class details"
// @Success 201 {object} model.ClassView
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Server error"
// @Security BearerAuth
// @Router /classes [post]
func (h *Handler) CreateClass(w http.ResponseWriter, r *http.Request) {
	var req model.CreateClassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := validateCreateClass(&req); len(errs) > 0 {
		respondFieldErrors(w, errs)
		return
	}

	c, err := h.classes.Create(r.Context(), &req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create class")
		return
	}

	respondJSON(w, http.StatusCreated, model.NewClassView(*c))
}

// ListClasses godoc
// @Summary List upcoming classes
// @Description Upcoming classes with seats left
// @Tags Classes
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /classes [get]
func (h *Handler) ListClasses(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	classes, err := h.classes.FindUpcoming(r.Context(), h.now(), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch classes")
		return
	}

	views := make([]model.ClassView, 0, len(classes))
	for _, c := range classes {
		views = append(views, model.NewClassView(c))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"classes": views,
		"limit":   limit,
		"offset":  offset,
	})
}

// GetClass godoc
// @Summary Get a class
// @Description Class details with seats left
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} model.ClassView
// @Failure 404 {object} map[string]string "Class not found"
// @Security BearerAuth
// @Router /classes/{id} [get]
func (h *Handler) GetClass(w http.ResponseWriter, r *http.Request) {
	c, err := h.classes.FindByID(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch class")
		return
	}
	if c == nil {
		respondError(w, http.StatusNotFound, "class not found")
		return
	}

	respondJSON(w, http.StatusOK, model.NewClassView(*c))
}

// UpdateClass godoc
// @Summary Update a class
// @Description Update class fields (trainer or admin)
// @Tags Classes
// @Accept json
// @Produce json
// @Param id path string true "Class ID"
// @Param request body model.UpdateClassRequest true "Fields to update"
// @Success 200 {object} model.ClassView
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Class not found"
// @Security BearerAuth
// @Router /classes/{id} [put]
func (h *Handler) UpdateClass(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateClassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.classes.Update(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update class")
		return
	}
	if c == nil {
		respondError(w, http.StatusNotFound, "class not found")
		return
	}

	respondJSON(w, http.StatusOK, model.NewClassView(*c))
}

// DeleteClass godoc
// @Summary Delete a class
// @Description Remove a class and cascade its reservations (admin only)
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} map[string]string "Deletion status"
// @Failure 404 {object} map[string]string "Class not found"
// @Security BearerAuth
// @Router /classes/{id} [delete]
func (h *Handler) DeleteClass(w http.ResponseWriter, r *http.Request) {
	if err := h.classes.Delete(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, http.StatusNotFound, "class not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
