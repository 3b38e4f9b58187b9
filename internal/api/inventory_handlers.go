package api

import (
	"encoding/json"
	"net/http"

	"github.com/gym-manager/internal/model"
)

// CreateRoom godoc
// @Summary Create a room
// @Description Add a room to the facility (admin only)
// @Tags Inventory
// @Accept json
// @Produce json
// @Param request body model.CreateRoomRequest true "Room details"
// @Success 201 {object} model.Room
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /rooms [post]
func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req model.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	room, err := h.inventory.CreateRoom(r.Context(), &req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create room")
		return
	}

	respondJSON(w, http.StatusCreated, room)
}

// ListRooms godoc
// @Summary List rooms
// @Tags Inventory
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /rooms [get]
func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.inventory.FindRooms(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch rooms")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"rooms": rooms})
}

// CreateEquipment godoc
// @Summary Add equipment
// @Description Add equipment to a room (admin only)
// @Tags Inventory
// @Accept json
// @Produce json
// @Param request body model.CreateEquipmentRequest true "Equipment details"
// @Success 201 {object} model.Equipment
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /equipment [post]
func (h *Handler) CreateEquipment(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEquipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RoomID == "" || req.Name == "" {
		respondError(w, http.StatusBadRequest, "room_id and name are required")
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	eq, err := h.inventory.CreateEquipment(r.Context(), &req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create equipment")
		return
	}

	respondJSON(w, http.StatusCreated, eq)
}

// ListRoomEquipment godoc
// @Summary List equipment in a room
// @Tags Inventory
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Room not found"
// @Security BearerAuth
// @Router /rooms/{id}/equipment [get]
func (h *Handler) ListRoomEquipment(w http.ResponseWriter, r *http.Request) {
	room, err := h.inventory.FindRoomByID(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch room")
		return
	}
	if room == nil {
		respondError(w, http.StatusNotFound, "room not found")
		return
	}

	eqs, err := h.inventory.FindEquipmentByRoom(r.Context(), room.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch equipment")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"room": room, "equipment": eqs})
}

// UpdateEquipment godoc
// @Summary Update equipment
// @Description Change name, quantity or operational flag (admin only)
// @Tags Inventory
// @Accept json
// @Produce json
// @Param id path string true "Equipment ID"
// @Param request body model.UpdateEquipmentRequest true "Fields to update"
// @Success 200 {object} model.Equipment
// @Failure 404 {object} map[string]string "Equipment not found"
// @Security BearerAuth
// @Router /equipment/{id} [put]
func (h *Handler) UpdateEquipment(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateEquipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	eq, err := h.inventory.UpdateEquipment(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update equipment")
		return
	}
	if eq == nil {
		respondError(w, http.StatusNotFound, "equipment not found")
		return
	}

	respondJSON(w, http.StatusOK, eq)
}

// DeleteEquipment godoc
// @Summary Remove equipment
// @Tags Inventory
// @Produce json
// @Param id path string true "Equipment ID"
// @Success 200 {object} map[string]string "Deletion status"
// @Failure 404 {object} map[string]string "Equipment not found"
// @Security BearerAuth
// @Router /equipment/{id} [delete]
func (h *Handler) DeleteEquipment(w http.ResponseWriter, r *http.Request) {
	if err := h.inventory.DeleteEquipment(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, http.StatusNotFound, "equipment not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
