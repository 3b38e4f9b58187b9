package api

import (
	"net/http"

	"github.com/gym-manager/internal/middleware"
)

// ListNotifications godoc
// @Summary List own notifications
// @Description Notifications for the authenticated member, newest first
// @Tags Notifications
// @Produce json
// @Param unread query bool false "Only unread"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /notifications [get]
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)
	unreadOnly := r.URL.Query().Get("unread") == "true"

	ns, err := h.notifications.FindByRecipient(r.Context(), identity.UserID, unreadOnly, limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch notifications")
		return
	}

	unread, _ := h.notifications.CountUnread(r.Context(), identity.UserID)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": ns,
		"unread":        unread,
		"limit":         limit,
		"offset":        offset,
	})
}

// MarkNotificationRead godoc
// @Summary Mark a notification read
// @Tags Notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} map[string]string "Status"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Notification not found"
// @Security BearerAuth
// @Router /notifications/{id}/read [post]
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.notifications.MarkRead(r.Context(), r.PathValue("id"), identity.UserID); err != nil {
		respondError(w, http.StatusNotFound, "notification not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "read"})
}
