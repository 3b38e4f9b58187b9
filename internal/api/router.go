package api

import (
	"net/http"

	"github.com/gym-manager/internal/middleware"
	"github.com/gym-manager/internal/model"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter creates a new HTTP router with all routes. Identity is
// resolved once per request by the interceptor wrapped around the whole
// mux; per-route role guards turn a missing or insufficient identity
// into 401/403.
func NewRouter(h *Handler, m *middleware.AuthMiddleware) http.Handler {
	mux := http.NewServeMux()

	// Swagger documentation
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// Role guards
	member := m.RequireRoles(model.RoleClient, model.RoleTrainer, model.RoleAdmin)
	client := m.RequireRoles(model.RoleClient)
	staff := m.RequireRoles(model.RoleTrainer, model.RoleAdmin)
	admin := m.RequireRoles(model.RoleAdmin)

	// Public routes
	mux.HandleFunc("POST /api/v1/auth/register", h.Register)
	mux.HandleFunc("POST /api/v1/auth/login", h.Login)
	mux.HandleFunc("GET /api/v1/health", h.Health)

	// Account routes
	mux.Handle("GET /api/v1/auth/profile", member(http.HandlerFunc(h.GetProfile)))

	// Member administration
	mux.Handle("GET /api/v1/members", staff(http.HandlerFunc(h.ListMembers)))
	mux.Handle("POST /api/v1/members/{id}/roles", admin(http.HandlerFunc(h.GrantRole)))
	mux.Handle("DELETE /api/v1/members/{id}/roles/{role}", admin(http.HandlerFunc(h.RevokeRole)))
	mux.Handle("GET /api/v1/members/{id}/notes", staff(http.HandlerFunc(h.ListMemberNotes)))

	// Membership routes
	mux.Handle("POST /api/v1/memberships", admin(http.HandlerFunc(h.CreateMembership)))
	mux.Handle("GET /api/v1/memberships/mine", member(http.HandlerFunc(h.GetMyMemberships)))
	mux.Handle("PUT /api/v1/memberships/{id}", admin(http.HandlerFunc(h.UpdateMembership)))

	// Class routes
	mux.Handle("GET /api/v1/classes", member(http.HandlerFunc(h.ListClasses)))
	mux.Handle("POST /api/v1/classes", staff(http.HandlerFunc(h.CreateClass)))
	mux.Handle("GET /api/v1/classes/{id}", member(http.HandlerFunc(h.GetClass)))
	mux.Handle("PUT /api/v1/classes/{id}", staff(http.HandlerFunc(h.UpdateClass)))
	mux.Handle("DELETE /api/v1/classes/{id}", admin(http.HandlerFunc(h.DeleteClass)))

	// Reservation routes
	mux.Handle("POST /api/v1/reservations", client(http.HandlerFunc(h.BookClass)))
	mux.Handle("GET /api/v1/reservations/mine", member(http.HandlerFunc(h.GetMyReservations)))
	mux.Handle("DELETE /api/v1/reservations/{id}", member(http.HandlerFunc(h.CancelReservation)))

	// Inventory routes
	mux.Handle("GET /api/v1/rooms", member(http.HandlerFunc(h.ListRooms)))
	mux.Handle("POST /api/v1/rooms", admin(http.HandlerFunc(h.CreateRoom)))
	mux.Handle("GET /api/v1/rooms/{id}/equipment", member(http.HandlerFunc(h.ListRoomEquipment)))
	mux.Handle("POST /api/v1/equipment", admin(http.HandlerFunc(h.CreateEquipment)))
	mux.Handle("PUT /api/v1/equipment/{id}", admin(http.HandlerFunc(h.UpdateEquipment)))
	mux.Handle("DELETE /api/v1/equipment/{id}", admin(http.HandlerFunc(h.DeleteEquipment)))

	// Coupon routes
	mux.Handle("POST /api/v1/coupons", admin(http.HandlerFunc(h.CreateCoupon)))
	mux.Handle("GET /api/v1/coupons", admin(http.HandlerFunc(h.ListCoupons)))
	mux.Handle("GET /api/v1/coupons/{code}/check", member(http.HandlerFunc(h.CheckCoupon)))
	mux.Handle("DELETE /api/v1/coupons/{id}", admin(http.HandlerFunc(h.DeactivateCoupon)))

	// Trainer note routes
	mux.Handle("POST /api/v1/notes", staff(http.HandlerFunc(h.CreateNote)))
	mux.Handle("DELETE /api/v1/notes/{id}", staff(http.HandlerFunc(h.DeleteNote)))

	// Notification routes
	mux.Handle("GET /api/v1/notifications", member(http.HandlerFunc(h.ListNotifications)))
	mux.Handle("POST /api/v1/notifications/{id}/read", member(http.HandlerFunc(h.MarkNotificationRead)))

	// Apply global middleware
	handler := middleware.CORS(middleware.JSON(middleware.Logger(m.Identify(mux))))

	return handler
}
