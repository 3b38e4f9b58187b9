package api

import (
	"encoding/json"
	"net/http"

	"github.com/gym-manager/internal/model"
)

// CreateCoupon godoc
// @Summary Create a coupon
// @Description Create a promotion coupon; code is generated when omitted (admin only)
// @Tags Coupons
// @Accept json
// @Produce json
// @Param request body model.CreateCouponRequest true "Coupon details"
// @Success 201 {object} model.Coupon
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /coupons [post]
func (h *Handler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := validateCreateCoupon(&req); len(errs) > 0 {
		respondFieldErrors(w, errs)
		return
	}

	c, err := h.coupons.Create(r.Context(), &req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create coupon")
		return
	}

	respondJSON(w, http.StatusCreated, c)
}

// ListCoupons godoc
// @Summary List coupons
// @Description All coupons, newest first (admin only)
// @Tags Coupons
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /coupons [get]
func (h *Handler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	cs, err := h.coupons.FindAll(r.Context(), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch coupons")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"coupons": cs,
		"limit":   limit,
		"offset":  offset,
	})
}

// CheckCoupon godoc
// @Summary Check a coupon code
// @Description Whether the code is currently redeemable
// @Tags Coupons
// @Produce json
// @Param code path string true "Coupon code"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Unknown code"
// @Security BearerAuth
// @Router /coupons/{code}/check [get]
func (h *Handler) CheckCoupon(w http.ResponseWriter, r *http.Request) {
	c, err := h.coupons.FindByCode(r.Context(), r.PathValue("code"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch coupon")
		return
	}
	if c == nil {
		respondError(w, http.StatusNotFound, "unknown coupon code")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"code":        c.Code,
		"percent_off": c.PercentOff,
		"redeemable":  c.Redeemable(h.now()),
	})
}

// DeactivateCoupon godoc
// @Summary Deactivate a coupon
// @Tags Coupons
// @Produce json
// @Param id path string true "Coupon ID"
// @Success 200 {object} map[string]string "Status"
// @Failure 404 {object} map[string]string "Coupon not found"
// @Security BearerAuth
// @Router /coupons/{id} [delete]
func (h *Handler) DeactivateCoupon(w http.ResponseWriter, r *http.Request) {
	if err := h.coupons.Deactivate(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, http.StatusNotFound, "coupon not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}
