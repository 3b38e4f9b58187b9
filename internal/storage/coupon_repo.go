package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gym-manager/internal/model"
)

type CouponRepository struct {
	db *Database
}

func NewCouponRepository(db *Database) *CouponRepository {
	return &CouponRepository{db: db}
}

func (r *CouponRepository) Create(ctx context.Context, req *model.CreateCouponRequest) (*model.Coupon, error) {
	code := req.Code
	if code == "" {
		code = strings.ToUpper(uuid.NewString()[:8])
	}

	var c model.Coupon
	query := `
		INSERT INTO coupons (code, percent_off, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, code, percent_off, expires_at, is_active, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query, code, req.PercentOff, req.ExpiresAt).StructScan(&c)
	if err != nil {
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}
	return &c, nil
}

func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	var c model.Coupon
	query := `SELECT id, code, percent_off, expires_at, is_active, created_at, updated_at FROM coupons WHERE code = $1`
	err := r.db.GetContext(ctx, &c, query, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find coupon: %w", err)
	}
	return &c, nil
}

func (r *CouponRepository) FindAll(ctx context.Context, limit, offset int) ([]model.Coupon, error) {
	var cs []model.Coupon
	query := `
		SELECT id, code, percent_off, expires_at, is_active, created_at, updated_at
		FROM coupons ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`
	if err := r.db.SelectContext(ctx, &cs, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	return cs, nil
}

func (r *CouponRepository) Deactivate(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE coupons SET is_active = false, updated_at = $1 WHERE id = $2`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to deactivate coupon: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("coupon not found")
	}
	return nil
}
