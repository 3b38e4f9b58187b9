package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gym-manager/internal/model"
)

type MembershipRepository struct {
	db *Database
}

func NewMembershipRepository(db *Database) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) Create(ctx context.Context, req *model.CreateMembershipRequest) (*model.Membership, error) {
	var m model.Membership
	query := `
		INSERT INTO memberships (member_id, plan, starts_at, ends_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, member_id, plan, starts_at, ends_at, is_active, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query, req.MemberID, req.Plan, req.StartsAt, req.EndsAt).
		StructScan(&m)
	if err != nil {
		return nil, fmt.Errorf("failed to create membership: %w", err)
	}
	return &m, nil
}

func (r *MembershipRepository) FindByID(ctx context.Context, id string) (*model.Membership, error) {
	var m model.Membership
	query := `
		SELECT id, member_id, plan, starts_at, ends_at, is_active, created_at, updated_at
		FROM memberships WHERE id = $1
	`
	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find membership: %w", err)
	}
	return &m, nil
}

func (r *MembershipRepository) FindByMember(ctx context.Context, memberID string) ([]model.Membership, error) {
	var ms []model.Membership
	query := `
		SELECT id, member_id, plan, starts_at, ends_at, is_active, created_at, updated_at
		FROM memberships WHERE member_id = $1 ORDER BY starts_at DESC
	`
	if err := r.db.SelectContext(ctx, &ms, query, memberID); err != nil {
		return nil, fmt.Errorf("failed to find memberships: %w", err)
	}
	return ms, nil
}

func (r *MembershipRepository) Update(ctx context.Context, id string, req *model.UpdateMembershipRequest) (*model.Membership, error) {
	m, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}

	if req.Plan != nil {
		m.Plan = *req.Plan
	}
	if req.EndsAt != nil {
		m.EndsAt = *req.EndsAt
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}

	query := `
		UPDATE memberships SET plan = $1, ends_at = $2, is_active = $3, updated_at = $4
		WHERE id = $5
		RETURNING id, member_id, plan, starts_at, ends_at, is_active, created_at, updated_at
	`
	err = r.db.QueryRowxContext(ctx, query, m.Plan, m.EndsAt, m.IsActive, time.Now(), id).StructScan(m)
	if err != nil {
		return nil, fmt.Errorf("failed to update membership: %w", err)
	}
	return m, nil
}

// FindExpiringBetween returns active memberships whose end date falls in
// the window; used by the reminder sweep.
func (r *MembershipRepository) FindExpiringBetween(ctx context.Context, from, to time.Time) ([]model.Membership, error) {
	var ms []model.Membership
	query := `
		SELECT id, member_id, plan, starts_at, ends_at, is_active, created_at, updated_at
		FROM memberships
		WHERE is_active = true AND ends_at >= $1 AND ends_at < $2
	`
	if err := r.db.SelectContext(ctx, &ms, query, from, to); err != nil {
		return nil, fmt.Errorf("failed to find expiring memberships: %w", err)
	}
	return ms, nil
}
