package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gym-manager/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the identity store: users plus their role set.
type UserRepository struct {
	db *Database
}

func NewUserRepository(db *Database) *UserRepository {
	return &UserRepository{db: db}
}

// Save inserts the user and attaches the named roles in one transaction.
// The password field is expected to already be a hash; hashing is the
// credential verifier's job.
func (r *UserRepository) Save(ctx context.Context, user *model.User, roleNames []string) (*model.User, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var created model.User
	query := `
		INSERT INTO users (email, password, name, phone, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, email, password, name, phone, is_active, created_at, updated_at
	`
	err = tx.QueryRowxContext(ctx, query, user.Email, user.PasswordHash, user.Name, user.Phone, user.IsActive).
		StructScan(&created)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	for _, name := range roleNames {
		grant := `
			INSERT INTO user_roles (user_id, role_id)
			SELECT $1, id FROM roles WHERE name = $2
			ON CONFLICT DO NOTHING
		`
		if _, err := tx.ExecContext(ctx, grant, created.ID, name); err != nil {
			return nil, fmt.Errorf("failed to grant role %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit user: %w", err)
	}

	created.Roles = roleNames
	return &created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	query := `SELECT id, email, password, name, phone, is_active, created_at, updated_at FROM users WHERE email = $1`
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	if err := r.loadRoles(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	query := `SELECT id, email, password, name, phone, is_active, created_at, updated_at FROM users WHERE id = $1`
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	if err := r.loadRoles(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) FindRoleByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	query := `SELECT id, name FROM roles WHERE name = $1`
	err := r.db.GetContext(ctx, &role, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find role: %w", err)
	}
	return &role, nil
}

func (r *UserRepository) GrantRole(ctx context.Context, userID, roleName string) error {
	query := `
		INSERT INTO user_roles (user_id, role_id)
		SELECT $1, id FROM roles WHERE name = $2
		ON CONFLICT DO NOTHING
	`
	result, err := r.db.ExecContext(ctx, query, userID, roleName)
	if err != nil {
		return fmt.Errorf("failed to grant role: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		// Either the role name is unknown or the grant already exists;
		// only the former is an error worth surfacing.
		role, err := r.FindRoleByName(ctx, roleName)
		if err != nil {
			return err
		}
		if role == nil {
			return fmt.Errorf("unknown role %q", roleName)
		}
	}
	return nil
}

func (r *UserRepository) RevokeRole(ctx context.Context, userID, roleName string) error {
	query := `
		DELETE FROM user_roles
		WHERE user_id = $1 AND role_id = (SELECT id FROM roles WHERE name = $2)
	`
	if _, err := r.db.ExecContext(ctx, query, userID, roleName); err != nil {
		return fmt.Errorf("failed to revoke role: %w", err)
	}
	return nil
}

func (r *UserRepository) FindMembers(ctx context.Context, limit, offset int) ([]model.User, error) {
	var users []model.User
	query := `SELECT id, email, password, name, phone, is_active, created_at, updated_at FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &users, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for i := range users {
		if err := r.loadRoles(ctx, &users[i]); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// CreateAdmin provisions the bootstrap admin account, hashing the
// supplied password itself since it bypasses the verifier.
func (r *UserRepository) CreateAdmin(ctx context.Context, email, password, name string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	existing, err := r.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if !existing.HasRole(model.RoleAdmin) {
			if err := r.GrantRole(ctx, existing.ID, model.RoleAdmin); err != nil {
				return nil, err
			}
			existing.Roles = append(existing.Roles, model.RoleAdmin)
		}
		return existing, nil
	}

	return r.Save(ctx, &model.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		IsActive:     true,
	}, []string{model.RoleAdmin})
}

func (r *UserRepository) loadRoles(ctx context.Context, user *model.User) error {
	query := `
		SELECT r.name FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
		ORDER BY r.name
	`
	if err := r.db.SelectContext(ctx, &user.Roles, query, user.ID); err != nil {
		return fmt.Errorf("failed to load roles: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID string) error {
	query := `UPDATE users SET updated_at = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, time.Now(), userID)
	return err
}
