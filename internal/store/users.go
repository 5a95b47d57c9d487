package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/vaughan-dsouza/blogspot/internal/models"
)

type UserStore struct {
	DB *sqlx.DB
}

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{DB: db}
}

// Create inserts u. A duplicate username or email yields models.ErrConflict.
func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	_, err := s.DB.ExecContext(ctx, s.DB.Rebind(`
		INSERT INTO users (id, username, email, password_hash)
		VALUES (?, ?, ?, ?)
	`), u.ID, u.Username, u.Email, u.Password)

	if isUniqueViolation(err) {
		return models.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *UserStore) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var n int
	err := s.DB.GetContext(ctx, &n, s.DB.Rebind(`
		SELECT COUNT(*) FROM users WHERE lower(email) = lower(?) OR lower(username) = lower(?)
	`), email, username)
	if err != nil {
		return false, fmt.Errorf("lookup user: %w", err)
	}
	return n > 0, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getOne(ctx, `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE lower(email) = lower(?)
	`, email)
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.getOne(ctx, `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE id = ?
	`, id)
}

// Delete removes the user; the store cascades to their posts.
func (s *UserStore) Delete(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, s.DB.Rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	ok, err := affected(res)
	if err != nil {
		return err
	}
	if !ok {
		return models.ErrNotFound
	}
	return nil
}

func (s *UserStore) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	err := s.DB.GetContext(ctx, &u, s.DB.Rebind(query), arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
