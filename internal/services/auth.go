package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vaughan-dsouza/blogspot/internal/models"
	"github.com/vaughan-dsouza/blogspot/internal/utils"
)

// UserStore is the persistence the credential service needs.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// AuthOptions configures hashing and token issuance.
type AuthOptions struct {
	Secret     string
	TokenTTL   time.Duration
	BcryptCost int
}

type AuthService struct {
	users UserStore
	opts  AuthOptions
}

func NewAuthService(users UserStore, opts AuthOptions) *AuthService {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{users: users, opts: opts}
}

// HashPassword returns a salted bcrypt hash of pw.
func HashPassword(pw string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", &models.FieldError{Field: "password", Rule: "maxbytes", Param: "72"}
	}
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword returns nil when pw matches hash.
func CheckPassword(hash, pw string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw))
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	if err := models.Validate(&req); err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByEmailOrUsername(ctx, req.Email, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.ErrConflict
	}

	hash, err := HashPassword(req.Password, s.opts.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{
		ID:       uuid.NewString(),
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	return s.issue(u.Identity())
}

// Login verifies credentials. An unknown email and a wrong password both
// return models.ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if err := models.Validate(&req); err != nil {
		return nil, err
	}

	u, err := s.users.GetByEmail(ctx, req.Email)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}

	if err := CheckPassword(u.Password, req.Password); err != nil {
		return nil, models.ErrUnauthorized
	}

	return s.issue(u.Identity())
}

// Me re-reads the caller from the users table.
func (s *AuthService) Me(ctx context.Context, id models.Identity) (*models.User, error) {
	return s.users.GetByID(ctx, id.ID)
}

// Verify resolves a bearer token to the identity it asserts.
func (s *AuthService) Verify(token string) (models.Identity, error) {
	claims, err := utils.VerifyToken(token, s.opts.Secret)
	if err != nil {
		return models.Identity{}, errors.Join(models.ErrUnauthorized, err)
	}
	return claims.Identity(), nil
}

func (s *AuthService) issue(id models.Identity) (*models.AuthResponse, error) {
	token, _, err := utils.GenerateToken(id, s.opts.Secret, s.opts.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &models.AuthResponse{Token: token, User: id}, nil
}
