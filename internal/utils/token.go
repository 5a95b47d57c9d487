package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vaughan-dsouza/blogspot/internal/models"
)

// CustomClaims carries the identity alongside the registered claims.
type CustomClaims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

func (c *CustomClaims) Identity() models.Identity {
	return models.Identity{ID: c.UserID, Username: c.Username, Email: c.Email}
}

// GenerateToken signs an HS256 token for id that expires after ttl. It returns
// the token and its expiry as a unix timestamp.
func GenerateToken(id models.Identity, secret string, ttl time.Duration) (string, int64, error) {
	if secret == "" {
		return "", 0, errors.New("secret not configured")
	}

	now := time.Now()
	expTime := now.Add(ttl)

	claims := CustomClaims{
		UserID:   id.ID,
		Username: id.Username,
		Email:    id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			ExpiresAt: jwt.NewNumericDate(expTime),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", 0, err
	}

	return signed, expTime.Unix(), nil
}

func VerifyToken(tokenStr, secret string) (*CustomClaims, error) {
	if secret == "" {
		return nil, errors.New("secret not configured")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
	)

	var claims CustomClaims

	_, err := parser.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims.UserID == "" {
		return nil, errors.New("token has no identity")
	}

	return &claims, nil
}
