package session

import (
	"errors"
	"fmt"
	"time"

	"cinema-ticket/internal/data/entity"
	"cinema-ticket/internal/dto/response"
	"cinema-ticket/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMalformedToken = errors.New("malformed token")

// decodeClaims reads the token payload without verifying the signature;
// only the server holds the key.
func decodeClaims(token string) (*utils.TokenClaims, time.Time, error) {
	var claims utils.TokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	if claims.ExpiresAt == nil {
		return nil, time.Time{}, fmt.Errorf("%w: missing exp", ErrMalformedToken)
	}
	return &claims, claims.ExpiresAt.Time, nil
}

// userFromClaims rebuilds the identity carried by the token. Fields the
// token lacks keep defaults until the profile is fetched.
func userFromClaims(c *utils.TokenClaims) *response.UserResponse {
	user := &response.UserResponse{
		ID:       c.UserID,
		Username: c.Username,
		Email:    c.Email,
		Role:     entity.UserRole(c.Role),
		Status:   entity.UserStatusActive,
	}
	if c.Name != "" {
		name := c.Name
		user.FullName = &name
	}
	return user
}
