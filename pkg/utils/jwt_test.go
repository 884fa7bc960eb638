package utils

import (
	"errors"
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	token, exp, err := NewAccessToken("secret", TokenClaims{UserID: 7, Username: "bob", Role: "USER"}, now, time.Hour)
	if err != nil {
		t.Fatalf("NewAccessToken() error = %v", err)
	}
	if !exp.Equal(now.Add(time.Hour)) {
		t.Errorf("exp = %v, want %v", exp, now.Add(time.Hour))
	}

	claims, err := ParseAccessToken("secret", token)
	if err != nil {
		t.Fatalf("ParseAccessToken() error = %v", err)
	}
	if claims.UserID != 7 || claims.Username != "bob" || claims.Role != "USER" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.Subject != "7" {
		t.Errorf("Subject = %q, want 7", claims.Subject)
	}
}

func TestParseAccessTokenRejects(t *testing.T) {
	now := time.Now()
	valid, _, _ := NewAccessToken("secret", TokenClaims{UserID: 1}, now, time.Hour)
	expired, _, _ := NewAccessToken("secret", TokenClaims{UserID: 1}, now.Add(-2*time.Hour), time.Hour)

	tests := []struct {
		name   string
		secret string
		token  string
	}{
		{"wrong secret", "other", valid},
		{"expired", "secret", expired},
		{"garbage", "secret", "not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseAccessToken(tt.secret, tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("error = %v, want ErrInvalidToken", err)
			}
		})
	}
}
