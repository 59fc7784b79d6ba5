package auth

import (
	"errors"
	"testing"
	"time"
)

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	t.Run("round trip carries the principal", func(t *testing.T) {
		token, err := m.Generate("user-1", "owner@example.com")
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		claims, err := m.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if claims.UserID() != "user-1" {
			t.Errorf("UserID = %q, want user-1", claims.UserID())
		}
		if claims.Email != "owner@example.com" {
			t.Errorf("Email = %q, want owner@example.com", claims.Email)
		}
	})

	t.Run("empty user id is refused", func(t *testing.T) {
		if _, err := m.Generate("", ""); err == nil {
			t.Error("expected error for empty user id")
		}
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		other := NewJWTManager("other-secret", time.Hour)
		token, err := other.Generate("user-1", "")
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		issued := NewJWTManager("test-secret", time.Minute)
		issued.now = func() time.Time { return time.Now().Add(-time.Hour) }
		token, err := issued.Generate("user-1", "")
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		if _, err := m.Validate("not-a-token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}
