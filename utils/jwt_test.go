package utils

import (
	"testing"
	"time"
)

func TestJWT_RoundTrip(t *testing.T) {
	token, err := GenerateJWT("507f1f77bcf86cd799439011", "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	userID, err := ParseJWT(token, "secret")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if userID != "507f1f77bcf86cd799439011" {
		t.Errorf("expected original user id, got %q", userID)
	}
}

func TestJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT("507f1f77bcf86cd799439011", "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ParseJWT(token, "other-secret"); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWT_Expired(t *testing.T) {
	token, err := GenerateJWT("507f1f77bcf86cd799439011", "secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ParseJWT(token, "secret"); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWT_Garbage(t *testing.T) {
	if _, err := ParseJWT("not.a.token", "secret"); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
