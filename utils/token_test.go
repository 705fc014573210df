package utils

import (
	"os"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	token, err := GenerateToken("user-123", "editor")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty token")
	}

	claims, err := VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.UserID != "user-123" || claims.Role != "editor" {
		t.Errorf("claims mismatch: %+v", claims)
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	if _, err := VerifyToken("not-a-token"); err == nil {
		t.Fatal("expected an error for a malformed token")
	}
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	os.Setenv("JWT_SECRET", "secret-a")
	token, err := GenerateToken("user-123", "user")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	os.Setenv("JWT_SECRET", "secret-b")
	defer os.Unsetenv("JWT_SECRET")
	if _, err := VerifyToken(token); err == nil {
		t.Fatal("expected an error for a token signed with another secret")
	}
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	os.Unsetenv("JWT_SECRET")
	if _, err := GenerateToken("user-123", "user"); err == nil {
		t.Fatal("expected an error when JWT_SECRET is unset")
	}
}
