package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestJWTRoundTrip(t *testing.T) {
	secret := "test-secret"
	memberID := uuid.New()

	token, err := GenerateJWT(secret, memberID, "somchai", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	claims, err := ParseJWT(secret, token)
	if err != nil {
		t.Fatalf("ParseJWT() error = %v", err)
	}
	if claims.MemberID != memberID {
		t.Errorf("MemberID = %s, want %s", claims.MemberID, memberID)
	}
	if claims.ActorName != "somchai" {
		t.Errorf("ActorName = %q, want somchai", claims.ActorName)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT("secret-a", uuid.New(), "somchai", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}
	if _, err := ParseJWT("secret-b", token); err == nil {
		t.Error("ParseJWT() should reject a token signed with another secret")
	}
}

func TestJWTExpired(t *testing.T) {
	// Non-positive expirations fall back to 24h, so use one that lapses
	// before the parse below runs.
	token, err := GenerateJWT("secret", uuid.New(), "somchai", time.Nanosecond)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := ParseJWT("secret", token); err == nil {
		t.Error("ParseJWT() should reject an expired token")
	}
}

func TestJWTGarbage(t *testing.T) {
	if _, err := ParseJWT("secret", "not-a-token"); err == nil {
		t.Error("ParseJWT() should reject malformed input")
	}
}
