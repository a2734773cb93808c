package auth

import (
	"testing"
	"time"
)

var testSecret = SessionSecretBytes("test-secret")

func TestSessionToken_RoundTrip(t *testing.T) {
	token, err := CreateSessionToken("profile-1", true, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	claims, err := VerifySessionToken(token, testSecret)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.ProfileID != "profile-1" {
		t.Errorf("expected profile-1, got %q", claims.ProfileID)
	}
	if !claims.IsAdmin {
		t.Error("expected admin claim to survive the round trip")
	}
}

func TestSessionToken_WrongSecret(t *testing.T) {
	token, err := CreateSessionToken("profile-1", false, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := VerifySessionToken(token, SessionSecretBytes("other-secret")); err == nil {
		t.Error("expected verification to fail with a different secret")
	}
}

func TestSessionToken_Expired(t *testing.T) {
	token, err := CreateSessionToken("profile-1", false, testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := VerifySessionToken(token, testSecret); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestSessionToken_Garbage(t *testing.T) {
	if _, err := VerifySessionToken("not.a.token", testSecret); err == nil {
		t.Error("expected garbage token to be rejected")
	}
}

func TestSessionSecretBytes_PadsShortSecrets(t *testing.T) {
	b := SessionSecretBytes("short")
	if len(b) != 32 {
		t.Errorf("expected 32 bytes, got %d", len(b))
	}
}
