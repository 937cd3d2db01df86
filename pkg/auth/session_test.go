package auth

import (
	"testing"
	"time"

	"github.com/cognitiondigest/digest-backend/pkg/config"
)

func sessionConfig() config.AuthConfig {
	return config.AuthConfig{
		SessionSecret: "test-secret",
		SessionTTL:    720 * time.Hour,
	}
}

func TestMintAndParseSessionToken(t *testing.T) {
	cfg := sessionConfig()
	now := time.Now().UTC()

	signed, err := MintSessionToken(cfg, now, SessionProfile{
		Subject:  "google-sub-1",
		Email:    "user@example.com",
		Name:     "User",
		Provider: "google",
	})
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	claims, err := ParseSessionToken(cfg, signed)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.Subject != "google-sub-1" {
		t.Fatalf("unexpected subject %q", claims.Subject)
	}
	if claims.Email != "user@example.com" {
		t.Fatalf("unexpected email %q", claims.Email)
	}
	if claims.Provider != "google" {
		t.Fatalf("unexpected provider %q", claims.Provider)
	}
	if got := claims.ExpiresAt.Time.Sub(now.Truncate(time.Second)); got < 719*time.Hour {
		t.Fatalf("expected ~720h expiry, got %v", got)
	}
}

func TestParseSessionTokenRejectsWrongSecret(t *testing.T) {
	cfg := sessionConfig()
	signed, err := MintSessionToken(cfg, time.Now(), SessionProfile{Subject: "sub"})
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	other := cfg
	other.SessionSecret = "different"
	if _, err := ParseSessionToken(other, signed); err == nil {
		t.Fatal("expected parse to fail with wrong secret")
	}
}

func TestParseSessionTokenRejectsExpired(t *testing.T) {
	cfg := sessionConfig()
	signed, err := MintSessionToken(cfg, time.Now().Add(-1000*time.Hour), SessionProfile{Subject: "sub"})
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if _, err := ParseSessionToken(cfg, signed); err == nil {
		t.Fatal("expected parse to fail for expired token")
	}
}

func TestMintSessionTokenRequiresSecret(t *testing.T) {
	cfg := sessionConfig()
	cfg.SessionSecret = ""
	if _, err := MintSessionToken(cfg, time.Now(), SessionProfile{Subject: "sub"}); err == nil {
		t.Fatal("expected error for missing secret")
	}
}

func TestTokenAccepted(t *testing.T) {
	if TokenAccepted(nil, "") {
		t.Fatal("empty token must never be accepted")
	}
	if !TokenAccepted(nil, "anything") {
		t.Fatal("empty allow-set should accept any non-empty token")
	}

	allowed := map[string]struct{}{"alpha": {}}
	if !TokenAccepted(allowed, "alpha") {
		t.Fatal("allow-listed token rejected")
	}
	if TokenAccepted(allowed, "beta") {
		t.Fatal("unknown token accepted against configured allow-set")
	}
}

func TestBearerToken(t *testing.T) {
	if got := BearerToken("Bearer abc123"); got != "abc123" {
		t.Fatalf("unexpected token %q", got)
	}
	if got := BearerToken("bearer abc123"); got != "abc123" {
		t.Fatalf("prefix match should be case-insensitive, got %q", got)
	}
	if got := BearerToken("Basic abc123"); got != "" {
		t.Fatalf("non-bearer header should yield empty token, got %q", got)
	}
	if got := BearerToken(""); got != "" {
		t.Fatalf("empty header should yield empty token, got %q", got)
	}
}
