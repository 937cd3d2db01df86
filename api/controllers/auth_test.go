package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	pkgAuth "github.com/cognitiondigest/digest-backend/pkg/auth"
	"github.com/cognitiondigest/digest-backend/pkg/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		SessionSecret: "test-secret",
		SessionCookie: "session",
		SessionTTL:    time.Hour,
	}
}

func TestAuthMeReturnsSessionClaims(t *testing.T) {
	cfg := testAuthConfig()
	signed, err := pkgAuth.MintSessionToken(cfg, time.Now(), pkgAuth.SessionProfile{
		Subject:  "google-sub-1",
		Email:    "user@example.com",
		Name:     "Test User",
		Provider: "google",
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: signed})
	rec := httptest.NewRecorder()

	AuthMe(cfg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	var resp sessionInfoResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "google-sub-1" || resp.Email != "user@example.com" || resp.Provider != "google" {
		t.Fatalf("unexpected claims %+v", resp)
	}
}

func TestAuthMeWithoutCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	AuthMe(testAuthConfig()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Not authenticated") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestAuthMeWithInvalidSession(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "garbage"})
	rec := httptest.NewRecorder()

	AuthMe(testAuthConfig()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid or expired session") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestAuthLogoutClearsCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	AuthLogout(testAuthConfig()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	cleared := false
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "session" && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("session cookie was not cleared")
	}
}

func TestGoogleLoginRedirectsWithState(t *testing.T) {
	oauthCfg := pkgAuth.NewGoogleOAuthConfig(config.GoogleOAuthConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	}, "http://localhost:4000")

	rec := httptest.NewRecorder()
	GoogleLogin(oauthCfg, false).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/google", nil))

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302 got %d", rec.Code)
	}
	location := rec.Header().Get("Location")
	if !strings.Contains(location, "client_id=client-id") {
		t.Fatalf("consent url missing client id: %s", location)
	}
	var state string
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == oauthStateCookie {
			state = cookie.Value
		}
	}
	if state == "" {
		t.Fatal("state cookie not set")
	}
	if !strings.Contains(location, "state="+state) {
		t.Fatalf("redirect does not carry the state nonce: %s", location)
	}
}

func TestGoogleCallbackRejectsStateMismatch(t *testing.T) {
	cfg := &config.Config{Auth: testAuthConfig()}
	oauthCfg := pkgAuth.NewGoogleOAuthConfig(config.GoogleOAuthConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	}, "http://localhost:4000")

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=evil&code=x", nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "expected"})
	rec := httptest.NewRecorder()

	GoogleCallback(cfg, oauthCfg, quietTestLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}
