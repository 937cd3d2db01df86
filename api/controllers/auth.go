package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/cognitiondigest/digest-backend/api/responses"
	pkgAuth "github.com/cognitiondigest/digest-backend/pkg/auth"
	"github.com/cognitiondigest/digest-backend/pkg/config"
	"github.com/cognitiondigest/digest-backend/pkg/logger"
)

const (
	oauthStateCookie    = "oauth_state"
	oauthRedirectCookie = "login_redirect"
)

type sessionInfoResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email,omitempty"`
	Name     string `json:"name,omitempty"`
	Picture  string `json:"picture,omitempty"`
	Provider string `json:"provider"`
}

// GoogleLogin starts the OAuth flow: record a state nonce and the post-login
// redirect target, then send the client to the Google consent screen.
func GoogleLogin(oauthCfg *oauth2.Config, secureCookies bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     oauthStateCookie,
			Value:    state,
			Path:     "/",
			MaxAge:   300,
			HttpOnly: true,
			Secure:   secureCookies,
			SameSite: http.SameSiteLaxMode,
		})
		if redirect := r.URL.Query().Get("redirect"); redirect != "" {
			http.SetCookie(w, &http.Cookie{
				Name:     oauthRedirectCookie,
				Value:    redirect,
				Path:     "/",
				MaxAge:   300,
				HttpOnly: true,
				Secure:   secureCookies,
				SameSite: http.SameSiteLaxMode,
			})
		}
		http.Redirect(w, r, oauthCfg.AuthCodeURL(state), http.StatusFound)
	}
}

// GoogleCallback finishes the OAuth flow: verify state, exchange the code,
// fetch the Google profile, mint a session cookie, and redirect back.
func GoogleCallback(cfg *config.Config, oauthCfg *oauth2.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		stateCookie, err := r.Cookie(oauthStateCookie)
		if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
			responses.WriteJSON(w, http.StatusUnauthorized, responses.MessageBody{Message: "OAuth state mismatch"})
			return
		}
		clearCookie(w, oauthStateCookie)

		code := r.URL.Query().Get("code")
		if code == "" {
			responses.WriteJSON(w, http.StatusUnauthorized, responses.MessageBody{Message: "Missing authorization code"})
			return
		}

		token, err := oauthCfg.Exchange(ctx, code)
		if err != nil {
			logg.Error(ctx, "oauth code exchange failed", err)
			responses.WriteJSON(w, http.StatusUnauthorized, responses.MessageBody{Message: "Failed to exchange authorization code"})
			return
		}

		profile, err := pkgAuth.FetchGoogleProfile(ctx, oauthCfg, token)
		if err != nil {
			logg.Error(ctx, "fetching google userinfo failed", err)
			responses.WriteJSON(w, http.StatusUnauthorized, responses.MessageBody{Message: "Failed to fetch Google userinfo"})
			return
		}

		sessionJWT, err := pkgAuth.MintSessionToken(cfg.Auth, time.Now(), pkgAuth.SessionProfile{
			Subject:  profile.Sub,
			Email:    profile.Email,
			Name:     profile.Name,
			Picture:  profile.Picture,
			Provider: "google",
		})
		if err != nil {
			logg.Error(ctx, "minting session token failed", err)
			responses.WriteJSON(w, http.StatusInternalServerError, responses.MessageBody{Message: "internal server error"})
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     cfg.Auth.SessionCookie,
			Value:    sessionJWT,
			Path:     "/",
			MaxAge:   int(cfg.Auth.SessionTTL.Seconds()),
			HttpOnly: true,
			Secure:   cfg.App.IsProd(),
			SameSite: http.SameSiteLaxMode,
		})

		redirectTo := "/"
		if cookie, err := r.Cookie(oauthRedirectCookie); err == nil && cookie.Value != "" {
			redirectTo = cookie.Value
			clearCookie(w, oauthRedirectCookie)
		}
		logg.Info(logg.WithField(ctx, "subject", profile.Sub), "google login completed")
		http.Redirect(w, r, redirectTo, http.StatusFound)
	}
}

// AuthMe returns the identity carried by the session cookie.
func AuthMe(cfg config.AuthConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(cfg.SessionCookie)
		if err != nil || cookie.Value == "" {
			responses.WriteJSON(w, http.StatusUnauthorized, responses.MessageBody{Message: "Not authenticated"})
			return
		}

		claims, err := pkgAuth.ParseSessionToken(cfg, cookie.Value)
		if err != nil {
			responses.WriteJSON(w, http.StatusUnauthorized, responses.MessageBody{Message: "Invalid or expired session"})
			return
		}

		responses.WriteJSON(w, http.StatusOK, sessionInfoResponse{
			ID:       claims.Subject,
			Email:    claims.Email,
			Name:     claims.Name,
			Picture:  claims.Picture,
			Provider: claims.Provider,
		})
	}
}

// AuthLogout clears the session cookie.
func AuthLogout(cfg config.AuthConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clearCookie(w, cfg.SessionCookie)
		responses.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
