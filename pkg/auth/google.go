package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cognitiondigest/digest-backend/pkg/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserinfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

// GoogleProfile is the subset of the OpenID userinfo response we keep.
type GoogleProfile struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// NewGoogleOAuthConfig assembles the oauth2 config for the login flow.
func NewGoogleOAuthConfig(cfg config.GoogleOAuthConfig, baseURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  baseURL + "/auth/google/callback",
		Scopes:       []string{"openid", "email", "profile"},
	}
}

// FetchGoogleProfile exchanges the token for the OpenID userinfo document.
func FetchGoogleProfile(ctx context.Context, oauthCfg *oauth2.Config, token *oauth2.Token) (*GoogleProfile, error) {
	client := oauthCfg.Client(ctx, token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserinfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building userinfo request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	var profile GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decoding userinfo: %w", err)
	}
	if profile.Sub == "" {
		return nil, fmt.Errorf("userinfo missing subject")
	}
	return &profile, nil
}
