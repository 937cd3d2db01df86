package auth

import "strings"

// TokenAccepted reports whether a static token passes the allow-set.
// An empty allow-set accepts any non-empty token; this is the documented
// permissive fallback for open deployments.
func TokenAccepted(allowed map[string]struct{}, token string) bool {
	token = strings.TrimSpace(token)
	if token == "" {
		return false
	}
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[token]
	return ok
}

// BearerToken extracts the token from an Authorization header value.
// Returns "" when the header is not a bearer credential.
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
