package auth

import "strings"

const bearerPrefix = "Bearer "

// TokenFromHeader extracts the bearer token from an Authorization header
// value. A missing header or a different scheme yields ok=false; that is
// "no credential presented", not an error.
func TokenFromHeader(header string) (string, bool) {
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", false
	}
	return token, true
}

// Kind tells which verification path a token takes.
type Kind int

const (
	// KindInternal marks tokens issued by the legacy session mechanism,
	// recognised purely by length.
	KindInternal Kind = iota

	// KindExternal marks everything else; these go through introspection.
	KindExternal
)

// Classifier decides the verification path for a token. Classification is
// a pure function of the token string.
type Classifier struct {
	// InternalTokenLength is the exact length of legacy session tokens
	// (64 in the reference deployment).
	InternalTokenLength int
}

// Classify returns the verification path for token.
func (c Classifier) Classify(token string) Kind {
	if len(token) == c.InternalTokenLength {
		return KindInternal
	}
	return KindExternal
}
