// Package auth implements the gateway's dual-mode bearer authentication
// gate. Tokens of the configured legacy length resolve through the
// session service; all other tokens go through cached RFC 7662
// introspection. The gate never rejects a request outright: a request it
// cannot authenticate falls through as NoResult so the hosting pipeline
// can apply other handlers or anonymous access.
package auth

import (
	"context"

	"go.uber.org/zap"

	"github.com/kobzev/LykkeWalletAPI/internal/auth/introspection"
	"github.com/kobzev/LykkeWalletAPI/pkg/metrics"
)

// PrincipalProvider resolves the principal behind a legacy session
// token. A nil principal with nil error means the session is unknown or
// expired; that is a miss, not an error.
type PrincipalProvider interface {
	CurrentPrincipal(ctx context.Context, token string) (*Principal, error)
}

// TokenVerifier is the introspection capability the gate delegates
// external-format tokens to.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (introspection.Result, error)
}

// Gate is the authentication gate. It composes the classifier with the
// two resolution paths; it holds no per-request state and is safe for
// concurrent use.
type Gate struct {
	classifier Classifier
	sessions   PrincipalProvider
	verifier   TokenVerifier
	logger     *zap.Logger
}

// NewGate creates a Gate.
func NewGate(classifier Classifier, sessions PrincipalProvider, verifier TokenVerifier, logger *zap.Logger) *Gate {
	return &Gate{
		classifier: classifier,
		sessions:   sessions,
		verifier:   verifier,
		logger:     logger,
	}
}

// Authenticate runs one authentication attempt over the raw
// Authorization header value and returns exactly one outcome. Each path
// makes at most one upstream call; there are no retries.
func (g *Gate) Authenticate(ctx context.Context, authorizationHeader string) Outcome {
	token, ok := TokenFromHeader(authorizationHeader)
	if !ok {
		return g.observe(NoResult(), "")
	}

	if g.classifier.Classify(token) == KindInternal {
		return g.observe(g.resolveSession(ctx, token), SchemeLykkeSession)
	}
	return g.observe(g.introspect(ctx, token), SchemeIntrospection)
}

func (g *Gate) resolveSession(ctx context.Context, token string) Outcome {
	principal, err := g.sessions.CurrentPrincipal(ctx, token)
	if err != nil {
		g.logger.Warn("session principal lookup failed", zap.Error(err))
		return Failure(err)
	}
	if principal == nil {
		return NoResult()
	}
	principal.Scheme = SchemeLykkeSession
	return Success(principal)
}

func (g *Gate) introspect(ctx context.Context, token string) Outcome {
	result, err := g.verifier.Verify(ctx, token)
	if err != nil {
		g.logger.Warn("token introspection failed", zap.Error(err))
		return Failure(err)
	}
	if !result.Active {
		return NoResult()
	}

	clientID := result.ClientID
	if clientID == "" {
		clientID = result.Sub
	}
	return Success(&Principal{
		ClientID: clientID,
		Subject:  result.Sub,
		Scopes:   result.ScopeList(),
		Scheme:   SchemeIntrospection,
	})
}

func (g *Gate) observe(o Outcome, scheme string) Outcome {
	metrics.AuthAttempts.WithLabelValues(o.Status.String(), scheme).Inc()
	return o
}
