package session

import (
	"context"
	"strings"
)

type tokenKey struct{}

// WithToken attaches a per-request token, e.g. the caller's Authorization
// header in the BFF.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok && token != ""
}

// ParseAuthorization accepts "Token <key>" or "Bearer <key>".
func ParseAuthorization(header string) string {
	header = strings.TrimSpace(header)
	for _, scheme := range []string{"Token ", "Bearer "} {
		if len(header) > len(scheme) && strings.EqualFold(header[:len(scheme)], scheme) {
			return strings.TrimSpace(header[len(scheme):])
		}
	}
	return ""
}

// TokenSource is satisfied by *Manager and client.StaticToken.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// ContextTokenSource prefers a token attached with WithToken and falls back
// to Fallback (may be nil).
type ContextTokenSource struct {
	Fallback TokenSource
}

func (c ContextTokenSource) Token(ctx context.Context) (string, error) {
	if token, ok := TokenFromContext(ctx); ok {
		return token, nil
	}
	if c.Fallback == nil {
		return "", nil
	}
	return c.Fallback.Token(ctx)
}
