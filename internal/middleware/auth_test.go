package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/revtrack/backend/domain"
)

type stubVerifier struct {
	err    error
	lastID string
}

func (s *stubVerifier) VerifySession(_ context.Context, sessionID string) error {
	s.lastID = sessionID
	return s.err
}

func signToken(t *testing.T, secret, sessionID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"session_id": sessionID,
		"user_id":    "owner@example.com",
		"exp":        time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestSessionAuthPassesValidToken(t *testing.T) {
	verifier := &stubVerifier{}
	called := false
	handler := SessionAuth("secret", verifier, nil)(func(ctx *fasthttp.RequestCtx) {
		called = true
	})

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.Set("Authorization", "Bearer "+signToken(t, "secret", "sess-1"))
	handler(ctx)

	assert.True(t, called)
	assert.Equal(t, "sess-1", verifier.lastID)
	assert.Equal(t, "owner@example.com", string(ctx.Request.Header.Peek("X-User-ID")))
}

func TestSessionAuthRejectsMissingHeader(t *testing.T) {
	handler := SessionAuth("secret", &stubVerifier{}, nil)(func(ctx *fasthttp.RequestCtx) {
		t.Fatal("handler must not run")
	})

	ctx := &fasthttp.RequestCtx{}
	handler(ctx)

	assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
}

func TestSessionAuthRejectsWrongSecret(t *testing.T) {
	handler := SessionAuth("secret", &stubVerifier{}, nil)(func(ctx *fasthttp.RequestCtx) {
		t.Fatal("handler must not run")
	})

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.Set("Authorization", "Bearer "+signToken(t, "other", "sess-1"))
	handler(ctx)

	assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
}

func TestSessionAuthRejectsRevokedSession(t *testing.T) {
	verifier := &stubVerifier{err: domain.ErrSessionNotFound}
	handler := SessionAuth("secret", verifier, nil)(func(ctx *fasthttp.RequestCtx) {
		t.Fatal("handler must not run")
	})

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.Set("Authorization", "Bearer "+signToken(t, "secret", "sess-1"))
	handler(ctx)

	assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
}
