package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v4"
	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revtrack/backend/domain"
	redisRepo "github.com/revtrack/backend/repository/redis"
)

type memorySessionRepo struct {
	sessions map[string]*domain.Session
}

func newMemorySessionRepo() *memorySessionRepo {
	return &memorySessionRepo{sessions: make(map[string]*domain.Session)}
}

func (m *memorySessionRepo) Get(_ context.Context, id string) (*domain.Session, error) {
	session, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (m *memorySessionRepo) Save(_ context.Context, session *domain.Session) error {
	m.sessions[session.ID] = session
	return nil
}

func (m *memorySessionRepo) Delete(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *memorySessionRepo) Extend(_ context.Context, id string, ttlSeconds int) error {
	session, ok := m.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	session.ExpiresAt = time.Now().Add(time.Duration(ttlSeconds) * time.Second)
	return nil
}

func newTestUseCase() (*UseCase, *memorySessionRepo) {
	repo := newMemorySessionRepo()
	uc := New(repo, Credentials{Email: "owner@example.com", Password: "hunter2"}, "test-secret", "revtrack", nil)
	return uc, repo
}

func TestLoginIssuesSessionBackedToken(t *testing.T) {
	uc, repo := newTestUseCase()

	token, err := uc.Login(context.Background(), "owner@example.com", "hunter2", time.Hour)
	require.NoError(t, err)
	require.NotNil(t, token.Session)
	assert.Contains(t, repo.sessions, token.Session.ID)

	parsed, err := jwt.Parse(token.AccessToken, func(_ *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, token.Session.ID, claims["session_id"])
	assert.Equal(t, "owner@example.com", claims["user_id"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	_, err := uc.Login(ctx, "owner@example.com", "wrong", time.Hour)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, "stranger@example.com", "hunter2", time.Hour)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifySession(t *testing.T) {
	uc, repo := newTestUseCase()
	ctx := context.Background()

	token, err := uc.Login(ctx, "owner@example.com", "hunter2", time.Hour)
	require.NoError(t, err)

	assert.NoError(t, uc.VerifySession(ctx, token.Session.ID))

	// Revoked sessions fail even with a still-valid JWT.
	require.NoError(t, uc.Logout(ctx, token.Session.ID))
	assert.Error(t, uc.VerifySession(ctx, token.Session.ID))

	// Expired sessions are cleaned up on sight.
	repo.sessions["stale"] = &domain.Session{
		ID:        "stale",
		UserID:    "owner@example.com",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	assert.Error(t, uc.VerifySession(ctx, "stale"))
	assert.NotContains(t, repo.sessions, "stale")
}

func TestRefreshExtendsSession(t *testing.T) {
	uc, repo := newTestUseCase()
	ctx := context.Background()

	token, err := uc.Login(ctx, "owner@example.com", "hunter2", time.Minute)
	require.NoError(t, err)

	refreshed, err := uc.Refresh(ctx, token.Session.ID, time.Hour)
	require.NoError(t, err)
	assert.True(t, refreshed.Session.ExpiresAt.After(token.Session.ExpiresAt))
	assert.NotEmpty(t, refreshed.AccessToken)

	// The extension must be persisted, not just reflected in the return value:
	// once the original expiry passes, verification reads the stored session.
	stored, ok := repo.sessions[token.Session.ID]
	require.True(t, ok)
	assert.True(t, stored.ExpiresAt.After(token.Session.ExpiresAt))
}

func TestRefreshedSessionOutlivesOriginalExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	sessions := redisRepo.NewSessionRepository(client, time.Hour)
	uc := New(sessions, Credentials{Email: "owner@example.com", Password: "hunter2"}, "test-secret", "revtrack", nil)
	ctx := context.Background()

	token, err := uc.Login(ctx, "owner@example.com", "hunter2", time.Second)
	require.NoError(t, err)

	_, err = uc.Refresh(ctx, token.Session.ID, time.Hour)
	require.NoError(t, err)

	stored, err := sessions.Get(ctx, token.Session.ID)
	require.NoError(t, err)
	assert.True(t, stored.ExpiresAt.After(time.Now().Add(30*time.Minute)),
		"stored expiry must move with the refresh")

	// Past the original one-second window the session still verifies.
	mr.FastForward(2 * time.Second)
	assert.NoError(t, uc.VerifySession(ctx, token.Session.ID))
}
