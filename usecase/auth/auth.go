package auth

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/revtrack/backend/domain"
	"github.com/revtrack/backend/repository"
)

// Credentials identify the single dashboard user, supplied via configuration.
type Credentials struct {
	Email    string
	Password string
}

// Token pairs a signed JWT with its backing session.
type Token struct {
	AccessToken string          `json:"accessToken"`
	Session     *domain.Session `json:"session"`
}

type UseCase struct {
	sessions  repository.SessionRepository
	creds     Credentials
	jwtSecret []byte
	issuer    string
	logger    *zap.Logger
}

func New(sessions repository.SessionRepository, creds Credentials, jwtSecret, issuer string, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		sessions:  sessions,
		creds:     creds,
		jwtSecret: []byte(jwtSecret),
		issuer:    issuer,
		logger:    logger,
	}
}

// Login verifies the configured credentials and issues a session-backed JWT.
func (uc *UseCase) Login(ctx context.Context, email, password string, ttl time.Duration) (*Token, error) {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if !uc.match(email, password) {
		uc.logger.Warn("login rejected", zap.String("email", email))
		return nil, domain.ErrUnauthorized
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    uc.creds.Email,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	signed, err := uc.sign(session)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("session issued", zap.String("session_id", session.ID))
	return &Token{AccessToken: signed, Session: session}, nil
}

// Refresh extends an existing session and re-issues the JWT.
func (uc *UseCase) Refresh(ctx context.Context, sessionID string, ttl time.Duration) (*Token, error) {
	if ttl <= 0 {
		ttl = time.Hour
	}

	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(time.Now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}

	if err := uc.sessions.Extend(ctx, sessionID, int(ttl.Seconds())); err != nil {
		return nil, err
	}
	session.ExpiresAt = time.Now().Add(ttl)

	signed, err := uc.sign(session)
	if err != nil {
		return nil, err
	}
	return &Token{AccessToken: signed, Session: session}, nil
}

// VerifySession reports whether the session behind a validated JWT still
// exists; revoked or expired sessions fail even with a valid token.
func (uc *UseCase) VerifySession(ctx context.Context, sessionID string) error {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.IsExpired(time.Now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return domain.ErrSessionNotFound
	}
	return nil
}

// Logout revokes the session.
func (uc *UseCase) Logout(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

func (uc *UseCase) match(email, password string) bool {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(uc.creds.Email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(uc.creds.Password)) == 1
	return emailOK && passOK
}

func (uc *UseCase) sign(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"iss":        uc.issuer,
		"user_id":    session.UserID,
		"session_id": session.ID,
		"exp":        session.ExpiresAt.Unix(),
		"iat":        session.CreatedAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(uc.jwtSecret)
}
