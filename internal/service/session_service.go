package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"note-to-self/internal/dto"
	"note-to-self/internal/pkg/access"
	"note-to-self/internal/pkg/logger"
	"note-to-self/internal/pkg/serverutils"
	"note-to-self/internal/repository/memory"
	"note-to-self/pkg/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ISessionService issues and checks the access tokens that stand for an
// opened notebook. It satisfies serverutils.GrantResolver.
type ISessionService interface {
	Open(notebookId int64) (*dto.OpenNotebookResponse, error)
	Resolve(token string) (*access.Grant, error)
	Close(token string) error
}

type notebookClaims struct {
	NotebookId int64 `json:"notebook_id"`
	jwt.RegisteredClaims
}

type sessionService struct {
	sessions *memory.SessionRepository
	secret   []byte
	ttl      time.Duration
	logger   logger.ILogger
	now      func() time.Time
}

func NewSessionService(sessions *memory.SessionRepository, secret string, ttl time.Duration, log logger.ILogger) ISessionService {
	return &sessionService{
		sessions: sessions,
		secret:   []byte(secret),
		ttl:      ttl,
		logger:   log,
		now:      time.Now,
	}
}

func (s *sessionService) Open(notebookId int64) (*dto.OpenNotebookResponse, error) {
	now := s.now()
	session := &store.Session{
		ID:         uuid.NewString(),
		NotebookId: notebookId,
		ExpiresAt:  now.Add(s.ttl),
	}

	claims := notebookClaims{
		NotebookId: notebookId,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   strconv.FormatInt(notebookId, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	s.sessions.Save(session)
	s.logger.Info("SessionService", "notebook opened", map[string]interface{}{
		"session_id":  session.ID,
		"notebook_id": notebookId,
	})

	return &dto.OpenNotebookResponse{
		Id:        notebookId,
		Token:     signedToken,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// Resolve verifies the token signature and expiry, then requires the session
// it names to still be live and bound to the same notebook. Any failure is
// ErrForbidden so the caller is sent back to notebook selection.
func (s *sessionService) Resolve(tokenString string) (*access.Grant, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		s.logger.Debug("SessionService", "rejected access token", map[string]interface{}{"error": err.Error()})
		return nil, serverutils.ErrForbidden
	}

	session, ok := s.sessions.Get(claims.ID)
	if !ok || session.Expired(s.now()) || session.NotebookId != claims.NotebookId {
		return nil, serverutils.ErrForbidden
	}

	return &access.Grant{
		SessionId:  session.ID,
		NotebookId: session.NotebookId,
		ExpiresAt:  session.ExpiresAt,
	}, nil
}

// Close revokes the session behind the token. Closing an unknown or already
// closed session is not an error.
func (s *sessionService) Close(tokenString string) error {
	claims, err := s.parse(tokenString)
	if err != nil {
		return serverutils.ErrForbidden
	}
	s.sessions.Delete(claims.ID)
	s.logger.Info("SessionService", "session closed", map[string]interface{}{"session_id": claims.ID})
	return nil
}

func (s *sessionService) parse(tokenString string) (*notebookClaims, error) {
	claims := &notebookClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.ID == "" {
		return nil, errors.New("token carries no session")
	}
	return claims, nil
}
