package store

import (
	"context"
	"time"

	"github.com/luberoncellar/cellar-server/internal/domain"
)

// CreateSession stores a new refresh-token session.
func (s *Store) CreateSession(ctx context.Context, session *domain.Session) error {
	return s.Sessions.Create(ctx, session.ID, session)
}

// GetSessionByTokenHash retrieves a session by the hash of its refresh token.
func (s *Store) GetSessionByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error) {
	return s.Sessions.GetByIndex(ctx, "token", tokenHash)
}

// UpdateSession updates an existing session (token rotation, last-used).
func (s *Store) UpdateSession(ctx context.Context, session *domain.Session) error {
	return s.Sessions.Update(ctx, session.ID, session)
}

// DeleteSession removes a session. Idempotent.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	return s.Sessions.Delete(ctx, id)
}

// DeleteExpiredSessions removes every session whose refresh window has
// passed and returns how many were deleted.
func (s *Store) DeleteExpiredSessions(ctx context.Context) (int, error) {
	now := time.Now()

	var expired []string
	for sess, err := range s.Sessions.List(ctx) {
		if err != nil {
			return 0, err
		}
		if sess.IsExpired(now) {
			expired = append(expired, sess.ID)
		}
	}

	deleted := 0
	for _, id := range expired {
		if err := s.Sessions.Delete(ctx, id); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}
