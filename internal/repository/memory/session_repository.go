package memory

import (
	"time"

	"note-to-self/pkg/store"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

// NewSessionRepository keeps sessions for ttl and purges expired ones every
// ttl/2 (at least once a minute).
func NewSessionRepository(ttl time.Duration) *SessionRepository {
	cleanup := ttl / 2
	if cleanup <= 0 || cleanup > time.Minute {
		cleanup = time.Minute
	}
	return &SessionRepository{
		cache: cache.New(ttl, cleanup),
	}
}

// Save stores the session until its own expiry. An already expired session
// is dropped; go-cache would otherwise treat a negative duration as "never".
func (r *SessionRepository) Save(session *store.Session) {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		r.cache.Delete(session.ID)
		return
	}
	r.cache.Set(session.ID, session, ttl)
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

func (r *SessionRepository) Count() int {
	return r.cache.ItemCount()
}
