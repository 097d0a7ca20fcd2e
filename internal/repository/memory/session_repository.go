package memory

import (
	"time"

	"classboard-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Sessions idle out after 1 hour; expired entries are purged
	// every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *store.EditSession) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.EditSession, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.EditSession), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

// Touch resets the idle expiry without replacing the session.
func (r *SessionRepository) Touch(sessionID string) {
	if x, found := r.cache.Get(sessionID); found {
		r.cache.Set(sessionID, x, cache.DefaultExpiration)
	}
}
