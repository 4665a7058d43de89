package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/vinixspb/vnxChooseApple-bot/pkg/catalog"
)

// SessionRepository keeps live selection sessions keyed by chat user id.
// Expiry doubles as the implementation-defined session timeout: an expired
// session simply forces a fresh Start, which equals Reset semantics.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Default expiration of 1 hour, purge sweep every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *catalog.Session) {
	r.cache.Set(session.UserID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(userID string) (*catalog.Session, bool) {
	if x, found := r.cache.Get(userID); found {
		return x.(*catalog.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(userID string) {
	r.cache.Delete(userID)
}
