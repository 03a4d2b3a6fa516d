package memcache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"poisurvey/internal/survey"
	"poisurvey/pkg/utils"
)

type SessionStore interface {
	// Get returns utils.ErrSessionNotFound for unknown or expired ids.
	Get(ctx context.Context, id string) (*survey.Session, error)
	// Save stores the session and refreshes its TTL.
	Save(ctx context.Context, sess *survey.Session) error
	Delete(ctx context.Context, id string) error
}

// MemorySessions keeps sessions in process with a sliding TTL. Values are
// cloned on the way in and out so callers never share a live session.
type MemorySessions struct {
	cache *gocache.Cache
	ttl   time.Duration
}

func NewMemorySessions(ttl time.Duration) *MemorySessions {
	return &MemorySessions{
		cache: gocache.New(ttl, ttl/2),
		ttl:   ttl,
	}
}

func (s *MemorySessions) Get(_ context.Context, id string) (*survey.Session, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	return v.(*survey.Session).Clone(), nil
}

func (s *MemorySessions) Save(_ context.Context, sess *survey.Session) error {
	s.cache.Set(sess.ID, sess.Clone(), s.ttl)
	return nil
}

func (s *MemorySessions) Delete(_ context.Context, id string) error {
	s.cache.Delete(id)
	return nil
}
