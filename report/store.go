package report

import (
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/psat-tools/psat-server/logger"
)

// Store keeps generated reports in memory until they expire.
type Store struct {
	cache  *cache.Cache
	ttl    time.Duration
	logger logger.Logger
}

// NewStore returns a store whose entries live for ttl and are swept every cleanupInterval.
func NewStore(ttl, cleanupInterval time.Duration, log logger.Logger) *Store {
	s := &Store{
		cache:  cache.New(ttl, cleanupInterval),
		ttl:    ttl,
		logger: log,
	}
	s.cache.OnEvicted(func(id string, _ interface{}) {
		s.logger.Debugf("report %s expired", id)
	})
	return s
}

// Save stores the report under its id.
func (s *Store) Save(r *Report) {
	if r == nil {
		return
	}
	s.cache.Set(r.ID, r, s.ttl)
	s.logger.Debugf("stored report %s, %d cookies", r.ID, len(r.Cookies))
}

// Get returns the report stored under id.
func (s *Store) Get(id string) (*Report, bool) {
	value, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	r, ok := value.(*Report)
	if !ok {
		s.logger.Errorf("report store holds %T under %s", value, id)
		return nil, false
	}
	return r, true
}

// Len returns the number of reports currently held, expired or not.
func (s *Store) Len() int {
	return s.cache.ItemCount()
}
