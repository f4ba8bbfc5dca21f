package cart

import (
	"context"
	"sync"

	"food-storefront/storage"

	"github.com/rs/zerolog"
)

// Service hands out engines one at a time per profile, so concurrent requests
// from the same browser never interleave their read-modify-write cycles.
type Service struct {
	store   storage.Store
	catalog *Catalog
	log     zerolog.Logger

	mu    sync.Mutex
	locks map[string]*profileLock
}

// profileLock is dropped from the map once no request holds or waits on it.
type profileLock struct {
	sync.Mutex
	refs int
}

func NewService(store storage.Store, catalog *Catalog, log zerolog.Logger) *Service {
	return &Service{
		store:   store,
		catalog: catalog,
		log:     log,
		locks:   make(map[string]*profileLock),
	}
}

func (s *Service) Catalog() *Catalog { return s.catalog }

// With loads the profile's cart and runs fn while holding the profile lock.
func (s *Service) With(ctx context.Context, profile string, fn func(*Engine) error) error {
	l := s.acquire(profile)
	defer s.release(profile, l)

	log := s.log.With().Str("profile", profile).Logger()
	e, err := Load(ctx, storage.NewSession(s.store, profile), s.catalog, log)
	if err != nil {
		return err
	}
	return fn(e)
}

func (s *Service) acquire(profile string) *profileLock {
	s.mu.Lock()
	l, ok := s.locks[profile]
	if !ok {
		l = &profileLock{}
		s.locks[profile] = l
	}
	l.refs++
	s.mu.Unlock()

	l.Lock()
	return l
}

func (s *Service) release(profile string, l *profileLock) {
	l.Unlock()
	s.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(s.locks, profile)
	}
	s.mu.Unlock()
}
