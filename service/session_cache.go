package service

import (
	"strings"
	"sync"
	"time"

	"webbu/skill-api/model"
)

// DefaultSessionTTL is the freshness window for cached verifications.
const DefaultSessionTTL = 24 * time.Hour

type cacheEntry struct {
	token      string
	seriesID   string
	verifiedAt time.Time
	user       model.User
}

// SessionCache memoizes the last successful authentication per email so
// repeat requests inside the freshness window skip the credential store.
//
// Correctness relies on re-derivation, not invalidation: a miss (stale,
// mismatched or evicted) always re-verifies against durable storage, and
// Verify is side-effect-free, so last-writer-wins races on the map cost at
// most one redundant store round trip, never a wrong authentication. Write
// paths never push invalidations in here.
type SessionCache struct {
	issuer *TokenIssuer
	ttl    time.Duration

	mu      sync.Mutex
	entries map[string]cacheEntry

	now func() time.Time
}

func NewSessionCache(issuer *TokenIssuer, ttl time.Duration) *SessionCache {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	return &SessionCache{
		issuer:  issuer,
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Authenticate returns the user for the presented credentials, from cache
// when the exact pair was verified within the freshness window, otherwise
// from the credential store via the issuer. Staleness is only ever checked
// here; there is no background sweep.
func (s *SessionCache) Authenticate(email, token, seriesID string) (*model.User, error) {
	email = strings.ToLower(email)

	s.mu.Lock()
	if e, ok := s.entries[email]; ok {
		fresh := s.now().Sub(e.verifiedAt) <= s.ttl
		if fresh && e.token == token && e.seriesID == seriesID {
			u := e.user
			s.mu.Unlock()
			return &u, nil
		}

		// Expired, changed or plain wrong: drop it and re-derive from the
		// store below
		delete(s.entries, email)
	}
	s.mu.Unlock()

	user, err := s.issuer.Verify(email, token, seriesID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.entries[email] = cacheEntry{
		token:      token,
		seriesID:   seriesID,
		verifiedAt: s.now(),
		user:       *user,
	}
	s.mu.Unlock()

	return user, nil
}

// Evict drops the entry for one email. Used on logout so a cached user
// object can't outlive the session that produced it.
func (s *SessionCache) Evict(email string) {
	s.mu.Lock()
	delete(s.entries, strings.ToLower(email))
	s.mu.Unlock()
}

// Clear drops every entry. Operator escape hatch for stale cached state
// after out-of-band account edits.
func (s *SessionCache) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]cacheEntry)
	s.mu.Unlock()
}

// Len reports the number of cached entries.
func (s *SessionCache) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
