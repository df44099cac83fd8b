package reader

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taiwoajasa245/pocket-pastor/pkg/logger"
)

const (
	DefaultMaxSessions = 10000
	DefaultMaxPerUser  = 8
)

type session struct {
	view     *View
	lastSeen time.Time
}

// Sessions holds open views by id and drops the ones idle for longer than
// the TTL. Opening a session past maxTotal, or past maxPerUser for a
// signed-in user, evicts the least recently used one.
type Sessions struct {
	mu         sync.Mutex
	items      map[string]*session
	ttl        time.Duration
	maxTotal   int
	maxPerUser int
	now        func() time.Time
	newID      func() string
	log        *zap.Logger
}

func NewSessions(ttl time.Duration, log *zap.Logger) *Sessions {
	return &Sessions{
		items:      make(map[string]*session),
		ttl:        ttl,
		maxTotal:   DefaultMaxSessions,
		maxPerUser: DefaultMaxPerUser,
		now:        time.Now,
		newID:      uuid.NewString,
		log:        logger.OrNop(log),
	}
}

func (s *Sessions) Add(v *View) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v.userID != 0 {
		s.trim(s.maxPerUser, func(sess *session) bool { return sess.view.userID == v.userID })
	}
	s.trim(s.maxTotal, func(*session) bool { return true })

	id := s.newID()
	s.items[id] = &session{view: v, lastSeen: s.now()}
	return id
}

// Get returns the view if it exists and belongs to userID, and marks it as
// used.
func (s *Sessions) Get(id string, userID int) (*View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.items[id]
	if !ok || sess.view.userID != userID {
		return nil, false
	}
	if s.expired(sess) {
		delete(s.items, id)
		return nil, false
	}
	sess.lastSeen = s.now()
	return sess.view, true
}

// trim evicts the least recently used matching sessions until fewer than
// limit remain. A limit of zero or less disables it.
func (s *Sessions) trim(limit int, match func(*session) bool) {
	if limit <= 0 {
		return
	}
	for {
		var (
			oldestID string
			oldest   *session
			count    int
		)
		for id, sess := range s.items {
			if !match(sess) {
				continue
			}
			count++
			if oldest == nil || sess.lastSeen.Before(oldest.lastSeen) {
				oldestID, oldest = id, sess
			}
		}
		if count < limit {
			return
		}
		delete(s.items, oldestID)
		s.log.Debug("evicted reader session over limit",
			zap.Int("user_id", oldest.view.userID),
			zap.Int("limit", limit))
	}
}

func (s *Sessions) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Sessions) expired(sess *session) bool {
	return s.ttl > 0 && s.now().Sub(sess.lastSeen) > s.ttl
}

// Evict removes idle sessions and returns how many were removed.
func (s *Sessions) Evict() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, sess := range s.items {
		if s.expired(sess) {
			delete(s.items, id)
			n++
		}
	}
	return n
}

// Run evicts idle sessions every interval until ctx is done.
func (s *Sessions) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Evict(); n > 0 {
				s.log.Debug("evicted idle reader sessions", zap.Int("count", n))
			}
		}
	}
}
