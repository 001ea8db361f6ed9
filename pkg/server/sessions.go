package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-cardrender/pkg/card"
	"github.com/goliatone/go-cardrender/pkg/render"
)

// session is one mounted card. Instances are not safe for concurrent use,
// so every access goes through mu.
type session struct {
	mu        sync.Mutex
	id        string
	instance  *render.Instance
	createdAt time.Time
}

type sessionView struct {
	ID        string           `json:"id"`
	HTML      string           `json:"html"`
	Controls  []render.Control `json:"controls"`
	CreatedAt time.Time        `json:"createdAt"`
}

func (s *session) view() sessionView {
	return sessionView{ID: s.id, HTML: s.instance.HTML(), Controls: s.instance.Controls(), CreatedAt: s.createdAt}
}

// Session limits applied when none are configured.
const (
	DefaultSessionTTL  = 30 * time.Minute
	DefaultMaxSessions = 1000
)

// sessionStore keeps mounted cards in memory. Sessions idle for longer than
// ttl are dropped, and the least recently used one is evicted when the store
// is full.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	lastUsed map[string]time.Time
	ttl      time.Duration
	max      int
	now      func() time.Time
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*session),
		lastUsed: make(map[string]time.Time),
		ttl:      DefaultSessionTTL,
		max:      DefaultMaxSessions,
		now:      time.Now,
	}
}

func (st *sessionStore) create(c card.Card, options ...render.Option) *session {
	now := st.now()
	sess := &session{
		id:        uuid.NewString(),
		instance:  render.New(c, options...),
		createdAt: now,
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.pruneLocked(now)
	for st.max > 0 && len(st.sessions) >= st.max {
		st.evictOldestLocked()
	}
	st.sessions[sess.id] = sess
	st.lastUsed[sess.id] = now
	return sess
}

func (st *sessionStore) get(id string) (*session, bool) {
	now := st.now()
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	if st.expired(id, now) {
		st.deleteLocked(id)
		return nil, false
	}
	st.lastUsed[id] = now
	return sess, true
}

func (st *sessionStore) remove(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return false
	}
	st.deleteLocked(id)
	return true
}

func (st *sessionStore) len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

func (st *sessionStore) expired(id string, now time.Time) bool {
	return st.ttl > 0 && now.Sub(st.lastUsed[id]) > st.ttl
}

func (st *sessionStore) pruneLocked(now time.Time) {
	for id := range st.sessions {
		if st.expired(id, now) {
			st.deleteLocked(id)
		}
	}
}

func (st *sessionStore) evictOldestLocked() {
	var oldest string
	var oldestAt time.Time
	for id, at := range st.lastUsed {
		if oldest == "" || at.Before(oldestAt) {
			oldest, oldestAt = id, at
		}
	}
	if oldest == "" {
		return
	}
	st.deleteLocked(oldest)
}

func (st *sessionStore) deleteLocked(id string) {
	delete(st.sessions, id)
	delete(st.lastUsed, id)
}
