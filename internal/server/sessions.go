package server

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rewired-gh/launchdash/internal/dashboard"
)

// session is one browser's dashboard view.
type session struct {
	id       string
	shell    *dashboard.Shell
	lastSeen time.Time
}

// sessionStore keeps one Shell per browser with idle expiry and an upper bound.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	max      int
	newShell func() *dashboard.Shell
	now      func() time.Time
}

func newSessionStore(ttl time.Duration, max int, newShell func() *dashboard.Shell) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*session),
		ttl:      ttl,
		max:      max,
		newShell: newShell,
		now:      time.Now,
	}
}

// get returns a live session and refreshes its idle timer.
func (s *sessionStore) get(id string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if now.Sub(sess.lastSeen) > s.ttl {
		delete(s.sessions, id)
		return nil, false
	}
	sess.lastSeen = now
	return sess, true
}

// create starts a new session with a fresh Shell in its initial state.
func (s *sessionStore) create() *session {
	sess := &session{
		id:       uuid.New().String(),
		shell:    s.newShell(),
		lastSeen: s.now(),
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.rotate()
	return sess
}

// len returns the number of tracked sessions.
func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// rotate drops expired sessions and, above the limit, the least recently used ones.
func (s *sessionStore) rotate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
		}
	}

	if len(s.sessions) <= s.max {
		return
	}

	type sessionWithTime struct {
		id       string
		lastSeen time.Time
	}

	list := make([]sessionWithTime, 0, len(s.sessions))
	for id, sess := range s.sessions {
		list = append(list, sessionWithTime{id: id, lastSeen: sess.lastSeen})
	}

	// Sort by last seen (oldest first)
	sort.Slice(list, func(i, j int) bool {
		return list[i].lastSeen.Before(list[j].lastSeen)
	})

	toRemove := len(s.sessions) - s.max
	for i := 0; i < toRemove; i++ {
		delete(s.sessions, list[i].id)
	}
}
