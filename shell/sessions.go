package shell

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const sessionCookie = "route_weather_session"

const (
	// DefaultSessionTTL время жизни неактивной сессии
	DefaultSessionTTL = 30 * time.Minute
	// DefaultMaxSessions предел числа одновременно хранимых сессий
	DefaultMaxSessions = 10000
)

type session struct {
	mu       sync.Mutex
	state    *State
	lastSeen time.Time
}

// Sessions хранит состояние формы для каждого браузера.
// Неактивные сессии удаляются по истечении ttl, при переполнении
// вытесняется самая давняя.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	max      int
	now      func() time.Time
}

func NewSessions(ttl time.Duration, maxSessions int) *Sessions {
	return &Sessions{
		sessions: make(map[string]*session),
		ttl:      ttl,
		max:      maxSessions,
		now:      time.Now,
	}
}

// With вызывает fn с состоянием формы текущего пользователя.
// Новому пользователю выдается cookie с идентификатором сессии.
func (s *Sessions) With(w http.ResponseWriter, r *http.Request, fn func(*State)) {
	sess := s.lookup(w, r)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	fn(sess.state)
}

// Len число активных сессий
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Sessions) lookup(w http.ResponseWriter, r *http.Request) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictIdle(now)

	if c, err := r.Cookie(sessionCookie); err == nil {
		if sess, ok := s.sessions[c.Value]; ok {
			sess.lastSeen = now
			return sess
		}
	}

	if s.max > 0 && len(s.sessions) >= s.max {
		s.evictOldest()
	}

	id := uuid.NewString()
	sess := &session{state: NewState(), lastSeen: now}
	s.sessions[id] = sess

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return sess
}

// evictIdle удаляет сессии, к которым не обращались дольше ttl.
// Вызывается под s.mu.
func (s *Sessions) evictIdle(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
		}
	}
}

func (s *Sessions) evictOldest() {
	var oldestID string
	var oldest time.Time
	for id, sess := range s.sessions {
		if oldestID == "" || sess.lastSeen.Before(oldest) {
			oldestID, oldest = id, sess.lastSeen
		}
	}
	delete(s.sessions, oldestID)
}
