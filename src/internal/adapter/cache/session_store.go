package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/global-remit/teller-desk/src/internal/commons"
	"github.com/global-remit/teller-desk/src/internal/domain"
	"github.com/global-remit/teller-desk/src/internal/logger"
)

// SessionStore keeps send-money sessions in process. Every read and write
// goes through a deep copy so callers never share session state.
//
// A session idles out ttl after it was last read or saved. Sessions are kept
// in touch order, oldest at the back, so the idle ones are always at the tail
// and the capacity victim is the least recently touched.
type SessionStore struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	byID     map[string]*list.Element
	touched  *list.List
	now      func() time.Time
}

type storedSession struct {
	session  domain.SendMoneySession
	lastSeen time.Time
}

func NewSessionStore(capacity int, ttl time.Duration) *SessionStore {
	return &SessionStore{
		capacity: capacity,
		ttl:      ttl,
		byID:     make(map[string]*list.Element),
		touched:  list.New(),
		now:      time.Now,
	}
}

func (s *SessionStore) Get(_ context.Context, id string) (domain.SendMoneySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.byID[id]
	if !ok {
		return domain.SendMoneySession{}, commons.ErrSessionNotFound
	}
	stored := elem.Value.(*storedSession)
	now := s.now()
	if s.idle(stored, now) {
		s.drop(elem)
		return domain.SendMoneySession{}, commons.ErrSessionNotFound
	}

	stored.lastSeen = now
	s.touched.MoveToFront(elem)
	return stored.session.Clone(), nil
}

func (s *SessionStore) Save(_ context.Context, session domain.SendMoneySession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if elem, ok := s.byID[session.ID]; ok {
		stored := elem.Value.(*storedSession)
		stored.session = session.Clone()
		stored.lastSeen = now
		s.touched.MoveToFront(elem)
		return nil
	}

	s.byID[session.ID] = s.touched.PushFront(&storedSession{session: session.Clone(), lastSeen: now})
	for s.capacity > 0 && s.touched.Len() > s.capacity {
		victim := s.touched.Back()
		logger.Debug("session store full, dropping least recent session", logger.Fields{
			"sessionId": victim.Value.(*storedSession).session.ID,
			"capacity":  s.capacity,
		})
		s.drop(victim)
	}
	return nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.byID[id]; ok {
		s.drop(elem)
	}
	return nil
}

// Len reports how many sessions are held, idle ones included until swept.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// sweep drops idle sessions from the tail and stops at the first live one.
func (s *SessionStore) sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for elem := s.touched.Back(); elem != nil; elem = s.touched.Back() {
		if !s.idle(elem.Value.(*storedSession), now) {
			break
		}
		s.drop(elem)
		removed++
	}
	return removed
}

// RunJanitor drops idle sessions every interval until ctx is done.
func (s *SessionStore) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.sweep(); removed > 0 {
				logger.Debug("session janitor removed idle sessions", logger.Fields{
					"removed":   removed,
					"remaining": s.Len(),
				})
			}
		}
	}
}

func (s *SessionStore) idle(stored *storedSession, now time.Time) bool {
	return now.Sub(stored.lastSeen) > s.ttl
}

func (s *SessionStore) drop(elem *list.Element) {
	delete(s.byID, elem.Value.(*storedSession).session.ID)
	s.touched.Remove(elem)
}
