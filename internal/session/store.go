package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound means the session ID is unknown or has expired.
var ErrNotFound = errors.New("session not found")

type entry struct {
	mu      sync.Mutex // serializes transitions for this session
	session Session
	deleted bool // set when swept so an in-flight transition cannot resurrect it
}

// Store keeps all live sessions in memory, keyed by session ID. There is
// no durable storage: sessions die with the process or after the idle TTL.
// Update holds a per-session lock for the whole transition, so no two
// tasks ever run concurrently inside one session.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	ttl     time.Duration
	now     func() time.Time
}

// NewStore creates a Store with the given idle TTL
func NewStore(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]*entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Create registers a fresh session and returns it
func (st *Store) Create() Session {
	now := st.now()
	s := Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		LastSeen:  now,
	}

	st.mu.Lock()
	st.entries[s.ID] = &entry{session: s}
	st.mu.Unlock()

	return s
}

// Get returns a snapshot of the session. Reading counts as activity, so
// a session being viewed is not swept out from under the viewer.
func (st *Store) Get(id string) (Session, bool) {
	st.mu.RLock()
	e, ok := st.entries[id]
	st.mu.RUnlock()
	if !ok {
		return Session{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return Session{}, false
	}
	e.session.LastSeen = st.now()
	return e.session, true
}

// Update applies fn to the session under its lock. fn receives a copy;
// the returned value replaces the stored session only when fn succeeds,
// so a failed transition leaves the previous state untouched.
func (st *Store) Update(id string, fn func(Session) (Session, error)) (Session, error) {
	st.mu.RLock()
	e, ok := st.entries[id]
	st.mu.RUnlock()
	if !ok {
		return Session{}, ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return Session{}, ErrNotFound
	}

	next, err := fn(e.session)
	if err != nil {
		return e.session, err
	}

	next.ID = e.session.ID
	next.CreatedAt = e.session.CreatedAt
	next.LastSeen = st.now()
	e.session = next

	return next, nil
}

// Reset replaces the session with an empty one, keeping its identity
func (st *Store) Reset(id string) (Session, error) {
	return st.Update(id, func(s Session) (Session, error) {
		return Session{}, nil
	})
}

// Delete removes the session
func (st *Store) Delete(id string) {
	st.mu.Lock()
	e, ok := st.entries[id]
	delete(st.entries, id)
	st.mu.Unlock()

	if ok {
		e.mu.Lock()
		e.deleted = true
		e.mu.Unlock()
	}
}

// Len returns the number of live sessions
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.entries)
}

// Sweep drops sessions idle longer than the TTL and returns how many.
// LastSeen is read under the entry lock; an entry whose lock is held has
// a transition in flight and is skipped, never expired mid-transition.
func (st *Store) Sweep() int {
	cutoff := st.now().Add(-st.ttl)

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, e := range st.entries {
		if !e.mu.TryLock() {
			continue
		}
		if !e.deleted && e.session.LastSeen.Before(cutoff) {
			e.deleted = true
			delete(st.entries, id)
			removed++
		}
		e.mu.Unlock()
	}
	return removed
}

// StartSweeper runs Sweep on the given interval until ctx is done
func (st *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.Sweep()
		}
	}
}
