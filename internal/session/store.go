package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"go-chi-calculator/internal/engine"
)

// ErrNotFound is returned for unknown or expired session IDs.
var ErrNotFound = errors.New("session not found")

// Snapshot is a point-in-time copy of a session.
type Snapshot struct {
	ID        string
	State     engine.State
	Events    int
	UpdatedAt time.Time
}

// session owns one calculator state. mu serializes transitions.
type session struct {
	mu        sync.Mutex
	id        string
	state     engine.State
	events    int
	updatedAt time.Time
}

func (s *session) snapshot() Snapshot {
	return Snapshot{
		ID:        s.id,
		State:     s.state,
		Events:    s.events,
		UpdatedAt: s.updatedAt,
	}
}

// Store keeps calculator sessions in memory with a sliding expiration.
type Store struct {
	sessions *cache.Cache
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a Store whose sessions expire after ttl of inactivity.
// Expired sessions are purged every cleanup interval.
func NewStore(ttl, cleanup time.Duration, opts ...Option) *Store {
	s := &Store{
		sessions: cache.New(ttl, cleanup),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnEvicted registers f to run when a session expires or is deleted.
func (s *Store) OnEvicted(f func(id string)) {
	s.sessions.OnEvicted(func(key string, _ interface{}) { f(key) })
}

// Create starts a new session in the initial state.
func (s *Store) Create(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	sess := &session{
		id:        uuid.New().String(),
		state:     engine.Initial(),
		updatedAt: s.now(),
	}
	if err := s.sessions.Add(sess.id, sess, cache.DefaultExpiration); err != nil {
		return Snapshot{}, fmt.Errorf("adding session: %w", err)
	}
	return sess.snapshot(), nil
}

// Get returns the current snapshot of a session and refreshes its expiry.
func (s *Store) Get(ctx context.Context, id string) (Snapshot, error) {
	sess, err := s.lookup(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshot(), nil
}

// Apply runs ev against the session's state. Concurrent calls for the same
// session are applied one at a time.
func (s *Store) Apply(ctx context.Context, id string, ev engine.Event) (Snapshot, error) {
	sess, err := s.lookup(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	sess.state = engine.Transition(sess.state, ev)
	sess.events++
	sess.updatedAt = s.now()
	return sess.snapshot(), nil
}

// Delete removes a session.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.lookup(ctx, id); err != nil {
		return err
	}
	s.sessions.Delete(id)
	return nil
}

// Len returns the number of sessions, including expired ones not yet purged.
func (s *Store) Len() int {
	return s.sessions.ItemCount()
}

// Purge removes expired sessions immediately.
func (s *Store) Purge() {
	s.sessions.DeleteExpired()
}

func (s *Store) lookup(ctx context.Context, id string) (*session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v, ok := s.sessions.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	sess := v.(*session)
	s.sessions.SetDefault(id, sess)
	return sess, nil
}
