package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/aluiggi96/Doc-MYPE/internal/logger"
)

// Mutation computes the next value of a slot from the current one.
// Returning changed=false skips the write and leaves the slot version untouched.
type Mutation[T any] func(current T) (next T, changed bool, err error)

// Slot binds an in-memory value to one persistent key.
//
// The stored value is decoded once on Open. A missing key yields the default
// without writing it; an undecodable value also yields the default and is only
// replaced by the next successful update. Every update is persisted before the
// in-memory value is swapped, so a value observed through Get is always durable.
type Slot[T any] struct {
	mu      sync.RWMutex
	backend Backend
	key     string
	value   T
	version uint64

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(T)

	log zerolog.Logger
}

// Open loads key from backend, falling back to def when the key is absent,
// unreadable or undecodable. It never fails.
func Open[T any](ctx context.Context, backend Backend, key string, def T) *Slot[T] {
	s := &Slot[T]{
		backend: backend,
		key:     key,
		value:   def,
		subs:    make(map[int]func(T)),
		log:     logger.WithComponent("store").With().Str("key", key).Logger(),
	}

	data, ok, err := backend.Load(ctx, key)
	switch {
	case err != nil:
		s.log.Error().Err(err).Msg("slot unreadable, using default")
	case !ok:
		s.log.Debug().Msg("slot empty, using default")
	default:
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			s.log.Warn().Err(err).Msg("slot holds an undecodable value, using default")
			break
		}
		s.value = v
	}
	return s
}

// Key returns the persistent key of the slot.
func (s *Slot[T]) Key() string { return s.key }

// Get returns the current value. Callers must not mutate shared structure
// (slice elements, pointers) reachable from it; use Update instead.
func (s *Slot[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Version increases by one on every persisted update.
func (s *Slot[T]) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Update applies fn under the slot lock, persists the result and swaps it in.
// If persisting fails the in-memory value is left as it was.
func (s *Slot[T]) Update(ctx context.Context, fn Mutation[T]) (T, error) {
	s.mu.Lock()
	next, changed, err := fn(s.value)
	if err != nil {
		current := s.value
		s.mu.Unlock()
		return current, err
	}
	if !changed {
		current := s.value
		s.mu.Unlock()
		return current, nil
	}

	data, err := json.Marshal(next)
	if err != nil {
		current := s.value
		s.mu.Unlock()
		return current, fmt.Errorf("failed to encode slot %s: %w", s.key, err)
	}
	if err := s.backend.Save(ctx, s.key, data); err != nil {
		current := s.value
		s.mu.Unlock()
		return current, err
	}

	s.value = next
	s.version++
	s.mu.Unlock()

	s.notify(next)
	return next, nil
}

// Set replaces the value unconditionally.
func (s *Slot[T]) Set(ctx context.Context, v T) error {
	_, err := s.Update(ctx, func(T) (T, bool, error) { return v, true, nil })
	return err
}

// Subscribe registers fn to be called with the new value after each persisted
// update. Notifications run on the updating goroutine after the slot lock is
// released. The returned function removes the subscription.
func (s *Slot[T]) Subscribe(fn func(T)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Slot[T]) notify(v T) {
	s.subMu.Lock()
	fns := make([]func(T), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}
