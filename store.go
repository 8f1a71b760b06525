package dungeon

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// DefaultDebounce is the quiet period before a mutation is persisted.
const DefaultDebounce = 300 * time.Millisecond

// Options configures a Store.
type Options struct {
	Storage  Storage          // defaults to a MemoryStorage
	Key      string           // defaults to DefaultKey
	Debounce time.Duration    // defaults to DefaultDebounce
	Now      func() time.Time // defaults to time.Now
	Logger   *zerolog.Logger  // defaults to zerolog.Nop()
	Bus      Notifier         // defaults to a new Bus
}

// Store owns the application state.
//
// Mutations are serialized: each one builds a new snapshot from the current
// one, swaps it, arms the debounced persist, then publishes its events once
// the store is unlocked. Readers of [Store.State] always get a consistent
// snapshot.
type Store struct {
	storage  Storage
	key      string
	debounce time.Duration
	now      func() time.Time
	log      zerolog.Logger
	bus      Notifier

	mu    sync.Mutex // serializes mutations
	state atomic.Pointer[AppState]

	pmu   sync.Mutex // protects timer and dirty
	timer *time.Timer
	dirty bool
	wmu   sync.Mutex // serializes writes to storage
}

// event is a pending notification of a mutation.
type event struct {
	typ  EventType
	data EventData
}

// NewStore returns a store holding the default state.
func NewStore(opts Options) *Store {
	s := &Store{
		storage:  opts.Storage,
		key:      opts.Key,
		debounce: opts.Debounce,
		now:      opts.Now,
		log:      zerolog.Nop(),
		bus:      opts.Bus,
	}
	if opts.Logger != nil {
		s.log = *opts.Logger
	}
	if s.storage == nil {
		s.storage = NewMemoryStorage()
	}
	if s.key == "" {
		s.key = DefaultKey
	}
	if s.debounce <= 0 {
		s.debounce = DefaultDebounce
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.bus == nil {
		s.bus = NewBus()
	}
	s.state.Store(DefaultState())
	return s
}

// Load replaces the state by the persisted document.
//
// A missing document keeps the current state. An invalid one is logged and
// discarded. Only storage failures are returned.
func (s *Store) Load(ctx context.Context) error {
	data, ok, err := s.storage.GetItem(ctx, s.key)
	if err != nil {
		return fmt.Errorf("loading %q: %w", s.key, err)
	}
	if !ok {
		s.log.Debug().Str("key", s.key).Msg("no persisted state, using defaults")
		return nil
	}
	st, err := ParseDocument(data)
	if err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("discarding persisted state")
		return nil
	}
	s.mu.Lock()
	s.state.Store(st)
	s.mu.Unlock()
	s.log.Debug().Str("key", s.key).Int("history", len(st.History)).Int("trades", len(st.TradeHistory)).Msg("state loaded")
	return nil
}

// State returns the current snapshot. It must not be modified.
func (s *Store) State() *AppState { return s.state.Load() }

// Now returns the current time of the store's clock.
func (s *Store) Now() time.Time { return s.now() }

// Subscribe registers h for the events of type t.
func (s *Store) Subscribe(t EventType, h Handler) { s.bus.Subscribe(t, h) }

// mutate applies fn to a copy of the current state.
//
// fn returns false when a precondition fails: then nothing is stored,
// persisted or published.
func (s *Store) mutate(fn func(st *AppState) ([]event, bool)) bool {
	s.mu.Lock()
	next := s.state.Load().clone()
	events, ok := fn(next)
	if !ok {
		s.mu.Unlock()
		return false
	}
	s.state.Store(next)
	s.schedulePersist()
	s.mu.Unlock()

	for _, e := range events {
		s.bus.Publish(e.typ, e.data)
	}
	return true
}

// schedulePersist (re)arms the debounced persist.
func (s *Store) schedulePersist() {
	s.pmu.Lock()
	defer s.pmu.Unlock()
	s.dirty = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		if err := s.persist(context.Background()); err != nil {
			s.log.Error().Err(err).Str("key", s.key).Msg("failed to persist state")
		}
	})
}

// persist writes the current snapshot if a mutation is pending.
func (s *Store) persist(ctx context.Context) error {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	s.pmu.Lock()
	if !s.dirty {
		s.pmu.Unlock()
		return nil
	}
	s.dirty = false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pmu.Unlock()

	data, err := EncodeDocument(s.State(), false)
	if err == nil {
		err = s.storage.SetItem(ctx, s.key, data)
	}
	if err != nil {
		s.pmu.Lock()
		s.dirty = true
		s.pmu.Unlock()
		return fmt.Errorf("persisting %q: %w", s.key, err)
	}
	s.log.Debug().Str("key", s.key).Int("bytes", len(data)).Msg("state persisted")
	return nil
}

// Flush writes a pending persist immediately.
func (s *Store) Flush(ctx context.Context) error { return s.persist(ctx) }

// Close flushes the state and closes the storage.
func (s *Store) Close(ctx context.Context) error {
	return errors.Join(s.Flush(ctx), s.storage.Close())
}
