package state

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/tLat87/SportJournal/internal/logger"
	"github.com/tLat87/SportJournal/internal/metrics"
)

// Loader reads the persisted snapshot. An empty snapshot means nothing has been
// persisted yet.
type Loader interface {
	LoadSnapshot() (Snapshot, error)
}

// Persister writes a full snapshot after each dispatched action.
type Persister interface {
	SaveSnapshot(Snapshot) error
}

// Container holds the single application state and serializes every change to
// it. It is safe for concurrent use.
type Container struct {
	mu      sync.Mutex
	state   State
	version uint64
	subs    []func(State)

	clock     func() time.Time
	persister Persister
	recorder  *metrics.Recorder
	initial   *State
}

// Option configures a Container.
type Option func(*Container)

// WithClock replaces time.Now for seeding and for time-dependent actions.
func WithClock(clock func() time.Time) Option {
	return func(c *Container) { c.clock = clock }
}

// WithPersister saves every new state through p.
func WithPersister(p Persister) Option {
	return func(c *Container) { c.persister = p }
}

// WithRecorder reports dispatches, saves and state gauges to r.
func WithRecorder(r *metrics.Recorder) Option {
	return func(c *Container) { c.recorder = r }
}

// WithInitial starts the container from s instead of Initial(clock()).
func WithInitial(s State) Option {
	return func(c *Container) { c.initial = &s }
}

// New returns a container holding Initial state unless WithInitial is given.
func New(opts ...Option) *Container {
	c := &Container{clock: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	if c.initial != nil {
		c.state = *c.initial
	} else {
		c.state = Initial(c.clock())
	}
	c.observe(c.state)
	return c
}

// Hydrate overlays the snapshot read from l onto the current state.
func (c *Container) Hydrate(l Loader) error {
	snap, err := l.LoadSnapshot()
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	restored, err := Restore(c.state, snap)
	if err != nil {
		return err
	}
	c.state = restored
	c.version++
	c.observe(restored)

	logger.Debug("State hydrated", "keys", len(snap), "entries", len(restored.Journal.Entries))
	return nil
}

// Dispatch reduces a into the state, notifies subscribers and saves the new
// snapshot. A failed save is returned but the in-memory change is kept.
func (c *Container) Dispatch(a Action) error {
	c.mu.Lock()
	if t, ok := a.(timestamped); ok {
		a = t.withTime(c.clock())
	}
	next := Reduce(c.state, a)
	c.state = next
	c.version++
	version := c.version
	subs := slices.Clone(c.subs)

	c.recorder.ObserveDispatch(a.Kind())
	c.observe(next)
	logger.Debug("Dispatched action", "kind", a.Kind(), "version", version)

	err := c.save(next)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return err
}

// Flush saves the current state without dispatching anything.
func (c *Container) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(c.state)
}

// save must be called with mu held so snapshots reach the persister in order.
func (c *Container) save(s State) error {
	if c.persister == nil {
		return nil
	}

	start := time.Now()
	snap, err := s.Snapshot()
	if err == nil {
		err = c.persister.SaveSnapshot(snap)
	}
	c.recorder.ObserveSave(time.Since(start), err)

	if err != nil {
		logger.Error("Failed to persist state", "error", err)
		return fmt.Errorf("failed to persist state: %w", err)
	}
	return nil
}

func (c *Container) observe(s State) {
	c.recorder.ObserveState(s.Notifications.UnreadCount, len(s.Journal.Entries))
}

// State returns the current state.
func (c *Container) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Version increases by one with every dispatched action and hydration.
func (c *Container) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// Subscribe registers fn to be called with the new state after every dispatch.
func (c *Container) Subscribe(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// Now returns the container clock's current time.
func (c *Container) Now() time.Time {
	return c.clock()
}
