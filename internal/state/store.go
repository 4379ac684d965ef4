package state

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/five82/todo/internal/backend"
	"github.com/five82/todo/internal/todo"
)

// ErrBusy is returned when an operation is dispatched while another one
// is still in flight.
var ErrBusy = errors.New("another operation is in flight")

// Job completes a dispatched operation: it calls the backend and applies
// the outcome to the store. The returned error is also recorded in the
// snapshot.
type Job func() error

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Items               []todo.Item
	Loading             bool
	Pending             todo.Op // operation in flight, empty when idle
	Error               string  // message of the last failed operation
	LastUpdated         time.Time
	ConsecutiveFailures int
}

// Stats counts completed and outstanding items.
func (s Snapshot) Stats() (done, pending int) {
	for _, it := range s.Items {
		if it.Completed {
			done++
		} else {
			pending++
		}
	}
	return done, pending
}

// Find returns the item with the given id.
func (s Snapshot) Find(id int64) (todo.Item, bool) {
	for _, it := range s.Items {
		if it.ID == id {
			return it, true
		}
	}
	return todo.Item{}, false
}

// Store is the client-side state container. It holds the item list and
// the loading/error flags, and allows a single operation in flight.
type Store struct {
	service backend.Service
	logger  *slog.Logger
	now     func() time.Time

	mu       sync.RWMutex
	snapshot Snapshot
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for operation tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithNow overrides the clock used for LastUpdated.
func WithNow(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates an empty store backed by service.
func New(service backend.Service, opts ...Option) *Store {
	s := &Store{
		service: service,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchAll replaces the item list with the backend's collection.
func (s *Store) FetchAll(ctx context.Context) (Job, error) {
	return s.dispatch(todo.OpFetch, func(log *slog.Logger) error {
		items, err := s.service.FetchAll(ctx)
		if err != nil {
			return err
		}
		s.resolve(func(snap *Snapshot) {
			snap.Items = cloneItems(items)
		})
		log.Debug("fetched todos", "count", len(items))
		return nil
	})
}

// Create asks the backend for a new item and appends it.
func (s *Store) Create(ctx context.Context, title string) (Job, error) {
	return s.dispatch(todo.OpCreate, func(log *slog.Logger) error {
		item, err := s.service.Create(ctx, title)
		if err != nil {
			return err
		}
		s.resolve(func(snap *Snapshot) {
			snap.Items = append(snap.Items, item)
		})
		log.Debug("created todo", "id", item.ID)
		return nil
	})
}

// Update sends item to the backend and replaces the stored item with the
// same id. Unknown ids leave the list unchanged.
func (s *Store) Update(ctx context.Context, item todo.Item) (Job, error) {
	return s.dispatch(todo.OpUpdate, func(log *slog.Logger) error {
		updated, err := s.service.Update(ctx, item)
		if err != nil {
			return err
		}
		s.resolve(func(snap *Snapshot) {
			for i := range snap.Items {
				if snap.Items[i].ID == updated.ID {
					snap.Items[i] = updated
					return
				}
			}
		})
		log.Debug("updated todo", "id", updated.ID, "completed", updated.Completed)
		return nil
	})
}

// Delete removes the item with the given id. Unknown ids leave the list
// unchanged.
func (s *Store) Delete(ctx context.Context, id int64) (Job, error) {
	return s.dispatch(todo.OpDelete, func(log *slog.Logger) error {
		removed, err := s.service.Delete(ctx, id)
		if err != nil {
			return err
		}
		s.resolve(func(snap *Snapshot) {
			kept := make([]todo.Item, 0, len(snap.Items))
			for _, it := range snap.Items {
				if it.ID != removed {
					kept = append(kept, it)
				}
			}
			snap.Items = kept
		})
		log.Debug("deleted todo", "id", removed)
		return nil
	})
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Items = cloneItems(s.snapshot.Items)
	return snap
}

// Busy reports whether an operation is in flight.
func (s *Store) Busy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Loading
}

// dispatch marks op as pending and returns the job that completes it.
func (s *Store) dispatch(op todo.Op, call func(log *slog.Logger) error) (Job, error) {
	if s == nil || s.service == nil {
		return nil, errors.New("store has no backend")
	}
	if err := s.begin(op); err != nil {
		s.logger.Debug("operation rejected", "op", string(op), "error", err)
		return nil, err
	}

	log := s.logger.With("op", string(op), "request_id", uuid.NewString())
	log.Debug("operation started")

	return func() error {
		start := s.now()
		if err := call(log); err != nil {
			s.fail(op, err)
			log.Warn("operation failed", "error", err, "elapsed", s.now().Sub(start))
			return err
		}
		log.Debug("operation finished", "elapsed", s.now().Sub(start))
		return nil
	}, nil
}

func (s *Store) begin(op todo.Op) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot.Loading {
		return ErrBusy
	}
	s.snapshot.Loading = true
	s.snapshot.Pending = op
	s.snapshot.Error = ""
	return nil
}

// resolve applies a successful result and clears the loading state.
func (s *Store) resolve(apply func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	apply(&s.snapshot)
	s.snapshot.Loading = false
	s.snapshot.Pending = ""
	s.snapshot.LastUpdated = s.now()
	s.snapshot.ConsecutiveFailures = 0
}

// fail records err and clears the loading state. Items are kept.
func (s *Store) fail(op todo.Op, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := ""
	if err != nil {
		msg = strings.TrimSpace(err.Error())
	}
	if msg == "" {
		msg = op.FailureMessage()
	}
	s.snapshot.Error = msg
	s.snapshot.Loading = false
	s.snapshot.Pending = ""
	s.snapshot.LastUpdated = s.now()
	s.snapshot.ConsecutiveFailures++
}

func cloneItems(items []todo.Item) []todo.Item {
	if len(items) == 0 {
		return nil
	}
	dup := make([]todo.Item, len(items))
	copy(dup, items)
	return dup
}
