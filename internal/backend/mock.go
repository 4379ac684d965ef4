package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/five82/todo/internal/todo"
)

// Service is the remote todo API as seen by the state container.
// *Mock implements it; tests may substitute their own.
type Service interface {
	FetchAll(ctx context.Context) ([]todo.Item, error)
	Create(ctx context.Context, title string) (todo.Item, error)
	Update(ctx context.Context, item todo.Item) (todo.Item, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// Ensure Mock implements Service at compile time.
var _ Service = (*Mock)(nil)

var (
	// ErrEmptyTitle is returned by Create for a blank title.
	ErrEmptyTitle = errors.New("title is empty")
	// ErrSimulated is the error produced by FailOps faults.
	ErrSimulated = errors.New("simulated failure")
)

// DefaultLatency is the delay applied to every call.
const DefaultLatency = 300 * time.Millisecond

// FaultFunc decides whether an operation should fail. Returning nil lets
// the call proceed.
type FaultFunc func(op todo.Op) error

// WaitFunc blocks for d or until ctx is done.
type WaitFunc func(ctx context.Context, d time.Duration) error

// Mock simulates the remote todo service. It owns the authoritative
// collection for the session.
type Mock struct {
	mu      sync.Mutex
	items   []todo.Item
	nextID  int64
	latency time.Duration
	fault   FaultFunc
	wait    WaitFunc
}

// Option configures a Mock.
type Option func(*Mock)

// WithLatency overrides DefaultLatency. Negative values are treated as zero.
func WithLatency(d time.Duration) Option {
	return func(m *Mock) {
		if d < 0 {
			d = 0
		}
		m.latency = d
	}
}

// WithItems seeds the collection.
func WithItems(items []todo.Item) Option {
	return func(m *Mock) {
		m.items = cloneItems(items)
	}
}

// WithFault installs a failure hook consulted after the latency elapses.
func WithFault(fn FaultFunc) Option {
	return func(m *Mock) { m.fault = fn }
}

// WithWait replaces the latency timer.
func WithWait(fn WaitFunc) Option {
	return func(m *Mock) {
		if fn != nil {
			m.wait = fn
		}
	}
}

// FailOps returns a FaultFunc that fails every listed operation with
// ErrSimulated.
func FailOps(ops ...todo.Op) FaultFunc {
	if len(ops) == 0 {
		return nil
	}
	set := make(map[todo.Op]struct{}, len(ops))
	for _, op := range ops {
		set[op] = struct{}{}
	}
	return func(op todo.Op) error {
		if _, ok := set[op]; ok {
			return fmt.Errorf("%s: %w", op, ErrSimulated)
		}
		return nil
	}
}

// NewMock builds a Mock seeded with DefaultItems unless WithItems says
// otherwise.
func NewMock(opts ...Option) *Mock {
	m := &Mock{
		items:   DefaultItems(),
		latency: DefaultLatency,
		wait:    sleep,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.nextID = maxID(m.items) + 1
	return m
}

// FetchAll returns a copy of the collection in its stored order.
func (m *Mock) FetchAll(ctx context.Context) ([]todo.Item, error) {
	if m == nil {
		return nil, fmt.Errorf("backend is nil")
	}
	if err := m.begin(ctx, todo.OpFetch); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneItems(m.items), nil
}

// Create appends a new incomplete item with the next id.
func (m *Mock) Create(ctx context.Context, title string) (todo.Item, error) {
	if m == nil {
		return todo.Item{}, fmt.Errorf("backend is nil")
	}
	if strings.TrimSpace(title) == "" {
		return todo.Item{}, ErrEmptyTitle
	}
	if err := m.begin(ctx, todo.OpCreate); err != nil {
		return todo.Item{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	item := todo.Item{ID: m.nextID, Title: title}
	m.nextID++
	m.items = append(m.items, item)
	return item, nil
}

// Update replaces the item with the same id. Unknown ids are ignored.
func (m *Mock) Update(ctx context.Context, item todo.Item) (todo.Item, error) {
	if m == nil {
		return todo.Item{}, fmt.Errorf("backend is nil")
	}
	if err := m.begin(ctx, todo.OpUpdate); err != nil {
		return todo.Item{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == item.ID {
			m.items[i] = item
			break
		}
	}
	return item, nil
}

// Delete removes the item with the given id. Unknown ids are ignored.
func (m *Mock) Delete(ctx context.Context, id int64) (int64, error) {
	if m == nil {
		return 0, fmt.Errorf("backend is nil")
	}
	if err := m.begin(ctx, todo.OpDelete); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.items[:0]
	for _, it := range m.items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	m.items = out
	return id, nil
}

// Len reports the number of stored items.
func (m *Mock) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// begin waits out the latency and consults the fault hook. Nothing is
// mutated when it returns an error.
func (m *Mock) begin(ctx context.Context, op todo.Op) error {
	if err := m.wait(ctx, m.latency); err != nil {
		return err
	}
	if m.fault != nil {
		if err := m.fault(op); err != nil {
			return err
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func maxID(items []todo.Item) int64 {
	var max int64
	for _, it := range items {
		if it.ID > max {
			max = it.ID
		}
	}
	return max
}

func cloneItems(items []todo.Item) []todo.Item {
	if len(items) == 0 {
		return nil
	}
	dup := make([]todo.Item, len(items))
	copy(dup, items)
	return dup
}
