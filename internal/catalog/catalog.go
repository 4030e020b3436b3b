package catalog

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrTraceNotFound is returned when no trace has the requested ID.
var ErrTraceNotFound = errors.New("trace not found")

// Catalog holds the traces available to the learner, built-in ones first
// and authored ones in registration order.
type Catalog struct {
	mu     sync.RWMutex
	traces []Trace
	byID   map[string]int
}

// New creates a catalog seeded with the built-in traces.
func New() *Catalog {
	c := &Catalog{byID: make(map[string]int)}
	for _, t := range Builtin() {
		c.add(t)
	}
	return c
}

// All returns every trace in display order.
func (c *Catalog) All() []Trace {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.traces)
}

// Get returns the trace with the given ID.
func (c *Catalog) Get(id string) (Trace, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.byID[id]
	if !ok {
		return Trace{}, fmt.Errorf("%w: %q", ErrTraceNotFound, id)
	}
	return c.traces[i], nil
}

// Register adds an authored trace. The trace must validate and its ID
// must not be taken.
func (c *Catalog) Register(t Trace) error {
	if res := Validate(t); !res.Valid {
		return res.Err()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, dup := c.byID[t.ID]; dup {
		return fmt.Errorf("register trace %q: duplicate id", t.ID)
	}
	c.add(t)
	return nil
}

func (c *Catalog) add(t Trace) {
	c.byID[t.ID] = len(c.traces)
	c.traces = append(c.traces, t)
}
