package wizard

import (
	"context"
	"errors"
	"sync"
	"time"

	"mechanicbook/models"
)

// Field names an input that triggers a background lookup.
type Field string

const (
	FieldVehicle Field = "vehicle"
	FieldArea    Field = "area"
)

// DefaultDebounce is how long input must be idle before a lookup fires.
const DefaultDebounce = 400 * time.Millisecond

// MinRegLength is the shortest registration (spaces removed) worth looking up.
const MinRegLength = 5

var ErrLookupUnavailable = errors.New("lookup not available")

// VehicleLookup resolves a registration to a vehicle.
type VehicleLookup interface {
	LookupVehicle(ctx context.Context, reg string) (*models.Vehicle, error)
}

// AreaLookup resolves a postcode to an area label.
type AreaLookup interface {
	LookupArea(ctx context.Context, postcode string) (string, error)
}

// LookupResult is delivered on the coordinator's channel once a lookup finishes.
// Skipped means the input failed the local pre-check and the field should be cleared.
type LookupResult struct {
	Field     Field
	Seq       uint64
	Query     string
	Vehicle   *models.Vehicle
	AreaLabel string
	Skipped   bool
	Err       error
}

type LookupOption func(*Lookups)

func WithDebounce(d time.Duration) LookupOption {
	return func(l *Lookups) { l.delay = d }
}

// WithResultBuffer sets the capacity of the results channel.
func WithResultBuffer(n int) LookupOption {
	return func(l *Lookups) { l.buffer = n }
}

// Lookups debounces per-field input and runs lookups in the background. Every fired lookup
// gets a new sequence number; a newer lookup cancels the one in flight for the same field.
// Results are delivered on Results() and must be applied by the session owner.
type Lookups struct {
	vehicles VehicleLookup
	areas    AreaLookup
	delay    time.Duration
	buffer   int

	mu      sync.Mutex
	closed  bool
	timers  map[Field]*time.Timer
	seq     map[Field]uint64
	cancels map[Field]context.CancelFunc

	ctx     context.Context
	cancel  context.CancelFunc
	results chan LookupResult
	wg      sync.WaitGroup
}

// NewLookups creates a coordinator. Either lookup may be nil; that field then reports ErrLookupUnavailable.
func NewLookups(vehicles VehicleLookup, areas AreaLookup, opts ...LookupOption) *Lookups {
	l := &Lookups{
		vehicles: vehicles,
		areas:    areas,
		delay:    DefaultDebounce,
		buffer:   8,
		timers:   make(map[Field]*time.Timer),
		seq:      make(map[Field]uint64),
		cancels:  make(map[Field]context.CancelFunc),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.ctx, l.cancel = context.WithCancel(context.Background())
	l.results = make(chan LookupResult, l.buffer)
	return l
}

// Results is the channel finished lookups are delivered on.
func (l *Lookups) Results() <-chan LookupResult { return l.results }

// Latest returns the most recent sequence number issued for field.
func (l *Lookups) Latest(field Field) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seq[field]
}

// Schedule restarts the debounce timer for field with the new query.
func (l *Lookups) Schedule(field Field, query string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	if t, ok := l.timers[field]; ok {
		t.Stop()
	}
	l.timers[field] = time.AfterFunc(l.delay, func() { l.fire(field, query) })
}

func (l *Lookups) fire(field Field, query string) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.seq[field]++
	seq := l.seq[field]
	if prev, ok := l.cancels[field]; ok {
		prev()
	}
	ctx, cancel := context.WithCancel(l.ctx)
	l.cancels[field] = cancel
	l.wg.Add(1)
	l.mu.Unlock()

	defer l.wg.Done()
	defer cancel()

	res := l.run(ctx, field, query)
	res.Seq = seq
	if ctx.Err() != nil {
		// superseded or closed
		return
	}
	select {
	case l.results <- res:
	case <-l.ctx.Done():
	}
}

func (l *Lookups) run(ctx context.Context, field Field, query string) LookupResult {
	res := LookupResult{Field: field, Query: query}
	switch field {
	case FieldVehicle:
		reg := compactReg(query)
		if len(reg) < MinRegLength {
			res.Skipped = true
			return res
		}
		if l.vehicles == nil {
			res.Err = ErrLookupUnavailable
			return res
		}
		res.Vehicle, res.Err = l.vehicles.LookupVehicle(ctx, reg)
	case FieldArea:
		if !ValidatePostcode(query) {
			res.Skipped = true
			return res
		}
		if l.areas == nil {
			res.Err = ErrLookupUnavailable
			return res
		}
		res.AreaLabel, res.Err = l.areas.LookupArea(ctx, normalizeUpper(query))
	}
	return res
}

// Close stops pending timers, cancels in-flight lookups and waits for them to exit.
func (l *Lookups) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	for _, t := range l.timers {
		t.Stop()
	}
	for _, c := range l.cancels {
		c()
	}
	l.mu.Unlock()
	l.cancel()
	l.wg.Wait()
}
