package booking

import (
	"sync"
	"time"
)

// DefaultDebounce matches the original form autosave interval.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer coalesces a stream of values into the last one observed, ready
// once the input has been quiet for the configured window. Time is passed in
// explicitly so the behavior tests without real timers.
type Debouncer struct {
	window  time.Duration
	value   string
	pending bool
	last    time.Time
}

func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultDebounce
	}
	return &Debouncer{window: window}
}

// Put records a new value, restarting the quiet window.
func (d *Debouncer) Put(v string, now time.Time) {
	d.value = v
	d.pending = true
	d.last = now
}

// Due reports whether a pending value has sat quiet for the full window.
func (d *Debouncer) Due(now time.Time) bool {
	return d.pending && !now.Before(d.last.Add(d.window))
}

// Take returns the pending value if it is due and clears it. The value is
// always the most recent Put, so the final keystroke is never dropped.
func (d *Debouncer) Take(now time.Time) (string, bool) {
	if !d.Due(now) {
		return "", false
	}
	d.pending = false
	return d.value, true
}

// Flush returns any pending value immediately, due or not.
func (d *Debouncer) Flush() (string, bool) {
	if !d.pending {
		return "", false
	}
	d.pending = false
	return d.value, true
}

// FieldDebouncer commits per-field values after the debounce window, driven
// by real timers. Each field has its own window; a new value for a field
// cancels that field's pending commit.
type FieldDebouncer struct {
	mu      sync.Mutex
	window  time.Duration
	commit  func(field, value string)
	timers  map[string]*time.Timer
	pending map[string]string
}

func NewFieldDebouncer(window time.Duration, commit func(field, value string)) *FieldDebouncer {
	if window <= 0 {
		window = DefaultDebounce
	}
	return &FieldDebouncer{
		window:  window,
		commit:  commit,
		timers:  make(map[string]*time.Timer),
		pending: make(map[string]string),
	}
}

// Set schedules value for field, replacing any pending value.
func (f *FieldDebouncer) Set(field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending[field] = value
	if t, ok := f.timers[field]; ok {
		t.Stop()
	}
	f.timers[field] = time.AfterFunc(f.window, func() { f.fire(field) })
}

func (f *FieldDebouncer) fire(field string) {
	f.mu.Lock()
	v, ok := f.pending[field]
	if ok {
		delete(f.pending, field)
		delete(f.timers, field)
	}
	f.mu.Unlock()
	if ok {
		f.commit(field, v)
	}
}

// Flush commits everything pending right away and stops the timers.
func (f *FieldDebouncer) Flush() {
	f.mu.Lock()
	fields := make(map[string]string, len(f.pending))
	for k, v := range f.pending {
		fields[k] = v
	}
	f.pending = make(map[string]string)
	for _, t := range f.timers {
		t.Stop()
	}
	f.timers = make(map[string]*time.Timer)
	f.mu.Unlock()

	for k, v := range fields {
		f.commit(k, v)
	}
}
