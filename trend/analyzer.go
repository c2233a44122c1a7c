package trend

import (
	"sync"
	"time"

	"github.com/triage-run/faultline/taxonomy"
)

// Defaults for the analyzer's window geometry and thresholds.
const (
	// DefaultWindow is the sliding window length.
	DefaultWindow = time.Hour

	// DefaultCapacity bounds each category's buffer. When full, the
	// oldest entry is dropped on append.
	DefaultCapacity = 1000

	// DefaultThreshold is the spike threshold for most categories.
	DefaultThreshold = 10

	// SensitiveThreshold applies to security and memory, where even a few
	// same-category failures within the window warrant attention.
	SensitiveThreshold = 3
)

// SpikeSignal reports an unusually high rate of same-category errors.
type SpikeSignal struct {
	// Category is the spiking category.
	Category taxonomy.Category `json:"category"`

	// Count is the number of events inside the window, including the one
	// that triggered the signal.
	Count int `json:"count"`

	// Threshold is the per-category limit that was exceeded.
	Threshold int `json:"threshold"`

	// Window is the sliding window length the count was measured over.
	Window time.Duration `json:"window"`
}

// Analyzer maintains one sliding window per category. Construct it once at
// engine start; it holds no resources beyond its buffers.
type Analyzer struct {
	window   time.Duration
	capacity int
	windows  map[taxonomy.Category]*categoryWindow
}

// categoryWindow is a bounded timestamp buffer guarded by its own lock.
// The slice-plus-head layout avoids shifting on eviction; the buffer is
// compacted once the dead prefix outgrows the live tail.
type categoryWindow struct {
	mu        sync.Mutex
	threshold int
	times     []time.Time
	head      int
	over      bool
}

// Option configures an Analyzer.
type Option func(*analyzerConfig)

type analyzerConfig struct {
	window           time.Duration
	capacity         int
	defaultThreshold int
	thresholds       map[taxonomy.Category]int
}

// WithWindow sets the sliding window length.
func WithWindow(d time.Duration) Option {
	return func(c *analyzerConfig) {
		if d > 0 {
			c.window = d
		}
	}
}

// WithCapacity bounds each category's buffer.
func WithCapacity(n int) Option {
	return func(c *analyzerConfig) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithDefaultThreshold sets the spike threshold for categories without an
// explicit override.
func WithDefaultThreshold(n int) Option {
	return func(c *analyzerConfig) {
		if n > 0 {
			c.defaultThreshold = n
		}
	}
}

// WithThreshold overrides the spike threshold for a single category.
func WithThreshold(cat taxonomy.Category, n int) Option {
	return func(c *analyzerConfig) {
		if n > 0 {
			c.thresholds[cat] = n
		}
	}
}

// NewAnalyzer builds an analyzer with one window per category. Security and
// memory default to SensitiveThreshold unless overridden.
func NewAnalyzer(opts ...Option) *Analyzer {
	cfg := &analyzerConfig{
		window:           DefaultWindow,
		capacity:         DefaultCapacity,
		defaultThreshold: DefaultThreshold,
		thresholds: map[taxonomy.Category]int{
			taxonomy.CategorySecurity: SensitiveThreshold,
			taxonomy.CategoryMemory:   SensitiveThreshold,
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	a := &Analyzer{
		window:   cfg.window,
		capacity: cfg.capacity,
		windows:  make(map[taxonomy.Category]*categoryWindow, len(taxonomy.Priority)),
	}
	for _, cat := range taxonomy.Priority {
		threshold, ok := cfg.thresholds[cat]
		if !ok {
			threshold = cfg.defaultThreshold
		}
		a.windows[cat] = &categoryWindow{threshold: threshold}
	}
	return a
}

// Record notes one classified event and reports a spike when the windowed
// count crosses the category's threshold. It never fails; an invalid
// category is folded into general.
func (a *Analyzer) Record(cat taxonomy.Category, ts time.Time) *SpikeSignal {
	w, ok := a.windows[cat]
	if !ok {
		cat = taxonomy.CategoryGeneral
		w = a.windows[cat]
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.evict(ts.Add(-a.window))

	// Capacity bound: drop the oldest entry rather than growing.
	if len(w.times)-w.head >= a.capacity {
		w.head++
	}
	w.times = append(w.times, ts)
	w.compact()

	count := len(w.times) - w.head
	if count > w.threshold {
		if !w.over {
			w.over = true
			return &SpikeSignal{
				Category:  cat,
				Count:     count,
				Threshold: w.threshold,
				Window:    a.window,
			}
		}
		return nil
	}
	w.over = false
	return nil
}

// Count returns the current windowed count for the category, measured
// against the given reference time.
func (a *Analyzer) Count(cat taxonomy.Category, now time.Time) int {
	w, ok := a.windows[cat]
	if !ok {
		return 0
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.evict(now.Add(-a.window))
	return len(w.times) - w.head
}

// Threshold returns the spike threshold configured for the category.
func (a *Analyzer) Threshold(cat taxonomy.Category) int {
	if w, ok := a.windows[cat]; ok {
		return w.threshold
	}
	return 0
}

// evict advances head past entries at or before the cutoff.
func (w *categoryWindow) evict(cutoff time.Time) {
	for w.head < len(w.times) && !w.times[w.head].After(cutoff) {
		w.head++
	}
}

// compact reclaims the dead prefix once it dominates the buffer.
func (w *categoryWindow) compact() {
	if w.head > 0 && w.head*2 >= len(w.times) {
		w.times = append([]time.Time{}, w.times[w.head:]...)
		w.head = 0
	}
}
