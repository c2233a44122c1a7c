package faultline

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/triage-run/faultline/rules"
	"github.com/triage-run/faultline/signal"
	"github.com/triage-run/faultline/taxonomy"
	"github.com/triage-run/faultline/trend"
)

// Config is the YAML-loadable engine configuration. Every field is
// optional; absent fields keep their built-in defaults. The confidence
// floor and the keyword weights were chosen empirically, so deployments are
// expected to recalibrate them against real failure data.
//
// Example:
//
//	confidence_floor: 0.3
//	trend:
//	  window: 1h
//	  default_threshold: 10
//	  thresholds:
//	    security: 3
//	    memory: 3
//	keywords:
//	  network:
//	    - term: proxy error
//	      weight: 0.6
//	rules:
//	  - name: checkout-ui
//	    category: ui
//	    weight: 0.7
//	    expression: context["screen"] == "checkout"
type Config struct {
	// ConfidenceFloor overrides the classifier's confidence floor.
	ConfidenceFloor float64 `yaml:"confidence_floor,omitempty"`

	// Trend configures spike detection.
	Trend *TrendConfig `yaml:"trend,omitempty"`

	// Recurrence configures the fingerprint recurrence cache.
	Recurrence *RecurrenceConfig `yaml:"recurrence,omitempty"`

	// Keywords adds weighted keywords per category on top of the default
	// evidence table.
	Keywords map[string][]KeywordConfig `yaml:"keywords,omitempty"`

	// Rules lists custom CEL evidence rules.
	Rules []rules.Rule `yaml:"rules,omitempty"`
}

// TrendConfig mirrors the trend analyzer's options.
type TrendConfig struct {
	// Window is the sliding window length as a Go duration string
	// (e.g. "1h", "30m"). Default: 1h.
	Window string `yaml:"window,omitempty"`

	// Capacity bounds each category's buffer. Default: 1000.
	Capacity int `yaml:"capacity,omitempty"`

	// DefaultThreshold is the spike threshold for categories without an
	// explicit entry. Default: 10.
	DefaultThreshold int `yaml:"default_threshold,omitempty"`

	// Thresholds overrides the threshold per category.
	Thresholds map[string]int `yaml:"thresholds,omitempty"`
}

// GetWindow parses the window string. Returns the default when unset or
// invalid.
func (t *TrendConfig) GetWindow() time.Duration {
	if t == nil || t.Window == "" {
		return trend.DefaultWindow
	}
	d, err := time.ParseDuration(t.Window)
	if err != nil || d <= 0 {
		return trend.DefaultWindow
	}
	return d
}

// RecurrenceConfig mirrors the recurrence tracker's options.
type RecurrenceConfig struct {
	// Size bounds the number of distinct fingerprints tracked.
	// Default: 1024.
	Size int `yaml:"size,omitempty"`

	// TTL is how long a count survives without a new occurrence, as a Go
	// duration string. Default: 10m.
	TTL string `yaml:"ttl,omitempty"`
}

// GetTTL parses the TTL string. Returns the default when unset or invalid.
func (r *RecurrenceConfig) GetTTL() time.Duration {
	if r == nil || r.TTL == "" {
		return 0
	}
	d, err := time.ParseDuration(r.TTL)
	if err != nil || d <= 0 {
		return 0
	}
	return d
}

// KeywordConfig is one weighted keyword added to the evidence table.
type KeywordConfig struct {
	Term   string  `yaml:"term"`
	Weight float64 `yaml:"weight"`
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, configErr("LoadConfig", "", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, configErr("LoadConfig", "", fmt.Errorf("%w: %v", ErrInvalidConfig, err))
	}
	return &cfg, nil
}

// Options converts the configuration into engine options, validating
// category names and keyword weights up front.
func (c *Config) Options() ([]Option, error) {
	var opts []Option

	if c.ConfidenceFloor != 0 {
		opts = append(opts, WithConfidenceFloor(c.ConfidenceFloor))
	}

	if len(c.Keywords) > 0 {
		table := signal.DefaultTable()
		for name, keywords := range c.Keywords {
			cat, err := taxonomy.ParseCategory(name)
			if err != nil {
				return nil, configErr("Options", "keywords", fmt.Errorf("%w: %v", ErrInvalidConfig, err))
			}
			for _, kw := range keywords {
				if kw.Term == "" || kw.Weight <= 0 || kw.Weight > 1 {
					return nil, configErr("Options", "keywords",
						fmt.Errorf("%w: keyword %q for %s has weight %v outside (0,1]",
							ErrInvalidConfig, kw.Term, cat, kw.Weight))
				}
				table.AddKeyword(cat, kw.Term, kw.Weight)
			}
		}
		opts = append(opts, WithSignalTable(table))
	}

	if len(c.Rules) > 0 {
		opts = append(opts, WithRules(c.Rules...))
	}

	if c.Trend != nil {
		opts = append(opts, WithTrendWindow(c.Trend.GetWindow()))
		if c.Trend.Capacity > 0 {
			opts = append(opts, WithTrendCapacity(c.Trend.Capacity))
		}
		if c.Trend.DefaultThreshold > 0 {
			opts = append(opts, WithDefaultSpikeThreshold(c.Trend.DefaultThreshold))
		}
		for name, n := range c.Trend.Thresholds {
			cat, err := taxonomy.ParseCategory(name)
			if err != nil {
				return nil, configErr("Options", "trend.thresholds", fmt.Errorf("%w: %v", ErrInvalidConfig, err))
			}
			opts = append(opts, WithSpikeThreshold(cat, n))
		}
	}

	if c.Recurrence != nil {
		opts = append(opts, WithRecurrenceWindow(c.Recurrence.Size, c.Recurrence.GetTTL()))
	}

	return opts, nil
}

// NewFromConfig loads a configuration file and constructs an engine from
// it, with any extra options applied after the file's.
func NewFromConfig(path string, extra ...Option) (*Engine, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	return New(append(opts, extra...)...)
}
