// Package config turns the raw preprocessor settings into a typed, immutable
// Config and resolves per-language decorations against it.
package config

import (
	"log/slog"
	"maps"
	"slices"
	"sort"

	"git.home.luguber.info/inful/codeblocks/internal/language"
	"git.home.luguber.info/inful/codeblocks/internal/metrics"
)

// GlobalIconKey is the reserved top-level key holding the icon used by every
// language without an icon override.
const GlobalIconKey = "icon"

// Override fields recognized under a language key.
const (
	FieldLabel = "label"
	FieldLink  = "link"
	FieldIcon  = "icon"
	FieldColor = "color"
)

// OverrideFields lists the sub-keys accepted under a language key.
var OverrideFields = []string{FieldColor, FieldIcon, FieldLabel, FieldLink}

// HostKeys are the keys mdBook itself reads from a [preprocessor.<name>]
// table. They are never ours to validate.
var HostKeys = []string{"after", "before", "command", "optional", "renderer", "renderers"}

// Override replaces some of a language's built-in metadata. A nil field
// keeps the default.
type Override struct {
	Label *string
	Link  *string
	Icon  *string
	Color *string
}

// Config is the resolved configuration for one run. It is read-only once
// Resolve returns and may be shared between goroutines.
type Config struct {
	globalIcon    string
	hasGlobalIcon bool
	overrides     map[string]Override

	logger   *slog.Logger
	recorder metrics.Recorder
}

// Option configures how a Config reports color warnings.
type Option func(*Config)

// WithLogger sets the logger used for color warnings.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder notified of color warnings.
func WithRecorder(r metrics.Recorder) Option {
	return func(c *Config) {
		if r != nil {
			c.recorder = r
		}
	}
}

// Default returns a Config with no overrides.
func Default(opts ...Option) *Config {
	c := &Config{
		overrides: map[string]Override{},
		logger:    slog.Default(),
		recorder:  metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GlobalIcon returns the configured global icon, if any.
func (c *Config) GlobalIcon() (string, bool) {
	if c == nil {
		return "", false
	}
	return c.globalIcon, c.hasGlobalIcon
}

// Override returns the override configured for l.
func (c *Config) Override(l language.Language) (Override, bool) {
	if c == nil || l.IsSentinel() {
		return Override{}, false
	}
	o, ok := c.overrides[l.OptionKey()]
	return o, ok
}

// OverrideKeys returns the option keys that carry an override, sorted.
func (c *Config) OverrideKeys() []string {
	if c == nil {
		return nil
	}
	keys := slices.Collect(maps.Keys(c.overrides))
	sort.Strings(keys)
	return keys
}

// AcceptedKeys returns every top-level key Resolve accepts, sorted.
func AcceptedKeys() []string {
	keys := append(language.OptionKeys(), GlobalIconKey)
	sort.Strings(keys)
	return keys
}

// StripHostKeys returns a copy of raw without the keys mdBook owns.
func StripHostKeys(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		if slices.Contains(HostKeys, k) {
			continue
		}
		out[k] = v
	}
	return out
}
