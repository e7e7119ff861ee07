// Package annotate wraps recognized fenced code blocks in a language badge.
//
// A document is parsed into a markdown event stream, run through a Machine
// and reassembled. Everything outside a recognized block is copied through
// byte for byte.
package annotate

import (
	"log/slog"

	"git.home.luguber.info/inful/codeblocks/internal/config"
	"git.home.luguber.info/inful/codeblocks/internal/logfields"
	"git.home.luguber.info/inful/codeblocks/internal/markdown"
)

type options struct {
	logger *slog.Logger
}

// Option configures Annotate.
type Option func(*options)

// WithLogger sets the logger receiving per-document debug output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Annotate decorates every recognized code block in content. The document is
// read in the Markdown dialect mdBook renders.
//
// On error the returned string is empty and content should be kept as is;
// all errors are classified format errors.
func Annotate(content string, cfg *config.Config, opts ...Option) (string, Stats, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	src := []byte(content)
	events, err := markdown.Parse(src, markdown.MDBookOptions())
	if err != nil {
		return "", Stats{}, err
	}

	out, stats := Transform(events, cfg)
	if stats.DecoratedTotal() == 0 {
		return content, stats, nil
	}

	rendered, err := markdown.Render(src, out)
	if err != nil {
		return "", stats, err
	}

	for l, n := range stats.Decorated {
		o.logger.Debug("Decorated code blocks", logfields.Language(l.Label()), logfields.Blocks(n))
	}
	return string(rendered), stats, nil
}
