package mdbook

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/codeblocks/internal/annotate"
	"git.home.luguber.info/inful/codeblocks/internal/config"
	"git.home.luguber.info/inful/codeblocks/internal/foundation/errors"
	"git.home.luguber.info/inful/codeblocks/internal/logfields"
	"git.home.luguber.info/inful/codeblocks/internal/metrics"
)

// Preprocessor annotates the chapters of a book.
type Preprocessor struct {
	// Name selects the [preprocessor.<name>] table. Defaults to
	// config.PreprocessorName.
	Name string
	// Logger defaults to slog.Default.
	Logger *slog.Logger
	// Recorder defaults to metrics.NoopRecorder.
	Recorder metrics.Recorder
	// Workers bounds the chapters annotated at once. Defaults to GOMAXPROCS.
	Workers int

	// annotateFn replaces annotate.Annotate in tests.
	annotateFn func(string, *config.Config, ...annotate.Option) (string, annotate.Stats, error)
}

// Summary counts chapter outcomes for one run.
type Summary struct {
	RunID     string
	Annotated int
	Unchanged int
	Failed    int
	Blocks    int
}

// Run resolves the configuration and annotates every chapter in place.
//
// A configuration error aborts the run before any chapter is touched. A
// chapter that cannot be reassembled is logged and left as it was; the
// remaining chapters are still processed.
func (p *Preprocessor) Run(ctx context.Context, c *Context, b *Book) (Summary, error) {
	sum := Summary{RunID: uuid.NewString()}
	logger := p.logger().With(logfields.RunID(sum.RunID))
	rec := p.recorder()

	if c != nil {
		CheckVersion(logger, c.MdbookVersion)
	}

	cfg, err := config.Resolve(c.PreprocessorConfig(p.name()),
		config.WithLogger(logger),
		config.WithRecorder(rec))
	if err != nil {
		return sum, err
	}

	chapters := b.Chapters()
	workers := p.workers()
	logger.Info("Annotating chapters", logfields.Workers(workers), slog.Int("chapters", len(chapters)))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, ch := range chapters {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, blocks := p.chapter(ch, cfg, logger, rec)

			mu.Lock()
			defer mu.Unlock()
			sum.Blocks += blocks
			switch result {
			case metrics.ResultAnnotated:
				sum.Annotated++
			case metrics.ResultFailed:
				sum.Failed++
			default:
				sum.Unchanged++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return sum, errors.WrapError(err, errors.CategoryInternal, "preprocessing interrupted").Fatal().Build()
	}

	logger.Info("Annotation complete",
		logfields.Blocks(sum.Blocks),
		slog.Int("annotated", sum.Annotated),
		slog.Int("unchanged", sum.Unchanged),
		slog.Int("failed", sum.Failed))
	return sum, nil
}

func (p *Preprocessor) chapter(ch *Chapter, cfg *config.Config, logger *slog.Logger, rec metrics.Recorder) (metrics.ResultLabel, int) {
	logger = logger.With(logfields.Chapter(ch.ID()))
	start := time.Now()
	fn := p.annotateFn
	if fn == nil {
		fn = annotate.Annotate
	}
	out, stats, err := fn(ch.Content, cfg, annotate.WithLogger(logger))
	rec.ObserveChapterDuration(time.Since(start))

	if err != nil {
		logger.Error("Failed to annotate chapter, left unchanged", logfields.Error(err))
		rec.IncChapterResult(metrics.ResultFailed)
		return metrics.ResultFailed, 0
	}

	for l, n := range stats.Decorated {
		for range n {
			rec.IncBlockDecorated(l.Label())
		}
	}
	for range stats.Passed {
		rec.IncBlockPassed()
	}

	total := stats.DecoratedTotal()
	if total == 0 {
		rec.IncChapterResult(metrics.ResultUnchanged)
		return metrics.ResultUnchanged, 0
	}
	ch.SetContent(out)
	rec.IncChapterResult(metrics.ResultAnnotated)
	logger.Debug("Chapter annotated", logfields.Blocks(total),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return metrics.ResultAnnotated, total
}

func (p *Preprocessor) name() string {
	if p.Name == "" {
		return config.PreprocessorName
	}
	return p.Name
}

func (p *Preprocessor) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

func (p *Preprocessor) recorder() metrics.Recorder {
	if p.Recorder == nil {
		return metrics.NoopRecorder{}
	}
	return p.Recorder
}

func (p *Preprocessor) workers() int {
	if p.Workers > 0 {
		return p.Workers
	}
	return runtime.GOMAXPROCS(0)
}
