package commands

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/codeblocks/internal/config"
	"git.home.luguber.info/inful/codeblocks/internal/foundation/errors"
	"git.home.luguber.info/inful/codeblocks/internal/logfields"
	"git.home.luguber.info/inful/codeblocks/internal/metrics"
)

// Global is shared by all subcommands.
type Global struct {
	Ctx    context.Context
	Logger *slog.Logger

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Recorder metrics.Recorder
	registry *prom.Registry

	// envFile is the env file loaded before parsing, if any.
	envFile string

	// ExitCode is returned by Execute when the command itself succeeded.
	ExitCode int
}

// CLI definition & global flags.
type CLI struct {
	Verbose     bool             `short:"v" help:"Enable verbose logging" env:"CODEBLOCKS_VERBOSE"`
	LogFormat   string           `name:"log-format" help:"Log output format" default:"text" enum:"text,json" env:"CODEBLOCKS_LOG_FORMAT"`
	EnvFile     string           `name:"env-file" help:"Load environment variables from this file if it exists" default:".env" type:"path"`
	MetricsFile string           `name:"metrics-file" help:"Write Prometheus metrics in textfile format on exit" type:"path" env:"CODEBLOCKS_METRICS_FILE"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`

	Preprocess PreprocessCmd `cmd:"" default:"1" help:"Run as an mdBook preprocessor (book JSON on stdin and stdout)"`
	Supports   SupportsCmd   `cmd:"" help:"Check whether a renderer is supported (exit status 0 or 1)"`
	Annotate   AnnotateCmd   `cmd:"" help:"Annotate Markdown files outside of mdBook"`
	Languages  LanguagesCmd  `cmd:"" help:"List recognized languages and their decorations"`
}

// AfterApply runs after flag parsing; sets up logging and metrics once.
func (c *CLI) AfterApply(g *Global) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	// stdout carries the book, so logs always go to stderr.
	var handler slog.Handler
	if c.LogFormat == "json" {
		handler = slog.NewJSONHandler(g.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(g.Stderr, opts)
	}
	g.Logger = slog.New(handler)
	slog.SetDefault(g.Logger)

	if g.envFile != "" {
		g.Logger.Debug("Loaded env file", logfields.Path(g.envFile))
	}

	if c.MetricsFile != "" {
		g.registry = prom.NewRegistry()
		g.Recorder = metrics.NewPrometheusRecorder(g.registry)
	}
	return nil
}

// flushMetrics writes the metrics textfile if one was requested.
func (g *Global) flushMetrics(path string) error {
	if g.registry == nil || path == "" {
		return nil
	}
	if err := metrics.WriteTextfile(path, g.registry); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write metrics file").
			WithContext("path", path).
			Build()
	}
	g.Logger.Debug("Wrote metrics", logfields.Path(path))
	return nil
}

// recorder returns the configured recorder or a no-op one.
func (g *Global) recorder() metrics.Recorder {
	if g.Recorder == nil {
		return metrics.NoopRecorder{}
	}
	return g.Recorder
}

// resolveConfig loads the codeblocks settings from path, or returns the
// defaults when path is empty.
func resolveConfig(g *Global, path string) (*config.Config, error) {
	opts := []config.Option{config.WithLogger(g.Logger), config.WithRecorder(g.recorder())}
	if path == "" {
		return config.Default(opts...), nil
	}
	raw, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return config.Resolve(raw, opts...)
}

// loadEnvFile loads the file named by --env-file (default .env) before the
// flags are parsed, so its CODEBLOCKS_* variables can set flag values.
func loadEnvFile(args []string) (string, error) {
	path := ".env"
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if v, ok := strings.CutPrefix(arg, "--env-file="); ok {
			path = v
		} else if arg == "--env-file" && i+1 < len(args) {
			path = args[i+1]
		}
	}
	if path == "" {
		return "", nil
	}
	loaded, err := config.LoadEnvFile(path)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryConfig, "failed to load env file").
			Fatal().
			WithContext("path", path).
			Build()
	}
	return loaded, nil
}
