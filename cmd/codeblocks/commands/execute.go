package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/codeblocks/internal/foundation/errors"
	"git.home.luguber.info/inful/codeblocks/internal/version"
)

// exitRequest carries the status kong asks for after --help or --version.
type exitRequest int

// Execute parses args, runs the selected command and returns the process
// exit status.
func Execute(args []string, stdin io.Reader, stdout, stderr io.Writer) (code int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cli CLI
	g := &Global{
		Ctx:    ctx,
		Logger: slog.New(slog.NewTextHandler(stderr, nil)),
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	defer func() {
		if r := recover(); r != nil {
			req, ok := r.(exitRequest)
			if !ok {
				panic(r)
			}
			code = int(req)
		}
	}()

	parser, err := kong.New(&cli,
		kong.Name("codeblocks"),
		kong.Description("Decorate fenced code blocks with a language badge in mdBook books."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version.String()},
		kong.Writers(stdout, stderr),
		kong.Exit(func(status int) { panic(exitRequest(status)) }),
		kong.Bind(g, &cli),
	)
	if err != nil {
		return errors.NewCLIErrorAdapter(false, g.Logger).Report(stderr, errors.WrapError(err, errors.CategoryInternal, "invalid command definition").Fatal().Build())
	}

	envFile, err := loadEnvFile(args)
	if err != nil {
		return errors.NewCLIErrorAdapter(false, g.Logger).Report(stderr, err)
	}
	g.envFile = envFile

	kctx, err := parser.Parse(args)
	adapter := errors.NewCLIErrorAdapter(cli.Verbose, g.Logger)
	if err != nil {
		// Hook failures are already classified; anything else is bad usage.
		if _, ok := errors.AsClassified(err); !ok {
			err = errors.WrapError(err, errors.CategoryValidation, "invalid arguments").Fatal().Build()
		}
		return adapter.Report(stderr, err)
	}

	runErr := kctx.Run()
	if err := g.flushMetrics(cli.MetricsFile); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return adapter.Report(stderr, runErr)
	}
	return g.ExitCode
}
