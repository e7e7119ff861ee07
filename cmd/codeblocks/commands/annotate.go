package commands

import (
	"io"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/codeblocks/internal/annotate"
	"git.home.luguber.info/inful/codeblocks/internal/config"
	"git.home.luguber.info/inful/codeblocks/internal/foundation/errors"
	"git.home.luguber.info/inful/codeblocks/internal/logfields"
	"git.home.luguber.info/inful/codeblocks/internal/metrics"
)

// AnnotateCmd implements the 'annotate' command.
type AnnotateCmd struct {
	Files   []string `arg:"" help:"Markdown files to annotate" type:"existingfile"`
	Config  string   `short:"c" help:"book.toml or YAML file holding the codeblocks settings" type:"existingfile" env:"CODEBLOCKS_CONFIG"`
	InPlace bool     `short:"i" name:"in-place" help:"Rewrite the files instead of printing them"`
	Output  string   `short:"o" help:"Write annotated files into this directory" type:"path"`
}

func (a *AnnotateCmd) Run(g *Global, _ *CLI) error {
	if a.InPlace && a.Output != "" {
		return errors.ValidationError("--in-place and --output are mutually exclusive").Build()
	}

	cfg, err := resolveConfig(g, a.Config)
	if err != nil {
		return err
	}

	rec := g.recorder()
	var failed []string
	for _, path := range a.Files {
		if err := a.file(g, cfg, rec, path); err != nil {
			if errors.HasCategory(err, errors.CategoryFormat) {
				g.Logger.Error("Failed to annotate file, left unchanged", logfields.Path(path), logfields.Error(err))
				failed = append(failed, path)
				continue
			}
			return err
		}
	}

	if len(failed) > 0 {
		return errors.FormatError("some files could not be annotated").
			WithContext("files", failed).
			Build()
	}
	return nil
}

func (a *AnnotateCmd) file(g *Global, cfg *config.Config, rec metrics.Recorder, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to read file").WithContext("path", path).Build()
	}

	out, stats, err := annotate.Annotate(string(data), cfg, annotate.WithLogger(g.Logger.With(logfields.Path(path))))
	if err != nil {
		rec.IncChapterResult(metrics.ResultFailed)
		return err
	}
	for l, n := range stats.Decorated {
		for range n {
			rec.IncBlockDecorated(l.Label())
		}
	}
	for range stats.Passed {
		rec.IncBlockPassed()
	}
	if stats.DecoratedTotal() > 0 {
		rec.IncChapterResult(metrics.ResultAnnotated)
	} else {
		rec.IncChapterResult(metrics.ResultUnchanged)
	}
	g.Logger.Info("Annotated file", logfields.Path(path), logfields.Blocks(stats.DecoratedTotal()))

	switch {
	case a.InPlace:
		if out == string(data) {
			return nil
		}
		return writeFile(path, out)
	case a.Output != "":
		if err := os.MkdirAll(a.Output, 0o755); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").WithContext("path", a.Output).Build()
		}
		return writeFile(filepath.Join(a.Output, filepath.Base(path)), out)
	default:
		if _, err := io.WriteString(g.Stdout, out); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to write output").Build()
		}
		return nil
	}
}

// writeFile replaces path, keeping its permissions when it already exists.
func writeFile(path, content string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write file").WithContext("path", path).Build()
	}
	return nil
}
