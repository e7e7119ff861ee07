package commands

import (
	"git.home.luguber.info/inful/codeblocks/internal/config"
	"git.home.luguber.info/inful/codeblocks/internal/logfields"
	"git.home.luguber.info/inful/codeblocks/internal/mdbook"
)

// PreprocessCmd implements the default command invoked by mdBook.
type PreprocessCmd struct {
	Workers int `short:"j" help:"Chapters annotated in parallel (0 uses all CPUs)" default:"0" env:"CODEBLOCKS_WORKERS"`
}

func (p *PreprocessCmd) Run(g *Global, _ *CLI) error {
	bookCtx, book, err := mdbook.ParseInput(g.Stdin)
	if err != nil {
		return err
	}
	g.Logger.Debug("Received book",
		logfields.Renderer(bookCtx.Renderer),
		logfields.Version(bookCtx.MdbookVersion))

	pre := &mdbook.Preprocessor{
		Name:     config.PreprocessorName,
		Logger:   g.Logger,
		Recorder: g.recorder(),
		Workers:  p.Workers,
	}
	if _, err := pre.Run(g.Ctx, bookCtx, book); err != nil {
		return err
	}
	return mdbook.WriteBook(g.Stdout, book)
}
