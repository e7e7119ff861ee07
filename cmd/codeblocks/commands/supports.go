package commands

import (
	"git.home.luguber.info/inful/codeblocks/internal/logfields"
	"git.home.luguber.info/inful/codeblocks/internal/mdbook"
)

// SupportsCmd answers mdBook's renderer capability query through the exit
// status: 0 when supported, 1 otherwise.
type SupportsCmd struct {
	Renderer string `arg:"" help:"Renderer name, e.g. html or markdown"`
}

func (s *SupportsCmd) Run(g *Global, _ *CLI) error {
	ok := mdbook.SupportsRenderer(s.Renderer)
	g.Logger.Debug("Renderer support queried", logfields.Renderer(s.Renderer), "supported", ok)
	if !ok {
		g.ExitCode = 1
	}
	return nil
}
