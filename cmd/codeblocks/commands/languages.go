package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"git.home.luguber.info/inful/codeblocks/internal/language"
)

// LanguagesCmd prints the language registry.
type LanguagesCmd struct {
	Config string `short:"c" help:"book.toml or YAML file whose settings are applied to the listing" type:"existingfile" env:"CODEBLOCKS_CONFIG"`
}

func (l *LanguagesCmd) Run(g *Global, _ *CLI) error {
	cfg, err := resolveConfig(g, l.Config)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(g.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tALIASES\tLABEL\tICON\tCOLOR\tLINK")
	for _, lang := range language.Supported() {
		d := cfg.Decoration(lang)
		color := d.Color
		if color == "" {
			color = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			lang.OptionKey(), strings.Join(lang.Aliases(), ", "), d.Label, d.Icon, color, d.Link)
	}
	return tw.Flush()
}
