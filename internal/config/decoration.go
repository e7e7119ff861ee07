package config

import (
	"git.home.luguber.info/inful/codeblocks/internal/language"
	"git.home.luguber.info/inful/codeblocks/internal/logfields"
)

// Decoration is what gets drawn above a code block. Color is empty when no
// valid color is configured.
type Decoration struct {
	Label string
	Link  string
	Icon  string
	Color string
}

// Decoration resolves the decoration of l.
//
// Each field falls back independently: the language override, then (for the
// icon only) the global icon, then the built-in default. An override color
// that fails validation is logged and dropped.
func (c *Config) Decoration(l language.Language) Decoration {
	d := Decoration{
		Label: l.Label(),
		Link:  l.Link(),
		Icon:  l.Icon(),
	}
	if icon, ok := c.GlobalIcon(); ok {
		d.Icon = icon
	}

	o, ok := c.Override(l)
	if !ok {
		return d
	}
	if o.Label != nil {
		d.Label = *o.Label
	}
	if o.Link != nil {
		d.Link = *o.Link
	}
	if o.Icon != nil {
		d.Icon = *o.Icon
	}
	if o.Color != nil {
		if ValidColor(*o.Color) {
			d.Color = *o.Color
		} else {
			c.warnColor(l, *o.Color)
		}
	}
	return d
}

func (c *Config) warnColor(l language.Language, color string) {
	c.logger.Warn("Unknown color, skipped", logfields.ConfigKey(l.OptionKey()), logfields.Color(color))
	c.recorder.IncColorWarning(l.Label())
}
