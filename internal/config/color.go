package config

import (
	"regexp"
	"strings"

	"golang.org/x/image/colornames"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ValidColor reports whether s is a hex color (#rgb, #rgba, #rrggbb or
// #rrggbbaa) or a CSS color keyword.
func ValidColor(s string) bool {
	if hexColor.MatchString(s) {
		return true
	}
	_, ok := colornames.Map[strings.ToLower(s)]
	return ok
}
