package mdbook

import (
	"log/slog"
	"strings"

	"golang.org/x/mod/semver"

	"git.home.luguber.info/inful/codeblocks/internal/logfields"
)

// SupportedVersion is the mdBook release line the protocol handling targets.
const SupportedVersion = "v0.4"

// CheckVersion logs a warning when the host mdBook is not on the supported
// release line. It never fails the run; it reports whether the version
// matched.
func CheckVersion(logger *slog.Logger, hostVersion string) bool {
	v := hostVersion
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		logger.Warn("Unrecognized mdbook version", logfields.Version(hostVersion))
		return false
	}
	if semver.MajorMinor(v) != SupportedVersion {
		logger.Warn("mdbook version differs from the supported release line",
			logfields.Version(hostVersion),
			slog.String("supported", SupportedVersion))
		return false
	}
	return true
}

// SupportsRenderer reports whether the preprocessor runs for renderer.
// Every renderer except "html" is accepted.
func SupportsRenderer(renderer string) bool {
	return renderer != "html"
}
