package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyChapter    = "chapter"
	KeyPath       = "path"
	KeyLanguage   = "language"
	KeyRenderer   = "renderer"
	KeyConfigKey  = "config_key"
	KeyColor      = "color"
	KeyWorkers    = "workers"
	KeyBlocks     = "blocks"
	KeyVersion    = "version"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Chapter(name string) slog.Attr   { return slog.String(KeyChapter, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Language(l string) slog.Attr     { return slog.String(KeyLanguage, l) }
func Renderer(r string) slog.Attr     { return slog.String(KeyRenderer, r) }
func ConfigKey(k string) slog.Attr    { return slog.String(KeyConfigKey, k) }
func Color(c string) slog.Attr        { return slog.String(KeyColor, c) }
func Workers(n int) slog.Attr         { return slog.Int(KeyWorkers, n) }
func Blocks(n int) slog.Attr          { return slog.Int(KeyBlocks, n) }
func Version(v string) slog.Attr      { return slog.String(KeyVersion, v) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
