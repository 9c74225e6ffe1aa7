package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID       = "run_id"
	KeyMode        = "mode"
	KeyPath        = "path"
	KeySource      = "source"
	KeyDestination = "destination"
	KeyRelPath     = "rel_path"
	KeyPlugin      = "plugin"
	KeyToken       = "token"
	KeyReason      = "reason"
	KeyDurationMS  = "duration_ms"
	KeyCount       = "count"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr        { return slog.String(KeyRunID, id) }
func Mode(m string) slog.Attr          { return slog.String(KeyMode, m) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Source(p string) slog.Attr        { return slog.String(KeySource, p) }
func Destination(p string) slog.Attr   { return slog.String(KeyDestination, p) }
func RelPath(p string) slog.Attr       { return slog.String(KeyRelPath, p) }
func Plugin(name string) slog.Attr     { return slog.String(KeyPlugin, name) }
func Token(tok string) slog.Attr       { return slog.String(KeyToken, tok) }
func Reason(r string) slog.Attr        { return slog.String(KeyReason, r) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Count(key string, n int) slog.Attr { return slog.Int(key, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
