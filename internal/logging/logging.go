// Package logging configures slog for the CLI and names the attributes
// the store and its drivers log with.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Canonical attribute keys.
const (
	KeyEntity  = "entity"
	KeyID      = "id"
	KeyBackend = "backend"
	KeyPath    = "path"
	KeyPhase   = "phase"
	KeyError   = "error"
)

func Entity(kind string) slog.Attr  { return slog.String(KeyEntity, kind) }
func ID(id int64) slog.Attr         { return slog.Int64(KeyID, id) }
func Backend(name string) slog.Attr { return slog.String(KeyBackend, name) }
func Path(p string) slog.Attr       { return slog.String(KeyPath, p) }
func Phase(p string) slog.Attr      { return slog.String(KeyPhase, p) }

func Err(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

// ParseLevel maps debug|info|warn|error to a slog level, defaulting to warn
// so the CLI stays quiet unless asked.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// New builds a text or JSON logger writing to w.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
