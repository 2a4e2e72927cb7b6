// Package logging defines the named [slog.Level] values used by cratefix and helpers for adjusting
// the log threshold from the command line.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const (
	LevelTrace   = slog.LevelDebug - 4 // -8
	LevelDebug   = slog.LevelDebug     // -4
	LevelVerbose = slog.LevelDebug + 2 // -2
	LevelInfo    = slog.LevelInfo      // 0
	LevelNotice  = slog.LevelInfo + 2  // 2
	LevelWarn    = slog.LevelWarn      // 4
	LevelError   = slog.LevelError     // 8
	LevelFatal   = slog.LevelError + 4 // 12
)

// levels is ordered from least to most severe.
var levels = []struct {
	name string
	lvl  slog.Level
}{
	{"trace", LevelTrace},
	{"debug", LevelDebug},
	{"verbose", LevelVerbose},
	{"info", LevelInfo},
	{"notice", LevelNotice},
	{"warn", LevelWarn},
	{"error", LevelError},
	{"fatal", LevelFatal},
}

func names() string {
	ns := make([]string, len(levels))
	for i, l := range levels {
		ns[i] = l.name
	}
	return strings.Join(ns, ", ")
}

// BumpLevel returns lvl moved to the next named level that is lower (less severe) or higher (more
// severe).  Levels already at or beyond the ends of the named range are moved by 4.
func BumpLevel(lvl slog.Level, lower bool) slog.Level {
	if lower {
		for i := len(levels) - 1; i >= 0; i-- {
			if levels[i].lvl < lvl {
				return levels[i].lvl
			}
		}
		return lvl - 4
	}
	for _, l := range levels {
		if l.lvl > lvl {
			return l.lvl
		}
	}
	return lvl + 4
}

// StringToLevel parses a case-insensitive level name.
func StringToLevel(arg string) (slog.Level, error) {
	arg = strings.ToLower(arg)
	for _, l := range levels {
		if l.name == arg {
			return l.lvl, nil
		}
	}
	return 0, fmt.Errorf("invalid log level; expected one of: %v", names())
}

// Setup installs a text handler writing to w as the default [slog] logger and returns the
// [slog.LevelVar] controlling its threshold, initialized to [LevelInfo].
func Setup(w io.Writer) *slog.LevelVar {
	lvl := &slog.LevelVar{}
	lvl.Set(LevelInfo)
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
	return lvl
}
