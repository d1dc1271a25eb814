// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx configures log/slog for the toolkit: a user-facing
// verbosity level and a compact colored terminal handler.
package logx

import (
	"log/slog"
	"os"
)

// UserLevel is the verbosity the user asked for on the command line.
// It applies to the default handler set by [Init].
var UserLevel = defaultUserLevel

// LevelFromFlags maps the standard verbosity flags to a level. The
// most verbose flag that is set wins.
func LevelFromFlags(debug, verbose, quiet bool) slog.Level {
	switch {
	case debug:
		return slog.LevelDebug
	case verbose:
		return slog.LevelInfo
	case quiet:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// SetLevelFromFlags sets [UserLevel] per [LevelFromFlags].
func SetLevelFromFlags(debug, verbose, quiet bool) {
	UserLevel = LevelFromFlags(debug, verbose, quiet)
}

// Init installs the colored handler as the slog default, writing to
// stderr at [UserLevel]. Call it once at startup, after the level
// flags are parsed.
func Init() {
	slog.SetDefault(slog.New(NewHandler(os.Stderr, UserLevel)))
}
