// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errx has small helpers for the two common error postures in
// UI code: log-and-continue, and cannot-happen.
package errx

import (
	"log/slog"
	"runtime"
	"strconv"
)

// caller returns the file:line of the helper's caller's caller, so
// logged errors point at the call site.
func caller() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "?"
	}
	return file + ":" + strconv.Itoa(line)
}

// Log logs a non-nil error with the call site and returns it, for use
// in log-and-continue paths.
func Log(err error) error {
	if err != nil {
		slog.Error(err.Error(), "from", caller())
	}
	return err
}

// Log1 is [Log] for single-value functions, returning the value.
//
//	fs := errx.Log1(fs.Sub(embedded, "styles"))
func Log1[T any](v T, err error) T {
	if err != nil {
		slog.Error(err.Error(), "from", caller())
	}
	return v
}

// Must panics on a non-nil error. Use only where an error genuinely
// cannot happen.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// Must1 is [Must] for single-value functions, returning the value.
func Must1[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
