// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
)

// Handler is a compact slog handler for terminals: colored level tag,
// message, then key=value attributes. Not meant for machine parsing;
// use a JSON handler for that.
type Handler struct {
	mu    sync.Mutex
	w     io.Writer
	level slog.Level
	out   *termenv.Output
	attrs []slog.Attr
	group string
}

// NewHandler returns a handler writing records at or above level to w.
// Color is degraded automatically when w is not a terminal.
func NewHandler(w io.Writer, level slog.Level) *Handler {
	return &Handler{
		w:     w,
		level: level,
		out:   termenv.NewOutput(w),
	}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *Handler) levelTag(level slog.Level) string {
	s := h.out.String(level.String())
	switch {
	case level >= slog.LevelError:
		s = s.Foreground(termenv.ANSIRed).Bold()
	case level >= slog.LevelWarn:
		s = s.Foreground(termenv.ANSIYellow)
	case level >= slog.LevelInfo:
		s = s.Foreground(termenv.ANSIGreen)
	default:
		s = s.Foreground(termenv.ANSIBrightBlack)
	}
	return s.String()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Time.Format(time.TimeOnly))
	b.WriteByte(' ')
	b.WriteString(h.levelTag(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)

	writeAttr := func(a slog.Attr, group string) {
		if a.Equal(slog.Attr{}) {
			return
		}
		key := a.Key
		if group != "" {
			key = group + "." + key
		}
		b.WriteByte(' ')
		b.WriteString(h.out.String(key).Faint().String())
		b.WriteByte('=')
		b.WriteString(fmt.Sprint(a.Value.Resolve().Any()))
	}
	for _, a := range h.attrs {
		// Pre-bound attrs carry their group prefix already.
		writeAttr(a, "")
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(a, h.group)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := h.clone()
	for _, a := range attrs {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		nh.attrs = append(nh.attrs, a)
	}
	return nh
}

func (h *Handler) WithGroup(name string) slog.Handler {
	nh := h.clone()
	if nh.group != "" {
		nh.group += "." + name
	} else {
		nh.group = name
	}
	return nh
}

func (h *Handler) clone() *Handler {
	return &Handler{
		w:     h.w,
		level: h.level,
		out:   h.out,
		attrs: append([]slog.Attr(nil), h.attrs...),
		group: h.group,
	}
}
