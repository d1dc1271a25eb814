// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Options describes the window and frame loop. Zero fields fall back
// to the defaults from [NewOptions].
type Options struct {
	// Title is the window title.
	Title string `toml:"title"`

	// Width and Height are the initial inner window size in logical
	// pixels.
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`

	// FrameRate is the tick rate of the frame loop in frames per
	// second.
	FrameRate int `toml:"frame-rate"`

	// Stylesheet is an optional stylesheet path, watched for changes
	// while the application runs.
	Stylesheet string `toml:"stylesheet"`
}

// NewOptions returns the default options.
func NewOptions() Options {
	return Options{
		Title:     "Ravel",
		Width:     800,
		Height:    600,
		FrameRate: 60,
	}
}

// Open reads TOML from file over the defaults, so a partial file only
// overrides what it names.
func (o *Options) Open(file string) error {
	b, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("options: %w", err)
	}
	if err := toml.Unmarshal(b, o); err != nil {
		return fmt.Errorf("options: parsing %s: %w", file, err)
	}
	return nil
}

// Save writes the options as TOML to file.
func (o *Options) Save(file string) error {
	b, err := toml.Marshal(o)
	if err != nil {
		return fmt.Errorf("options: %w", err)
	}
	if err := os.WriteFile(file, b, 0o644); err != nil {
		return fmt.Errorf("options: %w", err)
	}
	return nil
}
