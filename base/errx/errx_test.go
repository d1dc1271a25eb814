// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errx_test

import (
	"errors"
	"testing"

	"github.com/ravel-ui/ravel/base/errx"
	"github.com/stretchr/testify/assert"
)

func TestLog(t *testing.T) {
	sentinel := errors.New("boom")
	assert.Equal(t, sentinel, errx.Log(sentinel))
	assert.NoError(t, errx.Log(nil))

	assert.Equal(t, 3, errx.Log1(3, sentinel))
	assert.Equal(t, "ok", errx.Log1("ok", nil))
}

func TestMust(t *testing.T) {
	assert.NotPanics(t, func() { errx.Must(nil) })
	assert.Panics(t, func() { errx.Must(errors.New("boom")) })

	assert.Equal(t, 7, errx.Must1(7, nil))
	assert.Panics(t, func() { errx.Must1(0, errors.New("boom")) })
}
