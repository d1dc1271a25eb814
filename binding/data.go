// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package binding decouples model mutation from view update. A
// [Lens] is a composable accessor from a model type to one of its
// fields or derived values; a [Store] pairs a lens with the
// last-observed value and the set of entities observing it. The
// per-frame reconciliation pass in the core package updates stores
// against their models and rebuilds exactly the observers whose data
// changed.
package binding

import "reflect"

// Data is the value-equality contract used to decide whether a
// store's observed value changed. Types may implement it to provide
// cheap or semantic equality distinct from full structural equality;
// everything else falls back to [reflect.DeepEqual] via [Same].
type Data interface {
	// Same reports whether the receiver is observably equal to other.
	Same(other any) bool
}

// Same compares two values under the [Data] contract: a's Same method
// if it implements Data, reflect.DeepEqual otherwise.
func Same(a, b any) bool {
	if d, ok := a.(Data); ok {
		return d.Same(b)
	}
	return reflect.DeepEqual(a, b)
}
