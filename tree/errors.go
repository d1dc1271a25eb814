// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import "errors"

// Structural mutation errors. Mutations fail with one of these rather
// than panicking, and leave the tree unmodified, so the tree stays
// internally consistent under programmer error upstream.
var (
	// ErrNoEntity indicates the entity does not exist in the tree.
	ErrNoEntity = errors.New("tree: entity does not exist")

	// ErrInvalidParent indicates the parent is not usable for the
	// requested mutation.
	ErrInvalidParent = errors.New("tree: invalid parent")

	// ErrInvalidSibling indicates the sibling is not usable for the
	// requested mutation.
	ErrInvalidSibling = errors.New("tree: invalid sibling")

	// ErrNullEntity indicates the null handle was passed.
	ErrNullEntity = errors.New("tree: null entity")

	// ErrAlreadySibling indicates the entities are already adjacent
	// in the requested order.
	ErrAlreadySibling = errors.New("tree: already sibling")

	// ErrAlreadyFirstChild indicates the entity is already the first
	// child of its parent.
	ErrAlreadyFirstChild = errors.New("tree: already first child")
)
