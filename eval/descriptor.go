// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eval

import "fmt"

// BufferDescriptor describes the layout of one primvar (position, color,
// uv, ...) within an interleaved vertex buffer, in units of 32-bit
// floats. Offset is the distance from the start of the buffer to the
// first element of the primvar, Length is the number of elements per
// vertex, and Stride is the distance between two consecutive vertices.
//
// For example, a buffer interleaving a 3-float position with a 4-float
// color is described by
//
//	position: BufferDescriptor{Offset: 0, Length: 3, Stride: 7}
//	color:    BufferDescriptor{Offset: 3, Length: 4, Stride: 7}
type BufferDescriptor struct {

	// Offset is the offset to the first element of the primvar,
	// from the start of the buffer, in floats.
	Offset int

	// Length is the number of float elements per vertex.
	Length int

	// Stride is the number of floats between two vertices.
	Stride int
}

// NewBufferDescriptor returns a descriptor with the given offset, length
// and stride, all in floats.
func NewBufferDescriptor(offset, length, stride int) BufferDescriptor {
	return BufferDescriptor{Offset: offset, Length: length, Stride: stride}
}

// LocalOffset returns the offset of the primvar within one vertex,
// i.e. Offset modulo Stride.
func (bd BufferDescriptor) LocalOffset() int {
	if bd.Stride == 0 {
		return 0
	}
	return bd.Offset % bd.Stride
}

// Validate checks that the descriptor addresses a well-formed primvar:
// a positive Length that fits between the local offset and the end of
// the Stride. It returns an error describing the first violation found.
func (bd BufferDescriptor) Validate() error {
	switch {
	case bd.Offset < 0:
		return fmt.Errorf("eval.BufferDescriptor: negative offset %d", bd.Offset)
	case bd.Length <= 0:
		return fmt.Errorf("eval.BufferDescriptor: length %d must be positive", bd.Length)
	case bd.Stride < bd.Length:
		return fmt.Errorf("eval.BufferDescriptor: stride %d is less than length %d", bd.Stride, bd.Length)
	case bd.LocalOffset()+bd.Length > bd.Stride:
		return fmt.Errorf("eval.BufferDescriptor: primvar at local offset %d with length %d overruns stride %d", bd.LocalOffset(), bd.Length, bd.Stride)
	}
	return nil
}

func (bd BufferDescriptor) String() string {
	return fmt.Sprintf("offset %d length %d stride %d", bd.Offset, bd.Length, bd.Stride)
}
