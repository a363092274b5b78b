// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glxfb

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Buffer is a GPU buffer of interleaved float32 vertex data, used as
// both the source and the destination of evaluation. It is one OpenGL
// buffer object; the layout within it is described separately by
// [eval.BufferDescriptor] values when compiling an [Evaluator].
type Buffer struct {
	vbo         uint32
	numElements int
	numVerts    int
}

// NewBuffer allocates device storage for numVerts vertices of
// numElements floats each, with undefined contents.
func NewBuffer(numElements, numVerts int) *Buffer {
	b := &Buffer{numElements: numElements, numVerts: numVerts}
	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 4*numElements*numVerts, nil, gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return b
}

// NewBufferData allocates a buffer holding the given data, interpreted
// as vertices of numElements floats each.
func NewBufferData(numElements int, data []float32) (*Buffer, error) {
	if numElements <= 0 || len(data)%numElements != 0 {
		return nil, fmt.Errorf("glxfb.NewBufferData: %d floats do not divide into vertices of %d elements", len(data), numElements)
	}
	b := NewBuffer(numElements, len(data)/numElements)
	if err := b.SetData(data, 0); err != nil {
		b.Release()
		return nil, err
	}
	return b, nil
}

// SetData copies data into the buffer starting at the given vertex.
func (b *Buffer) SetData(data []float32, startVert int) error {
	if startVert < 0 || startVert*b.numElements+len(data) > b.numElements*b.numVerts {
		return fmt.Errorf("glxfb.Buffer.SetData: %d floats at vertex %d overrun buffer of %d x %d", len(data), startVert, b.numVerts, b.numElements)
	}
	if len(data) == 0 {
		return nil
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 4*startVert*b.numElements, 4*len(data), gl.Ptr(data))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return nil
}

// ReadFloats reads n floats back from device memory starting at the
// given float offset. Call [Synchronize] first if evaluation results
// must be visible.
func (b *Buffer) ReadFloats(start, n int) []float32 {
	out := make([]float32, n)
	if n == 0 {
		return out
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.GetBufferSubData(gl.ARRAY_BUFFER, 4*start, 4*n, gl.Ptr(out))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return out
}

// Floats reads the whole buffer back from device memory.
func (b *Buffer) Floats() []float32 {
	return b.ReadFloats(0, b.numElements*b.numVerts)
}

// NumElements returns the number of floats per vertex.
func (b *Buffer) NumElements() int { return b.numElements }

// NumVerts returns the number of vertices the buffer holds.
func (b *Buffer) NumVerts() int { return b.numVerts }

// VBO returns the OpenGL buffer object name.
func (b *Buffer) VBO() uint32 { return b.vbo }

// Release frees the device buffer. The Buffer is unusable afterwards.
func (b *Buffer) Release() {
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
		b.vbo = 0
	}
}
