// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glxfb

import (
	"unsafe"

	"github.com/CornerZhang/OpenSubdiv/eval"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// patchCoordBytes is the wire size of one [eval.PatchCoord]: the patch
// kernel binds the handle and the (s, t) location as vertex attributes
// at fixed byte offsets.
const patchCoordBytes = 20

var _ [patchCoordBytes]byte = [unsafe.Sizeof(eval.PatchCoord{})]byte{}

// PatchCoordBuffer streams evaluation points to the patch kernel as
// vertex attributes: the integer patch handle at attribute 0 and the
// parametric location at attribute 1.
type PatchCoordBuffer struct {
	vbo uint32
	num int
}

// NewPatchCoordBuffer uploads the coordinates to device memory.
func NewPatchCoordBuffer(coords []eval.PatchCoord) *PatchCoordBuffer {
	cb := &PatchCoordBuffer{}
	gl.GenBuffers(1, &cb.vbo)
	cb.SetCoords(coords)
	return cb
}

// SetCoords replaces the buffer contents with the given coordinates,
// resizing the device storage as needed.
func (cb *PatchCoordBuffer) SetCoords(coords []eval.PatchCoord) {
	cb.num = len(coords)
	gl.BindBuffer(gl.ARRAY_BUFFER, cb.vbo)
	var ptr unsafe.Pointer
	if len(coords) > 0 {
		ptr = gl.Ptr(coords)
	}
	gl.BufferData(gl.ARRAY_BUFFER, patchCoordBytes*len(coords), ptr, gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// NumCoords returns the number of evaluation points in the buffer.
func (cb *PatchCoordBuffer) NumCoords() int { return cb.num }

// VBO returns the OpenGL buffer object name.
func (cb *PatchCoordBuffer) VBO() uint32 { return cb.vbo }

// Release frees the device buffer. The PatchCoordBuffer is unusable
// afterwards.
func (cb *PatchCoordBuffer) Release() {
	if cb.vbo != 0 {
		gl.DeleteBuffers(1, &cb.vbo)
		cb.vbo = 0
	}
}
