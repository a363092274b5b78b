// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glxfb

import "github.com/go-gl/gl/v4.1-core/gl"

// newTextureBuffer uploads data into a fresh buffer object and wraps it
// in a texture buffer of the given format, returning the texture name.
// The buffer name is deleted before returning; the texture keeps the
// data store alive until the texture itself is deleted. Returns 0 for
// empty data, which kernels treat as an absent table.
//
// The current array buffer and texture buffer bindings are preserved.
func newTextureBuffer[E int32 | uint32 | float32](data []E, format uint32) uint32 {
	if len(data) == 0 {
		return 0
	}

	var buffer, texture uint32
	gl.GenBuffers(1, &buffer)
	gl.GenTextures(1, &texture)

	var prev int32
	gl.GetIntegerv(gl.ARRAY_BUFFER_BINDING, &prev)
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(data), gl.Ptr(data), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(prev))

	gl.GetIntegerv(gl.TEXTURE_BINDING_BUFFER, &prev)
	gl.BindTexture(gl.TEXTURE_BUFFER, texture)
	gl.TexBuffer(gl.TEXTURE_BUFFER, format, buffer)
	gl.BindTexture(gl.TEXTURE_BUFFER, uint32(prev))

	gl.DeleteBuffers(1, &buffer)
	return texture
}

// releaseTexture deletes the texture if present and zeroes the handle.
func releaseTexture(texture *uint32) {
	if *texture != 0 {
		gl.DeleteTextures(1, texture)
		*texture = 0
	}
}
