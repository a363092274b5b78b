// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glxfb

import (
	"github.com/CornerZhang/OpenSubdiv/eval"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// StencilTexture is a stencil table uploaded to device memory as four
// texture buffers, ready to bind to the stencil kernel. The CPU-side
// table is not retained and can be discarded after upload.
type StencilTexture struct {
	numStencils int

	sizes   uint32 // R32UI
	offsets uint32 // R32I
	indices uint32 // R32I
	weights uint32 // R32F
}

// NewStencilTexture uploads the table to device memory. An empty table
// yields zero texture handles and evaluates as a no-op.
func NewStencilTexture(st *eval.StencilTable) (*StencilTexture, error) {
	if err := st.Validate(); err != nil {
		return nil, err
	}
	tx := &StencilTexture{numStencils: st.NumStencils()}
	if tx.numStencils == 0 {
		return tx, nil
	}
	tx.sizes = newTextureBuffer(st.Sizes(), gl.R32UI)
	tx.offsets = newTextureBuffer(st.Offsets(), gl.R32I)
	tx.indices = newTextureBuffer(st.Indices(), gl.R32I)
	tx.weights = newTextureBuffer(st.Weights(), gl.R32F)
	return tx, nil
}

// NumStencils returns the number of stencils in the uploaded table.
func (tx *StencilTexture) NumStencils() int { return tx.numStencils }

// SizesTexture returns the texture buffer of per-stencil sizes.
func (tx *StencilTexture) SizesTexture() uint32 { return tx.sizes }

// OffsetsTexture returns the texture buffer of per-stencil offsets.
func (tx *StencilTexture) OffsetsTexture() uint32 { return tx.offsets }

// IndicesTexture returns the texture buffer of control vertex indices.
func (tx *StencilTexture) IndicesTexture() uint32 { return tx.indices }

// WeightsTexture returns the texture buffer of control vertex weights.
func (tx *StencilTexture) WeightsTexture() uint32 { return tx.weights }

// Release frees the device textures. The StencilTexture is unusable
// afterwards.
func (tx *StencilTexture) Release() {
	releaseTexture(&tx.sizes)
	releaseTexture(&tx.offsets)
	releaseTexture(&tx.indices)
	releaseTexture(&tx.weights)
}
