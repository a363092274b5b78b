// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glxfb

import (
	"math"
	"slices"

	"github.com/CornerZhang/OpenSubdiv/eval"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// PatchTexture is a patch table uploaded to device memory: the control
// vertex indices as an R32I texture buffer and the packed patch params
// as RGB32I, three ints per patch with the crease sharpness bits in the
// third component. The patch arrays stay on the CPU and are passed to
// the kernel as a uniform on each eval call.
type PatchTexture struct {
	arrays  []eval.PatchArray
	indices uint32 // R32I
	params  uint32 // RGB32I
}

// NewPatchTexture uploads the table to device memory. The CPU-side
// table is not retained and can be discarded after upload.
func NewPatchTexture(pt *eval.PatchTable) (*PatchTexture, error) {
	if err := pt.Validate(); err != nil {
		return nil, err
	}
	tx := &PatchTexture{arrays: slices.Clone(pt.PatchArrays())}
	tx.indices = newTextureBuffer(pt.Indices(), gl.R32I)

	params := pt.Params()
	packed := make([]int32, 0, 3*len(params))
	for _, pp := range params {
		packed = append(packed, int32(pp.Field0), int32(pp.Field1),
			int32(math.Float32bits(pp.Sharpness)))
	}
	tx.params = newTextureBuffer(packed, gl.RGB32I)
	return tx, nil
}

// NumPatchArrays returns the number of same-type patch runs.
func (tx *PatchTexture) NumPatchArrays() int { return len(tx.arrays) }

// PatchArrays returns the CPU-side patch runs of the uploaded table.
func (tx *PatchTexture) PatchArrays() []eval.PatchArray { return tx.arrays }

// IndexTexture returns the texture buffer of control vertex indices.
func (tx *PatchTexture) IndexTexture() uint32 { return tx.indices }

// ParamTexture returns the texture buffer of packed patch params.
func (tx *PatchTexture) ParamTexture() uint32 { return tx.params }

// Release frees the device textures. The PatchTexture is unusable
// afterwards.
func (tx *PatchTexture) Release() {
	releaseTexture(&tx.indices)
	releaseTexture(&tx.params)
}
