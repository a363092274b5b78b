// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatchTypeNumControlVertices(t *testing.T) {
	assert.Equal(t, 0, NonPatch.NumControlVertices())
	assert.Equal(t, 4, Quads.NumControlVertices())
	assert.Equal(t, 3, Triangles.NumControlVertices())
	assert.Equal(t, 16, Regular.NumControlVertices())
	assert.Equal(t, 20, GregoryBasis.NumControlVertices())
}

func TestPatchParamPacking(t *testing.T) {
	pp := &PatchParam{}
	pp.Set(7, 3, 1, 2, false, 9, 5, true)

	assert.Equal(t, int32(7), pp.FaceID())
	assert.Equal(t, uint8(5), pp.Transition())
	assert.Equal(t, 2, pp.Depth())
	assert.False(t, pp.NonQuadRoot())
	assert.True(t, pp.IsRegular())
	assert.Equal(t, uint8(9), pp.Boundary())
	assert.Equal(t, 3, pp.U())
	assert.Equal(t, 1, pp.V())

	pp.Clear()
	assert.Equal(t, PatchParam{}, *pp)
}

func TestPatchParamPackingLimits(t *testing.T) {
	pp := &PatchParam{}
	pp.Set(0xfffffff, 1023, 1023, 15, true, 0x1f, 0xf, false)

	assert.Equal(t, int32(0xfffffff), pp.FaceID())
	assert.Equal(t, uint8(0xf), pp.Transition())
	assert.Equal(t, 15, pp.Depth())
	assert.True(t, pp.NonQuadRoot())
	assert.False(t, pp.IsRegular())
	assert.Equal(t, uint8(0x1f), pp.Boundary())
	assert.Equal(t, 1023, pp.U())
	assert.Equal(t, 1023, pp.V())
}

func TestPatchParamNormalize(t *testing.T) {
	// depth 2 patch at integer origin (3, 1): covers u in [0.75, 1],
	// v in [0.25, 0.5].
	pp := &PatchParam{}
	pp.Set(0, 3, 1, 2, false, 0, 0, true)

	assert.Equal(t, float32(0.25), pp.UVFraction())

	u, v := pp.Normalize(0.875, 0.375)
	assert.Equal(t, float32(0.5), u)
	assert.Equal(t, float32(0.5), v)

	u, v = pp.Normalize(0.75, 0.25)
	assert.Equal(t, float32(0), u)
	assert.Equal(t, float32(0), v)

	u, v = pp.Unnormalize(0.5, 0.5)
	assert.Equal(t, float32(0.875), u)
	assert.Equal(t, float32(0.375), v)
}

func TestPatchParamNonQuadRoot(t *testing.T) {
	// refining a non-quad face once yields quad sub-faces that each
	// span their own full parameter space.
	pp := &PatchParam{}
	pp.Set(0, 0, 0, 1, true, 0, 0, false)
	assert.Equal(t, float32(1), pp.UVFraction())

	pp.Set(0, 0, 0, 2, true, 0, 0, false)
	assert.Equal(t, float32(0.5), pp.UVFraction())

	pp.Set(0, 0, 0, 2, false, 0, 0, false)
	assert.Equal(t, float32(0.25), pp.UVFraction())
}
