// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPatchTable(t *testing.T) {
	arrays := []PatchArray{
		{Type: Quads, NumPatches: 2, IndexBase: 0, PrimitiveIDBase: 0},
		{Type: Regular, NumPatches: 1, IndexBase: 8, PrimitiveIDBase: 2},
	}
	indices := make([]int32, 8+16)
	params := make([]PatchParam, 3)

	pt, err := NewPatchTable(arrays, indices, params)
	assert.NoError(t, err)
	assert.Equal(t, 2, pt.NumPatchArrays())
	assert.Equal(t, 3, pt.NumPatches())

	_, err = NewPatchTable(arrays, indices[:23], params)
	assert.Error(t, err)

	_, err = NewPatchTable(arrays, indices, params[:2])
	assert.Error(t, err)

	bad := []PatchArray{{Type: Quads, NumPatches: -1}}
	_, err = NewPatchTable(bad, nil, nil)
	assert.Error(t, err)
}

func TestPatchTableEmpty(t *testing.T) {
	pt, err := NewPatchTable(nil, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, pt.NumPatches())
	assert.Equal(t, 0, pt.NumPatchArrays())
}
