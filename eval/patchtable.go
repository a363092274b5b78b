// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eval

import "fmt"

// PatchTable holds the patches of a refined mesh in the flat layout the
// GPU kernels consume: a list of [PatchArray] runs, the concatenated
// control vertex indices of all patches, and one [PatchParam] record per
// patch. Evaluation points address into the table through
// [PatchCoord] handles.
type PatchTable struct {
	arrays  []PatchArray
	indices []int32
	params  []PatchParam
}

// NewPatchTable assembles a table and checks that every array's patches
// address valid ranges of the index and param slices.
func NewPatchTable(arrays []PatchArray, indices []int32, params []PatchParam) (*PatchTable, error) {
	pt := &PatchTable{arrays: arrays, indices: indices, params: params}
	if err := pt.Validate(); err != nil {
		return nil, err
	}
	return pt, nil
}

// NumPatchArrays returns the number of same-type patch runs.
func (pt *PatchTable) NumPatchArrays() int { return len(pt.arrays) }

// NumPatches returns the total number of patches across all arrays.
func (pt *PatchTable) NumPatches() int {
	n := 0
	for _, pa := range pt.arrays {
		n += int(pa.NumPatches)
	}
	return n
}

// PatchArrays returns the table's patch runs.
func (pt *PatchTable) PatchArrays() []PatchArray { return pt.arrays }

// Indices returns the control vertex indices of all patches,
// concatenated per array at each array's IndexBase.
func (pt *PatchTable) Indices() []int32 { return pt.indices }

// Params returns the per-patch parameterization records, addressed by
// each array's PrimitiveIDBase.
func (pt *PatchTable) Params() []PatchParam { return pt.params }

// Validate checks that each patch array stays within the bounds of the
// index and param slices. It returns an error describing the first
// violation found.
func (pt *PatchTable) Validate() error {
	for i, pa := range pt.arrays {
		if pa.NumPatches < 0 {
			return fmt.Errorf("eval.PatchTable: array %d has negative patch count %d", i, pa.NumPatches)
		}
		if pa.IndexBase < 0 || pa.PrimitiveIDBase < 0 {
			return fmt.Errorf("eval.PatchTable: array %d has negative base (index %d, prim %d)", i, pa.IndexBase, pa.PrimitiveIDBase)
		}
		ncv := pa.Type.NumControlVertices()
		if end := int(pa.IndexBase) + int(pa.NumPatches)*ncv; end > len(pt.indices) {
			return fmt.Errorf("eval.PatchTable: array %d (%v) indexes up to %d but table has %d indices", i, pa, end, len(pt.indices))
		}
		if end := int(pa.PrimitiveIDBase) + int(pa.NumPatches); end > len(pt.params) {
			return fmt.Errorf("eval.PatchTable: array %d (%v) addresses params up to %d but table has %d", i, pa, end, len(pt.params))
		}
	}
	return nil
}
