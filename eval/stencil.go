// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eval

import "fmt"

// StencilTable holds a set of stencils, where each stencil computes one
// refined vertex as a weighted sum of control vertices:
//
//	refined[i] = sum over k of Weights[Offsets[i]+k] * control[Indices[Offsets[i]+k]]
//
// with k ranging over Sizes[i] terms. The four arrays use the flat
// layout that the GPU kernels consume directly, so a table can be
// uploaded without repacking.
//
// The zero value is an empty table ready for [StencilTable.Add].
type StencilTable struct {
	sizes   []int32
	offsets []int32
	indices []int32
	weights []float32
}

// NewStencilTable assembles a table from pre-built flat arrays, computing
// the per-stencil offsets from the running sum of sizes. The indices and
// weights must have exactly sum(sizes) entries.
func NewStencilTable(sizes []int32, indices []int32, weights []float32) (*StencilTable, error) {
	st := &StencilTable{
		sizes:   sizes,
		offsets: make([]int32, len(sizes)),
		indices: indices,
		weights: weights,
	}
	off := int32(0)
	for i, sz := range sizes {
		if sz < 0 {
			return nil, fmt.Errorf("eval.NewStencilTable: stencil %d has negative size %d", i, sz)
		}
		st.offsets[i] = off
		off += sz
	}
	if len(indices) != int(off) || len(weights) != int(off) {
		return nil, fmt.Errorf("eval.NewStencilTable: sizes sum to %d entries but got %d indices and %d weights", off, len(indices), len(weights))
	}
	return st, nil
}

// Add appends one stencil with the given control vertex indices and
// weights, and returns the index of the new stencil. It panics if the
// two slices differ in length.
func (st *StencilTable) Add(indices []int32, weights []float32) int {
	if len(indices) != len(weights) {
		panic(fmt.Sprintf("eval.StencilTable.Add: %d indices but %d weights", len(indices), len(weights)))
	}
	st.sizes = append(st.sizes, int32(len(indices)))
	st.offsets = append(st.offsets, int32(len(st.indices)))
	st.indices = append(st.indices, indices...)
	st.weights = append(st.weights, weights...)
	return len(st.sizes) - 1
}

// NumStencils returns the number of stencils in the table, which is the
// number of refined vertices it produces.
func (st *StencilTable) NumStencils() int { return len(st.sizes) }

// Sizes returns the number of control vertices contributing to each
// stencil.
func (st *StencilTable) Sizes() []int32 { return st.sizes }

// Offsets returns the start of each stencil within [StencilTable.Indices]
// and [StencilTable.Weights].
func (st *StencilTable) Offsets() []int32 { return st.offsets }

// Indices returns the control vertex indices of all stencils,
// concatenated.
func (st *StencilTable) Indices() []int32 { return st.indices }

// Weights returns the control vertex weights of all stencils,
// concatenated.
func (st *StencilTable) Weights() []float32 { return st.weights }

// Validate checks the internal consistency of the table: offsets must
// match the running sum of sizes, and the flat arrays must have exactly
// that many entries. Tables built through [NewStencilTable] or
// [StencilTable.Add] are always consistent; Validate is for tables
// assembled elsewhere, e.g. deserialized from a cache.
func (st *StencilTable) Validate() error {
	if len(st.offsets) != len(st.sizes) {
		return fmt.Errorf("eval.StencilTable: %d sizes but %d offsets", len(st.sizes), len(st.offsets))
	}
	off := int32(0)
	for i, sz := range st.sizes {
		if sz < 0 {
			return fmt.Errorf("eval.StencilTable: stencil %d has negative size %d", i, sz)
		}
		if st.offsets[i] != off {
			return fmt.Errorf("eval.StencilTable: stencil %d has offset %d, want %d", i, st.offsets[i], off)
		}
		off += sz
	}
	if len(st.indices) != int(off) || len(st.weights) != int(off) {
		return fmt.Errorf("eval.StencilTable: sizes sum to %d entries but table has %d indices and %d weights", off, len(st.indices), len(st.weights))
	}
	return nil
}
