// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eval

import "fmt"

// PatchType identifies the basis of a patch. Evaluator backends support
// a subset of these; unsupported patches evaluate to zero.
type PatchType int32

const (
	// NonPatch is an undefined or irregular patch.
	NonPatch PatchType = iota

	// Points is a single point.
	Points

	// Lines is a line segment pair.
	Lines

	// Quads is a bilinear quad.
	Quads

	// Triangles is a linear triangle.
	Triangles

	// Loop is a Loop triangular patch with 12 control vertices.
	Loop

	// Regular is a bicubic B-spline patch with 16 control vertices.
	Regular

	// Gregory is a 4-point Gregory patch.
	Gregory

	// GregoryBoundary is a 4-point Gregory patch on a boundary.
	GregoryBoundary

	// GregoryBasis is a 20-point Gregory basis patch.
	GregoryBasis

	// GregoryTriangle is an 18-point triangular Gregory patch.
	GregoryTriangle
)

var patchTypeNames = map[PatchType]string{
	NonPatch:        "NonPatch",
	Points:          "Points",
	Lines:           "Lines",
	Quads:           "Quads",
	Triangles:       "Triangles",
	Loop:            "Loop",
	Regular:         "Regular",
	Gregory:         "Gregory",
	GregoryBoundary: "GregoryBoundary",
	GregoryBasis:    "GregoryBasis",
	GregoryTriangle: "GregoryTriangle",
}

// patchTypeControlVertices is the number of control vertices indexed per
// patch, for each patch type.
var patchTypeControlVertices = map[PatchType]int{
	NonPatch:        0,
	Points:          1,
	Lines:           2,
	Quads:           4,
	Triangles:       3,
	Loop:            12,
	Regular:         16,
	Gregory:         4,
	GregoryBoundary: 4,
	GregoryBasis:    20,
	GregoryTriangle: 18,
}

func (pt PatchType) String() string {
	if nm, ok := patchTypeNames[pt]; ok {
		return nm
	}
	return fmt.Sprintf("PatchType(%d)", int32(pt))
}

// NumControlVertices returns the number of control vertices that one
// patch of this type indexes, e.g. 16 for [Regular] and 4 for [Quads].
func (pt PatchType) NumControlVertices() int {
	return patchTypeControlVertices[pt]
}

// PatchArray describes one run of same-type patches within a
// [PatchTable]. Its four fields are uploaded verbatim as an ivec4
// uniform, so the layout must not change.
type PatchArray struct {

	// Type is the basis shared by all patches in the array.
	Type PatchType

	// NumPatches is the number of patches in the array.
	NumPatches int32

	// IndexBase is the offset into the table's control vertex indices
	// where this array's patches start.
	IndexBase int32

	// PrimitiveIDBase is the offset into the table's patch params
	// where this array's patches start.
	PrimitiveIDBase int32
}

func (pa PatchArray) String() string {
	return fmt.Sprintf("%v x %d at index %d prim %d", pa.Type, pa.NumPatches, pa.IndexBase, pa.PrimitiveIDBase)
}

// PatchCoord addresses one evaluation point on a patch: the patch
// location within a [PatchTable] plus the (s, t) parametric coordinate
// on the patch's face. The struct is exactly five 32-bit words and is
// streamed to the GPU as a vertex attribute with this layout.
type PatchCoord struct {

	// ArrayIndex is the index of the [PatchArray] holding the patch.
	ArrayIndex int32

	// PatchIndex is the index of the patch within the whole table,
	// addressing its [PatchParam] record.
	PatchIndex int32

	// VertIndex is the offset of the patch's first control vertex
	// index within the table's flat index array.
	VertIndex int32

	// S and T are the parametric location on the patch's base face,
	// each in [0, 1].
	S, T float32
}

// PatchParam records where a patch lives in the parameter space of its
// base face, packed in two 32-bit bitfields:
//
//	Field0: faceID:28 transition:4
//	Field1: depth:4 nonQuadRoot:1 regular:1 unused:1 boundary:5 v:10 u:10
//
// listed from the least significant bit up. The packing is shared with
// the GPU kernels, which decode it with the same shifts and masks.
// Sharpness carries the crease sharpness of single-crease patches and
// rides along as a third word on the GPU.
type PatchParam struct {
	Field0    uint32
	Field1    uint32
	Sharpness float32
}

// Set packs the patch location into the two bitfields. faceID is the
// ptex face index of the patch's base face; u and v are the integer
// parametric origin of the patch at the given depth; nonQuadRoot marks
// patches whose base face was not a quad; boundary and transition are
// 5- and 4-bit edge masks; regular marks patches with a regular basis.
func (pp *PatchParam) Set(faceID int32, u, v uint16, depth int, nonQuadRoot bool, boundary, transition uint8, regular bool) {
	nq := uint32(0)
	if nonQuadRoot {
		nq = 1
	}
	reg := uint32(0)
	if regular {
		reg = 1
	}
	pp.Field0 = uint32(faceID)&0xfffffff | uint32(transition&0xf)<<28
	pp.Field1 = uint32(depth)&0xf |
		nq<<4 |
		reg<<5 |
		uint32(boundary&0x1f)<<7 |
		(uint32(v)&0x3ff)<<12 |
		(uint32(u)&0x3ff)<<22
}

// Clear resets the param to all zero.
func (pp *PatchParam) Clear() { pp.Field0, pp.Field1, pp.Sharpness = 0, 0, 0 }

// FaceID returns the ptex face index of the patch's base face.
func (pp PatchParam) FaceID() int32 { return int32(pp.Field0 & 0xfffffff) }

// Transition returns the 4-bit transition edge mask.
func (pp PatchParam) Transition() uint8 { return uint8(pp.Field0 >> 28 & 0xf) }

// Depth returns the refinement level of the patch.
func (pp PatchParam) Depth() int { return int(pp.Field1 & 0xf) }

// NonQuadRoot reports whether the patch was refined from a non-quad
// base face.
func (pp PatchParam) NonQuadRoot() bool { return pp.Field1>>4&1 != 0 }

// IsRegular reports whether the patch has a regular basis.
func (pp PatchParam) IsRegular() bool { return pp.Field1>>5&1 != 0 }

// Boundary returns the 5-bit boundary edge mask.
func (pp PatchParam) Boundary() uint8 { return uint8(pp.Field1 >> 7 & 0x1f) }

// U returns the integer u origin of the patch at its depth.
func (pp PatchParam) U() int { return int(pp.Field1 >> 22 & 0x3ff) }

// V returns the integer v origin of the patch at its depth.
func (pp PatchParam) V() int { return int(pp.Field1 >> 12 & 0x3ff) }

// UVFraction returns the fraction of the base face's parameter space
// that the patch covers along each axis, 1/2^depth. For patches refined
// from a non-quad face the first refinement level maps each quad
// sub-face to its own full parameter space, so one level is discounted.
func (pp PatchParam) UVFraction() float32 {
	depth := pp.Depth()
	if pp.NonQuadRoot() {
		depth--
	}
	return 1 / float32(int32(1)<<depth)
}

// Normalize rebases a parametric location from the base face's [0, 1]
// space into the patch's own [0, 1] subdomain.
func (pp PatchParam) Normalize(u, v float32) (float32, float32) {
	fracInv := 1 / pp.UVFraction()
	return u*fracInv - float32(pp.U()), v*fracInv - float32(pp.V())
}

// Unnormalize is the inverse of [PatchParam.Normalize], mapping a
// location in the patch's subdomain back to the base face.
func (pp PatchParam) Unnormalize(u, v float32) (float32, float32) {
	frac := pp.UVFraction()
	return (u + float32(pp.U())) * frac, (v + float32(pp.V())) * frac
}
