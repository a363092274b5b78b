// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glxfb

import (
	"strings"
	"testing"

	"github.com/CornerZhang/OpenSubdiv/eval"
	"github.com/stretchr/testify/assert"
)

func TestFeedbackVaryings(t *testing.T) {
	// packed destination: no skips
	vs := feedbackVaryings(eval.NewBufferDescriptor(0, 3, 3))
	assert.Equal(t, []string{
		"outVertexBuffer[0]", "outVertexBuffer[1]", "outVertexBuffer[2]",
	}, vs)

	// primvar at the end of an interleaved vertex: leading skips
	vs = feedbackVaryings(eval.NewBufferDescriptor(3, 4, 7))
	assert.Equal(t, []string{
		"gl_SkipComponents1", "gl_SkipComponents1", "gl_SkipComponents1",
		"outVertexBuffer[0]", "outVertexBuffer[1]", "outVertexBuffer[2]", "outVertexBuffer[3]",
	}, vs)

	// primvar at the start: trailing skips
	vs = feedbackVaryings(eval.NewBufferDescriptor(0, 3, 5))
	assert.Equal(t, []string{
		"outVertexBuffer[0]", "outVertexBuffer[1]", "outVertexBuffer[2]",
		"gl_SkipComponents1", "gl_SkipComponents1",
	}, vs)

	// offsets beyond the first vertex reduce to the local offset
	vs = feedbackVaryings(eval.NewBufferDescriptor(11, 3, 5))
	assert.Equal(t, []string{
		"gl_SkipComponents1",
		"outVertexBuffer[0]", "outVertexBuffer[1]", "outVertexBuffer[2]",
		"gl_SkipComponents1",
	}, vs)
}

func TestKernelDefines(t *testing.T) {
	defs := kernelDefines(eval.NewBufferDescriptor(0, 3, 7), defineEvalStencils)
	assert.Contains(t, defs, "#define LENGTH 3\n")
	assert.Contains(t, defs, "#define SRC_STRIDE 7\n")
	assert.Contains(t, defs, "#define EVAL_STENCILS\n")
	assert.NotContains(t, defs, "#version")

	defs = kernelDefines(eval.NewBufferDescriptor(4, 4, 4), defineEvalPatches)
	assert.Contains(t, defs, "#define LENGTH 4\n")
	assert.Contains(t, defs, "#define SRC_STRIDE 4\n")
	assert.Contains(t, defs, "#define EVAL_PATCHES\n")
}

func TestKernelSourceEmbedded(t *testing.T) {
	// the embedded kernel leaves the version line to the host
	assert.NotContains(t, kernelSource, "#version")
	assert.Contains(t, kernelSource, "EVAL_STENCILS")
	assert.Contains(t, kernelSource, "EVAL_PATCHES")
	assert.Contains(t, kernelSource, "outVertexBuffer")
}

func TestPatchArrayUniforms(t *testing.T) {
	pa := patchArrayUniforms([]eval.PatchArray{
		{Type: eval.Quads, NumPatches: 2, IndexBase: 0, PrimitiveIDBase: 0},
		{Type: eval.Regular, NumPatches: 1, IndexBase: 8, PrimitiveIDBase: 2},
	})
	assert.Equal(t, []int32{3, 2, 0, 0, 6, 1, 8, 2}, pa)
}

func TestTerminated(t *testing.T) {
	ts := terminated([]string{"a", "bc"})
	for _, s := range ts {
		assert.True(t, strings.HasSuffix(s, "\x00"))
	}
}

func TestEvalBeforeCompile(t *testing.T) {
	ev := &Evaluator{}
	err := ev.EvalStencils(nil, nil, &StencilTexture{numStencils: 1})
	assert.ErrorIs(t, err, ErrNotCompiled)

	err = ev.EvalPatches(nil, nil, &PatchTexture{}, nil)
	assert.ErrorIs(t, err, ErrNotCompiled)
}

func TestEvalDerivativesUnsupported(t *testing.T) {
	ev := &Evaluator{}
	du := &Buffer{}
	err := ev.EvalPatchesWithDerivatives(nil, nil, du, nil,
		eval.BufferDescriptor{}, eval.BufferDescriptor{}, nil, nil)
	assert.ErrorIs(t, err, ErrDerivativesUnsupported)

	err = ev.EvalPatchesWithDerivatives(nil, nil, nil, du,
		eval.BufferDescriptor{}, eval.BufferDescriptor{}, nil, nil)
	assert.ErrorIs(t, err, ErrDerivativesUnsupported)
}

func TestCompileRejectsBadLayouts(t *testing.T) {
	// these all fail validation before any GL call is made.
	ev := &Evaluator{}
	err := ev.Compile(eval.NewBufferDescriptor(0, 3, 3), eval.NewBufferDescriptor(0, 4, 4))
	assert.Error(t, err)

	err = ev.Compile(eval.BufferDescriptor{}, eval.NewBufferDescriptor(0, 3, 3))
	assert.Error(t, err)

	err = ev.Compile(eval.NewBufferDescriptor(0, 3, 3), eval.NewBufferDescriptor(5, 3, 7))
	assert.Error(t, err)
}
