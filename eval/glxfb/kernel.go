// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glxfb

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/CornerZhang/OpenSubdiv/eval"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// kernelSource is the vertex shader shared by the stencil and patch
// kernels; the entry point is selected per compile with a #define.
//
//go:embed kernel.glsl
var kernelSource string

const glslVersion = "#version 410\n"

// maxPatchArrays is the size of the patch array uniform in the kernel.
// Tables with more same-type runs than this cannot be evaluated.
const maxPatchArrays = 8

const (
	defineEvalStencils = "#define EVAL_STENCILS\n"
	defineEvalPatches  = "#define EVAL_PATCHES\n"
)

// kernelDefines returns the #define block injected between the version
// line and the kernel source, parameterizing it for the source layout
// and selecting the entry point.
func kernelDefines(srcDesc eval.BufferDescriptor, kernelDefine string) string {
	return fmt.Sprintf("#define LENGTH %d\n#define SRC_STRIDE %d\n#define MAX_PATCH_ARRAYS %d\n%s",
		srcDesc.Length, srcDesc.Stride, maxPatchArrays, kernelDefine)
}

// feedbackVaryings returns the transform feedback capture list for an
// interleaved destination. The components before and after the primvar
// within one stride are skipped, so the rest of each destination vertex
// is left untouched:
//
//	gl_SkipComponents1
//	outVertexBuffer[0]
//	outVertexBuffer[1]
//	outVertexBuffer[2]
//	gl_SkipComponents1
//
// for a 3-float primvar at local offset 1 of a 5-float stride.
func feedbackVaryings(dstDesc eval.BufferDescriptor) []string {
	local := dstDesc.LocalOffset()
	vs := make([]string, 0, dstDesc.Stride)
	for i := 0; i < local; i++ {
		vs = append(vs, "gl_SkipComponents1")
	}
	for i := 0; i < dstDesc.Length; i++ {
		vs = append(vs, fmt.Sprintf("outVertexBuffer[%d]", i))
	}
	for i := local + dstDesc.Length; i < dstDesc.Stride; i++ {
		vs = append(vs, "gl_SkipComponents1")
	}
	return vs
}

// compileKernel builds one transform feedback program for the given
// layouts. The capture varyings come from the destination layout and
// must be set before linking.
func compileKernel(srcDesc, dstDesc eval.BufferDescriptor, kernelDefine string) (uint32, error) {
	program := gl.CreateProgram()
	shader := gl.CreateShader(gl.VERTEX_SHADER)
	defer gl.DeleteShader(shader)

	srcs, free := gl.Strs(glslVersion+"\x00",
		kernelDefines(srcDesc, kernelDefine)+"\x00",
		kernelSource+"\x00")
	gl.ShaderSource(shader, 3, srcs, nil)
	free()
	gl.CompileShader(shader)

	var compiled int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &compiled)
	if compiled == gl.FALSE {
		defer gl.DeleteProgram(program)
		return 0, fmt.Errorf("glxfb: kernel compile failed: %s", shaderInfoLog(shader))
	}
	gl.AttachShader(program, shader)

	varyings := feedbackVaryings(dstDesc)
	cstrs, vfree := gl.Strs(terminated(varyings)...)
	gl.TransformFeedbackVaryings(program, int32(len(varyings)), cstrs, gl.INTERLEAVED_ATTRIBS)
	vfree()

	gl.LinkProgram(program)
	var linked int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &linked)
	if linked == gl.FALSE {
		defer gl.DeleteProgram(program)
		return 0, fmt.Errorf("glxfb: kernel link failed: %s", programInfoLog(program))
	}
	return program, nil
}

// terminated returns the strings with the null terminators that
// [gl.Strs] requires.
func terminated(ss []string) []string {
	ts := make([]string, len(ss))
	for i, s := range ss {
		ts[i] = s + "\x00"
	}
	return ts
}

func shaderInfoLog(shader uint32) string {
	var n int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return "(no info log)"
	}
	log := strings.Repeat("\x00", int(n+1))
	gl.GetShaderInfoLog(shader, n, nil, gl.Str(log))
	return strings.TrimSpace(strings.Trim(log, "\x00"))
}

func programInfoLog(program uint32) string {
	var n int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return "(no info log)"
	}
	log := strings.Repeat("\x00", int(n+1))
	gl.GetProgramInfoLog(program, n, nil, gl.Str(log))
	return strings.TrimSpace(strings.Trim(log, "\x00"))
}

func uniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// stencilKernel is a compiled stencil evaluation program with its
// uniform locations. Locations are -1 for uniforms the linker dropped;
// binding skips those.
type stencilKernel struct {
	program uint32

	uniSrcBuffer int32
	uniSrcOffset int32
	uniSizes     int32
	uniOffsets   int32
	uniIndices   int32
	uniWeights   int32
	uniStart     int32
	uniEnd       int32
}

func (sk *stencilKernel) compile(srcDesc, dstDesc eval.BufferDescriptor) error {
	sk.destroy()
	program, err := compileKernel(srcDesc, dstDesc, defineEvalStencils)
	if err != nil {
		return err
	}
	sk.program = program
	sk.uniSrcBuffer = uniformLocation(program, "vertexBuffer")
	sk.uniSrcOffset = uniformLocation(program, "srcOffset")
	sk.uniSizes = uniformLocation(program, "sizes")
	sk.uniOffsets = uniformLocation(program, "offsets")
	sk.uniIndices = uniformLocation(program, "indices")
	sk.uniWeights = uniformLocation(program, "weights")
	sk.uniStart = uniformLocation(program, "batchStart")
	sk.uniEnd = uniformLocation(program, "batchEnd")
	return nil
}

func (sk *stencilKernel) destroy() {
	if sk.program != 0 {
		gl.DeleteProgram(sk.program)
		sk.program = 0
	}
}

// patchKernel is a compiled patch evaluation program with its uniform
// locations.
type patchKernel struct {
	program uint32

	uniSrcBuffer    int32
	uniSrcOffset    int32
	uniPatchArray   int32
	uniPatchParams  int32
	uniPatchIndices int32
}

func (pk *patchKernel) compile(srcDesc, dstDesc eval.BufferDescriptor) error {
	pk.destroy()
	program, err := compileKernel(srcDesc, dstDesc, defineEvalPatches)
	if err != nil {
		return err
	}
	pk.program = program
	pk.uniSrcBuffer = uniformLocation(program, "vertexBuffer")
	pk.uniSrcOffset = uniformLocation(program, "srcOffset")
	pk.uniPatchArray = uniformLocation(program, "patchArray")
	pk.uniPatchParams = uniformLocation(program, "patchParamBuffer")
	pk.uniPatchIndices = uniformLocation(program, "patchIndexBuffer")
	return nil
}

func (pk *patchKernel) destroy() {
	if pk.program != 0 {
		gl.DeleteProgram(pk.program)
		pk.program = 0
	}
}
