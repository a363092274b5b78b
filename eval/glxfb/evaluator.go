// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glxfb

import (
	"fmt"
	"log/slog"

	"cogentcore.org/core/base/errors"
	"github.com/CornerZhang/OpenSubdiv/eval"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Debug enables polling of the OpenGL error state after evaluator
// calls, reporting anything found through slog. Off by default; the
// polling stalls the pipeline.
var Debug = false

var (
	// ErrNotCompiled is returned when evaluation is attempted before a
	// successful [Evaluator.Compile].
	ErrNotCompiled = errors.New("glxfb: evaluator is not compiled")

	// ErrDerivativesUnsupported is returned when derivative output
	// buffers are requested. The transform feedback backend captures
	// values only.
	ErrDerivativesUnsupported = errors.New("glxfb: derivative evaluation is not supported")
)

// VertexBuffer is any GPU buffer usable as an evaluation source or
// destination; [Buffer] is the standard implementation.
type VertexBuffer interface {

	// VBO returns the OpenGL buffer object name.
	VBO() uint32
}

// Evaluator computes refined and limit vertex values on the GPU with
// transform feedback. One evaluator holds the stencil and patch kernel
// programs compiled for a fixed pair of source and destination layouts;
// reuse it across calls and recompile (or make a new one) when the
// layouts change.
//
// All methods must run on the goroutine holding the current OpenGL
// context.
type Evaluator struct {
	srcDesc eval.BufferDescriptor
	dstDesc eval.BufferDescriptor

	stencil stencilKernel
	patch   patchKernel

	// srcTexture is the texture buffer through which kernels read the
	// source vertex buffer; it is retargeted on every eval call.
	srcTexture uint32
}

// NewEvaluator returns an evaluator compiled for the given source and
// destination layouts.
func NewEvaluator(srcDesc, dstDesc eval.BufferDescriptor) (*Evaluator, error) {
	ev := &Evaluator{}
	if err := ev.Compile(srcDesc, dstDesc); err != nil {
		return nil, err
	}
	return ev, nil
}

// Compile builds the stencil and patch kernel programs for the given
// layouts, replacing any previously compiled programs.
func (ev *Evaluator) Compile(srcDesc, dstDesc eval.BufferDescriptor) error {
	if err := srcDesc.Validate(); err != nil {
		return err
	}
	if err := dstDesc.Validate(); err != nil {
		return err
	}
	if dstDesc.Length > srcDesc.Length {
		return fmt.Errorf("glxfb: destination length %d exceeds source length %d", dstDesc.Length, srcDesc.Length)
	}
	if err := ev.stencil.compile(srcDesc, dstDesc); err != nil {
		return err
	}
	if err := ev.patch.compile(srcDesc, dstDesc); err != nil {
		return err
	}
	ev.srcDesc, ev.dstDesc = srcDesc, dstDesc
	if ev.srcTexture == 0 {
		gl.GenTextures(1, &ev.srcTexture)
	}
	checkError("Compile")
	return nil
}

// Release frees the kernel programs and the source texture. The
// evaluator is unusable afterwards.
func (ev *Evaluator) Release() {
	ev.stencil.destroy()
	ev.patch.destroy()
	releaseTexture(&ev.srcTexture)
}

// SrcDesc returns the source layout the kernels were compiled for.
func (ev *Evaluator) SrcDesc() eval.BufferDescriptor { return ev.srcDesc }

// DstDesc returns the destination layout the kernels were compiled for.
func (ev *Evaluator) DstDesc() eval.BufferDescriptor { return ev.dstDesc }

// EvalStencils applies every stencil in the table, reading control
// vertices from src and writing one refined vertex per stencil into dst
// at the compiled destination layout.
func (ev *Evaluator) EvalStencils(src, dst VertexBuffer, stencils *StencilTexture) error {
	return ev.EvalStencilsRange(src, dst, stencils, 0, stencils.NumStencils())
}

// EvalStencilsRange applies the stencils in [start, end), writing their
// results to consecutive destination vertices starting at the compiled
// destination offset. A batch that lands elsewhere in the buffer is run
// with an evaluator compiled for that destination offset.
func (ev *Evaluator) EvalStencilsRange(src, dst VertexBuffer, stencils *StencilTexture, start, end int) error {
	if ev.stencil.program == 0 {
		return ErrNotCompiled
	}
	count := end - start
	if count <= 0 {
		return nil
	}

	// a fresh vertex array per call keeps the cached attribute state
	// from leaking across contexts.
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	defer func() {
		gl.BindVertexArray(0)
		gl.DeleteVertexArrays(1, &vao)
	}()

	gl.Enable(gl.RASTERIZER_DISCARD)
	gl.UseProgram(ev.stencil.program)

	ev.bindSrcBuffer(src.VBO())
	bindTexture(ev.stencil.uniSrcBuffer, ev.srcTexture, 0)
	bindTexture(ev.stencil.uniSizes, stencils.sizes, 1)
	bindTexture(ev.stencil.uniOffsets, stencils.offsets, 2)
	bindTexture(ev.stencil.uniIndices, stencils.indices, 3)
	bindTexture(ev.stencil.uniWeights, stencils.weights, 4)

	gl.Uniform1i(ev.stencil.uniStart, int32(start))
	gl.Uniform1i(ev.stencil.uniEnd, int32(end))
	gl.Uniform1i(ev.stencil.uniSrcOffset, int32(ev.srcDesc.Offset))

	ev.capturePoints(dst.VBO(), count)

	unbindTextures(5)
	gl.Disable(gl.RASTERIZER_DISCARD)
	gl.UseProgram(0)
	gl.ActiveTexture(gl.TEXTURE0)

	checkError("EvalStencils")
	return nil
}

// EvalPatches evaluates the surface at every patch coordinate in
// coords, writing one output vertex per coordinate into dst in order.
func (ev *Evaluator) EvalPatches(src, dst VertexBuffer, patches *PatchTexture, coords *PatchCoordBuffer) error {
	if ev.patch.program == 0 {
		return ErrNotCompiled
	}
	if n := patches.NumPatchArrays(); n > maxPatchArrays {
		return fmt.Errorf("glxfb: %d patch arrays exceeds the kernel limit of %d", n, maxPatchArrays)
	}
	if coords.NumCoords() == 0 || patches.NumPatchArrays() == 0 {
		return nil
	}

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	defer func() {
		gl.BindVertexArray(0)
		gl.DeleteVertexArrays(1, &vao)
	}()

	gl.Enable(gl.RASTERIZER_DISCARD)
	gl.UseProgram(ev.patch.program)

	ev.bindSrcBuffer(src.VBO())
	bindTexture(ev.patch.uniSrcBuffer, ev.srcTexture, 0)
	bindTexture(ev.patch.uniPatchParams, patches.params, 1)
	bindTexture(ev.patch.uniPatchIndices, patches.indices, 2)

	pa := patchArrayUniforms(patches.PatchArrays())
	gl.Uniform4iv(ev.patch.uniPatchArray, int32(len(pa)/4), &pa[0])
	gl.Uniform1i(ev.patch.uniSrcOffset, int32(ev.srcDesc.Offset))

	gl.EnableVertexAttribArray(0)
	gl.EnableVertexAttribArray(1)
	gl.BindBuffer(gl.ARRAY_BUFFER, coords.VBO())
	gl.VertexAttribIPointerWithOffset(0, 3, gl.UNSIGNED_INT, patchCoordBytes, 0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, patchCoordBytes, 12)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	ev.capturePoints(dst.VBO(), coords.NumCoords())

	unbindTextures(3)
	gl.Disable(gl.RASTERIZER_DISCARD)
	gl.UseProgram(0)
	gl.ActiveTexture(gl.TEXTURE0)

	gl.DisableVertexAttribArray(0)
	gl.DisableVertexAttribArray(1)

	checkError("EvalPatches")
	return nil
}

// EvalPatchesWithDerivatives matches the signature of evaluator
// backends that can produce tangent buffers alongside values. The
// transform feedback kernels capture values only, so any non-nil
// derivative buffer returns [ErrDerivativesUnsupported].
func (ev *Evaluator) EvalPatchesWithDerivatives(src, dst VertexBuffer, du, dv VertexBuffer, duDesc, dvDesc eval.BufferDescriptor, patches *PatchTexture, coords *PatchCoordBuffer) error {
	if du != nil || dv != nil {
		return ErrDerivativesUnsupported
	}
	return ev.EvalPatches(src, dst, patches, coords)
}

// Synchronize blocks until all evaluation work issued so far has
// completed on the GPU, making the destination buffer safe to read.
// TODO: use fence sync objects so callers can overlap CPU work instead
// of blocking the whole pipeline.
func Synchronize() {
	gl.Finish()
}

// bindSrcBuffer points the evaluator's texture buffer at the source VBO
// so the kernels can fetch control vertices from it.
func (ev *Evaluator) bindSrcBuffer(vbo uint32) {
	gl.BindTexture(gl.TEXTURE_BUFFER, ev.srcTexture)
	gl.TexBuffer(gl.TEXTURE_BUFFER, gl.R32F, vbo)
	gl.BindTexture(gl.TEXTURE_BUFFER, 0)
}

// capturePoints binds the destination range and runs one point per
// output vertex through the current program under transform feedback.
// The buffer is bound at a vertex boundary; the skip components in the
// capture varyings then walk to the primvar within each vertex.
func (ev *Evaluator) capturePoints(dstBuffer uint32, count int) {
	bindOffset := ev.dstDesc.Offset - ev.dstDesc.LocalOffset()
	gl.BindBufferRange(gl.TRANSFORM_FEEDBACK_BUFFER, 0, dstBuffer,
		4*bindOffset, 4*count*ev.dstDesc.Stride)

	gl.BeginTransformFeedback(gl.POINTS)
	gl.DrawArrays(gl.POINTS, 0, int32(count))
	gl.EndTransformFeedback()

	gl.BindBuffer(gl.TRANSFORM_FEEDBACK_BUFFER, 0)
}

// bindTexture assigns a texture buffer to a texture unit and points the
// sampler uniform at it, skipping samplers the linker dropped.
func bindTexture(sampler int32, texture uint32, unit int32) {
	if sampler == -1 {
		return
	}
	gl.Uniform1i(sampler, unit)
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_BUFFER, texture)
	gl.ActiveTexture(gl.TEXTURE0)
}

func unbindTextures(n int) {
	for i := 0; i < n; i++ {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
		gl.BindTexture(gl.TEXTURE_BUFFER, 0)
	}
}

// patchArrayUniforms flattens patch arrays into the ivec4 layout the
// kernel indexes: type, patch count, index base, primitive id base.
func patchArrayUniforms(arrays []eval.PatchArray) []int32 {
	out := make([]int32, 0, 4*len(arrays))
	for _, pa := range arrays {
		out = append(out, int32(pa.Type), pa.NumPatches, pa.IndexBase, pa.PrimitiveIDBase)
	}
	return out
}

func checkError(call string) {
	if !Debug {
		return
	}
	for {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			return
		}
		slog.Error("glxfb: OpenGL error", "call", call, "code", fmt.Sprintf("%#x", code))
	}
}
