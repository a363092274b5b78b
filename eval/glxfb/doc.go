// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package glxfb evaluates subdivision surface stencils and patches on
// the GPU with OpenGL transform feedback, for hardware without compute
// shader support (core profile 4.1, e.g. macOS).
//
// The evaluator runs a vertex shader over one point per output value,
// reading control vertices from the source buffer through a texture
// buffer and capturing the shader outputs into the destination buffer
// with transform feedback. Interleaved destination layouts are handled
// by skipping the components outside the written primvar, so several
// primvars in one buffer can be evaluated by separate passes.
//
// All calls must be made with a current OpenGL context on the calling
// goroutine; see [Init] for creating an offscreen context. [Buffer],
// [StencilTexture], [PatchTexture] and [PatchCoordBuffer] upload the
// CPU-side tables from [github.com/CornerZhang/OpenSubdiv/eval], and
// [Evaluator.EvalStencils] and [Evaluator.EvalPatches] apply them.
package glxfb
