// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package eval provides the backend-independent types shared by the GPU
// evaluators of the subdivision surface pipeline: buffer layout
// descriptors, stencil tables, and patch tables with their per-patch
// parameterization records.
//
// The tables are plain data containers. Building them from a mesh
// topology (refinement, patch selection) is the job of upstream
// components; the evaluator backends only consume them. Backends such as
// [github.com/CornerZhang/OpenSubdiv/eval/glxfb] upload these tables to
// device memory and apply them to vertex buffers.
package eval
