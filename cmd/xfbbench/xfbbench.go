// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command xfbbench measures GPU subdivision evaluation throughput with
// synthetic stencil and patch workloads.
package main

import (
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"cogentcore.org/core/cli"
	"github.com/CornerZhang/OpenSubdiv/eval"
	"github.com/CornerZhang/OpenSubdiv/eval/glxfb"
)

//go:generate core generate -add-types -add-funcs

func init() {
	// GLFW contexts must stay on the main OS thread.
	runtime.LockOSThread()
}

// Config is the configuration for the xfbbench command.
type Config struct {

	// NumVerts is the number of control vertices in the synthetic cage.
	NumVerts int `default:"10000"`

	// NumStencils is the number of refined vertices each pass computes.
	NumStencils int `default:"60000"`

	// Terms is the number of control vertices per stencil.
	Terms int `default:"8"`

	// NumCoords is the number of patch coordinates each pass evaluates.
	NumCoords int `default:"100000"`

	// Iters is the number of timed evaluation passes.
	Iters int `default:"100"`

	// Seed seeds the synthetic workload generator.
	Seed int64 `default:"1"`
}

func main() { //types:skip
	opts := cli.DefaultOptions("xfbbench", "Measures GPU subdivision evaluation throughput with transform feedback.")
	cli.Run(opts, &Config{}, Stencils, Patches)
}

// randomCage returns n random control vertices, 3 floats each.
func randomCage(rng *rand.Rand, n int) []float32 {
	cage := make([]float32, 3*n)
	for i := range cage {
		cage[i] = rng.Float32()
	}
	return cage
}

// Stencils measures stencil table evaluation throughput.
func Stencils(c *Config) error { //cli:cmd -root
	win, err := glxfb.Init()
	if err != nil {
		return err
	}
	defer glxfb.Terminate(win)

	rng := rand.New(rand.NewSource(c.Seed))

	st := &eval.StencilTable{}
	idx := make([]int32, c.Terms)
	wts := make([]float32, c.Terms)
	for i := 0; i < c.NumStencils; i++ {
		sum := float32(0)
		for k := range idx {
			idx[k] = rng.Int31n(int32(c.NumVerts))
			wts[k] = rng.Float32() + 1e-3
			sum += wts[k]
		}
		for k := range wts {
			wts[k] /= sum
		}
		st.Add(idx, wts)
	}

	desc := eval.NewBufferDescriptor(0, 3, 3)
	ev, err := glxfb.NewEvaluator(desc, desc)
	if err != nil {
		return err
	}
	defer ev.Release()

	src, err := glxfb.NewBufferData(3, randomCage(rng, c.NumVerts))
	if err != nil {
		return err
	}
	defer src.Release()
	dst := glxfb.NewBuffer(3, c.NumStencils)
	defer dst.Release()
	stx, err := glxfb.NewStencilTexture(st)
	if err != nil {
		return err
	}
	defer stx.Release()

	// warm up before timing
	if err := ev.EvalStencils(src, dst, stx); err != nil {
		return err
	}
	glxfb.Synchronize()

	start := time.Now()
	for i := 0; i < c.Iters; i++ {
		if err := ev.EvalStencils(src, dst, stx); err != nil {
			return err
		}
	}
	glxfb.Synchronize()
	per := time.Since(start) / time.Duration(max(c.Iters, 1))
	fmt.Printf("stencils: %d refined verts in %v per pass (%.1f Mverts/s)\n",
		c.NumStencils, per, float64(c.NumStencils)/per.Seconds()/1e6)
	return nil
}

// Patches measures patch evaluation throughput at random parametric
// locations on a bicubic patch.
func Patches(c *Config) error {
	win, err := glxfb.Init()
	if err != nil {
		return err
	}
	defer glxfb.Terminate(win)

	rng := rand.New(rand.NewSource(c.Seed))

	var indices []int32
	for k := 0; k < 16; k++ {
		indices = append(indices, int32(k))
	}
	params := make([]eval.PatchParam, 1)
	params[0].Set(0, 0, 0, 0, false, 0, 0, true)

	pt, err := eval.NewPatchTable(
		[]eval.PatchArray{{Type: eval.Regular, NumPatches: 1}},
		indices, params)
	if err != nil {
		return err
	}

	coords := make([]eval.PatchCoord, c.NumCoords)
	for i := range coords {
		coords[i] = eval.PatchCoord{S: rng.Float32(), T: rng.Float32()}
	}

	desc := eval.NewBufferDescriptor(0, 3, 3)
	ev, err := glxfb.NewEvaluator(desc, desc)
	if err != nil {
		return err
	}
	defer ev.Release()

	src, err := glxfb.NewBufferData(3, randomCage(rng, 16))
	if err != nil {
		return err
	}
	defer src.Release()
	dst := glxfb.NewBuffer(3, c.NumCoords)
	defer dst.Release()
	ptx, err := glxfb.NewPatchTexture(pt)
	if err != nil {
		return err
	}
	defer ptx.Release()
	cb := glxfb.NewPatchCoordBuffer(coords)
	defer cb.Release()

	if err := ev.EvalPatches(src, dst, ptx, cb); err != nil {
		return err
	}
	glxfb.Synchronize()

	start := time.Now()
	for i := 0; i < c.Iters; i++ {
		if err := ev.EvalPatches(src, dst, ptx, cb); err != nil {
			return err
		}
	}
	glxfb.Synchronize()
	per := time.Since(start) / time.Duration(max(c.Iters, 1))
	fmt.Printf("patches: %d samples in %v per pass (%.1f Msamples/s)\n",
		c.NumCoords, per, float64(c.NumCoords)/per.Seconds()/1e6)
	return nil
}
