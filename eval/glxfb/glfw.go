// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glxfb

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Init creates a hidden 1x1 window with a core profile OpenGL 4.1
// context, makes the context current, and loads the OpenGL function
// pointers. This is the standard way to run the evaluator offscreen;
// rendering applications that already own a context skip it.
//
// The calling goroutine must be locked to its OS thread
// (runtime.LockOSThread) before calling Init and for as long as the
// context is used.
func Init() (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, err
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	win, err := glfw.CreateWindow(1, 1, "glxfb", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}
	win.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, err
	}
	return win, nil
}

// Terminate destroys the context window from [Init] and shuts down
// GLFW. All evaluator resources must be released first.
func Terminate(win *glfw.Window) {
	if win != nil {
		win.Destroy()
	}
	glfw.Terminate()
}
