// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package renderer is the renderer selected for this build.
//
// # Overview
//
// Two backends implement the drawing interface of package core: a GPU
// backend (package gpu) and a CPU backend (package software). Build tags
// decide which of them is compiled in, and this package exposes one
// Renderer, Compositor and Surface type whatever the choice:
//
//	go build                       # both: fallback.Renderer over gpu and software
//	go build -tags nosoftware      # gpu only
//	go build -tags nogpu           # software only
//	go build -tags nogpu,nosoftware            # compile error
//	go build -tags nogpu,nosoftware,rendererdev # placeholder types
//
// With both backends the compositor picks one when it is created, trying
// the GPU first for each requested backend name (see graphics.Settings and
// the RENDERER_BACKEND environment variable). It never switches afterwards.
//
// # Quick Start
//
//	r := renderer.NewHeadless(core.DefaultFont, 16)
//	r.FillQuad(core.Quad{Bounds: core.Rectangle{Width: 100, Height: 100}},
//	    core.SolidBackground(core.White))
//	pixels := r.Screenshot(core.PhysicalSize{Width: 100, Height: 100}, 1, core.Black)
//
// NewHeadless always builds the software renderer: the GPU backend has no
// headless mode.
//
// # Logging
//
// Nothing is logged by default. Call SetLogger to enable it.
package renderer
