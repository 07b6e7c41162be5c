// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package software is the CPU renderer backend.
//
// It rasterizes quads, images and text into an image.RGBA and presents the
// result to windows implementing graphics.PixelPresenter. It is the only
// backend able to render headless:
//
//	r := software.NewRenderer(core.DefaultFont, 16)
//	r.FillQuad(quad, core.SolidBackground(core.White))
//	pixels := r.Screenshot(core.PhysicalSize{Width: 100, Height: 100}, 1, core.Black)
//
// The backend is compiled unless the nosoftware build tag is set.
package software
