// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpu is the hardware renderer backend.
//
// Quads are rasterized by a WGSL compute shader running on a wgpu HAL
// device, one compute pass per quad so later quads blend over earlier
// ones. Images and text are composited on the CPU after the pixels are
// read back. Frames are presented to windows implementing
// gpucontext.TextureDrawer or graphics.PixelPresenter.
//
// The device is shared with the host when the window exposes
// HalDevice() and HalQueue(); otherwise the compositor opens its own
// Vulkan device.
//
// The renderer has no headless mode: it does not implement
// core.Headless. Compositor.Screenshot is supported.
//
// The backend is compiled unless the nogpu build tag is set.
package gpu
