// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package graphics defines the compositor contract shared by every
// renderer backend: surfaces, viewports, settings and the errors a backend
// may report while presenting.
//
// It also holds the process wide backend registry and logger so that
// backend packages can register themselves from init() without importing
// each other.
//
// # Backend selection
//
// A compositor is created once per window. Which backend is tried first is
// decided by [Settings.Candidates]: an explicit [WithBackend] option, the
// RENDERER_BACKEND environment variable (comma separated list), or no
// preference at all. Once created, a compositor never switches backend.
package graphics
