// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package fallback unifies two renderer backends behind one value.
//
// A Renderer or Compositor holds exactly one backend, the Primary or the
// Secondary, chosen at construction and never changed. Every call is
// forwarded to that backend and its results are returned unchanged.
//
// Headless screenshots are only available from a backend implementing
// core.Headless. Asking any other backend for one is a programming error
// and panics with an *UnsupportedError.
//
// The selection is made once, by New, from the configured backend
// candidates:
//
//	c, err := fallback.New(settings, window,
//	    fallback.Adapt[*gpu.Compositor, *gpu.Renderer, *gpu.Surface](gpu.WithBackend),
//	    fallback.Adapt[*software.Compositor, *software.Renderer, *software.Surface](software.WithBackend),
//	)
//
// There is no switching between backends after construction.
package fallback
