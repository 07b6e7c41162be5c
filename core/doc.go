// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package core defines the capability interface every renderer backend
// implements, together with the value types it is expressed in.
//
// Nothing in this package draws. Backends live in sibling packages
// (software/, gpu/) and the fallback/ package unifies them.
//
// # Coordinates
//
// All geometry is expressed in logical pixels with the origin at the top
// left corner. Backends multiply by the scale factor when producing
// physical pixels, see [PhysicalSize] and [Transformation.ScaleFactor].
//
// # Capabilities
//
//   - [Renderer]: layers, transformations, quads, text and images
//   - [Headless]: offscreen rendering into raw RGBA bytes
//
// Headless construction is a plain constructor in each backend package,
// for example software.New(font, size).
package core
