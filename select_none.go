//go:build nogpu && nosoftware && !rendererdev

package renderer

// Both backends are disabled. Remove the nogpu or the nosoftware build tag
// so at least one is compiled in, or add the rendererdev tag to build
// tooling against placeholder types.
var _ = renderer_needs_a_backend_remove_nogpu_or_nosoftware_build_tag
