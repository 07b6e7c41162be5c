package graphics

import (
	"slices"
	"strings"

	"github.com/gogpu/gpucontext"
)

// Registered backend names.
const (
	BackendGPU      = "gpu"
	BackendSoftware = "software"
)

// BackendInfo describes a compiled-in backend.
type BackendInfo struct {
	Name        string
	Aliases     []string
	Accelerated bool
	Headless    bool
}

// Matches reports whether requested selects this backend. The empty name
// selects every backend.
func (b BackendInfo) Matches(requested string) bool {
	return requested == "" || requested == b.Name || slices.Contains(b.Aliases, requested)
}

// backends lists what was compiled in. Hardware first, software last.
var backends = gpucontext.NewRegistry[BackendInfo](
	gpucontext.WithPriority(BackendGPU, BackendSoftware),
)

// RegisterBackend records a compiled-in backend.
// Backend packages call it from init().
func RegisterBackend(info BackendInfo) {
	backends.Register(info.Name, func() BackendInfo { return info })
}

// Backends returns the compiled-in backends in priority order.
func Backends() []BackendInfo {
	names := backends.Available()
	slices.SortFunc(names, func(a, b string) int {
		if d := priorityOf(a) - priorityOf(b); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
	out := make([]BackendInfo, 0, len(names))
	for _, name := range names {
		out = append(out, backends.Get(name))
	}
	return out
}

// LookupBackend returns the backend registered under name.
func LookupBackend(name string) (BackendInfo, bool) {
	if !backends.Has(name) {
		return BackendInfo{}, false
	}
	return backends.Get(name), true
}

// PreferredBackend returns the highest priority compiled-in backend.
func PreferredBackend() (BackendInfo, bool) {
	if backends.Count() == 0 {
		return BackendInfo{}, false
	}
	return backends.Best(), true
}

func priorityOf(name string) int {
	switch name {
	case BackendGPU:
		return 0
	case BackendSoftware:
		return 1
	default:
		return 2
	}
}
