//go:build !nogpu

package gpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/gogpu/naga"
)

//go:embed shaders/quad.wgsl
var quadShaderSource string

var (
	quadSPIRVOnce sync.Once
	quadSPIRV     []uint32
	quadSPIRVErr  error
)

// quadShader returns the quad shader compiled to SPIR-V words. The WGSL is
// compiled once per process.
func quadShader() ([]uint32, error) {
	quadSPIRVOnce.Do(func() {
		quadSPIRV, quadSPIRVErr = compileSPIRV(quadShaderSource)
	})
	return quadSPIRV, quadSPIRVErr
}

func compileSPIRV(wgsl string) ([]uint32, error) {
	code, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("gpu: compile shader: %w", err)
	}
	if len(code)%4 != 0 {
		return nil, fmt.Errorf("gpu: compile shader: SPIR-V length %d is not a multiple of 4", len(code))
	}
	words := make([]uint32, len(code)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(code[i*4:])
	}
	return words, nil
}
