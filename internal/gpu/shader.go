package gpu

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/solid.wgsl
var solidShaderSource string

// Shader entry points in shaders/solid.wgsl.
const (
	vertexEntryPoint   = "vs_main"
	fragmentEntryPoint = "fs_main"
)

// ErrShaderCompile is returned when WGSL source fails to parse, validate or
// translate.
var ErrShaderCompile = errors.New("gpu: shader compilation failed")

// validateShader runs source through the full naga pipeline (parse, lower,
// validate, SPIR-V). Backends accept WGSL directly; this catches errors at
// context creation instead of at the first draw.
func validateShader(source string) error {
	if source == "" {
		return fmt.Errorf("%w: empty source", ErrShaderCompile)
	}
	spirv, err := naga.Compile(source)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrShaderCompile, err)
	}
	slogger().Debug("gpu: shader validated", "spirv_bytes", len(spirv))
	return nil
}

// createShaderModule validates source and creates a HAL shader module from it.
func createShaderModule(device hal.Device, label, source string) (hal.ShaderModule, error) {
	if err := validateShader(source); err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}
	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{WGSL: source},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", label, ErrShaderCompile, err)
	}
	return module, nil
}
