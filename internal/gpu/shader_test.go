package gpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestSolidShaderSource(t *testing.T) {
	if solidShaderSource == "" {
		t.Fatal("embedded shader is empty")
	}
	for _, entry := range []string{vertexEntryPoint, fragmentEntryPoint} {
		if !strings.Contains(solidShaderSource, "fn "+entry) {
			t.Errorf("shader has no entry point %q", entry)
		}
	}
}

func TestSolidShaderValidates(t *testing.T) {
	if err := validateShader(solidShaderSource); err != nil {
		t.Fatalf("validateShader() = %v", err)
	}
}

func TestValidateShaderErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"empty", ""},
		{"syntax", "@vertex fn vs_main( -> {"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := validateShader(tt.source); !errors.Is(err, ErrShaderCompile) {
				t.Errorf("validateShader() = %v, want ErrShaderCompile", err)
			}
		})
	}
}

func TestCreateShaderModuleRejectsInvalid(t *testing.T) {
	device, _, cleanup := createNoopDevice(t)
	defer cleanup()

	if _, err := createShaderModule(device, "bad", "not wgsl"); !errors.Is(err, ErrShaderCompile) {
		t.Errorf("createShaderModule() = %v, want ErrShaderCompile", err)
	}
}

func TestDefaultPipelineDescription(t *testing.T) {
	d := DefaultPipelineDescription(gputypes.TextureFormatBGRA8UnormSrgb)
	if d.Blend != gputypes.BlendStateAlpha() {
		t.Error("blend is not straight alpha")
	}
	if d.DepthFormat != gputypes.TextureFormatDepth24Plus {
		t.Errorf("DepthFormat = %v", d.DepthFormat)
	}
	if d.SampleCount != 1 {
		t.Errorf("SampleCount = %d, want 1", d.SampleCount)
	}
}

func TestSolidVertexLayout(t *testing.T) {
	layout := solidVertexLayout()
	if len(layout) != 1 || layout[0].ArrayStride != vertexStride {
		t.Fatalf("layout = %+v", layout)
	}
	attr := layout[0].Attributes[0]
	if attr.Format != gputypes.VertexFormatFloat32x4 || attr.ShaderLocation != 0 {
		t.Errorf("attribute = %+v", attr)
	}
}

func TestNewDepthTarget(t *testing.T) {
	device, _, cleanup := createNoopDevice(t)
	defer cleanup()

	d, err := NewDepthTarget(device, 800, 600)
	if err != nil {
		t.Fatalf("NewDepthTarget() = %v", err)
	}
	if d.View == nil || d.Texture == nil || d.Format != gputypes.TextureFormatDepth24Plus {
		t.Errorf("depth target = %+v", d)
	}
	d.Destroy(device)
	if d.View != nil || d.Texture != nil {
		t.Error("Destroy did not clear the target")
	}

	if _, err := NewDepthTarget(device, 0, 600); err == nil {
		t.Error("zero width: expected error")
	}
}
