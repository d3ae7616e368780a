package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ErrNoColorTarget is returned by Flush when draws or clears were recorded
// without a color target bound.
var ErrNoColorTarget = errors.New("gpu: no color target bound")

// RenderTargets are the attachments every draw renders into.
//
// Color is the presentable image and is rebound every frame with
// RenderContext.SetColorTarget. Depth is replaced with SetDepthTarget
// whenever the surface size changes.
type RenderTargets struct {
	Color hal.TextureView
	Depth hal.TextureView

	ColorFormat gputypes.TextureFormat
	DepthFormat gputypes.TextureFormat

	Width, Height uint32
}

// DepthTarget is a depth texture and the view draws attach to.
type DepthTarget struct {
	Texture hal.Texture
	View    hal.TextureView
	Format  gputypes.TextureFormat
}

// NewDepthTarget creates a width×height Depth24Plus render attachment.
func NewDepthTarget(device hal.Device, width, height uint32) (*DepthTarget, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("gpu: depth target: zero size %dx%d", width, height)
	}
	format := gputypes.TextureFormatDepth24Plus

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "depth_target",
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create depth texture: %w", err)
	}

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:           "depth_target_view",
		Format:          format,
		Dimension:       gputypes.TextureViewDimension2D,
		Aspect:          gputypes.TextureAspectDepthOnly,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("gpu: create depth view: %w", err)
	}

	return &DepthTarget{Texture: tex, View: view, Format: format}, nil
}

// Destroy releases the view and the texture.
func (d *DepthTarget) Destroy(device hal.Device) {
	if d.View != nil {
		device.DestroyTextureView(d.View)
		d.View = nil
	}
	if d.Texture != nil {
		device.DestroyTexture(d.Texture)
		d.Texture = nil
	}
}
