package gpu

import (
	"fmt"

	"github.com/gogpu/wgpu/hal"
)

// encoderPool recycles hal.CommandEncoder instances between frames so the
// backend's command allocators are created once rather than every frame.
//
// Encoders in the free list are closed and ready for BeginEncoding. An
// encoder leaves the pool for one submission and comes back only after
// the submission completes and ResetAll has been called on it.
type encoderPool struct {
	free    []hal.CommandEncoder
	device  hal.Device
	created int
}

func newEncoderPool(device hal.Device, seed hal.CommandEncoder) *encoderPool {
	p := &encoderPool{device: device}
	if seed != nil {
		p.free = append(p.free, seed)
		p.created++
	}
	return p
}

// acquire returns a closed encoder, creating one if the pool is empty.
func (p *encoderPool) acquire() (hal.CommandEncoder, error) {
	if n := len(p.free); n > 0 {
		enc := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		return enc, nil
	}

	enc, err := p.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "hanoi_frame_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: encoder pool: create encoder: %w", err)
	}
	p.created++
	slogger().Debug("gpu: command encoder created", "total", p.created)
	return enc, nil
}

// release returns an encoder to the pool. The encoder must not be recording.
func (p *encoderPool) release(enc hal.CommandEncoder) {
	p.free = append(p.free, enc)
}

// destroy releases all pooled encoders.
func (p *encoderPool) destroy() {
	for _, enc := range p.free {
		enc.Destroy()
	}
	p.free = nil
}
