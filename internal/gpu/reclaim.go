package gpu

import "github.com/gogpu/wgpu/hal"

// drawResources are the per-draw objects created by SubmitTriangles.
// They are owned by the frame that recorded them until Flush, then by the
// submission that uses them until the queue reports it complete.
type drawResources struct {
	vertexBuf  hal.Buffer
	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup
}

func (r *drawResources) destroy(device hal.Device) {
	if r.bindGroup != nil {
		device.DestroyBindGroup(r.bindGroup)
		r.bindGroup = nil
	}
	if r.uniformBuf != nil {
		device.DestroyBuffer(r.uniformBuf)
		r.uniformBuf = nil
	}
	if r.vertexBuf != nil {
		device.DestroyBuffer(r.vertexBuf)
		r.vertexBuf = nil
	}
}

// submission is a flushed frame the GPU may still be executing.
type submission struct {
	index     uint64
	encoder   hal.CommandEncoder
	cmdBuf    hal.CommandBuffer
	resources []drawResources
}

// reclaimCompleted releases every in-flight submission whose index is at or
// below completed. Submission indices are monotonic, so the completed ones
// form a prefix of the list. It returns the number of submissions released.
func (rc *RenderContext) reclaimCompleted(completed uint64) int {
	cutoff := 0
	for cutoff < len(rc.inflight) && rc.inflight[cutoff].index <= completed {
		rc.release(&rc.inflight[cutoff])
		cutoff++
	}
	if cutoff > 0 {
		n := copy(rc.inflight, rc.inflight[cutoff:])
		clear(rc.inflight[n:])
		rc.inflight = rc.inflight[:n]
	}
	return cutoff
}

// release destroys the draw resources of s and returns its encoder to the
// pool.
func (rc *RenderContext) release(s *submission) {
	for i := range s.resources {
		s.resources[i].destroy(rc.device)
	}
	rc.stats.Reclaimed += len(s.resources)

	switch {
	case s.encoder != nil && s.cmdBuf != nil:
		s.encoder.ResetAll([]hal.CommandBuffer{s.cmdBuf})
		rc.pool.release(s.encoder)
	case s.cmdBuf != nil:
		rc.device.FreeCommandBuffer(s.cmdBuf)
	}
	*s = submission{}
}
