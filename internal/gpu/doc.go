// Package gpu records and submits the draws of one frame through the wgpu
// HAL.
//
// # Architecture
//
// RenderContext is the hanoi.Canvas the frame loop draws into. It owns a
// single render pipeline that fills triangles with a flat color taken from a
// 16-byte uniform:
//
//	SubmitTriangles ─► vertex buffer (written now)
//	                ─► uniform buffer (written at Flush, before submit)
//	                ─► Encoder.Draw
//	Flush           ─► Encoder.encode ─► hal.CommandEncoder ─► Queue.Submit
//	Cleanup         ─► PollCompleted ─► reclaim buffers and encoders
//
// Clears are not commands of their own; the Encoder folds them into the
// load operations of the next render pass.
//
// # Resource Lifetime
//
// Buffers allocated for a draw stay alive until the submission that reads
// them is reported complete by the queue. Command encoders are recycled
// through a pool once their submission completes.
package gpu
