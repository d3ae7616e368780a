package gpu

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

func encodeWithRecorder(t *testing.T, e *Encoder) (*recordingEncoder, int, error) {
	t.Helper()
	device, _, cleanup := createNoopDevice(t)
	t.Cleanup(cleanup)
	rec := newRecordingEncoder(t, device)
	passes, err := e.encode(rec, nil)
	return rec, passes, err
}

func TestEncoderClearsOnly(t *testing.T) {
	color, depth := &fakeView{id: 1}, &fakeView{id: 2}
	var e Encoder
	e.ClearColor(color, gputypes.Color{R: 1, A: 1})
	e.ClearDepth(depth, 1)

	rec, passes, err := encodeWithRecorder(t, &e)
	if err != nil {
		t.Fatalf("encode() = %v", err)
	}
	if passes != 1 {
		t.Fatalf("passes = %d, want 1", passes)
	}
	if want := []string{"begin-pass", "end-pass"}; !slices.Equal(rec.log, want) {
		t.Errorf("log = %v, want %v", rec.log, want)
	}
	p := rec.passes[0]
	if p.ColorAttachments[0].LoadOp != gputypes.LoadOpClear || p.DepthStencilAttachment.DepthLoadOp != gputypes.LoadOpClear {
		t.Errorf("clear-only pass does not clear: %+v", p)
	}
}

func TestEncoderClearAfterDrawsStartsNewPass(t *testing.T) {
	color, depth := &fakeView{id: 1}, &fakeView{id: 2}
	draw := drawCall{vertexCount: 6, color: color, depth: depth}

	var e Encoder
	e.ClearColor(color, gputypes.Color{A: 1})
	e.Draw(draw)
	e.ClearDepth(depth, 0.5)
	e.Draw(draw)

	rec, passes, err := encodeWithRecorder(t, &e)
	if err != nil {
		t.Fatalf("encode() = %v", err)
	}
	if passes != 2 {
		t.Fatalf("passes = %d, want 2", passes)
	}
	want := []string{
		"begin-pass", "bind", "vertex", "draw:6", "end-pass",
		"begin-pass", "bind", "vertex", "draw:6", "end-pass",
	}
	if !slices.Equal(rec.log, want) {
		t.Errorf("log =\n  %s\nwant\n  %s", strings.Join(rec.log, " "), strings.Join(want, " "))
	}

	first, second := rec.passes[0], rec.passes[1]
	if first.ColorAttachments[0].LoadOp != gputypes.LoadOpClear || first.DepthStencilAttachment.DepthLoadOp != gputypes.LoadOpLoad {
		t.Errorf("first pass ops = color %v depth %v", first.ColorAttachments[0].LoadOp, first.DepthStencilAttachment.DepthLoadOp)
	}
	if second.ColorAttachments[0].LoadOp != gputypes.LoadOpLoad || second.DepthStencilAttachment.DepthLoadOp != gputypes.LoadOpClear {
		t.Errorf("second pass ops = color %v depth %v", second.ColorAttachments[0].LoadOp, second.DepthStencilAttachment.DepthLoadOp)
	}
	if second.DepthStencilAttachment.DepthClearValue != 0.5 {
		t.Errorf("depth clear value = %v, want 0.5", second.DepthStencilAttachment.DepthClearValue)
	}
}

func TestEncoderTargetChangeSplitsPass(t *testing.T) {
	a, b, depth := &fakeView{id: 1}, &fakeView{id: 2}, &fakeView{id: 3}

	var e Encoder
	e.Draw(drawCall{vertexCount: 3, color: a, depth: depth})
	e.Draw(drawCall{vertexCount: 3, color: b, depth: depth})

	rec, passes, err := encodeWithRecorder(t, &e)
	if err != nil {
		t.Fatal(err)
	}
	if passes != 2 {
		t.Fatalf("passes = %d, want 2", passes)
	}
	if rec.passes[0].ColorAttachments[0].View != a || rec.passes[1].ColorAttachments[0].View != b {
		t.Error("passes do not follow the draw targets")
	}
}

func TestEncoderClearForOtherTargetIsNotLost(t *testing.T) {
	a, b := &fakeView{id: 1}, &fakeView{id: 2}

	var e Encoder
	e.ClearColor(a, gputypes.Color{A: 1})
	e.Draw(drawCall{vertexCount: 3, color: b})

	rec, passes, err := encodeWithRecorder(t, &e)
	if err != nil {
		t.Fatal(err)
	}
	if passes != 2 {
		t.Fatalf("passes = %d, want clear-only pass plus draw pass", passes)
	}
	if v := rec.passes[0].ColorAttachments[0]; v.View != a || v.LoadOp != gputypes.LoadOpClear {
		t.Errorf("first pass = %+v, want clear of a", v)
	}
	if v := rec.passes[1].ColorAttachments[0]; v.View != b || v.LoadOp != gputypes.LoadOpLoad {
		t.Errorf("second pass = %+v, want load of b", v)
	}
}

func TestEncoderDepthOnlyClearUsesLastColor(t *testing.T) {
	color, depth := &fakeView{id: 1}, &fakeView{id: 2}

	var e Encoder
	e.Draw(drawCall{vertexCount: 3, color: color, depth: depth})
	e.ClearDepth(depth, 1)

	rec, passes, err := encodeWithRecorder(t, &e)
	if err != nil {
		t.Fatal(err)
	}
	if passes != 2 {
		t.Fatalf("passes = %d, want 2", passes)
	}
	if v := rec.passes[1].ColorAttachments[0]; v.View != color || v.LoadOp != gputypes.LoadOpLoad {
		t.Errorf("depth clear pass color attachment = %+v", v)
	}
}

func TestEncoderNoColorTarget(t *testing.T) {
	var e Encoder
	e.Draw(drawCall{vertexCount: 3})

	_, _, err := encodeWithRecorder(t, &e)
	if !errors.Is(err, ErrNoColorTarget) {
		t.Errorf("encode() = %v, want ErrNoColorTarget", err)
	}
}

func TestEncoderWithoutDepthTarget(t *testing.T) {
	var e Encoder
	e.Draw(drawCall{vertexCount: 3, color: &fakeView{id: 1}})

	rec, _, err := encodeWithRecorder(t, &e)
	if err != nil {
		t.Fatal(err)
	}
	if rec.passes[0].DepthStencilAttachment != nil {
		t.Error("unexpected depth attachment")
	}
}

func TestEncoderApplyUpdates(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()
	rq := &recordingQueue{Queue: queue}

	buf, err := device.CreateBuffer(&hal.BufferDescriptor{Size: 4})
	if err != nil {
		t.Fatal(err)
	}
	var e Encoder
	e.UpdateBuffer(buf, []byte{1, 2, 3, 4})
	e.Draw(drawCall{vertexCount: 3})
	e.UpdateBuffer(buf, []byte{5, 6, 7, 8})

	if err := e.applyUpdates(rq); err != nil {
		t.Fatal(err)
	}
	if len(rq.writes) != 2 || rq.writes[1].data[0] != 5 {
		t.Errorf("writes = %+v, want both updates in order", rq.writes)
	}
}

func TestEncoderReset(t *testing.T) {
	var e Encoder
	e.ClearDepth(nil, 1)
	e.Reset()
	if e.Len() != 0 {
		t.Errorf("Len() = %d after Reset, want 0", e.Len())
	}
}

func TestCommandKindString(t *testing.T) {
	if got := commandKind(42).String(); got != "commandKind(42)" {
		t.Errorf("String() = %q", got)
	}
}
