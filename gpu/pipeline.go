//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"fmt"
	"image"
	"math"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/renderer/core"
	"github.com/gogpu/renderer/internal/layer"
)

const (
	// quadSize is the std430 size of the shader's Quad struct.
	quadSize = 7 * 16
	// frameSize is the size of the shader's Frame uniform.
	frameSize  = 16
	workgroup  = 8
	entryPoint = "main"
)

// gpuQuad is a quad in pixel space, laid out like the shader's Quad.
type gpuQuad struct {
	bounds      [4]float32
	radius      [4]float32
	background  [4]float32
	borderColor [4]float32
	shadowColor [4]float32
	shadow      [4]float32
	clip        [4]float32
}

func (q *gpuQuad) appendTo(b []byte) []byte {
	for _, v := range [...][4]float32{q.bounds, q.radius, q.background, q.borderColor, q.shadowColor, q.shadow, q.clip} {
		for _, f := range v {
			b = binary.LittleEndian.AppendUint32(b, math.Float32bits(f))
		}
	}
	return b
}

// convertQuad scales a recorded quad to pixels. ok is false when the quad
// draws nothing.
func convertQuad(q layer.Quad, scale float32, clip image.Rectangle) (gpuQuad, bool) {
	if clip.Empty() {
		return gpuQuad{}, false
	}
	b := q.Bounds.Scale(scale)
	if b.IsEmpty() {
		return gpuQuad{}, false
	}
	if q.Background.Color.IsTransparent() && q.Border.Color.IsTransparent() && q.Shadow.Color.IsTransparent() {
		return gpuQuad{}, false
	}
	limit := min(b.Width, b.Height) / 2
	var radius [4]float32
	for i, r := range q.Border.Radius {
		radius[i] = min(max(r*scale, 0), limit)
	}
	return gpuQuad{
		bounds:      [4]float32{b.X, b.Y, b.Width, b.Height},
		radius:      radius,
		background:  premultiplied(q.Background.Color),
		borderColor: premultiplied(q.Border.Color),
		shadowColor: premultiplied(q.Shadow.Color),
		shadow: [4]float32{
			q.Shadow.Offset.X * scale,
			q.Shadow.Offset.Y * scale,
			q.Shadow.BlurRadius * scale,
			min(max(q.Border.Width*scale, 0), limit),
		},
		clip: [4]float32{float32(clip.Min.X), float32(clip.Min.Y), float32(clip.Max.X), float32(clip.Max.Y)},
	}, true
}

func premultiplied(c core.Color) [4]float32 {
	return [4]float32{c.R * c.A, c.G * c.A, c.B * c.A, c.A}
}

// pipeline is the compute pipeline drawing quads into a pixel buffer.
type pipeline struct {
	device     hal.Device
	queue      hal.Queue
	antialias  bool
	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	compute    hal.ComputePipeline

	// passes counts dispatched compute passes.
	passes uint64
}

func newPipeline(d hal.Device, q hal.Queue, antialias bool) (*pipeline, error) {
	code, err := quadShader()
	if err != nil {
		return nil, err
	}
	p := &pipeline{device: d, queue: q, antialias: antialias}
	if err := p.create(code); err != nil {
		p.destroy()
		return nil, err
	}
	return p, nil
}

func (p *pipeline) create(code []uint32) error {
	var err error
	p.shader, err = p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "quad",
		Source: hal.ShaderSource{SPIRV: code},
	})
	if err != nil {
		return fmt.Errorf("gpu: create shader module: %w", err)
	}

	p.bindLayout, err = p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "quad_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: 2, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create bind group layout: %w", err)
	}

	p.pipeLayout, err = p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "quad_pipeline_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("gpu: create pipeline layout: %w", err)
	}

	p.compute, err = p.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:   "quad_pipeline",
		Layout:  p.pipeLayout,
		Compute: hal.ComputeState{Module: p.shader, EntryPoint: entryPoint},
	})
	if err != nil {
		return fmt.Errorf("gpu: create compute pipeline: %w", err)
	}
	return nil
}

func (p *pipeline) destroy() {
	if p.device == nil {
		return
	}
	if p.compute != nil {
		p.device.DestroyComputePipeline(p.compute)
		p.compute = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		p.device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// resources tracks the per-draw GPU objects for release.
type resources struct {
	device  hal.Device
	buffers []hal.Buffer
	groups  []hal.BindGroup
}

func (r *resources) buffer(label string, size uint64, usage gputypes.BufferUsage) (hal.Buffer, error) {
	b, err := r.device.CreateBuffer(&hal.BufferDescriptor{Label: label, Size: size, Usage: usage})
	if err != nil {
		return nil, fmt.Errorf("gpu: create %s buffer: %w", label, err)
	}
	r.buffers = append(r.buffers, b)
	return b, nil
}

func (r *resources) release() {
	for _, g := range r.groups {
		r.device.DestroyBindGroup(g)
	}
	for _, b := range r.buffers {
		r.device.DestroyBuffer(b)
	}
}

// draw blends quads, in order, over the pixels of frame. The frame must
// be tightly packed, as returned by image.NewRGBA.
func (p *pipeline) draw(frame *image.RGBA, quads []gpuQuad) error {
	if len(quads) == 0 {
		return nil
	}
	w, h := uint32(frame.Rect.Dx()), uint32(frame.Rect.Dy())
	pixelSize := uint64(len(frame.Pix))

	data := make([]byte, 0, len(quads)*quadSize)
	for i := range quads {
		data = quads[i].appendTo(data)
	}

	res := &resources{device: p.device}
	defer res.release()

	quadBuf, err := res.buffer("quads", uint64(len(data)), gputypes.BufferUsageStorage|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	pixelBuf, err := res.buffer("pixels", pixelSize,
		gputypes.BufferUsageStorage|gputypes.BufferUsageCopySrc|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	staging, err := res.buffer("staging", pixelSize, gputypes.BufferUsageMapRead|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	if err := p.queue.WriteBuffer(quadBuf, 0, data); err != nil {
		return fmt.Errorf("gpu: upload quads: %w", err)
	}
	if err := p.queue.WriteBuffer(pixelBuf, 0, frame.Pix); err != nil {
		return fmt.Errorf("gpu: upload pixels: %w", err)
	}

	groups := make([]hal.BindGroup, 0, len(quads))
	for i := range quads {
		uniform, err := res.buffer("frame", frameSize, gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
		if err != nil {
			return err
		}
		if err := p.queue.WriteBuffer(uniform, 0, p.frameParams(w, h, uint32(i))); err != nil {
			return fmt.Errorf("gpu: upload frame params: %w", err)
		}
		g, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:  "quad_bind",
			Layout: p.bindLayout,
			Entries: []gputypes.BindGroupEntry{
				{Binding: 0, Resource: gputypes.BufferBinding{Buffer: uniform.NativeHandle(), Size: frameSize}},
				{Binding: 1, Resource: gputypes.BufferBinding{Buffer: quadBuf.NativeHandle(), Size: uint64(len(data))}},
				{Binding: 2, Resource: gputypes.BufferBinding{Buffer: pixelBuf.NativeHandle(), Size: pixelSize}},
			},
		})
		if err != nil {
			return fmt.Errorf("gpu: create bind group %d: %w", i, err)
		}
		res.groups = append(res.groups, g)
		groups = append(groups, g)
	}

	if err := p.submit(groups, pixelBuf, staging, w, h, pixelSize); err != nil {
		return err
	}
	return p.readback(staging, frame.Pix)
}

func (p *pipeline) frameParams(w, h, index uint32) []byte {
	var aa uint32
	if p.antialias {
		aa = 1
	}
	b := make([]byte, 0, frameSize)
	b = binary.LittleEndian.AppendUint32(b, w)
	b = binary.LittleEndian.AppendUint32(b, h)
	b = binary.LittleEndian.AppendUint32(b, index)
	return binary.LittleEndian.AppendUint32(b, aa)
}

// submit records one compute pass per bind group, so each quad sees the
// pixels written by the previous one, then copies the result to staging.
func (p *pipeline) submit(groups []hal.BindGroup, pixels, staging hal.Buffer, w, h uint32, size uint64) error {
	encoder, err := p.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "quad_encoder"})
	if err != nil {
		return fmt.Errorf("gpu: create command encoder: %w", err)
	}
	defer encoder.Destroy()
	if err := encoder.BeginEncoding("quads"); err != nil {
		return fmt.Errorf("gpu: begin encoding: %w", err)
	}
	for _, g := range groups {
		pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "quad_pass"})
		pass.SetPipeline(p.compute)
		pass.SetBindGroup(0, g, nil)
		pass.Dispatch((w+workgroup-1)/workgroup, (h+workgroup-1)/workgroup, 1)
		pass.End()
		p.passes++
	}
	encoder.CopyBufferToBuffer(pixels, staging, []hal.BufferCopy{{Size: size}})
	cmd, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("gpu: end encoding: %w", err)
	}
	defer p.device.FreeCommandBuffer(cmd)

	if _, err := p.queue.Submit([]hal.CommandBuffer{cmd}); err != nil {
		return fmt.Errorf("gpu: submit: %w", err)
	}
	if err := p.device.WaitIdle(); err != nil {
		return fmt.Errorf("gpu: wait: %w", err)
	}
	return nil
}

func (p *pipeline) readback(staging hal.Buffer, dst []byte) error {
	m, err := p.device.MapBuffer(staging, 0, uint64(len(dst)))
	if err != nil {
		return fmt.Errorf("gpu: map staging buffer: %w", err)
	}
	copy(dst, unsafe.Slice((*byte)(m.Ptr), len(dst)))
	if err := p.device.UnmapBuffer(staging); err != nil {
		return fmt.Errorf("gpu: unmap staging buffer: %w", err)
	}
	return nil
}
