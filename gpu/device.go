//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Registers the Vulkan HAL backend.
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/renderer/graphics"
)

// DeviceProvider is implemented by windows that share their HAL device.
// HalDevice must return a hal.Device and HalQueue a hal.Queue.
type DeviceProvider interface {
	HalDevice() any
	HalQueue() any
}

var errNoAdapter = errors.New("gpu: no adapter found")

// device is an opened HAL device and queue.
type device struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	info     graphics.Information
	// shared devices belong to the host and are not destroyed.
	shared bool
}

// openDevice shares the window's device when it offers one and opens a
// Vulkan device otherwise.
func openDevice(window graphics.Window) (*device, error) {
	if p, ok := window.(DeviceProvider); ok {
		return sharedDevice(p)
	}
	return ownDevice()
}

func sharedDevice(p DeviceProvider) (*device, error) {
	d, ok := p.HalDevice().(hal.Device)
	if !ok || d == nil {
		return nil, fmt.Errorf("gpu: HalDevice returned %T, not a hal.Device", p.HalDevice())
	}
	q, ok := p.HalQueue().(hal.Queue)
	if !ok || q == nil {
		return nil, fmt.Errorf("gpu: HalQueue returned %T, not a hal.Queue", p.HalQueue())
	}
	info := graphics.Information{
		Adapter: "shared",
		Backend: Backend.Name,
		Type:    gpucontext.AdapterTypeUnknown,
	}
	if a, ok := p.(interface{ AdapterInfo() gpucontext.AdapterInfo }); ok {
		ai := a.AdapterInfo()
		info.Adapter, info.Type = ai.Name, ai.Type
	}
	graphics.Logger().Debug("gpu: using shared device", "adapter", info.Adapter)
	return &device{device: d, queue: q, info: info, shared: true}, nil
}

func ownDevice() (*device, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, errors.New("gpu: vulkan backend not available")
	}
	return openBackend(backend)
}

func openBackend(backend hal.Backend) (*device, error) {
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{})
	if err != nil {
		return nil, fmt.Errorf("gpu: create instance: %w", err)
	}
	adapter, ok := selectAdapter(instance.EnumerateAdapters(nil))
	if !ok {
		instance.Destroy()
		return nil, errNoAdapter
	}
	opened, err := adapter.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("gpu: open %s: %w", adapter.Info.Name, err)
	}
	graphics.Logger().Debug("gpu: opened device", "adapter", adapter.Info.Name, "type", adapter.Info.DeviceType)
	return &device{
		instance: instance,
		device:   opened.Device,
		queue:    opened.Queue,
		info: graphics.Information{
			Adapter: adapter.Info.Name,
			Backend: Backend.Name,
			Type:    adapterType(adapter.Info.DeviceType),
		},
	}, nil
}

// selectAdapter prefers a discrete GPU, then an integrated one, then
// whatever comes first.
func selectAdapter(adapters []hal.ExposedAdapter) (hal.ExposedAdapter, bool) {
	if len(adapters) == 0 {
		return hal.ExposedAdapter{}, false
	}
	for _, want := range []gputypes.DeviceType{gputypes.DeviceTypeDiscreteGPU, gputypes.DeviceTypeIntegratedGPU} {
		for _, a := range adapters {
			if a.Info.DeviceType == want {
				return a, true
			}
		}
	}
	return adapters[0], true
}

func adapterType(t gputypes.DeviceType) gpucontext.AdapterType {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		return gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		return gpucontext.AdapterTypeSoftware
	default:
		return gpucontext.AdapterTypeUnknown
	}
}

func (d *device) destroy() {
	if d.shared {
		d.device, d.queue = nil, nil
		return
	}
	if d.device != nil {
		d.device.Destroy()
		d.device = nil
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
	d.queue = nil
}
