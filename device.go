package camdrv

import (
	"github.com/use-go/camdrv/pkg/capability"
	"github.com/use-go/camdrv/pkg/core"
	"github.com/use-go/camdrv/pkg/wire"
)

// GetDeviceInfo builds the request for model, firmware and serial number
func (d *Driver) GetDeviceInfo(camera Camera) ([]wire.Request, error) {
	return build(d, "device-info", camera, func(p Protocol, m capability.ModelInfo) ([]wire.Request, error) {
		return p.GetDeviceInfo(m)
	})
}

// ParseDeviceInfo reads the answer to GetDeviceInfo
func (d *Driver) ParseDeviceInfo(camera Camera, b []byte) (core.DeviceInfo, error) {
	return parse(d, "device-info", camera, func(p Protocol, _ capability.ModelInfo) (core.DeviceInfo, error) {
		return p.ParseDeviceInfo(b)
	})
}

// SetNetwork sets a static IPv4 address, mask and gateway
func (d *Driver) SetNetwork(camera Camera, cfg core.NetworkConfig) ([]wire.Request, error) {
	return build(d, "network", camera, func(p Protocol, m capability.ModelInfo) ([]wire.Request, error) {
		return p.SetNetwork(m, cfg)
	})
}

// SyncDateTime sets the camera clock to the driver clock
func (d *Driver) SyncDateTime(camera Camera) ([]wire.Request, error) {
	return build(d, "datetime", camera, func(p Protocol, m capability.ModelInfo) ([]wire.Request, error) {
		return p.SyncDateTime(m)
	})
}

// SetAlarmOutput drives a relay output
func (d *Driver) SetAlarmOutput(camera Camera, out core.AlarmOutput) ([]wire.Request, error) {
	return build(d, "alarm-output", camera, func(p Protocol, m capability.ModelInfo) ([]wire.Request, error) {
		return p.SetAlarmOutput(m, out)
	})
}

// PollEvents builds the event status request
func (d *Driver) PollEvents(camera Camera) ([]wire.Request, error) {
	return build(d, "events", camera, func(p Protocol, m capability.ModelInfo) ([]wire.Request, error) {
		return p.PollEvents(m)
	})
}

// ParseEvents reads the state of every event the model supports
func (d *Driver) ParseEvents(camera Camera, b []byte) (core.EventResult, error) {
	return parse(d, "events", camera, func(p Protocol, m capability.ModelInfo) (core.EventResult, error) {
		return p.ParseEvents(m, b)
	})
}
