package cgi

import (
	"github.com/juju/errors"

	"github.com/use-go/camdrv/pkg/capability"
	"github.com/use-go/camdrv/pkg/core"
	"github.com/use-go/camdrv/pkg/wire"
)

var ptzDirections = map[core.PTZAction]string{
	core.PTZPanLeft:   "left",
	core.PTZPanRight:  "right",
	core.PTZTiltUp:    "up",
	core.PTZTiltDown:  "down",
	core.PTZZoomIn:    "in",
	core.PTZZoomOut:   "out",
	core.PTZFocusNear: "near",
	core.PTZFocusFar:  "far",
	core.PTZIrisOpen:  "open",
	core.PTZIrisClose: "close",
}

var presetOps = [...]string{
	core.PresetGoto:   "goto",
	core.PresetSet:    "set",
	core.PresetRemove: "remove",
}

// PTZMove starts a continuous move on one axis or stops every axis.
func (p *Protocol) PTZMove(m capability.ModelInfo, cmd core.PTZCommand) ([]wire.Request, error) {
	if cmd.Action == core.PTZStop {
		if !m.PTZ.Any() {
			return nil, errors.NotSupportedf("ptz on %s", m.Name)
		}
		return single(query("ptz", "stop"))
	}

	axis, _, ok := cmd.Action.Axis()
	if !ok {
		return nil, errors.NotValidf("ptz action %d", cmd.Action)
	}
	if m.PTZ[axis] == capability.AxisUnsupported {
		return nil, errors.NotSupportedf("%s axis on %s", axis, m.Name)
	}
	if cmd.Speed < 1 || cmd.Speed > core.PTZMaxSpeed {
		return nil, errors.NotValidf("ptz speed %d", cmd.Speed)
	}

	return single(query("ptz", "move").
		Add("axis", axis.String()).
		Add("direction", ptzDirections[cmd.Action]).
		AddInt("speed", cmd.Speed))
}

// PTZPreset recalls, stores or removes a preset.
func (p *Protocol) PTZPreset(m capability.ModelInfo, cmd core.PresetCommand) ([]wire.Request, error) {
	if err := m.Require(capability.BitPTZ); err != nil {
		return nil, err
	}
	op, err := lookup(presetOps[:], int(cmd.Op), "preset op")
	if err != nil {
		return nil, err
	}
	if cmd.Index < 1 || cmd.Index > core.PTZPresetMax {
		return nil, errors.NotValidf("preset index %d", cmd.Index)
	}

	q := query("ptz", "preset").Add("op", op).AddInt("index", cmd.Index)
	if cmd.Op == core.PresetSet && cmd.Name != "" {
		if len(cmd.Name) > core.OSDTextMax {
			return nil, errors.NotValidf("preset name of %d bytes", len(cmd.Name))
		}
		q.Add("name", cmd.Name)
	}
	return single(q)
}

// SetAlarmOutput drives one relay.
func (p *Protocol) SetAlarmOutput(m capability.ModelInfo, out core.AlarmOutput) ([]wire.Request, error) {
	bit := capability.AlarmOutBit(out.Channel)
	if bit == 0 {
		return nil, errors.NotValidf("alarm output channel %d", out.Channel)
	}
	if err := m.Require(bit); err != nil {
		return nil, err
	}
	return single(query("alarmout", "set").AddInt("channel", out.Channel).AddBool("state", out.Active))
}

// PollEvents reads the current state of every event source.
func (p *Protocol) PollEvents(m capability.ModelInfo) ([]wire.Request, error) {
	if !hasEvents(m) {
		return nil, errors.NotSupportedf("events on %s", m.Name)
	}
	return single(query("eventstatus", "get"))
}

func hasEvents(m capability.ModelInfo) bool {
	for e := core.EventID(0); e < core.EventCount; e++ {
		if m.Has(capability.EventBit(e)) {
			return true
		}
	}
	return false
}

// ParseEvents builds a fresh result from an event status response. Every
// event the model supports must be reported.
func (p *Protocol) ParseEvents(m capability.ModelInfo, b []byte) (core.EventResult, error) {
	var res core.EventResult

	c, err := response(b)
	if err != nil {
		return res, err
	}

	for e := core.EventID(0); e < core.EventCount; e++ {
		if !m.Has(capability.EventBit(e)) {
			continue
		}
		v, err := required(c, eventKeys[e])
		if err != nil {
			return core.EventResult{}, err
		}
		on, err := parseSwitch(eventKeys[e], v)
		if err != nil {
			return core.EventResult{}, err
		}
		if on {
			res[e] = core.EventActive
		}
	}

	return res, nil
}

// GetDeviceInfo reads the model and firmware identity.
func (p *Protocol) GetDeviceInfo(m capability.ModelInfo) ([]wire.Request, error) {
	return single(query("device", "getinfo"))
}

// ParseDeviceInfo reads the answer to GetDeviceInfo.
func (p *Protocol) ParseDeviceInfo(b []byte) (core.DeviceInfo, error) {
	c, err := response(b)
	if err != nil {
		return core.DeviceInfo{}, err
	}

	model, err := required(c, "model")
	if err != nil {
		return core.DeviceInfo{}, err
	}
	if model == "" {
		return core.DeviceInfo{}, core.InvalidField("model", model)
	}

	info := core.DeviceInfo{Model: model}
	info.Firmware, _ = c.Value("firmware-version")
	info.Serial, _ = c.Value("serial-number")
	info.MAC, _ = c.Value("mac-address")
	return info, nil
}
