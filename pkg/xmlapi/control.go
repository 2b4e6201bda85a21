package xmlapi

import (
	"github.com/juju/errors"

	"github.com/use-go/camdrv/pkg/capability"
	"github.com/use-go/camdrv/pkg/core"
	"github.com/use-go/camdrv/pkg/wire"
)

// ptzGroup is one continuous-move document and the axes it carries.
type ptzGroup struct {
	route route
	root  term
	axes  []core.PTZAxis
	terms []term
}

var ptzGroups = [...]ptzGroup{
	{rPTZContinuous, tPTZRoot, []core.PTZAxis{core.AxisPan, core.AxisTilt, core.AxisZoom}, []term{tPan, tTilt, tZoom}},
	{rPTZFocus, tFocusRoot, []core.PTZAxis{core.AxisFocus}, []term{tFocus}},
	{rPTZIris, tIrisRoot, []core.PTZAxis{core.AxisIris}, []term{tIris}},
}

func groupOf(axis core.PTZAxis) *ptzGroup {
	for i := range ptzGroups {
		for _, a := range ptzGroups[i].axes {
			if a == axis {
				return &ptzGroups[i]
			}
		}
	}
	return nil
}

// ptzDocument renders the group with every axis at rest except axis.
func (p *Protocol) ptzDocument(g *ptzGroup, axis core.PTZAxis, speed int) (wire.Request, error) {
	d := p.s.newDocument(g.root)
	for i, a := range g.axes {
		v := 0
		if a == axis {
			v = speed
		}
		d.setInt(d.root, g.terms[i], v)
	}
	return p.putRequest(g.route, d)
}

// PTZMove starts a continuous move on one axis or stops every supported axis.
// Speeds are signed on the wire; the sign gives the direction.
func (p *Protocol) PTZMove(m capability.ModelInfo, cmd core.PTZCommand) ([]wire.Request, error) {
	if cmd.Action == core.PTZStop {
		if !m.PTZ.Any() {
			return nil, errors.NotSupportedf("ptz on %s", m.Name)
		}
		var list []wire.Request
		for i := range ptzGroups {
			g := &ptzGroups[i]
			used := false
			for _, a := range g.axes {
				used = used || m.PTZ[a] != capability.AxisUnsupported
			}
			if !used {
				continue
			}
			r, err := p.ptzDocument(g, core.AxisCount, 0)
			if err != nil {
				return nil, err
			}
			list = append(list, r)
		}
		return list, nil
	}

	axis, dir, ok := cmd.Action.Axis()
	if !ok {
		return nil, errors.NotValidf("ptz action %d", cmd.Action)
	}
	if m.PTZ[axis] == capability.AxisUnsupported {
		return nil, errors.NotSupportedf("%s axis on %s", axis, m.Name)
	}
	if cmd.Speed < 1 || cmd.Speed > core.PTZMaxSpeed {
		return nil, errors.NotValidf("ptz speed %d", cmd.Speed)
	}

	speed := dir * cmd.Speed * p.s.PTZScale / core.PTZMaxSpeed
	r, err := p.ptzDocument(groupOf(axis), axis, speed)
	if err != nil {
		return nil, err
	}
	return []wire.Request{r}, nil
}

// PTZPreset recalls, stores or removes a preset.
func (p *Protocol) PTZPreset(m capability.ModelInfo, cmd core.PresetCommand) ([]wire.Request, error) {
	if err := m.Require(capability.BitPTZ); err != nil {
		return nil, err
	}
	if cmd.Index < 1 || cmd.Index > core.PTZPresetMax {
		return nil, errors.NotValidf("preset index %d", cmd.Index)
	}

	switch cmd.Op {
	case core.PresetGoto:
		return p.put(rPresetGoto, nil, cmd.Index)
	case core.PresetSet:
		if len(cmd.Name) > core.OSDTextMax {
			return nil, errors.NotValidf("preset name of %d bytes", len(cmd.Name))
		}
		d := p.s.newDocument(tPresetRoot)
		d.setInt(d.root, tPresetID, cmd.Index)
		if cmd.Name != "" {
			d.set(d.root, tPresetName, cmd.Name)
		}
		return p.put(rPreset, d, cmd.Index)
	case core.PresetRemove:
		u, err := p.url(rPreset, cmd.Index)
		if err != nil {
			return nil, err
		}
		return []wire.Request{{Method: wire.MethodDelete, Protocol: wire.ProtocolHTTP, Auth: wire.AuthDigest, URL: u}}, nil
	}
	return nil, errors.NotValidf("preset op %d", cmd.Op)
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

	d := p.s.newDocument(tAlarmRoot)
	d.set(d.root, tAlarmState, p.s.levels[boolIndex(out.Active)])
	return p.put(rAlarmOutput, d, out.Channel)
}

func hasEvents(m capability.ModelInfo) bool {
	for e := core.EventID(0); e < core.EventCount; e++ {
		if m.Has(capability.EventBit(e)) {
			return true
		}
	}
	return false
}

// PollEvents reads the current state of every event source.
func (p *Protocol) PollEvents(m capability.ModelInfo) ([]wire.Request, error) {
	if !hasEvents(m) {
		return nil, errors.NotSupportedf("events on %s", m.Name)
	}
	return p.get(rEvents)
}

// ParseEvents builds a fresh result from an event list. Unknown event
// types are ignored; every event the model supports must be listed.
func (p *Protocol) ParseEvents(m capability.ModelInfo, b []byte) (core.EventResult, error) {
	var res core.EventResult

	r, err := p.read(b)
	if err != nil {
		return res, err
	}

	var seen [core.EventCount]bool
	for _, item := range r.sections(tEventItem) {
		typ, err := item.required(tEventType)
		if err != nil {
			return core.EventResult{}, err
		}
		e, ok := index(p.s.eventTypes[:], typ)
		if !ok {
			continue
		}
		state, err := item.required(tEventState)
		if err != nil {
			return core.EventResult{}, err
		}
		on, ok := index(p.s.eventStates[:], state)
		if !ok {
			return core.EventResult{}, core.InvalidField(item.word(tEventState), state)
		}
		seen[e] = true
		res[e] = core.EventState(on)
	}

	for e := core.EventID(0); e < core.EventCount; e++ {
		if m.Has(capability.EventBit(e)) && !seen[e] {
			return core.EventResult{}, core.MissingField(p.s.eventTypes[e])
		}
	}
	return res, nil
}

// GetDeviceInfo reads the model and firmware identity.
func (p *Protocol) GetDeviceInfo(m capability.ModelInfo) ([]wire.Request, error) {
	return p.get(rDeviceInfo)
}

// ParseDeviceInfo reads the answer to GetDeviceInfo.
func (p *Protocol) ParseDeviceInfo(b []byte) (core.DeviceInfo, error) {
	r, err := p.read(b)
	if err != nil {
		return core.DeviceInfo{}, err
	}

	model, err := r.required(tModel)
	if err != nil {
		return core.DeviceInfo{}, err
	}
	if model == "" {
		return core.DeviceInfo{}, core.InvalidField(r.word(tModel), model)
	}

	info := core.DeviceInfo{Model: model}
	info.Firmware, _ = r.text(tFirmware)
	info.Serial, _ = r.text(tSerial)
	info.MAC, _ = r.text(tMAC)
	return info, nil
}
