package core

// PTZAction is one continuous movement command.
type PTZAction uint8

const (
	PTZStop PTZAction = iota
	PTZPanLeft
	PTZPanRight
	PTZTiltUp
	PTZTiltDown
	PTZZoomIn
	PTZZoomOut
	PTZFocusNear
	PTZFocusFar
	PTZIrisOpen
	PTZIrisClose
)

// PTZAxis names a movement axis.
type PTZAxis uint8

const (
	AxisPan PTZAxis = iota
	AxisTilt
	AxisZoom
	AxisFocus
	AxisIris
	AxisCount
)

func (a PTZAxis) String() string {
	switch a {
	case AxisPan:
		return "pan"
	case AxisTilt:
		return "tilt"
	case AxisZoom:
		return "zoom"
	case AxisFocus:
		return "focus"
	case AxisIris:
		return "iris"
	}
	return "unknown"
}

// Axis returns the axis moved by the action and the direction (-1 or +1).
// PTZStop has no axis and reports ok=false.
func (a PTZAction) Axis() (axis PTZAxis, dir int, ok bool) {
	switch a {
	case PTZPanLeft:
		return AxisPan, -1, true
	case PTZPanRight:
		return AxisPan, 1, true
	case PTZTiltUp:
		return AxisTilt, 1, true
	case PTZTiltDown:
		return AxisTilt, -1, true
	case PTZZoomIn:
		return AxisZoom, 1, true
	case PTZZoomOut:
		return AxisZoom, -1, true
	case PTZFocusNear:
		return AxisFocus, -1, true
	case PTZFocusFar:
		return AxisFocus, 1, true
	case PTZIrisOpen:
		return AxisIris, 1, true
	case PTZIrisClose:
		return AxisIris, -1, true
	}
	return 0, 0, false
}

// PTZMaxSpeed is the top of the canonical speed scale 1..PTZMaxSpeed.
const PTZMaxSpeed = 8

// PTZCommand is a continuous move or a stop.
type PTZCommand struct {
	Action PTZAction `json:"action"`
	Speed  int       `json:"speed"`
}

// PresetOp selects the preset operation.
type PresetOp uint8

const (
	PresetGoto PresetOp = iota
	PresetSet
	PresetRemove
)

// PTZPresetMax is the highest preset index accepted by every dialect.
const PTZPresetMax = 255

// PresetCommand stores, recalls or removes a preset position.
type PresetCommand struct {
	Op    PresetOp `json:"op"`
	Index int      `json:"index"`
	Name  string   `json:"name"`
}
