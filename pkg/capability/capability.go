// Package capability is the compiled-in camera database: brands, models, the
// parameter groups they share and the dialect each model speaks.
//
// Every table is built once at package initialization and never changes.
// Parameter groups are shared by many models through unexported pointers and
// expose copies only, so no caller can alter what another model sees.
package capability

import (
	"strings"

	"github.com/use-go/camdrv/pkg/core"
	"github.com/use-go/camdrv/pkg/grid"
)

// Bits is the set of optional features of a model.
type Bits uint32

const (
	BitPTZ Bits = 1 << iota
	BitAudioIn
	BitAudioOut
	BitAlarmIn1
	BitAlarmIn2
	BitAlarmOut1
	BitAlarmOut2
	BitMotion
	BitTamper
	BitLineCross
	BitIntrusion
	BitLoitering
	BitObjectCount
	BitNoMotion
	BitAudioException
	BitMotionWindow
	BitPrivacyMask
	BitImageSetting
	BitTwoWayAudio
	BitDateTimeSync
	BitNetworkConfig
	BitOSD
)

var bitNames = []struct {
	bit  Bits
	name string
}{
	{BitPTZ, "ptz"},
	{BitAudioIn, "audio-in"},
	{BitAudioOut, "audio-out"},
	{BitAlarmIn1, "alarm-in-1"},
	{BitAlarmIn2, "alarm-in-2"},
	{BitAlarmOut1, "alarm-out-1"},
	{BitAlarmOut2, "alarm-out-2"},
	{BitMotion, "motion"},
	{BitTamper, "tamper"},
	{BitLineCross, "line-cross"},
	{BitIntrusion, "intrusion"},
	{BitLoitering, "loitering"},
	{BitObjectCount, "object-count"},
	{BitNoMotion, "no-motion"},
	{BitAudioException, "audio-exception"},
	{BitMotionWindow, "motion-window"},
	{BitPrivacyMask, "privacy-mask"},
	{BitImageSetting, "image-setting"},
	{BitTwoWayAudio, "two-way-audio"},
	{BitDateTimeSync, "datetime-sync"},
	{BitNetworkConfig, "network-config"},
	{BitOSD, "osd"},
}

// Has reports whether every bit of b is set.
func (s Bits) Has(b Bits) bool {
	return s&b == b
}

// Names lists the set bits by name.
func (s Bits) Names() []string {
	var names []string
	for _, n := range bitNames {
		if s.Has(n.bit) {
			names = append(names, n.name)
		}
	}
	return names
}

func (s Bits) String() string {
	return strings.Join(s.Names(), ",")
}

// EventBit returns the bit a model needs to report the event.
func EventBit(e core.EventID) Bits {
	switch e {
	case core.EventMotion:
		return BitMotion
	case core.EventTamper:
		return BitTamper
	case core.EventLineCross:
		return BitLineCross
	case core.EventIntrusion:
		return BitIntrusion
	case core.EventLoitering:
		return BitLoitering
	case core.EventObjectCount:
		return BitObjectCount
	case core.EventNoMotion:
		return BitNoMotion
	case core.EventAudioException:
		return BitAudioException
	case core.EventAlarmIn1:
		return BitAlarmIn1
	case core.EventAlarmIn2:
		return BitAlarmIn2
	}
	return 0
}

// AlarmOutBit returns the bit for a 1-based alarm output channel.
func AlarmOutBit(channel int) Bits {
	switch channel {
	case 1:
		return BitAlarmOut1
	case 2:
		return BitAlarmOut2
	}
	return 0
}

// AxisMode is how a PTZ axis can be driven.
type AxisMode uint8

const (
	AxisUnsupported AxisMode = iota
	AxisRelative
	AxisAbsolute
	AxisContinuous
)

func (m AxisMode) String() string {
	switch m {
	case AxisRelative:
		return "relative"
	case AxisAbsolute:
		return "absolute"
	case AxisContinuous:
		return "continuous"
	}
	return "unsupported"
}

func (m AxisMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// PTZAxes holds the mode of each axis, indexed by core.PTZAxis.
type PTZAxes [core.AxisCount]AxisMode

// Any reports whether at least one axis moves.
func (a PTZAxes) Any() bool {
	for _, m := range a {
		if m != AxisUnsupported {
			return true
		}
	}
	return false
}

// Method is how motion or privacy windows are addressed.
type Method uint8

const (
	MethodUnsupported Method = iota
	MethodPoint
	MethodBlock
)

func (m Method) String() string {
	switch m {
	case MethodPoint:
		return "point"
	case MethodBlock:
		return "block"
	}
	return "unsupported"
}

func (m Method) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// FramerateMask has bit n-1 set when n frames per second is allowed.
type FramerateMask uint32

// FPS returns the mask of every rate from lo to hi inclusive.
func FPS(lo, hi int) FramerateMask {
	var m FramerateMask
	for i := lo; i <= hi && i <= 32; i++ {
		if i >= 1 {
			m |= 1 << (i - 1)
		}
	}
	return m
}

func (m FramerateMask) Has(fps int) bool {
	return fps >= 1 && fps <= 32 && m&(1<<(fps-1)) != 0
}

// List returns the allowed rates in ascending order.
func (m FramerateMask) List() []int {
	var list []int
	for i := 1; i <= 32; i++ {
		if m.Has(i) {
			list = append(list, i)
		}
	}
	return list
}

// Max returns the highest allowed rate or 0.
func (m FramerateMask) Max() int {
	for i := 32; i >= 1; i-- {
		if m.Has(i) {
			return i
		}
	}
	return 0
}

// Brand identifies a camera maker.
type Brand uint8

const (
	BrandNone Brand = iota
	BrandMatrix
	BrandOnvif
	BrandGeneric
	brandCount
)

// BrandInfo describes a brand. External brands are served by other drivers.
type BrandInfo struct {
	ID       Brand  `json:"id"`
	Name     string `json:"name"`
	External bool   `json:"external"`
	Models   int    `json:"models"`
}

// Dialect is the wire protocol family a model speaks.
type Dialect uint8

const (
	DialectUnknown Dialect = iota
	OemDialectA
	OemDialectB
	NativeStandard
	NativePremiumOrPtz
)

func (d Dialect) String() string {
	switch d {
	case OemDialectA:
		return "oem-a"
	case OemDialectB:
		return "oem-b"
	case NativeStandard:
		return "native-standard"
	case NativePremiumOrPtz:
		return "native-premium"
	}
	return "unknown"
}

func (d Dialect) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Native reports whether the dialect is the CGI one.
func (d Dialect) Native() bool {
	return d == NativeStandard || d == NativePremiumOrPtz
}

// ResolutionTable lists resolutions, optionally per profile and per codec.
// lists is indexed [profile][codec]; a dimension that does not depend on its
// key has length one.
type ResolutionTable struct {
	ProfileDependent bool
	CodecDependent   bool
	lists            [][][]core.Resolution
}

// FramerateTable is the framerate counterpart of ResolutionTable.
type FramerateTable struct {
	ProfileDependent bool
	CodecDependent   bool
	masks            [][]FramerateMask
}

// ParamGroup is the parameter set shared by every model built on the same
// sensor and encoder. All fields are unexported and read through ModelInfo.
type ParamGroup struct {
	name        string
	mainCodecs  core.CodecMask
	subCodecs   core.CodecMask
	resolutions ResolutionTable
	framerates  FramerateTable
	// quality ceiling per codec, indexed by VideoCodec.Index(); 0 = codec absent
	quality    [3]int
	bitrateMin int
	bitrateMax int
	bits       Bits
}

// ModelInfo is one database entry.
type ModelInfo struct {
	ID      Model   `json:"-"`
	Name    string  `json:"name"`
	Brand   Brand   `json:"-"`
	Dialect Dialect `json:"dialect"`

	Profiles          int       `json:"profiles"`
	PTZ               PTZAxes   `json:"ptz"`
	Motion            Method    `json:"motion"`
	MotionGrid        grid.Size `json:"motion_grid"`
	Privacy           Method    `json:"privacy"`
	PrivacyGrid       grid.Size `json:"privacy_grid"`
	MaxPrivacyWindows int       `json:"max_privacy_windows"`
	OSD               bool      `json:"osd"`

	group *ParamGroup
}
