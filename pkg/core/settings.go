package core

import (
	"net"

	"github.com/juju/errors"
)

// DeviceInfo is what the camera reports about itself.
type DeviceInfo struct {
	Model    string `json:"model"`
	Firmware string `json:"firmware,omitempty"`
	Serial   string `json:"serial,omitempty"`
	MAC      string `json:"mac,omitempty"`
}

// AlarmOutput drives one alarm relay. Channel is 1-based.
type AlarmOutput struct {
	Channel int  `json:"channel"`
	Active  bool `json:"active"`
}

// NetworkConfig is a static IPv4 address change.
type NetworkConfig struct {
	Address string `json:"address"`
	Subnet  string `json:"subnet"`
	Gateway string `json:"gateway"`
}

// Validate checks that every field is a dotted IPv4 address.
func (n NetworkConfig) Validate() error {
	fields := [...][2]string{{"address", n.Address}, {"subnet", n.Subnet}, {"gateway", n.Gateway}}
	for _, f := range fields {
		ip := net.ParseIP(f[1])
		if ip == nil || ip.To4() == nil {
			return errors.NotValidf("%s %q", f[0], f[1])
		}
	}
	return nil
}

// OSDPosition is a display corner.
type OSDPosition uint8

const (
	OSDTopLeft OSDPosition = iota
	OSDTopRight
	OSDBottomLeft
	OSDBottomRight
)

// OSDTextMax is the longest overlay text accepted by every dialect.
const OSDTextMax = 32

// OSDConfig sets the text and clock overlays.
type OSDConfig struct {
	TextEnabled     bool        `json:"text_enabled"`
	Text            string      `json:"text"`
	TextPosition    OSDPosition `json:"text_position"`
	DateTimeEnabled bool        `json:"datetime_enabled"`
	DateTimePos     OSDPosition `json:"datetime_position"`
}

// DateFormat is the platform date display format.
type DateFormat uint8

const (
	DateDDMMYYYY DateFormat = iota
	DateMMDDYYYY
	DateYYYYMMDD
)

// TimeFormat is the platform clock display format.
type TimeFormat uint8

const (
	Time24Hour TimeFormat = iota
	Time12Hour
)

// PasswordChange replaces the password of User.
type PasswordChange struct {
	User        string `json:"user"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// AudioCodec is the two-way audio codec.
type AudioCodec uint8

const (
	AudioG711U AudioCodec = iota
	AudioG711A
)

// Credentials authenticate the two-way audio channel.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AudioSend describes one chunk pushed to the camera speaker.
type AudioSend struct {
	Codec       AudioCodec  `json:"codec"`
	Credentials Credentials `json:"credentials"`
	Length      int         `json:"length"`
}

// DayNightMode is the IR cut filter mode.
type DayNightMode uint8

const (
	DayNightAuto DayNightMode = iota
	DayNightDay
	DayNightNight
)

// ImageField names one tunable image parameter.
type ImageField uint8

const (
	ImageBrightness ImageField = iota
	ImageContrast
	ImageSaturation
	ImageHue
	ImageSharpness
	ImageWDR
	ImageFieldCount
)

func (f ImageField) String() string {
	switch f {
	case ImageBrightness:
		return "brightness"
	case ImageContrast:
		return "contrast"
	case ImageSaturation:
		return "saturation"
	case ImageHue:
		return "hue"
	case ImageSharpness:
		return "sharpness"
	case ImageWDR:
		return "wdr"
	}
	return "unknown"
}

// Range is an inclusive value range.
type Range struct {
	Supported bool `json:"supported"`
	Min       int  `json:"min"`
	Max       int  `json:"max"`
}

// Contains reports whether v is in range of a supported field.
func (r Range) Contains(v int) bool {
	return r.Supported && v >= r.Min && v <= r.Max
}

// ImageCapability lists the tunable ranges reported by the camera.
type ImageCapability struct {
	Fields   [ImageFieldCount]Range `json:"fields"`
	DayNight bool                   `json:"day_night"`
}

// ImageSettings are the current image parameters. Values outside the camera
// range are rejected by the builders.
type ImageSettings struct {
	Values   [ImageFieldCount]int `json:"values"`
	DayNight DayNightMode         `json:"day_night"`
}
