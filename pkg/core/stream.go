package core

import (
	"strconv"
	"strings"
)

// StreamType selects the main or sub encoder output.
type StreamType uint8

const (
	StreamMain StreamType = iota
	StreamSub
)

func (s StreamType) String() string {
	if s == StreamSub {
		return "sub"
	}
	return "main"
}

// ParseStreamType accepts "main" and "sub".
func ParseStreamType(s string) (StreamType, bool) {
	switch strings.ToLower(s) {
	case "main", "":
		return StreamMain, true
	case "sub":
		return StreamSub, true
	}
	return StreamMain, false
}

// VideoCodec is a canonical video codec.
type VideoCodec uint8

const (
	CodecNone VideoCodec = iota
	CodecMJPEG
	CodecH264
	CodecH265
	codecCount
)

// Codecs lists the real codecs in table order.
var Codecs = []VideoCodec{CodecMJPEG, CodecH264, CodecH265}

var codecNames = [...]string{"", "MJPEG", "H264", "H265"}

func (c VideoCodec) String() string {
	if c < codecCount {
		return codecNames[c]
	}
	return ""
}

// Index returns the codec position inside codec-indexed tables.
func (c VideoCodec) Index() int {
	return int(c) - 1
}

// ParseCodec maps a canonical codec name.
func ParseCodec(s string) (VideoCodec, bool) {
	for i := CodecMJPEG; i < codecCount; i++ {
		if strings.EqualFold(codecNames[i], s) {
			return i, true
		}
	}
	return CodecNone, false
}

// CodecMask is a set of codecs.
type CodecMask uint8

func MaskOf(codecs ...VideoCodec) CodecMask {
	var m CodecMask
	for _, c := range codecs {
		m |= 1 << c
	}
	return m
}

func (m CodecMask) Has(c VideoCodec) bool {
	return c != CodecNone && m&(1<<c) != 0
}

// List returns the codecs of the mask in table order.
func (m CodecMask) List() []VideoCodec {
	var list []VideoCodec
	for _, c := range Codecs {
		if m.Has(c) {
			list = append(list, c)
		}
	}
	return list
}

// Resolution indexes the canonical resolution table. ResolutionNone terminates lists.
type Resolution uint8

const ResolutionNone Resolution = 0

var resolutions = [...]string{
	"",
	"160x90",
	"160x120",
	"176x120",
	"176x144",
	"320x180",
	"320x240",
	"352x240",
	"352x288",
	"640x360",
	"640x480",
	"704x240",
	"704x288",
	"704x480",
	"704x576",
	"720x480",
	"720x576",
	"800x600",
	"1024x768",
	"1280x720",
	"1280x960",
	"1280x1024",
	"1600x1200",
	"1920x1080",
	"2048x1536",
	"2560x1440",
	"2592x1520",
	"2592x1944",
	"2688x1520",
	"3072x2048",
	"3840x2160",
}

// Named entries referenced by the capability tables.
const (
	Res160x90 Resolution = iota + 1
	Res160x120
	Res176x120
	Res176x144
	Res320x180
	Res320x240
	Res352x240
	Res352x288
	Res640x360
	Res640x480
	Res704x240
	Res704x288
	Res704x480
	Res704x576
	Res720x480
	Res720x576
	Res800x600
	Res1024x768
	Res1280x720
	Res1280x960
	Res1280x1024
	Res1600x1200
	Res1920x1080
	Res2048x1536
	Res2560x1440
	Res2592x1520
	Res2592x1944
	Res2688x1520
	Res3072x2048
	Res3840x2160
	resolutionCount
)

// ResolutionCount is the number of real entries in the canonical table.
const ResolutionCount = int(resolutionCount) - 1

func (r Resolution) String() string {
	if r < resolutionCount {
		return resolutions[r]
	}
	return ""
}

// Size returns width and height in pixels.
func (r Resolution) Size() (width, height int) {
	s := r.String()
	i := strings.IndexByte(s, 'x')
	if i < 0 {
		return 0, 0
	}
	width, _ = strconv.Atoi(s[:i])
	height, _ = strconv.Atoi(s[i+1:])
	return
}

// ParseResolution is the inverse of Resolution.String.
func ParseResolution(s string) (Resolution, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return ResolutionNone, false
	}
	for i := Resolution(1); i < resolutionCount; i++ {
		if resolutions[i] == s {
			return i, true
		}
	}
	return ResolutionNone, false
}

// ResolutionOfSize finds the table entry for width x height.
func ResolutionOfSize(width, height int) (Resolution, bool) {
	return ParseResolution(strconv.Itoa(width) + "x" + strconv.Itoa(height))
}

// bitrates is the shared constant bit rate table in kbps.
var bitrates = [...]int{32, 64, 128, 256, 384, 512, 768, 1024, 1536, 2048, 3072, 4096, 6144, 8192, 12288, 16384}

// BitrateCount is the number of bit rate table entries.
const BitrateCount = len(bitrates)

// BitrateKbps returns the table value at index i.
func BitrateKbps(i int) (int, bool) {
	if i < 0 || i >= len(bitrates) {
		return 0, false
	}
	return bitrates[i], true
}

// BitrateIndex returns the index of an exact table value.
func BitrateIndex(kbps int) (int, bool) {
	for i, v := range bitrates {
		if v == kbps {
			return i, true
		}
	}
	return 0, false
}

// NearestBitrateIndex returns the index of the table value closest to kbps.
// Ties go to the lower entry.
func NearestBitrateIndex(kbps int) int {
	best := 0
	for i, v := range bitrates {
		if abs(v-kbps) < abs(bitrates[best]-kbps) {
			best = i
		}
	}
	return best
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

// BitrateMode selects variable or constant bit rate control.
type BitrateMode uint8

const (
	BitrateVariable BitrateMode = iota
	BitrateConstant
)

func (m BitrateMode) String() string {
	if m == BitrateConstant {
		return "CBR"
	}
	return "VBR"
}

// FixedQuality scales a quality level 1..ceiling to the 0..100 range.
func FixedQuality(level, ceiling int) int {
	if ceiling <= 0 {
		return 0
	}
	return level * 100 / ceiling
}

// QualityLevel is the inverse of FixedQuality, clamped to 1..ceiling.
func QualityLevel(fixed, ceiling int) int {
	if ceiling <= 0 {
		return 0
	}
	level := (fixed*ceiling + 50) / 100
	if level < 1 {
		level = 1
	} else if level > ceiling {
		level = ceiling
	}
	return level
}

// StreamConfig is the encoder state of one stream.
type StreamConfig struct {
	Codec        VideoCodec  `json:"codec"`
	Resolution   string      `json:"resolution"`
	Framerate    int         `json:"framerate"`
	BitrateMode  BitrateMode `json:"bitrate_mode"`
	BitrateIndex int         `json:"bitrate_index"`
	Quality      int         `json:"quality"`
	GOP          int         `json:"gop"`
	Audio        bool        `json:"audio"`
}

// StreamRequest asks for a media URL, optionally writing Config first.
type StreamRequest struct {
	Stream         StreamType   `json:"stream"`
	Profile        int          `json:"profile"`
	ConsiderConfig bool         `json:"consider_config"`
	Config         StreamConfig `json:"config"`
}

// ProfileOrDefault returns the 1-based profile number, defaulting by stream type.
func (r StreamRequest) ProfileOrDefault() int {
	if r.Profile > 0 {
		return r.Profile
	}
	if r.Stream == StreamSub {
		return 2
	}
	return 1
}

func (s StreamType) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *StreamType) UnmarshalText(b []byte) error {
	v, ok := ParseStreamType(string(b))
	if !ok {
		return InvalidField("stream", string(b))
	}
	*s = v
	return nil
}

func (c VideoCodec) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *VideoCodec) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*c = CodecNone
		return nil
	}
	v, ok := ParseCodec(string(b))
	if !ok {
		return InvalidField("codec", string(b))
	}
	*c = v
	return nil
}

func (m BitrateMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *BitrateMode) UnmarshalText(b []byte) error {
	switch strings.ToUpper(string(b)) {
	case "VBR", "":
		*m = BitrateVariable
	case "CBR":
		*m = BitrateConstant
	default:
		return InvalidField("bitrate_mode", string(b))
	}
	return nil
}
