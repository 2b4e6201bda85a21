// Package xmlapi speaks the two OEM XML dialects. Both share one document
// schema; a Schema value supplies the vocabulary of a dialect: element
// paths, enumerant tokens, URL templates and the status element.
package xmlapi

import (
	"github.com/use-go/camdrv/pkg/core"
)

// term is one logical element of the shared schema.
type term uint8

const (
	tStatusCode term = iota
	tStatusMessage

	tStreamRoot
	tStreamID
	tCodec
	tWidth
	tHeight
	tRateControl
	tBitrate
	tQuality
	tFramerate
	tGOP
	tAudio

	tPTZRoot
	tPan
	tTilt
	tZoom
	tFocusRoot
	tFocus
	tIrisRoot
	tIris
	tPresetRoot
	tPresetID
	tPresetName

	tAlarmRoot
	tAlarmState

	tEventItem
	tEventType
	tEventState

	tModel
	tFirmware
	tSerial
	tMAC

	tNetRoot
	tNetMode
	tAddress
	tSubnet
	tGateway

	tOSDRoot
	tOSDTextEnabled
	tOSDTextString
	tOSDTextX
	tOSDTextY
	tOSDTextPos
	tOSDClockEnabled
	tOSDClockX
	tOSDClockY
	tOSDClockPos
	tOSDDateFormat
	tOSDTimeFormat

	tMotionRoot
	tMotionEnabled
	tSensitivity
	tGridRows
	tGridCols
	tGridData

	tPrivacyRoot
	tPrivacyEnabled
	tRegion
	tRegionID
	tRegionEnabled
	tCoordinate
	tX
	tY
	tMaxRegions

	tUserRoot
	tUserName
	tOldPassword
	tNewPassword

	tAudioRoot
	tAudioCodec

	tTimeRoot
	tTimeMode
	tLocalTime

	tImageRoot
	tBrightness
	tContrast
	tSaturation
	tHue
	tSharpness
	tWDR
	tDayNight
	tRangeMin
	tRangeMax

	termCount
)

// route is one URL template of the shared schema.
type route uint8

const (
	rStream route = iota
	rMedia
	rSnapshot
	rPTZContinuous
	rPTZFocus
	rPTZIris
	rPreset
	rPresetGoto
	rAlarmOutput
	rEvents
	rDeviceInfo
	rNetwork
	rOSD
	rMotion
	rPrivacy
	rPrivacyCap
	rPassword
	rAudioChannel
	rAudioOpen
	rAudioData
	rAudioClose
	rTime
	rImageCap
	rImage

	routeCount
)

// Schema is the vocabulary of one XML dialect. An empty route means the
// dialect has no such operation.
type Schema struct {
	Name        string
	Namespace   string
	Version     string
	ContentType string

	// StatusOK is the value of the status element on success.
	StatusOK string

	// StreamIDBase is added to the 1-based profile to form the stream id.
	StreamIDBase int
	// FramerateScale multiplies frames per second on the wire.
	FramerateScale int
	// SensitivityScale multiplies the canonical 1..10 motion sensitivity.
	SensitivityScale int
	// PTZScale is the wire speed of the fastest canonical speed.
	PTZScale int

	// OSDCoordinates selects x/y overlay placement instead of corner tokens.
	OSDCoordinates bool
	// Screen is the overlay and privacy coordinate space.
	ScreenWidth  int
	ScreenHeight int
	// BottomUp puts the Y origin at the bottom of the screen.
	BottomUp bool

	TimeLayout string

	words  [termCount]string
	routes [routeCount]string

	codecs       map[core.VideoCodec]string
	rateControls [2]string
	bools        [2]string
	levels       [2]string
	eventTypes   [core.EventCount]string
	eventStates  [2]string
	osdCorners   [4]string
	osdPoints    [4][2]int
	dateFormats  [3]string
	timeFormats  [2]string
	dayNight     [3]string
	audioCodecs  [2]string
	netMode      string
	timeMode     string
}

// DialectA returns the vocabulary of the ISAPI-style OEM dialect.
func DialectA() *Schema {
	return dialectA
}

// DialectB returns the vocabulary of the /api/v1 OEM dialect.
func DialectB() *Schema {
	return dialectB
}

var dialectA = &Schema{
	Name:             "oem-a",
	Namespace:        "http://www.std-cgi.com/ver20/XMLSchema",
	Version:          "2.0",
	ContentType:      "application/xml",
	StatusOK:         "1",
	StreamIDBase:     100,
	FramerateScale:   100,
	SensitivityScale: 10,
	PTZScale:         100,
	OSDCoordinates:   true,
	ScreenWidth:      704,
	ScreenHeight:     576,
	BottomUp:         true,
	TimeLayout:       "2006-01-02T15:04:05",

	words: [termCount]string{
		tStatusCode:    "statusCode",
		tStatusMessage: "statusString",

		tStreamRoot:  "StreamingChannel",
		tStreamID:    "id",
		tCodec:       "Video/videoCodecType",
		tWidth:       "Video/videoResolutionWidth",
		tHeight:      "Video/videoResolutionHeight",
		tRateControl: "Video/videoQualityControlType",
		tBitrate:     "Video/constantBitRate",
		tQuality:     "Video/fixedQuality",
		tFramerate:   "Video/maxFrameRate",
		tGOP:         "Video/GovLength",
		tAudio:       "Audio/enabled",

		tPTZRoot:    "PTZData",
		tPan:        "pan",
		tTilt:       "tilt",
		tZoom:       "zoom",
		tFocusRoot:  "FocusData",
		tFocus:      "focus",
		tIrisRoot:   "IrisData",
		tIris:       "iris",
		tPresetRoot: "PTZPreset",
		tPresetID:   "id",
		tPresetName: "presetName",

		tAlarmRoot:  "IOPortData",
		tAlarmState: "outputState",

		tEventItem:  "EventState",
		tEventType:  "eventType",
		tEventState: "eventState",

		tModel:    "model",
		tFirmware: "firmwareVersion",
		tSerial:   "serialNumber",
		tMAC:      "macAddress",

		tNetRoot: "IPAddress",
		tNetMode: "addressingType",
		tAddress: "ipAddress",
		tSubnet:  "subnetMask",
		tGateway: "DefaultGateway/ipAddress",

		tOSDRoot:         "VideoOverlay",
		tOSDTextEnabled:  "TextOverlayList/TextOverlay/enabled",
		tOSDTextString:   "TextOverlayList/TextOverlay/displayText",
		tOSDTextX:        "TextOverlayList/TextOverlay/positionX",
		tOSDTextY:        "TextOverlayList/TextOverlay/positionY",
		tOSDClockEnabled: "DateTimeOverlay/enabled",
		tOSDClockX:       "DateTimeOverlay/positionX",
		tOSDClockY:       "DateTimeOverlay/positionY",
		tOSDDateFormat:   "DateTimeOverlay/dateStyle",
		tOSDTimeFormat:   "DateTimeOverlay/timeStyle",

		tMotionRoot:    "MotionDetection",
		tMotionEnabled: "enabled",
		tSensitivity:   "MotionDetectionLayout/sensitivityLevel",
		tGridRows:      "Grid/rowGranularity",
		tGridCols:      "Grid/columnGranularity",
		tGridData:      "MotionDetectionLayout/layout/gridMap",

		tPrivacyRoot:    "PrivacyMask",
		tPrivacyEnabled: "enabled",
		tRegion:         "PrivacyMaskRegionList/PrivacyMaskRegion",
		tRegionID:       "id",
		tRegionEnabled:  "enabled",
		tCoordinate:     "RegionCoordinatesList/RegionCoordinates",
		tX:              "positionX",
		tY:              "positionY",
		tMaxRegions:     "maxRegionNum",

		tUserRoot:    "User",
		tUserName:    "userName",
		tOldPassword: "loginPassword",
		tNewPassword: "password",

		tAudioRoot:  "TwoWayAudioChannel",
		tAudioCodec: "audioCompressionType",

		tTimeRoot:  "Time",
		tTimeMode:  "timeMode",
		tLocalTime: "localTime",

		tImageRoot:  "ImageChannel",
		tBrightness: "Color/brightnessLevel",
		tContrast:   "Color/contrastLevel",
		tSaturation: "Color/saturationLevel",
		tHue:        "Color/hueValue",
		tSharpness:  "Sharpness/SharpnessLevel",
		tWDR:        "WDR/WDRLevel",
		tDayNight:   "IrcutFilter/IrcutFilterType",
		tRangeMin:   "min",
		tRangeMax:   "max",
	},

	routes: [routeCount]string{
		rStream:        "/ISAPI/Streaming/channels/%d",
		rMedia:         "/Streaming/Channels/%d",
		rSnapshot:      "/ISAPI/Streaming/channels/%d/picture",
		rPTZContinuous: "/ISAPI/PTZCtrl/channels/1/continuous",
		rPTZFocus:      "/ISAPI/Image/channels/1/focus",
		rPTZIris:       "/ISAPI/Image/channels/1/iris",
		rPreset:        "/ISAPI/PTZCtrl/channels/1/presets/%d",
		rPresetGoto:    "/ISAPI/PTZCtrl/channels/1/presets/%d/goto",
		rAlarmOutput:   "/ISAPI/System/IO/outputs/%d/trigger",
		rEvents:        "/ISAPI/Event/notification/status",
		rDeviceInfo:    "/ISAPI/System/deviceInfo",
		rNetwork:       "/ISAPI/System/Network/interfaces/1/ipAddress",
		rOSD:           "/ISAPI/System/Video/inputs/channels/1/overlays",
		rMotion:        "/ISAPI/System/Video/inputs/channels/1/motionDetection",
		rPrivacy:       "/ISAPI/System/Video/inputs/channels/1/privacyMask",
		rPrivacyCap:    "/ISAPI/System/Video/inputs/channels/1/privacyMask/capabilities",
		rPassword:      "/ISAPI/Security/users/1",
		rAudioChannel:  "/ISAPI/System/TwoWayAudio/channels/1",
		rAudioOpen:     "/ISAPI/System/TwoWayAudio/channels/1/open",
		rAudioData:     "/ISAPI/System/TwoWayAudio/channels/1/audioData",
		rAudioClose:    "/ISAPI/System/TwoWayAudio/channels/1/close",
		rTime:          "/ISAPI/System/time",
		rImageCap:      "/ISAPI/Image/channels/1/capabilities",
		rImage:         "/ISAPI/Image/channels/1",
	},

	codecs: map[core.VideoCodec]string{
		core.CodecMJPEG: "MJPEG",
		core.CodecH264:  "H.264",
		core.CodecH265:  "H.265",
	},
	rateControls: [2]string{core.BitrateVariable: "VBR", core.BitrateConstant: "CBR"},
	bools:        [2]string{"false", "true"},
	levels:       [2]string{"low", "high"},
	eventTypes: [core.EventCount]string{
		core.EventMotion:         "VMD",
		core.EventTamper:         "tamperdetection",
		core.EventLineCross:      "linedetection",
		core.EventIntrusion:      "fielddetection",
		core.EventLoitering:      "loitering",
		core.EventObjectCount:    "peoplecounting",
		core.EventNoMotion:       "unattendedBaggage",
		core.EventAudioException: "audioexception",
		core.EventAlarmIn1:       "IO1",
		core.EventAlarmIn2:       "IO2",
	},
	eventStates: [2]string{"inactive", "active"},
	osdPoints: [4][2]int{
		core.OSDTopLeft:     {16, 544},
		core.OSDTopRight:    {448, 544},
		core.OSDBottomLeft:  {16, 32},
		core.OSDBottomRight: {448, 32},
	},
	dateFormats: [3]string{
		core.DateDDMMYYYY: "DD-MM-YYYY",
		core.DateMMDDYYYY: "MM-DD-YYYY",
		core.DateYYYYMMDD: "YYYY-MM-DD",
	},
	timeFormats: [2]string{core.Time24Hour: "24hour", core.Time12Hour: "12hour"},
	dayNight: [3]string{
		core.DayNightAuto:  "auto",
		core.DayNightDay:   "day",
		core.DayNightNight: "night",
	},
	audioCodecs: [2]string{core.AudioG711U: "G.711ulaw", core.AudioG711A: "G.711alaw"},
	netMode:     "static",
	timeMode:    "manual",
}

var dialectB = &Schema{
	Name:             "oem-b",
	Namespace:        "http://www.ipcam-oem.com/ver10/XMLSchema",
	Version:          "1.0",
	ContentType:      "text/xml",
	StatusOK:         "0",
	StreamIDBase:     0,
	FramerateScale:   1,
	SensitivityScale: 1,
	ScreenWidth:      10000,
	ScreenHeight:     10000,
	TimeLayout:       "2006-01-02 15:04:05",

	words: [termCount]string{
		tStatusCode:    "ResponseCode",
		tStatusMessage: "ResponseString",

		tStreamRoot:  "VideoEncoder",
		tStreamID:    "ProfileID",
		tCodec:       "VideoParam/EncodeType",
		tWidth:       "VideoParam/PicWidth",
		tHeight:      "VideoParam/PicHeight",
		tRateControl: "VideoParam/RateControl",
		tBitrate:     "VideoParam/BitRate",
		tQuality:     "VideoParam/ImageQuality",
		tFramerate:   "VideoParam/FrameRate",
		tGOP:         "VideoParam/IFrameInterval",
		tAudio:       "AudioParam/Enable",

		tAlarmRoot:  "AlarmOutput",
		tAlarmState: "State",

		tEventItem:  "Event",
		tEventType:  "Type",
		tEventState: "Status",

		tModel:    "ModelName",
		tFirmware: "FirmwareVer",
		tSerial:   "SerialNo",
		tMAC:      "MAC",

		tNetRoot: "IPv4Config",
		tNetMode: "Mode",
		tAddress: "Address",
		tSubnet:  "Netmask",
		tGateway: "Gateway",

		tOSDRoot:         "OSDConfig",
		tOSDTextEnabled:  "TitleOSD/Enable",
		tOSDTextString:   "TitleOSD/Content",
		tOSDTextPos:      "TitleOSD/Position",
		tOSDClockEnabled: "TimeOSD/Enable",
		tOSDClockPos:     "TimeOSD/Position",
		tOSDDateFormat:   "TimeOSD/DateFormat",
		tOSDTimeFormat:   "TimeOSD/HourFormat",

		tMotionRoot:    "MotionConfig",
		tMotionEnabled: "Enable",
		tSensitivity:   "Sensitivity",
		tGridRows:      "GridRows",
		tGridCols:      "GridCols",
		tGridData:      "GridData",

		tPrivacyRoot:    "PrivacyConfig",
		tPrivacyEnabled: "Enable",

		tUserRoot:    "PasswordChange",
		tUserName:    "UserName",
		tOldPassword: "OldPassword",
		tNewPassword: "NewPassword",

		tAudioRoot:  "TalkConfig",
		tAudioCodec: "Codec",

		tTimeRoot:  "SystemTime",
		tTimeMode:  "SyncMode",
		tLocalTime: "DateTime",

		tImageRoot:  "ImageSettings",
		tBrightness: "Brightness",
		tContrast:   "Contrast",
		tSaturation: "Saturation",
		tHue:        "Hue",
		tSharpness:  "Sharpen",
		tWDR:        "WideDynamic",
		tDayNight:   "DayNightMode",
		tRangeMin:   "Min",
		tRangeMax:   "Max",
	},

	routes: [routeCount]string{
		rStream:       "/api/v1/video/encoder/%d",
		rMedia:        "/live/profile%d",
		rSnapshot:     "/api/v1/media/snapshot/%d",
		rAlarmOutput:  "/api/v1/alarm/output/%d",
		rEvents:       "/api/v1/event/status",
		rDeviceInfo:   "/api/v1/system/info",
		rNetwork:      "/api/v1/network/ipv4",
		rOSD:          "/api/v1/video/osd",
		rMotion:       "/api/v1/event/motion",
		rPrivacy:      "/api/v1/video/privacy",
		rPassword:     "/api/v1/user/password",
		rAudioChannel: "/api/v1/audio/talk",
		rAudioOpen:    "/api/v1/audio/talk/start",
		rAudioData:    "/api/v1/audio/talk/data",
		rAudioClose:   "/api/v1/audio/talk/stop",
		rTime:         "/api/v1/system/time",
		rImageCap:     "/api/v1/image/capability",
		rImage:        "/api/v1/image/settings",
	},

	codecs: map[core.VideoCodec]string{
		core.CodecMJPEG: "JPEG",
		core.CodecH264:  "H264",
		core.CodecH265:  "H265",
	},
	rateControls: [2]string{core.BitrateVariable: "Variable", core.BitrateConstant: "Constant"},
	bools:        [2]string{"0", "1"},
	levels:       [2]string{"Off", "On"},
	eventTypes: [core.EventCount]string{
		core.EventMotion:         "Motion",
		core.EventTamper:         "Tamper",
		core.EventLineCross:      "LineCross",
		core.EventIntrusion:      "Intrusion",
		core.EventLoitering:      "Loitering",
		core.EventObjectCount:    "ObjectCount",
		core.EventNoMotion:       "NoMotion",
		core.EventAudioException: "AudioException",
		core.EventAlarmIn1:       "AlarmIn1",
		core.EventAlarmIn2:       "AlarmIn2",
	},
	eventStates: [2]string{"0", "1"},
	osdCorners: [4]string{
		core.OSDTopLeft:     "TopLeft",
		core.OSDTopRight:    "TopRight",
		core.OSDBottomLeft:  "BottomLeft",
		core.OSDBottomRight: "BottomRight",
	},
	dateFormats: [3]string{
		core.DateDDMMYYYY: "DMY",
		core.DateMMDDYYYY: "MDY",
		core.DateYYYYMMDD: "YMD",
	},
	timeFormats: [2]string{core.Time24Hour: "24H", core.Time12Hour: "12H"},
	dayNight: [3]string{
		core.DayNightAuto:  "Auto",
		core.DayNightDay:   "Color",
		core.DayNightNight: "BW",
	},
	audioCodecs: [2]string{core.AudioG711U: "G711U", core.AudioG711A: "G711A"},
	netMode:     "Static",
	timeMode:    "Manual",
}

// Words returns every element name the dialect uses.
func (s *Schema) Words() []string {
	seen := map[string]bool{}
	var list []string
	for _, w := range s.words {
		for _, name := range splitPath(w) {
			if !seen[name] {
				seen[name] = true
				list = append(list, name)
			}
		}
	}
	return list
}
