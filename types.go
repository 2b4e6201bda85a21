// Package camdrv translates a vendor-neutral camera control model into the
// wire requests of the MATRIX camera family and parses the answers back
package camdrv

import (
	"github.com/use-go/camdrv/pkg/capability"
	"github.com/use-go/camdrv/pkg/core"
	"github.com/use-go/camdrv/pkg/wire"
)

// Camera identifies the device a call is built for
type Camera struct {
	Brand capability.Brand `json:"brand"`
	Model capability.Model `json:"model"`

	// Address is only used in log output
	Address string `json:"address,omitempty"`
}

// Protocol is implemented once per wire family: the native CGI protocol and
// the XML protocol of each OEM dialect
type Protocol interface {
	GetStream(m capability.ModelInfo, req core.StreamRequest) ([]wire.Request, error)
	GetStreamConfig(m capability.ModelInfo, stream core.StreamType, profile int) ([]wire.Request, error)
	ParseStreamConfig(m capability.ModelInfo, stream core.StreamType, b []byte) (core.StreamConfig, error)
	GetStillImage(m capability.ModelInfo) ([]wire.Request, error)

	PTZMove(m capability.ModelInfo, cmd core.PTZCommand) ([]wire.Request, error)
	PTZPreset(m capability.ModelInfo, cmd core.PresetCommand) ([]wire.Request, error)

	SetAlarmOutput(m capability.ModelInfo, out core.AlarmOutput) ([]wire.Request, error)
	PollEvents(m capability.ModelInfo) ([]wire.Request, error)
	ParseEvents(m capability.ModelInfo, b []byte) (core.EventResult, error)

	GetDeviceInfo(m capability.ModelInfo) ([]wire.Request, error)
	ParseDeviceInfo(b []byte) (core.DeviceInfo, error)
	SetNetwork(m capability.ModelInfo, cfg core.NetworkConfig) ([]wire.Request, error)
	SyncDateTime(m capability.ModelInfo) ([]wire.Request, error)
	SetOSD(m capability.ModelInfo, cfg core.OSDConfig) ([]wire.Request, error)
	ChangePassword(m capability.ModelInfo, pc core.PasswordChange) ([]wire.Request, error)

	OpenAudio(m capability.ModelInfo, codec core.AudioCodec) ([]wire.Request, error)
	SendAudio(m capability.ModelInfo, send core.AudioSend) ([]wire.Request, error)
	CloseAudio(m capability.ModelInfo) ([]wire.Request, error)

	GetMotionWindow(m capability.ModelInfo) ([]wire.Request, error)
	ParseMotionWindow(m capability.ModelInfo, b []byte) (core.MotionBlockParam, error)
	SetMotionWindow(m capability.ModelInfo, param core.MotionBlockParam) ([]wire.Request, error)

	GetPrivacyMask(m capability.ModelInfo) ([]wire.Request, error)
	ParsePrivacyMask(m capability.ModelInfo, b []byte) (core.PrivacyMaskConfig, error)
	SetPrivacyMask(m capability.ModelInfo, cfg core.PrivacyMaskConfig) ([]wire.Request, error)
	GetPrivacyMaxWindows(m capability.ModelInfo) ([]wire.Request, error)
	ParsePrivacyMaxWindows(m capability.ModelInfo, b []byte) (int, error)

	GetImageCapability(m capability.ModelInfo) ([]wire.Request, error)
	ParseImageCapability(b []byte) (core.ImageCapability, error)
	GetImageSetting(m capability.ModelInfo) ([]wire.Request, error)
	ParseImageSetting(capa core.ImageCapability, b []byte) (core.ImageSettings, error)
	SetImageSetting(m capability.ModelInfo, capa core.ImageCapability, s core.ImageSettings) ([]wire.Request, error)

	ParseAck(b []byte) error
}

// Observer is told the outcome of every build and parse
type Observer func(op string, dialect capability.Dialect, result core.Result)
