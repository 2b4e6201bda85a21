package camdrv

import (
	"github.com/use-go/camdrv/pkg/capability"
	"github.com/use-go/camdrv/pkg/core"
	"github.com/use-go/camdrv/pkg/wire"
)

// GetStream builds the requests that apply an optional encoder config and
// return the RTSP location of a stream
func (d *Driver) GetStream(camera Camera, req core.StreamRequest) ([]wire.Request, error) {
	return build(d, "stream", camera, func(p Protocol, m capability.ModelInfo) ([]wire.Request, error) {
		return p.GetStream(m, req)
	})
}

// GetStreamConfig reads the encoder settings of one profile
func (d *Driver) GetStreamConfig(camera Camera, stream core.StreamType, profile int) ([]wire.Request, error) {
	return build(d, "stream-config", camera, func(p Protocol, m capability.ModelInfo) ([]wire.Request, error) {
		return p.GetStreamConfig(m, stream, profile)
	})
}

func (d *Driver) ParseStreamConfig(camera Camera, stream core.StreamType, b []byte) (core.StreamConfig, error) {
	return parse(d, "stream-config", camera, func(p Protocol, m capability.ModelInfo) (core.StreamConfig, error) {
		return p.ParseStreamConfig(m, stream, b)
	})
}

// GetStillImage builds the snapshot request
func (d *Driver) GetStillImage(camera Camera) ([]wire.Request, error) {
	return build(d, "snapshot", camera, func(p Protocol, m capability.ModelInfo) ([]wire.Request, error) {
		return p.GetStillImage(m)
	})
}

// PTZMove starts or stops continuous movement on one axis
func (d *Driver) PTZMove(camera Camera, cmd core.PTZCommand) ([]wire.Request, error) {
	return build(d, "ptz", camera, func(p Protocol, m capability.ModelInfo) ([]wire.Request, error) {
		return p.PTZMove(m, cmd)
	})
}

// PTZPreset stores, recalls or removes a preset position
func (d *Driver) PTZPreset(camera Camera, cmd core.PresetCommand) ([]wire.Request, error) {
	return build(d, "preset", camera, func(p Protocol, m capability.ModelInfo) ([]wire.Request, error) {
		return p.PTZPreset(m, cmd)
	})
}

// OpenAudio prepares the two-way audio channel
func (d *Driver) OpenAudio(camera Camera, codec core.AudioCodec) ([]wire.Request, error) {
	return build(d, "audio-open", camera, func(p Protocol, m capability.ModelInfo) ([]wire.Request, error) {
		return p.OpenAudio(m, codec)
	})
}

// SendAudio wraps one chunk of encoded audio
func (d *Driver) SendAudio(camera Camera, send core.AudioSend) ([]wire.Request, error) {
	return build(d, "audio-send", camera, func(p Protocol, m capability.ModelInfo) ([]wire.Request, error) {
		return p.SendAudio(m, send)
	})
}

func (d *Driver) CloseAudio(camera Camera) ([]wire.Request, error) {
	return build(d, "audio-close", camera, func(p Protocol, m capability.ModelInfo) ([]wire.Request, error) {
		return p.CloseAudio(m)
	})
}
