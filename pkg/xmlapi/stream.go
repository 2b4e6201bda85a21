package xmlapi

import (
	"strconv"

	"github.com/juju/errors"

	"github.com/use-go/camdrv/pkg/capability"
	"github.com/use-go/camdrv/pkg/core"
	"github.com/use-go/camdrv/pkg/wire"
)

func (p *Protocol) streamID(profile int) int {
	return p.s.StreamIDBase + profile
}

// GetStream returns the media session request for a stream. With
// ConsiderConfig the encoder document is written first.
func (p *Protocol) GetStream(m capability.ModelInfo, req core.StreamRequest) ([]wire.Request, error) {
	profile := req.ProfileOrDefault()
	if profile > m.Profiles {
		return nil, errors.NotSupportedf("profile %d on %s", profile, m.Name)
	}

	var list []wire.Request

	if req.ConsiderConfig {
		r, err := p.setStream(m, req.Stream, profile, req.Config)
		if err != nil {
			return nil, err
		}
		list = append(list, r)
	}

	u, err := p.url(rMedia, p.streamID(profile))
	if err != nil {
		return nil, err
	}
	return append(list, wire.RTSP(u)), nil
}

func (p *Protocol) setStream(m capability.ModelInfo, stream core.StreamType, profile int, cfg core.StreamConfig) (wire.Request, error) {
	if err := m.ValidateStream(stream, profile, cfg); err != nil {
		return wire.Request{}, errors.Trace(err)
	}
	if cfg.Audio {
		if err := m.Require(capability.BitAudioIn); err != nil {
			return wire.Request{}, err
		}
	}
	codec, ok := p.s.codecs[cfg.Codec]
	if !ok {
		return wire.Request{}, errors.NotSupportedf("codec %s in dialect %s", cfg.Codec, p.s.Name)
	}
	res, _ := core.ParseResolution(cfg.Resolution)
	width, height := res.Size()

	d := p.s.newDocument(tStreamRoot)
	d.setInt(d.root, tStreamID, p.streamID(profile))
	d.set(d.root, tCodec, codec)
	d.setInt(d.root, tWidth, width)
	d.setInt(d.root, tHeight, height)
	d.set(d.root, tRateControl, p.s.rateControls[cfg.BitrateMode])
	if cfg.BitrateMode == core.BitrateConstant {
		kbps, _ := core.BitrateKbps(cfg.BitrateIndex)
		d.setInt(d.root, tBitrate, kbps)
	} else {
		levels, _ := m.QualityLevels(cfg.Codec)
		d.setInt(d.root, tQuality, core.FixedQuality(cfg.Quality, levels))
	}
	d.setInt(d.root, tFramerate, cfg.Framerate*p.s.FramerateScale)
	d.setInt(d.root, tGOP, cfg.GOP)
	d.setBool(d.root, tAudio, cfg.Audio)

	return p.putRequest(rStream, d, p.streamID(profile))
}

// GetStreamConfig reads the encoder document of a profile.
func (p *Protocol) GetStreamConfig(m capability.ModelInfo, stream core.StreamType, profile int) ([]wire.Request, error) {
	profile = core.StreamRequest{Stream: stream, Profile: profile}.ProfileOrDefault()
	if profile > m.Profiles {
		return nil, errors.NotSupportedf("profile %d on %s", profile, m.Name)
	}
	return p.get(rStream, p.streamID(profile))
}

// ParseStreamConfig reads the answer to GetStreamConfig. Frame rates are
// converted back from the dialect scale.
func (p *Protocol) ParseStreamConfig(m capability.ModelInfo, stream core.StreamType, b []byte) (core.StreamConfig, error) {
	var cfg core.StreamConfig

	r, err := p.read(b)
	if err != nil {
		return cfg, err
	}

	v, err := r.required(tCodec)
	if err != nil {
		return cfg, err
	}
	for c, token := range p.s.codecs {
		if token == v {
			cfg.Codec = c
		}
	}
	if !m.Codecs(stream).Has(cfg.Codec) {
		return cfg, core.InvalidField(r.word(tCodec), v)
	}

	width, err := r.requiredInt(tWidth)
	if err != nil {
		return cfg, err
	}
	height, err := r.requiredInt(tHeight)
	if err != nil {
		return cfg, err
	}
	res, ok := core.ResolutionOfSize(width, height)
	if !ok {
		return cfg, core.InvalidField(r.word(tWidth), strconv.Itoa(width)+"x"+strconv.Itoa(height))
	}
	cfg.Resolution = res.String()

	fps, err := r.requiredInt(tFramerate)
	if err != nil {
		return cfg, err
	}
	scale := max(p.s.FramerateScale, 1)
	cfg.Framerate = (fps + scale/2) / scale

	if v, err = r.required(tRateControl); err != nil {
		return cfg, err
	}
	mode, ok := index(p.s.rateControls[:], v)
	if !ok {
		return cfg, core.InvalidField(r.word(tRateControl), v)
	}
	cfg.BitrateMode = core.BitrateMode(mode)

	if cfg.BitrateMode == core.BitrateConstant {
		kbps, err := r.requiredInt(tBitrate)
		if err != nil {
			return cfg, err
		}
		cfg.BitrateIndex = core.NearestBitrateIndex(kbps)
	} else {
		fixed, err := r.requiredInt(tQuality)
		if err != nil {
			return cfg, err
		}
		levels, err := m.QualityLevels(cfg.Codec)
		if err != nil {
			return cfg, err
		}
		cfg.Quality = core.QualityLevel(fixed, levels)
	}

	if cfg.GOP, err = r.requiredInt(tGOP); err != nil {
		return cfg, err
	}

	if v, ok := r.text(tAudio); ok {
		if cfg.Audio, err = p.s.parseBool(r.word(tAudio), v); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// GetStillImage requests one JPEG frame of the main stream.
func (p *Protocol) GetStillImage(m capability.ModelInfo) ([]wire.Request, error) {
	return p.get(rSnapshot, p.streamID(1))
}
