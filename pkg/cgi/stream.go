package cgi

import (
	"strconv"

	"github.com/juju/errors"

	"github.com/use-go/camdrv/pkg/capability"
	"github.com/use-go/camdrv/pkg/core"
	"github.com/use-go/camdrv/pkg/wire"
)

// GetStream returns the media session request for a stream. With
// ConsiderConfig the encoder is configured first by a separate request.
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

	b := wire.NewBuffer(wire.MaxURL)
	_ = b.Append("/unicaststream/", strconv.Itoa(profile))
	u, err := b.String()
	if err != nil {
		return nil, errors.Trace(err)
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

	q := query("stream", "set").
		AddInt("profile", profile-1).
		Add("codec", codecTokens[cfg.Codec]).
		Add("resolution", cfg.Resolution).
		AddInt("fps", cfg.Framerate)

	if cfg.BitrateMode == core.BitrateConstant {
		kbps, _ := core.BitrateKbps(cfg.BitrateIndex)
		q.Add("bitratectrl", "cbr").AddInt("bitrate", kbps)
	} else {
		levels, _ := m.QualityLevels(cfg.Codec)
		q.Add("bitratectrl", "vbr").AddInt("fixedquality", core.FixedQuality(cfg.Quality, levels))
	}

	q.AddInt("gop", cfg.GOP).AddBool("audio", cfg.Audio)

	u, err := q.String()
	if err != nil {
		return wire.Request{}, errors.Trace(err)
	}
	return wire.Get(u), nil
}

// GetStreamConfig reads the encoder settings of a profile.
func (p *Protocol) GetStreamConfig(m capability.ModelInfo, stream core.StreamType, profile int) ([]wire.Request, error) {
	profile = core.StreamRequest{Stream: stream, Profile: profile}.ProfileOrDefault()
	if profile > m.Profiles {
		return nil, errors.NotSupportedf("profile %d on %s", profile, m.Name)
	}
	return single(query("stream", "get").AddInt("profile", profile-1))
}

// ParseStreamConfig reads the answer to GetStreamConfig.
func (p *Protocol) ParseStreamConfig(m capability.ModelInfo, stream core.StreamType, b []byte) (core.StreamConfig, error) {
	var cfg core.StreamConfig

	c, err := response(b)
	if err != nil {
		return cfg, err
	}

	v, err := required(c, "codec")
	if err != nil {
		return cfg, err
	}
	if cfg.Codec, err = parseCodec(v); err != nil {
		return cfg, err
	}
	if !m.Codecs(stream).Has(cfg.Codec) {
		return cfg, core.InvalidField("codec", v)
	}

	if cfg.Resolution, err = required(c, "resolution"); err != nil {
		return cfg, err
	}
	if _, ok := core.ParseResolution(cfg.Resolution); !ok {
		return cfg, core.InvalidField("resolution", cfg.Resolution)
	}

	if cfg.Framerate, err = requiredInt(c, "fps"); err != nil {
		return cfg, err
	}

	if v, err = required(c, "bitratectrl"); err != nil {
		return cfg, err
	}
	switch v {
	case "cbr":
		cfg.BitrateMode = core.BitrateConstant
		kbps, err := requiredInt(c, "bitrate")
		if err != nil {
			return cfg, err
		}
		cfg.BitrateIndex = core.NearestBitrateIndex(kbps)
	case "vbr":
		cfg.BitrateMode = core.BitrateVariable
		fixed, err := requiredInt(c, "fixedquality")
		if err != nil {
			return cfg, err
		}
		levels, err := m.QualityLevels(cfg.Codec)
		if err != nil {
			return cfg, err
		}
		cfg.Quality = core.QualityLevel(fixed, levels)
		if kbps, ok := c.Value("bitrate"); ok {
			if i, err := strconv.Atoi(kbps); err == nil {
				cfg.BitrateIndex = core.NearestBitrateIndex(i)
			}
		}
	default:
		return cfg, core.InvalidField("bitratectrl", v)
	}

	if cfg.GOP, err = requiredInt(c, "gop"); err != nil {
		return cfg, err
	}

	if v, ok := c.Value("audio"); ok {
		if cfg.Audio, err = parseSwitch("audio", v); err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}

// GetStillImage requests one JPEG frame.
func (p *Protocol) GetStillImage(m capability.ModelInfo) ([]wire.Request, error) {
	return single(query("image", "snapshot"))
}
