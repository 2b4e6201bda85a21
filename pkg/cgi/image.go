package cgi

import (
	"strconv"
	"strings"

	"github.com/juju/errors"

	"github.com/use-go/camdrv/pkg/capability"
	"github.com/use-go/camdrv/pkg/core"
	"github.com/use-go/camdrv/pkg/wire"
)

// GetImageCapability reads the tunable image ranges.
func (p *Protocol) GetImageCapability(m capability.ModelInfo) ([]wire.Request, error) {
	if err := m.Require(capability.BitImageSetting); err != nil {
		return nil, err
	}
	return single(query("image", "getcapability"))
}

// cutRange splits "min-max" where min may carry a leading sign.
func cutRange(v string) (lo, hi string, ok bool) {
	if v == "" {
		return "", "", false
	}
	i := strings.IndexByte(v[1:], '-')
	if i < 0 {
		return "", "", false
	}
	return v[:i+1], v[i+2:], true
}

// ParseImageCapability reads lines like brightness=0-100. Absent fields are
// unsupported; at least one field must be present.
func (p *Protocol) ParseImageCapability(b []byte) (core.ImageCapability, error) {
	var capa core.ImageCapability

	c, err := response(b)
	if err != nil {
		return capa, err
	}

	found := false
	for f := core.ImageField(0); f < core.ImageFieldCount; f++ {
		v, ok := c.Value(imageKeys[f])
		if !ok {
			continue
		}
		lo, hi, ok := cutRange(v)
		if !ok {
			return core.ImageCapability{}, core.InvalidField(imageKeys[f], v)
		}
		from, err1 := strconv.Atoi(lo)
		to, err2 := strconv.Atoi(hi)
		if err1 != nil || err2 != nil || from > to {
			return core.ImageCapability{}, core.InvalidField(imageKeys[f], v)
		}
		capa.Fields[f] = core.Range{Supported: true, Min: from, Max: to}
		found = true
	}
	if !found {
		return core.ImageCapability{}, core.MissingField(imageKeys[core.ImageBrightness])
	}

	if v, ok := c.Value("daynight"); ok {
		for _, mode := range strings.Split(v, ",") {
			if _, ok := index(dayNightModes[:], mode); !ok {
				return core.ImageCapability{}, core.InvalidField("daynight", v)
			}
		}
		capa.DayNight = true
	}
	return capa, nil
}

// GetImageSetting reads the current image parameters.
func (p *Protocol) GetImageSetting(m capability.ModelInfo) ([]wire.Request, error) {
	if err := m.Require(capability.BitImageSetting); err != nil {
		return nil, err
	}
	return single(query("image", "get"))
}

// ParseImageSetting reads the fields listed by capa.
func (p *Protocol) ParseImageSetting(capa core.ImageCapability, b []byte) (core.ImageSettings, error) {
	var s core.ImageSettings

	c, err := response(b)
	if err != nil {
		return s, err
	}

	for f := core.ImageField(0); f < core.ImageFieldCount; f++ {
		if !capa.Fields[f].Supported {
			continue
		}
		if s.Values[f], err = requiredInt(c, imageKeys[f]); err != nil {
			return core.ImageSettings{}, err
		}
	}

	if capa.DayNight {
		v, err := required(c, "daynight")
		if err != nil {
			return core.ImageSettings{}, err
		}
		i, ok := index(dayNightModes[:], v)
		if !ok {
			return core.ImageSettings{}, core.InvalidField("daynight", v)
		}
		s.DayNight = core.DayNightMode(i)
	}
	return s, nil
}

// SetImageSetting writes every field capa supports. Values outside the
// camera range are rejected.
func (p *Protocol) SetImageSetting(m capability.ModelInfo, capa core.ImageCapability, s core.ImageSettings) ([]wire.Request, error) {
	if err := m.Require(capability.BitImageSetting); err != nil {
		return nil, err
	}

	q := query("image", "set")
	n := 0
	for f := core.ImageField(0); f < core.ImageFieldCount; f++ {
		r := capa.Fields[f]
		if !r.Supported {
			continue
		}
		if !r.Contains(s.Values[f]) {
			return nil, errors.NotValidf("%s %d outside %d..%d", f, s.Values[f], r.Min, r.Max)
		}
		q.AddInt(imageKeys[f], s.Values[f])
		n++
	}
	if capa.DayNight {
		mode, err := lookup(dayNightModes[:], int(s.DayNight), "day/night mode")
		if err != nil {
			return nil, err
		}
		q.Add("daynight", mode)
		n++
	}
	if n == 0 {
		return nil, errors.NotSupportedf("image settings on %s", m.Name)
	}
	return single(q)
}
