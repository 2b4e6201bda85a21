package xmlapi

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/juju/errors"

	"github.com/use-go/camdrv/pkg/capability"
	"github.com/use-go/camdrv/pkg/core"
	"github.com/use-go/camdrv/pkg/wire"
)

var imageTerms = [core.ImageFieldCount]term{
	core.ImageBrightness: tBrightness,
	core.ImageContrast:   tContrast,
	core.ImageSaturation: tSaturation,
	core.ImageHue:        tHue,
	core.ImageSharpness:  tSharpness,
	core.ImageWDR:        tWDR,
}

// GetImageCapability reads the tunable image ranges.
func (p *Protocol) GetImageCapability(m capability.ModelInfo) ([]wire.Request, error) {
	if err := m.Require(capability.BitImageSetting); err != nil {
		return nil, err
	}
	return p.get(rImageCap)
}

// rangeOf reads min and max from attributes or, failing that, from child
// elements.
func (s *Schema) rangeOf(el *etree.Element) (core.Range, error) {
	var v [2]int
	for i, t := range [2]term{tRangeMin, tRangeMax} {
		name := s.words[t]
		text := el.SelectAttrValue(name, "")
		if text == "" {
			child := el.SelectElement(name)
			if child == nil {
				return core.Range{}, core.MissingField(el.Tag + "/" + name)
			}
			text = strings.TrimSpace(child.Text())
		}
		n, err := strconv.Atoi(text)
		if err != nil {
			return core.Range{}, core.InvalidField(el.Tag+"/"+name, text)
		}
		v[i] = n
	}
	if v[0] > v[1] {
		return core.Range{}, core.InvalidField(el.Tag, strconv.Itoa(v[0])+"-"+strconv.Itoa(v[1]))
	}
	return core.Range{Supported: true, Min: v[0], Max: v[1]}, nil
}

// ParseImageCapability reads the ranges the camera lists. Absent fields are
// unsupported; at least one field must be present.
func (p *Protocol) ParseImageCapability(b []byte) (core.ImageCapability, error) {
	var capa core.ImageCapability

	root, err := p.parseTree(b)
	if err != nil {
		return capa, err
	}

	found := false
	for f, t := range imageTerms {
		el := p.s.find(root, t)
		if el == nil {
			continue
		}
		if capa.Fields[f], err = p.s.rangeOf(el); err != nil {
			return core.ImageCapability{}, err
		}
		found = true
	}
	if !found {
		return core.ImageCapability{}, core.MissingField(p.s.words[tBrightness])
	}

	capa.DayNight = p.s.find(root, tDayNight) != nil
	return capa, nil
}

// GetImageSetting reads the current image parameters.
func (p *Protocol) GetImageSetting(m capability.ModelInfo) ([]wire.Request, error) {
	if err := m.Require(capability.BitImageSetting); err != nil {
		return nil, err
	}
	return p.get(rImage)
}

// ParseImageSetting reads the fields listed by capa.
func (p *Protocol) ParseImageSetting(capa core.ImageCapability, b []byte) (core.ImageSettings, error) {
	var s core.ImageSettings

	r, err := p.read(b)
	if err != nil {
		return s, err
	}

	for f, t := range imageTerms {
		if !capa.Fields[f].Supported {
			continue
		}
		if s.Values[f], err = r.requiredInt(t); err != nil {
			return core.ImageSettings{}, err
		}
	}

	if capa.DayNight {
		v, err := r.required(tDayNight)
		if err != nil {
			return core.ImageSettings{}, err
		}
		i, ok := index(p.s.dayNight[:], v)
		if !ok {
			return core.ImageSettings{}, core.InvalidField(r.word(tDayNight), v)
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

	d := p.s.newDocument(tImageRoot)
	n := 0
	for f, t := range imageTerms {
		r := capa.Fields[f]
		if !r.Supported {
			continue
		}
		if !r.Contains(s.Values[f]) {
			return nil, errors.NotValidf("%s %d outside %d..%d", core.ImageField(f), s.Values[f], r.Min, r.Max)
		}
		d.setInt(d.root, t, s.Values[f])
		n++
	}
	if capa.DayNight {
		mode, err := lookup(p.s.dayNight[:], int(s.DayNight), "day/night mode")
		if err != nil {
			return nil, err
		}
		d.set(d.root, tDayNight, mode)
		n++
	}
	if n == 0 {
		return nil, errors.NotSupportedf("image settings on %s", m.Name)
	}
	return p.put(rImage, d)
}
