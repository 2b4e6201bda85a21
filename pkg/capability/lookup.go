package capability

import (
	"strings"

	"github.com/juju/errors"

	"github.com/use-go/camdrv/pkg/core"
)

// Brands lists every known brand.
func Brands() []BrandInfo {
	list := make([]BrandInfo, 0, brandCount-1)
	for _, b := range brands[1:] {
		list = append(list, b)
	}
	return list
}

// BrandByName finds a brand by case-insensitive name.
func BrandByName(name string) (Brand, error) {
	for _, b := range brands[1:] {
		if strings.EqualFold(b.Name, name) {
			return b.ID, nil
		}
	}
	return BrandNone, errors.NotFoundf("brand %q", name)
}

func (b Brand) String() string {
	if b > BrandNone && b < brandCount {
		return brands[b].Name
	}
	return ""
}

// Models lists the models of a brand in table order. External brands have none.
func Models(brand Brand) ([]ModelInfo, error) {
	if !IsKnownBrand(brand) {
		return nil, errors.NotFoundf("brand %d", brand)
	}
	var list []ModelInfo
	for _, m := range models[1:] {
		if m.Brand == brand {
			list = append(list, m)
		}
	}
	return list, nil
}

// Lookup returns a copy of the database entry of model.
func Lookup(brand Brand, model Model) (ModelInfo, error) {
	if !IsKnownBrand(brand) {
		return ModelInfo{}, errors.NotFoundf("brand %d", brand)
	}
	if !IsKnownModel(model) || models[model].Brand != brand {
		return ModelInfo{}, errors.NotFoundf("model %d of brand %s", model, brand)
	}
	return models[model], nil
}

// Info returns the entry of a model without checking the brand.
func Info(model Model) (ModelInfo, error) {
	if !IsKnownModel(model) {
		return ModelInfo{}, errors.NotFoundf("model %d", model)
	}
	return models[model], nil
}

// ByName finds a model by the name the camera reports.
func ByName(name string) (Model, error) {
	name = strings.TrimSpace(name)
	for _, m := range models[1:] {
		if strings.EqualFold(m.Name, name) {
			return m.ID, nil
		}
	}
	return ModelNone, errors.NotFoundf("model %q", name)
}

func (m Model) String() string {
	if IsKnownModel(m) {
		return models[m].Name
	}
	return ""
}

func (m Model) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Model) UnmarshalText(b []byte) error {
	v, err := ByName(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Has reports whether model has every bit of b. Unknown models have nothing.
func Has(model Model, b Bits) bool {
	if !IsKnownModel(model) {
		return false
	}
	return models[model].Has(b)
}

// Profiles returns the profile limit of model.
func Profiles(model Model) (int, error) {
	info, err := Info(model)
	if err != nil {
		return 0, err
	}
	return info.Profiles, nil
}

// SupportedCodecs returns the codecs of one stream.
func SupportedCodecs(model Model, stream core.StreamType) (core.CodecMask, error) {
	info, err := Info(model)
	if err != nil {
		return 0, err
	}
	return info.Codecs(stream), nil
}

// SupportedResolutions returns the resolution list for a stream, profile and codec.
func SupportedResolutions(model Model, stream core.StreamType, profile int, codec core.VideoCodec) ([]core.Resolution, error) {
	info, err := Info(model)
	if err != nil {
		return nil, err
	}
	return info.Resolutions(stream, profile, codec)
}

// SupportedFramerates returns the framerate mask for a stream, profile and codec.
func SupportedFramerates(model Model, stream core.StreamType, profile int, codec core.VideoCodec) (FramerateMask, error) {
	info, err := Info(model)
	if err != nil {
		return 0, err
	}
	return info.Framerates(stream, profile, codec)
}

// QualityLevels returns the quality ceiling of codec.
func QualityLevels(model Model, codec core.VideoCodec) (int, error) {
	info, err := Info(model)
	if err != nil {
		return 0, err
	}
	return info.QualityLevels(codec)
}

// BitrateRange returns the lowest and highest bitrate table index.
func BitrateRange(model Model) (lo, hi int, err error) {
	info, err := Info(model)
	if err != nil {
		return 0, 0, err
	}
	lo, hi = info.BitrateRange()
	return lo, hi, nil
}

// Has reports whether the model has every bit of b.
func (m ModelInfo) Has(b Bits) bool {
	return m.group != nil && m.group.bits.Has(b)
}

// Bits returns the full capability set.
func (m ModelInfo) Bits() Bits {
	if m.group == nil {
		return 0
	}
	return m.group.bits
}

// Group returns the name of the shared parameter group.
func (m ModelInfo) Group() string {
	if m.group == nil {
		return ""
	}
	return m.group.name
}

// Require returns a NotSupported error unless the model has every bit of b.
func (m ModelInfo) Require(b Bits) error {
	if !m.Has(b) {
		return errors.NotSupportedf("%s on %s", (b &^ m.Bits()).String(), m.Name)
	}
	return nil
}

func (m ModelInfo) Codecs(stream core.StreamType) core.CodecMask {
	if m.group == nil {
		return 0
	}
	if stream == core.StreamSub {
		return m.group.subCodecs
	}
	return m.group.mainCodecs
}

// profileIndex validates profile and maps 0 to the stream default.
func (m ModelInfo) profileIndex(stream core.StreamType, profile int) (int, error) {
	if profile == 0 {
		profile = core.StreamRequest{Stream: stream}.ProfileOrDefault()
	}
	if profile < 1 || profile > m.Profiles {
		return 0, errors.NotSupportedf("profile %d on %s", profile, m.Name)
	}
	return profile - 1, nil
}

func (m ModelInfo) codecIndex(stream core.StreamType, codec core.VideoCodec) (int, error) {
	if !m.Codecs(stream).Has(codec) {
		return 0, errors.NotSupportedf("%s codec %q on %s", stream, codec, m.Name)
	}
	return codec.Index(), nil
}

// Resolutions returns a copy of the resolution list for the arguments.
func (m ModelInfo) Resolutions(stream core.StreamType, profile int, codec core.VideoCodec) ([]core.Resolution, error) {
	if m.group == nil {
		return nil, errors.NotSupportedf("resolutions on %s", m.Name)
	}
	p, err := m.profileIndex(stream, profile)
	if err != nil {
		return nil, err
	}
	c, err := m.codecIndex(stream, codec)
	if err != nil {
		return nil, err
	}

	t := m.group.resolutions
	if !t.ProfileDependent {
		p = 0
	}
	if !t.CodecDependent {
		c = 0
	}
	if p >= len(t.lists) || c >= len(t.lists[p]) || len(t.lists[p][c]) == 0 {
		return nil, errors.NotSupportedf("resolutions of profile %d %s on %s", p+1, codec, m.Name)
	}

	list := make([]core.Resolution, len(t.lists[p][c]))
	copy(list, t.lists[p][c])
	return list, nil
}

// Framerates returns the framerate mask for the arguments.
func (m ModelInfo) Framerates(stream core.StreamType, profile int, codec core.VideoCodec) (FramerateMask, error) {
	if m.group == nil {
		return 0, errors.NotSupportedf("framerates on %s", m.Name)
	}
	p, err := m.profileIndex(stream, profile)
	if err != nil {
		return 0, err
	}
	c, err := m.codecIndex(stream, codec)
	if err != nil {
		return 0, err
	}

	t := m.group.framerates
	if !t.ProfileDependent {
		p = 0
	}
	if !t.CodecDependent {
		c = 0
	}
	if p >= len(t.masks) || c >= len(t.masks[p]) || t.masks[p][c] == 0 {
		return 0, errors.NotSupportedf("framerates of profile %d %s on %s", p+1, codec, m.Name)
	}
	return t.masks[p][c], nil
}

func (m ModelInfo) QualityLevels(codec core.VideoCodec) (int, error) {
	i := codec.Index()
	if m.group == nil || i < 0 || i >= len(m.group.quality) || m.group.quality[i] == 0 {
		return 0, errors.NotSupportedf("quality of %q on %s", codec, m.Name)
	}
	return m.group.quality[i], nil
}

func (m ModelInfo) BitrateRange() (lo, hi int) {
	if m.group == nil {
		return 0, 0
	}
	return m.group.bitrateMin, m.group.bitrateMax
}

// ValidateStream checks a stream configuration against the tables.
func (m ModelInfo) ValidateStream(stream core.StreamType, profile int, cfg core.StreamConfig) error {
	list, err := m.Resolutions(stream, profile, cfg.Codec)
	if err != nil {
		return err
	}
	r, ok := core.ParseResolution(cfg.Resolution)
	if !ok {
		return errors.NotValidf("resolution %q", cfg.Resolution)
	}
	found := false
	for _, v := range list {
		if v == r {
			found = true
			break
		}
	}
	if !found {
		return errors.NotSupportedf("resolution %s for %s on %s", r, cfg.Codec, m.Name)
	}

	fps, err := m.Framerates(stream, profile, cfg.Codec)
	if err != nil {
		return err
	}
	if !fps.Has(cfg.Framerate) {
		return errors.NotValidf("framerate %d", cfg.Framerate)
	}

	if cfg.BitrateMode == core.BitrateConstant {
		lo, hi := m.BitrateRange()
		if cfg.BitrateIndex < lo || cfg.BitrateIndex > hi {
			return errors.NotValidf("bitrate index %d", cfg.BitrateIndex)
		}
	} else {
		levels, err := m.QualityLevels(cfg.Codec)
		if err != nil {
			return err
		}
		if cfg.Quality < 1 || cfg.Quality > levels {
			return errors.NotValidf("quality %d", cfg.Quality)
		}
	}

	if cfg.GOP < 1 || cfg.GOP > 255 {
		return errors.NotValidf("gop %d", cfg.GOP)
	}
	return nil
}

// BrandInfoOf returns the entry of a brand.
func BrandInfoOf(brand Brand) (BrandInfo, error) {
	if !IsKnownBrand(brand) {
		return BrandInfo{}, errors.NotFoundf("brand %d", brand)
	}
	return brands[brand], nil
}
