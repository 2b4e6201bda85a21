package xmlapi

import (
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/juju/errors"

	"github.com/use-go/camdrv/pkg/capability"
	"github.com/use-go/camdrv/pkg/core"
	"github.com/use-go/camdrv/pkg/grid"
	"github.com/use-go/camdrv/pkg/wire"
)

// GetMotionWindow reads the motion detection document.
func (p *Protocol) GetMotionWindow(m capability.ModelInfo) ([]wire.Request, error) {
	if err := m.Require(capability.BitMotionWindow); err != nil {
		return nil, err
	}
	return p.get(rMotion)
}

// readGrid reads a hex grid and checks it against the native size.
func (r reader) readGrid(native grid.Size) (*grid.Grid, error) {
	rows, err := r.requiredInt(tGridRows)
	if err != nil {
		return nil, err
	}
	cols, err := r.requiredInt(tGridCols)
	if err != nil {
		return nil, err
	}
	if (grid.Size{Rows: rows, Cols: cols}) != native {
		return nil, core.InvalidField(r.word(tGridCols), strconv.Itoa(cols))
	}
	hex, err := r.required(tGridData)
	if err != nil {
		return nil, err
	}
	g, err := grid.DecodeHex(hex, rows, cols)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return grid.Resample(g, grid.CanonicalRows, grid.CanonicalCols), nil
}

func (d *document) writeGrid(g *grid.Grid, native grid.Size) {
	g = grid.Resample(g, native.Rows, native.Cols)
	d.setInt(d.root, tGridRows, native.Rows)
	d.setInt(d.root, tGridCols, native.Cols)
	d.set(d.root, tGridData, grid.EncodeHex(g))
}

// ParseMotionWindow converts the native grid of the response to the
// canonical grid. Sensitivity is mapped back from the dialect scale.
func (p *Protocol) ParseMotionWindow(m capability.ModelInfo, b []byte) (core.MotionBlockParam, error) {
	var param core.MotionBlockParam

	r, err := p.read(b)
	if err != nil {
		return param, err
	}

	if param.Enabled, err = r.requiredBool(tMotionEnabled); err != nil {
		return param, err
	}

	v, err := r.requiredInt(tSensitivity)
	if err != nil {
		return param, err
	}
	scale := max(p.s.SensitivityScale, 1)
	if v < 0 || v > core.SensitivityMax*scale {
		return param, core.InvalidField(r.word(tSensitivity), strconv.Itoa(v))
	}
	param.Sensitivity = min(max((v+scale/2)/scale, 1), core.SensitivityMax)

	if param.Grid, err = r.readGrid(m.MotionGrid); err != nil {
		return core.MotionBlockParam{}, err
	}
	return param, nil
}

// SetMotionWindow writes a canonical grid resampled to the native grid.
func (p *Protocol) SetMotionWindow(m capability.ModelInfo, param core.MotionBlockParam) ([]wire.Request, error) {
	if err := m.Require(capability.BitMotionWindow); err != nil {
		return nil, err
	}
	if m.Motion != capability.MethodBlock {
		return nil, errors.NotSupportedf("%s motion windows on %s", m.Motion, m.Name)
	}
	if err := param.Validate(); err != nil {
		return nil, err
	}

	d := p.s.newDocument(tMotionRoot)
	d.setBool(d.root, tMotionEnabled, param.Enabled)
	d.setInt(d.root, tSensitivity, param.Sensitivity*p.s.SensitivityScale)
	d.writeGrid(param.Grid, m.MotionGrid)
	return p.put(rMotion, d)
}

// pointPrivacy reports whether the dialect addresses privacy regions by
// corner coordinates.
func (s *Schema) pointPrivacy() bool {
	return s.words[tRegion] != ""
}

func (p *Protocol) requirePrivacy(m capability.ModelInfo) error {
	if err := m.Require(capability.BitPrivacyMask); err != nil {
		return err
	}
	switch {
	case m.Privacy == capability.MethodPoint && p.s.pointPrivacy():
	case m.Privacy == capability.MethodBlock && !p.s.pointPrivacy():
	default:
		return errors.NotSupportedf("%s privacy masks on %s", m.Privacy, m.Name)
	}
	return nil
}

// GetPrivacyMask reads the privacy document.
func (p *Protocol) GetPrivacyMask(m capability.ModelInfo) ([]wire.Request, error) {
	if err := p.requirePrivacy(m); err != nil {
		return nil, err
	}
	return p.get(rPrivacy)
}

// ParsePrivacyMask returns regions for point dialects and a canonical grid
// for block dialects.
func (p *Protocol) ParsePrivacyMask(m capability.ModelInfo, b []byte) (core.PrivacyMaskConfig, error) {
	if !p.s.pointPrivacy() {
		r, err := p.read(b)
		if err != nil {
			return core.PrivacyMaskConfig{}, err
		}
		g, err := r.readGrid(m.PrivacyGrid)
		if err != nil {
			return core.PrivacyMaskConfig{}, err
		}
		return core.PrivacyMaskConfig{Grid: g}, nil
	}

	root, err := p.parseTree(b)
	if err != nil {
		return core.PrivacyMaskConfig{}, err
	}

	var cfg core.PrivacyMaskConfig
	for _, el := range p.s.findAll(root, tRegion) {
		w, err := p.parseRegion(el, m.MaxPrivacyWindows)
		if err != nil {
			return core.PrivacyMaskConfig{}, err
		}
		cfg.Windows = append(cfg.Windows, w)
	}

	sort.Slice(cfg.Windows, func(i, j int) bool { return cfg.Windows[i].ID < cfg.Windows[j].ID })
	for i := 1; i < len(cfg.Windows); i++ {
		if cfg.Windows[i].ID == cfg.Windows[i-1].ID {
			return core.PrivacyMaskConfig{}, core.InvalidField(p.s.words[tRegionID], strconv.Itoa(cfg.Windows[i].ID))
		}
	}
	return cfg, nil
}

func (p *Protocol) parseRegion(el *etree.Element, maxID int) (core.PrivacyWindow, error) {
	var w core.PrivacyWindow

	id, err := p.s.intAt(el, tRegionID)
	if err != nil {
		return w, err
	}
	if id < 1 || id > maxID {
		return w, core.InvalidField(p.s.words[tRegionID], strconv.Itoa(id))
	}
	w.ID = id

	if e := p.s.find(el, tRegionEnabled); e != nil {
		if w.Enabled, err = p.s.parseBool(p.s.words[tRegionEnabled], strings.TrimSpace(e.Text())); err != nil {
			return w, err
		}
	}

	corners := p.s.findAll(el, tCoordinate)
	if len(corners) == 0 {
		return w, core.MissingField(p.s.words[tCoordinate])
	}
	x0, y0 := p.s.ScreenWidth, p.s.ScreenHeight
	x1, y1 := 0, 0
	for _, c := range corners {
		x, err := p.s.intAt(c, tX)
		if err != nil {
			return w, err
		}
		y, err := p.s.intAt(c, tY)
		if err != nil {
			return w, err
		}
		if x < 0 || x > p.s.ScreenWidth || y < 0 || y > p.s.ScreenHeight {
			return w, core.InvalidField(p.s.words[tCoordinate], strconv.Itoa(x)+","+strconv.Itoa(y))
		}
		if p.s.BottomUp {
			y = p.s.ScreenHeight - y
		}
		x0, x1 = min(x0, x), max(x1, x)
		y0, y1 = min(y0, y), max(y1, y)
	}

	w.Rect.X = core.ScaleFrom(x0, p.s.ScreenWidth)
	w.Rect.Y = core.ScaleFrom(y0, p.s.ScreenHeight)
	w.Rect.Width = core.ScaleFrom(x1, p.s.ScreenWidth) - w.Rect.X
	w.Rect.Height = core.ScaleFrom(y1, p.s.ScreenHeight) - w.Rect.Y
	return w, nil
}

// SetPrivacyMask writes every region in one document, or the block grid.
func (p *Protocol) SetPrivacyMask(m capability.ModelInfo, cfg core.PrivacyMaskConfig) ([]wire.Request, error) {
	if err := p.requirePrivacy(m); err != nil {
		return nil, err
	}

	d := p.s.newDocument(tPrivacyRoot)

	if !p.s.pointPrivacy() {
		if cfg.Grid == nil || cfg.Grid.Size() != grid.Canonical {
			return nil, errors.NotValidf("privacy grid")
		}
		d.setBool(d.root, tPrivacyEnabled, cfg.Grid.Count() > 0)
		d.writeGrid(cfg.Grid, m.PrivacyGrid)
		return p.put(rPrivacy, d)
	}

	if len(cfg.Windows) == 0 {
		return nil, errors.NotValidf("empty privacy mask")
	}

	enabled := false
	for _, w := range cfg.Windows {
		enabled = enabled || w.Enabled
	}
	d.setBool(d.root, tPrivacyEnabled, enabled)

	for _, w := range cfg.Windows {
		if w.ID < 1 || w.ID > m.MaxPrivacyWindows {
			return nil, errors.NotValidf("privacy window %d", w.ID)
		}
		if w.Enabled && !w.Rect.Valid() {
			return nil, errors.NotValidf("privacy window %d rectangle", w.ID)
		}
		p.writeRegion(d, w)
	}
	return p.put(rPrivacy, d)
}

// writeRegion emits the four corners counter-clockwise from bottom-left.
func (p *Protocol) writeRegion(d *document, w core.PrivacyWindow) {
	el := d.add(d.root, tRegion)
	d.setInt(el, tRegionID, w.ID)
	d.setBool(el, tRegionEnabled, w.Enabled)

	x0 := core.ScaleTo(w.Rect.X, p.s.ScreenWidth)
	x1 := core.ScaleTo(w.Rect.X+w.Rect.Width, p.s.ScreenWidth)
	top := core.ScaleTo(w.Rect.Y, p.s.ScreenHeight)
	bottom := core.ScaleTo(w.Rect.Y+w.Rect.Height, p.s.ScreenHeight)
	if p.s.BottomUp {
		top, bottom = p.s.ScreenHeight-top, p.s.ScreenHeight-bottom
	}

	for _, pt := range [4][2]int{{x0, bottom}, {x1, bottom}, {x1, top}, {x0, top}} {
		c := d.add(el, tCoordinate)
		d.setInt(c, tX, pt[0])
		d.setInt(c, tY, pt[1])
	}
}

// GetPrivacyMaxWindows asks the camera how many regions it accepts.
func (p *Protocol) GetPrivacyMaxWindows(m capability.ModelInfo) ([]wire.Request, error) {
	if err := p.requirePrivacy(m); err != nil {
		return nil, err
	}
	return p.get(rPrivacyCap)
}

func (p *Protocol) ParsePrivacyMaxWindows(m capability.ModelInfo, b []byte) (int, error) {
	r, err := p.read(b)
	if err != nil {
		return 0, err
	}
	n, err := r.requiredInt(tMaxRegions)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, core.InvalidField(r.word(tMaxRegions), strconv.Itoa(n))
	}
	return n, nil
}
