package cgi

import (
	"sort"
	"strconv"
	"strings"

	"github.com/juju/errors"

	"github.com/use-go/camdrv/pkg/capability"
	"github.com/use-go/camdrv/pkg/core"
	"github.com/use-go/camdrv/pkg/grid"
	"github.com/use-go/camdrv/pkg/wire"
)

// privacyScale is the coordinate range of CGI privacy windows.
const privacyScale = 1000

// GetMotionWindow reads the motion detection area.
func (p *Protocol) GetMotionWindow(m capability.ModelInfo) ([]wire.Request, error) {
	if err := m.Require(capability.BitMotionWindow); err != nil {
		return nil, err
	}
	return single(query("motion", "get"))
}

// ParseMotionWindow converts the native grid of the response to the canonical grid.
func (p *Protocol) ParseMotionWindow(m capability.ModelInfo, b []byte) (core.MotionBlockParam, error) {
	var param core.MotionBlockParam

	c, err := response(b)
	if err != nil {
		return param, err
	}

	v, err := required(c, "enabled")
	if err != nil {
		return param, err
	}
	if param.Enabled, err = parseSwitch("enabled", v); err != nil {
		return param, err
	}

	if param.Sensitivity, err = requiredInt(c, "sensitivity"); err != nil {
		return param, err
	}
	if param.Sensitivity < 1 || param.Sensitivity > core.SensitivityMax {
		return param, core.InvalidField("sensitivity", strconv.Itoa(param.Sensitivity))
	}

	cols, err := requiredInt(c, "gridcols")
	if err != nil {
		return param, err
	}
	rows, err := requiredInt(c, "gridrows")
	if err != nil {
		return param, err
	}
	if (grid.Size{Rows: rows, Cols: cols}) != m.MotionGrid {
		return param, core.InvalidField("gridcols", strconv.Itoa(cols))
	}

	hex, err := required(c, "grid")
	if err != nil {
		return param, err
	}
	native, err := grid.DecodeHex(hex, rows, cols)
	if err != nil {
		return param, errors.Trace(err)
	}

	param.Grid = grid.Resample(native, grid.CanonicalRows, grid.CanonicalCols)
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

	native := grid.Resample(param.Grid, m.MotionGrid.Rows, m.MotionGrid.Cols)

	return single(query("motion", "set").
		AddBool("enabled", param.Enabled).
		AddInt("sensitivity", param.Sensitivity).
		AddInt("gridcols", m.MotionGrid.Cols).
		AddInt("gridrows", m.MotionGrid.Rows).
		Add("grid", grid.EncodeHex(native)))
}

func (p *Protocol) requirePointPrivacy(m capability.ModelInfo) error {
	if err := m.Require(capability.BitPrivacyMask); err != nil {
		return err
	}
	if m.Privacy != capability.MethodPoint {
		return errors.NotSupportedf("%s privacy masks on %s", m.Privacy, m.Name)
	}
	return nil
}

// GetPrivacyMask reads every privacy window.
func (p *Protocol) GetPrivacyMask(m capability.ModelInfo) ([]wire.Request, error) {
	if err := p.requirePointPrivacy(m); err != nil {
		return nil, err
	}
	return single(query("privacymask", "get"))
}

// ParsePrivacyMask reads lines of the form maskN=state,x,y,width,height.
func (p *Protocol) ParsePrivacyMask(m capability.ModelInfo, b []byte) (core.PrivacyMaskConfig, error) {
	var cfg core.PrivacyMaskConfig

	c, err := response(b)
	if err != nil {
		return cfg, err
	}

	c.Each(func(key, value string) bool {
		id, ok := strings.CutPrefix(key, "mask")
		if !ok {
			return true
		}
		var w core.PrivacyWindow
		if w, err = parseWindow(id, value, m.MaxPrivacyWindows); err != nil {
			return false
		}
		cfg.Windows = append(cfg.Windows, w)
		return true
	})
	if err != nil {
		return core.PrivacyMaskConfig{}, err
	}

	sort.Slice(cfg.Windows, func(i, j int) bool { return cfg.Windows[i].ID < cfg.Windows[j].ID })
	for i := 1; i < len(cfg.Windows); i++ {
		if cfg.Windows[i].ID == cfg.Windows[i-1].ID {
			return core.PrivacyMaskConfig{}, core.InvalidField("mask"+strconv.Itoa(cfg.Windows[i].ID), "duplicate")
		}
	}
	return cfg, nil
}

func parseWindow(id, value string, max int) (core.PrivacyWindow, error) {
	var w core.PrivacyWindow

	n, err := strconv.Atoi(id)
	if err != nil || n < 1 || n > max {
		return w, core.InvalidField("mask"+id, value)
	}
	w.ID = n

	parts := strings.Split(value, ",")
	if len(parts) != 5 {
		return w, core.InvalidField("mask"+id, value)
	}
	if w.Enabled, err = parseSwitch("mask"+id, parts[0]); err != nil {
		return w, err
	}

	var v [4]int
	for i, s := range parts[1:] {
		if v[i], err = strconv.Atoi(s); err != nil || v[i] < 0 || v[i] > privacyScale {
			return w, core.InvalidField("mask"+id, value)
		}
	}
	w.Rect = core.Rect{
		X:      core.ScaleFrom(v[0], privacyScale),
		Y:      core.ScaleFrom(v[1], privacyScale),
		Width:  core.ScaleFrom(v[2], privacyScale),
		Height: core.ScaleFrom(v[3], privacyScale),
	}
	return w, nil
}

// SetPrivacyMask returns one request per window.
func (p *Protocol) SetPrivacyMask(m capability.ModelInfo, cfg core.PrivacyMaskConfig) ([]wire.Request, error) {
	if err := p.requirePointPrivacy(m); err != nil {
		return nil, err
	}
	if len(cfg.Windows) == 0 {
		return nil, errors.NotValidf("empty privacy mask")
	}

	list := make([]wire.Request, 0, len(cfg.Windows))
	for _, w := range cfg.Windows {
		if w.ID < 1 || w.ID > m.MaxPrivacyWindows {
			return nil, errors.NotValidf("privacy window %d", w.ID)
		}
		if w.Enabled && !w.Rect.Valid() {
			return nil, errors.NotValidf("privacy window %d rectangle", w.ID)
		}

		r, err := single(query("privacymask", "set").
			AddInt("id", w.ID).
			AddBool("state", w.Enabled).
			AddInt("x", core.ScaleTo(w.Rect.X, privacyScale)).
			AddInt("y", core.ScaleTo(w.Rect.Y, privacyScale)).
			AddInt("width", core.ScaleTo(w.Rect.Width, privacyScale)).
			AddInt("height", core.ScaleTo(w.Rect.Height, privacyScale)))
		if err != nil {
			return nil, err
		}
		list = append(list, r...)
	}
	return list, nil
}

// GetPrivacyMaxWindows asks the camera how many windows it accepts.
func (p *Protocol) GetPrivacyMaxWindows(m capability.ModelInfo) ([]wire.Request, error) {
	if err := p.requirePointPrivacy(m); err != nil {
		return nil, err
	}
	return single(query("privacymask", "getmaxwindow"))
}

func (p *Protocol) ParsePrivacyMaxWindows(m capability.ModelInfo, b []byte) (int, error) {
	c, err := response(b)
	if err != nil {
		return 0, err
	}
	n, err := requiredInt(c, "maxwindow")
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, core.InvalidField("maxwindow", strconv.Itoa(n))
	}
	return n, nil
}
