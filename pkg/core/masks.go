package core

import (
	"github.com/juju/errors"

	"github.com/use-go/camdrv/pkg/grid"
)

// NormalizedMax is the extent of the normalized privacy coordinate space.
const NormalizedMax = 10000

// SensitivityMax is the top of the canonical motion sensitivity scale 1..SensitivityMax.
const SensitivityMax = 10

// MotionBlockParam is a motion detection area on the canonical grid.
type MotionBlockParam struct {
	Enabled     bool       `json:"enabled"`
	Sensitivity int        `json:"sensitivity"`
	Grid        *grid.Grid `json:"-"`
}

// Validate checks sensitivity and grid size.
func (m MotionBlockParam) Validate() error {
	if m.Sensitivity < 1 || m.Sensitivity > SensitivityMax {
		return errors.NotValidf("motion sensitivity %d", m.Sensitivity)
	}
	if m.Grid == nil || m.Grid.Size() != grid.Canonical {
		return errors.NotValidf("motion grid")
	}
	return nil
}

// Rect is an axis-aligned rectangle in the normalized space, origin top-left.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Valid reports whether the rectangle is non-empty and inside the normalized space.
func (r Rect) Valid() bool {
	return r.X >= 0 && r.Y >= 0 && r.Width > 0 && r.Height > 0 &&
		r.X+r.Width <= NormalizedMax && r.Y+r.Height <= NormalizedMax
}

// PrivacyWindow is one mask rectangle. ID is 1-based.
type PrivacyWindow struct {
	ID      int  `json:"id"`
	Enabled bool `json:"enabled"`
	Rect    Rect `json:"rect"`
}

// PrivacyMaskConfig holds rectangles for point-addressed cameras or a
// canonical grid for block-addressed ones.
type PrivacyMaskConfig struct {
	Windows []PrivacyWindow `json:"windows,omitempty"`
	Grid    *grid.Grid      `json:"-"`
}

// ScaleTo maps v from the normalized space to 0..max.
func ScaleTo(v, max int) int {
	return (v*max + NormalizedMax/2) / NormalizedMax
}

// ScaleFrom maps v from 0..max to the normalized space.
func ScaleFrom(v, max int) int {
	if max <= 0 {
		return 0
	}
	return (v*NormalizedMax + max/2) / max
}
