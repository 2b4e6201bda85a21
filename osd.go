package camdrv

import (
	"github.com/use-go/camdrv/pkg/capability"
	"github.com/use-go/camdrv/pkg/core"
	"github.com/use-go/camdrv/pkg/wire"
)

// SetOSD places the date, time and text overlays. Date and time are drawn in
// the display format of the driver deps
func (d *Driver) SetOSD(camera Camera, cfg core.OSDConfig) ([]wire.Request, error) {
	return build(d, "osd", camera, func(p Protocol, m capability.ModelInfo) ([]wire.Request, error) {
		return p.SetOSD(m, cfg)
	})
}
