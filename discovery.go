package camdrv

import (
	"github.com/juju/errors"

	"github.com/use-go/camdrv/pkg/capability"
	"github.com/use-go/camdrv/pkg/core"
)

// Identify reads a device info answer received over dialect and returns the
// camera it describes. The reported model must be one of the database and
// must speak the same wire family
func (d *Driver) Identify(dialect capability.Dialect, b []byte) (Camera, core.DeviceInfo, error) {
	p, ok := d.protocols[dialect]
	if !ok {
		return Camera{}, core.DeviceInfo{}, errors.NotSupportedf("dialect %s", dialect)
	}

	info, err := p.ParseDeviceInfo(b)
	if err != nil {
		return Camera{}, core.DeviceInfo{}, err
	}

	model, err := capability.ByName(info.Model)
	if err != nil {
		return Camera{}, info, err
	}

	got := capability.Classify(model)
	if got != dialect && !(got.Native() && dialect.Native()) {
		return Camera{}, info, errors.NotValidf("model %s speaks %s, not %s", info.Model, got, dialect)
	}

	m, err := capability.Info(model)
	if err != nil {
		return Camera{}, info, err
	}

	d.log.Info().
		Str("model", m.Name).
		Str("dialect", got.String()).
		Str("firmware", info.Firmware).
		Msg("[camdrv] identified camera")
	return Camera{Brand: m.Brand, Model: model}, info, nil
}
