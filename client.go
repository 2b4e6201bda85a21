package camdrv

import (
	"github.com/juju/errors"
	"github.com/rs/zerolog"

	"github.com/use-go/camdrv/pkg/capability"
	"github.com/use-go/camdrv/pkg/cgi"
	"github.com/use-go/camdrv/pkg/core"
	"github.com/use-go/camdrv/pkg/wire"
	"github.com/use-go/camdrv/pkg/xmlapi"
)

// Driver classifies a camera and hands the call to the protocol of its
// dialect. It is safe for concurrent use
type Driver struct {
	log      zerolog.Logger
	deps     wire.Deps
	observer Observer

	protocols map[capability.Dialect]Protocol
}

// Option configures a Driver
type Option func(*Driver)

// WithLogger sets the logger, the default discards everything
func WithLogger(log zerolog.Logger) Option {
	return func(d *Driver) { d.log = log }
}

// WithDeps sets the clock, display format, name generator and body stager
func WithDeps(deps wire.Deps) Option {
	return func(d *Driver) { d.deps = deps }
}

// WithObserver registers a callback for every build and parse outcome
func WithObserver(o Observer) Option {
	return func(d *Driver) { d.observer = o }
}

// NewDriver creates a driver for every dialect of the MATRIX family
func NewDriver(opts ...Option) *Driver {
	d := &Driver{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(d)
	}
	// every protocol shares one name generator
	d.deps = d.deps.WithDefaults()

	native := cgi.New(d.deps)
	d.protocols = map[capability.Dialect]Protocol{
		capability.OemDialectA:        xmlapi.New(xmlapi.DialectA(), d.deps),
		capability.OemDialectB:        xmlapi.New(xmlapi.DialectB(), d.deps),
		capability.NativeStandard:     native,
		capability.NativePremiumOrPtz: native,
	}
	return d
}

// Resolve returns the model entry and the protocol serving it. Unknown brands
// and models are NotFound; brands without models here are NotSupported
func (d *Driver) Resolve(camera Camera) (capability.ModelInfo, Protocol, error) {
	if !capability.IsKnownBrand(camera.Brand) {
		return capability.ModelInfo{}, nil, errors.NotFoundf("brand %d", camera.Brand)
	}
	if brand, _ := capability.BrandInfoOf(camera.Brand); brand.External {
		return capability.ModelInfo{}, nil, errors.NotSupportedf("brand %s", brand.Name)
	}

	m, err := capability.Lookup(camera.Brand, camera.Model)
	if err != nil {
		return capability.ModelInfo{}, nil, err
	}

	p, ok := d.protocols[capability.Classify(m.ID)]
	if !ok {
		return capability.ModelInfo{}, nil, errors.NotSupportedf("dialect of %s", m.Name)
	}
	return m, p, nil
}

func (d *Driver) done(op string, camera Camera, m capability.ModelInfo, n int, err error) {
	res := core.ResultOf(err)
	if d.observer != nil {
		d.observer(op, m.Dialect, res)
	}

	d.log.Debug().Err(err).
		Str("op", op).
		Str("model", m.Name).
		Str("dialect", m.Dialect.String()).
		Str("address", camera.Address).
		Int("requests", n).
		Str("result", res.String()).
		Msg("[camdrv] " + op)
}

// build resolves the camera and runs a request builder
func build(d *Driver, op string, camera Camera, fn func(Protocol, capability.ModelInfo) ([]wire.Request, error)) ([]wire.Request, error) {
	m, p, err := d.Resolve(camera)
	if err == nil {
		var list []wire.Request
		if list, err = fn(p, m); err == nil {
			d.done(op, camera, m, len(list), nil)
			return list, nil
		}
	}
	d.done(op, camera, m, 0, err)
	return nil, err
}

// parse resolves the camera and runs a response parser
func parse[T any](d *Driver, op string, camera Camera, fn func(Protocol, capability.ModelInfo) (T, error)) (T, error) {
	var v T
	m, p, err := d.Resolve(camera)
	if err == nil {
		v, err = fn(p, m)
	}
	d.done(op, camera, m, 0, err)
	if err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// ParseAck checks the status of a response to any write
func (d *Driver) ParseAck(camera Camera, b []byte) error {
	_, err := parse(d, "ack", camera, func(p Protocol, _ capability.ModelInfo) (struct{}, error) {
		return struct{}{}, p.ParseAck(b)
	})
	return err
}
