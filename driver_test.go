package camdrv

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/use-go/camdrv/pkg/capability"
	"github.com/use-go/camdrv/pkg/core"
	"github.com/use-go/camdrv/pkg/wire"
)

type outcome struct {
	op      string
	dialect capability.Dialect
	result  core.Result
}

type recorder struct {
	mu   sync.Mutex
	list []outcome
}

func (r *recorder) observe(op string, dialect capability.Dialect, result core.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.list = append(r.list, outcome{op, dialect, result})
}

func newDriver(opts ...Option) *Driver {
	deps := wire.Deps{
		Clock:   wire.FixedClock(time.Date(2024, 3, 5, 6, 7, 8, 0, time.UTC)),
		Display: wire.Display{Date: core.DateYYYYMMDD, Time: core.Time24Hour},
	}
	return NewDriver(append([]Option{WithDeps(deps)}, opts...)...)
}

func matrix(model capability.Model) Camera {
	return Camera{Brand: capability.BrandMatrix, Model: model, Address: "10.0.0.7"}
}

func TestResolve(t *testing.T) {
	d := newDriver()

	m, p, err := d.Resolve(matrix(capability.ModelCIDR30FL60CW))
	require.NoError(t, err)
	require.Equal(t, "CIDR30FL60CW", m.Name)
	require.NotNil(t, p)

	_, pa, err := d.Resolve(matrix(capability.ModelMIBR20FL36CW))
	require.NoError(t, err)
	_, pb, err := d.Resolve(matrix(capability.ModelSIBR20FL36CW))
	require.NoError(t, err)
	require.NotSame(t, pa, pb)

	_, _, err = d.Resolve(Camera{Brand: capability.BrandNone, Model: capability.ModelCIDR30FL60CW})
	require.Equal(t, core.ProcessError, core.ResultOf(err))

	_, _, err = d.Resolve(Camera{Brand: capability.BrandOnvif, Model: capability.ModelCIDR30FL60CW})
	require.Equal(t, core.FeatureNotSupported, core.ResultOf(err))

	_, _, err = d.Resolve(matrix(capability.ModelNone))
	require.Equal(t, core.ProcessError, core.ResultOf(err))
}

func TestAlarmOutputAcrossDialects(t *testing.T) {
	rec := &recorder{}
	d := newDriver(WithObserver(rec.observe))

	list, err := d.SetAlarmOutput(matrix(capability.ModelSIBR20FL36CW), core.AlarmOutput{Channel: 1, Active: true})
	require.Equal(t, core.FeatureNotSupported, core.ResultOf(err))
	require.Empty(t, list)

	list, err = d.SetAlarmOutput(matrix(capability.ModelCIDR30FL60CW), core.AlarmOutput{Channel: 1, Active: true})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.True(t, strings.HasPrefix(list[0].URL, "/matrix-cgi/alarmout"))

	require.Equal(t, []outcome{
		{"alarm-output", capability.OemDialectB, core.FeatureNotSupported},
		{"alarm-output", capability.NativeStandard, core.Success},
	}, rec.list)
}

func TestDeviceInfo(t *testing.T) {
	d := newDriver()
	cam := matrix(capability.ModelCIDR30FL60CW)

	list, err := d.GetDeviceInfo(cam)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, wire.MethodGet, list[0].Method)

	info, err := d.ParseDeviceInfo(cam, []byte("response-code=0\nmodel=CIDR30FL60CW\nfirmware-version=2.4.1\n"))
	require.NoError(t, err)
	require.Equal(t, core.DeviceInfo{Model: "CIDR30FL60CW", Firmware: "2.4.1"}, info)

	_, err = d.ParseDeviceInfo(cam, []byte("response-code=3\n"))
	require.Equal(t, core.ProcessError, core.ResultOf(err))

	_, err = d.ParseDeviceInfo(cam, nil)
	require.Equal(t, core.ProcessError, core.ResultOf(err))
}

func TestIdentify(t *testing.T) {
	d := newDriver()

	cam, info, err := d.Identify(capability.OemDialectB,
		[]byte(`<DeviceInfo><ModelName>SIBR40FL36CW</ModelName><FirmwareVer>2.1.0</FirmwareVer></DeviceInfo>`))
	require.NoError(t, err)
	require.Equal(t, Camera{Brand: capability.BrandMatrix, Model: capability.ModelSIBR40FL36CW}, cam)
	require.Equal(t, "2.1.0", info.Firmware)

	// native standard and premium share one wire family
	cam, _, err = d.Identify(capability.NativeStandard, []byte("response-code=0\nmodel=PZCR20ML25CWP\n"))
	require.NoError(t, err)
	require.Equal(t, capability.ModelPZCR20ML25CWP, cam.Model)

	_, _, err = d.Identify(capability.OemDialectB,
		[]byte(`<DeviceInfo><ModelName>MIBR20FL36CW</ModelName></DeviceInfo>`))
	require.Equal(t, core.ProcessError, core.ResultOf(err))

	_, _, err = d.Identify(capability.NativeStandard, []byte("response-code=0\nmodel=XYZ\n"))
	require.Equal(t, core.ProcessError, core.ResultOf(err))

	_, _, err = d.Identify(capability.DialectUnknown, nil)
	require.Equal(t, core.FeatureNotSupported, core.ResultOf(err))
}

func TestStreamDispatch(t *testing.T) {
	d := newDriver()

	list, err := d.GetStream(matrix(capability.ModelCIDR30FL60CW), core.StreamRequest{Stream: core.StreamMain})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, wire.ProtocolRTSP, list[0].Protocol)
	require.Equal(t, "/unicaststream/1", list[0].URL)

	list, err = d.GetStream(matrix(capability.ModelMIBR20FL36CW), core.StreamRequest{Stream: core.StreamMain})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "/Streaming/Channels/101", list[0].URL)

	list, err = d.GetStream(matrix(capability.ModelSIBR20FL36CW), core.StreamRequest{Stream: core.StreamMain})
	require.NoError(t, err)
	require.Equal(t, "/live/profile1", list[0].URL)
}

func TestPTZDispatch(t *testing.T) {
	d := newDriver()

	_, err := d.PTZMove(matrix(capability.ModelCIDR30FL60CW), core.PTZCommand{Action: core.PTZPanLeft, Speed: 4})
	require.Equal(t, core.FeatureNotSupported, core.ResultOf(err))

	list, err := d.PTZMove(matrix(capability.ModelPZCR20ML25CWP), core.PTZCommand{Action: core.PTZPanLeft, Speed: 4})
	require.NoError(t, err)
	require.NotEmpty(t, list)

	list, err = d.PTZPreset(matrix(capability.ModelMPZR20ML25CW), core.PresetCommand{Op: core.PresetGoto, Index: 3})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, wire.MethodPut, list[0].Method)
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	d := newDriver(WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))

	_, err := d.SyncDateTime(matrix(capability.ModelCIDR30FL60CW))
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, `"op":"datetime"`)
	require.Contains(t, out, `"model":"CIDR30FL60CW"`)
	require.Contains(t, out, `"dialect":"native-standard"`)
	require.Contains(t, out, `"address":"10.0.0.7"`)
	require.Contains(t, out, `"result":"success"`)
	require.Contains(t, out, `"requests":1`)

	buf.Reset()
	_, err = d.SetAlarmOutput(matrix(capability.ModelSIBR20FL36CW), core.AlarmOutput{Channel: 1})
	require.Error(t, err)
	require.Contains(t, buf.String(), `"error":`)
	require.Contains(t, buf.String(), `"requests":0`)
}

func TestObserverOnUnknownCamera(t *testing.T) {
	rec := &recorder{}
	d := newDriver(WithObserver(rec.observe))

	_, err := d.GetStillImage(Camera{Brand: capability.BrandMatrix, Model: capability.Model(250)})
	require.Error(t, err)
	require.Equal(t, []outcome{{"snapshot", capability.DialectUnknown, core.ProcessError}}, rec.list)
}

func TestStagedBodiesAcrossDialects(t *testing.T) {
	d := NewDriver(WithDeps(wire.Deps{Stager: wire.FileStager{Dir: t.TempDir()}}))
	osd := core.OSDConfig{TextEnabled: true, Text: "gate"}

	seen := map[string]bool{}
	for _, model := range []capability.Model{
		capability.ModelMIBR20FL36CW,
		capability.ModelSIBR20FL36CW,
		capability.ModelCIDR30FL60CW,
		capability.ModelMIBR20FL36CW,
	} {
		list, err := d.SetOSD(matrix(model), osd)
		require.NoError(t, err)
		for _, r := range list {
			if r.BodyRef == "" {
				continue
			}
			require.False(t, seen[r.BodyRef], r.BodyRef)
			seen[r.BodyRef] = true
		}
	}
	require.GreaterOrEqual(t, len(seen), 3)
}

func TestConcurrentBuilds(t *testing.T) {
	d := newDriver()
	cams := []Camera{
		matrix(capability.ModelCIDR30FL60CW),
		matrix(capability.ModelMIBR20FL36CW),
		matrix(capability.ModelSIBR40FL36CW),
	}

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(cam Camera) {
			defer wg.Done()
			list, err := d.GetDeviceInfo(cam)
			require.NoError(t, err)
			require.Len(t, list, 1)
		}(cams[i%len(cams)])
	}
	wg.Wait()
}
