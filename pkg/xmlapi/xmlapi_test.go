package xmlapi

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/juju/errors"
	"github.com/stretchr/testify/require"

	"github.com/use-go/camdrv/pkg/capability"
	"github.com/use-go/camdrv/pkg/core"
	"github.com/use-go/camdrv/pkg/grid"
	"github.com/use-go/camdrv/pkg/wire"
)

func info(t *testing.T, model capability.Model) capability.ModelInfo {
	m, err := capability.Info(model)
	require.NoError(t, err)
	return m
}

func deps() wire.Deps {
	return wire.Deps{
		Clock:   wire.FixedClock(time.Date(2024, 3, 5, 6, 7, 8, 0, time.UTC)),
		Display: wire.Display{Date: core.DateYYYYMMDD, Time: core.Time12Hour},
	}
}

func newA() *Protocol { return New(DialectA(), deps()) }
func newB() *Protocol { return New(DialectB(), deps()) }

func bodyDoc(t *testing.T, r wire.Request) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(r.Body))
	return doc
}

func bodyText(t *testing.T, r wire.Request, path string) string {
	t.Helper()
	el := bodyDoc(t, r).FindElement(path)
	require.NotNil(t, el, path)
	return el.Text()
}

func elementNames(t *testing.T, list []wire.Request, into map[string]bool) {
	t.Helper()
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		into[el.Tag] = true
		for _, c := range el.ChildElements() {
			walk(c)
		}
	}
	for _, r := range list {
		if len(r.Body) > 0 {
			walk(bodyDoc(t, r).Root())
		}
	}
}

func TestVocabulariesDisjoint(t *testing.T) {
	a := map[string]bool{}
	for _, w := range DialectA().Words() {
		a[w] = true
	}
	for _, w := range DialectB().Words() {
		require.False(t, a[w], w)
	}
}

func TestGetStreamFramerateScale(t *testing.T) {
	cfg := core.StreamConfig{
		Codec:        core.CodecH264,
		Resolution:   "1920x1080",
		Framerate:    25,
		BitrateMode:  core.BitrateConstant,
		BitrateIndex: 10,
		GOP:          50,
	}

	list, err := newA().GetStream(info(t, capability.ModelMIBR20FL36CW), core.StreamRequest{ConsiderConfig: true, Config: cfg})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, wire.MethodPut, list[0].Method)
	require.Equal(t, "/ISAPI/Streaming/channels/101", list[0].URL)
	require.Equal(t, "application/xml", list[0].ContentType)
	require.Equal(t, "2500", bodyText(t, list[0], "./StreamingChannel/Video/maxFrameRate"))
	require.Equal(t, "H.264", bodyText(t, list[0], "./StreamingChannel/Video/videoCodecType"))
	require.Equal(t, "3072", bodyText(t, list[0], "./StreamingChannel/Video/constantBitRate"))
	require.Equal(t, "101", bodyText(t, list[0], "./StreamingChannel/id"))
	require.Equal(t, "http://www.std-cgi.com/ver20/XMLSchema", bodyDoc(t, list[0]).Root().SelectAttrValue("xmlns", ""))
	require.Equal(t, wire.ProtocolRTSP, list[1].Protocol)
	require.Equal(t, "/Streaming/Channels/101", list[1].URL)

	list, err = newB().GetStream(info(t, capability.ModelSIBR20FL36CW), core.StreamRequest{ConsiderConfig: true, Config: cfg})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "/api/v1/video/encoder/1", list[0].URL)
	require.Equal(t, "text/xml", list[0].ContentType)
	require.Equal(t, "25", bodyText(t, list[0], "./VideoEncoder/VideoParam/FrameRate"))
	require.Equal(t, "H264", bodyText(t, list[0], "./VideoEncoder/VideoParam/EncodeType"))
	require.Equal(t, "/live/profile1", list[1].URL)

	// sub stream without config
	list, err = newB().GetStream(info(t, capability.ModelSIBR20FL36CW), core.StreamRequest{Stream: core.StreamSub})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "/live/profile2", list[0].URL)

	_, err = newA().GetStream(info(t, capability.ModelMIBR20FL36CW), core.StreamRequest{Profile: 3})
	require.Equal(t, core.FeatureNotSupported, core.ResultOf(err))
}

func TestStreamConfigRoundTrip(t *testing.T) {
	cases := []struct {
		p      *Protocol
		model  capability.Model
		stream core.StreamType
		cfg    core.StreamConfig
	}{
		{newA(), capability.ModelMIBR20FL36CW, core.StreamMain, core.StreamConfig{
			Codec: core.CodecH265, Resolution: "1280x720", Framerate: 12,
			BitrateMode: core.BitrateVariable, Quality: 4, GOP: 24, Audio: true,
		}},
		{newA(), capability.ModelMIBR50FL40CW, core.StreamSub, core.StreamConfig{
			Codec: core.CodecMJPEG, Resolution: "640x480", Framerate: 25,
			BitrateMode: core.BitrateConstant, BitrateIndex: 7, GOP: 25,
		}},
		{newB(), capability.ModelSIBR40FL36CW, core.StreamMain, core.StreamConfig{
			Codec: core.CodecH265, Resolution: "2688x1520", Framerate: 20,
			BitrateMode: core.BitrateVariable, Quality: 3, GOP: 40,
		}},
	}

	for _, c := range cases {
		m := info(t, c.model)
		profile := 1
		if c.stream == core.StreamSub {
			profile = 2
		}
		list, err := c.p.GetStream(m, core.StreamRequest{Stream: c.stream, Profile: profile, ConsiderConfig: true, Config: c.cfg})
		require.NoError(t, err, m.Name)

		got, err := c.p.ParseStreamConfig(m, c.stream, list[0].Body)
		require.NoError(t, err, m.Name)
		require.Equal(t, c.cfg, got, m.Name)
	}
}

func TestStreamConfigErrors(t *testing.T) {
	p := newA()
	m := info(t, capability.ModelMIBR20FL36CW)

	_, err := p.ParseStreamConfig(m, core.StreamMain, []byte(`<StreamingChannel><Video><videoCodecType>H.264</videoCodecType></Video></StreamingChannel>`))
	require.True(t, errors.Is(err, errors.NotFound))
	require.Equal(t, core.ProcessError, core.ResultOf(err))

	// sub stream does not carry H.265
	_, err = p.ParseStreamConfig(m, core.StreamSub, []byte(`<StreamingChannel><Video><videoCodecType>H.265</videoCodecType></Video></StreamingChannel>`))
	require.True(t, errors.Is(err, errors.NotValid))

	_, err = p.ParseStreamConfig(m, core.StreamMain, nil)
	require.Equal(t, core.ProcessError, core.ResultOf(err))

	// configuration outside the table
	_, err = p.GetStream(m, core.StreamRequest{ConsiderConfig: true, Config: core.StreamConfig{
		Codec: core.CodecH264, Resolution: "3840x2160", Framerate: 25, GOP: 25, Quality: 3,
	}})
	require.Equal(t, core.FeatureNotSupported, core.ResultOf(err))

	list, err := p.GetStreamConfig(m, core.StreamSub, 0)
	require.NoError(t, err)
	require.Equal(t, wire.MethodGet, list[0].Method)
	require.Equal(t, "/ISAPI/Streaming/channels/102", list[0].URL)

	list, err = p.GetStillImage(m)
	require.NoError(t, err)
	require.Equal(t, "/ISAPI/Streaming/channels/101/picture", list[0].URL)
}

func TestDialectIsolation(t *testing.T) {
	collect := func(p *Protocol, m capability.ModelInfo) []wire.Request {
		var all []wire.Request
		add := func(list []wire.Request, err error) {
			require.NoError(t, err)
			all = append(all, list...)
		}
		add(p.GetStream(m, core.StreamRequest{ConsiderConfig: true, Config: core.StreamConfig{
			Codec: core.CodecH264, Resolution: "1920x1080", Framerate: 15,
			BitrateMode: core.BitrateVariable, Quality: 2, GOP: 30,
		}}))
		add(p.SetAlarmOutput(m, core.AlarmOutput{Channel: 1, Active: true}))
		add(p.SetNetwork(m, core.NetworkConfig{Address: "10.0.0.9", Subnet: "255.255.255.0", Gateway: "10.0.0.1"}))
		add(p.SetOSD(m, core.OSDConfig{TextEnabled: true, Text: "gate"}))
		add(p.ChangePassword(m, core.PasswordChange{User: "admin", OldPassword: "a", NewPassword: "b"}))
		add(p.SyncDateTime(m))
		add(p.SetMotionWindow(m, core.MotionBlockParam{Enabled: true, Sensitivity: 5, Grid: grid.NewCanonical()}))
		return all
	}

	a := collect(newA(), info(t, capability.ModelMIBR50FL40CW))
	b := collect(newB(), info(t, capability.ModelSIBR40FL36CW))

	for _, r := range a {
		require.True(t, strings.HasPrefix(r.URL, "/ISAPI/") || strings.HasPrefix(r.URL, "/Streaming/"), r.URL)
	}
	for _, r := range b {
		require.True(t, strings.HasPrefix(r.URL, "/api/v1/") || strings.HasPrefix(r.URL, "/live/"), r.URL)
	}

	namesA, namesB := map[string]bool{}, map[string]bool{}
	elementNames(t, a, namesA)
	elementNames(t, b, namesB)
	require.NotEmpty(t, namesA)
	require.NotEmpty(t, namesB)
	for name := range namesA {
		require.False(t, namesB[name], name)
	}
}

func TestParseDeviceInfo(t *testing.T) {
	a := newA()
	got, err := a.ParseDeviceInfo([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<DeviceInfo version="2.0" xmlns="http://www.std-cgi.com/ver20/XMLSchema">
<deviceName>gate</deviceName>
<model>MIBR20FL36CW</model>
<serialNumber>MIBR20FL36CW20240101</serialNumber>
<macAddress>00:1b:09:aa:bb:cc</macAddress>
<firmwareVersion>V5.7.3</firmwareVersion>
</DeviceInfo>`))
	require.NoError(t, err)
	require.Equal(t, core.DeviceInfo{
		Model: "MIBR20FL36CW", Firmware: "V5.7.3", Serial: "MIBR20FL36CW20240101", MAC: "00:1b:09:aa:bb:cc",
	}, got)

	_, err = a.ParseDeviceInfo([]byte(`<ResponseStatus><statusCode>4</statusCode><statusString>Invalid Operation</statusString></ResponseStatus>`))
	require.Equal(t, core.ProcessError, core.ResultOf(err))
	var se *core.StatusError
	require.True(t, errors.As(err, &se))
	require.Equal(t, "4", se.Code)
	require.Equal(t, "Invalid Operation", se.Message)

	b := newB()
	got, err = b.ParseDeviceInfo([]byte(`<DeviceInfo><ModelName>SIBR20FL36CW</ModelName><FirmwareVer>2.1.0</FirmwareVer></DeviceInfo>`))
	require.NoError(t, err)
	require.Equal(t, core.DeviceInfo{Model: "SIBR20FL36CW", Firmware: "2.1.0"}, got)

	// the other dialect's document is not understood
	_, err = b.ParseDeviceInfo([]byte(`<DeviceInfo><model>MIBR20FL36CW</model></DeviceInfo>`))
	require.True(t, errors.Is(err, errors.NotFound))

	list, err := b.GetDeviceInfo(info(t, capability.ModelSIBR20FL36CW))
	require.NoError(t, err)
	require.Equal(t, "/api/v1/system/info", list[0].URL)
}

func TestParseAck(t *testing.T) {
	require.NoError(t, newA().ParseAck([]byte(`<ResponseStatus><statusCode>1</statusCode><statusString>OK</statusString></ResponseStatus>`)))
	require.NoError(t, newB().ParseAck([]byte(`<ResponseStatus><ResponseCode>0</ResponseCode></ResponseStatus>`)))

	err := newB().ParseAck([]byte(`<ResponseStatus><ResponseCode>3</ResponseCode><ResponseString>Busy</ResponseString></ResponseStatus>`))
	var se *core.StatusError
	require.True(t, errors.As(err, &se))
	require.Equal(t, "Busy", se.Message)

	err = newB().ParseAck([]byte(`<Result></Result>`))
	require.True(t, errors.Is(err, errors.NotFound))

	// a success code of the other dialect is a failure here
	err = newA().ParseAck([]byte(`<ResponseStatus><statusCode>0</statusCode></ResponseStatus>`))
	require.Equal(t, core.ProcessError, core.ResultOf(err))
}

func TestEvents(t *testing.T) {
	p := newA()
	m := info(t, capability.ModelMIBR20FL36CW)

	list, err := p.PollEvents(m)
	require.NoError(t, err)
	require.Equal(t, "/ISAPI/Event/notification/status", list[0].URL)

	resp := []byte(`<EventStatusList>
<EventState><eventType>VMD</eventType><eventState>active</eventState></EventState>
<EventState><eventType>tamperdetection</eventType><eventState>inactive</eventState></EventState>
<EventState><eventType>IO1</eventType><eventState>active</eventState></EventState>
<EventState><eventType>shelterAlarm</eventType><eventState>active</eventState></EventState>
</EventStatusList>`)
	res, err := p.ParseEvents(m, resp)
	require.NoError(t, err)
	require.Equal(t, []core.EventID{core.EventMotion, core.EventAlarmIn1}, res.Active())

	again, err := p.ParseEvents(m, resp)
	require.NoError(t, err)
	require.Equal(t, res, again)

	_, err = p.ParseEvents(m, []byte(`<EventStatusList><EventState><eventType>VMD</eventType><eventState>active</eventState></EventState></EventStatusList>`))
	require.True(t, errors.Is(err, errors.NotFound))

	_, err = p.ParseEvents(m, []byte(`<EventStatusList><EventState><eventType>VMD</eventType><eventState>on</eventState></EventState></EventStatusList>`))
	require.True(t, errors.Is(err, errors.NotValid))

	b := newB()
	res, err = b.ParseEvents(info(t, capability.ModelSIBR20FL36CW), []byte(`<EventList>
<Event><Type>Motion</Type><Status>0</Status></Event>
<Event><Type>Tamper</Type><Status>1</Status></Event>
</EventList>`))
	require.NoError(t, err)
	require.Equal(t, []core.EventID{core.EventTamper}, res.Active())
}

func TestAlarmOutputGating(t *testing.T) {
	p := newB()

	list, err := p.SetAlarmOutput(info(t, capability.ModelSIBR20FL36CW), core.AlarmOutput{Channel: 1, Active: true})
	require.Equal(t, core.FeatureNotSupported, core.ResultOf(err))
	require.Empty(t, list)

	list, err = p.SetAlarmOutput(info(t, capability.ModelSIBR40FL36CW), core.AlarmOutput{Channel: 1, Active: true})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, wire.MethodPut, list[0].Method)
	require.Equal(t, "/api/v1/alarm/output/1", list[0].URL)
	require.Equal(t, "On", bodyText(t, list[0], "./AlarmOutput/State"))

	list, err = newA().SetAlarmOutput(info(t, capability.ModelMPZR20ML25CW), core.AlarmOutput{Channel: 2})
	require.NoError(t, err)
	require.Equal(t, "/ISAPI/System/IO/outputs/2/trigger", list[0].URL)
	require.Equal(t, "low", bodyText(t, list[0], "./IOPortData/outputState"))

	_, err = p.SetAlarmOutput(info(t, capability.ModelSIBR40FL36CW), core.AlarmOutput{Channel: 3})
	require.True(t, errors.Is(err, errors.NotValid))
}

func TestPTZ(t *testing.T) {
	p := newA()
	dome := info(t, capability.ModelMPZR20ML25CW)

	list, err := p.PTZMove(dome, core.PTZCommand{Action: core.PTZPanLeft, Speed: 8})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "/ISAPI/PTZCtrl/channels/1/continuous", list[0].URL)
	require.Equal(t, "-100", bodyText(t, list[0], "./PTZData/pan"))
	require.Equal(t, "0", bodyText(t, list[0], "./PTZData/tilt"))

	list, err = p.PTZMove(dome, core.PTZCommand{Action: core.PTZFocusFar, Speed: 4})
	require.NoError(t, err)
	require.Equal(t, "/ISAPI/Image/channels/1/focus", list[0].URL)
	require.Equal(t, "50", bodyText(t, list[0], "./FocusData/focus"))

	list, err = p.PTZMove(dome, core.PTZCommand{Action: core.PTZStop})
	require.NoError(t, err)
	require.Len(t, list, 3)

	_, err = p.PTZMove(dome, core.PTZCommand{Action: core.PTZTiltUp, Speed: 9})
	require.True(t, errors.Is(err, errors.NotValid))

	fixed := info(t, capability.ModelMIBR20FL36CW)
	_, err = p.PTZMove(fixed, core.PTZCommand{Action: core.PTZStop})
	require.Equal(t, core.FeatureNotSupported, core.ResultOf(err))
	_, err = p.PTZPreset(fixed, core.PresetCommand{Op: core.PresetGoto, Index: 1})
	require.Equal(t, core.FeatureNotSupported, core.ResultOf(err))

	list, err = p.PTZPreset(dome, core.PresetCommand{Op: core.PresetGoto, Index: 3})
	require.NoError(t, err)
	require.Equal(t, wire.MethodPut, list[0].Method)
	require.Equal(t, "/ISAPI/PTZCtrl/channels/1/presets/3/goto", list[0].URL)
	require.Empty(t, list[0].Body)

	list, err = p.PTZPreset(dome, core.PresetCommand{Op: core.PresetSet, Index: 3, Name: "gate"})
	require.NoError(t, err)
	require.Equal(t, "/ISAPI/PTZCtrl/channels/1/presets/3", list[0].URL)
	require.Equal(t, "gate", bodyText(t, list[0], "./PTZPreset/presetName"))

	list, err = p.PTZPreset(dome, core.PresetCommand{Op: core.PresetRemove, Index: 3})
	require.NoError(t, err)
	require.Equal(t, wire.MethodDelete, list[0].Method)

	_, err = p.PTZPreset(dome, core.PresetCommand{Op: core.PresetGoto, Index: 0})
	require.True(t, errors.Is(err, errors.NotValid))
}

// nativeCorners sets the corner cells and one inner cell of a native grid.
func nativeCorners(size grid.Size) *grid.Grid {
	g := grid.New(size.Rows, size.Cols)
	g.Set(0, 0, true)
	g.Set(0, size.Cols-1, true)
	g.Set(size.Rows-1, 0, true)
	g.Set(size.Rows-1, size.Cols-1, true)
	g.Set(size.Rows/2, size.Cols/2, true)
	return g
}

func TestMotionWindow(t *testing.T) {
	cases := []struct {
		p         *Protocol
		model     capability.Model
		gridPath  string
		levelPath string
		level     string
	}{
		{newA(), capability.ModelMIBR20FL36CW, "./MotionDetection/MotionDetectionLayout/layout/gridMap", "./MotionDetection/MotionDetectionLayout/sensitivityLevel", "70"},
		{newB(), capability.ModelSIBR20FL36CW, "./MotionConfig/GridData", "./MotionConfig/Sensitivity", "7"},
	}

	for _, c := range cases {
		m := info(t, c.model)
		native := nativeCorners(m.MotionGrid)
		canonical := grid.Resample(native, grid.CanonicalRows, grid.CanonicalCols)

		list, err := c.p.SetMotionWindow(m, core.MotionBlockParam{Enabled: true, Sensitivity: 7, Grid: canonical})
		require.NoError(t, err, m.Name)
		require.Len(t, list, 1)
		require.Equal(t, grid.EncodeHex(native), bodyText(t, list[0], c.gridPath), m.Name)
		require.Equal(t, c.level, bodyText(t, list[0], c.levelPath), m.Name)

		got, err := c.p.ParseMotionWindow(m, list[0].Body)
		require.NoError(t, err, m.Name)
		require.True(t, got.Enabled)
		require.Equal(t, 7, got.Sensitivity)
		require.True(t, canonical.Equal(got.Grid), m.Name)
	}

	_, err := newA().SetMotionWindow(info(t, capability.ModelMIBR20FL36CW), core.MotionBlockParam{Sensitivity: 11, Grid: grid.NewCanonical()})
	require.True(t, errors.Is(err, errors.NotValid))

	// grid of the wrong native size
	_, err = newB().ParseMotionWindow(info(t, capability.ModelSIBR20FL36CW), []byte(`<MotionConfig><Enable>1</Enable><Sensitivity>5</Sensitivity><GridRows>18</GridRows><GridCols>22</GridCols><GridData>00</GridData></MotionConfig>`))
	require.True(t, errors.Is(err, errors.NotValid))
}

func TestPrivacyRegions(t *testing.T) {
	p := newA()
	m := info(t, capability.ModelMIBR20FL36CW)

	cfg := core.PrivacyMaskConfig{Windows: []core.PrivacyWindow{
		{ID: 2, Enabled: true, Rect: core.Rect{X: 0, Y: 2500, Width: 5000, Height: 5000}},
		{ID: 1, Enabled: true, Rect: core.Rect{X: 5000, Y: 0, Width: 5000, Height: 2500}},
	}}
	list, err := p.SetPrivacyMask(m, cfg)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "/ISAPI/System/Video/inputs/channels/1/privacyMask", list[0].URL)
	require.Len(t, bodyDoc(t, list[0]).FindElements("//RegionCoordinates"), 8)

	// bottom-up Y axis in a 704x576 space
	region := bodyDoc(t, list[0]).FindElement("//PrivacyMaskRegion")
	require.Equal(t, "2", region.SelectElement("id").Text())
	first := region.FindElement("./RegionCoordinatesList/RegionCoordinates")
	require.Equal(t, "0", first.SelectElement("positionX").Text())
	require.Equal(t, "144", first.SelectElement("positionY").Text())

	got, err := p.ParsePrivacyMask(m, list[0].Body)
	require.NoError(t, err)
	require.Equal(t, []core.PrivacyWindow{cfg.Windows[1], cfg.Windows[0]}, got.Windows)

	_, err = p.SetPrivacyMask(m, core.PrivacyMaskConfig{Windows: []core.PrivacyWindow{{ID: 5, Enabled: true, Rect: core.Rect{Width: 1, Height: 1}}}})
	require.True(t, errors.Is(err, errors.NotValid))
	_, err = p.SetPrivacyMask(m, core.PrivacyMaskConfig{})
	require.True(t, errors.Is(err, errors.NotValid))

	list, err = p.GetPrivacyMaxWindows(m)
	require.NoError(t, err)
	require.Equal(t, "/ISAPI/System/Video/inputs/channels/1/privacyMask/capabilities", list[0].URL)
	n, err := p.ParsePrivacyMaxWindows(m, []byte(`<PrivacyMaskCap><maxRegionNum>4</maxRegionNum></PrivacyMaskCap>`))
	require.NoError(t, err)
	require.Equal(t, 4, n)
}

func TestPrivacyGrid(t *testing.T) {
	p := newB()
	m := info(t, capability.ModelSIBR40FL36CW)
	canonical := grid.Resample(nativeCorners(m.PrivacyGrid), grid.CanonicalRows, grid.CanonicalCols)

	list, err := p.SetPrivacyMask(m, core.PrivacyMaskConfig{Grid: canonical})
	require.NoError(t, err)
	require.Equal(t, "/api/v1/video/privacy", list[0].URL)
	require.Equal(t, "1", bodyText(t, list[0], "./PrivacyConfig/Enable"))

	got, err := p.ParsePrivacyMask(m, list[0].Body)
	require.NoError(t, err)
	require.True(t, canonical.Equal(got.Grid))

	// block dialects have no region limit to ask for
	_, err = p.GetPrivacyMaxWindows(m)
	require.Equal(t, core.FeatureNotSupported, core.ResultOf(err))

	_, err = p.SetPrivacyMask(m, core.PrivacyMaskConfig{Windows: []core.PrivacyWindow{{ID: 1}}})
	require.True(t, errors.Is(err, errors.NotValid))
}

func TestSettings(t *testing.T) {
	a, b := newA(), newB()
	ma, mb := info(t, capability.ModelMIBR20FL36CW), info(t, capability.ModelSIBR20FL36CW)
	osd := core.OSDConfig{
		TextEnabled: true, Text: "north gate", TextPosition: core.OSDTopLeft,
		DateTimeEnabled: true, DateTimePos: core.OSDBottomRight,
	}

	list, err := a.SetOSD(ma, osd)
	require.NoError(t, err)
	require.Equal(t, "16", bodyText(t, list[0], "./VideoOverlay/TextOverlayList/TextOverlay/positionX"))
	require.Equal(t, "544", bodyText(t, list[0], "./VideoOverlay/TextOverlayList/TextOverlay/positionY"))
	require.Equal(t, "448", bodyText(t, list[0], "./VideoOverlay/DateTimeOverlay/positionX"))
	require.Equal(t, "32", bodyText(t, list[0], "./VideoOverlay/DateTimeOverlay/positionY"))
	require.Equal(t, "YYYY-MM-DD", bodyText(t, list[0], "./VideoOverlay/DateTimeOverlay/dateStyle"))
	require.Equal(t, "12hour", bodyText(t, list[0], "./VideoOverlay/DateTimeOverlay/timeStyle"))

	list, err = b.SetOSD(mb, osd)
	require.NoError(t, err)
	require.Equal(t, "TopLeft", bodyText(t, list[0], "./OSDConfig/TitleOSD/Position"))
	require.Equal(t, "BottomRight", bodyText(t, list[0], "./OSDConfig/TimeOSD/Position"))
	require.Equal(t, "YMD", bodyText(t, list[0], "./OSDConfig/TimeOSD/DateFormat"))
	require.Equal(t, "12H", bodyText(t, list[0], "./OSDConfig/TimeOSD/HourFormat"))

	_, err = b.SetOSD(mb, core.OSDConfig{Text: strings.Repeat("x", core.OSDTextMax+1)})
	require.True(t, errors.Is(err, errors.NotValid))

	list, err = a.SyncDateTime(ma)
	require.NoError(t, err)
	require.Equal(t, "/ISAPI/System/time", list[0].URL)
	require.Equal(t, "2024-03-05T06:07:08", bodyText(t, list[0], "./Time/localTime"))
	require.Equal(t, "manual", bodyText(t, list[0], "./Time/timeMode"))

	list, err = b.SyncDateTime(mb)
	require.NoError(t, err)
	require.Equal(t, "2024-03-05 06:07:08", bodyText(t, list[0], "./SystemTime/DateTime"))

	list, err = b.SetNetwork(mb, core.NetworkConfig{Address: "192.168.1.20", Subnet: "255.255.255.0", Gateway: "192.168.1.1"})
	require.NoError(t, err)
	require.Equal(t, "/api/v1/network/ipv4", list[0].URL)
	require.Equal(t, "192.168.1.20", bodyText(t, list[0], "./IPv4Config/Address"))

	list, err = a.SetNetwork(ma, core.NetworkConfig{Address: "192.168.1.20", Subnet: "255.255.255.0", Gateway: "192.168.1.1"})
	require.NoError(t, err)
	require.Equal(t, "192.168.1.1", bodyText(t, list[0], "./IPAddress/DefaultGateway/ipAddress"))

	_, err = a.SetNetwork(ma, core.NetworkConfig{Address: "fe80::1", Subnet: "255.255.255.0", Gateway: "192.168.1.1"})
	require.True(t, errors.Is(err, errors.NotValid))
}

func TestChangePasswordStaged(t *testing.T) {
	stager := &wire.MemoryStager{}
	d := deps()
	d.Stager = stager
	d.IDs = wire.NewCounter("pw-")
	p := New(DialectA(), d)

	list, err := p.ChangePassword(info(t, capability.ModelMIBR20FL36CW), core.PasswordChange{User: "admin", OldPassword: "old&", NewPassword: "n<ew"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "/ISAPI/Security/users/1", list[0].URL)
	require.Equal(t, "pw-1.xml", list[0].BodyRef)

	staged, ok := stager.Load("pw-1.xml")
	require.True(t, ok)
	require.Equal(t, list[0].Body, staged)
	require.Equal(t, "n<ew", bodyText(t, list[0], "./User/password"))
	require.Equal(t, "old&", bodyText(t, list[0], "./User/loginPassword"))

	_, err = p.ChangePassword(info(t, capability.ModelMIBR20FL36CW), core.PasswordChange{User: "admin"})
	require.True(t, errors.Is(err, errors.NotValid))
}

func TestTwoWayAudio(t *testing.T) {
	p := newA()
	dome := info(t, capability.ModelMPZR20ML25CW)

	list, err := p.OpenAudio(dome, core.AudioG711A)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "G.711alaw", bodyText(t, list[0], "./TwoWayAudioChannel/audioCompressionType"))
	require.Equal(t, "/ISAPI/System/TwoWayAudio/channels/1/open", list[1].URL)

	list, err = p.SendAudio(dome, core.AudioSend{
		Codec: core.AudioG711U, Credentials: core.Credentials{Username: "admin", Password: "secret"}, Length: 640,
	})
	require.NoError(t, err)
	require.Equal(t, wire.AuthBasic, list[0].Auth)
	require.Equal(t, 640, list[0].BodyLen)
	require.Equal(t, "Basic "+base64.StdEncoding.EncodeToString([]byte("admin:secret")), list[0].Header["Authorization"])

	list, err = p.CloseAudio(dome)
	require.NoError(t, err)
	require.Equal(t, "/ISAPI/System/TwoWayAudio/channels/1/close", list[0].URL)

	_, err = p.OpenAudio(info(t, capability.ModelMIBR20FL36CW), core.AudioG711U)
	require.Equal(t, core.FeatureNotSupported, core.ResultOf(err))
	_, err = p.SendAudio(dome, core.AudioSend{Codec: core.AudioG711U})
	require.True(t, errors.Is(err, errors.NotValid))
}

func TestImageSetting(t *testing.T) {
	a := newA()
	m := info(t, capability.ModelMIBR20FL36CW)

	// legacy charset declaration
	capa, err := a.ParseImageCapability([]byte(`<?xml version="1.0" encoding="ISO-8859-1"?>
<ImageChannel version="2.0" xmlns="http://www.std-cgi.com/ver20/XMLSchema">
<Color>
<brightnessLevel min="0" max="100">50</brightnessLevel>
<contrastLevel min="0" max="100">50</contrastLevel>
</Color>
<IrcutFilter><IrcutFilterType opt="auto,day,night">auto</IrcutFilterType></IrcutFilter>
</ImageChannel>`))
	require.NoError(t, err)
	require.Equal(t, core.Range{Supported: true, Min: 0, Max: 100}, capa.Fields[core.ImageBrightness])
	require.False(t, capa.Fields[core.ImageHue].Supported)
	require.True(t, capa.DayNight)

	s := core.ImageSettings{DayNight: core.DayNightNight}
	s.Values[core.ImageBrightness] = 60
	s.Values[core.ImageContrast] = 40

	list, err := a.SetImageSetting(m, capa, s)
	require.NoError(t, err)
	require.Equal(t, "/ISAPI/Image/channels/1", list[0].URL)
	require.Equal(t, "night", bodyText(t, list[0], "./ImageChannel/IrcutFilter/IrcutFilterType"))

	got, err := a.ParseImageSetting(capa, list[0].Body)
	require.NoError(t, err)
	require.Equal(t, s, got)

	s.Values[core.ImageBrightness] = 101
	_, err = a.SetImageSetting(m, capa, s)
	require.True(t, errors.Is(err, errors.NotValid))

	_, err = a.SetImageSetting(m, core.ImageCapability{}, s)
	require.Equal(t, core.FeatureNotSupported, core.ResultOf(err))

	capa, err = newB().ParseImageCapability([]byte(`<ImageSettings><Brightness><Min>0</Min><Max>255</Max></Brightness><WideDynamic><Min>1</Min><Max>3</Max></WideDynamic></ImageSettings>`))
	require.NoError(t, err)
	require.Equal(t, 255, capa.Fields[core.ImageBrightness].Max)
	require.Equal(t, core.Range{Supported: true, Min: 1, Max: 3}, capa.Fields[core.ImageWDR])
	require.False(t, capa.DayNight)

	_, err = newB().ParseImageCapability([]byte(`<ImageSettings><Brightness><Min>9</Min><Max>3</Max></Brightness></ImageSettings>`))
	require.True(t, errors.Is(err, errors.NotValid))
	_, err = newB().ParseImageCapability([]byte(`<ImageSettings></ImageSettings>`))
	require.True(t, errors.Is(err, errors.NotFound))
}
