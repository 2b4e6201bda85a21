// Package cgi speaks the native MATRIX dialect: query-string requests under
// /matrix-cgi/ answered by line-oriented key=value text.
package cgi

import (
	"strconv"

	"github.com/juju/errors"

	"github.com/use-go/camdrv/pkg/core"
	"github.com/use-go/camdrv/pkg/wire"
)

const pathPrefix = "/matrix-cgi/"

// Protocol builds and parses native CGI requests. It is safe for concurrent use.
type Protocol struct {
	deps wire.Deps
}

func New(deps wire.Deps) *Protocol {
	return &Protocol{deps: deps.WithDefaults()}
}

// query starts /matrix-cgi/<name>?action=<verb>.
func query(name, verb string) *wire.Query {
	return wire.NewQuery(pathPrefix + name).Action(verb)
}

// single finishes a one-request GET list.
func single(q *wire.Query) ([]wire.Request, error) {
	u, err := q.String()
	if err != nil {
		return nil, errors.Trace(err)
	}
	return []wire.Request{wire.Get(u)}, nil
}

// response checks response-code and returns a cursor over the body.
func response(b []byte) (wire.Cursor, error) {
	c := wire.NewCursor(b)
	code, ok := c.Value("response-code")
	if !ok {
		return c, core.MissingField("response-code")
	}
	if code != "0" {
		msg, _ := c.Value("response-message")
		return c, errors.Trace(&core.StatusError{Code: code, Message: msg})
	}
	return c, nil
}

// ParseAck checks the status of a response to a set request.
func (p *Protocol) ParseAck(b []byte) error {
	_, err := response(b)
	return err
}

func required(c wire.Cursor, key string) (string, error) {
	v, ok := c.Value(key)
	if !ok {
		return "", core.MissingField(key)
	}
	return v, nil
}

func requiredInt(c wire.Cursor, key string) (int, error) {
	v, err := required(c, key)
	if err != nil {
		return 0, err
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, core.InvalidField(key, v)
	}
	return i, nil
}

func parseSwitch(key, v string) (bool, error) {
	switch v {
	case "on", "1":
		return true, nil
	case "off", "0":
		return false, nil
	}
	return false, core.InvalidField(key, v)
}

var codecTokens = map[core.VideoCodec]string{
	core.CodecMJPEG: "mjpeg",
	core.CodecH264:  "h264",
	core.CodecH265:  "h265",
}

func parseCodec(v string) (core.VideoCodec, error) {
	for c, s := range codecTokens {
		if s == v {
			return c, nil
		}
	}
	return core.CodecNone, core.InvalidField("codec", v)
}

var osdPositions = [...]string{
	core.OSDTopLeft:     "topleft",
	core.OSDTopRight:    "topright",
	core.OSDBottomLeft:  "bottomleft",
	core.OSDBottomRight: "bottomright",
}

var dateFormats = [...]string{
	core.DateDDMMYYYY: "ddmmyyyy",
	core.DateMMDDYYYY: "mmddyyyy",
	core.DateYYYYMMDD: "yyyymmdd",
}

var timeFormats = [...]string{
	core.Time24Hour: "24hour",
	core.Time12Hour: "12hour",
}

var dayNightModes = [...]string{
	core.DayNightAuto:  "auto",
	core.DayNightDay:   "color",
	core.DayNightNight: "blackwhite",
}

var imageKeys = [core.ImageFieldCount]string{
	core.ImageBrightness: "brightness",
	core.ImageContrast:   "contrast",
	core.ImageSaturation: "saturation",
	core.ImageHue:        "hue",
	core.ImageSharpness:  "sharpness",
	core.ImageWDR:        "wdrstrength",
}

var eventKeys = [core.EventCount]string{
	core.EventMotion:         "motion",
	core.EventTamper:         "tamper",
	core.EventLineCross:      "linecross",
	core.EventIntrusion:      "intrusion",
	core.EventLoitering:      "loitering",
	core.EventObjectCount:    "objectcount",
	core.EventNoMotion:       "nomotion",
	core.EventAudioException: "audioexception",
	core.EventAlarmIn1:       "alarmin1",
	core.EventAlarmIn2:       "alarmin2",
}

// lookup returns the table entry or an error for values outside it.
func lookup(table []string, i int, name string) (string, error) {
	if i < 0 || i >= len(table) {
		return "", errors.NotValidf("%s %d", name, i)
	}
	return table[i], nil
}

func index(table []string, v string) (int, bool) {
	for i, s := range table {
		if s == v {
			return i, true
		}
	}
	return 0, false
}
