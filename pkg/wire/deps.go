package wire

import (
	"time"

	"github.com/juju/errors"

	"github.com/use-go/camdrv/pkg/core"
)

// Clock supplies local time to the date/time builders.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the process clock in local time.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// DisplayConfig reads the platform date/time display format.
type DisplayConfig interface {
	DateFormat() core.DateFormat
	TimeFormat() core.TimeFormat
}

// Display is a static DisplayConfig.
type Display struct {
	Date core.DateFormat
	Time core.TimeFormat
}

func (d Display) DateFormat() core.DateFormat { return d.Date }
func (d Display) TimeFormat() core.TimeFormat { return d.Time }

// Deps are the collaborators a protocol needs to build requests.
type Deps struct {
	Clock   Clock
	Display DisplayConfig
	IDs     IDGenerator
	// Stager is optional; without it bodies stay inline in the request.
	Stager Stager
}

// WithDefaults fills unset collaborators.
func (d Deps) WithDefaults() Deps {
	if d.Clock == nil {
		d.Clock = SystemClock{}
	}
	if d.Display == nil {
		d.Display = Display{}
	}
	if d.IDs == nil {
		d.IDs = NewCounter("body-")
	}
	return d
}

// AttachBody puts body on req and stages it under a fresh name.
func (d Deps) AttachBody(req *Request, body []byte, contentType, ext string) error {
	if len(body) > MaxBody {
		return errors.NotValidf("body of %d bytes over %d byte limit", len(body), MaxBody)
	}

	req.Body = body
	req.BodyLen = len(body)
	req.ContentType = contentType

	if d.Stager == nil {
		return nil
	}

	ref, err := d.Stager.Stage(d.IDs.NextID()+ext, body)
	if err != nil {
		return errors.Trace(err)
	}
	req.BodyRef = ref
	return nil
}
