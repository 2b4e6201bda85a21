package wire

import (
	"strconv"
	"sync/atomic"

	"github.com/elgs/gostrgen"
	"github.com/gofrs/uuid"
)

// IDGenerator names scratch bodies. Implementations must be safe for
// concurrent use. Counter never repeats a name; UUIDs and RandomIDs are
// random draws and only practically unique.
type IDGenerator interface {
	NextID() string
}

// Counter returns prefix1, prefix2, ...
type Counter struct {
	Prefix string
	n      atomic.Uint64
}

func NewCounter(prefix string) *Counter {
	return &Counter{Prefix: prefix}
}

func (c *Counter) NextID() string {
	return c.Prefix + strconv.FormatUint(c.n.Add(1), 10)
}

// UUIDs returns random version 4 UUIDs.
type UUIDs struct{}

func (UUIDs) NextID() string {
	return uuid.Must(uuid.NewV4()).String()
}

// RandomIDs returns lower-case alphanumeric names of Size characters, or a
// UUID when the random source fails.
type RandomIDs struct {
	Size int
}

func (r RandomIDs) NextID() string {
	size := r.Size
	if size <= 0 {
		size = 16
	}
	s, err := gostrgen.RandGen(size, gostrgen.LowerDigit, "", "")
	if err != nil {
		return UUIDs{}.NextID()
	}
	return s
}
