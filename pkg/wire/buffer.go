package wire

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/juju/errors"
)

// Size limits applied by the builders.
const (
	MaxURL  = 512
	MaxBody = 16 * 1024
)

// Buffer is an append-only byte buffer with a hard limit. An append that
// would cross the limit fails and poisons the buffer; nothing is truncated.
type Buffer struct {
	buf   []byte
	limit int
	err   error
}

func NewBuffer(limit int) *Buffer {
	return &Buffer{buf: make([]byte, 0, min(limit, 1024)), limit: limit}
}

func (b *Buffer) grow(n int) bool {
	if b.err != nil {
		return false
	}
	if len(b.buf)+n > b.limit {
		b.err = errors.NotValidf("output of %d bytes over %d byte limit", len(b.buf)+n, b.limit)
		return false
	}
	return true
}

// Append writes every string or nothing.
func (b *Buffer) Append(args ...string) error {
	n := 0
	for _, s := range args {
		n += len(s)
	}
	if !b.grow(n) {
		return b.err
	}
	for _, s := range args {
		b.buf = append(b.buf, s...)
	}
	return nil
}

// AppendBytes writes p or nothing.
func (b *Buffer) AppendBytes(p []byte) error {
	if !b.grow(len(p)) {
		return b.err
	}
	b.buf = append(b.buf, p...)
	return nil
}

// Appendf formats into the buffer or writes nothing.
func (b *Buffer) Appendf(format string, args ...any) error {
	if b.err != nil {
		return b.err
	}
	return b.Append(fmt.Sprintf(format, args...))
}

// AppendInt writes the decimal form of i.
func (b *Buffer) AppendInt(i int) error {
	return b.Append(strconv.Itoa(i))
}

// Err returns the first overflow, if any.
func (b *Buffer) Err() error {
	return b.err
}

func (b *Buffer) Len() int {
	return len(b.buf)
}

// Bytes returns the content, or the overflow error.
func (b *Buffer) Bytes() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.buf, nil
}

// String returns the content, or the overflow error.
func (b *Buffer) String() (string, error) {
	if b.err != nil {
		return "", b.err
	}
	return string(b.buf), nil
}

// Query builds "path?k1=v1&k2=v2" inside a bounded buffer. Values are
// query-escaped; keys are written as given.
type Query struct {
	buf    *Buffer
	params int
}

// NewQuery starts a query for path limited to MaxURL bytes.
func NewQuery(path string) *Query {
	return NewQueryLimit(path, MaxURL)
}

func NewQueryLimit(path string, limit int) *Query {
	q := &Query{buf: NewBuffer(limit)}
	_ = q.buf.Append(path)
	return q
}

// Action is shorthand for Add("action", verb).
func (q *Query) Action(verb string) *Query {
	return q.Add("action", verb)
}

func (q *Query) Add(key, value string) *Query {
	sep := "&"
	if q.params == 0 {
		sep = "?"
	}
	q.params++
	_ = q.buf.Append(sep, key, "=", url.QueryEscape(value))
	return q
}

func (q *Query) AddInt(key string, value int) *Query {
	return q.Add(key, strconv.Itoa(value))
}

// AddBool writes on/off.
func (q *Query) AddBool(key string, value bool) *Query {
	if value {
		return q.Add(key, "on")
	}
	return q.Add(key, "off")
}

// String returns the URL or the overflow error.
func (q *Query) String() (string, error) {
	return q.buf.String()
}
