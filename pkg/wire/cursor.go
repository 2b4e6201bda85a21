package wire

import (
	"bytes"
	"html"
	"strings"
)

// Cursor reads values out of a camera response without ever indexing past
// the end of the buffer. It understands line-oriented key=value text and XML
// fragments with or without namespace prefixes.
type Cursor struct {
	b []byte
}

func NewCursor(b []byte) Cursor {
	return Cursor{b: b}
}

func (c Cursor) Bytes() []byte { return c.b }
func (c Cursor) Empty() bool   { return len(bytes.TrimSpace(c.b)) == 0 }

// Each calls fn for every "key=value" line until fn returns false. Lines
// without '=' are skipped. CR before LF is dropped.
func (c Cursor) Each(fn func(key, value string) bool) {
	rest := c.b
	for len(rest) > 0 {
		var line []byte
		if i := bytes.IndexByte(rest, '\n'); i >= 0 {
			line, rest = rest[:i], rest[i+1:]
		} else {
			line, rest = rest, nil
		}
		line = bytes.TrimRight(line, "\r")
		i := bytes.IndexByte(line, '=')
		if i <= 0 {
			continue
		}
		key := strings.TrimSpace(string(line[:i]))
		if !fn(key, strings.TrimSpace(string(line[i+1:]))) {
			return
		}
	}
}

// Value returns the value of the first line starting with key followed by '='.
func (c Cursor) Value(key string) (value string, ok bool) {
	c.Each(func(k, v string) bool {
		if k == key {
			value, ok = v, true
			return false
		}
		return true
	})
	return
}

// Tag returns the unescaped, trimmed text of the first element with the
// given local name. A self-closing element yields "" and true.
func (c Cursor) Tag(name string) (string, bool) {
	inner, _, ok := c.element(name, 0)
	if !ok {
		return "", false
	}
	return html.UnescapeString(string(bytes.TrimSpace(inner))), true
}

// Tags returns the text of every element with the given local name.
func (c Cursor) Tags(name string) []string {
	var values []string
	for from := 0; ; {
		inner, next, ok := c.element(name, from)
		if !ok {
			return values
		}
		values = append(values, html.UnescapeString(string(bytes.TrimSpace(inner))))
		from = next
	}
}

// Section returns a cursor over the content of the first element with the given local name.
func (c Cursor) Section(name string) (Cursor, bool) {
	inner, _, ok := c.element(name, 0)
	return Cursor{b: inner}, ok
}

// Sections returns a cursor for every element with the given local name.
func (c Cursor) Sections(name string) []Cursor {
	var list []Cursor
	for from := 0; ; {
		inner, next, ok := c.element(name, from)
		if !ok {
			return list
		}
		list = append(list, Cursor{b: inner})
		from = next
	}
}

// element finds the first complete element named name at or after from. It
// returns its content and the offset just past its end tag.
func (c Cursor) element(name string, from int) (inner []byte, next int, ok bool) {
	_, end, selfClosing, ok := c.openTag(name, from)
	if !ok {
		return nil, 0, false
	}
	if selfClosing {
		return c.b[end:end], end, true
	}
	closeStart, closeEnd, ok := c.closeTag(name, end)
	if !ok {
		return nil, 0, false
	}
	return c.b[end:closeStart], closeEnd, true
}

// openTag locates "<name ...>" or "<prefix:name ...>".
func (c Cursor) openTag(name string, from int) (start, end int, selfClosing, ok bool) {
	b := c.b
	for i := from; i < len(b); i++ {
		j := bytes.IndexByte(b[i:], '<')
		if j < 0 {
			return
		}
		i += j
		k := i + 1
		if k >= len(b) {
			return
		}
		if b[k] == '/' || b[k] == '?' || b[k] == '!' {
			continue
		}
		n := scanName(b, k)
		if localName(b[k:n]) != name {
			continue
		}
		gt := bytes.IndexByte(b[n:], '>')
		if gt < 0 {
			return
		}
		gt += n
		return i, gt + 1, b[gt-1] == '/', true
	}
	return
}

// closeTag locates "</name>" or "</prefix:name>".
func (c Cursor) closeTag(name string, from int) (start, end int, ok bool) {
	b := c.b
	for i := from; i < len(b); {
		j := bytes.Index(b[i:], []byte("</"))
		if j < 0 {
			return
		}
		i += j
		k := i + 2
		n := scanName(b, k)
		if localName(b[k:n]) == name {
			gt := bytes.IndexByte(b[n:], '>')
			if gt < 0 {
				return
			}
			return i, n + gt + 1, true
		}
		i = k
	}
	return
}

func scanName(b []byte, i int) int {
	for i < len(b) && isNameByte(b[i]) {
		i++
	}
	return i
}

func isNameByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '_' || c == '-' || c == '.' || c == ':'
}

func localName(qname []byte) string {
	if i := bytes.LastIndexByte(qname, ':'); i >= 0 {
		return string(qname[i+1:])
	}
	return string(qname)
}
