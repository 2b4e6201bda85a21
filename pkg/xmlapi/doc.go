package xmlapi

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/juju/errors"
	"golang.org/x/net/html/charset"

	"github.com/use-go/camdrv/pkg/core"
	"github.com/use-go/camdrv/pkg/wire"
)

// Protocol builds and parses one XML dialect. It is safe for concurrent use.
type Protocol struct {
	s    *Schema
	deps wire.Deps
}

func New(s *Schema, deps wire.Deps) *Protocol {
	return &Protocol{s: s, deps: deps.WithDefaults()}
}

func (p *Protocol) Schema() *Schema {
	return p.s
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func boolIndex(v bool) int {
	if v {
		return 1
	}
	return 0
}

// document is an outgoing body rendered from the shared schema.
type document struct {
	s    *Schema
	doc  *etree.Document
	root *etree.Element
}

func (s *Schema) newDocument(root term) *document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	el := doc.CreateElement(s.words[root])
	el.CreateAttr("version", s.Version)
	el.CreateAttr("xmlns", s.Namespace)

	return &document{s: s, doc: doc, root: el}
}

// parent returns the element holding the last path component, creating
// missing elements on the way.
func parent(el *etree.Element, path []string) *etree.Element {
	for _, name := range path {
		child := el.SelectElement(name)
		if child == nil {
			child = el.CreateElement(name)
		}
		el = child
	}
	return el
}

// add appends a new element at the path of t under el.
func (d *document) add(el *etree.Element, t term) *etree.Element {
	path := splitPath(d.s.words[t])
	if len(path) == 0 {
		return nil
	}
	return parent(el, path[:len(path)-1]).CreateElement(path[len(path)-1])
}

// set writes a text element at the path of t under el. Terms the dialect
// does not name are skipped.
func (d *document) set(el *etree.Element, t term, value string) {
	if child := d.add(el, t); child != nil {
		child.SetText(value)
	}
}

func (d *document) setInt(el *etree.Element, t term, v int) {
	d.set(el, t, strconv.Itoa(v))
}

func (d *document) setBool(el *etree.Element, t term, v bool) {
	d.set(el, t, d.s.bools[boolIndex(v)])
}

func (d *document) bytes() ([]byte, error) {
	b, err := d.doc.WriteToBytes()
	if err != nil {
		return nil, errors.Annotate(err, "render xml")
	}
	return b, nil
}

// url formats a route. Routes the dialect lacks are not supported.
func (p *Protocol) url(r route, args ...any) (string, error) {
	tmpl := p.s.routes[r]
	if tmpl == "" {
		return "", errors.NotSupportedf("operation in dialect %s", p.s.Name)
	}
	b := wire.NewBuffer(wire.MaxURL)
	if len(args) == 0 {
		_ = b.Append(tmpl)
	} else {
		_ = b.Appendf(tmpl, args...)
	}
	s, err := b.String()
	return s, errors.Trace(err)
}

func (p *Protocol) get(r route, args ...any) ([]wire.Request, error) {
	u, err := p.url(r, args...)
	if err != nil {
		return nil, err
	}
	return []wire.Request{wire.Get(u)}, nil
}

func (p *Protocol) putRequest(r route, d *document, args ...any) (wire.Request, error) {
	u, err := p.url(r, args...)
	if err != nil {
		return wire.Request{}, err
	}
	req := wire.Request{Method: wire.MethodPut, Protocol: wire.ProtocolHTTP, Auth: wire.AuthDigest, URL: u}
	if d == nil {
		return req, nil
	}

	body, err := d.bytes()
	if err != nil {
		return wire.Request{}, err
	}
	if err = p.deps.AttachBody(&req, body, p.s.ContentType, ".xml"); err != nil {
		return wire.Request{}, err
	}
	return req, nil
}

func (p *Protocol) put(r route, d *document, args ...any) ([]wire.Request, error) {
	req, err := p.putRequest(r, d, args...)
	if err != nil {
		return nil, err
	}
	return []wire.Request{req}, nil
}

// reader resolves schema terms inside a response.
type reader struct {
	s *Schema
	c wire.Cursor
}

// read checks the status element, when present, and returns a reader.
func (p *Protocol) read(b []byte) (reader, error) {
	r := reader{s: p.s, c: wire.NewCursor(b)}
	if r.c.Empty() {
		return r, errors.NotValidf("empty response")
	}
	if code, ok := r.c.Tag(p.s.words[tStatusCode]); ok && code != p.s.StatusOK {
		msg, _ := r.c.Tag(p.s.words[tStatusMessage])
		return r, errors.Trace(&core.StatusError{Code: code, Message: msg})
	}
	return r, nil
}

// ParseAck checks the status document returned for a write.
func (p *Protocol) ParseAck(b []byte) error {
	r, err := p.read(b)
	if err != nil {
		return err
	}
	if _, ok := r.c.Tag(p.s.words[tStatusCode]); !ok {
		return core.MissingField(p.s.words[tStatusCode])
	}
	return nil
}

func (r reader) word(t term) string {
	return r.s.words[t]
}

// text returns the text at the path of t.
func (r reader) text(t term) (string, bool) {
	path := splitPath(r.s.words[t])
	if len(path) == 0 {
		return "", false
	}
	c := r.c
	for _, name := range path[:len(path)-1] {
		var ok bool
		if c, ok = c.Section(name); !ok {
			return "", false
		}
	}
	return c.Tag(path[len(path)-1])
}

func (r reader) required(t term) (string, error) {
	v, ok := r.text(t)
	if !ok {
		return "", core.MissingField(r.word(t))
	}
	return v, nil
}

func (r reader) requiredInt(t term) (int, error) {
	v, err := r.required(t)
	if err != nil {
		return 0, err
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, core.InvalidField(r.word(t), v)
	}
	return i, nil
}

func (r reader) requiredBool(t term) (bool, error) {
	v, err := r.required(t)
	if err != nil {
		return false, err
	}
	return r.s.parseBool(r.word(t), v)
}

// sections returns a reader for every element at the path of t.
func (r reader) sections(t term) []reader {
	path := splitPath(r.s.words[t])
	if len(path) == 0 {
		return nil
	}
	c := r.c
	for _, name := range path[:len(path)-1] {
		var ok bool
		if c, ok = c.Section(name); !ok {
			return nil
		}
	}
	var list []reader
	for _, sc := range c.Sections(path[len(path)-1]) {
		list = append(list, reader{s: r.s, c: sc})
	}
	return list
}

func (s *Schema) parseBool(name, v string) (bool, error) {
	switch v {
	case s.bools[1]:
		return true, nil
	case s.bools[0]:
		return false, nil
	}
	return false, core.InvalidField(name, v)
}

// parseTree reads a list-heavy response into an element tree. Cameras of
// both dialects may answer in a legacy charset.
func (p *Protocol) parseTree(b []byte) (*etree.Element, error) {
	if _, err := p.read(b); err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if err := doc.ReadFromBytes(b); err != nil {
		return nil, errors.NewNotValid(err, "xml response")
	}
	root := doc.Root()
	if root == nil {
		return nil, errors.NotValidf("xml response without root")
	}
	return root, nil
}

// find walks the path of t from el.
func (s *Schema) find(el *etree.Element, t term) *etree.Element {
	for _, name := range splitPath(s.words[t]) {
		if el == nil {
			return nil
		}
		el = el.SelectElement(name)
	}
	return el
}

// findAll returns every element at the path of t under el.
func (s *Schema) findAll(el *etree.Element, t term) []*etree.Element {
	path := splitPath(s.words[t])
	if len(path) == 0 {
		return nil
	}
	for _, name := range path[:len(path)-1] {
		if el = el.SelectElement(name); el == nil {
			return nil
		}
	}
	return el.SelectElements(path[len(path)-1])
}

func (s *Schema) intAt(el *etree.Element, t term) (int, error) {
	child := s.find(el, t)
	if child == nil {
		return 0, core.MissingField(s.words[t])
	}
	v := strings.TrimSpace(child.Text())
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, core.InvalidField(s.words[t], v)
	}
	return i, nil
}

// lookup returns the table entry or an error for values outside it.
func lookup(table []string, i int, name string) (string, error) {
	if i < 0 || i >= len(table) || table[i] == "" {
		return "", errors.NotValidf("%s %d", name, i)
	}
	return table[i], nil
}

func index(table []string, v string) (int, bool) {
	for i, s := range table {
		if s != "" && s == v {
			return i, true
		}
	}
	return 0, false
}
