package wire

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/juju/errors"
)

// Stager stores a request body under a unique name so the transport can
// stream it later. It returns the reference the transport resolves.
type Stager interface {
	Stage(name string, body []byte) (ref string, err error)
}

// FileStager writes bodies into Dir.
type FileStager struct {
	Dir string
}

func (s FileStager) Stage(name string, body []byte) (string, error) {
	path := filepath.Join(s.Dir, filepath.Base(name))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return "", errors.Annotatef(err, "scratch %s", path)
	}

	n, err := f.Write(body)
	if err == nil && n != len(body) {
		err = io.ErrShortWrite
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", errors.Annotatef(err, "scratch %s", path)
	}

	return path, nil
}

// MemoryStager keeps bodies in memory, keyed by name.
type MemoryStager struct {
	bodies sync.Map
}

func (s *MemoryStager) Stage(name string, body []byte) (string, error) {
	b := make([]byte, len(body))
	copy(b, body)
	if _, loaded := s.bodies.LoadOrStore(name, b); loaded {
		return "", errors.AlreadyExistsf("scratch %s", name)
	}
	return name, nil
}

// Load returns a staged body.
func (s *MemoryStager) Load(ref string) ([]byte, bool) {
	v, ok := s.bodies.Load(ref)
	if !ok {
		return nil, false
	}
	return v.([]byte), true
}

// Len returns the number of staged bodies.
func (s *MemoryStager) Len() int {
	n := 0
	s.bodies.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
