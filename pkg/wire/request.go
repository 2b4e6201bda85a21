// Package wire holds what builders emit and parsers consume: wire requests,
// a bounded output buffer, a response cursor and the collaborators used to
// stage request bodies.
package wire

import (
	"strings"
)

const (
	MethodGet    = "GET"
	MethodPut    = "PUT"
	MethodPost   = "POST"
	MethodDelete = "DELETE"
)

// Protocol is how the transport must issue the request.
type Protocol uint8

const (
	ProtocolHTTP Protocol = iota
	// ProtocolRTSP is an RTSP session with TCP-interleaved media.
	ProtocolRTSP
)

func (p Protocol) String() string {
	if p == ProtocolRTSP {
		return "rtsp/tcp"
	}
	return "http"
}

func (p Protocol) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Auth is the authentication scheme the transport must apply.
type Auth uint8

const (
	AuthNone Auth = iota
	AuthBasic
	AuthDigest
)

func (a Auth) String() string {
	switch a {
	case AuthBasic:
		return "basic"
	case AuthDigest:
		return "digest"
	}
	return "none"
}

func (a Auth) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Request is one element of the ordered list a builder returns. It is never
// modified after the builder returns it.
type Request struct {
	Method   string   `json:"method"`
	Protocol Protocol `json:"protocol"`
	Auth     Auth     `json:"auth"`
	// URL is a path with an optional query string, relative to the camera address.
	URL         string            `json:"url"`
	Body        []byte            `json:"body,omitempty"`
	BodyRef     string            `json:"body_ref,omitempty"`
	BodyLen     int               `json:"body_len,omitempty"`
	ContentType string            `json:"content_type,omitempty"`
	Header      map[string]string `json:"header,omitempty"`
}

// Path returns the URL without its query string.
func (r *Request) Path() string {
	if i := strings.IndexByte(r.URL, '?'); i >= 0 {
		return r.URL[:i]
	}
	return r.URL
}

// Query returns the raw query string without '?'.
func (r *Request) Query() string {
	if i := strings.IndexByte(r.URL, '?'); i >= 0 {
		return r.URL[i+1:]
	}
	return ""
}

// Get returns an HTTP GET request with digest auth.
func Get(url string) Request {
	return Request{Method: MethodGet, Protocol: ProtocolHTTP, Auth: AuthDigest, URL: url}
}

// RTSP returns a TCP-interleaved media session request.
func RTSP(url string) Request {
	return Request{Method: "DESCRIBE", Protocol: ProtocolRTSP, Auth: AuthDigest, URL: url}
}
