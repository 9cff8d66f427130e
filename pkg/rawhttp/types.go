package rawhttp

import (
	"fmt"

	"github.com/rawhttpgo/core/internal/uri"
)

// Uri is the decomposed form of a request-target or absolute URI
// reference. It is an alias for the internal uri package's result type so
// that RequestLine.URI and ParseURI share one representation without
// re-exporting a parallel struct.
type Uri = uri.URI

// HTTPVersion is one of the two versions this parser recognizes.
type HTTPVersion struct {
	Major int
	Minor int
}

var (
	HTTP10 = HTTPVersion{Major: 1, Minor: 0}
	HTTP11 = HTTPVersion{Major: 1, Minor: 1}
)

func (v HTTPVersion) String() string {
	return fmt.Sprintf("HTTP/%d.%d", v.Major, v.Minor)
}

func parseHTTPVersion(literal string) (HTTPVersion, bool) {
	switch literal {
	case "HTTP/1.0":
		return HTTP10, true
	case "HTTP/1.1":
		return HTTP11, true
	}
	return HTTPVersion{}, false
}

// RequestLine is the parsed first line of an HTTP request.
type RequestLine struct {
	Method      string
	URI         Uri
	HTTPVersion HTTPVersion
}

// String renders the canonical wire form "{method} {rawTarget} HTTP/{major}.{minor}".
func (r RequestLine) String() string {
	return fmt.Sprintf("%s %s %s", r.Method, r.URI.String(), r.HTTPVersion.String())
}

// StatusLine is the parsed first line of an HTTP response.
type StatusLine struct {
	HTTPVersion  HTTPVersion
	StatusCode   int
	ReasonPhrase string
}

// String renders the canonical wire form "HTTP/{major}.{minor} {code} {reason}".
func (s StatusLine) String() string {
	return fmt.Sprintf("%s %03d %s", s.HTTPVersion.String(), s.StatusCode, s.ReasonPhrase)
}
