package rawhttp

import (
	"io"
	"strings"

	"github.com/rawhttpgo/core/internal/uri"
)

// MetadataParser parses request-lines, status-lines, request targets and
// header field-lines according to a fixed Options configuration. A
// MetadataParser holds no mutable state beyond its Options, so a single
// value may be shared across goroutines, each parsing its own byte source.
type MetadataParser struct {
	options Options
}

// NewMetadataParser returns a MetadataParser configured with options.
func NewMetadataParser(options Options) *MetadataParser {
	return &MetadataParser{options: options}
}

// DefaultMetadataParser returns a MetadataParser configured with
// DefaultOptions.
func DefaultMetadataParser() *MetadataParser {
	return NewMetadataParser(DefaultOptions())
}

// ParseRequestLine parses text as a request-line, honoring the leading
// empty-line tolerance and other leniency switches in the parser's
// Options. Errors are *InvalidHTTPRequest.
func (p *MetadataParser) ParseRequestLine(text string) (RequestLine, error) {
	return parseRequestLine(text, p.options, RequestErrorFactory)
}

// ParseResponseLine parses text as a status-line. Errors are
// *InvalidHTTPRequest.
func (p *MetadataParser) ParseResponseLine(text string) (StatusLine, error) {
	return parseResponseLine(text, p.options, RequestErrorFactory)
}

// ParseHeaders reads field-lines from src until an empty line or EOF.
// errorFactory decides which error family a violation raises.
func (p *MetadataParser) ParseHeaders(src io.Reader, errorFactory func(message string, lineNumber int) error) (RawHTTPHeaders, error) {
	return ParseHeaders(src, p.options, ErrorFactory(errorFactory))
}

// ParseURI parses target as a request-target or absolute URI reference,
// applying this parser's AllowIllegalStartLineCharacters setting.
func (p *MetadataParser) ParseURI(target string) (Uri, error) {
	u, err := uri.Parse(target, p.options.AllowIllegalStartLineCharacters)
	if err != nil {
		if uerr, ok := err.(*uri.Error); ok {
			return Uri{}, &InvalidHTTPRequest{Message: "Invalid request target: " + uerr.Error(), LineNumber: 1}
		}
		return Uri{}, err
	}
	return u, nil
}

// ParseQueryString splits raw on '&' and, within each pair, once on '='.
// Percent-decoding is not applied; the returned values are raw. Duplicate
// keys accumulate in insertion order. An absent '=' means a present key
// with no values at all, distinct from an empty value after a bare '='.
func ParseQueryString(raw string) (map[string][]string, error) {
	result := make(map[string][]string)
	if raw == "" {
		return result, nil
	}

	order := make([]string, 0)
	seen := make(map[string]bool)

	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		eq := strings.IndexByte(pair, '=')
		var key string
		var value *string
		if eq < 0 {
			key = pair
		} else {
			key = pair[:eq]
			v := pair[eq+1:]
			value = &v
		}
		if !seen[key] {
			seen[key] = true
			order = append(order, key)
			if _, exists := result[key]; !exists {
				result[key] = []string{}
			}
		}
		if value != nil {
			result[key] = append(result[key], *value)
		}
	}

	return result, nil
}
