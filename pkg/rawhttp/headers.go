package rawhttp

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/indigo-web/utils/uf"

	"github.com/rawhttpgo/core/internal/scan"
)

// HeaderEntry is one (name, value) pair as it appeared on the wire, with
// the name's original casing preserved.
type HeaderEntry struct {
	Name  string
	Value string
}

// RawHTTPHeaders is an ordered, case-insensitive, repeatable-key multi-map
// of header fields. Lookup is case-insensitive; iteration (Entries) and
// Get both preserve insertion order, including repeated names.
//
// It generalizes shapestone-shape-http's flat Headers []Header
// (pkg/http/types.go) and indigo-web-indigo's kv.Storage linear-scan
// container (kv/storage.go) by keeping a
// parallel uppercase-name index alongside the insertion-ordered vector,
// since these containers are read far more often than they are built.
type RawHTTPHeaders struct {
	entries []HeaderEntry
	index   map[string][]int
}

// Entries returns the header entries in insertion order. The returned
// slice must not be mutated.
func (h RawHTTPHeaders) Entries() []HeaderEntry {
	return h.entries
}

// Len returns the number of header entries, counting repeats.
func (h RawHTTPHeaders) Len() int {
	return len(h.entries)
}

// Get returns the ordered list of values for name, matched
// case-insensitively. It returns an empty (nil) slice, never an error,
// when the name is absent.
func (h RawHTTPHeaders) Get(name string) []string {
	idxs := h.index[strings.ToUpper(name)]
	if len(idxs) == 0 {
		return nil
	}
	values := make([]string, len(idxs))
	for i, idx := range idxs {
		values[i] = h.entries[idx].Value
	}
	return values
}

// AsMap returns every header keyed by its uppercased name, preserving
// per-key insertion order for repeated names.
func (h RawHTTPHeaders) AsMap() map[string][]string {
	out := make(map[string][]string, len(h.index))
	for upper, idxs := range h.index {
		values := make([]string, len(idxs))
		for i, idx := range idxs {
			values[i] = h.entries[idx].Value
		}
		out[upper] = values
	}
	return out
}

// HeadersBuilder accumulates header entries before they are frozen into a
// RawHTTPHeaders. It performs no character-class or length validation of
// its own — that happens while reading field-lines off the wire, in
// ParseHeaders; a Builder populated directly from code is trusted by its
// caller.
type HeadersBuilder struct {
	entries []HeaderEntry
	index   map[string][]int
}

// NewHeadersBuilder returns an empty HeadersBuilder.
func NewHeadersBuilder() *HeadersBuilder {
	return &HeadersBuilder{index: make(map[string][]int)}
}

// With appends a new (name, value) entry, preserving any existing entries
// for the same name.
func (b *HeadersBuilder) With(name, value string) *HeadersBuilder {
	upper := strings.ToUpper(name)
	b.index[upper] = append(b.index[upper], len(b.entries))
	b.entries = append(b.entries, HeaderEntry{Name: name, Value: value})
	return b
}

// Overwrite removes every existing entry whose name matches
// case-insensitively, then appends a single new (name, value) entry.
func (b *HeadersBuilder) Overwrite(name, value string) *HeadersBuilder {
	upper := strings.ToUpper(name)
	if _, exists := b.index[upper]; exists {
		filtered := b.entries[:0:0]
		for _, e := range b.entries {
			if strings.ToUpper(e.Name) != upper {
				filtered = append(filtered, e)
			}
		}
		b.entries = filtered
		b.reindex()
	}
	b.index[upper] = append(b.index[upper], len(b.entries))
	b.entries = append(b.entries, HeaderEntry{Name: name, Value: value})
	return b
}

func (b *HeadersBuilder) reindex() {
	b.index = make(map[string][]int, len(b.index))
	for i, e := range b.entries {
		upper := strings.ToUpper(e.Name)
		b.index[upper] = append(b.index[upper], i)
	}
}

// Build freezes the builder into a RawHTTPHeaders. The builder remains
// usable afterward; its internal slices are copied defensively.
func (b *HeadersBuilder) Build() RawHTTPHeaders {
	entries := make([]HeaderEntry, len(b.entries))
	copy(entries, b.entries)
	index := make(map[string][]int, len(b.index))
	for k, v := range b.index {
		idxs := make([]int, len(v))
		copy(idxs, v)
		index[k] = idxs
	}
	return RawHTTPHeaders{entries: entries, index: index}
}

// maxHeaderLineLength bounds a single wire line read while scanning
// headers; the name/value caps in Options are enforced separately, after a
// line has been split on its first colon.
const maxHeaderLineLength = MaxHeaderFieldLength

// ParseHeaders reads field-lines from src until an empty line or EOF,
// validating each name and value against RFC 7230's tchar and
// ISO-8859-1-minus-controls character classes and the configured length
// caps, and returns the frozen result. errorFactory decides which error
// family (InvalidHTTPRequest or InvalidHTTPHeader) a violation raises; in
// ordinary use that is HeaderErrorFactory.
func ParseHeaders(src io.Reader, opts Options, errorFactory ErrorFactory) (RawHTTPHeaders, error) {
	s := scan.New(src)
	builder := NewHeadersBuilder()

	for {
		lineNum := s.Line()
		line, err := s.ReadLine(maxHeaderLineLength, opts.AllowNewLineWithoutReturn)
		if err == scan.ErrNoContent {
			break
		}
		if err == scan.ErrLineTooLong {
			return RawHTTPHeaders{}, errorFactory("Header line is too long", lineNum)
		}
		if err != nil {
			return RawHTTPHeaders{}, err
		}
		if len(line) == 0 {
			break
		}

		colon := bytes.IndexByte(line, ':')
		if colon < 0 {
			return RawHTTPHeaders{}, errorFactory(
				fmt.Sprintf("Illegal character in HTTP header name: missing ':' in '%s'", string(line)), lineNum)
		}

		name := line[:colon]
		for i, b := range name {
			if !scan.IsTChar(b) {
				return RawHTTPHeaders{}, errorFactory(
					fmt.Sprintf("Illegal character in HTTP header name at index %d: '%s'", i, string(name[i:])), lineNum)
			}
		}
		if len(name) > opts.MaxHeaderNameLength {
			return RawHTTPHeaders{}, errorFactory("Header name is too long", lineNum)
		}

		value := scan.TrimOWS(line[colon+1:])
		for i, b := range value {
			if !scan.IsHeaderValueChar(b) {
				return RawHTTPHeaders{}, errorFactory(
					fmt.Sprintf("Illegal character in HTTP header value at index %d: '%s'", i, string(value[i:])), lineNum)
			}
		}
		if len(value) > opts.MaxHeaderValueLength {
			return RawHTTPHeaders{}, errorFactory("Header value is too long", lineNum)
		}

		builder.With(uf.B2S(name), uf.B2S(value))
	}

	built := builder.Build()
	if opts.HeaderValidator != nil {
		if err := opts.HeaderValidator(built); err != nil {
			return RawHTTPHeaders{}, err
		}
	}
	return built, nil
}
