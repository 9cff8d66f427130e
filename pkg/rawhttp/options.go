package rawhttp

import "math"

// MaxHeaderFieldLength is the default upper bound on header name and value
// byte lengths: effectively unbounded.
const MaxHeaderFieldLength = math.MaxInt32

// HeaderValidator inspects a fully-parsed header set and may reject it.
// It runs once, after every field-line has been parsed and admitted.
type HeaderValidator func(headers RawHTTPHeaders) error

// Options is an immutable bundle of leniency switches that controls how a
// MetadataParser reads request-lines, status-lines, request targets and
// headers. The zero value is the strictest configuration; use
// DefaultOptions for the lenient configuration most callers want.
type Options struct {
	// AllowNewLineWithoutReturn accepts a bare '\n' as a line terminator in
	// addition to CRLF. A bare '\r' is never accepted as a terminator.
	AllowNewLineWithoutReturn bool

	// IgnoreLeadingEmptyLine discards a single empty line read before the
	// start-line, a tolerance many real clients rely on.
	IgnoreLeadingEmptyLine bool

	// InsertHTTPVersionIfMissing defaults a two-token request-line
	// ("GET /path") to HTTP/1.1 instead of failing with "Missing HTTP version".
	InsertHTTPVersionIfMissing bool

	// AllowIllegalStartLineCharacters percent-encodes otherwise-illegal
	// octets in the request target (including literal spaces) instead of
	// rejecting them.
	AllowIllegalStartLineCharacters bool

	// MaxHeaderNameLength caps the byte length of a header field-name.
	MaxHeaderNameLength int

	// MaxHeaderValueLength caps the byte length of a header field-value.
	MaxHeaderValueLength int

	// HeaderValidator, if non-nil, runs once against the complete header
	// set after parsing finishes; its error propagates unchanged.
	HeaderValidator HeaderValidator
}

// DefaultOptions returns the lenient configuration: bare LF terminators,
// a tolerated leading empty line, and an inserted HTTP/1.1 version are all
// accepted; illegal start-line characters are still rejected.
func DefaultOptions() Options {
	return Options{
		AllowNewLineWithoutReturn:       true,
		IgnoreLeadingEmptyLine:          true,
		InsertHTTPVersionIfMissing:      true,
		AllowIllegalStartLineCharacters: false,
		MaxHeaderNameLength:             MaxHeaderFieldLength,
		MaxHeaderValueLength:            MaxHeaderFieldLength,
	}
}

// StrictOptions returns the configuration that rejects every leniency this
// package can tolerate: CRLF-only line endings, no leading empty line, a
// mandatory HTTP version literal, and no repair of illegal target bytes.
func StrictOptions() Options {
	return Options{
		MaxHeaderNameLength:  MaxHeaderFieldLength,
		MaxHeaderValueLength: MaxHeaderFieldLength,
	}
}
