package rawhttp

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/rawhttpgo/core/internal/chunked"
)

// LazyBodyReader is a single-use forward stream over a message body.
// Constructing one performs no I/O; the first call to Read invokes the
// supplied open function and every subsequent call reads from what it
// returned.
type LazyBodyReader struct {
	open func() (io.Reader, error)
	once sync.Once
	r    io.Reader
	err  error
}

// NewLazyBodyReader wraps open, deferring its invocation to the first Read.
func NewLazyBodyReader(open func() (io.Reader, error)) *LazyBodyReader {
	return &LazyBodyReader{open: open}
}

func (l *LazyBodyReader) Read(p []byte) (int, error) {
	l.once.Do(func() {
		l.r, l.err = l.open()
	})
	if l.err != nil {
		return 0, l.err
	}
	return l.r.Read(p)
}

// BodyDecoder names an ordered chain of transfer/content-coding
// identifiers (e.g. ["chunked", "gzip"]) applied outermost-first on the
// wire to produce the logical body.
type BodyDecoder struct {
	encodings []string
}

// NewBodyDecoder returns a BodyDecoder for the given chain, outermost
// encoding first.
func NewBodyDecoder(encodings ...string) BodyDecoder {
	return BodyDecoder{encodings: encodings}
}

// Encodings returns the encoding chain in wire order.
func (d BodyDecoder) Encodings() []string {
	return d.encodings
}

// HTTPMessageBody is the polymorphic message-body value. Four concrete
// types implement it: *BytesBody, *FileBody, *ChunkedBody and
// *EncodedBody, standing in for the union {eager bytes, file-backed,
// chunked-stream, encoded-chain} idiomatically, in place of a tagged
// union.
type HTTPMessageBody interface {
	ContentType() (mediaType string, ok bool)
	ContentLength() (length int64, ok bool)
	ToBodyReader() (*LazyBodyReader, error)
	Decoder() (decoder BodyDecoder, ok bool)
	HeadersFrom(input RawHTTPHeaders) RawHTTPHeaders
}

// headersFrom implements the one HeadersFrom algorithm every
// HTTPMessageBody variant shares: content-type and content-length are
// each independently overwritten when known, and a non-empty encoding
// chain overwrites Transfer-Encoding. It never strips a stale
// Content-Length itself when Transfer-Encoding is set — the body value
// that produced it decides, matching rawhttp-core's
// HttpMessageBody.headersFrom (see original_source).
func headersFrom(b HTTPMessageBody, input RawHTTPHeaders) RawHTTPHeaders {
	builder := NewHeadersBuilder()
	for _, e := range input.Entries() {
		builder.With(e.Name, e.Value)
	}

	if mediaType, ok := b.ContentType(); ok {
		builder.Overwrite("Content-Type", mediaType)
	}
	if length, ok := b.ContentLength(); ok {
		builder.Overwrite("Content-Length", strconv.FormatInt(length, 10))
	}
	if decoder, ok := b.Decoder(); ok && len(decoder.Encodings()) > 0 {
		builder.Overwrite("Transfer-Encoding", strings.Join(decoder.Encodings(), ","))
	}

	return builder.Build()
}

// BytesBody is the eager, fully in-memory body variant.
type BytesBody struct {
	Data         []byte
	MediaType    string
	HasMediaType bool
}

// NewBytesBody returns a BytesBody over data with the given media type.
// An empty mediaType means "unset", not "empty string content type".
func NewBytesBody(data []byte, mediaType string) *BytesBody {
	return &BytesBody{Data: data, MediaType: mediaType, HasMediaType: mediaType != ""}
}

func (b *BytesBody) ContentType() (string, bool)  { return b.MediaType, b.HasMediaType }
func (b *BytesBody) ContentLength() (int64, bool) { return int64(len(b.Data)), true }
func (b *BytesBody) Decoder() (BodyDecoder, bool) { return BodyDecoder{}, false }

func (b *BytesBody) ToBodyReader() (*LazyBodyReader, error) {
	return NewLazyBodyReader(func() (io.Reader, error) {
		return bytes.NewReader(b.Data), nil
	}), nil
}

func (b *BytesBody) HeadersFrom(input RawHTTPHeaders) RawHTTPHeaders {
	return headersFrom(b, input)
}

// FileBody is the file-backed body variant; the file is opened lazily, at
// first read, not at construction.
type FileBody struct {
	Path         string
	MediaType    string
	HasMediaType bool
	Size         int64
	HasSize      bool
}

// NewFileBody returns a FileBody for path. size < 0 means the length is
// unknown ahead of time.
func NewFileBody(path, mediaType string, size int64) *FileBody {
	return &FileBody{
		Path:         path,
		MediaType:    mediaType,
		HasMediaType: mediaType != "",
		Size:         size,
		HasSize:      size >= 0,
	}
}

func (b *FileBody) ContentType() (string, bool)  { return b.MediaType, b.HasMediaType }
func (b *FileBody) ContentLength() (int64, bool) { return b.Size, b.HasSize }
func (b *FileBody) Decoder() (BodyDecoder, bool) { return BodyDecoder{}, false }

func (b *FileBody) ToBodyReader() (*LazyBodyReader, error) {
	return NewLazyBodyReader(func() (io.Reader, error) {
		return os.Open(b.Path)
	}), nil
}

func (b *FileBody) HeadersFrom(input RawHTTPHeaders) RawHTTPHeaders {
	return headersFrom(b, input)
}

// ChunkedBody is the chunked-transfer-coded streaming variant: its length
// is unknown ahead of time, and ToBodyReader drives the still-encoded
// source through internal/chunked's Dechunker, which in turn wraps
// github.com/indigo-web/chunkedbody.
type ChunkedBody struct {
	Source       io.Reader
	MediaType    string
	HasMediaType bool
}

// NewChunkedBody returns a ChunkedBody reading the still chunk-encoded
// bytes from source.
func NewChunkedBody(source io.Reader, mediaType string) *ChunkedBody {
	return &ChunkedBody{Source: source, MediaType: mediaType, HasMediaType: mediaType != ""}
}

func (b *ChunkedBody) ContentType() (string, bool)  { return b.MediaType, b.HasMediaType }
func (b *ChunkedBody) ContentLength() (int64, bool) { return 0, false }
func (b *ChunkedBody) Decoder() (BodyDecoder, bool) { return NewBodyDecoder("chunked"), true }

func (b *ChunkedBody) ToBodyReader() (*LazyBodyReader, error) {
	return NewLazyBodyReader(func() (io.Reader, error) {
		return chunked.New(b.Source), nil
	}), nil
}

func (b *ChunkedBody) HeadersFrom(input RawHTTPHeaders) RawHTTPHeaders {
	return headersFrom(b, input)
}

// EncodedBody composes an inner body with an additional decoding chain
// applied outermost-first on the wire, e.g. ["chunked", "gzip"] meaning
// "chunked-decode, then gunzip". gzip/deflate are decoded with stdlib
// compress/gzip and compress/flate: there is no third-party compression
// library anywhere in the retrieval pack to prefer over stdlib for this
// leaf (see SPEC_FULL.md §4.5).
type EncodedBody struct {
	Inner     HTTPMessageBody
	Encodings []string
}

// NewEncodedBody returns an EncodedBody wrapping inner with the given
// outermost-first encoding chain.
func NewEncodedBody(inner HTTPMessageBody, encodings ...string) *EncodedBody {
	return &EncodedBody{Inner: inner, Encodings: encodings}
}

func (b *EncodedBody) ContentType() (string, bool)  { return b.Inner.ContentType() }
func (b *EncodedBody) ContentLength() (int64, bool) { return b.Inner.ContentLength() }

func (b *EncodedBody) Decoder() (BodyDecoder, bool) {
	if len(b.Encodings) == 0 {
		return BodyDecoder{}, false
	}
	return NewBodyDecoder(b.Encodings...), true
}

func (b *EncodedBody) ToBodyReader() (*LazyBodyReader, error) {
	return NewLazyBodyReader(func() (io.Reader, error) {
		inner, err := b.Inner.ToBodyReader()
		if err != nil {
			return nil, err
		}
		var r io.Reader = inner
		for _, encoding := range b.Encodings {
			switch encoding {
			case "chunked":
				r = chunked.New(r)
			case "gzip":
				gr, err := gzip.NewReader(r)
				if err != nil {
					return nil, err
				}
				r = gr
			case "deflate":
				r = flate.NewReader(r)
			case "identity":
				// no-op coding, RFC 7231 §5.3.4
			default:
				return nil, fmt.Errorf("unrecognized transfer/content coding %q", encoding)
			}
		}
		return r, nil
	}), nil
}

func (b *EncodedBody) HeadersFrom(input RawHTTPHeaders) RawHTTPHeaders {
	return headersFrom(b, input)
}
