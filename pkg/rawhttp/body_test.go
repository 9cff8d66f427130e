package rawhttp

import (
	"io"
	"strings"
	"testing"
)

func TestBytesBody_ToBodyReaderYieldsExactBytes(t *testing.T) {
	body := NewBytesBody([]byte("hello"), "text/plain")

	reader, err := body.ToBodyReader()
	if err != nil {
		t.Fatalf("ToBodyReader() error = %v", err)
	}
	got, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}

func TestBytesBody_HeadersFrom_SetsContentTypeAndLength(t *testing.T) {
	body := NewBytesBody([]byte("hello"), "text/plain")
	input := NewHeadersBuilder().With("X-Request-Id", "1").Build()

	headers := body.HeadersFrom(input)

	if got := headers.Get("Content-Type"); len(got) != 1 || got[0] != "text/plain" {
		t.Errorf("Content-Type = %v", got)
	}
	if got := headers.Get("Content-Length"); len(got) != 1 || got[0] != "5" {
		t.Errorf("Content-Length = %v", got)
	}
	if got := headers.Get("X-Request-Id"); len(got) != 1 || got[0] != "1" {
		t.Errorf("X-Request-Id lost: %v", got)
	}
}

func TestChunkedBody_Decoder_NamesChunked(t *testing.T) {
	body := NewChunkedBody(strings.NewReader("0\r\n\r\n"), "")

	decoder, ok := body.Decoder()
	if !ok {
		t.Fatal("Decoder() ok = false, want true")
	}
	if got := decoder.Encodings(); len(got) != 1 || got[0] != "chunked" {
		t.Errorf("Encodings() = %v, want [chunked]", got)
	}
}

func TestHeadersFrom_DoesNotStripStaleContentLengthWhenTransferEncodingSet(t *testing.T) {
	// Decided Open Question (SPEC_FULL.md §9): HeadersFrom independently
	// overwrites Content-Type/Content-Length/Transfer-Encoding but never
	// itself removes a stale Content-Length just because Transfer-Encoding
	// ends up set.
	body := NewChunkedBody(strings.NewReader("0\r\n\r\n"), "")
	input := NewHeadersBuilder().With("Content-Length", "999").Build()

	headers := body.HeadersFrom(input)

	if got := headers.Get("Content-Length"); len(got) != 1 || got[0] != "999" {
		t.Errorf("Content-Length = %v, want preserved [999]", got)
	}
	if got := headers.Get("Transfer-Encoding"); len(got) != 1 || got[0] != "chunked" {
		t.Errorf("Transfer-Encoding = %v, want [chunked]", got)
	}
}

func TestEncodedBody_DecoderReportsEncodingChain(t *testing.T) {
	inner := NewBytesBody([]byte("raw"), "")
	body := NewEncodedBody(inner, "identity")

	decoder, ok := body.Decoder()
	if !ok || len(decoder.Encodings()) != 1 || decoder.Encodings()[0] != "identity" {
		t.Errorf("Decoder() = %v, %v", decoder, ok)
	}
}
