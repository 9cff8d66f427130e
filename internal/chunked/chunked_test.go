package chunked

import (
	"bytes"
	"io"
	"testing"
)

func TestDechunker_SingleChunk(t *testing.T) {
	d := New(bytes.NewReader([]byte("5\r\nhello\r\n0\r\n\r\n")))

	got, err := io.ReadAll(d)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}
