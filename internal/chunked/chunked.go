// Package chunked adapts github.com/indigo-web/chunkedbody's chunk-size
// state machine to an io.Reader, the shape the body adapter's
// LazyBodyReader expects. It is grounded on
// indigo-web-indigo/internal/protocol/http1/body.go, which drives the same
// *chunkedbody.Parser off a socket read loop; this package generalizes
// that loop to an arbitrary io.Reader source instead of a connection.
package chunked

import (
	"io"

	"github.com/indigo-web/chunkedbody"
)

// Dechunker streams the decoded body out of a chunked-transfer-coded
// source. It is single-use: once Read returns io.EOF it stays exhausted.
type Dechunker struct {
	src     io.Reader
	parser  *chunkedbody.Parser
	readBuf []byte
	carry   []byte
	pending []byte
	done    bool
}

// New wraps src, which must yield the still-encoded chunked body bytes.
func New(src io.Reader) *Dechunker {
	return &Dechunker{
		src:     src,
		parser:  chunkedbody.NewParser(chunkedbody.DefaultSettings()),
		readBuf: make([]byte, 4096),
	}
}

func (d *Dechunker) Read(p []byte) (int, error) {
	for len(d.pending) == 0 {
		if d.done {
			return 0, io.EOF
		}

		var data []byte
		if len(d.carry) > 0 {
			data, d.carry = d.carry, nil
		} else {
			n, err := d.src.Read(d.readBuf)
			if n == 0 {
				if err != nil {
					if err == io.EOF {
						d.done = true
						return 0, io.EOF
					}
					return 0, err
				}
				continue
			}
			data = d.readBuf[:n]
		}

		// Parse signals the terminating chunk by returning io.EOF
		// alongside whatever chunk/extra it decoded, the same
		// contract indigo-web-indigo's chunkedBodyReader.read relies
		// on (internal/transport/http1/body.go).
		chunk, extra, err := d.parser.Parse(data, false)
		if err != nil && err != io.EOF {
			return 0, err
		}
		d.carry = extra
		if err == io.EOF {
			d.done = true
		}
		if len(chunk) == 0 {
			if d.done {
				return 0, io.EOF
			}
			continue
		}
		d.pending = chunk
	}

	n := copy(p, d.pending)
	d.pending = d.pending[n:]
	return n, nil
}
