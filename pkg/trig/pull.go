package trig

import (
	"io"

	"github.com/oxtrig/trig/pkg/rdfterm"
)

// pullScratchSize is the adapter's fixed read buffer. Unlike the
// teacher's io.go parsers (io.ReadAll then hand the whole document to a
// batch parser), PullReader drives the push front-end chunk by chunk so
// it never buffers a full document.
const pullScratchSize = 4096

// PullReader wraps an io.Reader and drives a Reader chunk by chunk,
// presenting a simple Next/Close pull interface. Not safe for concurrent
// use, and not restartable once exhausted.
type PullReader struct {
	src     io.Reader
	reader  *Reader
	scratch [pullScratchSize]byte
	ended   bool // End() has been called on reader
}

// NewPullReader builds a PullReader over src, seeded with cfg.
func NewPullReader(src io.Reader, cfg *Config) *PullReader {
	return &PullReader{src: src, reader: NewReader(cfg)}
}

// Next returns the next quad, or (nil, nil) once the source and the
// recognizer are both fully drained, or a *ParseOrIOError wrapping
// either a recoverable parse error or a terminal I/O error.
func (p *PullReader) Next() (*rdfterm.Quad, error) {
	for {
		q, err := p.reader.ReadNext()
		if err != nil {
			if pe, ok := err.(*ParseError); ok {
				return nil, &ParseOrIOError{ParseErr: pe}
			}
			return nil, &ParseOrIOError{IOErr: err}
		}
		if q != nil {
			return q, nil
		}
		if p.reader.IsEnd() {
			return nil, nil
		}
		if p.ended {
			// End() already observed; nothing left to read, just keep
			// re-driving the recognizer until it drains or errors.
			continue
		}
		n, rerr := p.src.Read(p.scratch[:])
		if n > 0 {
			p.reader.Extend(p.scratch[:n])
		}
		if rerr == io.EOF {
			p.reader.End()
			p.ended = true
			continue
		}
		if rerr != nil {
			return nil, &ParseOrIOError{IOErr: rerr}
		}
	}
}

// Close releases the underlying reader if it implements io.Closer.
func (p *PullReader) Close() error {
	if c, ok := p.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
