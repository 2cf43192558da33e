// Package trig implements a streaming reader and a context-aware writer
// for the TriG RDF serialization, built on the resumable recognizer in
// internal/parser.
package trig

import (
	"github.com/oxtrig/trig/internal/parser"
	"github.com/oxtrig/trig/pkg/rdfterm"
)

// Reader is the push front-end: feed it bytes with Extend, drain quads
// with ReadNext, call End once the document is fully fed.
type Reader struct {
	p *parser.Parser
}

// NewReader starts a reader session seeded from cfg (copied, not shared,
// so cfg itself stays reusable for further sessions).
func NewReader(cfg *Config) *Reader {
	if cfg == nil {
		cfg = NewConfig()
	}
	return &Reader{p: parser.New(cfg.base, cfg.prefixes, cfg.withQuotedTriples)}
}

// Extend appends bytes to the input buffer. Never blocks.
func (r *Reader) Extend(data []byte) { r.p.Extend(data) }

// End marks end-of-input. Calling Extend afterward is a contract
// violation the reader does not guard against.
func (r *Reader) End() { r.p.End() }

// IsEnd reports whether End was called and no further quad or error can
// ever be produced.
func (r *Reader) IsEnd() bool { return r.p.IsEnd() }

// ReadNext pops the next ready quad, driving the grammar forward as
// needed. Both return values nil means "nothing ready yet" — check
// IsEnd to tell "needs more bytes" apart from "fully drained".
func (r *Reader) ReadNext() (*rdfterm.Quad, error) {
	return r.p.ReadNext()
}
