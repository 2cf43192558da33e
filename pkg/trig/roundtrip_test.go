package trig

import (
	"bytes"
	"testing"

	"github.com/oxtrig/trig/internal/qset"
	"github.com/oxtrig/trig/pkg/rdfterm"
)

func parseDoc(t *testing.T, src string) []*rdfterm.Quad {
	t.Helper()
	r := NewReader(NewConfig().WithQuotedTriples())
	r.Extend([]byte(src))
	r.End()
	quads, errs := drainReader(t, r)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors parsing %q: %v", src, errs)
	}
	return quads
}

func TestRoundTrip_ParseWriteReparse(t *testing.T) {
	doc := `@prefix ex: <http://example.org/> .
ex:g {
	ex:a ex:b ex:c , ex:d ;
		ex:e ex:f .
}
ex:s ex:p "hello"@en .
ex:s ex:p2 42 .`

	first := parseDoc(t, doc)
	if len(first) == 0 {
		t.Fatal("expected at least one quad from the fixture document")
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, q := range first {
		if err := w.WriteQuad(q); err != nil {
			t.Fatalf("unexpected write error: %v", err)
		}
	}
	if err := w.Finish(); err != nil {
		t.Fatalf("unexpected finish error: %v", err)
	}

	second := parseDoc(t, buf.String())
	if !qset.Equal(first, second) {
		t.Errorf("round-trip multiset mismatch:\nfirst:  %v\nserialized: %s\nsecond: %v", first, buf.String(), second)
	}
}

func TestRoundTrip_PreservesBlankNodePropertyListQuads(t *testing.T) {
	doc := `ex:a ex:b [ ex:c ex:d ] .`
	r := NewReader(mustConfig(t))
	r.Extend([]byte(doc))
	r.End()
	first, errs := drainReader(t, r)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, q := range first {
		if err := w.WriteQuad(q); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := w.Finish(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r2 := NewReader(NewConfig())
	r2.Extend(buf.Bytes())
	r2.End()
	second, errs2 := drainReader(t, r2)
	if len(errs2) != 0 {
		t.Fatalf("unexpected errors reparsing: %v", errs2)
	}
	if !qset.Equal(first, second) {
		t.Errorf("round-trip mismatch: %v vs %v", first, second)
	}
}

func mustConfig(t *testing.T) *Config {
	t.Helper()
	cfg, err := NewConfig().WithPrefix("ex", "http://example.org/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return cfg
}
