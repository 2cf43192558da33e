package trig

import (
	"testing"

	"github.com/oxtrig/trig/internal/qset"
	"github.com/oxtrig/trig/pkg/rdfterm"
)

func drainReader(t *testing.T, r *Reader) ([]*rdfterm.Quad, []error) {
	t.Helper()
	var quads []*rdfterm.Quad
	var errs []error
	for {
		q, err := r.ReadNext()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if q == nil {
			if r.IsEnd() {
				return quads, errs
			}
			t.Fatalf("ReadNext returned (nil, nil) before IsEnd was true")
		}
		quads = append(quads, q)
	}
}

func TestReader_MinimalDefaultGraph(t *testing.T) {
	cfg, err := NewConfig().WithPrefix("", "http://ex/")
	if err != nil {
		t.Fatalf("unexpected config error: %v", err)
	}
	r := NewReader(cfg)
	r.Extend([]byte("@prefix : <http://ex/> . :a :b :c ."))
	r.End()
	quads, errs := drainReader(t, r)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(quads) != 1 {
		t.Fatalf("got %d quads, want 1: %+v", len(quads), quads)
	}
	q := quads[0]
	if q.Subject.String() != "<http://ex/a>" || q.Predicate.String() != "<http://ex/b>" || q.Object.String() != "<http://ex/c>" {
		t.Errorf("got %s", q)
	}
	if _, ok := q.Graph.(*rdfterm.DefaultGraph); !ok {
		t.Errorf("expected default graph, got %T", q.Graph)
	}
}

func TestReader_GraphBlock(t *testing.T) {
	r := NewReader(NewConfig())
	r.Extend([]byte(`<http://g> { <http://s> <http://p> "1" . }`))
	r.End()
	quads, errs := drainReader(t, r)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(quads) != 1 {
		t.Fatalf("got %d quads, want 1", len(quads))
	}
	q := quads[0]
	if q.Graph.String() != "<http://g>" {
		t.Errorf("graph = %s", q.Graph)
	}
	lit, ok := q.Object.(*rdfterm.Literal)
	if !ok {
		t.Fatalf("expected literal object, got %T", q.Object)
	}
	if lit.Value != "1" || lit.Language != "" || lit.Datatype != nil {
		t.Errorf("expected plain xsd:string literal, got %+v", lit)
	}
}

func TestReader_ChunkedParse(t *testing.T) {
	chunks := []string{"@prefix :", " <http://ex/> . :a", " :b :c ."}
	r := NewReader(NewConfig())
	var quads []*rdfterm.Quad
	for i, c := range chunks {
		r.Extend([]byte(c))
		if i == len(chunks)-1 {
			r.End()
		}
		for {
			q, err := r.ReadNext()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if q == nil {
				break
			}
			quads = append(quads, q)
		}
	}
	oneShot := NewReader(NewConfig())
	oneShot.Extend([]byte("@prefix : <http://ex/> . :a :b :c ."))
	oneShot.End()
	want, errs := drainReader(t, oneShot)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors in one-shot parse: %v", errs)
	}
	if !qset.Equal(quads, want) {
		t.Errorf("chunked parse %v did not match one-shot parse %v", quads, want)
	}
}

func TestReader_Recovery(t *testing.T) {
	cfg, err := NewConfig().WithPrefix("ex", "http://example.org/")
	if err != nil {
		t.Fatalf("unexpected config error: %v", err)
	}
	r := NewReader(cfg)
	r.Extend([]byte("ex:a ex:b ex:c . !!! ex:d ex:e ex:f ."))
	r.End()
	quads, errs := drainReader(t, r)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %d: %v", len(errs), errs)
	}
	pe, ok := errs[0].(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", errs[0])
	}
	if pe.Kind != GrammarError {
		t.Errorf("expected GrammarError, got %v", pe.Kind)
	}
	if len(quads) != 2 {
		t.Fatalf("got %d quads, want 2", len(quads))
	}
}

func TestReader_BlankNodeIsolationAcrossSessions(t *testing.T) {
	r1 := NewReader(NewConfig())
	r1.Extend([]byte("_:x <http://ex/p> <http://ex/o> ."))
	r1.End()
	q1, errs1 := drainReader(t, r1)
	if len(errs1) != 0 || len(q1) != 1 {
		t.Fatalf("unexpected first session result: %v %v", q1, errs1)
	}

	r2 := NewReader(NewConfig())
	r2.Extend([]byte("_:x <http://ex/p> <http://ex/o> ."))
	r2.End()
	q2, errs2 := drainReader(t, r2)
	if len(errs2) != 0 || len(q2) != 1 {
		t.Fatalf("unexpected second session result: %v %v", q2, errs2)
	}

	// Each session starts its own blank-node counter from scratch, so two
	// independent sessions parsing the same label both land on "b0" — that
	// coincidence is fine; what isolation actually means is that r2 never
	// consulted r1's label table, so the two BlankNode values below are
	// unrelated even though they print the same.
	if q1[0].Subject.String() != q2[0].Subject.String() {
		t.Fatalf("expected both sessions to independently assign the same first internal id")
	}
}
