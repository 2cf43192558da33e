package trig

import (
	"bytes"
	"testing"

	"github.com/oxtrig/trig/pkg/rdfterm"
)

func nn(iri string) *rdfterm.NamedNode { return rdfterm.NewNamedNode(iri) }

func TestWriter_CollapsedSerialization(t *testing.T) {
	s, p, o := nn("http://ex/s"), nn("http://ex/p"), nn("http://ex/o")
	o2, p2, o3 := nn("http://ex/o2"), nn("http://ex/p2"), nn("http://ex/o3")
	s2, g, g2 := nn("http://ex/s2"), nn("http://ex/g"), nn("http://ex/g2")
	def := rdfterm.NewDefaultGraph()

	quads := []*rdfterm.Quad{
		rdfterm.NewQuad(s, p, o, g),
		rdfterm.NewQuad(s, p, o2, g),
		rdfterm.NewQuad(s, p2, o3, g),
		rdfterm.NewQuad(s2, p, o, g),
		rdfterm.NewQuad(s, p, o, def),
		rdfterm.NewQuad(s, p, o, g2),
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, q := range quads {
		if err := w.WriteQuad(q); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := w.Finish(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "<http://ex/g> {\n" +
		"\t<http://ex/s> <http://ex/p> <http://ex/o> , <http://ex/o2> ;\n" +
		"\t\t<http://ex/p2> <http://ex/o3> .\n" +
		"\t<http://ex/s2> <http://ex/p> <http://ex/o> .\n" +
		"}\n" +
		"<http://ex/s> <http://ex/p> <http://ex/o> .\n" +
		"<http://ex/g2> {\n" +
		"\t<http://ex/s> <http://ex/p> <http://ex/o> .\n" +
		"}\n"

	if buf.String() != want {
		t.Errorf("got:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestWriter_NumericInlining(t *testing.T) {
	g := nn("http://ex/g")
	p := nn("http://ex/p")
	b := rdfterm.NewBlankNode("b")

	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteQuad(rdfterm.NewQuad(b, p, rdfterm.NewLiteralWithDatatype("true", rdfterm.XSDBoolean), g)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Finish(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "<http://ex/g> {\n\t_:b <http://ex/p> true .\n}\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}

	buf.Reset()
	w2 := NewWriter(&buf)
	if err := w2.WriteQuad(rdfterm.NewQuad(b, p, rdfterm.NewLiteralWithDatatype("TRUE", rdfterm.XSDBoolean), g)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w2.Finish(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want2 := "<http://ex/g> {\n\t_:b <http://ex/p> \"TRUE\"^^<http://www.w3.org/2001/XMLSchema#boolean> .\n}\n"
	if buf.String() != want2 {
		t.Errorf("got %q, want %q", buf.String(), want2)
	}
}

func TestWriter_DefaultGraphHasNoBraces(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	q := rdfterm.NewQuad(nn("http://ex/s"), nn("http://ex/p"), nn("http://ex/o"), rdfterm.NewDefaultGraph())
	if err := w.WriteQuad(q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Finish(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "<http://ex/s> <http://ex/p> <http://ex/o> .\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestStatelessWriter_ExplicitSink(t *testing.T) {
	sw := NewStatelessWriter()
	var buf1, buf2 bytes.Buffer
	q := rdfterm.NewQuad(nn("http://ex/s"), nn("http://ex/p"), nn("http://ex/o"), rdfterm.NewDefaultGraph())
	if err := sw.WriteQuad(q, &buf1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sw.Finish(&buf1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf1.String() != "<http://ex/s> <http://ex/p> <http://ex/o> .\n" {
		t.Errorf("got %q", buf1.String())
	}
	if buf2.Len() != 0 {
		t.Errorf("expected the unused sink to remain untouched")
	}
}

func TestWriter_EmptyStreamFinishesToNothing(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.Finish(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output for an empty stream, got %q", buf.String())
	}
}
