package trig

import (
	"io"

	"github.com/oxtrig/trig/pkg/rdfterm"
)

// lowLevelState is the shared case table behind both Writer and
// StatelessWriter, grounded directly on oxttl's LowLevelTriGWriter:
// write_quad/finish. current_subject_predicate's "None vs Some" is
// represented here as hasCurrent, since Go has no sum type to match on.
type lowLevelState struct {
	currentGraph     rdfterm.Term
	hasCurrent       bool
	currentSubject   rdfterm.Term
	currentPredicate rdfterm.Term
}

func newLowLevelState() lowLevelState {
	return lowLevelState{currentGraph: rdfterm.NewDefaultGraph()}
}

func isDefaultGraph(t rdfterm.Term) bool {
	_, ok := t.(*rdfterm.DefaultGraph)
	return ok
}

// writeQuad streams q's contribution to w, following the case table in
// spec §4.E (= trig.rs's write_quad). It never buffers more than the
// current triple's worth of output.
func (s *lowLevelState) writeQuad(q *rdfterm.Quad, w io.Writer) error {
	if q.Graph.Equals(s.currentGraph) {
		if !s.hasCurrent {
			if !isDefaultGraph(s.currentGraph) {
				if _, err := io.WriteString(w, "\t"); err != nil {
					return err
				}
			}
			if err := s.writeSPO(w, q); err != nil {
				return err
			}
			s.hasCurrent = true
			s.currentSubject = q.Subject
			s.currentPredicate = q.Predicate
			return nil
		}
		if q.Subject.Equals(s.currentSubject) {
			if q.Predicate.Equals(s.currentPredicate) {
				_, err := io.WriteString(w, " , "+formatTerm(q.Object))
				return err
			}
			if _, err := io.WriteString(w, " ;\n"); err != nil {
				return err
			}
			if !isDefaultGraph(s.currentGraph) {
				if _, err := io.WriteString(w, "\t"); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "\t"+formatTerm(q.Predicate)+" "+formatTerm(q.Object)); err != nil {
				return err
			}
			s.currentPredicate = q.Predicate
			return nil
		}
		if _, err := io.WriteString(w, " .\n"); err != nil {
			return err
		}
		if !isDefaultGraph(s.currentGraph) {
			if _, err := io.WriteString(w, "\t"); err != nil {
				return err
			}
		}
		if err := s.writeSPO(w, q); err != nil {
			return err
		}
		s.currentSubject = q.Subject
		s.currentPredicate = q.Predicate
		return nil
	}

	if s.hasCurrent {
		if _, err := io.WriteString(w, " .\n"); err != nil {
			return err
		}
	}
	if !isDefaultGraph(s.currentGraph) {
		if _, err := io.WriteString(w, "}\n"); err != nil {
			return err
		}
	}
	s.currentGraph = q.Graph
	s.currentSubject = q.Subject
	s.currentPredicate = q.Predicate
	s.hasCurrent = true
	if !isDefaultGraph(s.currentGraph) {
		if _, err := io.WriteString(w, formatTerm(q.Graph)+" {\n\t"); err != nil {
			return err
		}
	}
	return s.writeSPO(w, q)
}

func (s *lowLevelState) writeSPO(w io.Writer, q *rdfterm.Quad) error {
	_, err := io.WriteString(w, formatTerm(q.Subject)+" "+formatTerm(q.Predicate)+" "+formatTerm(q.Object))
	return err
}

func (s *lowLevelState) finish(w io.Writer) error {
	if s.hasCurrent {
		if _, err := io.WriteString(w, " .\n"); err != nil {
			return err
		}
	}
	if !isDefaultGraph(s.currentGraph) {
		if _, err := io.WriteString(w, "}\n"); err != nil {
			return err
		}
	}
	return nil
}

// Writer is the push-to-sink production mode: it owns both the case-table
// state and the destination.
type Writer struct {
	w     io.Writer
	state lowLevelState
}

// NewWriter starts a writer session that streams to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, state: newLowLevelState()}
}

// WriteQuad writes q's contribution to the stream, leaving state
// untouched if the underlying write fails so the caller may retry.
func (wr *Writer) WriteQuad(q *rdfterm.Quad) error {
	saved := wr.state
	if err := wr.state.writeQuad(q, wr.w); err != nil {
		wr.state = saved
		return err
	}
	return nil
}

// Finish closes out any in-progress triple and graph block.
func (wr *Writer) Finish() error {
	saved := wr.state
	if err := wr.state.finish(wr.w); err != nil {
		wr.state = saved
		return err
	}
	return nil
}

// StatelessWriter is the explicit-sink production mode: the case-table
// state lives on the writer, but the sink is passed per call, so the
// same writer value can fan out to different destinations.
type StatelessWriter struct {
	state lowLevelState
}

// NewStatelessWriter starts a writer session with no sink bound yet.
func NewStatelessWriter() *StatelessWriter {
	return &StatelessWriter{state: newLowLevelState()}
}

// WriteQuad writes q's contribution to w.
func (sw *StatelessWriter) WriteQuad(q *rdfterm.Quad, w io.Writer) error {
	saved := sw.state
	if err := sw.state.writeQuad(q, w); err != nil {
		sw.state = saved
		return err
	}
	return nil
}

// Finish closes out any in-progress triple and graph block on w.
func (sw *StatelessWriter) Finish(w io.Writer) error {
	saved := sw.state
	if err := sw.state.finish(w); err != nil {
		sw.state = saved
		return err
	}
	return nil
}
