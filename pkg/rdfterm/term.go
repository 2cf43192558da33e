// Package rdfterm is the abstract RDF term and quad model shared by the
// TriG lexer, parser and serializer. It stays deliberately small: the
// lexical rules and inlining decisions that care about a term's exact
// textual shape live in pkg/trig, not here.
package rdfterm

import (
	"fmt"
	"strings"
)

// TermType identifies the concrete kind behind the Term interface.
type TermType byte

const (
	TermTypeNamedNode TermType = iota + 1
	TermTypeBlankNode
	TermTypeLiteral
	TermTypeDefaultGraph
	TermTypeQuotedTriple
)

// Term is an RDF term: a NamedNode, BlankNode, Literal, DefaultGraph, or
// (when quoted triples are enabled) a QuotedTriple.
type Term interface {
	Type() TermType
	String() string
	Equals(other Term) bool
}

// NamedNode is an absolute IRI.
type NamedNode struct {
	IRI string
}

func NewNamedNode(iri string) *NamedNode {
	return &NamedNode{IRI: iri}
}

func (n *NamedNode) Type() TermType {
	return TermTypeNamedNode
}

func (n *NamedNode) String() string {
	return fmt.Sprintf("<%s>", n.IRI)
}

func (n *NamedNode) Equals(other Term) bool {
	if on, ok := other.(*NamedNode); ok {
		return n.IRI == on.IRI
	}
	return false
}

// BlankNode is a locally-scoped identifier. Two blank nodes with the same
// ID from different parse sessions are distinct RDF nodes; scoping across
// sessions is the caller's responsibility.
type BlankNode struct {
	ID string
}

func NewBlankNode(id string) *BlankNode {
	return &BlankNode{ID: id}
}

func (b *BlankNode) Type() TermType {
	return TermTypeBlankNode
}

func (b *BlankNode) String() string {
	return fmt.Sprintf("_:%s", b.ID)
}

func (b *BlankNode) Equals(other Term) bool {
	if ob, ok := other.(*BlankNode); ok {
		return b.ID == ob.ID
	}
	return false
}

// Literal is a lexical form paired with at most one of a datatype IRI or
// a language tag. Neither set means plain xsd:string.
type Literal struct {
	Value    string
	Language string     // for language-tagged strings
	Datatype *NamedNode // for typed literals
}

func NewLiteral(value string) *Literal {
	return &Literal{Value: value}
}

func NewLiteralWithLanguage(value, language string) *Literal {
	return &Literal{Value: value, Language: language}
}

func NewLiteralWithDatatype(value string, datatype *NamedNode) *Literal {
	return &Literal{Value: value, Datatype: datatype}
}

func (l *Literal) Type() TermType {
	return TermTypeLiteral
}

func (l *Literal) String() string {
	result := fmt.Sprintf(`"%s"`, l.Value)
	if l.Language != "" {
		result += "@" + l.Language
	} else if l.Datatype != nil {
		result += "^^" + l.Datatype.String()
	}
	return result
}

func (l *Literal) Equals(other Term) bool {
	if ol, ok := other.(*Literal); ok {
		if l.Value != ol.Value {
			return false
		}
		if l.Language != ol.Language {
			return false
		}
		if l.Datatype == nil && ol.Datatype == nil {
			return true
		}
		if l.Datatype != nil && ol.Datatype != nil {
			return l.Datatype.Equals(ol.Datatype)
		}
		return false
	}
	return false
}

// DefaultGraph is the distinguished graph name used for triples outside
// any GRAPH block.
type DefaultGraph struct{}

func NewDefaultGraph() *DefaultGraph {
	return &DefaultGraph{}
}

func (d *DefaultGraph) Type() TermType {
	return TermTypeDefaultGraph
}

func (d *DefaultGraph) String() string {
	return "DEFAULT"
}

func (d *DefaultGraph) Equals(other Term) bool {
	_, ok := other.(*DefaultGraph)
	return ok
}

// QuotedTriple is a (subject, predicate, object) used as a term, valid
// only in subject or object position, never as a predicate or a graph
// name. NewQuotedTriple only checks positional validity of its own
// fields; whether the star extension is enabled at all is the parser's
// concern, not the term model's.
type QuotedTriple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// NewQuotedTriple creates a new quoted triple with validation.
func NewQuotedTriple(subject, predicate, object Term) (*QuotedTriple, error) {
	switch subject.(type) {
	case *NamedNode, *BlankNode, *QuotedTriple:
		// Valid
	default:
		return nil, fmt.Errorf("quoted triple subject must be IRI, blank node, or quoted triple, got %T", subject)
	}

	if _, ok := predicate.(*NamedNode); !ok {
		return nil, fmt.Errorf("quoted triple predicate must be IRI, got %T", predicate)
	}

	return &QuotedTriple{
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
	}, nil
}

func (q *QuotedTriple) Type() TermType {
	return TermTypeQuotedTriple
}

func (q *QuotedTriple) String() string {
	return fmt.Sprintf("<< %s %s %s >>", q.Subject, q.Predicate, q.Object)
}

func (q *QuotedTriple) Equals(other Term) bool {
	if oq, ok := other.(*QuotedTriple); ok {
		return q.Subject.Equals(oq.Subject) &&
			q.Predicate.Equals(oq.Predicate) &&
			q.Object.Equals(oq.Object)
	}
	return false
}

// Triple is a (subject, predicate, object) with no graph component.
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

func NewTriple(subject, predicate, object Term) *Triple {
	return &Triple{
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
	}
}

func (t *Triple) String() string {
	return fmt.Sprintf("%s %s %s .", t.Subject, t.Predicate, t.Object)
}

// Quad is a Triple plus a graph name. Graph is a NamedNode, BlankNode, or
// DefaultGraph.
type Quad struct {
	Subject   Term
	Predicate Term
	Object    Term
	Graph     Term
}

func NewQuad(subject, predicate, object, graph Term) *Quad {
	return &Quad{
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
		Graph:     graph,
	}
}

func (q *Quad) String() string {
	return fmt.Sprintf("%s %s %s %s .", q.Subject, q.Predicate, q.Object, q.Graph)
}

// Equals compares all four components.
func (q *Quad) Equals(other *Quad) bool {
	return q.Subject.Equals(other.Subject) &&
		q.Predicate.Equals(other.Predicate) &&
		q.Object.Equals(other.Object) &&
		q.Graph.Equals(other.Graph)
}

// Well-known XSD and RDF datatypes used by the numeric inlining rules in
// pkg/trig and by the literal constructors below.
var (
	XSDString  = NewNamedNode("http://www.w3.org/2001/XMLSchema#string")
	XSDInteger = NewNamedNode("http://www.w3.org/2001/XMLSchema#integer")
	XSDDecimal = NewNamedNode("http://www.w3.org/2001/XMLSchema#decimal")
	XSDDouble  = NewNamedNode("http://www.w3.org/2001/XMLSchema#double")
	XSDBoolean = NewNamedNode("http://www.w3.org/2001/XMLSchema#boolean")

	RDFLangString = NewNamedNode("http://www.w3.org/1999/02/22-rdf-syntax-ns#langString")
	RDFType       = NewNamedNode("http://www.w3.org/1999/02/22-rdf-syntax-ns#type")
	RDFFirst      = NewNamedNode("http://www.w3.org/1999/02/22-rdf-syntax-ns#first")
	RDFRest       = NewNamedNode("http://www.w3.org/1999/02/22-rdf-syntax-ns#rest")
	RDFNil        = NewNamedNode("http://www.w3.org/1999/02/22-rdf-syntax-ns#nil")
)

func NewIntegerLiteral(value int64) *Literal {
	return NewLiteralWithDatatype(fmt.Sprintf("%d", value), XSDInteger)
}

// NewDoubleLiteral formats value with an explicit exponent, matching the
// Turtle DOUBLE production (which always requires one) so the result can
// be inlined without re-lexing.
func NewDoubleLiteral(value float64) *Literal {
	str := fmt.Sprintf("%g", value)
	if !strings.ContainsAny(str, "eE") {
		if !strings.Contains(str, ".") {
			str += ".0"
		}
		str += "E0"
	}
	return NewLiteralWithDatatype(str, XSDDouble)
}

func NewDecimalLiteral(value float64) *Literal {
	str := fmt.Sprintf("%f", value)
	str = strings.TrimRight(str, "0")
	if strings.HasSuffix(str, ".") {
		str = str + "0"
	}
	return NewLiteralWithDatatype(str, XSDDecimal)
}

func NewBooleanLiteral(value bool) *Literal {
	return NewLiteralWithDatatype(fmt.Sprintf("%t", value), XSDBoolean)
}
