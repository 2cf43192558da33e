package trig

import (
	"fmt"
	"strings"

	"github.com/oxtrig/trig/pkg/rdfterm"
)

// formatTerm renders term in Turtle form, inlining a numeric/boolean
// literal's lexical form directly when it matches the corresponding
// Turtle production, matching the teacher's escaping conventions in
// canonical.go.
func formatTerm(term rdfterm.Term) string {
	switch t := term.(type) {
	case *rdfterm.NamedNode:
		return "<" + escapeIRI(t.IRI) + ">"
	case *rdfterm.BlankNode:
		return "_:" + t.ID
	case *rdfterm.Literal:
		return formatLiteral(t)
	case *rdfterm.QuotedTriple:
		return fmt.Sprintf("<< %s %s %s >>", formatTerm(t.Subject), formatTerm(t.Predicate), formatTerm(t.Object))
	default:
		return term.String()
	}
}

func formatLiteral(l *rdfterm.Literal) string {
	if l.Language != "" {
		return fmt.Sprintf(`"%s"@%s`, escapeString(l.Value), l.Language)
	}
	if l.Datatype != nil {
		inline := false
		switch l.Datatype.IRI {
		case rdfterm.XSDBoolean.IRI:
			inline = isTurtleBoolean(l.Value)
		case rdfterm.XSDInteger.IRI:
			inline = isTurtleInteger(l.Value)
		case rdfterm.XSDDecimal.IRI:
			inline = isTurtleDecimal(l.Value)
		case rdfterm.XSDDouble.IRI:
			inline = isTurtleDouble(l.Value)
		}
		if inline {
			return l.Value
		}
		if l.Datatype.IRI == rdfterm.XSDString.IRI {
			return fmt.Sprintf(`"%s"`, escapeString(l.Value))
		}
		return fmt.Sprintf(`"%s"^^%s`, escapeString(l.Value), formatTerm(l.Datatype))
	}
	return fmt.Sprintf(`"%s"`, escapeString(l.Value))
}

// escapeString escapes a literal lexical form for Turtle's quoted-string
// forms, grounded on the teacher's escapeStringCanonical.
func escapeString(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\f':
			b.WriteString(`\f`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			if r < 0x20 || r == 0x7F {
				fmt.Fprintf(&b, `\u%04X`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// escapeIRI escapes the Turtle-forbidden IRIREF characters
// (<, >, ", {, }, |, ^, `, \, and control characters) with \uXXXX, since
// IRIREF has no other escape mechanism.
func escapeIRI(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '<', '>', '"', '{', '}', '|', '^', '`', '\\':
			fmt.Fprintf(&b, `\u%04X`, r)
		default:
			if r <= 0x20 {
				fmt.Fprintf(&b, `\u%04X`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// The following predicates are transliterated from trig.rs's
// is_turtle_{boolean,integer,decimal,double}, operating byte-wise
// exactly as the source does.

func isTurtleBoolean(value string) bool {
	return value == "true" || value == "false"
}

// isTurtleInteger matches INTEGER ::= [+-]? [0-9]+
func isTurtleInteger(value string) bool {
	v := []byte(value)
	if len(v) > 0 && (v[0] == '+' || v[0] == '-') {
		v = v[1:]
	}
	if len(v) == 0 {
		return false
	}
	for _, c := range v {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// isTurtleDecimal matches DECIMAL ::= [+-]? [0-9]* '.' [0-9]+
func isTurtleDecimal(value string) bool {
	v := []byte(value)
	if len(v) > 0 && (v[0] == '+' || v[0] == '-') {
		v = v[1:]
	}
	for len(v) > 0 && v[0] >= '0' && v[0] <= '9' {
		v = v[1:]
	}
	if len(v) == 0 || v[0] != '.' {
		return false
	}
	v = v[1:]
	if len(v) == 0 {
		return false
	}
	for _, c := range v {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// isTurtleDouble matches DOUBLE ::= [+-]? ([0-9]+ '.' [0-9]* EXPONENT |
// '.' [0-9]+ EXPONENT | [0-9]+ EXPONENT), EXPONENT ::= [eE] [+-]? [0-9]+
func isTurtleDouble(value string) bool {
	v := []byte(value)
	if len(v) > 0 && (v[0] == '+' || v[0] == '-') {
		v = v[1:]
	}
	withBefore := false
	for len(v) > 0 && v[0] >= '0' && v[0] <= '9' {
		v = v[1:]
		withBefore = true
	}
	withAfter := false
	if len(v) > 0 && v[0] == '.' {
		v = v[1:]
		for len(v) > 0 && v[0] >= '0' && v[0] <= '9' {
			v = v[1:]
			withAfter = true
		}
	}
	if len(v) == 0 || (v[0] != 'e' && v[0] != 'E') {
		return false
	}
	v = v[1:]
	if len(v) > 0 && (v[0] == '+' || v[0] == '-') {
		v = v[1:]
	}
	if !(withBefore || withAfter) || len(v) == 0 {
		return false
	}
	for _, c := range v {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
