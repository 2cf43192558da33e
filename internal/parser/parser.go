// Package parser drives the TriG grammar over a resumable token stream
// from internal/lexer, producing a FIFO queue of fully-resolved quads.
//
// The grammar only ever needs a period or a closing brace to know where
// a top-level unit ends — neither can occur nested inside a blank-node
// property list, a collection, or a quoted triple, so the boundary
// between "still accumulating a statement" and "statement complete" is
// found by plain token scanning, independent of whether the statement
// parses. That scan IS this parser's resumable frame: Parser keeps the
// tokens accumulated so far (pending), an optional one-to-three token
// lookahead used only to disambiguate a leading term as either a graph
// name or an ordinary subject, and the handful of fields recording
// whether it is currently inside a graph body. None of that state lives
// on the Go call stack, so it survives suspension across ReadNext calls
// exactly like the lexer's own checkpoint does. Once a unit's token span
// is known complete, it is handed to an ordinary (non-resumable)
// recursive-descent parse over that finite slice — safe, because no
// further input is needed to finish it.
package parser

import (
	"errors"
	"fmt"

	"github.com/oxtrig/trig/internal/iri"
	"github.com/oxtrig/trig/internal/lexer"
	"github.com/oxtrig/trig/pkg/rdfterm"
)

// ErrorKind distinguishes the recoverable error categories a recognizer
// session can report.
type ErrorKind int

const (
	LexicalError ErrorKind = iota
	GrammarError
	SemanticError
	UnexpectedEOF
)

func (k ErrorKind) String() string {
	switch k {
	case LexicalError:
		return "LexicalError"
	case GrammarError:
		return "GrammarError"
	case SemanticError:
		return "SemanticError"
	case UnexpectedEOF:
		return "UnexpectedEOF"
	default:
		return "UnknownError"
	}
}

// ParseError carries a fixed source position alongside its kind.
type ParseError struct {
	Line       int
	Column     int
	ByteOffset int
	Kind       ErrorKind
	Err        error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %d:%d (offset %d): %v", e.Kind, e.Line, e.Column, e.ByteOffset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func newParseError(pos lexer.Position, kind ErrorKind, msg string) *ParseError {
	return &ParseError{Line: pos.Line, Column: pos.Column, ByteOffset: pos.ByteOffset, Kind: kind, Err: errors.New(msg)}
}

// Parser is a resumable TriG recognizer. It owns the mutable base IRI
// and prefix map for its session; the caller-supplied seed is copied in
// at construction so the caller's builder stays reusable.
type Parser struct {
	lex               *lexer.Lexer
	base              string
	prefixes          map[string]string
	withQuotedTriples bool

	blankLabels  map[string]string
	blankCounter int

	insideGraph  bool
	currentGraph rdfterm.Term

	pending   []lexer.Token
	lookahead []lexer.Token
	ready     []*rdfterm.Quad

	recovering      bool
	recoveryHeavy   bool
	pendingRecovery *ParseError

	ended bool
}

// New constructs a Parser seeded with base and prefixes (both copied, not
// shared, with the caller).
func New(base string, prefixes map[string]string, withQuotedTriples bool) *Parser {
	seeded := make(map[string]string, len(prefixes))
	for k, v := range prefixes {
		seeded[k] = v
	}
	return &Parser{
		lex:               lexer.New(),
		base:              base,
		prefixes:          seeded,
		withQuotedTriples: withQuotedTriples,
		blankLabels:       make(map[string]string),
		currentGraph:      rdfterm.NewDefaultGraph(),
	}
}

// Extend appends bytes to the input buffer. Never blocks.
func (p *Parser) Extend(data []byte) { p.lex.Extend(data) }

// End marks end-of-input.
func (p *Parser) End() {
	p.lex.End()
	p.ended = true
}

// IsEnd reports whether End was called and no further work remains.
func (p *Parser) IsEnd() bool {
	return p.ended && p.lex.AtEnd() && len(p.pending) == 0 && len(p.lookahead) == 0 &&
		len(p.ready) == 0 && !p.recovering
}

// ReadNext dequeues the next ready quad, driving the grammar forward as
// needed. It returns (nil, nil) when nothing is ready yet — either more
// input is needed, or input is exhausted with nothing left to do; check
// IsEnd to distinguish the two — and (nil, err) when a recoverable parse
// error was produced.
func (p *Parser) ReadNext() (*rdfterm.Quad, error) {
	p.lex.Compact()
	for {
		if len(p.ready) > 0 {
			q := p.ready[0]
			p.ready = p.ready[1:]
			return q, nil
		}
		quads, err, progressed := p.step()
		if err != nil {
			return nil, err
		}
		if len(quads) > 0 {
			p.ready = append(p.ready, quads...)
			continue
		}
		if !progressed {
			return nil, nil
		}
	}
}

// step performs one unit of grammar-driving work: resolving a pending
// lookahead decision, accumulating tokens toward a boundary, or closing
// a graph body. progressed is false when the step stopped because more
// input is needed or the input is exhausted; ReadNext stops looping on
// that basis instead of spinning forever on a step that made no progress.
func (p *Parser) step() (quads []*rdfterm.Quad, err error, progressed bool) {
	if p.recovering {
		return p.driveRecovery()
	}
	if !p.insideGraph && len(p.pending) == 0 {
		return p.stepTopLevelStart()
	}
	if p.insideGraph && len(p.pending) == 0 {
		return p.stepGraphBodyStart()
	}
	return p.stepAccumulate()
}

// safeNext wraps the lexer, translating its ErrNeedMoreData sentinel
// into a (zero Token, nil error, needMore=true) result distinct from a
// genuine *lexer.LexicalError.
func (p *Parser) safeNext() (tok lexer.Token, needMore bool, err error) {
	t, e := p.lex.Next()
	if e == nil {
		return t, false, nil
	}
	if errors.Is(e, lexer.ErrNeedMoreData) {
		return lexer.Token{}, true, nil
	}
	return lexer.Token{}, false, e
}

// enterRecovery begins resynchronizing after a lexical error: the error
// is stashed until a sync point is actually found (it may take several
// Extend calls), and any in-flight accumulation is discarded.
//
// heavy picks the resync strategy: a malformed token hit while no
// statement content has been committed yet (pending is still empty) only
// needs the bad run of bytes skipped, so the next legitimate statement
// is not swallowed along with it (light, SkipToWhitespace); a malformed
// token hit mid-accumulation has already invalidated a partial
// statement, so recovery has to hunt for the next '.' or '}' instead
// (heavy, SkipToSync).
func (p *Parser) enterRecovery(lexErr error, heavy bool) (quads []*rdfterm.Quad, err error, progressed bool) {
	pos := p.lex.Position()
	if le, ok := lexErr.(*lexer.LexicalError); ok {
		pos = le.Pos
	}
	p.pendingRecovery = newParseError(pos, GrammarError, lexErr.Error())
	p.recovering = true
	p.recoveryHeavy = heavy
	p.pending = nil
	p.lookahead = nil
	return p.driveRecovery()
}

func (p *Parser) driveRecovery() (quads []*rdfterm.Quad, err error, progressed bool) {
	if !p.recoveryHeavy {
		if !p.lex.SkipToWhitespace() {
			if p.ended {
				return p.finishRecovery()
			}
			return nil, nil, false
		}
		return p.finishRecovery()
	}
	stopByte, found := p.lex.SkipToSync()
	if !found {
		if p.ended {
			return p.finishRecovery()
		}
		return nil, nil, false
	}
	if stopByte == '}' && p.insideGraph {
		p.insideGraph = false
		p.currentGraph = rdfterm.NewDefaultGraph()
	}
	return p.finishRecovery()
}

func (p *Parser) finishRecovery() (quads []*rdfterm.Quad, err error, progressed bool) {
	p.recovering = false
	e := p.pendingRecovery
	p.pendingRecovery = nil
	if e == nil {
		return nil, nil, false
	}
	return nil, e, true
}

// recoverGrammarError handles a structurally-wrong but well-lexed token
// (nested graph block, unexpected token at a statement boundary): the
// token itself consumed no garbage bytes, so resynchronizing always
// hunts for the next '.' or '}'.
func (p *Parser) recoverGrammarError(pos lexer.Position, msg string) (quads []*rdfterm.Quad, err error, progressed bool) {
	p.pendingRecovery = newParseError(pos, GrammarError, msg)
	p.recovering = true
	p.recoveryHeavy = true
	p.pending = nil
	p.lookahead = nil
	return p.driveRecovery()
}

// stepTopLevelStart decides, outside any graph body, whether the next
// unit is a directive, a GRAPH block, a bare `{` default-graph block, a
// named-graph block (term followed by `{`), or an ordinary triples
// statement (term not followed by `{`).
func (p *Parser) stepTopLevelStart() (quads []*rdfterm.Quad, err error, progressed bool) {
	if len(p.lookahead) == 0 {
		tok, needMore, lexErr := p.safeNext()
		if needMore {
			return nil, nil, false
		}
		if lexErr != nil {
			return p.enterRecovery(lexErr, false)
		}
		if tok.Kind == lexer.EOF {
			return nil, nil, false
		}
		p.lookahead = append(p.lookahead, tok)
	}
	t1 := p.lookahead[0]

	switch t1.Kind {
	case lexer.KeywordPrefixAt, lexer.KeywordBaseAt:
		p.pending = append(p.pending, t1)
		p.lookahead = nil
		return p.stepAccumulate()
	case lexer.KeywordPrefix:
		p.pending = append(p.pending, t1)
		p.lookahead = nil
		return p.accumulateFixed(3)
	case lexer.KeywordBase:
		p.pending = append(p.pending, t1)
		p.lookahead = nil
		return p.accumulateFixed(2)
	case lexer.KeywordGraph:
		p.pending = append(p.pending, t1)
		p.lookahead = nil
		return p.accumulateFixed(3)
	case lexer.LBrace:
		p.lookahead = nil
		p.insideGraph = true
		p.currentGraph = rdfterm.NewDefaultGraph()
		return nil, nil, true
	case lexer.IRIRef, lexer.PNameLN, lexer.PNameNS, lexer.BlankNodeLabel:
		if len(p.lookahead) < 2 {
			tok2, needMore, lexErr := p.safeNext()
			if needMore {
				return nil, nil, false
			}
			if lexErr != nil {
				return p.enterRecovery(lexErr, false)
			}
			p.lookahead = append(p.lookahead, tok2)
		}
		t2 := p.lookahead[1]
		if t2.Kind == lexer.LBrace {
			graphTerm, gerr := p.resolveGraphNameToken(t1)
			p.lookahead = nil
			if gerr != nil {
				return nil, gerr, true
			}
			p.insideGraph = true
			p.currentGraph = graphTerm
			return nil, nil, true
		}
		p.pending = append(p.pending, p.lookahead...)
		p.lookahead = nil
		return p.stepAccumulate()
	case lexer.LBracket:
		// `[] {` names a graph with a fresh blank node; any other `[` starts
		// a triples statement.
		for len(p.lookahead) < 3 && (len(p.lookahead) < 2 || p.lookahead[1].Kind == lexer.RBracket) {
			tok, needMore, lexErr := p.safeNext()
			if needMore {
				return nil, nil, false
			}
			if lexErr != nil {
				return p.enterRecovery(lexErr, false)
			}
			p.lookahead = append(p.lookahead, tok)
		}
		if len(p.lookahead) == 3 && p.lookahead[2].Kind == lexer.LBrace {
			p.lookahead = nil
			p.insideGraph = true
			p.currentGraph = p.newAnonBlankNode()
			return nil, nil, true
		}
		p.pending = append(p.pending, p.lookahead...)
		p.lookahead = nil
		return p.stepAccumulate()
	case lexer.LParen, lexer.DoubleLAngle:
		p.pending = append(p.pending, t1)
		p.lookahead = nil
		return p.stepAccumulate()
	default:
		p.lookahead = nil
		return p.recoverGrammarError(t1.Pos, fmt.Sprintf("unexpected token at top level (kind %d)", t1.Kind))
	}
}

// accumulateFixed accumulates exactly n total tokens into pending (which
// already holds the leading keyword) for PREFIX/BASE/GRAPH forms that
// are not dot-terminated.
func (p *Parser) accumulateFixed(n int) (quads []*rdfterm.Quad, err error, progressed bool) {
	for len(p.pending) < n {
		tok, needMore, lexErr := p.safeNext()
		if needMore {
			return nil, nil, false
		}
		if lexErr != nil {
			return p.enterRecovery(lexErr, true)
		}
		if tok.Kind == lexer.EOF {
			toks := p.pending
			p.pending = nil
			return nil, newParseError(toks[0].Pos, UnexpectedEOF, "unexpected end of input in directive"), true
		}
		p.pending = append(p.pending, tok)
	}
	toks := p.pending
	p.pending = nil
	return p.finishFixedUnit(toks)
}

func (p *Parser) finishFixedUnit(toks []lexer.Token) (quads []*rdfterm.Quad, err error, progressed bool) {
	switch toks[0].Kind {
	case lexer.KeywordPrefix:
		if toks[1].Kind != lexer.PNameNS || toks[2].Kind != lexer.IRIRef {
			return nil, newParseError(toks[0].Pos, GrammarError, "malformed PREFIX directive"), true
		}
		abs, rerr := p.resolveIRI(toks[2].Pos, toks[2].Value)
		if rerr != nil {
			return nil, rerr, true
		}
		p.prefixes[toks[1].Value] = abs
		return nil, nil, true
	case lexer.KeywordBase:
		if toks[1].Kind != lexer.IRIRef {
			return nil, newParseError(toks[0].Pos, GrammarError, "malformed BASE directive"), true
		}
		abs, rerr := p.resolveIRI(toks[1].Pos, toks[1].Value)
		if rerr != nil {
			return nil, rerr, true
		}
		p.base = abs
		return nil, nil, true
	case lexer.KeywordGraph:
		if toks[2].Kind != lexer.LBrace {
			return nil, newParseError(toks[0].Pos, GrammarError, "malformed GRAPH block, expected '{'"), true
		}
		graphTerm, gerr := p.resolveGraphNameToken(toks[1])
		if gerr != nil {
			return nil, gerr, true
		}
		p.insideGraph = true
		p.currentGraph = graphTerm
		return nil, nil, true
	}
	return nil, newParseError(toks[0].Pos, GrammarError, "unrecognized directive"), true
}

// stepGraphBodyStart peeks the next token inside a graph body: `}` closes
// the block, anything else starts a buffered triples statement. TriG
// forbids nested graph blocks, so a `{` here is rejected outright.
func (p *Parser) stepGraphBodyStart() (quads []*rdfterm.Quad, err error, progressed bool) {
	tok, needMore, lexErr := p.safeNext()
	if needMore {
		return nil, nil, false
	}
	if lexErr != nil {
		return p.enterRecovery(lexErr, false)
	}
	switch tok.Kind {
	case lexer.RBrace:
		p.insideGraph = false
		p.currentGraph = rdfterm.NewDefaultGraph()
		return nil, nil, true
	case lexer.EOF:
		if p.ended {
			return nil, newParseError(tok.Pos, UnexpectedEOF, "unterminated graph block"), true
		}
		return nil, nil, false
	case lexer.LBrace:
		return p.recoverGrammarError(tok.Pos, "nested graph blocks are not allowed")
	default:
		p.pending = append(p.pending, tok)
		return p.stepAccumulate()
	}
}

// stepAccumulate keeps consuming tokens into pending until a `.`
// completes a triples statement or directive.
func (p *Parser) stepAccumulate() (quads []*rdfterm.Quad, err error, progressed bool) {
	for {
		tok, needMore, lexErr := p.safeNext()
		if needMore {
			return nil, nil, false
		}
		if lexErr != nil {
			return p.enterRecovery(lexErr, true)
		}
		if tok.Kind == lexer.EOF {
			toks := p.pending
			p.pending = nil
			return nil, newParseError(toks[0].Pos, UnexpectedEOF, "unexpected end of input"), true
		}
		p.pending = append(p.pending, tok)
		if tok.Kind == lexer.Dot {
			toks := p.pending
			p.pending = nil
			return p.finishUnit(toks)
		}
	}
}

func (p *Parser) finishUnit(toks []lexer.Token) (quads []*rdfterm.Quad, err error, progressed bool) {
	switch toks[0].Kind {
	case lexer.KeywordPrefixAt:
		if len(toks) != 4 || toks[1].Kind != lexer.PNameNS || toks[2].Kind != lexer.IRIRef {
			return nil, newParseError(toks[0].Pos, GrammarError, "malformed @prefix directive"), true
		}
		abs, rerr := p.resolveIRI(toks[2].Pos, toks[2].Value)
		if rerr != nil {
			return nil, rerr, true
		}
		p.prefixes[toks[1].Value] = abs
		return nil, nil, true
	case lexer.KeywordBaseAt:
		if len(toks) != 3 || toks[1].Kind != lexer.IRIRef {
			return nil, newParseError(toks[0].Pos, GrammarError, "malformed @base directive"), true
		}
		abs, rerr := p.resolveIRI(toks[1].Pos, toks[1].Value)
		if rerr != nil {
			return nil, rerr, true
		}
		p.base = abs
		return nil, nil, true
	default:
		graph := rdfterm.Term(rdfterm.NewDefaultGraph())
		if p.insideGraph {
			graph = p.currentGraph
		}
		stmt := toks[:len(toks)-1]
		qs, serr := p.parseTriplesStatement(stmt, graph)
		if serr != nil {
			if pe, ok := serr.(*ParseError); ok {
				return nil, pe, true
			}
			return nil, newParseError(toks[0].Pos, GrammarError, serr.Error()), true
		}
		return qs, nil, true
	}
}

// resolveIRI resolves a lexed IRIREF value against the current base,
// rejecting relative IRIs when no base has been established.
func (p *Parser) resolveIRI(pos lexer.Position, raw string) (string, error) {
	if iri.IsAbsolute(raw) {
		return raw, nil
	}
	if p.base == "" {
		return "", newParseError(pos, SemanticError, fmt.Sprintf("relative IRI %q used with no base set", raw))
	}
	return iri.Resolve(p.base, raw), nil
}

// resolvePrefixedName expands a PNAME_NS/PNAME_LN pair already split
// into prefix and local parts.
func (p *Parser) resolvePrefixedName(pos lexer.Position, prefix, local string) (*rdfterm.NamedNode, error) {
	base, ok := p.prefixes[prefix]
	if !ok {
		return nil, newParseError(pos, GrammarError, fmt.Sprintf("undeclared prefix %q", prefix))
	}
	return rdfterm.NewNamedNode(base + local), nil
}

// splitPrefixedName splits a lexer PNameLN value ("prefix:local") on its
// first colon; a PNameNS token's Value never contains one.
func splitPrefixedName(value string) (prefix, local string) {
	for i := 0; i < len(value); i++ {
		if value[i] == ':' {
			return value[:i], value[i+1:]
		}
	}
	return value, ""
}

// resolveGraphNameToken resolves a single lookahead token already known
// to be followed by `{` into a graph name term (IRI or blank node).
func (p *Parser) resolveGraphNameToken(t lexer.Token) (rdfterm.Term, error) {
	switch t.Kind {
	case lexer.IRIRef:
		abs, err := p.resolveIRI(t.Pos, t.Value)
		if err != nil {
			return nil, err
		}
		return rdfterm.NewNamedNode(abs), nil
	case lexer.PNameLN:
		prefix, local := splitPrefixedName(t.Value)
		return p.resolvePrefixedName(t.Pos, prefix, local)
	case lexer.PNameNS:
		return p.resolvePrefixedName(t.Pos, t.Value, "")
	case lexer.BlankNodeLabel:
		return rdfterm.NewBlankNode(p.internBlankLabel(t.Value)), nil
	default:
		return nil, newParseError(t.Pos, GrammarError, "invalid graph name")
	}
}

func (p *Parser) internBlankLabel(userLabel string) string {
	if id, ok := p.blankLabels[userLabel]; ok {
		return id
	}
	id := fmt.Sprintf("b%d", p.blankCounter)
	p.blankCounter++
	p.blankLabels[userLabel] = id
	return id
}

func (p *Parser) newAnonBlankNode() *rdfterm.BlankNode {
	id := fmt.Sprintf("b%d", p.blankCounter)
	p.blankCounter++
	return rdfterm.NewBlankNode(id)
}

// tokenCursor is a read cursor over a finite, already-complete token
// slice; once a statement's tokens are all buffered, parsing it needs no
// further I/O, so plain recursive descent is safe here.
type tokenCursor struct {
	toks []lexer.Token
	i    int
}

func (c *tokenCursor) peek() (lexer.Token, bool) {
	if c.i >= len(c.toks) {
		return lexer.Token{}, false
	}
	return c.toks[c.i], true
}

func (c *tokenCursor) next() (lexer.Token, bool) {
	t, ok := c.peek()
	if ok {
		c.i++
	}
	return t, ok
}

// parseTriplesStatement parses one complete buffered statement (its
// tokens, with the trailing Dot already stripped) against graph.
func (p *Parser) parseTriplesStatement(toks []lexer.Token, graph rdfterm.Term) ([]*rdfterm.Quad, error) {
	c := &tokenCursor{toks: toks}
	subj, extra, err := p.parseTerm(c, graph)
	if err != nil {
		return nil, err
	}
	switch subj.(type) {
	case *rdfterm.NamedNode, *rdfterm.BlankNode:
	case *rdfterm.QuotedTriple:
		if !p.withQuotedTriples {
			return nil, errors.New("quoted triples are not enabled")
		}
	default:
		return nil, errors.New("invalid subject term")
	}
	podQuads, err := p.parsePredicateObjectList(c, graph, subj)
	if err != nil {
		return nil, err
	}
	if _, ok := c.peek(); ok {
		return nil, errors.New("unexpected trailing tokens in statement")
	}
	quads := make([]*rdfterm.Quad, 0, len(extra)+len(podQuads))
	quads = append(quads, extra...)
	quads = append(quads, podQuads...)
	return quads, nil
}

func (p *Parser) parsePredicateObjectList(c *tokenCursor, graph, subject rdfterm.Term) ([]*rdfterm.Quad, error) {
	var quads []*rdfterm.Quad
	for {
		if tok, ok := c.peek(); !ok || tok.Kind == lexer.RBracket {
			break
		}
		pred, err := p.parsePredicate(c)
		if err != nil {
			return nil, err
		}
		objQuads, err := p.parseObjectList(c, graph, subject, pred)
		if err != nil {
			return nil, err
		}
		quads = append(quads, objQuads...)

		tok, ok := c.peek()
		if !ok || tok.Kind == lexer.RBracket {
			break
		}
		if tok.Kind == lexer.Semicolon {
			c.next()
			if _, ok := c.peek(); !ok {
				break // trailing ';' with nothing after is allowed
			}
			continue
		}
		return nil, fmt.Errorf("expected ';' or end of statement, got token kind %d", tok.Kind)
	}
	return quads, nil
}

func (p *Parser) parsePredicate(c *tokenCursor) (*rdfterm.NamedNode, error) {
	tok, ok := c.next()
	if !ok {
		return nil, errors.New("expected predicate, found end of statement")
	}
	switch tok.Kind {
	case lexer.KeywordA:
		return rdfterm.RDFType, nil
	case lexer.IRIRef:
		abs, err := p.resolveIRI(tok.Pos, tok.Value)
		if err != nil {
			return nil, err
		}
		return rdfterm.NewNamedNode(abs), nil
	case lexer.PNameLN:
		prefix, local := splitPrefixedName(tok.Value)
		return p.resolvePrefixedName(tok.Pos, prefix, local)
	case lexer.PNameNS:
		return p.resolvePrefixedName(tok.Pos, tok.Value, "")
	default:
		return nil, fmt.Errorf("expected predicate, got token kind %d", tok.Kind)
	}
}

func (p *Parser) parseObjectList(c *tokenCursor, graph, subject rdfterm.Term, pred *rdfterm.NamedNode) ([]*rdfterm.Quad, error) {
	var quads []*rdfterm.Quad
	for {
		obj, extra, err := p.parseTerm(c, graph)
		if err != nil {
			return nil, err
		}
		quads = append(quads, extra...)
		quads = append(quads, rdfterm.NewQuad(subject, pred, obj, graph))

		tok, ok := c.peek()
		if ok && tok.Kind == lexer.Comma {
			c.next()
			continue
		}
		break
	}
	return quads, nil
}

// parseTerm parses a single RDF term at the cursor. extra holds any
// quads desugared out of a blank-node property list or a collection,
// always asserted in graph, the same graph the enclosing statement uses.
func (p *Parser) parseTerm(c *tokenCursor, graph rdfterm.Term) (term rdfterm.Term, extra []*rdfterm.Quad, err error) {
	tok, ok := c.next()
	if !ok {
		return nil, nil, errors.New("expected term, found end of statement")
	}
	switch tok.Kind {
	case lexer.IRIRef:
		abs, rerr := p.resolveIRI(tok.Pos, tok.Value)
		if rerr != nil {
			return nil, nil, rerr
		}
		return rdfterm.NewNamedNode(abs), nil, nil
	case lexer.PNameLN:
		prefix, local := splitPrefixedName(tok.Value)
		n, rerr := p.resolvePrefixedName(tok.Pos, prefix, local)
		if rerr != nil {
			return nil, nil, rerr
		}
		return n, nil, nil
	case lexer.PNameNS:
		n, rerr := p.resolvePrefixedName(tok.Pos, tok.Value, "")
		if rerr != nil {
			return nil, nil, rerr
		}
		return n, nil, nil
	case lexer.BlankNodeLabel:
		return rdfterm.NewBlankNode(p.internBlankLabel(tok.Value)), nil, nil
	case lexer.KeywordA:
		return rdfterm.RDFType, nil, nil
	case lexer.KeywordTrue:
		return rdfterm.NewBooleanLiteral(true), nil, nil
	case lexer.KeywordFalse:
		return rdfterm.NewBooleanLiteral(false), nil, nil
	case lexer.Integer:
		return rdfterm.NewLiteralWithDatatype(tok.Value, rdfterm.XSDInteger), nil, nil
	case lexer.Decimal:
		return rdfterm.NewLiteralWithDatatype(tok.Value, rdfterm.XSDDecimal), nil, nil
	case lexer.Double:
		return rdfterm.NewLiteralWithDatatype(tok.Value, rdfterm.XSDDouble), nil, nil
	case lexer.StringLiteralQuote, lexer.StringLiteralSingleQuote,
		lexer.StringLiteralLongQuote, lexer.StringLiteralLongSingleQuote:
		return p.parseLiteralTail(c, tok.Value)
	case lexer.LBracket:
		return p.parseBlankNodePropertyList(c, graph)
	case lexer.LParen:
		return p.parseCollection(c, graph)
	case lexer.DoubleLAngle:
		return p.parseQuotedTriple(c, graph)
	default:
		return nil, nil, fmt.Errorf("unexpected token in term position (kind %d)", tok.Kind)
	}
}

func (p *Parser) parseLiteralTail(c *tokenCursor, value string) (rdfterm.Term, []*rdfterm.Quad, error) {
	tok, ok := c.peek()
	if !ok {
		return rdfterm.NewLiteral(value), nil, nil
	}
	switch tok.Kind {
	case lexer.LangTag:
		c.next()
		return rdfterm.NewLiteralWithLanguage(value, tok.Value), nil, nil
	case lexer.DoubleCaret:
		c.next()
		dtTok, ok := c.next()
		if !ok {
			return nil, nil, errors.New("expected datatype IRI after '^^'")
		}
		var dt *rdfterm.NamedNode
		var err error
		switch dtTok.Kind {
		case lexer.IRIRef:
			abs, rerr := p.resolveIRI(dtTok.Pos, dtTok.Value)
			if rerr != nil {
				return nil, nil, rerr
			}
			dt = rdfterm.NewNamedNode(abs)
		case lexer.PNameLN:
			prefix, local := splitPrefixedName(dtTok.Value)
			dt, err = p.resolvePrefixedName(dtTok.Pos, prefix, local)
		case lexer.PNameNS:
			dt, err = p.resolvePrefixedName(dtTok.Pos, dtTok.Value, "")
		default:
			return nil, nil, errors.New("expected datatype IRI after '^^'")
		}
		if err != nil {
			return nil, nil, err
		}
		return rdfterm.NewLiteralWithDatatype(value, dt), nil, nil
	default:
		return rdfterm.NewLiteral(value), nil, nil
	}
}

// parseBlankNodePropertyList parses `[ predicateObjectList? ]`, asserting
// its triples against a fresh blank node subject in graph.
func (p *Parser) parseBlankNodePropertyList(c *tokenCursor, graph rdfterm.Term) (rdfterm.Term, []*rdfterm.Quad, error) {
	node := p.newAnonBlankNode()
	if tok, ok := c.peek(); ok && tok.Kind == lexer.RBracket {
		c.next()
		return node, nil, nil
	}
	quads, err := p.parsePredicateObjectList(c, graph, node)
	if err != nil {
		return nil, nil, err
	}
	tok, ok := c.next()
	if !ok || tok.Kind != lexer.RBracket {
		return nil, nil, errors.New("expected ']' to close blank node property list")
	}
	return node, quads, nil
}

// parseCollection parses `( term* )`, desugaring to an rdf:first/rdf:rest
// chain terminated by rdf:nil, all asserted in graph.
func (p *Parser) parseCollection(c *tokenCursor, graph rdfterm.Term) (rdfterm.Term, []*rdfterm.Quad, error) {
	var items []rdfterm.Term
	var extra []*rdfterm.Quad
	for {
		tok, ok := c.peek()
		if !ok {
			return nil, nil, errors.New("unterminated collection")
		}
		if tok.Kind == lexer.RParen {
			c.next()
			break
		}
		item, itemExtra, err := p.parseTerm(c, graph)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, item)
		extra = append(extra, itemExtra...)
	}
	if len(items) == 0 {
		return rdfterm.RDFNil, extra, nil
	}
	nodes := make([]*rdfterm.BlankNode, len(items))
	for i := range items {
		nodes[i] = p.newAnonBlankNode()
	}
	for i, item := range items {
		extra = append(extra, rdfterm.NewQuad(nodes[i], rdfterm.RDFFirst, item, graph))
		var rest rdfterm.Term
		if i == len(items)-1 {
			rest = rdfterm.RDFNil
		} else {
			rest = nodes[i+1]
		}
		extra = append(extra, rdfterm.NewQuad(nodes[i], rdfterm.RDFRest, rest, graph))
	}
	return nodes[0], extra, nil
}

// parseQuotedTriple parses `<< subject predicate object >>`.
func (p *Parser) parseQuotedTriple(c *tokenCursor, graph rdfterm.Term) (rdfterm.Term, []*rdfterm.Quad, error) {
	if !p.withQuotedTriples {
		return nil, nil, errors.New("quoted triples are not enabled")
	}
	subj, subjExtra, err := p.parseTerm(c, graph)
	if err != nil {
		return nil, nil, err
	}
	if len(subjExtra) > 0 {
		return nil, nil, errors.New("quoted triple subject may not introduce a blank node property list or collection")
	}
	pred, err := p.parsePredicate(c)
	if err != nil {
		return nil, nil, err
	}
	obj, objExtra, err := p.parseTerm(c, graph)
	if err != nil {
		return nil, nil, err
	}
	if len(objExtra) > 0 {
		return nil, nil, errors.New("quoted triple object may not introduce a blank node property list or collection")
	}
	tok, ok := c.next()
	if !ok || tok.Kind != lexer.DoubleRAngle {
		return nil, nil, errors.New("expected '>>' to close quoted triple")
	}
	qt, qerr := rdfterm.NewQuotedTriple(subj, pred, obj)
	if qerr != nil {
		return nil, nil, qerr
	}
	return qt, nil, nil
}
