package trig

import (
	"fmt"

	"github.com/oxtrig/trig/internal/parser"
)

// ErrorKind and ParseError are re-exported from internal/parser: the
// recognizer is the only thing that produces them, pkg/trig just gives
// callers a name that doesn't require importing an internal package.
type ErrorKind = parser.ErrorKind
type ParseError = parser.ParseError

const (
	LexicalError  = parser.LexicalError
	GrammarError  = parser.GrammarError
	SemanticError = parser.SemanticError
	UnexpectedEOF = parser.UnexpectedEOF
)

// ParseOrIOError wraps either a *ParseError from the recognizer or an I/O
// error from the pull adapter's underlying reader, so PullReader.Next can
// report both failure modes through a single error return without the
// caller losing the distinction.
type ParseOrIOError struct {
	ParseErr *ParseError
	IOErr    error
}

func (e *ParseOrIOError) Error() string {
	if e.IOErr != nil {
		return fmt.Sprintf("I/O error: %v", e.IOErr)
	}
	return e.ParseErr.Error()
}

func (e *ParseOrIOError) Unwrap() error {
	if e.IOErr != nil {
		return e.IOErr
	}
	return e.ParseErr
}
