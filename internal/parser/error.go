package parser

import (
	"fmt"

	"github.com/cindergame/cinderc/internal/span"
)

// ParseError is a single recoverable or fatal parsing diagnostic.
type ParseError struct {
	Span    span.Span
	Message string
	Code    string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Span, e.Message)
}

// Error code constants for programmatic handling by downstream tooling.
const (
	ErrUnexpectedToken = "E_UNEXPECTED_TOKEN"
	ErrMissingRParen   = "E_MISSING_RPAREN"
	ErrMissingRBracket = "E_MISSING_RBRACKET"
	ErrMissingRBrace   = "E_MISSING_RBRACE"
	ErrExpectedIdent   = "E_EXPECTED_IDENT"
	ErrExpectedType    = "E_EXPECTED_TYPE"
	ErrInvalidSyntax   = "E_INVALID_SYNTAX"
)
