package jsx

import (
	"errors"
	"fmt"
)

// ErrSyntax indicates the parser rejected the source text.
var ErrSyntax = errors.New("syntax error")

// SyntaxError locates a parse failure. Line and Column are zero-based.
type SyntaxError struct {
	Message string
	Line    int
	Column  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line+1, e.Column+1, e.Message)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// NewSyntaxError creates a new syntax error
func NewSyntaxError(message string, line, column int) error {
	return &SyntaxError{Message: message, Line: line, Column: column}
}
