package parser

import "fmt"

// ParseError reports a syntax error found while assembling tokens into a
// selector or expression tree, positioned by line and column.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("jsonpath: parse error at %d:%d: %s", e.Line, e.Column, e.Message)
}

func errAt(tok Token, format string, args ...any) error {
	return &ParseError{Line: tok.Line, Column: tok.Column, Message: fmt.Sprintf(format, args...)}
}
