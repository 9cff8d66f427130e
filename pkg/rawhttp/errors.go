package rawhttp

import "fmt"

// InvalidHTTPRequest is raised while parsing a request-line or status-line.
// LineNumber is 1-based; it is 0 only when the input was entirely empty.
type InvalidHTTPRequest struct {
	Message    string
	LineNumber int
}

func (e *InvalidHTTPRequest) Error() string {
	return e.Message
}

// InvalidHTTPHeader is raised while parsing header field-lines. Its Error
// string is Message followed by a "(lineNumber)" suffix identifying the
// offending line.
type InvalidHTTPHeader struct {
	Message    string
	LineNumber int
}

func (e *InvalidHTTPHeader) Error() string {
	return fmt.Sprintf("%s(%d)", e.Message, e.LineNumber)
}

// ErrorFactory produces the error value a low-level routine should raise,
// letting the same scanning code serve both start-line and header parsing
// without hard-coding which error family applies.
type ErrorFactory func(message string, lineNumber int) error

// RequestErrorFactory is the ErrorFactory used when parsing start-lines.
func RequestErrorFactory(message string, lineNumber int) error {
	return &InvalidHTTPRequest{Message: message, LineNumber: lineNumber}
}

// HeaderErrorFactory is the ErrorFactory used when parsing headers.
func HeaderErrorFactory(message string, lineNumber int) error {
	return &InvalidHTTPHeader{Message: message, LineNumber: lineNumber}
}
