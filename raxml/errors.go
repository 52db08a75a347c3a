package raxml

import (
	"fmt"
	"strings"
)

// NotFoundError is returned when an input file does not exist.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// MissingDataError is returned when a required value is absent from a
// log after the whole file has been scanned.
type MissingDataError struct {
	Path  string
	Label string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("the given input file %s does not contain %q", e.Path, e.Label)
}

// ToolExecutionError is returned when raxml-ng exits with an error, cannot
// be started or does not produce the expected output file.
type ToolExecutionError struct {
	Binary string
	Args   []string
	// Output is the combined stdout and stderr of the child process.
	Output []byte
	Err    error
}

func (e *ToolExecutionError) Error() string {
	cmd := strings.Join(append([]string{e.Binary}, e.Args...), " ")
	return fmt.Sprintf("error running %q: %v", cmd, e.Err)
}

func (e *ToolExecutionError) Unwrap() error {
	return e.Err
}

// ParseError is returned when a log line cannot be converted to a value,
// or when a composite result is incomplete. Line is 1-based, 0 means the
// error concerns the whole file.
type ParseError struct {
	Path string
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	s := "error parsing raxml-ng logfile " + e.Path
	if e.Line > 0 {
		s += fmt.Sprintf(":%d", e.Line)
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
