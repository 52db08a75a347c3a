package raxml

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ValueFromLine returns the numeric token following label in line.
func ValueFromLine(line, label string) (float64, error) {
	i := strings.Index(line, label)
	if i < 0 {
		return 0, &ParseError{Msg: fmt.Sprintf("no %q in line", label)}
	}
	fields := strings.Fields(line[i+len(label):])
	if len(fields) == 0 {
		return 0, &ParseError{Msg: fmt.Sprintf("no value after %q", label)}
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, &ParseError{Msg: fmt.Sprintf("bad value after %q", label), Err: err}
	}
	return v, nil
}

// ParseSingleValue returns the value following label on the first line
// containing it. MissingDataError is returned if no line has the label.
func ParseSingleValue(lines []string, label string) (float64, error) {
	for i, line := range lines {
		if !strings.Contains(line, label) {
			continue
		}
		v, err := ValueFromLine(line, label)
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Line = i + 1
		}
		return v, err
	}
	return 0, &MissingDataError{Label: label}
}

// SingleValue reads the value following label from a file.
func SingleValue(fn, label string) (float64, error) {
	lines, err := ReadLines(fn)
	if err != nil {
		return 0, err
	}
	v, err := ParseSingleValue(lines, label)
	return v, withPath(err, fn)
}

// BestLikelihood reads the final log-likelihood of the best ML tree.
func BestLikelihood(fn string) (float64, error) {
	return SingleValue(fn, finalLogLikelihood)
}
