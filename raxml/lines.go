package raxml

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// open opens a file, converting a missing file into NotFoundError.
func open(fn string) (*os.File, error) {
	f, err := os.Open(fn)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &NotFoundError{Path: fn, Err: err}
	}
	return f, err
}

// readLine reads a single line of any length, without the trailing
// newline. It returns io.EOF only if nothing was read.
func readLine(rd *bufio.Reader) (string, error) {
	line, err := rd.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, err
}

// ParseLines splits the reader contents into lines.
func ParseLines(r io.Reader) ([]string, error) {
	var lines []string
	rd := bufio.NewReader(r)
	for {
		line, err := readLine(rd)
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
}

// ReadLines returns lines of a file in file order. Newlines are stripped.
func ReadLines(fn string) ([]string, error) {
	f, err := open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lines, err := ParseLines(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", fn, err)
	}
	log.Debugf("read %d lines from %s", len(lines), fn)
	return lines, nil
}

// ReadFirstLine returns the first line of a file, surrounding whitespace
// is removed. An empty file gives an empty line.
func ReadFirstLine(fn string) (string, error) {
	f, err := open(fn)
	if err != nil {
		return "", err
	}
	defer f.Close()

	line, err := readLine(bufio.NewReader(f))
	if err == io.EOF {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", fn, err)
	}
	return strings.TrimSpace(line), nil
}
