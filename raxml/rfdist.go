package raxml

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	absRFLabel   = "Average absolute RF distance in this tree set:"
	relRFLabel   = "Average relative RF distance in this tree set:"
	ntoposLabel  = "Number of unique topologies in this tree set:"
	rfdistPrefix = "rfdist"
	logSuffix    = ".raxml.log"
)

// RFDistanceResult is the RF distance summary of a tree set.
type RFDistanceResult struct {
	NumUniqueTopologies int     `json:"numUniqueTopologies"`
	RelativeDistance    float64 `json:"relativeDistance"`
	AbsoluteDistance    float64 `json:"absoluteDistance"`
}

// ParseRFDistance extracts the RF distance summary from the lines of a
// raxml-ng --rfdist log. All three values are required.
func ParseRFDistance(lines []string) (*RFDistanceResult, error) {
	var (
		res                    RFDistanceResult
		hasAbs, hasRel, hasTop bool
	)
	for i, line := range lines {
		var err error
		switch {
		case strings.Contains(line, absRFLabel):
			res.AbsoluteDistance, err = ValueFromLine(line, absRFLabel)
			hasAbs = err == nil
		case strings.Contains(line, relRFLabel):
			res.RelativeDistance, err = ValueFromLine(line, relRFLabel)
			hasRel = err == nil
		case strings.Contains(line, ntoposLabel):
			var n float64
			n, err = ValueFromLine(line, ntoposLabel)
			res.NumUniqueTopologies = int(n)
			hasTop = err == nil
		}
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Line = i + 1
			return nil, pe
		}
	}

	var missing []string
	if !hasAbs {
		missing = append(missing, "absolute RF distance")
	}
	if !hasRel {
		missing = append(missing, "relative RF distance")
	}
	if !hasTop {
		missing = append(missing, "number of unique topologies")
	}
	if len(missing) > 0 {
		return nil, &ParseError{Msg: "missing " + strings.Join(missing, ", ")}
	}
	return &res, nil
}

// RFDist computes RF distances by running raxml-ng.
type RFDist struct {
	// Binary is the raxml-ng executable.
	Binary string
	// Runner starts raxml-ng; ExecRunner is used if nil.
	Runner Runner
	// TempRoot is the directory for the temporary working directory,
	// os.TempDir() if empty.
	TempRoot string
}

// NewRFDist creates an RFDist running binary as a child process.
func NewRFDist(binary string) *RFDist {
	if binary == "" {
		binary = DefaultBinary
	}
	return &RFDist{
		Binary: binary,
		Runner: ExecRunner{},
	}
}

// Distance runs raxml-ng --rfdist on a file with trees (one per line) and
// returns the average distances and the number of unique topologies.
// raxml-ng output goes to a temporary directory, which is removed before
// Distance returns.
func (r *RFDist) Distance(ctx context.Context, treesFile string) (res *RFDistanceResult, err error) {
	if _, err := os.Stat(treesFile); errors.Is(err, fs.ErrNotExist) {
		return nil, &NotFoundError{Path: treesFile, Err: err}
	}

	dir, err := os.MkdirTemp(r.TempRoot, rfdistPrefix)
	if err != nil {
		return nil, fmt.Errorf("creating temporary directory: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			log.Warningf("error removing %s: %v", dir, rmErr)
			if err == nil {
				res, err = nil, rmErr
			}
		}
	}()

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	prefix := filepath.Join(absDir, rfdistPrefix)

	runner := r.Runner
	if runner == nil {
		runner = ExecRunner{}
	}
	args := []string{"--rfdist", treesFile, "--prefix", prefix}
	output, err := runner.Run(ctx, r.Binary, args)
	if err != nil {
		return nil, &ToolExecutionError{Binary: r.Binary, Args: args, Output: output, Err: err}
	}

	logFile := prefix + logSuffix
	lines, err := ReadLines(logFile)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return nil, &ToolExecutionError{
				Binary: r.Binary,
				Args:   args,
				Output: output,
				Err:    fmt.Errorf("no log file %s", filepath.Base(logFile)),
			}
		}
		return nil, err
	}

	res, err = ParseRFDistance(lines)
	if err != nil {
		return nil, withPath(err, filepath.Base(logFile))
	}
	log.Debugf("%s: %d unique topologies, relative RF=%v, absolute RF=%v",
		treesFile, res.NumUniqueTopologies, res.RelativeDistance, res.AbsoluteDistance)
	return res, nil
}
