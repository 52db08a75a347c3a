package raxml

import (
	"errors"
	"strconv"
	"strings"
)

const (
	elapsedLabel       = "Elapsed time:"
	restartsMarker     = "restarts"
	finalLogLikelihood = "Final LogLikelihood:"
)

// InformationCriteria holds the AIC, AICc and BIC scores of a run.
type InformationCriteria struct {
	AIC  float64 `json:"aic"`
	AICc float64 `json:"aicc"`
	BIC  float64 `json:"bic"`
}

// MSADimensions describes the alignment a run was performed on. Taxa and
// sites come from the same line and are known together; so are patterns
// and partitions.
type MSADimensions struct {
	NumTaxa       int  `json:"numTaxa"`
	NumSites      int  `json:"numSites"`
	NumPatterns   int  `json:"numPatterns"`
	NumPartitions int  `json:"numPartitions"`
	HasSites      bool `json:"hasSites"`
	HasPatterns   bool `json:"hasPatterns"`
}

// Complete reports whether all four dimensions are known.
func (d MSADimensions) Complete() bool {
	return d.HasSites && d.HasPatterns
}

// ElapsedTimeFromLine parses an "Elapsed time:" line. For a restarted
// run the total time with restarts is returned, not the last run time.
//
//	Elapsed time: 63514.086 seconds
//	Elapsed time: 5562.869 seconds (this run) / 91413.668 seconds (total with restarts)
func ElapsedTimeFromLine(line string) (float64, error) {
	var value string
	if strings.Contains(line, restartsMarker) {
		i := strings.LastIndex(line, "/")
		if i < 0 {
			return 0, &ParseError{Msg: "no total time in restarted run line: " + line}
		}
		fields := strings.Fields(line[i+1:])
		if len(fields) < 1 {
			return 0, &ParseError{Msg: "no total time in restarted run line: " + line}
		}
		value = fields[0]
	} else {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return 0, &ParseError{Msg: "no value in elapsed time line: " + line}
		}
		value = fields[2]
	}
	t, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &ParseError{Msg: "bad elapsed time", Err: err}
	}
	return t, nil
}

// ParseElapsedTime returns the elapsed time in seconds from the first
// "Elapsed time:" line. MissingDataError is returned if there is none.
func ParseElapsedTime(lines []string) (float64, error) {
	for i, line := range lines {
		if !strings.Contains(line, elapsedLabel) {
			continue
		}
		t, err := ElapsedTimeFromLine(line)
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Line = i + 1
		}
		return t, err
	}
	return 0, &MissingDataError{Label: elapsedLabel}
}

// ElapsedTime reads the elapsed time of a run from a log file.
func ElapsedTime(fn string) (float64, error) {
	lines, err := ReadLines(fn)
	if err != nil {
		return 0, err
	}
	t, err := ParseElapsedTime(lines)
	return t, withPath(err, fn)
}

// parseFloats converts all strings to floats.
func parseFloats(ss []string) ([]float64, error) {
	res := make([]float64, len(ss))
	for i, s := range ss {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		res[i] = f
	}
	return res, nil
}

// ParseInformationCriteria returns the scores from the first complete
// "AIC score:" line. nil is returned if there is no such line.
func ParseInformationCriteria(lines []string) (*InformationCriteria, error) {
	for i, line := range lines {
		groups, ok := icMatcher.TryMatch(line)
		if !ok {
			continue
		}
		v, err := parseFloats(groups)
		if err != nil {
			return nil, &ParseError{Line: i + 1, Msg: "bad information criterion", Err: err}
		}
		return &InformationCriteria{AIC: v[0], AICc: v[1], BIC: v[2]}, nil
	}
	return nil, nil
}

// ICScores reads information criteria from a log file. A log without
// them gives nil and no error.
func ICScores(fn string) (*InformationCriteria, error) {
	lines, err := ReadLines(fn)
	if err != nil {
		return nil, err
	}
	ic, err := ParseInformationCriteria(lines)
	return ic, withPath(err, fn)
}

// ParseDifficulty returns the predicted difficulty (pythia score). ok is
// false if the log does not contain a prediction.
func ParseDifficulty(lines []string) (difficulty float64, ok bool, err error) {
	for i, line := range lines {
		groups, matched := difficultyMatcher.TryMatch(line)
		if !matched {
			continue
		}
		difficulty, err = strconv.ParseFloat(groups[0], 64)
		if err != nil {
			return 0, false, &ParseError{Line: i + 1, Msg: "bad difficulty", Err: err}
		}
		return difficulty, true, nil
	}
	return 0, false, nil
}

// Difficulty reads the predicted difficulty from a log file.
func Difficulty(fn string) (difficulty float64, ok bool, err error) {
	lines, err := ReadLines(fn)
	if err != nil {
		return 0, false, err
	}
	difficulty, ok, err = ParseDifficulty(lines)
	return difficulty, ok, withPath(err, fn)
}

// ParseMSADimensions collects alignment dimensions. The scan stops at the
// partition summary line, which follows the alignment line. Whatever was
// found before the end of the lines is returned.
func ParseMSADimensions(lines []string) (d MSADimensions, err error) {
	for i, line := range lines {
		if alignmentMatcher.Guarded(line) {
			groups, ok := alignmentMatcher.TryMatch(line)
			if !ok {
				continue
			}
			taxa, err1 := strconv.Atoi(groups[0])
			sites, err2 := strconv.Atoi(groups[1])
			if err1 != nil || err2 != nil {
				return d, &ParseError{Line: i + 1, Msg: "bad alignment size: " + line}
			}
			d.NumTaxa, d.NumSites, d.HasSites = taxa, sites, true
		} else if partitionMatcher.Guarded(line) {
			groups, ok := partitionMatcher.TryMatch(line)
			if !ok {
				continue
			}
			parts, err1 := strconv.Atoi(groups[0])
			patterns, err2 := strconv.Atoi(groups[1])
			if err1 != nil || err2 != nil {
				return d, &ParseError{Line: i + 1, Msg: "bad partition summary: " + line}
			}
			d.NumPartitions, d.NumPatterns, d.HasPatterns = parts, patterns, true
			break
		}
	}
	return d, nil
}

// MSA reads alignment dimensions from a log file.
func MSA(fn string) (MSADimensions, error) {
	lines, err := ReadLines(fn)
	if err != nil {
		return MSADimensions{}, err
	}
	d, err := ParseMSADimensions(lines)
	return d, withPath(err, fn)
}
