package raxml

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

// LikelihoodSample is a log-likelihood of a single numbered tree.
type LikelihoodSample struct {
	TreeIndex     int
	LogLikelihood float64
}

// withPath sets the file name of a ParseError or a MissingDataError
// returned by a line parser.
func withPath(err error, fn string) error {
	var pe *ParseError
	if errors.As(err, &pe) && pe.Path == "" {
		pe.Path = fn
	}
	var me *MissingDataError
	if errors.As(err, &me) && me.Path == "" {
		me.Path = fn
	}
	return err
}

// parseSamples collects likelihood samples from the lines recognised by
// m. The tree index comes from the pattern, the value is whatever
// follows the last colon of the line.
func parseSamples(lines []string, m *Matcher) ([]LikelihoodSample, error) {
	var samples []LikelihoodSample
	for i, line := range lines {
		groups, ok := m.TryMatch(line)
		if !ok {
			continue
		}
		id, err := strconv.Atoi(groups[1])
		if err != nil {
			return nil, &ParseError{Line: i + 1, Msg: "bad tree index", Err: err}
		}
		llh, err := strconv.ParseFloat(strings.TrimSpace(line[strings.LastIndex(line, ":")+1:]), 64)
		if err != nil {
			return nil, &ParseError{Line: i + 1, Msg: "bad log-likelihood", Err: err}
		}
		samples = append(samples, LikelihoodSample{TreeIndex: id, LogLikelihood: llh})
	}
	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].TreeIndex < samples[j].TreeIndex
	})
	return samples, nil
}

// series drops tree indices from the samples.
func series(samples []LikelihoodSample) []float64 {
	res := make([]float64, len(samples))
	for i, s := range samples {
		res[i] = s.LogLikelihood
	}
	return res
}

// ParseSearchSamples returns ML tree search samples sorted by tree index.
func ParseSearchSamples(lines []string) ([]LikelihoodSample, error) {
	return parseSamples(lines, searchMatcher)
}

// ParseBootstrapSamples returns bootstrap tree samples sorted by tree index.
func ParseBootstrapSamples(lines []string) ([]LikelihoodSample, error) {
	return parseSamples(lines, bootstrapMatcher)
}

// ParseLikelihoods returns log-likelihoods of ML tree searches ordered
// by tree index. Lines without a search result give an empty series.
func ParseLikelihoods(lines []string) ([]float64, error) {
	samples, err := ParseSearchSamples(lines)
	if err != nil {
		return nil, err
	}
	return series(samples), nil
}

// ParseBootstrapLikelihoods returns log-likelihoods of bootstrap trees
// ordered by tree index.
func ParseBootstrapLikelihoods(lines []string) ([]float64, error) {
	samples, err := ParseBootstrapSamples(lines)
	if err != nil {
		return nil, err
	}
	return series(samples), nil
}

// readSamples reads likelihood samples of a log file with parse.
func readSamples(fn, kind string, parse func([]string) ([]LikelihoodSample, error)) ([]LikelihoodSample, error) {
	lines, err := ReadLines(fn)
	if err != nil {
		return nil, err
	}
	samples, err := parse(lines)
	if err != nil {
		return nil, withPath(err, fn)
	}
	log.Debugf("%s: %d %s likelihoods", fn, len(samples), kind)
	return samples, nil
}

// SearchSamples reads ML tree search samples from a log file.
func SearchSamples(fn string) ([]LikelihoodSample, error) {
	return readSamples(fn, "ML search", ParseSearchSamples)
}

// BootstrapSamples reads bootstrap tree samples from a log file.
func BootstrapSamples(fn string) ([]LikelihoodSample, error) {
	return readSamples(fn, "bootstrap", ParseBootstrapSamples)
}

// Likelihoods reads ML tree search log-likelihoods from a log file.
func Likelihoods(fn string) ([]float64, error) {
	samples, err := SearchSamples(fn)
	if err != nil {
		return nil, err
	}
	return series(samples), nil
}

// BootstrapLikelihoods reads bootstrap log-likelihoods from a log file.
func BootstrapLikelihoods(fn string) ([]float64, error) {
	samples, err := BootstrapSamples(fn)
	if err != nil {
		return nil, err
	}
	return series(samples), nil
}
