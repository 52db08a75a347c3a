// Package raxml extracts numerical results from raxml-ng log files and
// runs raxml-ng to compute Robinson-Foulds distances for tree sets.
//
// Every extractor recognises one family of log lines. Extractors for
// optional facts (difficulty, information criteria, alignment
// dimensions) report absence in their result, while the elapsed time,
// the final log-likelihood and the RF distance fail if the value is
// missing.
package raxml

import (
	"regexp"
	"strings"

	"github.com/op/go-logging"
)

// log is the package logger.
var log = logging.MustGetLogger("raxml")

// Matcher recognises a single kind of log line.
type Matcher struct {
	// Guard is a literal substring a line has to contain before the
	// regular expression is tried.
	Guard string
	// Prefix requires the line to start with Guard.
	Prefix bool
	re     *regexp.Regexp
}

// NewMatcher creates a matcher, panicking if expr does not compile.
func NewMatcher(guard string, prefix bool, expr string) *Matcher {
	return &Matcher{
		Guard:  guard,
		Prefix: prefix,
		re:     regexp.MustCompile(expr),
	}
}

// Guarded reports whether the line passes the literal guard.
func (m *Matcher) Guarded(line string) bool {
	if m.Prefix {
		return strings.HasPrefix(line, m.Guard)
	}
	return strings.Contains(line, m.Guard)
}

// TryMatch returns the capture groups of the first match on the line
// (without the full match), ok is false if the line does not qualify.
func (m *Matcher) TryMatch(line string) (groups []string, ok bool) {
	if !m.Guarded(line) {
		return nil, false
	}
	sm := m.re.FindStringSubmatch(line)
	if sm == nil {
		return nil, false
	}
	return sm[1:], true
}

var (
	// [00:00:27] [worker #4] ML tree search #13, logLikelihood: -6485.304526
	searchMatcher = NewMatcher("logLikelihood", false,
		`\[\d+:\d+:\d+\]\s*(\[worker\s+#\d+\])?\s+ML\s+tree\s+search\s+#(\d+),\s+logLikelihood`)
	// [00:00:00] [worker #0] Bootstrap tree #1, logLikelihood: -2746.271209
	bootstrapMatcher = NewMatcher("logLikelihood", false,
		`\[\d+:\d+:\d+\]\s*(\[worker\s+#\d+\])?\s+Bootstrap\s+tree\s+#(\d+),\s+logLikelihood`)
	// AIC score: 1640560.457503 / AICc score: 1640565.191951 / BIC score: 1642721.583409
	icMatcher = NewMatcher("AIC score:", true,
		`AIC score:\s+([0-9.]+)\s+/\s+AICc score:\s+([0-9.]+)\s+/\s+BIC score:\s+([0-9.]+)`)
	// [00:00:00] Predicted difficulty: 0.07
	difficultyMatcher = NewMatcher("difficulty:", false,
		`\[\d+:\d+:\d+\]\s*Predicted difficulty:\s([0-9.]+)`)
	// [00:00:00] Loaded alignment with 994 taxa and 5533 sites
	alignmentMatcher = NewMatcher("Loaded alignment", false,
		`\[\d+:\d+:\d+\]\s*Loaded alignment with\s([0-9]+) taxa and ([0-9]+) sites`)
	// Alignment comprises 1 partitions and 3363 patterns
	partitionMatcher = NewMatcher("Alignment comprises", false,
		`Alignment comprises\s([0-9]+) partitions and ([0-9]+) patterns`)
	// ((A,B)90:0.1,(C,D)75:0.2);
	supportRe = regexp.MustCompile(`\)(\d+):`)
)
