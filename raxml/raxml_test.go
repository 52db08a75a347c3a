package raxml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// searchLog is a shortened raxml-ng log of a tree search with bootstrap.
const searchLog = `RAxML-NG v. 1.2.0 released on 09.05.2023 by The Exelixis Lab.

[00:00:00] Loaded alignment with 994 taxa and 5533 sites
[00:00:00] Predicted difficulty: 0.07

Alignment comprises 1 partitions and 3363 patterns

[00:00:00] [worker #0] Bootstrap tree #2, logLikelihood: -2750.100000
[00:00:00] [worker #1] Bootstrap tree #1, logLikelihood: -2746.271209
[00:00:27] [worker #4] ML tree search #13, logLikelihood: -6485.304526
[00:00:28] ML tree search #2, logLikelihood: -6490.5
[00:00:29] [worker #0] ML tree search #1, logLikelihood: -6480.25

Final LogLikelihood: -6480.250000

AIC score: 1640560.457503 / AICc score: 1640565.191951 / BIC score: 1642721.583409

Elapsed time: 63514.086 seconds
Elapsed time: 1.0 seconds
`

// writeFile writes content to a file in a temporary directory.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fn, []byte(content), 0644))
	return fn
}
