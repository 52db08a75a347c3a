package raxml

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikelihoods(t *testing.T) {
	fn := writeFile(t, "search.raxml.log", searchLog)

	llh, err := Likelihoods(fn)
	require.NoError(t, err)
	assert.Equal(t, []float64{-6480.25, -6490.5, -6485.304526}, llh)

	bs, err := BootstrapLikelihoods(fn)
	require.NoError(t, err)
	assert.Equal(t, []float64{-2746.271209, -2750.1}, bs)
}

func TestLikelihoodsEmpty(t *testing.T) {
	fn := writeFile(t, "empty.raxml.log", "Elapsed time: 1.0 seconds\n")

	llh, err := Likelihoods(fn)
	require.NoError(t, err)
	assert.Empty(t, llh)
}

func TestLikelihoodValueAfterLastColon(t *testing.T) {
	// The timestamp contains colons too; only the last one counts.
	samples, err := ParseSearchSamples([]string{
		"[10:20:30] [worker #2] ML tree search #3, logLikelihood: -10.5",
	})
	require.NoError(t, err)
	assert.Equal(t, []LikelihoodSample{{TreeIndex: 3, LogLikelihood: -10.5}}, samples)
}

func TestLikelihoodMalformedValue(t *testing.T) {
	_, err := ParseLikelihoods([]string{
		"header",
		"[00:00:01] ML tree search #1, logLikelihood: -10.5 (slow)",
	})
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Line)
}

func TestLikelihoodsNotFound(t *testing.T) {
	_, err := Likelihoods(filepath.Join(t.TempDir(), "missing.log"))
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
}
