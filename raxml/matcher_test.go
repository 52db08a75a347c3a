package raxml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatcherWorkerOptional(t *testing.T) {
	groups, ok := searchMatcher.TryMatch("[00:00:27] [worker #4] ML tree search #13, logLikelihood: -6485.304526")
	assert.True(t, ok)
	assert.Equal(t, "[worker #4]", groups[0])
	assert.Equal(t, "13", groups[1])

	groups, ok = searchMatcher.TryMatch("[00:00:27] ML tree search #7, logLikelihood: -6485.304526")
	assert.True(t, ok)
	assert.Equal(t, "", groups[0])
	assert.Equal(t, "7", groups[1])
}

func TestMatcherGuard(t *testing.T) {
	// Matches the expression, but not the literal guard.
	_, ok := searchMatcher.TryMatch("[00:00:27] ML tree search #7, loglikelihood: -1")
	assert.False(t, ok)

	_, ok = bootstrapMatcher.TryMatch("[00:00:27] ML tree search #7, logLikelihood: -1")
	assert.False(t, ok)

	// The information criteria line has to start with the label.
	_, ok = icMatcher.TryMatch(" AIC score: 1 / AICc score: 2 / BIC score: 3")
	assert.False(t, ok)
	_, ok = icMatcher.TryMatch("AIC score: 1 / AICc score: 2 / BIC score: 3")
	assert.True(t, ok)
}
