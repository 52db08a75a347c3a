package raxml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rfdistLog = `RAxML-NG v. 1.2.0 released on 09.05.2023 by The Exelixis Lab.

[00:00:00] Loading input trees from: trees.nwk
[00:00:00] Loaded 4 trees with 4 taxa.

Average absolute RF distance in this tree set: 0.666667
Average relative RF distance in this tree set: 0.333333
Number of unique topologies in this tree set: 3

Elapsed time: 0.002 seconds
`

const treeSet = "((A,B),(C,D));\n((A,C),(B,D));\n((A,D),(B,C));\n((A,B),(C,D));\n"

// fakeRunner writes log (if not empty) to the prefix given to raxml-ng.
type fakeRunner struct {
	log    string
	output []byte
	err    error
	args   []string
	// hook, if set, is called with the prefix after the log is written.
	hook func(prefix string)
}

func (f *fakeRunner) Run(ctx context.Context, binary string, args []string) ([]byte, error) {
	f.args = args
	if f.log != "" {
		prefix := args[len(args)-1]
		if err := os.WriteFile(prefix+logSuffix, []byte(f.log), 0644); err != nil {
			return nil, err
		}
	}
	if f.hook != nil {
		f.hook(args[len(args)-1])
	}
	return f.output, f.err
}

// newTestRFDist creates an RFDist with its own temporary root.
func newTestRFDist(t *testing.T, runner Runner) *RFDist {
	return &RFDist{Binary: "raxml-ng", Runner: runner, TempRoot: t.TempDir()}
}

// assertCleanedUp checks that the temporary root is empty.
func assertCleanedUp(t *testing.T, r *RFDist) {
	entries, err := os.ReadDir(r.TempRoot)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParseRFDistance(t *testing.T) {
	lines, err := ParseLines(strings.NewReader(rfdistLog))
	require.NoError(t, err)

	res, err := ParseRFDistance(lines)
	require.NoError(t, err)
	assert.Equal(t, &RFDistanceResult{
		NumUniqueTopologies: 3,
		RelativeDistance:    0.333333,
		AbsoluteDistance:    0.666667,
	}, res)
}

func TestParseRFDistanceIncomplete(t *testing.T) {
	_, err := ParseRFDistance([]string{
		"Average absolute RF distance in this tree set: 0.666667",
		"Number of unique topologies in this tree set: 3",
	})
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Contains(t, pe.Error(), "relative RF distance")
}

func TestRFDistance(t *testing.T) {
	trees := writeFile(t, "trees.nwk", treeSet)
	runner := &fakeRunner{log: rfdistLog}
	r := newTestRFDist(t, runner)

	res, err := r.Distance(context.Background(), trees)
	require.NoError(t, err)
	assert.Equal(t, 3, res.NumUniqueTopologies)
	assert.Equal(t, 0.333333, res.RelativeDistance)
	assert.Equal(t, 0.666667, res.AbsoluteDistance)

	require.Len(t, runner.args, 4)
	assert.Equal(t, "--rfdist", runner.args[0])
	assert.Equal(t, trees, runner.args[1])
	assert.Equal(t, "--prefix", runner.args[2])
	assert.True(t, filepath.IsAbs(runner.args[3]))
	assertCleanedUp(t, r)
}

func TestRFDistanceCleanupFails(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can remove files from read-only directories")
	}
	trees := writeFile(t, "trees.nwk", treeSet)
	runner := &fakeRunner{
		log: rfdistLog,
		hook: func(prefix string) {
			locked := filepath.Join(filepath.Dir(prefix), "locked")
			require.NoError(t, os.Mkdir(locked, 0700))
			require.NoError(t, os.WriteFile(filepath.Join(locked, "tree"), nil, 0644))
			require.NoError(t, os.Chmod(locked, 0500))
			t.Cleanup(func() { os.Chmod(locked, 0700) })
		},
	}
	r := newTestRFDist(t, runner)

	res, err := r.Distance(context.Background(), trees)
	assert.Error(t, err)
	assert.Nil(t, res)
}

func TestRFDistanceToolFails(t *testing.T) {
	trees := writeFile(t, "trees.nwk", treeSet)
	runner := &fakeRunner{
		log:    rfdistLog,
		output: []byte("ERROR: something went wrong"),
		err:    errors.New("exit status 1"),
	}
	r := newTestRFDist(t, runner)

	_, err := r.Distance(context.Background(), trees)
	var te *ToolExecutionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "ERROR: something went wrong", string(te.Output))
	assertCleanedUp(t, r)
}

func TestRFDistanceNoLog(t *testing.T) {
	trees := writeFile(t, "trees.nwk", treeSet)
	r := newTestRFDist(t, &fakeRunner{})

	_, err := r.Distance(context.Background(), trees)
	var te *ToolExecutionError
	require.True(t, errors.As(err, &te))
	assertCleanedUp(t, r)
}

func TestRFDistanceIncompleteLog(t *testing.T) {
	trees := writeFile(t, "trees.nwk", treeSet)
	r := newTestRFDist(t, &fakeRunner{log: "Number of unique topologies in this tree set: 3\n"})

	_, err := r.Distance(context.Background(), trees)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "rfdist.raxml.log", pe.Path)
	assertCleanedUp(t, r)
}

func TestRFDistanceMissingTrees(t *testing.T) {
	runner := &fakeRunner{log: rfdistLog}
	r := newTestRFDist(t, runner)

	_, err := r.Distance(context.Background(), filepath.Join(t.TempDir(), "none.nwk"))
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Nil(t, runner.args)
}

// writeScript creates an executable shell script.
func writeScript(t *testing.T, body string) string {
	fn := filepath.Join(t.TempDir(), "raxml-ng")
	require.NoError(t, os.WriteFile(fn, []byte("#!/bin/sh\n"+body), 0755))
	return fn
}

func TestRFDistanceExec(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}
	// $4 is the prefix.
	script := writeScript(t, "cat > \"$4.raxml.log\" <<EOF\n"+rfdistLog+"EOF\n")
	trees := writeFile(t, "trees.nwk", treeSet)
	r := NewRFDist(script)
	r.TempRoot = t.TempDir()

	res, err := r.Distance(context.Background(), trees)
	require.NoError(t, err)
	assert.Equal(t, 3, res.NumUniqueTopologies)
	assertCleanedUp(t, r)
}

func TestRFDistanceExecFails(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}
	script := writeScript(t, "echo 'ERROR: cannot read trees'\ntouch \"$4.raxml.log\"\nexit 2\n")
	trees := writeFile(t, "trees.nwk", treeSet)
	r := NewRFDist(script)
	r.TempRoot = t.TempDir()

	_, err := r.Distance(context.Background(), trees)
	var te *ToolExecutionError
	require.True(t, errors.As(err, &te))
	assert.Contains(t, string(te.Output), "cannot read trees")
	assertCleanedUp(t, r)
}

func TestParseRFDistanceLineNumber(t *testing.T) {
	_, err := ParseRFDistance([]string{
		"Average absolute RF distance in this tree set: 0.666667",
		"Average relative RF distance in this tree set: n/a",
	})
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Line)
}
