package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/amkozlov/raxng-benchmark/raxml"
	"github.com/amkozlov/raxng-benchmark/tree"
)

// seriesResult is the json output of likelihood series commands.
// BestTree is the number of the best tree in the log, 0 for an empty
// series.
type seriesResult struct {
	LogLikelihoods []float64           `json:"logLikelihoods"`
	Summary        raxml.SeriesSummary `json:"summary"`
	BestTree       int                 `json:"bestTree"`
}

// likelihoods prints a likelihood series read by extract.
func likelihoods(extract func(string) ([]raxml.LikelihoodSample, error), fn string, summaryOnly bool) (*seriesResult, error) {
	samples, err := extract(fn)
	if err != nil {
		return nil, err
	}
	llh := make([]float64, len(samples))
	for i, s := range samples {
		llh[i] = s.LogLikelihood
	}
	res := &seriesResult{LogLikelihoods: llh, Summary: raxml.Summarize(llh)}
	if len(samples) > 0 {
		res.BestTree = samples[res.Summary.BestIndex].TreeIndex
	}
	log.Infof("%d log-likelihoods", len(llh))

	if summaryOnly {
		s := res.Summary
		if s.N == 0 {
			fmt.Println("no log-likelihoods found")
			return res, nil
		}
		fmt.Printf("n=%d\tbest=%f (tree #%d)\tworst=%f\tmean=%f\n", s.N, s.Best, res.BestTree, s.Worst, s.Mean)
		return res, nil
	}
	for _, v := range llh {
		fmt.Printf("%f\n", v)
	}
	return res, nil
}

func best(fn string) (float64, error) {
	llh, err := raxml.BestLikelihood(fn)
	if err != nil {
		return 0, err
	}
	fmt.Printf("%f\n", llh)
	return llh, nil
}

func elapsed(fn string) (float64, error) {
	t, err := raxml.ElapsedTime(fn)
	if err != nil {
		return 0, err
	}
	fmt.Printf("%.3f\n", t)
	return t, nil
}

func icScores(fn string) (*raxml.InformationCriteria, error) {
	ic, err := raxml.ICScores(fn)
	if err != nil {
		return nil, err
	}
	if ic == nil {
		log.Warning("No information criteria found")
		fmt.Println("AIC=NA\tAICc=NA\tBIC=NA")
		return nil, nil
	}
	fmt.Printf("AIC=%f\tAICc=%f\tBIC=%f\n", ic.AIC, ic.AICc, ic.BIC)
	return ic, nil
}

func difficulty(fn string) (*float64, error) {
	d, ok, err := raxml.Difficulty(fn)
	if err != nil {
		return nil, err
	}
	if !ok {
		log.Warning("No predicted difficulty found")
		fmt.Println("NA")
		return nil, nil
	}
	fmt.Printf("%.2f\n", d)
	return &d, nil
}

// na formats an integer or NA if it is unknown.
func na(v int, known bool) string {
	if !known {
		return "NA"
	}
	return fmt.Sprint(v)
}

func msa(fn string) (raxml.MSADimensions, error) {
	d, err := raxml.MSA(fn)
	if err != nil {
		return d, err
	}
	if !d.Complete() {
		log.Warning("Alignment dimensions are incomplete")
	}
	fmt.Printf("taxa=%s\tsites=%s\tpatterns=%s\tpartitions=%s\n",
		na(d.NumTaxa, d.HasSites), na(d.NumSites, d.HasSites),
		na(d.NumPatterns, d.HasPatterns), na(d.NumPartitions, d.HasPatterns))
	return d, nil
}

func supports(fn string, check bool) ([]float64, error) {
	s, err := raxml.BootstrapSupports(fn)
	if err != nil {
		return nil, err
	}
	log.Infof("%d branch supports", len(s))
	for _, v := range s {
		fmt.Printf("%g\n", v)
	}
	if check {
		if err := checkSupports(fn, s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// checkSupports compares supports to supports of the parsed first tree.
func checkSupports(fn string, s []float64) error {
	line, err := raxml.ReadFirstLine(fn)
	if err != nil {
		return err
	}
	t, err := tree.ParseNewickString(line)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", fn, err)
	}
	ts := t.Supports()
	if len(ts) != len(s) {
		log.Warningf("Tree has %d supported nodes, %d supports found", len(ts), len(s))
		return nil
	}
	for i := range ts {
		if ts[i] != s[i] {
			log.Warningf("Support %d differs: %g in the tree, %g found", i+1, ts[i], s[i])
			return nil
		}
	}
	log.Noticef("Supports match the tree with %d leaves", t.NLeaves())
	return nil
}

func rfdist(ctx context.Context, binary, fn, tmpDir string) (*raxml.RFDistanceResult, error) {
	// The tree set is checked before raxml-ng is started.
	f, err := os.Open(fn)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &raxml.NotFoundError{Path: fn, Err: err}
	}
	if err != nil {
		return nil, err
	}
	trees, err := tree.ReadTrees(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("reading tree set %s: %w", fn, err)
	}
	if len(trees) > 0 {
		log.Infof("Tree set of %d trees with %d taxa", len(trees), trees[0].NLeaves())
	}

	r := raxml.NewRFDist(binary)
	r.TempRoot = tmpDir
	res, err := r.Distance(ctx, fn)
	if err != nil {
		return nil, err
	}
	fmt.Printf("topologies=%d\trelative=%f\tabsolute=%f\n",
		res.NumUniqueTopologies, res.RelativeDistance, res.AbsoluteDistance)
	return res, nil
}
