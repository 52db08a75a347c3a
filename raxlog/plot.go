package main

import (
	"errors"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/amkozlov/raxng-benchmark/raxml"
)

// plotResult is the json output of the plot command.
type plotResult struct {
	Image     string              `json:"image"`
	Search    raxml.SeriesSummary `json:"search"`
	Bootstrap raxml.SeriesSummary `json:"bootstrap"`
}

// points converts a series to points, x is the tree number.
func points(series []float64) plotter.XYs {
	pts := make(plotter.XYs, len(series))
	for i, v := range series {
		pts[i].X = float64(i + 1)
		pts[i].Y = v
	}
	return pts
}

// plotLikelihoods plots ML search and bootstrap log-likelihoods of a log
// file. The image format is taken from the file extension.
func plotLikelihoods(fn, out string) (*plotResult, error) {
	lines, err := raxml.ReadLines(fn)
	if err != nil {
		return nil, err
	}
	search, err := raxml.ParseLikelihoods(lines)
	if err != nil {
		return nil, err
	}
	bootstrap, err := raxml.ParseBootstrapLikelihoods(lines)
	if err != nil {
		return nil, err
	}
	if len(search) == 0 && len(bootstrap) == 0 {
		return nil, errors.New("no log-likelihoods to plot in " + fn)
	}

	p := plot.New()
	p.Title.Text = fn
	p.X.Label.Text = "tree"
	p.Y.Label.Text = "logLikelihood"

	var curves []interface{}
	if len(search) > 0 {
		curves = append(curves, "ML tree search", points(search))
	}
	if len(bootstrap) > 0 {
		curves = append(curves, "bootstrap", points(bootstrap))
	}
	if err := plotutil.AddLinePoints(p, curves...); err != nil {
		return nil, err
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, out); err != nil {
		return nil, err
	}
	log.Noticef("Saved plot to %s", out)

	return &plotResult{
		Image:     out,
		Search:    raxml.Summarize(search),
		Bootstrap: raxml.Summarize(bootstrap),
	}, nil
}
