package raxml

import (
	"github.com/gonum/floats"
)

// SeriesSummary summarizes a likelihood series.
type SeriesSummary struct {
	N int `json:"n"`
	// Best is the highest log-likelihood, BestIndex is its position.
	Best      float64 `json:"best"`
	BestIndex int     `json:"bestIndex"`
	Worst     float64 `json:"worst"`
	Mean      float64 `json:"mean"`
}

// Summarize computes a summary of a series. An empty series gives a zero
// summary.
func Summarize(series []float64) (s SeriesSummary) {
	s.N = len(series)
	if s.N == 0 {
		return
	}
	s.BestIndex = floats.MaxIdx(series)
	s.Best = series[s.BestIndex]
	s.Worst = floats.Min(series)
	s.Mean = floats.Sum(series) / float64(s.N)
	return
}
