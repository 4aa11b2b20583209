package bench

import "gonum.org/v1/gonum/stat"

// Summary aggregates the rows of one table block (same preset and knobs,
// different seeds).
type Summary struct {
	N int

	FrontMean float64
	FrontStd  float64

	SkipDominanceMean  float64
	SkipInfeasibleMean float64

	ElapsedMeanMs float64
	ElapsedStdMs  float64
}

func Summarize(records []Record) Summary {
	s := Summary{N: len(records)}
	if s.N == 0 {
		return s
	}

	fronts := make([]float64, len(records))
	skipN := make([]float64, len(records))
	skipI := make([]float64, len(records))
	elapsed := make([]float64, len(records))
	for i, r := range records {
		fronts[i] = float64(r.FrontSize)
		skipN[i] = float64(r.SkipDominance)
		skipI[i] = float64(r.SkipInfeasible)
		elapsed[i] = r.ElapsedMs
	}

	s.FrontMean = stat.Mean(fronts, nil)
	s.SkipDominanceMean = stat.Mean(skipN, nil)
	s.SkipInfeasibleMean = stat.Mean(skipI, nil)
	s.ElapsedMeanMs = stat.Mean(elapsed, nil)
	if s.N >= 2 {
		s.FrontStd = stat.StdDev(fronts, nil)
		s.ElapsedStdMs = stat.StdDev(elapsed, nil)
	}
	return s
}
