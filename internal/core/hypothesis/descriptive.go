// Package hypothesis implements the analysis test battery over grouped
// rating samples: descriptive statistics, Levene's test for variance
// homogeneity, classic one-way ANOVA, and Welch's ANOVA for when the
// homogeneity assumption fails. Formulas are standard; gonum provides
// the moments and the F distribution for p-values.
package hypothesis

import (
	"gonum.org/v1/gonum/stat"
)

// Sample is a named group of observations.
type Sample struct {
	Name   string
	Values []float64
}

// Descriptive summarizes one sample.
type Descriptive struct {
	Name     string
	N        int
	Mean     float64
	Variance float64
	StdDev   float64
}

// Describe computes per-sample descriptive statistics. Samples with
// fewer than two observations get zero variance and a warning attached
// by the caller; gonum's sample variance needs n >= 2.
func Describe(samples []Sample) []Descriptive {
	out := make([]Descriptive, 0, len(samples))
	for _, s := range samples {
		d := Descriptive{Name: s.Name, N: len(s.Values)}
		if len(s.Values) > 0 {
			d.Mean = stat.Mean(s.Values, nil)
		}
		if len(s.Values) > 1 {
			d.Variance = stat.Variance(s.Values, nil)
			d.StdDev = stat.StdDev(s.Values, nil)
		}
		out = append(out, d)
	}
	return out
}

// TestResult is the outcome of one hypothesis test.
type TestResult struct {
	Test       string // e.g. "levene", "anova", "welch-anova"
	Grouping   string // "phase" or "cycle-group"
	Statistic  float64
	DF1        float64
	DF2        float64
	PValue     float64
	EffectSize float64 // eta squared, where the test defines one
	Warnings   []string
}

// Rejects reports whether the test rejects its null hypothesis at the
// given significance level.
func (r TestResult) Rejects(alpha float64) bool {
	return r.PValue < alpha
}

func totalN(samples []Sample) int {
	n := 0
	for _, s := range samples {
		n += len(s.Values)
	}
	return n
}

func grandMean(samples []Sample) float64 {
	sum, n := 0.0, 0
	for _, s := range samples {
		for _, v := range s.Values {
			sum += v
		}
		n += len(s.Values)
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
