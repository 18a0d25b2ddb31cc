package hypothesis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Levene runs Levene's test for homogeneity of variances using the
// median-centered (Brown–Forsythe) deviations, which is robust to
// non-normal ratings. The test statistic is the one-way ANOVA F over
// the absolute deviations z_ij = |x_ij - median_i|, with p from
// F(k-1, N-k). A small p-value rejects equal variances, which sends
// the mean comparison to Welch's ANOVA instead of the classic one.
func Levene(grouping string, samples []Sample) TestResult {
	res := TestResult{Test: "levene", Grouping: grouping}
	k := len(samples)
	n := totalN(samples)
	res.Warnings = preconditionWarnings(samples, 2)
	if k < 2 || n <= k {
		res.Warnings = append(res.Warnings, "not enough groups or observations to run Levene's test")
		return res
	}

	deviations := make([]Sample, 0, k)
	for _, s := range samples {
		center := median(s.Values)
		z := make([]float64, len(s.Values))
		for i, v := range s.Values {
			z[i] = abs(v - center)
		}
		deviations = append(deviations, Sample{Name: s.Name, Values: z})
	}

	grand := grandMean(deviations)
	var ssb, ssw float64
	for _, s := range deviations {
		if len(s.Values) == 0 {
			continue
		}
		m := stat.Mean(s.Values, nil)
		ssb += float64(len(s.Values)) * (m - grand) * (m - grand)
		for _, v := range s.Values {
			ssw += (v - m) * (v - m)
		}
	}

	res.DF1 = float64(k - 1)
	res.DF2 = float64(n - k)
	if ssw == 0 {
		if ssb > 0 {
			res.Statistic = math.Inf(1)
		} else {
			res.PValue = 1
		}
		res.Warnings = append(res.Warnings, "zero deviation variance")
		return res
	}
	res.Statistic = (ssb / res.DF1) / (ssw / res.DF2)
	res.PValue = distuv.F{D1: res.DF1, D2: res.DF2}.Survival(res.Statistic)
	return res
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
