package hypothesis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// OneWayANOVA runs the classic fixed-effects one-way ANOVA:
// F = (SSB/(k-1)) / (SSW/(N-k)), p from F(k-1, N-k). Assumes equal
// group variances; callers should have checked homogeneity first and
// fall back to WelchANOVA when it is rejected. Eta squared
// (SSB/(SSB+SSW)) is attached as the effect size.
func OneWayANOVA(grouping string, samples []Sample) TestResult {
	res := TestResult{Test: "anova", Grouping: grouping}
	k := len(samples)
	n := totalN(samples)
	res.Warnings = preconditionWarnings(samples, 2)
	if k < 2 || n <= k {
		res.Warnings = append(res.Warnings, "not enough groups or observations to run ANOVA")
		return res
	}

	grand := grandMean(samples)
	var ssb, ssw float64
	for _, s := range samples {
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
		// Perfect within-group agreement: any between-group spread is
		// infinitely significant, none at all is no evidence.
		if ssb > 0 {
			res.Statistic = math.Inf(1)
			res.EffectSize = 1
		} else {
			res.PValue = 1
		}
		res.Warnings = append(res.Warnings, "zero within-group variance")
		return res
	}
	res.Statistic = (ssb / res.DF1) / (ssw / res.DF2)
	res.PValue = distuv.F{D1: res.DF1, D2: res.DF2}.Survival(res.Statistic)
	res.EffectSize = ssb / (ssb + ssw)
	return res
}

// preconditionWarnings flags samples too small for the requested test.
// Violations are attached to the result, never fatal for the run.
func preconditionWarnings(samples []Sample, minSize int) []string {
	var warnings []string
	for _, s := range samples {
		if len(s.Values) < minSize {
			warnings = append(warnings,
				fmt.Sprintf("group %q has %d observation(s), need at least %d", s.Name, len(s.Values), minSize))
		}
	}
	return warnings
}
