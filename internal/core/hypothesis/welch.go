package hypothesis

import (
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// WelchANOVA runs Welch's heteroscedastic one-way ANOVA, the fallback
// mean-comparison test when Levene rejects equal variances. Groups are
// weighted by n_i/s_i², and the denominator degrees of freedom follow
// Welch–Satterthwaite. Groups with zero variance or fewer than two
// observations cannot be weighted and are skipped with a warning.
func WelchANOVA(grouping string, samples []Sample) TestResult {
	res := TestResult{Test: "welch-anova", Grouping: grouping}
	res.Warnings = preconditionWarnings(samples, 2)

	usable := make([]Sample, 0, len(samples))
	for _, s := range samples {
		if len(s.Values) < 2 {
			continue
		}
		if stat.Variance(s.Values, nil) == 0 {
			res.Warnings = append(res.Warnings, "group \""+s.Name+"\" has zero variance, excluded from Welch weighting")
			continue
		}
		usable = append(usable, s)
	}
	k := len(usable)
	if k < 2 {
		res.Warnings = append(res.Warnings, "fewer than two usable groups, Welch's ANOVA not run")
		return res
	}

	weights := make([]float64, k)
	means := make([]float64, k)
	var wSum, wmSum float64
	for i, s := range usable {
		ni := float64(len(s.Values))
		means[i] = stat.Mean(s.Values, nil)
		weights[i] = ni / stat.Variance(s.Values, nil)
		wSum += weights[i]
		wmSum += weights[i] * means[i]
	}
	adjustedGrand := wmSum / wSum

	kf := float64(k)
	var between, lambda float64
	for i, s := range usable {
		diff := means[i] - adjustedGrand
		between += weights[i] * diff * diff
		frac := 1 - weights[i]/wSum
		lambda += frac * frac / float64(len(s.Values)-1)
	}
	between /= kf - 1

	res.DF1 = kf - 1
	res.DF2 = (kf*kf - 1) / (3 * lambda)
	denom := 1 + 2*(kf-2)/(kf*kf-1)*lambda
	res.Statistic = between / denom
	res.PValue = distuv.F{D1: res.DF1, D2: res.DF2}.Survival(res.Statistic)
	return res
}
