package charts

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// densityCurve evaluates a Gaussian kernel density estimate of the
// sample at steps points across [lo, hi]. Bandwidth is Silverman's
// rule of thumb, floored at 0.25 so integer-valued ratings still
// produce a visible curve instead of four spikes.
func densityCurve(values []float64, lo, hi float64, steps int) (xs, ys []float64) {
	if len(values) == 0 || steps < 2 {
		return nil, nil
	}

	n := float64(len(values))
	bw := 0.25
	if len(values) > 1 {
		if sd := stat.StdDev(values, nil); sd > 0 {
			if b := 1.06 * sd * math.Pow(n, -1.0/5.0); b > bw {
				bw = b
			}
		}
	}

	xs = make([]float64, steps)
	ys = make([]float64, steps)
	step := (hi - lo) / float64(steps-1)
	norm := 1 / (bw * math.Sqrt(2*math.Pi) * n)
	for i := 0; i < steps; i++ {
		x := lo + float64(i)*step
		var sum float64
		for _, v := range values {
			u := (x - v) / bw
			sum += math.Exp(-0.5 * u * u)
		}
		xs[i] = x
		ys[i] = norm * sum
	}
	return xs, ys
}

func maxFloat(values []float64) float64 {
	max := 0.0
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	return max
}
