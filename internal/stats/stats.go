// Package stats provides the numeric helpers used by the policy calibration
// tooling: Welch's t-test, simple linear regression and the normal CDF.
package stats

import (
	"fmt"
	"math"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// TTestResult holds the outcome of a two-sample Welch t-test.
type TTestResult struct {
	T  float64 `json:"t"`
	DF float64 `json:"df"`
	P  float64 `json:"p"` // two-sided
	NA int     `json:"n_a"`
	NB int     `json:"n_b"`
}

// Welch runs Welch's unequal-variance t-test on two samples.
func Welch(a, b []float64) (TTestResult, error) {
	if len(a) < 2 || len(b) < 2 {
		return TTestResult{}, fmt.Errorf("welch t-test requires at least 2 observations per sample, got %d and %d", len(a), len(b))
	}

	meanA := stat.Mean(a, nil)
	meanB := stat.Mean(b, nil)
	varA := stat.Variance(a, nil)
	varB := stat.Variance(b, nil)

	na := float64(len(a))
	nb := float64(len(b))
	se2 := varA/na + varB/nb
	if se2 == 0 {
		// Zero variance on both sides leaves no standard error to divide by.
		// Equal means are a genuine no-difference; unequal constant samples
		// are maximally separated, reported with the infinite-t convention.
		df := na + nb - 2
		if meanA == meanB {
			return TTestResult{T: 0, DF: df, P: 1, NA: len(a), NB: len(b)}, nil
		}
		return TTestResult{T: math.Inf(sign(meanA - meanB)), DF: df, P: 0, NA: len(a), NB: len(b)}, nil
	}

	t := (meanA - meanB) / math.Sqrt(se2)

	// Welch-Satterthwaite degrees of freedom.
	df := se2 * se2 / ((varA*varA)/(na*na*(na-1)) + (varB*varB)/(nb*nb*(nb-1)))

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.CDF(-math.Abs(t))

	return TTestResult{T: t, DF: df, P: p, NA: len(a), NB: len(b)}, nil
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}

// Linreg fits y = alpha + beta*x by ordinary least squares and returns the
// coefficients with the R^2 goodness of fit.
func Linreg(x, y []float64) (alpha, beta, r2 float64, err error) {
	if len(x) != len(y) {
		return 0, 0, 0, fmt.Errorf("regression inputs differ in length: %d vs %d", len(x), len(y))
	}
	if len(x) < 2 {
		return 0, 0, 0, fmt.Errorf("regression requires at least 2 points, got %d", len(x))
	}
	alpha, beta = stat.LinearRegression(x, y, nil, false)
	r2 = stat.RSquared(x, y, nil, alpha, beta)
	return alpha, beta, r2, nil
}

// NormalCDF returns P(X <= x) for X ~ N(mean, sd).
func NormalCDF(x, mean, sd float64) float64 {
	dist := distuv.Normal{Mu: mean, Sigma: sd}
	return dist.CDF(x)
}

// Summary holds descriptive statistics for one sample.
type Summary struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}

// Summarize computes descriptive statistics for a sample.
func Summarize(data []float64) (Summary, error) {
	if len(data) == 0 {
		return Summary{}, fmt.Errorf("cannot summarize empty sample")
	}
	mean, _ := mstats.Mean(data)
	sd, _ := mstats.StandardDeviationSample(data)
	min, _ := mstats.Min(data)
	max, _ := mstats.Max(data)
	median, _ := mstats.Median(data)
	return Summary{N: len(data), Mean: mean, StdDev: sd, Min: min, Max: max, Median: median}, nil
}
