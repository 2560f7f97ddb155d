// Package calibration validates policy tables against a corpus of scored
// ideas: it sweeps the corpus through the evaluator, summarizes the score
// population, compares two table variants with Welch's t-test and fits the
// score-versus-saturation trend.
package calibration

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"ideagate/domain/category"
	"ideagate/domain/scoring"
	"ideagate/internal/stats"
)

// DefaultConcurrency bounds the sweep workers when the caller passes 0.
const DefaultConcurrency = 8

// Sample is one scored idea in the calibration corpus.
type Sample struct {
	Category      category.Category `json:"category"`
	Scores        scoring.Scores    `json:"scores"`
	SaturationPct float64           `json:"saturation_pct"`
}

// SweepResult is the score population one table produced over the corpus.
type SweepResult struct {
	PostCaps []float64     `json:"post_caps"` // sample order
	Summary  stats.Summary `json:"summary"`
	Gated    int           `json:"gated"`  // samples with at least one gate violation
	Capped   int           `json:"capped"` // samples with at least one applied cap
}

// Trend is the least-squares fit of post-cap score against saturation.
type Trend struct {
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
	R2    float64 `json:"r2"`
}

// Comparison reports how a candidate table shifts scores against a baseline.
type Comparison struct {
	Baseline  SweepResult       `json:"baseline"`
	Candidate SweepResult       `json:"candidate"`
	TTest     stats.TTestResult `json:"t_test"`
	Trend     Trend             `json:"candidate_trend"`
}

// Sweep evaluates every sample against the table with bounded concurrency.
// Results keep sample order, so a sweep is deterministic for a fixed corpus.
func Sweep(ctx context.Context, table scoring.PolicyTable, samples []Sample, concurrency int) (SweepResult, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	sem := semaphore.NewWeighted(int64(concurrency))
	outcomes := make([]scoring.Outcome, len(samples))
	var wg sync.WaitGroup

	for i, sample := range samples {
		if err := sem.Acquire(ctx, 1); err != nil {
			return SweepResult{}, err
		}
		wg.Add(1)
		go func(i int, sample Sample) {
			defer wg.Done()
			defer sem.Release(1)
			outcomes[i] = scoring.Evaluate(table, sample.Category, nil, sample.Scores, sample.SaturationPct)
		}(i, sample)
	}
	wg.Wait()

	result := SweepResult{PostCaps: make([]float64, len(outcomes))}
	for i, outcome := range outcomes {
		result.PostCaps[i] = outcome.Overall100PostCaps
		if len(outcome.GateViolations) > 0 {
			result.Gated++
		}
		if len(outcome.AppliedCaps) > 0 {
			result.Capped++
		}
	}
	if len(result.PostCaps) > 0 {
		summary, err := stats.Summarize(result.PostCaps)
		if err != nil {
			return SweepResult{}, err
		}
		result.Summary = summary
	}
	return result, nil
}

// Compare sweeps the corpus through both tables and tests whether the
// candidate's score population differs from the baseline's.
func Compare(ctx context.Context, baseline, candidate scoring.PolicyTable, samples []Sample, concurrency int) (Comparison, error) {
	base, err := Sweep(ctx, baseline, samples, concurrency)
	if err != nil {
		return Comparison{}, err
	}
	cand, err := Sweep(ctx, candidate, samples, concurrency)
	if err != nil {
		return Comparison{}, err
	}

	ttest, err := stats.Welch(base.PostCaps, cand.PostCaps)
	if err != nil {
		return Comparison{}, err
	}

	saturations := make([]float64, len(samples))
	for i, sample := range samples {
		saturations[i] = sample.SaturationPct
	}
	alpha, beta, r2, err := stats.Linreg(saturations, cand.PostCaps)
	if err != nil {
		return Comparison{}, err
	}

	return Comparison{
		Baseline:  base,
		Candidate: cand,
		TTest:     ttest,
		Trend:     Trend{Alpha: alpha, Beta: beta, R2: r2},
	}, nil
}
