package scoring

import (
	"fmt"

	"ideagate/domain/core"
)

// Dimension is one of the six fixed quality axes scored 0-10.
type Dimension string

const (
	Problem         Dimension = "problem"
	Underserved     Dimension = "underserved"
	Demand          Dimension = "demand"
	Differentiation Dimension = "differentiation"
	Economics       Dimension = "economics"
	GTM             Dimension = "gtm"
)

// Dimensions returns the six axes in canonical order.
func Dimensions() []Dimension {
	return []Dimension{Problem, Underserved, Demand, Differentiation, Economics, GTM}
}

// Scores maps each dimension to its raw 0-10 value. Every axis must be
// present; the evaluator does not default missing axes.
type Scores map[Dimension]float64

// Complete reports whether every canonical dimension is present.
func (s Scores) Complete() bool {
	for _, d := range Dimensions() {
		if _, ok := s[d]; !ok {
			return false
		}
	}
	return true
}

// Validate returns an error naming the first missing dimension, if any.
// Range is deliberately not checked here; out-of-range values are a caller
// bug that the evaluator propagates arithmetically rather than hiding.
func (s Scores) Validate() error {
	for _, d := range Dimensions() {
		if _, ok := s[d]; !ok {
			return fmt.Errorf("%w: %s", core.ErrMissingDimension, d)
		}
	}
	return nil
}

// WeightVector maps dimensions to non-negative weights. A resolved vector
// always sums to 1 across the six canonical dimensions.
type WeightVector map[Dimension]float64

// Sum returns the total weight across all entries.
func (w WeightVector) Sum() float64 {
	total := 0.0
	for _, v := range w {
		total += v
	}
	return total
}

// Normalized returns a copy of w scaled so the entries sum to exactly 1.
// A zero-sum vector is returned unchanged rather than dividing by zero.
func (w WeightVector) Normalized() WeightVector {
	sum := w.Sum()
	out := make(WeightVector, len(w))
	if sum == 0 {
		for d, v := range w {
			out[d] = v
		}
		return out
	}
	for d, v := range w {
		out[d] = v / sum
	}
	return out
}

// MergedWith overlays the supplied partial override onto w, key by key,
// without normalizing. The caller re-normalizes the full vector afterwards.
func (w WeightVector) MergedWith(override WeightVector) WeightVector {
	out := make(WeightVector, len(w))
	for d, v := range w {
		out[d] = v
	}
	for d, v := range override {
		out[d] = v
	}
	return out
}

// GateThresholds holds the per-category hard minimums on raw 0-10 scores and
// the optional saturation cap on the 0-100 overall score.
type GateThresholds struct {
	DemandMin10    float64 `json:"demand_min_10"`
	EconomicsMin10 float64 `json:"economics_min_10"`
	ProblemMin10   float64 `json:"problem_min_10"`

	// SaturationCapOverall100 bounds the post-cap overall score when market
	// saturation is at or above SaturationCapThresholdPct. Nil means no cap.
	SaturationCapOverall100 *float64 `json:"saturation_cap_overall_100,omitempty"`
}

// Policy pairs a normalized weight vector with gate thresholds for one
// business-model category.
type Policy struct {
	Weights WeightVector   `json:"weights"`
	Gates   GateThresholds `json:"gates"`
}

// Outcome is the evaluator's immutable result record. Recomputing from the
// same inputs always yields an identical Outcome.
type Outcome struct {
	ResolvedWeights    WeightVector         `json:"resolved_weights"`
	ResolvedGates      GateThresholds       `json:"resolved_gates"`
	GateViolations     map[Dimension]string `json:"gate_violations"`
	Overall10          float64              `json:"overall_10"`
	Overall100PreCaps  float64              `json:"overall_100_pre_caps"`
	Overall100PostCaps float64              `json:"overall_100_post_caps"`
	AppliedCaps        []string             `json:"applied_caps"`
}
