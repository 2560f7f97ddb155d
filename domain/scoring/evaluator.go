package scoring

import (
	"fmt"
	"math"

	"ideagate/domain/category"
)

// SaturationCapThresholdPct is the market-saturation percentage at or above
// which a category's saturation cap applies. This threshold is intentionally
// distinct from the >=80 saturation cue used by scoring heuristics elsewhere
// in the product; the two policies are independent.
const SaturationCapThresholdPct = 90.0

// SaturationCapLabel identifies the saturation cap in Outcome.AppliedCaps.
const SaturationCapLabel = "saturation-cap"

// Evaluate computes the adaptive outcome for one scored idea. It is a pure
// function: no I/O, no clock, no randomness.
//
// Unknown categories resolve to General. A partial weight override is merged
// over the category's base vector key by key and the full six-key vector is
// then re-normalized to sum to 1, even when the override touches a single
// dimension. Gates are reported, never folded into the numeric score. The
// saturation cap applies only at saturationPct >= 90 and never raises the
// score.
func Evaluate(table PolicyTable, cat category.Category, override WeightVector, scores Scores, saturationPct float64) Outcome {
	policy, ok := table[cat]
	if !ok {
		policy = table[category.General]
	}

	weights := policy.Weights
	if len(override) > 0 {
		weights = weights.MergedWith(override)
	}
	weights = weights.Normalized()

	overall10 := 0.0
	for _, d := range Dimensions() {
		overall10 += scores[d] * weights[d]
	}
	overall10 = round3(overall10)

	preCaps := math.Round(overall10 * 10)

	violations := make(map[Dimension]string)
	if v := scores[Demand]; v < policy.Gates.DemandMin10 {
		violations[Demand] = fmt.Sprintf("demand %.1f below minimum %.1f for %s", v, policy.Gates.DemandMin10, cat)
	}
	if v := scores[Economics]; v < policy.Gates.EconomicsMin10 {
		violations[Economics] = fmt.Sprintf("economics %.1f below minimum %.1f for %s", v, policy.Gates.EconomicsMin10, cat)
	}
	if v := scores[Problem]; v < policy.Gates.ProblemMin10 {
		violations[Problem] = fmt.Sprintf("problem %.1f below minimum %.1f for %s", v, policy.Gates.ProblemMin10, cat)
	}

	postCaps := preCaps
	applied := []string{}
	if policy.Gates.SaturationCapOverall100 != nil && saturationPct >= SaturationCapThresholdPct {
		cap := *policy.Gates.SaturationCapOverall100
		if cap < postCaps {
			postCaps = cap
		}
		applied = append(applied, SaturationCapLabel)
	}

	return Outcome{
		ResolvedWeights:    weights,
		ResolvedGates:      policy.Gates,
		GateViolations:     violations,
		Overall10:          overall10,
		Overall100PreCaps:  preCaps,
		Overall100PostCaps: postCaps,
		AppliedCaps:        applied,
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
