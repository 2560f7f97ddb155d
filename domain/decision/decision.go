package decision

import (
	"ideagate/domain/category"
	"ideagate/domain/rules"
	"ideagate/domain/scoring"
)

// Status is the final GO/REVIEW/NO-GO verdict on an idea.
type Status string

const (
	StatusGo     Status = "go"
	StatusReview Status = "review"
	StatusNoGo   Status = "no-go"
)

// Numeric bands on the post-cap 0-100 score, applied only when nothing
// forces the decision first.
const (
	goFloor100     = 70.0
	reviewFloor100 = 50.0
)

// Decision merges the evaluator's numeric outcome with the rule engine's
// supplementary actions into a final verdict.
type Decision struct {
	Status   Status            `json:"status"`
	Category category.Category `json:"category"`
	Outcome  scoring.Outcome   `json:"outcome"`

	// Flags carries informational rule annotations, scoring untouched.
	Flags []rules.Action `json:"flags,omitempty"`

	// ForcedBy lists the reasons a gate (evaluator or rule) overrode the
	// numeric band, empty when the score alone decided.
	ForcedBy []string `json:"forced_by,omitempty"`
}

// Merge resolves precedence: a rule gate with effect "fail" forces NO-GO;
// any evaluator gate violation or rule gate with effect "review" forces at
// least REVIEW; otherwise the numeric bands on the post-cap score decide.
func Merge(cat category.Category, outcome scoring.Outcome, actions []rules.Action) Decision {
	d := Decision{Category: cat, Outcome: outcome}

	forcedFail := false
	forcedReview := false

	for _, dim := range scoring.Dimensions() {
		if reason, ok := outcome.GateViolations[dim]; ok {
			forcedReview = true
			d.ForcedBy = append(d.ForcedBy, reason)
		}
	}

	for _, a := range actions {
		switch a.Kind {
		case rules.ActionFlag:
			d.Flags = append(d.Flags, a)
		case rules.ActionGate:
			reason := a.Reason
			if reason == "" {
				reason = "rule gate on " + a.Dimension
			}
			d.ForcedBy = append(d.ForcedBy, reason)
			if a.Effect == rules.EffectFail {
				forcedFail = true
			} else {
				forcedReview = true
			}
		}
	}

	switch {
	case forcedFail:
		d.Status = StatusNoGo
	case forcedReview:
		d.Status = StatusReview
	case outcome.Overall100PostCaps >= goFloor100:
		d.Status = StatusGo
	case outcome.Overall100PostCaps >= reviewFloor100:
		d.Status = StatusReview
	default:
		d.Status = StatusNoGo
	}
	return d
}
