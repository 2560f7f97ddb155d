package rules

import (
	"fmt"

	"ideagate/domain/core"
)

// ActionKind discriminates the two rule action variants.
type ActionKind string

const (
	// ActionFlag is an informational annotation with no scoring effect.
	ActionFlag ActionKind = "flag"
	// ActionGate forces a decision outcome independent of the numeric score.
	ActionGate ActionKind = "gate"
)

// GateEffect is the decision a gate action forces.
type GateEffect string

const (
	EffectReview GateEffect = "review"
	EffectFail   GateEffect = "fail"
)

// GateOverall targets the whole decision rather than a single dimension.
const GateOverall = "overall"

// Action is a tagged variant: flag{Code, Message} or
// gate{Dimension|"overall", Effect, Reason}.
type Action struct {
	Kind ActionKind `json:"kind"`

	// Flag fields
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`

	// Gate fields
	Dimension string     `json:"dimension,omitempty"`
	Effect    GateEffect `json:"effect,omitempty"`
	Reason    string     `json:"reason,omitempty"`
}

// Definition is a persisted unit of business policy: when the boolean
// expression holds against the evaluation context, the actions fire in order.
type Definition struct {
	ID          string   `json:"id"`
	When        string   `json:"when"`
	Then        []Action `json:"then"`
	Description string   `json:"description,omitempty"`
	Version     string   `json:"version,omitempty"`

	// Enabled defaults to true when unset.
	Enabled *bool `json:"enabled,omitempty"`
}

// IsEnabled reports whether the rule participates in listing and evaluation.
func (d Definition) IsEnabled() bool {
	return d.Enabled == nil || *d.Enabled
}

// Validate rejects malformed definitions at the store boundary so they never
// reach the interpreter.
func Validate(d Definition) error {
	id, err := core.ParseRuleID(d.ID)
	if err != nil {
		return fmt.Errorf("%w: missing id", core.ErrInvalidRule)
	}
	if d.When == "" {
		return fmt.Errorf("%w: rule %s has no condition", core.ErrInvalidRule, id)
	}
	if len(d.Then) == 0 {
		return fmt.Errorf("%w: rule %s has no actions", core.ErrInvalidRule, id)
	}
	for i, a := range d.Then {
		switch a.Kind {
		case ActionFlag:
			if a.Code == "" {
				return fmt.Errorf("%w: rule %s action %d missing flag code", core.ErrInvalidRule, id, i)
			}
		case ActionGate:
			if a.Effect != EffectReview && a.Effect != EffectFail {
				return fmt.Errorf("%w: rule %s action %d has effect %q", core.ErrInvalidRule, id, i, a.Effect)
			}
		default:
			return fmt.Errorf("%w: rule %s action %d has kind %q", core.ErrInvalidRule, id, i, a.Kind)
		}
	}
	return nil
}

// Context is the read-only dictionary exposed to rule expressions. It always
// carries "model" and may carry "saturationPct", "dimensions10" and arbitrary
// caller-supplied extension fields. Rules read it via dotted paths only.
type Context map[string]any

// Lookup walks a dotted path through nested maps. Missing paths return
// (nil, false) rather than an error so rules referencing optional fields
// degrade to false comparisons.
func (c Context) Lookup(path string) (any, bool) {
	var cur any = map[string]any(c)
	start := 0
	for i := 0; i <= len(path); i++ {
		if i < len(path) && path[i] != '.' {
			continue
		}
		key := path[start:i]
		start = i + 1
		m, ok := toStringMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func toStringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Context:
		return map[string]any(m), true
	case map[string]float64:
		out := make(map[string]any, len(m))
		for k, fv := range m {
			out[k] = fv
		}
		return out, true
	default:
		return nil, false
	}
}
