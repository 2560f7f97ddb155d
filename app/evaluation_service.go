package app

import (
	"context"
	"log"

	"ideagate/domain/decision"
	"ideagate/domain/rules"
	"ideagate/domain/scoring"
	"ideagate/internal/resilience"
	"ideagate/ports"
)

// EvaluationService orchestrates one evaluation pass: classification (through
// the circuit breaker when a remote path exists), policy lookup and scoring,
// persisted rule evaluation, and the final decision merge.
type EvaluationService struct {
	table      scoring.PolicyTable
	classifier ports.Classifier
	breaker    *resilience.Breaker
	store      ports.RuleStore
}

// NewEvaluationService creates the service with explicit dependencies.
func NewEvaluationService(table scoring.PolicyTable, classifier ports.Classifier, breaker *resilience.Breaker, store ports.RuleStore) *EvaluationService {
	return &EvaluationService{
		table:      table,
		classifier: classifier,
		breaker:    breaker,
		store:      store,
	}
}

// EvaluateRequest is the caller-facing input for one evaluation.
type EvaluateRequest struct {
	Input          ports.ClassifierInput `json:"input"`
	Scores         scoring.Scores        `json:"dimensions10"`
	SaturationPct  float64               `json:"saturationPct"`
	WeightOverride scoring.WeightVector  `json:"weightOverride,omitempty"`

	// Extra fields are exposed to rule expressions unchanged.
	Extra map[string]any `json:"extra,omitempty"`
}

// EvaluateResult bundles everything one pass produced.
type EvaluateResult struct {
	Classification ports.Classification `json:"classification"`
	Outcome        scoring.Outcome      `json:"outcome"`
	Actions        []rules.Action       `json:"actions"`
	Decision       decision.Decision    `json:"decision"`
}

// Evaluate runs the full pipeline. Missing dimensions are a caller error;
// rule failures never are (broken rules are skipped inside the engine).
func (s *EvaluationService) Evaluate(ctx context.Context, req EvaluateRequest) (*EvaluateResult, error) {
	if err := req.Scores.Validate(); err != nil {
		return nil, err
	}

	cls, err := s.classify(ctx, req.Input)
	if err != nil {
		return nil, err
	}

	outcome := scoring.Evaluate(s.table, cls.Model, req.WeightOverride, req.Scores, req.SaturationPct)

	defs, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	actions := rules.Evaluate(defs, s.ruleContext(cls, req, outcome))

	return &EvaluateResult{
		Classification: cls,
		Outcome:        outcome,
		Actions:        actions,
		Decision:       decision.Merge(cls.Model, outcome, actions),
	}, nil
}

// classify prefers the remote path when the classifier offers one, guarded by
// the breaker; any remote failure (including an open circuit) falls back to
// the fast heuristic path.
func (s *EvaluationService) classify(ctx context.Context, input ports.ClassifierInput) (ports.Classification, error) {
	remote, ok := ports.AsRemote(s.classifier)
	if ok && s.breaker != nil {
		cls, err := resilience.Execute(ctx, s.breaker, func(ctx context.Context) (ports.Classification, error) {
			return remote.ClassifyRemote(ctx, input)
		})
		if err == nil {
			return cls, nil
		}
		log.Printf("[evaluation] remote classification failed, using fast path: %v", err)
	}
	return s.classifier.ClassifyFast(ctx, input)
}

// ruleContext assembles the read-only dictionary rule expressions see.
func (s *EvaluationService) ruleContext(cls ports.Classification, req EvaluateRequest, outcome scoring.Outcome) rules.Context {
	dims := make(map[string]float64, len(req.Scores))
	for d, v := range req.Scores {
		dims[string(d)] = v
	}

	ctx := rules.Context{
		"model":              cls.Model.String(),
		"confidence":         cls.Confidence,
		"saturationPct":      req.SaturationPct,
		"dimensions10":       dims,
		"overall100PreCaps":  outcome.Overall100PreCaps,
		"overall100PostCaps": outcome.Overall100PostCaps,
		"gateViolations":     float64(len(outcome.GateViolations)),
	}
	for k, v := range req.Extra {
		// Caller extensions never shadow the engine-supplied fields.
		if _, exists := ctx[k]; !exists {
			ctx[k] = v
		}
	}
	return ctx
}
