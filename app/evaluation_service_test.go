package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"ideagate/adapters/heuristic"
	"ideagate/adapters/memory"
	"ideagate/domain/category"
	"ideagate/domain/decision"
	"ideagate/domain/rules"
	"ideagate/domain/scoring"
	"ideagate/internal/resilience"
	"ideagate/ports"
)

// flakyRemote wraps the heuristic fast path with a scripted remote path.
type flakyRemote struct {
	fast    ports.Classifier
	remote  func() (ports.Classification, error)
	remoteN int
}

func (f *flakyRemote) ClassifyFast(ctx context.Context, input ports.ClassifierInput) (ports.Classification, error) {
	return f.fast.ClassifyFast(ctx, input)
}

func (f *flakyRemote) ClassifyRemote(ctx context.Context, input ports.ClassifierInput) (ports.Classification, error) {
	f.remoteN++
	return f.remote()
}

func fullScores(v float64) scoring.Scores {
	s := scoring.Scores{}
	for _, d := range scoring.Dimensions() {
		s[d] = v
	}
	return s
}

func newService(classifier ports.Classifier, store ports.RuleStore) *EvaluationService {
	return NewEvaluationService(scoring.DefaultTable(), classifier, resilience.New(3, time.Minute), store)
}

// TestEvaluatePipeline tests the full classify-score-rules-merge flow
func TestEvaluatePipeline(t *testing.T) {
	ctx := context.Background()
	store := memory.NewRuleStore()

	rule := rules.Definition{
		ID:   "crowded-pm",
		When: "model == 'pm-software' && saturationPct > 80",
		Then: []rules.Action{
			{Kind: rules.ActionFlag, Code: "crowded-market"},
			{Kind: rules.ActionGate, Dimension: rules.GateOverall, Effect: rules.EffectReview, Reason: "crowded pm market"},
		},
	}
	if err := store.Upsert(ctx, rule, "ops"); err != nil {
		t.Fatalf("seed rule: %v", err)
	}

	service := newService(heuristic.NewClassifier(), store)

	result, err := service.Evaluate(ctx, EvaluateRequest{
		Input:         ports.ClassifierInput{ProjectManagement: true},
		Scores:        fullScores(8),
		SaturationPct: 95,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Classification.Model != category.PMSoftware {
		t.Errorf("model = %s, want pm-software", result.Classification.Model)
	}
	if len(result.Outcome.AppliedCaps) != 1 {
		t.Errorf("appliedCaps = %v, want the saturation cap", result.Outcome.AppliedCaps)
	}
	if result.Outcome.Overall100PostCaps != 15 {
		t.Errorf("postCaps = %v, want 15", result.Outcome.Overall100PostCaps)
	}
	if len(result.Actions) != 2 {
		t.Errorf("actions = %v, want flag + gate", result.Actions)
	}
	if result.Decision.Status != decision.StatusReview {
		t.Errorf("status = %s, want review (rule gate)", result.Decision.Status)
	}
	if len(result.Decision.Flags) != 1 {
		t.Errorf("flags = %v", result.Decision.Flags)
	}
}

// TestEvaluateRejectsIncompleteScores tests the caller-error contract
func TestEvaluateRejectsIncompleteScores(t *testing.T) {
	service := newService(heuristic.NewClassifier(), memory.NewRuleStore())

	scores := fullScores(5)
	delete(scores, scoring.GTM)

	_, err := service.Evaluate(context.Background(), EvaluateRequest{Scores: scores})
	if err == nil {
		t.Fatal("expected error for missing dimension")
	}
}

// TestRemoteClassifierPreferred tests the remote-first path
func TestRemoteClassifierPreferred(t *testing.T) {
	remote := &flakyRemote{
		fast: heuristic.NewClassifier(),
		remote: func() (ports.Classification, error) {
			return ports.Classification{Model: category.RegulatedServices, Confidence: 0.9}, nil
		},
	}
	service := newService(remote, memory.NewRuleStore())

	result, err := service.Evaluate(context.Background(), EvaluateRequest{Scores: fullScores(5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Classification.Model != category.RegulatedServices {
		t.Errorf("model = %s, want the remote result", result.Classification.Model)
	}
	if remote.remoteN != 1 {
		t.Errorf("remote invoked %d times, want 1", remote.remoteN)
	}
}

// TestRemoteFailureFallsBackToFast tests degradation through the breaker
func TestRemoteFailureFallsBackToFast(t *testing.T) {
	remote := &flakyRemote{
		fast: heuristic.NewClassifier(),
		remote: func() (ports.Classification, error) {
			return ports.Classification{}, errors.New("model endpoint down")
		},
	}
	service := newService(remote, memory.NewRuleStore())

	result, err := service.Evaluate(context.Background(), EvaluateRequest{
		Input:  ports.ClassifierInput{B2B: true},
		Scores: fullScores(5),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Classification.Model != category.SaaSB2B {
		t.Errorf("model = %s, want the heuristic fallback", result.Classification.Model)
	}
}

// TestBreakerShortCircuitsRemote tests that an open circuit skips the remote
// path entirely
func TestBreakerShortCircuitsRemote(t *testing.T) {
	remote := &flakyRemote{
		fast: heuristic.NewClassifier(),
		remote: func() (ports.Classification, error) {
			return ports.Classification{}, errors.New("model endpoint down")
		},
	}
	service := newService(remote, memory.NewRuleStore())

	req := EvaluateRequest{Scores: fullScores(5)}
	for i := 0; i < 5; i++ {
		if _, err := service.Evaluate(context.Background(), req); err != nil {
			t.Fatalf("evaluation %d failed: %v", i, err)
		}
	}

	// Threshold is 3: later evaluations must not reach the remote.
	if remote.remoteN != 3 {
		t.Errorf("remote invoked %d times, want 3 before the circuit opened", remote.remoteN)
	}
}

// TestExtraContextFieldsReachRules tests caller extension fields
func TestExtraContextFieldsReachRules(t *testing.T) {
	ctx := context.Background()
	store := memory.NewRuleStore()

	rule := rules.Definition{
		ID:   "region-check",
		When: "region == 'eu' && overall100PostCaps >= 50",
		Then: []rules.Action{{Kind: rules.ActionFlag, Code: "eu-compliance"}},
	}
	if err := store.Upsert(ctx, rule, "ops"); err != nil {
		t.Fatalf("seed rule: %v", err)
	}

	service := newService(heuristic.NewClassifier(), store)
	result, err := service.Evaluate(ctx, EvaluateRequest{
		Scores: fullScores(6),
		Extra:  map[string]any{"region": "eu"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Actions) != 1 || result.Actions[0].Code != "eu-compliance" {
		t.Errorf("actions = %v, want the eu-compliance flag", result.Actions)
	}
}
