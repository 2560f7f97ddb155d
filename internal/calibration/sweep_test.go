package calibration

import (
	"context"
	"reflect"
	"testing"

	"ideagate/domain/category"
	"ideagate/domain/scoring"
)

func corpus() []Sample {
	samples := []Sample{}
	cats := []category.Category{category.SaaSB2B, category.PMSoftware, category.DTCEcom, category.General}
	for i := 0; i < 40; i++ {
		base := float64(i%10) + 0.5
		samples = append(samples, Sample{
			Category: cats[i%len(cats)],
			Scores: scoring.Scores{
				scoring.Problem:         base,
				scoring.Underserved:     base * 0.8,
				scoring.Demand:          base * 0.9,
				scoring.Differentiation: base * 0.7,
				scoring.Economics:       base * 0.6,
				scoring.GTM:             base * 0.5,
			},
			SaturationPct: float64((i * 7) % 100),
		})
	}
	return samples
}

// TestSweepIsDeterministic tests that order and values are stable across runs
func TestSweepIsDeterministic(t *testing.T) {
	ctx := context.Background()
	table := scoring.DefaultTable()
	samples := corpus()

	first, err := Sweep(ctx, table, samples, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Sweep(ctx, table, samples, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first.PostCaps, second.PostCaps) {
		t.Error("sweep results differ across runs")
	}
	if len(first.PostCaps) != len(samples) {
		t.Errorf("got %d scores for %d samples", len(first.PostCaps), len(samples))
	}
}

// TestSweepCountsGatesAndCaps tests the aggregate counters
func TestSweepCountsGatesAndCaps(t *testing.T) {
	ctx := context.Background()
	table := scoring.DefaultTable()

	gated := Sample{
		Category:      category.PMSoftware,
		Scores:        scoring.Scores{scoring.Problem: 0, scoring.Underserved: 0, scoring.Demand: 0, scoring.Differentiation: 0, scoring.Economics: 0, scoring.GTM: 0},
		SaturationPct: 95,
	}
	clean := Sample{
		Category:      category.General,
		Scores:        scoring.Scores{scoring.Problem: 8, scoring.Underserved: 8, scoring.Demand: 8, scoring.Differentiation: 8, scoring.Economics: 8, scoring.GTM: 8},
		SaturationPct: 10,
	}

	result, err := Sweep(ctx, table, []Sample{gated, clean}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Gated != 1 {
		t.Errorf("gated = %d, want 1", result.Gated)
	}
	if result.Capped != 1 {
		t.Errorf("capped = %d, want 1", result.Capped)
	}
}

// TestCompareIdenticalTables tests that comparing a table to itself shows no
// difference
func TestCompareIdenticalTables(t *testing.T) {
	ctx := context.Background()
	table := scoring.DefaultTable()

	cmp, err := Compare(ctx, table, table, corpus(), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmp.TTest.T != 0 {
		t.Errorf("t = %v, want 0 for identical tables", cmp.TTest.T)
	}
	if cmp.TTest.P < 0.999 {
		t.Errorf("p = %v, want ~1 for identical tables", cmp.TTest.P)
	}
	if !reflect.DeepEqual(cmp.Baseline.PostCaps, cmp.Candidate.PostCaps) {
		t.Error("identical tables produced different sweeps")
	}
}

// TestSweepEmptyCorpus tests the empty-input edge
func TestSweepEmptyCorpus(t *testing.T) {
	result, err := Sweep(context.Background(), scoring.DefaultTable(), nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.PostCaps) != 0 || result.Gated != 0 || result.Capped != 0 {
		t.Errorf("empty sweep = %+v", result)
	}
}
