package scoring

import (
	"ideagate/domain/category"
)

// PolicyTable is a plain lookup from category to policy. It carries no
// fallback logic of its own; unknown-category resolution to General happens
// in the evaluator so the table stays trivially testable and serializable.
type PolicyTable map[category.Category]Policy

func capOf(v float64) *float64 { return &v }

// DefaultTable returns the static policy configuration. Every enumerated
// category has an entry and every weight vector sums to 1.
func DefaultTable() PolicyTable {
	return PolicyTable{
		category.SaaSB2B: {
			Weights: WeightVector{
				Problem: 0.22, Underserved: 0.14, Demand: 0.18,
				Differentiation: 0.16, Economics: 0.18, GTM: 0.12,
			},
			Gates: GateThresholds{DemandMin10: 2, EconomicsMin10: 2, ProblemMin10: 2},
		},
		category.SaaSB2C: {
			Weights: WeightVector{
				Problem: 0.18, Underserved: 0.12, Demand: 0.22,
				Differentiation: 0.16, Economics: 0.14, GTM: 0.18,
			},
			Gates: GateThresholds{DemandMin10: 2, EconomicsMin10: 2, ProblemMin10: 2, SaturationCapOverall100: capOf(25)},
		},
		category.PhysicalSubscription: {
			Weights: WeightVector{
				Problem: 0.16, Underserved: 0.12, Demand: 0.20,
				Differentiation: 0.14, Economics: 0.24, GTM: 0.14,
			},
			Gates: GateThresholds{DemandMin10: 2, EconomicsMin10: 3, ProblemMin10: 2, SaturationCapOverall100: capOf(20)},
		},
		category.DTCEcom: {
			Weights: WeightVector{
				Problem: 0.14, Underserved: 0.12, Demand: 0.22,
				Differentiation: 0.18, Economics: 0.20, GTM: 0.14,
			},
			Gates: GateThresholds{DemandMin10: 2, EconomicsMin10: 3, ProblemMin10: 1, SaturationCapOverall100: capOf(25)},
		},
		category.ServicesMarketplace: {
			Weights: WeightVector{
				Problem: 0.18, Underserved: 0.14, Demand: 0.22,
				Differentiation: 0.12, Economics: 0.16, GTM: 0.18,
			},
			Gates: GateThresholds{DemandMin10: 2, EconomicsMin10: 2, ProblemMin10: 2, SaturationCapOverall100: capOf(20)},
		},
		category.FreelanceMarketplace: {
			Weights: WeightVector{
				Problem: 0.16, Underserved: 0.16, Demand: 0.22,
				Differentiation: 0.12, Economics: 0.16, GTM: 0.18,
			},
			Gates: GateThresholds{DemandMin10: 2, EconomicsMin10: 2, ProblemMin10: 2, SaturationCapOverall100: capOf(20)},
		},
		category.LearningMarketplace: {
			Weights: WeightVector{
				Problem: 0.18, Underserved: 0.16, Demand: 0.20,
				Differentiation: 0.14, Economics: 0.14, GTM: 0.18,
			},
			Gates: GateThresholds{DemandMin10: 2, EconomicsMin10: 2, ProblemMin10: 2},
		},
		category.RegulatedServices: {
			Weights: WeightVector{
				Problem: 0.22, Underserved: 0.16, Demand: 0.16,
				Differentiation: 0.14, Economics: 0.18, GTM: 0.14,
			},
			Gates: GateThresholds{DemandMin10: 1, EconomicsMin10: 2, ProblemMin10: 3},
		},
		category.VerticalComms: {
			Weights: WeightVector{
				Problem: 0.20, Underserved: 0.18, Demand: 0.18,
				Differentiation: 0.16, Economics: 0.12, GTM: 0.16,
			},
			Gates: GateThresholds{DemandMin10: 2, EconomicsMin10: 1, ProblemMin10: 2, SaturationCapOverall100: capOf(15)},
		},
		category.PMSoftware: {
			Weights: WeightVector{
				Problem: 0.22, Underserved: 0.16, Demand: 0.18,
				Differentiation: 0.18, Economics: 0.14, GTM: 0.12,
			},
			Gates: GateThresholds{DemandMin10: 2, EconomicsMin10: 3, ProblemMin10: 3, SaturationCapOverall100: capOf(15)},
		},
		category.General: {
			Weights: WeightVector{
				Problem: 0.20, Underserved: 0.15, Demand: 0.20,
				Differentiation: 0.15, Economics: 0.15, GTM: 0.15,
			},
			Gates: GateThresholds{DemandMin10: 1, EconomicsMin10: 1, ProblemMin10: 1},
		},
	}
}
