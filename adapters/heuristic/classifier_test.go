package heuristic

import (
	"context"
	"testing"

	"ideagate/domain/category"
	"ideagate/ports"
)

// TestPrecedenceOrder tests that hints resolve in the documented order with
// early resolution
func TestPrecedenceOrder(t *testing.T) {
	tests := []struct {
		name  string
		input ports.ClassifierInput
		want  category.Category
	}{
		{
			name:  "override wins over every hint",
			input: ports.ClassifierInput{Override: "dtc-ecom", Physical: true, Learning: true, Marketplace: true},
			want:  category.DTCEcom,
		},
		{
			name:  "unknown override falls through to hints",
			input: ports.ClassifierInput{Override: "underwater-basket-weaving", Physical: true},
			want:  category.PhysicalSubscription,
		},
		{
			name:  "physical beats learning",
			input: ports.ClassifierInput{Physical: true, Learning: true},
			want:  category.PhysicalSubscription,
		},
		{
			name:  "learning beats marketplace",
			input: ports.ClassifierInput{Learning: true, Marketplace: true},
			want:  category.LearningMarketplace,
		},
		{
			name:  "education category hint maps to learning",
			input: ports.ClassifierInput{CategoryHint: "Education"},
			want:  category.LearningMarketplace,
		},
		{
			name:  "marketplace hint string",
			input: ports.ClassifierInput{CategoryHint: "services marketplace"},
			want:  category.ServicesMarketplace,
		},
		{
			name:  "marketplace beats b2b",
			input: ports.ClassifierInput{Marketplace: true, B2B: true},
			want:  category.ServicesMarketplace,
		},
		{
			name:  "b2b beats project management",
			input: ports.ClassifierInput{B2B: true, ProjectManagement: true},
			want:  category.SaaSB2B,
		},
		{
			name:  "project management flag",
			input: ports.ClassifierInput{ProjectManagement: true},
			want:  category.PMSoftware,
		},
		{
			name:  "no hints falls back to general",
			input: ports.ClassifierInput{Description: "a thing"},
			want:  category.General,
		},
	}

	c := NewClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.ClassifyFast(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Model != tt.want {
				t.Errorf("model = %s, want %s", got.Model, tt.want)
			}
			if got.Confidence <= 0 || got.Confidence > 1 {
				t.Errorf("confidence %v out of (0,1]", got.Confidence)
			}
		})
	}
}
