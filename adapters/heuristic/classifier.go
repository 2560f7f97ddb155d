// Package heuristic is the default fast classification adapter. It maps
// pre-extracted hints to a category using fixed precedence rules; it never
// touches the network.
package heuristic

import (
	"context"
	"strings"

	"ideagate/domain/category"
	"ideagate/ports"
)

// Classifier implements ports.Classifier over caller-supplied hints.
type Classifier struct{}

// NewClassifier creates the heuristic classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// ClassifyFast resolves hints in fixed precedence order. Categories are
// mutually exclusive, so the first matching branch wins:
// explicit override, physical, learning/education, marketplace, b2b,
// project management, then the general fallback.
func (c *Classifier) ClassifyFast(ctx context.Context, input ports.ClassifierInput) (ports.Classification, error) {
	hint := strings.ToLower(input.CategoryHint)

	if input.Override != "" {
		if cat, known := category.Parse(input.Override); known {
			return ports.Classification{
				Model:      cat,
				Confidence: 0.95,
				Features:   []string{"override"},
			}, nil
		}
	}

	switch {
	case input.Physical || strings.Contains(hint, "physical"):
		return ports.Classification{
			Model:      category.PhysicalSubscription,
			Confidence: 0.8,
			Features:   []string{"physical"},
		}, nil
	case input.Learning || strings.Contains(hint, "learning") || strings.Contains(hint, "education"):
		return ports.Classification{
			Model:      category.LearningMarketplace,
			Confidence: 0.8,
			Features:   []string{"learning"},
		}, nil
	case input.Marketplace || strings.Contains(hint, "marketplace"):
		return ports.Classification{
			Model:      category.ServicesMarketplace,
			Confidence: 0.75,
			Features:   []string{"marketplace"},
		}, nil
	case input.B2B:
		return ports.Classification{
			Model:      category.SaaSB2B,
			Confidence: 0.7,
			Features:   []string{"b2b"},
		}, nil
	case input.ProjectManagement:
		return ports.Classification{
			Model:      category.PMSoftware,
			Confidence: 0.7,
			Features:   []string{"project-management"},
		}, nil
	}

	return ports.Classification{
		Model:      category.General,
		Confidence: 0.5,
		Notes:      "no hints matched",
	}, nil
}
