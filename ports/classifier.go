package ports

import (
	"context"

	"ideagate/domain/category"
)

// ClassifierInput carries the pre-extracted hints a classifier maps to a
// business-model category. Keyword extraction itself happens upstream.
type ClassifierInput struct {
	// Override is an explicit category requested by the caller; it wins over
	// every hint when it names a known category.
	Override string `json:"override,omitempty"`

	// CategoryHint is a free-form category string supplied by the caller.
	CategoryHint string `json:"category_hint,omitempty"`

	// Boolean hints, checked in fixed precedence order.
	Physical          bool `json:"physical,omitempty"`
	Learning          bool `json:"learning,omitempty"`
	Marketplace       bool `json:"marketplace,omitempty"`
	B2B               bool `json:"b2b,omitempty"`
	ProjectManagement bool `json:"project_management,omitempty"`

	// Description is the raw idea text, unused by the heuristic path but
	// available to remote classifiers.
	Description string `json:"description,omitempty"`
}

// Classification is the result shape shared by the fast and remote paths.
type Classification struct {
	Model      category.Category `json:"model"`
	Confidence float64           `json:"confidence"`
	Features   []string          `json:"features,omitempty"`
	Notes      string            `json:"notes,omitempty"`
}

// Classifier is the fast, local classification path. Implementations must
// not touch the network.
type Classifier interface {
	ClassifyFast(ctx context.Context, input ClassifierInput) (Classification, error)
}

// RemoteClassifier is the optional heavier path. Implementations embed the
// fast path so callers can always fall back.
type RemoteClassifier interface {
	Classifier
	ClassifyRemote(ctx context.Context, input ClassifierInput) (Classification, error)
}

// AsRemote reports whether c also offers the remote path. Callers check
// availability through this rather than invoking a stub and catching.
func AsRemote(c Classifier) (RemoteClassifier, bool) {
	rc, ok := c.(RemoteClassifier)
	return rc, ok
}
