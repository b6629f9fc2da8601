package scoring

import "github.com/linkscope/linkscope/internal/page"

// Default composite weights. Contextual relevance dominates when available
// because it reads the candidate's own content rather than guessing from the
// URL shape.
const (
	DefaultIntrinsicWeight  = 0.3
	DefaultContextualWeight = 0.7
)

// CompositeScorer blends the intrinsic score (normalized from its 0-10 range)
// with the contextual score. When the candidate has no head content yet, the
// intrinsic score is used directly; when only one sub-scorer is configured,
// its score is used directly.
type CompositeScorer struct {
	Intrinsic        *IntrinsicScorer
	Contextual       *ContextualScorer
	IntrinsicWeight  float64
	ContextualWeight float64
}

// NewCompositeScorer creates a composite with the default weights.
func NewCompositeScorer(intrinsic *IntrinsicScorer, contextual *ContextualScorer) *CompositeScorer {
	return &CompositeScorer{
		Intrinsic:        intrinsic,
		Contextual:       contextual,
		IntrinsicWeight:  DefaultIntrinsicWeight,
		ContextualWeight: DefaultContextualWeight,
	}
}

// Score implements Scorer. The result is in [0, 1].
func (s *CompositeScorer) Score(c *page.Candidate) (float64, error) {
	var intrinsic float64
	haveIntrinsic := s.Intrinsic != nil
	if haveIntrinsic {
		raw, err := s.Intrinsic.Score(c)
		if err != nil {
			return 0, err
		}
		intrinsic = raw / intrinsicMax
	}

	haveContextual := s.Contextual != nil && s.Contextual.Scorable(c)
	if !haveContextual {
		return intrinsic, nil
	}

	contextual, err := s.Contextual.Score(c)
	if err != nil {
		return 0, err
	}
	if !haveIntrinsic {
		return contextual, nil
	}

	return intrinsic*s.IntrinsicWeight + contextual*s.ContextualWeight, nil
}
