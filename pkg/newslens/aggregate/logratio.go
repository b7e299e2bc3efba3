package aggregate

import (
	"fmt"
	"math"
	"sort"

	"github.com/cognicore/newslens/pkg/newslens/internalerr"
	"github.com/cognicore/newslens/pkg/newslens/lda"
)

// excludeZeroDenominator fixes the zero-denominator policy of LogRatio:
// terms whose β under topicB is exactly zero are dropped from the ranking
// rather than reported as +Inf. With Dirichlet smoothing β is strictly
// positive, so the branch only fires on a corrupted model.
const excludeZeroDenominator = true

// TermRatio scores how much more probable a term is under topic A than
// under topic B.
type TermRatio struct {
	Term      string
	BetaA     float64
	BetaB     float64
	Log2Ratio float64
}

// LogRatio ranks terms by log2(β_a / β_b), restricted to terms whose β
// under at least one of the two topics exceeds threshold. Which two topics
// to compare is the caller's judgment; the ranking itself is mechanical.
func LogRatio(res *lda.Result, topicA, topicB int, threshold float64) ([]TermRatio, error) {
	if topicA < 0 || topicA >= res.K || topicB < 0 || topicB >= res.K {
		return nil, fmt.Errorf("topics (%d, %d) out of range [0, %d): %w",
			topicA, topicB, res.K, internalerr.ErrInvalidInput)
	}
	if threshold < 0 {
		return nil, fmt.Errorf("threshold %v < 0: %w", threshold, internalerr.ErrInvalidInput)
	}

	_, v := res.Beta.Dims()
	ratios := make([]TermRatio, 0, v)
	for w := 0; w < v; w++ {
		a := res.Beta.At(topicA, w)
		b := res.Beta.At(topicB, w)
		if a <= threshold && b <= threshold {
			continue
		}
		if b == 0 && excludeZeroDenominator {
			continue
		}
		ratios = append(ratios, TermRatio{
			Term:      res.Vocab.TermOf(w),
			BetaA:     a,
			BetaB:     b,
			Log2Ratio: math.Log2(a / b),
		})
	}

	sort.Slice(ratios, func(i, j int) bool {
		if ratios[i].Log2Ratio != ratios[j].Log2Ratio {
			return ratios[i].Log2Ratio > ratios[j].Log2Ratio
		}
		return ratios[i].Term < ratios[j].Term
	})
	return ratios, nil
}
