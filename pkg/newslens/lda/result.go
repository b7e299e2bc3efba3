package lda

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/cognicore/newslens/pkg/newslens/corpus"
)

// Result holds the estimated distributions of one inference run. Both
// matrices are immutable once returned; rounding for reporting happens at
// export, never here.
type Result struct {
	// Beta is the K×V topic-word distribution: Beta.At(k, w) is the
	// probability of term w under topic k. Rows sum to 1.
	Beta *mat.Dense

	// Gamma is the D×K document-topic distribution: Gamma.At(d, k) is
	// the weight of topic k in document d. Rows sum to 1, aligned with
	// DocIDs.
	Gamma *mat.Dense

	DocIDs []string
	Vocab  *corpus.Vocabulary
	K      int

	// Convergence diagnostics. A run that exhausts the iteration budget
	// still returns a usable estimate with Converged=false.
	Converged  bool
	Iterations int
	Delta      float64
}

// TermWeight pairs a vocabulary term with its probability under a topic.
type TermWeight struct {
	Term string
	Beta float64
}

// TopTerms returns the n most probable terms of topic k, descending by
// probability with the term string as tiebreaker.
func (r *Result) TopTerms(k, n int) []TermWeight {
	_, v := r.Beta.Dims()
	weights := make([]TermWeight, v)
	for w := 0; w < v; w++ {
		weights[w] = TermWeight{Term: r.Vocab.TermOf(w), Beta: r.Beta.At(k, w)}
	}
	sort.Slice(weights, func(i, j int) bool {
		if weights[i].Beta != weights[j].Beta {
			return weights[i].Beta > weights[j].Beta
		}
		return weights[i].Term < weights[j].Term
	})
	if n > 0 && len(weights) > n {
		weights = weights[:n]
	}
	return weights
}

// TopicWeights returns document d's topic mixture as a copied slice.
func (r *Result) TopicWeights(d int) []float64 {
	out := make([]float64, r.K)
	mat.Row(out, d, r.Gamma)
	return out
}
