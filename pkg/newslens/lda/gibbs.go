// Package lda estimates a Latent Dirichlet Allocation model from a sparse
// term-count matrix via collapsed Gibbs sampling.
//
// Generative model: each document draws a topic mixture from a symmetric
// Dirichlet(alpha) prior; each word occurrence draws a topic from that
// mixture, then a term from the topic's Dirichlet(beta)-smoothed word
// distribution. The sampler integrates the mixtures out and resamples one
// latent topic assignment per word occurrence from the full conditional
//
//	p(z = k) ∝ (n_dk + α) · (n_kw + β) / (n_k + V·β)
//
// Sampling order and the random source are fixed by the seed, so a rerun
// with identical inputs reproduces β and γ bit for bit.
package lda

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cognicore/newslens/pkg/newslens/corpus"
	"github.com/cognicore/newslens/pkg/newslens/internalerr"
)

// Fit runs collapsed Gibbs sampling over the count matrix and returns the
// smoothed, normalized topic-word (β) and document-topic (γ) estimates.
//
// Non-convergence within the iteration budget is not an error: the best
// estimate reached is returned with Converged=false.
func Fit(m *corpus.Matrix, vocab *corpus.Vocabulary, cfg Config) (*Result, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(vocab.Size()); err != nil {
		return nil, err
	}
	if m.NNZ() == 0 {
		return nil, fmt.Errorf("count matrix has no non-zero entries: %w", internalerr.ErrDegenerateInput)
	}

	s := newSampler(m, vocab.Size(), cfg)
	s.initAssignments()

	var prev []float64
	converged := false
	iterations := cfg.MaxIterations
	delta := math.Inf(1)

	for it := 1; it <= cfg.MaxIterations; it++ {
		s.sweep()

		if it%evalEvery != 0 && it != cfg.MaxIterations {
			continue
		}
		gamma := s.gammaFlat()
		if prev != nil {
			delta = meanAbsDiff(gamma, prev)
			if delta <= cfg.Tolerance {
				converged = true
				iterations = it
			}
		}
		prev = gamma
		if converged {
			break
		}
	}

	res, err := s.result(m, vocab, converged, iterations, delta)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// sampler holds the collapsed count tables and per-occurrence assignments.
type sampler struct {
	cfg Config
	d   int // documents
	v   int // vocabulary size
	k   int // topics

	// One entry per word occurrence, in (document, term index, repeat)
	// order. Fixed order keeps the chain deterministic under a seed.
	docOf  []int
	wordOf []int
	z      []int

	ndk []int // d×k: occurrences of topic k in document d
	nkw []int // k×v: occurrences of term w assigned to topic k
	nk  []int // k: total occurrences assigned to topic k
	nd  []int // d: total occurrences in document d

	rng *rand.Rand
	buf []float64 // reused full-conditional weights
}

func newSampler(m *corpus.Matrix, vocabSize int, cfg Config) *sampler {
	d := m.Rows()
	s := &sampler{
		cfg: cfg,
		d:   d,
		v:   vocabSize,
		k:   cfg.K,
		ndk: make([]int, d*cfg.K),
		nkw: make([]int, cfg.K*vocabSize),
		nk:  make([]int, cfg.K),
		nd:  make([]int, d),
		rng: rand.New(rand.NewSource(cfg.Seed)),
		buf: make([]float64, cfg.K),
	}

	total := 0
	for i := 0; i < d; i++ {
		total += m.RowTotal(i)
	}
	s.docOf = make([]int, 0, total)
	s.wordOf = make([]int, 0, total)

	for i := 0; i < d; i++ {
		row := m.Row(i)
		// Map iteration order is randomized by the runtime; sort the
		// term indices so the occurrence layout is reproducible.
		terms := sortedKeys(row)
		for _, j := range terms {
			for c := 0; c < row[j]; c++ {
				s.docOf = append(s.docOf, i)
				s.wordOf = append(s.wordOf, j)
			}
		}
		s.nd[i] = m.RowTotal(i)
	}
	s.z = make([]int, len(s.docOf))
	return s
}

// initAssignments seeds every occurrence with a random topic.
func (s *sampler) initAssignments() {
	for t := range s.z {
		k := s.rng.Intn(s.k)
		s.z[t] = k
		s.ndk[s.docOf[t]*s.k+k]++
		s.nkw[k*s.v+s.wordOf[t]]++
		s.nk[k]++
	}
}

// sweep resamples every occurrence once.
func (s *sampler) sweep() {
	vbeta := float64(s.v) * s.cfg.Beta
	for t := range s.z {
		d, w, old := s.docOf[t], s.wordOf[t], s.z[t]

		s.ndk[d*s.k+old]--
		s.nkw[old*s.v+w]--
		s.nk[old]--

		total := 0.0
		for k := 0; k < s.k; k++ {
			p := (float64(s.ndk[d*s.k+k]) + s.cfg.Alpha) *
				(float64(s.nkw[k*s.v+w]) + s.cfg.Beta) /
				(float64(s.nk[k]) + vbeta)
			total += p
			s.buf[k] = total
		}

		u := s.rng.Float64() * total
		next := s.k - 1
		for k := 0; k < s.k; k++ {
			if u < s.buf[k] {
				next = k
				break
			}
		}

		s.z[t] = next
		s.ndk[d*s.k+next]++
		s.nkw[next*s.v+w]++
		s.nk[next]++
	}
}

// gammaFlat derives the current smoothed document-topic estimate as a flat
// d×k slice, used for convergence tracking.
func (s *sampler) gammaFlat() []float64 {
	out := make([]float64, s.d*s.k)
	kalpha := float64(s.k) * s.cfg.Alpha
	for d := 0; d < s.d; d++ {
		denom := float64(s.nd[d]) + kalpha
		for k := 0; k < s.k; k++ {
			out[d*s.k+k] = (float64(s.ndk[d*s.k+k]) + s.cfg.Alpha) / denom
		}
	}
	return out
}

// result materializes β and γ and verifies the normalization invariants.
func (s *sampler) result(m *corpus.Matrix, vocab *corpus.Vocabulary, converged bool, iterations int, delta float64) (*Result, error) {
	beta := mat.NewDense(s.k, s.v, nil)
	vbeta := float64(s.v) * s.cfg.Beta
	for k := 0; k < s.k; k++ {
		denom := float64(s.nk[k]) + vbeta
		row := beta.RawRowView(k)
		for w := 0; w < s.v; w++ {
			row[w] = (float64(s.nkw[k*s.v+w]) + s.cfg.Beta) / denom
		}
		if err := checkNormalized("beta", k, row); err != nil {
			return nil, err
		}
	}

	gamma := mat.NewDense(s.d, s.k, s.gammaFlat())
	for d := 0; d < s.d; d++ {
		if err := checkNormalized("gamma", d, gamma.RawRowView(d)); err != nil {
			return nil, err
		}
	}

	docIDs := make([]string, m.Rows())
	for i := range docIDs {
		docIDs[i] = m.DocID(i)
	}

	return &Result{
		Beta:       beta,
		Gamma:      gamma,
		DocIDs:     docIDs,
		Vocab:      vocab,
		K:          s.k,
		Converged:  converged,
		Iterations: iterations,
		Delta:      delta,
	}, nil
}

// checkNormalized enforces the sum-to-one invariant on a distribution row.
func checkNormalized(name string, row int, p []float64) error {
	sum := floats.Sum(p)
	if math.IsNaN(sum) || math.IsInf(sum, 0) || math.Abs(sum-1) > normTolerance {
		return fmt.Errorf("%s row %d sums to %v, want 1: %w",
			name, row, sum, internalerr.ErrNumericInstability)
	}
	for _, v := range p {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("%s row %d holds invalid probability %v: %w",
				name, row, v, internalerr.ErrNumericInstability)
		}
	}
	return nil
}

// normTolerance bounds the acceptable deviation of a probability row's sum
// from one.
const normTolerance = 1e-6

func meanAbsDiff(a, b []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	sum := 0.0
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum / float64(len(a))
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
