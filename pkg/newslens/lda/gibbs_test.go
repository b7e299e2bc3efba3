package lda

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/floats"

	"github.com/cognicore/newslens/pkg/newslens/corpus"
	"github.com/cognicore/newslens/pkg/newslens/internalerr"
)

// testCorpus builds a small bimodal corpus: half the documents are about
// economy terms, half about sports terms, with no overlap. Two topics
// should separate them cleanly.
func testCorpus(t *testing.T) (*corpus.Vocabulary, *corpus.Matrix) {
	t.Helper()
	economy := []string{"inflación", "dólar", "banco", "precios", "mercado"}
	sports := []string{"partido", "gol", "equipo", "torneo", "jugador"}

	b := corpus.NewBuilder()
	for i := 0; i < 24; i++ {
		var tokens []string
		base := economy
		if i%2 == 1 {
			base = sports
		}
		for rep := 0; rep < 8; rep++ {
			tokens = append(tokens, base...)
		}
		if err := b.AddDocument(fmt.Sprintf("doc-%d", i), tokens); err != nil {
			t.Fatalf("AddDocument: %v", err)
		}
	}
	vocab, m, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return vocab, m
}

func TestFitDistributionsNormalized(t *testing.T) {
	vocab, m := testCorpus(t)

	res, err := Fit(m, vocab, Config{K: 2, Seed: 42})
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}

	k, v := res.Beta.Dims()
	if k != 2 || v != vocab.Size() {
		t.Fatalf("beta dims = %d×%d, want 2×%d", k, v, vocab.Size())
	}
	for topic := 0; topic < k; topic++ {
		row := res.Beta.RawRowView(topic)
		if sum := floats.Sum(row); math.Abs(sum-1) > 1e-6 {
			t.Errorf("beta row %d sums to %v, want 1", topic, sum)
		}
		for w, p := range row {
			if p < 0 {
				t.Errorf("beta(%d, %d) = %v, want >= 0", topic, w, p)
			}
		}
	}

	d, dk := res.Gamma.Dims()
	if d != m.Rows() || dk != 2 {
		t.Fatalf("gamma dims = %d×%d, want %d×2", d, dk, m.Rows())
	}
	for doc := 0; doc < d; doc++ {
		row := res.Gamma.RawRowView(doc)
		if sum := floats.Sum(row); math.Abs(sum-1) > 1e-6 {
			t.Errorf("gamma row %d sums to %v, want 1", doc, sum)
		}
	}
}

func TestFitDeterministicUnderSeed(t *testing.T) {
	vocab, m := testCorpus(t)
	cfg := Config{K: 2, Seed: 7, MaxIterations: 100}

	first, err := Fit(m, vocab, cfg)
	if err != nil {
		t.Fatalf("first Fit: %v", err)
	}
	second, err := Fit(m, vocab, cfg)
	if err != nil {
		t.Fatalf("second Fit: %v", err)
	}

	if !matEqual(first.Beta.RawMatrix().Data, second.Beta.RawMatrix().Data) {
		t.Error("beta differs across reruns with identical seed and input")
	}
	if !matEqual(first.Gamma.RawMatrix().Data, second.Gamma.RawMatrix().Data) {
		t.Error("gamma differs across reruns with identical seed and input")
	}
	if first.Iterations != second.Iterations || first.Converged != second.Converged {
		t.Error("convergence diagnostics differ across reruns with identical seed")
	}
}

func TestFitSeparatesDisjointTopics(t *testing.T) {
	vocab, m := testCorpus(t)

	// A weak document prior lets each document commit to one topic; the
	// disjoint vocabularies then force a clean two-topic split.
	res, err := Fit(m, vocab, Config{K: 2, Seed: 3, MaxIterations: 300, Alpha: 0.1})
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}

	// Economy and sports vocabularies never co-occur, so each topic's
	// top terms should come from a single group.
	economy := map[string]bool{"inflación": true, "dólar": true, "banco": true, "precios": true, "mercado": true}
	for k := 0; k < 2; k++ {
		top := res.TopTerms(k, 5)
		inEconomy := 0
		for _, tw := range top {
			if economy[tw.Term] {
				inEconomy++
			}
		}
		if inEconomy != 0 && inEconomy != 5 {
			var terms []string
			for _, tw := range top {
				terms = append(terms, tw.Term)
			}
			t.Errorf("topic %d mixes term groups: %s", k, strings.Join(terms, ", "))
		}
	}
}

func TestFitDegenerateInputs(t *testing.T) {
	vocab, m := testCorpus(t)

	cases := []struct {
		name string
		cfg  Config
	}{
		{"k exceeds vocabulary", Config{K: vocab.Size() + 1, Seed: 1}},
		{"k zero", Config{K: 0, Seed: 1}},
		{"k negative", Config{K: -3, Seed: 1}},
	}
	for _, tc := range cases {
		if _, err := Fit(m, vocab, tc.cfg); !errors.Is(err, internalerr.ErrDegenerateInput) {
			t.Errorf("%s: got %v, want ErrDegenerateInput", tc.name, err)
		}
	}
}

func TestFitEmptyMatrix(t *testing.T) {
	b := corpus.NewBuilder()
	if err := b.AddDocument("A", []string{}); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}
	vocab, m, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// Vocabulary size 0 also trips the K > V check; assert on the NNZ
	// guard by giving the vocabulary a term without a count.
	vocab.Add("fantasma")

	if _, err := Fit(m, vocab, Config{K: 1, Seed: 1}); !errors.Is(err, internalerr.ErrDegenerateInput) {
		t.Errorf("zero non-zero entries: got %v, want ErrDegenerateInput", err)
	}
}

func TestFitNonConvergenceIsUsable(t *testing.T) {
	vocab, m := testCorpus(t)

	// One sweep with an unreachable tolerance: budget exhausted, but
	// the estimate must come back usable.
	res, err := Fit(m, vocab, Config{K: 2, Seed: 11, MaxIterations: 1, Tolerance: 1e-300})
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if res.Converged {
		t.Error("one sweep should not report convergence")
	}
	if res.Iterations != 1 {
		t.Errorf("iterations = %d, want 1", res.Iterations)
	}
	for doc := 0; doc < m.Rows(); doc++ {
		if sum := floats.Sum(res.Gamma.RawRowView(doc)); math.Abs(sum-1) > 1e-6 {
			t.Errorf("non-converged gamma row %d sums to %v, want 1", doc, sum)
		}
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := DefaultConfig(4)
	if cfg.MaxIterations != DefaultMaxIterations {
		t.Errorf("MaxIterations = %d, want %d", cfg.MaxIterations, DefaultMaxIterations)
	}
	if cfg.Tolerance != DefaultTolerance {
		t.Errorf("Tolerance = %v, want %v", cfg.Tolerance, DefaultTolerance)
	}
	if math.Abs(cfg.Alpha-12.5) > 1e-12 {
		t.Errorf("Alpha = %v, want 50/K = 12.5", cfg.Alpha)
	}
	if cfg.Beta != DefaultBeta {
		t.Errorf("Beta = %v, want %v", cfg.Beta, DefaultBeta)
	}
}

func matEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
