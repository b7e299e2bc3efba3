package corpus

import (
	"fmt"

	"github.com/cognicore/newslens/pkg/newslens/internalerr"
)

// Builder accumulates tokenized, filtered documents into a vocabulary and a
// sparse term-count matrix in a single pass.
type Builder struct {
	vocab  *Vocabulary
	docIDs []string
	rows   []map[int]int
	totals []int
	nnz    int
}

// NewBuilder creates an empty corpus builder.
func NewBuilder() *Builder {
	return &Builder{vocab: NewVocabulary()}
}

// AddDocument adds one document's token stream. A nil stream is rejected;
// an empty one is a legitimate document that happened to lose every token
// to filtering and produces an empty row.
func (b *Builder) AddDocument(id string, tokens []string) error {
	if tokens == nil {
		return fmt.Errorf("document %s: nil token stream: %w", id, internalerr.ErrInvalidInput)
	}

	row := make(map[int]int)
	for _, tok := range tokens {
		j := b.vocab.Add(tok)
		if row[j] == 0 {
			b.nnz++
		}
		row[j]++
	}

	b.docIDs = append(b.docIDs, id)
	b.rows = append(b.rows, row)
	b.totals = append(b.totals, len(tokens))
	return nil
}

// Build finalizes the vocabulary and matrix. The builder must have seen at
// least one document.
func (b *Builder) Build() (*Vocabulary, *Matrix, error) {
	if len(b.rows) == 0 {
		return nil, nil, fmt.Errorf("empty corpus: %w", internalerr.ErrInvalidInput)
	}
	m := &Matrix{
		docIDs: b.docIDs,
		rows:   b.rows,
		totals: b.totals,
		nnz:    b.nnz,
	}
	return b.vocab, m, nil
}

// GroupedCounts holds term counts aggregated by an arbitrary grouping key
// (the per-outlet grouping of the TF-IDF use case). Documents are never
// pre-merged; rows are summed under their key.
type GroupedCounts struct {
	groups []string
	index  map[string]int
	counts []map[int]int
	totals []int
	vocab  *Vocabulary
}

// GroupRows aggregates matrix rows by key, where keys[i] is the grouping
// key of row i. Group order follows first appearance.
func GroupRows(m *Matrix, vocab *Vocabulary, keys []string) (*GroupedCounts, error) {
	if len(keys) != m.Rows() {
		return nil, fmt.Errorf("got %d grouping keys for %d rows: %w",
			len(keys), m.Rows(), internalerr.ErrInvalidInput)
	}

	g := &GroupedCounts{index: make(map[string]int), vocab: vocab}
	for i, key := range keys {
		gi, ok := g.index[key]
		if !ok {
			gi = len(g.groups)
			g.index[key] = gi
			g.groups = append(g.groups, key)
			g.counts = append(g.counts, make(map[int]int))
			g.totals = append(g.totals, 0)
		}
		for j, n := range m.Row(i) {
			g.counts[gi][j] += n
		}
		g.totals[gi] += m.RowTotal(i)
	}
	return g, nil
}

// Groups returns the grouping keys in first-appearance order.
func (g *GroupedCounts) Groups() []string {
	out := make([]string, len(g.groups))
	copy(out, g.groups)
	return out
}

// Counts returns the non-zero term counts of group gi.
// Callers must not mutate the returned map.
func (g *GroupedCounts) Counts(gi int) map[int]int {
	return g.counts[gi]
}

// Total returns the total token occurrences in group gi.
func (g *GroupedCounts) Total(gi int) int {
	return g.totals[gi]
}

// Len returns the number of groups.
func (g *GroupedCounts) Len() int {
	return len(g.groups)
}

// Statistics derives group-granularity statistics: N is the number of
// groups and DF[j] the number of groups containing term j.
func (g *GroupedCounts) Statistics() Statistics {
	df := make([]int, g.vocab.Size())
	for _, counts := range g.counts {
		for j := range counts {
			df[j]++
		}
	}
	return Statistics{N: len(g.groups), DF: df, Vocab: g.vocab}
}
