package corpus

// Matrix is a sparse (document × term) matrix of raw occurrence counts.
// Only non-zero entries are stored; memory is proportional to the number of
// non-zeros, never to documents × vocabulary size.
type Matrix struct {
	docIDs []string
	rows   []map[int]int
	totals []int
	nnz    int
}

// Rows returns the number of documents.
func (m *Matrix) Rows() int {
	return len(m.rows)
}

// DocID returns the identifier of row i.
func (m *Matrix) DocID(i int) string {
	return m.docIDs[i]
}

// Count returns the occurrence count for (row i, term j); zero when the
// entry is not stored.
func (m *Matrix) Count(i, j int) int {
	return m.rows[i][j]
}

// Row returns the non-zero entries of row i keyed by term index.
// Callers must not mutate the returned map.
func (m *Matrix) Row(i int) map[int]int {
	return m.rows[i]
}

// RowTotal returns the total number of token occurrences in row i.
func (m *Matrix) RowTotal(i int) int {
	return m.totals[i]
}

// NNZ returns the number of stored non-zero entries.
func (m *Matrix) NNZ() int {
	return m.nnz
}

// Statistics derives the document-granularity corpus statistics: N is the
// number of documents and DF[j] the number of documents containing term j.
func (m *Matrix) Statistics(vocab *Vocabulary) Statistics {
	df := make([]int, vocab.Size())
	for _, row := range m.rows {
		for j := range row {
			df[j]++
		}
	}
	return Statistics{N: len(m.rows), DF: df, Vocab: vocab}
}

// Statistics is the explicit corpus-wide state several engines need: the
// number of grouping units N, the per-term unit frequency DF, and the
// vocabulary. It is passed by value and never mutated after construction.
type Statistics struct {
	N     int
	DF    []int
	Vocab *Vocabulary
}
