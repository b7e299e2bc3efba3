package corpus

// Vocabulary is a bidirectional mapping between term strings and dense
// integer indices in [0, V). Indices are assigned in first-seen order, so
// the same corpus processed in the same order always yields the same
// assignment and matrix columns stay consistent within a run.
type Vocabulary struct {
	index map[string]int
	terms []string
}

// NewVocabulary creates an empty vocabulary.
func NewVocabulary() *Vocabulary {
	return &Vocabulary{index: make(map[string]int)}
}

// Add returns the index for term, assigning the next free index on first
// sight. No term is ever assigned two indices.
func (v *Vocabulary) Add(term string) int {
	if idx, ok := v.index[term]; ok {
		return idx
	}
	idx := len(v.terms)
	v.index[term] = idx
	v.terms = append(v.terms, term)
	return idx
}

// IndexOf returns the index for term, if present.
func (v *Vocabulary) IndexOf(term string) (int, bool) {
	idx, ok := v.index[term]
	return idx, ok
}

// TermOf returns the term at the given index. Panics on out-of-range
// indices, since those can only come from a vocabulary/matrix mismatch.
func (v *Vocabulary) TermOf(idx int) string {
	return v.terms[idx]
}

// Size returns the number of distinct terms V.
func (v *Vocabulary) Size() int {
	return len(v.terms)
}

// Terms returns all terms in index order. The returned slice is a copy.
func (v *Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}
