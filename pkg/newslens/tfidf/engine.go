// Package tfidf computes term-frequency / inverse-document-frequency
// scores over grouped term counts.
//
// The grouping unit is opaque: the per-outlet characteristic-word ranking
// hands in counts aggregated by outlet, but the math is identical for any
// granularity (per-article, per-date). The engine never assumes that
// "document" means "article".
package tfidf

import (
	"fmt"
	"math"
	"sort"

	"github.com/cognicore/newslens/pkg/newslens/corpus"
	"github.com/cognicore/newslens/pkg/newslens/internalerr"
)

// Record holds the scores for one (group, term) pair.
//
//	TF    = N / total token occurrences in the group
//	IDF   = ln(groups / groups containing the term)
//	TFIDF = TF * IDF
type Record struct {
	Group string
	Term  string
	N     int
	TF    float64
	IDF   float64
	TFIDF float64
}

// Compute derives one record per stored (group, term) count. Output order
// is unspecified; ranking belongs to the caller (see TopN).
//
// IDF uses the natural logarithm, so idf = 0 exactly when a term appears
// in every group — a corpus where that holds for all terms yields an
// all-zero table, which is a reportable result, not an error.
func Compute(g *corpus.GroupedCounts, stats corpus.Statistics) ([]Record, error) {
	if g.Len() == 0 {
		return nil, fmt.Errorf("no groups to score: %w", internalerr.ErrInvalidInput)
	}

	records := make([]Record, 0, g.Len())
	groups := g.Groups()
	n := float64(stats.N)

	for gi, group := range groups {
		total := float64(g.Total(gi))
		for j, count := range g.Counts(gi) {
			df := stats.DF[j]
			if df == 0 {
				// df is derived from the same counts; a present term
				// with zero df means the statistics and counts diverged.
				return nil, fmt.Errorf("term %q present with df=0: %w",
					stats.Vocab.TermOf(j), internalerr.ErrNumericInstability)
			}
			tf := float64(count) / total
			idf := math.Log(n / float64(df))
			records = append(records, Record{
				Group: group,
				Term:  stats.Vocab.TermOf(j),
				N:     count,
				TF:    tf,
				IDF:   idf,
				TFIDF: tf * idf,
			})
		}
	}

	return records, nil
}

// TopN returns the n highest-scoring records per group, descending by
// TFIDF with the term string as tiebreaker. This is the thin consumer-side
// ranking the engine itself does not impose.
func TopN(records []Record, n int) map[string][]Record {
	byGroup := make(map[string][]Record)
	for _, r := range records {
		byGroup[r.Group] = append(byGroup[r.Group], r)
	}

	for group, recs := range byGroup {
		sort.Slice(recs, func(i, j int) bool {
			if recs[i].TFIDF != recs[j].TFIDF {
				return recs[i].TFIDF > recs[j].TFIDF
			}
			return recs[i].Term < recs[j].Term
		})
		if n > 0 && len(recs) > n {
			recs = recs[:n]
		}
		byGroup[group] = recs
	}

	return byGroup
}
