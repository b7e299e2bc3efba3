// Package aggregate summarizes document-topic mixtures by document
// metadata: mean topic shares per outlet and per publication date, plus
// the two-topic discriminative-term ranking.
package aggregate

import (
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/cognicore/newslens/pkg/newslens/ingest"
	"github.com/cognicore/newslens/pkg/newslens/internalerr"
	"github.com/cognicore/newslens/pkg/newslens/lda"
)

// OutletTopicShare is the mean γ of one topic across an outlet's
// documents, as a percentage. Per outlet, shares across all topics sum to
// 100 because each document's mixture sums to 1 and the aggregation is a
// plain mean.
type OutletTopicShare struct {
	Outlet       string
	Topic        int
	MeanGammaPct float64
}

// DateTopicShare is the mean γ of one topic across the documents
// published on one date, as a percentage.
type DateTopicShare struct {
	Date         time.Time
	Topic        int
	MeanGammaPct float64
}

// ByOutlet joins γ with document metadata and averages per (outlet,
// topic). Outlets appear in first-seen document order, topics ascending.
func ByOutlet(res *lda.Result, docs []ingest.Document) ([]OutletTopicShare, error) {
	keyOf := func(d ingest.Document) string { return d.Outlet }
	keys, samples, err := collect(res, docs, keyOf)
	if err != nil {
		return nil, err
	}

	shares := make([]OutletTopicShare, 0, len(keys)*res.K)
	for _, key := range keys {
		for k := 0; k < res.K; k++ {
			shares = append(shares, OutletTopicShare{
				Outlet:       key,
				Topic:        k,
				MeanGammaPct: 100 * stat.Mean(samples[key][k], nil),
			})
		}
	}
	return shares, nil
}

// ByDate averages γ per (publication date, topic) for trend analysis.
// Dates are truncated to day precision and returned chronologically.
func ByDate(res *lda.Result, docs []ingest.Document) ([]DateTopicShare, error) {
	keyOf := func(d ingest.Document) string {
		return d.Date.Format("2006-01-02")
	}
	keys, samples, err := collect(res, docs, keyOf)
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)

	shares := make([]DateTopicShare, 0, len(keys)*res.K)
	for _, key := range keys {
		date, err := time.Parse("2006-01-02", key)
		if err != nil {
			return nil, fmt.Errorf("parse date key %q: %w", key, err)
		}
		for k := 0; k < res.K; k++ {
			shares = append(shares, DateTopicShare{
				Date:         date,
				Topic:        k,
				MeanGammaPct: 100 * stat.Mean(samples[key][k], nil),
			})
		}
	}
	return shares, nil
}

// collect groups per-topic γ samples under the key function. Every γ row
// must find its document metadata; a dangling document ID is a join error,
// not a silent skip.
func collect(res *lda.Result, docs []ingest.Document, keyOf func(ingest.Document) string) ([]string, map[string][][]float64, error) {
	byID := make(map[string]ingest.Document, len(docs))
	for _, d := range docs {
		byID[d.ID] = d
	}

	var keys []string
	samples := make(map[string][][]float64)
	for row, id := range res.DocIDs {
		doc, ok := byID[id]
		if !ok {
			return nil, nil, fmt.Errorf("document %s has a topic mixture but no metadata: %w",
				id, internalerr.ErrInvalidInput)
		}
		key := keyOf(doc)
		if _, ok := samples[key]; !ok {
			keys = append(keys, key)
			samples[key] = make([][]float64, res.K)
		}
		for k := 0; k < res.K; k++ {
			samples[key][k] = append(samples[key][k], res.Gamma.At(row, k))
		}
	}

	if len(keys) == 0 {
		return nil, nil, fmt.Errorf("no documents to aggregate: %w", internalerr.ErrInvalidInput)
	}
	return keys, samples, nil
}
