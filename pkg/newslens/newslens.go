// Package newslens analyzes a news-article corpus: per-outlet
// characteristic vocabulary via TF-IDF and a latent-topic decomposition
// via LDA, aggregated by outlet and publication date.
package newslens

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/newslens/pkg/newslens/aggregate"
	"github.com/cognicore/newslens/pkg/newslens/corpus"
	"github.com/cognicore/newslens/pkg/newslens/ingest"
	"github.com/cognicore/newslens/pkg/newslens/internalerr"
	"github.com/cognicore/newslens/pkg/newslens/lda"
	"github.com/cognicore/newslens/pkg/newslens/store"
	"github.com/cognicore/newslens/pkg/newslens/tfidf"
)

// Options configures an Analyzer instance.
type Options struct {
	// Store receives documents and run artifacts when set; a nil store
	// keeps the run in memory only.
	Store store.Store

	// Pipeline performs tokenization and stopword filtering.
	Pipeline *ingest.Pipeline

	// Model is the LDA configuration; zero-value optional fields take
	// the documented defaults.
	Model lda.Config
}

// Analyzer is the main analysis facade.
type Analyzer struct {
	store    store.Store
	pipeline *ingest.Pipeline
	model    lda.Config
	entropy  *ulid.MonotonicEntropy
}

// New creates an Analyzer with the given dependencies.
func New(opts Options) *Analyzer {
	return &Analyzer{
		store:    opts.Store,
		pipeline: opts.Pipeline,
		model:    opts.Model,
		entropy:  ulid.Monotonic(rand.Reader, 0),
	}
}

// Close cleanly shuts down the Analyzer.
func (a *Analyzer) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

// Report is the outcome of one analysis run.
type Report struct {
	ID             string
	CreatedAt      time.Time
	Documents      int
	VocabularySize int

	// TFIDF holds the outlet-grouped characteristic-word table.
	TFIDF []tfidf.Record

	// Topics holds the estimated β/γ distributions and diagnostics.
	Topics *lda.Result

	OutletShares []aggregate.OutletTopicShare
	DateShares   []aggregate.DateTopicShare
}

// Run executes the full pipeline over a validated document collection:
// tokenization → corpus assembly → TF-IDF (grouped by outlet) → LDA →
// outlet/date aggregation. When a store is configured, the documents and
// every output table are persisted under the report's ID.
func (a *Analyzer) Run(ctx context.Context, docs []ingest.Document) (*Report, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("empty corpus: %w", internalerr.ErrInvalidInput)
	}
	for i := range docs {
		if err := docs[i].Validate(); err != nil {
			return nil, err
		}
	}

	tokenized := a.pipeline.ProcessAll(docs)

	builder := corpus.NewBuilder()
	outlets := make([]string, len(docs))
	for i, doc := range docs {
		if err := builder.AddDocument(doc.ID, tokenized[i]); err != nil {
			return nil, err
		}
		outlets[i] = doc.Outlet
	}
	vocab, matrix, err := builder.Build()
	if err != nil {
		return nil, err
	}

	grouped, err := corpus.GroupRows(matrix, vocab, outlets)
	if err != nil {
		return nil, err
	}
	records, err := tfidf.Compute(grouped, grouped.Statistics())
	if err != nil {
		return nil, err
	}

	topics, err := lda.Fit(matrix, vocab, a.model)
	if err != nil {
		return nil, err
	}

	outletShares, err := aggregate.ByOutlet(topics, docs)
	if err != nil {
		return nil, err
	}
	dateShares, err := aggregate.ByDate(topics, docs)
	if err != nil {
		return nil, err
	}

	report := &Report{
		ID:             ulid.MustNew(ulid.Now(), a.entropy).String(),
		CreatedAt:      time.Now().UTC(),
		Documents:      len(docs),
		VocabularySize: vocab.Size(),
		TFIDF:          records,
		Topics:         topics,
		OutletShares:   outletShares,
		DateShares:     dateShares,
	}

	if a.store != nil {
		if err := a.persist(ctx, docs, report); err != nil {
			return nil, fmt.Errorf("persist run %s: %w", report.ID, err)
		}
	}

	return report, nil
}

// persist writes the documents and all artifact tables under the report ID.
func (a *Analyzer) persist(ctx context.Context, docs []ingest.Document, r *Report) error {
	for _, doc := range docs {
		err := a.store.UpsertDoc(ctx, store.Doc{
			ID:          doc.ID,
			Outlet:      doc.Outlet,
			PublishedAt: doc.Date,
		})
		if err != nil {
			return err
		}
	}

	run := store.Run{
		ID:         r.ID,
		CreatedAt:  r.CreatedAt,
		K:          r.Topics.K,
		Seed:       a.model.Seed,
		Converged:  r.Topics.Converged,
		Iterations: r.Topics.Iterations,
	}
	if err := a.store.SaveRun(ctx, run); err != nil {
		return err
	}

	tfidfRows := make([]store.TFIDFRow, len(r.TFIDF))
	for i, rec := range r.TFIDF {
		tfidfRows[i] = store.TFIDFRow{
			Group: rec.Group,
			Term:  rec.Term,
			N:     rec.N,
			TF:    rec.TF,
			IDF:   rec.IDF,
			TFIDF: rec.TFIDF,
		}
	}
	if err := a.store.SaveTFIDF(ctx, r.ID, tfidfRows); err != nil {
		return err
	}

	k, v := r.Topics.Beta.Dims()
	topicTerms := make([]store.TopicTermRow, 0, k*v)
	for topic := 0; topic < k; topic++ {
		for w := 0; w < v; w++ {
			topicTerms = append(topicTerms, store.TopicTermRow{
				Topic: topic,
				Term:  r.Topics.Vocab.TermOf(w),
				Beta:  r.Topics.Beta.At(topic, w),
			})
		}
	}
	if err := a.store.SaveTopicTerms(ctx, r.ID, topicTerms); err != nil {
		return err
	}

	docTopics := make([]store.DocTopicRow, 0, len(r.Topics.DocIDs)*k)
	for row, id := range r.Topics.DocIDs {
		for topic := 0; topic < k; topic++ {
			docTopics = append(docTopics, store.DocTopicRow{
				DocID: id,
				Topic: topic,
				Gamma: r.Topics.Gamma.At(row, topic),
			})
		}
	}
	if err := a.store.SaveDocTopics(ctx, r.ID, docTopics); err != nil {
		return err
	}

	outletRows := make([]store.OutletShareRow, len(r.OutletShares))
	for i, s := range r.OutletShares {
		outletRows[i] = store.OutletShareRow{
			Outlet:       s.Outlet,
			Topic:        s.Topic,
			MeanGammaPct: s.MeanGammaPct,
		}
	}
	if err := a.store.SaveOutletShares(ctx, r.ID, outletRows); err != nil {
		return err
	}

	dateRows := make([]store.DateShareRow, len(r.DateShares))
	for i, s := range r.DateShares {
		dateRows[i] = store.DateShareRow{
			Date:         s.Date,
			Topic:        s.Topic,
			MeanGammaPct: s.MeanGammaPct,
		}
	}
	return a.store.SaveDateShares(ctx, r.ID, dateRows)
}
