package store

import (
	"context"
	"time"
)

// Store persists corpus documents and the tabular artifacts of an
// analysis run so downstream reporting can consume them without rerunning
// inference. Artifacts are keyed by run ID: a run's tables are written
// once and never updated.
type Store interface {
	Close() error

	// Docs
	UpsertDoc(ctx context.Context, d Doc) error
	GetDoc(ctx context.Context, id string) (Doc, bool, error)
	CountDocs(ctx context.Context) (int64, error)

	// Runs
	SaveRun(ctx context.Context, r Run) error
	GetRun(ctx context.Context, id string) (Run, bool, error)

	// TF-IDF table
	SaveTFIDF(ctx context.Context, runID string, rows []TFIDFRow) error
	GetTFIDF(ctx context.Context, runID string) ([]TFIDFRow, error)

	// β table
	SaveTopicTerms(ctx context.Context, runID string, rows []TopicTermRow) error
	GetTopicTerms(ctx context.Context, runID string) ([]TopicTermRow, error)

	// γ table
	SaveDocTopics(ctx context.Context, runID string, rows []DocTopicRow) error
	GetDocTopics(ctx context.Context, runID string) ([]DocTopicRow, error)

	// Aggregation tables
	SaveOutletShares(ctx context.Context, runID string, rows []OutletShareRow) error
	GetOutletShares(ctx context.Context, runID string) ([]OutletShareRow, error)
	SaveDateShares(ctx context.Context, runID string, rows []DateShareRow) error
	GetDateShares(ctx context.Context, runID string) ([]DateShareRow, error)
}

// Doc is a stored document's metadata. Raw text is not persisted; the
// store records what reporting joins against.
type Doc struct {
	ID          string
	Outlet      string
	PublishedAt time.Time
}

// Run records one analysis run and its convergence diagnostics.
type Run struct {
	ID         string
	CreatedAt  time.Time
	K          int
	Seed       int64
	Converged  bool
	Iterations int
}

// TFIDFRow is one row of the per-group characteristic-word table.
type TFIDFRow struct {
	Group string
	Term  string
	N     int
	TF    float64
	IDF   float64
	TFIDF float64
}

// TopicTermRow is one row of the topic-word (β) table.
type TopicTermRow struct {
	Topic int
	Term  string
	Beta  float64
}

// DocTopicRow is one row of the document-topic (γ) table.
type DocTopicRow struct {
	DocID string
	Topic int
	Gamma float64
}

// OutletShareRow is the mean γ of a topic across an outlet's documents.
type OutletShareRow struct {
	Outlet       string
	Topic        int
	MeanGammaPct float64
}

// DateShareRow is the mean γ of a topic across one publication date.
type DateShareRow struct {
	Date         time.Time
	Topic        int
	MeanGammaPct float64
}
