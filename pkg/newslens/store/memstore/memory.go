package memstore

import (
	"context"
	"sync"

	"github.com/cognicore/newslens/pkg/newslens/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu           sync.RWMutex
	docs         map[string]store.Doc
	runs         map[string]store.Run
	tfidf        map[string][]store.TFIDFRow
	topicTerms   map[string][]store.TopicTermRow
	docTopics    map[string][]store.DocTopicRow
	outletShares map[string][]store.OutletShareRow
	dateShares   map[string][]store.DateShareRow
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		docs:         make(map[string]store.Doc),
		runs:         make(map[string]store.Run),
		tfidf:        make(map[string][]store.TFIDFRow),
		topicTerms:   make(map[string][]store.TopicTermRow),
		docTopics:    make(map[string][]store.DocTopicRow),
		outletShares: make(map[string][]store.OutletShareRow),
		dateShares:   make(map[string][]store.DateShareRow),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// UpsertDoc inserts or updates a document, keyed by ID.
func (s *Store) UpsertDoc(ctx context.Context, d store.Doc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ID == "" {
		return nil
	}
	s.docs[d.ID] = d
	return nil
}

// GetDoc retrieves a document by ID.
func (s *Store) GetDoc(ctx context.Context, id string) (store.Doc, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.docs[id]
	return d, ok, nil
}

// CountDocs returns the number of stored documents.
func (s *Store) CountDocs(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.docs)), nil
}

// SaveRun records a run.
func (s *Store) SaveRun(ctx context.Context, r store.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[r.ID] = r
	return nil
}

// GetRun retrieves a run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[id]
	return r, ok, nil
}

// SaveTFIDF stores a run's characteristic-word table.
func (s *Store) SaveTFIDF(ctx context.Context, runID string, rows []store.TFIDFRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tfidf[runID] = append([]store.TFIDFRow(nil), rows...)
	return nil
}

// GetTFIDF reads a run's characteristic-word table.
func (s *Store) GetTFIDF(ctx context.Context, runID string) ([]store.TFIDFRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]store.TFIDFRow(nil), s.tfidf[runID]...), nil
}

// SaveTopicTerms stores a run's β table.
func (s *Store) SaveTopicTerms(ctx context.Context, runID string, rows []store.TopicTermRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topicTerms[runID] = append([]store.TopicTermRow(nil), rows...)
	return nil
}

// GetTopicTerms reads a run's β table.
func (s *Store) GetTopicTerms(ctx context.Context, runID string) ([]store.TopicTermRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]store.TopicTermRow(nil), s.topicTerms[runID]...), nil
}

// SaveDocTopics stores a run's γ table.
func (s *Store) SaveDocTopics(ctx context.Context, runID string, rows []store.DocTopicRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docTopics[runID] = append([]store.DocTopicRow(nil), rows...)
	return nil
}

// GetDocTopics reads a run's γ table.
func (s *Store) GetDocTopics(ctx context.Context, runID string) ([]store.DocTopicRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]store.DocTopicRow(nil), s.docTopics[runID]...), nil
}

// SaveOutletShares stores a run's per-outlet aggregation table.
func (s *Store) SaveOutletShares(ctx context.Context, runID string, rows []store.OutletShareRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outletShares[runID] = append([]store.OutletShareRow(nil), rows...)
	return nil
}

// GetOutletShares reads a run's per-outlet aggregation table.
func (s *Store) GetOutletShares(ctx context.Context, runID string) ([]store.OutletShareRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]store.OutletShareRow(nil), s.outletShares[runID]...), nil
}

// SaveDateShares stores a run's per-date aggregation table.
func (s *Store) SaveDateShares(ctx context.Context, runID string, rows []store.DateShareRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dateShares[runID] = append([]store.DateShareRow(nil), rows...)
	return nil
}

// GetDateShares reads a run's per-date aggregation table.
func (s *Store) GetDateShares(ctx context.Context, runID string) ([]store.DateShareRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]store.DateShareRow(nil), s.dateShares[runID]...), nil
}
