package sqlite

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/newslens/pkg/newslens/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled and the schema
// initialized.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS docs (
	id TEXT PRIMARY KEY,
	outlet TEXT NOT NULL,
	published_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	k INTEGER NOT NULL,
	seed INTEGER NOT NULL,
	converged INTEGER NOT NULL,
	iterations INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS tfidf (
	run_id TEXT NOT NULL,
	group_key TEXT NOT NULL,
	term TEXT NOT NULL,
	n INTEGER NOT NULL,
	tf REAL NOT NULL,
	idf REAL NOT NULL,
	tf_idf REAL NOT NULL,
	PRIMARY KEY(run_id, group_key, term)
);

CREATE TABLE IF NOT EXISTS topic_terms (
	run_id TEXT NOT NULL,
	topic INTEGER NOT NULL,
	term TEXT NOT NULL,
	beta REAL NOT NULL,
	PRIMARY KEY(run_id, topic, term)
);

CREATE TABLE IF NOT EXISTS doc_topics (
	run_id TEXT NOT NULL,
	doc_id TEXT NOT NULL,
	topic INTEGER NOT NULL,
	gamma REAL NOT NULL,
	PRIMARY KEY(run_id, doc_id, topic)
);

CREATE TABLE IF NOT EXISTS outlet_topics (
	run_id TEXT NOT NULL,
	outlet TEXT NOT NULL,
	topic INTEGER NOT NULL,
	mean_gamma_pct REAL NOT NULL,
	PRIMARY KEY(run_id, outlet, topic)
);

CREATE TABLE IF NOT EXISTS date_topics (
	run_id TEXT NOT NULL,
	date TEXT NOT NULL,
	topic INTEGER NOT NULL,
	mean_gamma_pct REAL NOT NULL,
	PRIMARY KEY(run_id, date, topic)
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertDoc inserts or updates a document's metadata
func (s *sqliteStore) UpsertDoc(ctx context.Context, d store.Doc) error {
	const stmt = `
INSERT INTO docs (id, outlet, published_at)
VALUES (?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	outlet=excluded.outlet,
	published_at=excluded.published_at;
`
	_, err := s.db.ExecContext(ctx, stmt, d.ID, d.Outlet, d.PublishedAt.UTC().Format(time.RFC3339))
	return err
}

// GetDoc retrieves a document by ID
func (s *sqliteStore) GetDoc(ctx context.Context, id string) (store.Doc, bool, error) {
	const stmt = `SELECT id, outlet, published_at FROM docs WHERE id = ?`

	var d store.Doc
	var published string
	err := s.db.QueryRowContext(ctx, stmt, id).Scan(&d.ID, &d.Outlet, &published)
	if err == sql.ErrNoRows {
		return store.Doc{}, false, nil
	}
	if err != nil {
		return store.Doc{}, false, err
	}

	d.PublishedAt, err = time.Parse(time.RFC3339, published)
	if err != nil {
		return store.Doc{}, false, err
	}
	return d, true, nil
}

// CountDocs returns the number of stored documents
func (s *sqliteStore) CountDocs(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM docs`).Scan(&n)
	return n, err
}

// SaveRun records a run and its diagnostics
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) error {
	const stmt = `
INSERT INTO runs (id, created_at, k, seed, converged, iterations)
VALUES (?, ?, ?, ?, ?, ?);
`
	converged := 0
	if r.Converged {
		converged = 1
	}
	_, err := s.db.ExecContext(ctx, stmt,
		r.ID, r.CreatedAt.UTC().Format(time.RFC3339), r.K, r.Seed, converged, r.Iterations)
	return err
}

// GetRun retrieves a run by ID
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, bool, error) {
	const stmt = `SELECT id, created_at, k, seed, converged, iterations FROM runs WHERE id = ?`

	var r store.Run
	var created string
	var converged int
	err := s.db.QueryRowContext(ctx, stmt, id).Scan(&r.ID, &created, &r.K, &r.Seed, &converged, &r.Iterations)
	if err == sql.ErrNoRows {
		return store.Run{}, false, nil
	}
	if err != nil {
		return store.Run{}, false, err
	}

	r.CreatedAt, err = time.Parse(time.RFC3339, created)
	if err != nil {
		return store.Run{}, false, err
	}
	r.Converged = converged != 0
	return r, true, nil
}

// SaveTFIDF writes the per-group characteristic-word table in one transaction
func (s *sqliteStore) SaveTFIDF(ctx context.Context, runID string, rows []store.TFIDFRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const stmt = `
INSERT INTO tfidf (run_id, group_key, term, n, tf, idf, tf_idf)
VALUES (?, ?, ?, ?, ?, ?, ?);
`
	for _, row := range rows {
		if _, err := tx.ExecContext(ctx, stmt,
			runID, row.Group, row.Term, row.N, row.TF, row.IDF, row.TFIDF); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetTFIDF reads a run's characteristic-word table
func (s *sqliteStore) GetTFIDF(ctx context.Context, runID string) ([]store.TFIDFRow, error) {
	const stmt = `
SELECT group_key, term, n, tf, idf, tf_idf FROM tfidf
WHERE run_id = ? ORDER BY group_key, tf_idf DESC, term;
`
	rows, err := s.db.QueryContext(ctx, stmt, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.TFIDFRow
	for rows.Next() {
		var r store.TFIDFRow
		if err := rows.Scan(&r.Group, &r.Term, &r.N, &r.TF, &r.IDF, &r.TFIDF); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SaveTopicTerms writes a run's β table in one transaction
func (s *sqliteStore) SaveTopicTerms(ctx context.Context, runID string, rows []store.TopicTermRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const stmt = `INSERT INTO topic_terms (run_id, topic, term, beta) VALUES (?, ?, ?, ?);`
	for _, row := range rows {
		if _, err := tx.ExecContext(ctx, stmt, runID, row.Topic, row.Term, row.Beta); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetTopicTerms reads a run's β table
func (s *sqliteStore) GetTopicTerms(ctx context.Context, runID string) ([]store.TopicTermRow, error) {
	const stmt = `
SELECT topic, term, beta FROM topic_terms
WHERE run_id = ? ORDER BY topic, beta DESC, term;
`
	rows, err := s.db.QueryContext(ctx, stmt, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.TopicTermRow
	for rows.Next() {
		var r store.TopicTermRow
		if err := rows.Scan(&r.Topic, &r.Term, &r.Beta); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SaveDocTopics writes a run's γ table in one transaction
func (s *sqliteStore) SaveDocTopics(ctx context.Context, runID string, rows []store.DocTopicRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const stmt = `INSERT INTO doc_topics (run_id, doc_id, topic, gamma) VALUES (?, ?, ?, ?);`
	for _, row := range rows {
		if _, err := tx.ExecContext(ctx, stmt, runID, row.DocID, row.Topic, row.Gamma); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetDocTopics reads a run's γ table
func (s *sqliteStore) GetDocTopics(ctx context.Context, runID string) ([]store.DocTopicRow, error) {
	const stmt = `
SELECT doc_id, topic, gamma FROM doc_topics
WHERE run_id = ? ORDER BY doc_id, topic;
`
	rows, err := s.db.QueryContext(ctx, stmt, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.DocTopicRow
	for rows.Next() {
		var r store.DocTopicRow
		if err := rows.Scan(&r.DocID, &r.Topic, &r.Gamma); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SaveOutletShares writes a run's per-outlet aggregation table
func (s *sqliteStore) SaveOutletShares(ctx context.Context, runID string, rows []store.OutletShareRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const stmt = `INSERT INTO outlet_topics (run_id, outlet, topic, mean_gamma_pct) VALUES (?, ?, ?, ?);`
	for _, row := range rows {
		if _, err := tx.ExecContext(ctx, stmt, runID, row.Outlet, row.Topic, row.MeanGammaPct); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetOutletShares reads a run's per-outlet aggregation table
func (s *sqliteStore) GetOutletShares(ctx context.Context, runID string) ([]store.OutletShareRow, error) {
	const stmt = `
SELECT outlet, topic, mean_gamma_pct FROM outlet_topics
WHERE run_id = ? ORDER BY outlet, topic;
`
	rows, err := s.db.QueryContext(ctx, stmt, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.OutletShareRow
	for rows.Next() {
		var r store.OutletShareRow
		if err := rows.Scan(&r.Outlet, &r.Topic, &r.MeanGammaPct); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SaveDateShares writes a run's per-date aggregation table
func (s *sqliteStore) SaveDateShares(ctx context.Context, runID string, rows []store.DateShareRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const stmt = `INSERT INTO date_topics (run_id, date, topic, mean_gamma_pct) VALUES (?, ?, ?, ?);`
	for _, row := range rows {
		if _, err := tx.ExecContext(ctx, stmt,
			runID, row.Date.UTC().Format("2006-01-02"), row.Topic, row.MeanGammaPct); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetDateShares reads a run's per-date aggregation table
func (s *sqliteStore) GetDateShares(ctx context.Context, runID string) ([]store.DateShareRow, error) {
	const stmt = `
SELECT date, topic, mean_gamma_pct FROM date_topics
WHERE run_id = ? ORDER BY date, topic;
`
	rows, err := s.db.QueryContext(ctx, stmt, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.DateShareRow
	for rows.Next() {
		var r store.DateShareRow
		var date string
		if err := rows.Scan(&date, &r.Topic, &r.MeanGammaPct); err != nil {
			return nil, err
		}
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, err
		}
		r.Date = parsed
		out = append(out, r)
	}
	return out, rows.Err()
}
