// Package feed loads article collections from JSONL files and normalizes
// them into documents the analysis core accepts: HTML markup stripped,
// numerals removed, dates parsed to day precision.
package feed

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/cognicore/newslens/internal/feed/htmltext"
	"github.com/cognicore/newslens/pkg/newslens/ingest"
)

// Item is one article record as it appears on disk.
type Item struct {
	ID     string `json:"id"`
	Outlet string `json:"outlet"`
	Date   string `json:"date"`
	Text   string `json:"text"`
}

// LoadFromJSONL loads articles from a JSONL file. Malformed lines are
// skipped with a warning; an input yielding zero valid documents is an
// error.
func LoadFromJSONL(path string) ([]ingest.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var docs []ingest.Document
	lines := strings.Split(string(data), "\n")

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var item Item
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			log.Printf("Warning: skipping malformed JSON at line %d in %s: %v", i+1, path, err)
			continue
		}

		doc, err := item.ToDocument()
		if err != nil {
			log.Printf("Warning: skipping invalid article at line %d in %s: %v", i+1, path, err)
			continue
		}
		docs = append(docs, doc)
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("no valid articles found in %s", path)
	}

	return docs, nil
}

// ToDocument normalizes an on-disk item into a validated document.
func (it Item) ToDocument() (ingest.Document, error) {
	date, err := parseDate(it.Date)
	if err != nil {
		return ingest.Document{}, fmt.Errorf("article %s: %w", it.ID, err)
	}

	doc := ingest.Document{
		ID:     it.ID,
		Outlet: it.Outlet,
		Date:   date,
		Text:   stripDigits(htmltext.Strip(it.Text)),
	}
	if err := doc.Validate(); err != nil {
		return ingest.Document{}, err
	}
	return doc, nil
}

// parseDate accepts day-precision dates, falling back to RFC 3339
// timestamps which are truncated to their calendar day.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable date %q", s)
	}
	return t.UTC().Truncate(24 * time.Hour), nil
}

// stripDigits removes numerals so they never reach the tokenizer.
func stripDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return ' '
		}
		return r
	}, s)
}
