package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/cognicore/newslens/pkg/newslens/internalerr"
)

// Document is a normalized news article as handed to the analysis core.
// Ingestion (CSV/JSONL parsing, encoding normalization) happens upstream;
// a Document is immutable once it enters the pipeline.
type Document struct {
	ID     string
	Outlet string
	Date   time.Time
	Text   string
}

// Validate checks that the document carries the fields every downstream
// component depends on.
func (d *Document) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("document id is required: %w", internalerr.ErrInvalidInput)
	}

	if strings.TrimSpace(d.Outlet) == "" {
		return fmt.Errorf("document %s: outlet is required: %w", d.ID, internalerr.ErrInvalidInput)
	}

	if d.Date.IsZero() {
		return fmt.Errorf("document %s: date is required: %w", d.ID, internalerr.ErrInvalidInput)
	}

	if strings.TrimSpace(d.Text) == "" {
		return fmt.Errorf("document %s: text is required: %w", d.ID, internalerr.ErrInvalidInput)
	}

	return nil
}
