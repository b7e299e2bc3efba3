package ingest

import "testing"

func TestStopwordsFilterPreservesOrder(t *testing.T) {
	stops := NewStopwords([]string{"el", "la", "de"})

	in := []string{"el", "gobierno", "de", "la", "nación", "anuncia"}
	got := stops.Filter(in)

	want := []string{"gobierno", "nación", "anuncia"}
	if !equalTokens(got, want) {
		t.Errorf("Filter(%v) = %v, want %v", in, got, want)
	}
}

func TestStopwordsDuplicatesCollapse(t *testing.T) {
	stops := NewStopwords([]string{"el", "el", "la", "el"})

	if stops.Len() != 2 {
		t.Errorf("expected 2 distinct stopwords, got %d", stops.Len())
	}

	got := stops.Filter([]string{"el", "gato"})
	if !equalTokens(got, []string{"gato"}) {
		t.Errorf("duplicate stoplist entries should still filter, got %v", got)
	}
}

func TestStopwordsCaseNormalized(t *testing.T) {
	stops := NewStopwords([]string{"EL", "La"})

	if !stops.IsStop("el") || !stops.IsStop("la") {
		t.Error("stopword matching should be case-normalized")
	}
}

func TestStopwordsAddRemove(t *testing.T) {
	stops := NewStopwords([]string{"el"})

	got := stops.Filter([]string{"el", "gato"})
	if !equalTokens(got, []string{"gato"}) {
		t.Fatalf("should filter 'el', got %v", got)
	}

	stops.Remove("el")
	got = stops.Filter([]string{"el", "gato"})
	if len(got) != 2 {
		t.Errorf("'el' should pass after removal, got %v", got)
	}

	stops.Add("gato")
	got = stops.Filter([]string{"el", "gato"})
	if !equalTokens(got, []string{"el"}) {
		t.Errorf("'gato' should be filtered after adding, got %v", got)
	}
}

func TestStopwordsEmptySet(t *testing.T) {
	stops := NewStopwords(nil)

	in := []string{"el", "gato"}
	got := stops.Filter(in)
	if !equalTokens(got, in) {
		t.Errorf("empty exclusion set should pass everything, got %v", got)
	}
}
