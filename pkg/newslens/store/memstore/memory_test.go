package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/cognicore/newslens/pkg/newslens/store"
)

func TestDocRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()
	defer s.Close()

	doc := store.Doc{
		ID:          "a1",
		Outlet:      "clarin",
		PublishedAt: time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := s.UpsertDoc(ctx, doc); err != nil {
		t.Fatalf("UpsertDoc: %v", err)
	}

	got, found, err := s.GetDoc(ctx, "a1")
	if err != nil {
		t.Fatalf("GetDoc: %v", err)
	}
	if !found {
		t.Fatal("document should be found")
	}
	if got.Outlet != "clarin" {
		t.Errorf("outlet = %q, want clarin", got.Outlet)
	}

	n, err := s.CountDocs(ctx)
	if err != nil {
		t.Fatalf("CountDocs: %v", err)
	}
	if n != 1 {
		t.Errorf("CountDocs = %d, want 1", n)
	}

	// Upsert with same ID replaces, not duplicates.
	doc.Outlet = "nacion"
	if err := s.UpsertDoc(ctx, doc); err != nil {
		t.Fatalf("UpsertDoc (update): %v", err)
	}
	got, _, _ = s.GetDoc(ctx, "a1")
	if got.Outlet != "nacion" {
		t.Errorf("outlet after upsert = %q, want nacion", got.Outlet)
	}
	if n, _ := s.CountDocs(ctx); n != 1 {
		t.Errorf("CountDocs after upsert = %d, want 1", n)
	}
}

func TestRunAndArtifactRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()
	defer s.Close()

	run := store.Run{
		ID:         "01HRUN",
		CreatedAt:  time.Now().UTC(),
		K:          4,
		Seed:       42,
		Converged:  true,
		Iterations: 120,
	}
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, found, err := s.GetRun(ctx, run.ID)
	if err != nil || !found {
		t.Fatalf("GetRun: found=%v err=%v", found, err)
	}
	if got.K != 4 || !got.Converged || got.Iterations != 120 {
		t.Errorf("run = %+v", got)
	}

	tfidfRows := []store.TFIDFRow{
		{Group: "clarin", Term: "inflación", N: 3, TF: 0.3, IDF: 0.69, TFIDF: 0.207},
	}
	if err := s.SaveTFIDF(ctx, run.ID, tfidfRows); err != nil {
		t.Fatalf("SaveTFIDF: %v", err)
	}
	gotTFIDF, err := s.GetTFIDF(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetTFIDF: %v", err)
	}
	if len(gotTFIDF) != 1 || gotTFIDF[0].Term != "inflación" {
		t.Errorf("tfidf rows = %+v", gotTFIDF)
	}

	if err := s.SaveTopicTerms(ctx, run.ID, []store.TopicTermRow{{Topic: 0, Term: "gato", Beta: 0.5}}); err != nil {
		t.Fatalf("SaveTopicTerms: %v", err)
	}
	if err := s.SaveDocTopics(ctx, run.ID, []store.DocTopicRow{{DocID: "a1", Topic: 0, Gamma: 0.9}}); err != nil {
		t.Fatalf("SaveDocTopics: %v", err)
	}
	if err := s.SaveOutletShares(ctx, run.ID, []store.OutletShareRow{{Outlet: "clarin", Topic: 0, MeanGammaPct: 80}}); err != nil {
		t.Fatalf("SaveOutletShares: %v", err)
	}
	if err := s.SaveDateShares(ctx, run.ID, []store.DateShareRow{
		{Date: time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), Topic: 0, MeanGammaPct: 55},
	}); err != nil {
		t.Fatalf("SaveDateShares: %v", err)
	}

	if rows, _ := s.GetTopicTerms(ctx, run.ID); len(rows) != 1 || rows[0].Beta != 0.5 {
		t.Errorf("topic terms = %+v", rows)
	}
	if rows, _ := s.GetDocTopics(ctx, run.ID); len(rows) != 1 || rows[0].Gamma != 0.9 {
		t.Errorf("doc topics = %+v", rows)
	}
	if rows, _ := s.GetOutletShares(ctx, run.ID); len(rows) != 1 || rows[0].MeanGammaPct != 80 {
		t.Errorf("outlet shares = %+v", rows)
	}
	if rows, _ := s.GetDateShares(ctx, run.ID); len(rows) != 1 || rows[0].MeanGammaPct != 55 {
		t.Errorf("date shares = %+v", rows)
	}
}

func TestArtifactsIsolatedByRun(t *testing.T) {
	ctx := context.Background()
	s := New()
	defer s.Close()

	if err := s.SaveTFIDF(ctx, "run-a", []store.TFIDFRow{{Group: "g", Term: "x"}}); err != nil {
		t.Fatalf("SaveTFIDF: %v", err)
	}

	rows, err := s.GetTFIDF(ctx, "run-b")
	if err != nil {
		t.Fatalf("GetTFIDF: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("run-b should have no rows, got %d", len(rows))
	}
}

func TestStoredRowsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := New()
	defer s.Close()

	in := []store.TFIDFRow{{Group: "g", Term: "x", TFIDF: 1}}
	if err := s.SaveTFIDF(ctx, "run", in); err != nil {
		t.Fatalf("SaveTFIDF: %v", err)
	}
	in[0].TFIDF = 99

	rows, _ := s.GetTFIDF(ctx, "run")
	if rows[0].TFIDF != 1 {
		t.Error("mutating the caller's slice must not affect stored rows")
	}
}
