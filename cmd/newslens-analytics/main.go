package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/cognicore/newslens/internal/feed"
	"github.com/cognicore/newslens/pkg/newslens"
	"github.com/cognicore/newslens/pkg/newslens/aggregate"
	"github.com/cognicore/newslens/pkg/newslens/config"
	"github.com/cognicore/newslens/pkg/newslens/store"
	"github.com/cognicore/newslens/pkg/newslens/store/sqlite"
	"github.com/cognicore/newslens/pkg/newslens/tfidf"
)

type report struct {
	RunID          string                `json:"run_id"`
	Documents      int                   `json:"documents"`
	VocabularySize int                   `json:"vocabulary_size"`
	Topics         int                   `json:"topics"`
	Converged      bool                  `json:"converged"`
	Iterations     int                   `json:"iterations"`
	TopTFIDF       map[string][]termJSON `json:"top_tfidf_by_outlet"`
	TopicTerms     [][]termJSON          `json:"top_terms_by_topic"`
	OutletShares   []outletShareJSON     `json:"outlet_topic_shares"`
	DateShares     []dateShareJSON       `json:"date_topic_shares"`
	Contrast       []contrastJSON        `json:"topic_contrast,omitempty"`
}

type termJSON struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
}

type outletShareJSON struct {
	Outlet string  `json:"outlet"`
	Topic  int     `json:"topic"`
	Pct    float64 `json:"pct"`
}

type dateShareJSON struct {
	Date  string  `json:"date"`
	Topic int     `json:"topic"`
	Pct   float64 `json:"pct"`
}

type contrastJSON struct {
	Term      string  `json:"term"`
	Log2Ratio float64 `json:"log2_ratio"`
}

func main() {
	var (
		input       = flag.String("input", "", "Path to JSONL article file (required)")
		stoplistCfg = flag.String("stoplist", "", "Optional: stoplist YAML file")
		modelCfg    = flag.String("model-config", "", "Optional: topic-model YAML file")
		dbPath      = flag.String("db", "", "Optional: SQLite path for persisting the run")
		topTerms    = flag.Int("top-terms", 10, "Terms listed per outlet and per topic")
		contrastA   = flag.Int("contrast-a", -1, "Optional: numerator topic for contrast ranking")
		contrastB   = flag.Int("contrast-b", -1, "Optional: denominator topic for contrast ranking")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("--input required")
	}

	ctx := context.Background()

	loader := config.Loader{
		StoplistPath: *stoplistCfg,
		ModelPath:    *modelCfg,
	}
	components, err := loader.Load()
	if err != nil {
		log.Fatalf("load configs: %v", err)
	}

	var st store.Store
	if *dbPath != "" {
		st, err = sqlite.OpenSQLite(ctx, *dbPath)
		if err != nil {
			log.Fatalf("open store: %v", err)
		}
	}

	analyzer := newslens.New(newslens.Options{
		Store:    st,
		Pipeline: components.Pipeline,
		Model:    components.Model,
	})
	defer analyzer.Close()

	docs, err := feed.LoadFromJSONL(*input)
	if err != nil {
		log.Fatalf("load articles: %v", err)
	}

	result, err := analyzer.Run(ctx, docs)
	if err != nil {
		log.Fatalf("analyze: %v", err)
	}

	out := report{
		RunID:          result.ID,
		Documents:      result.Documents,
		VocabularySize: result.VocabularySize,
		Topics:         result.Topics.K,
		Converged:      result.Topics.Converged,
		Iterations:     result.Topics.Iterations,
		TopTFIDF:       topTFIDFByOutlet(result.TFIDF, *topTerms),
		TopicTerms:     topTermsByTopic(result, *topTerms),
		OutletShares:   outletShares(result.OutletShares),
		DateShares:     dateShares(result.DateShares),
	}

	if *contrastA >= 0 && *contrastB >= 0 {
		ratios, err := aggregate.LogRatio(result.Topics, *contrastA, *contrastB, 0)
		if err != nil {
			log.Fatalf("topic contrast: %v", err)
		}
		if len(ratios) > *topTerms {
			ratios = ratios[:*topTerms]
		}
		for _, r := range ratios {
			out.Contrast = append(out.Contrast, contrastJSON{Term: r.Term, Log2Ratio: r.Log2Ratio})
		}
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatalf("marshal report: %v", err)
	}
	fmt.Println(string(encoded))
}

func topTFIDFByOutlet(records []tfidf.Record, limit int) map[string][]termJSON {
	ranked := tfidf.TopN(records, limit)
	out := make(map[string][]termJSON, len(ranked))
	for outlet, recs := range ranked {
		entries := make([]termJSON, len(recs))
		for i, rec := range recs {
			entries[i] = termJSON{Term: rec.Term, Score: rec.TFIDF}
		}
		out[outlet] = entries
	}
	return out
}

func topTermsByTopic(r *newslens.Report, limit int) [][]termJSON {
	out := make([][]termJSON, r.Topics.K)
	for k := 0; k < r.Topics.K; k++ {
		top := r.Topics.TopTerms(k, limit)
		entries := make([]termJSON, len(top))
		for i, tw := range top {
			entries[i] = termJSON{Term: tw.Term, Score: tw.Beta}
		}
		out[k] = entries
	}
	return out
}

func outletShares(shares []aggregate.OutletTopicShare) []outletShareJSON {
	out := make([]outletShareJSON, len(shares))
	for i, s := range shares {
		out[i] = outletShareJSON{Outlet: s.Outlet, Topic: s.Topic, Pct: s.MeanGammaPct}
	}
	return out
}

func dateShares(shares []aggregate.DateTopicShare) []dateShareJSON {
	out := make([]dateShareJSON, len(shares))
	for i, s := range shares {
		out[i] = dateShareJSON{Date: s.Date.Format("2006-01-02"), Topic: s.Topic, Pct: s.MeanGammaPct}
	}
	return out
}
