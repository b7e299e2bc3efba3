package ingest

import (
	"runtime"
	"sync"
)

// Pipeline runs the text-to-token flow: tokenization followed by stopword
// filtering. Both steps preserve token order within a document.
type Pipeline struct {
	tokenizer *Tokenizer
	stops     *Stopwords
}

// NewPipeline creates a pipeline with the given components.
func NewPipeline(tokenizer *Tokenizer, stops *Stopwords) *Pipeline {
	return &Pipeline{
		tokenizer: tokenizer,
		stops:     stops,
	}
}

// Process tokenizes and filters a single document's text.
func (p *Pipeline) Process(text string) []string {
	tokens := p.tokenizer.Tokenize(text)
	return p.stops.Filter(tokens)
}

// ProcessAll tokenizes a batch of documents across a bounded worker pool.
// Token counts are commutative, so documents may be processed in any order;
// results are keyed by input position so the output is deterministic.
func (p *Pipeline) ProcessAll(docs []Document) [][]string {
	out := make([][]string, len(docs))
	if len(docs) == 0 {
		return out
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(docs) {
		workers = len(docs)
	}

	idx := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range idx {
				out[i] = p.Process(docs[i].Text)
			}
		}()
	}

	for i := range docs {
		idx <- i
	}
	close(idx)
	wg.Wait()

	return out
}
