package rank

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/lexlabs/gavel/internal/core/model"
	"github.com/lexlabs/gavel/internal/corpus"
	"github.com/lexlabs/gavel/internal/llm"
)

// Ranker selects the corpus articles most similar to a query. It does a
// linear cosine scan over the whole corpus; with tens to low hundreds of
// articles that beats maintaining an ANN index, and the contract leaves
// room to swap one in later without callers noticing.
type Ranker struct {
	Store    *corpus.Store
	Embedder llm.EmbedderClient
}

func NewRanker(store *corpus.Store, embedder llm.EmbedderClient) *Ranker {
	return &Ranker{Store: store, Embedder: embedder}
}

// Rank returns the articles with similarity >= threshold, best first,
// truncated to topK. If nothing in the corpus reaches the threshold the
// query is out of domain and the result is empty: weak matches are never
// surfaced.
func (r *Ranker) Rank(ctx context.Context, query string, threshold float64, topK int) ([]model.RankedMatch, error) {
	queryVec, err := r.Embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding query: %v", model.ErrEmbeddingService, err)
	}

	matches := make([]model.RankedMatch, 0, topK)
	maxSim := math.Inf(-1)
	for i := 0; i < r.Store.Len(); i++ {
		article := r.Store.Article(i)
		sim := Cosine(queryVec, article.Embedding)
		if sim > maxSim {
			maxSim = sim
		}
		if sim >= threshold {
			matches = append(matches, model.RankedMatch{Article: article, Similarity: sim})
		}
	}

	if maxSim < threshold {
		return nil, nil
	}

	// Stable: ties keep corpus insertion order.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// Cosine computes cosine similarity between two vectors. Mismatched or
// empty vectors score 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
