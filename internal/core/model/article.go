package model

// Article is one indexed unit of the legal corpus. Instances are owned by
// the corpus store and are read-only after startup.
type Article struct {
	Number      string `json:"article_number"`
	Title       string `json:"title"`
	Description string `json:"description"`

	// Text is the embedding input: "<title>: <description>".
	Text string `json:"-"`

	// Embedding is populated once by the store's batched embed pass.
	Embedding []float32 `json:"-"`
}

// RankedMatch pairs an article with its cosine similarity to a query.
// Produced per-query, never persisted beyond the response.
type RankedMatch struct {
	Article    *Article `json:"article"`
	Similarity float64  `json:"similarity"`
}
