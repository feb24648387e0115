package corpus

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/lexlabs/gavel/internal/core/model"
	"github.com/lexlabs/gavel/internal/llm"
)

// Store holds the fixed ordered collection of legal articles and their
// embeddings. After EmbedAll it is frozen: every later read is pure and
// needs no synchronization.
type Store struct {
	articles []model.Article
	frozen   bool
}

// Column aliases accepted in the corpus CSV header.
var (
	numberCols      = []string{"article", "article_number", "id"}
	titleCols       = []string{"title"}
	descriptionCols = []string{"description", "content"}
)

// Load reads the corpus CSV. Every row must carry a non-empty article
// number, title and description; anything else fails with ErrCorpusLoad.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening '%s': %v", model.ErrCorpusLoad, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", model.ErrCorpusLoad, err)
	}

	numberIdx, err := findColumn(header, numberCols)
	if err != nil {
		return nil, err
	}
	titleIdx, err := findColumn(header, titleCols)
	if err != nil {
		return nil, err
	}
	descriptionIdx, err := findColumn(header, descriptionCols)
	if err != nil {
		return nil, err
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading rows: %v", model.ErrCorpusLoad, err)
	}

	articles := make([]model.Article, 0, len(rows))
	for i, row := range rows {
		a := model.Article{
			Number:      strings.TrimSpace(row[numberIdx]),
			Title:       strings.TrimSpace(row[titleIdx]),
			Description: strings.TrimSpace(row[descriptionIdx]),
		}
		if a.Number == "" || a.Title == "" || a.Description == "" {
			return nil, fmt.Errorf("%w: row %d is missing a required field", model.ErrCorpusLoad, i+2)
		}
		a.Text = a.Title + ": " + a.Description
		articles = append(articles, a)
	}
	if len(articles) == 0 {
		return nil, fmt.Errorf("%w: corpus '%s' has no articles", model.ErrCorpusLoad, path)
	}

	return &Store{articles: articles}, nil
}

func findColumn(header []string, names []string) (int, error) {
	for i, h := range header {
		for _, n := range names {
			if strings.EqualFold(strings.TrimSpace(h), n) {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: missing required column %q", model.ErrCorpusLoad, names[0])
}

// EmbedAll computes one embedding per article in a single batched call.
// Embedding calls dominate startup latency, so per-article calls are not an
// option here. The store is frozen afterwards.
func (s *Store) EmbedAll(ctx context.Context, embedder llm.EmbedderClient) error {
	if s.frozen {
		return fmt.Errorf("corpus store is already frozen")
	}

	texts := make([]string, len(s.articles))
	for i, a := range s.articles {
		texts[i] = a.Text
	}

	vecs, err := embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrEmbeddingService, err)
	}
	if len(vecs) != len(s.articles) {
		return fmt.Errorf("%w: expected %d vectors, got %d", model.ErrEmbeddingService, len(s.articles), len(vecs))
	}

	for i := range s.articles {
		s.articles[i].Embedding = vecs[i]
	}
	s.frozen = true
	return nil
}

func (s *Store) Len() int {
	return len(s.articles)
}

// Article returns the article at corpus insertion order position i. The
// pointer stays valid for the process lifetime; callers must not mutate it.
func (s *Store) Article(i int) *model.Article {
	return &s.articles[i]
}
