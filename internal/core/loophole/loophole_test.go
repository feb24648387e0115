package loophole

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexlabs/gavel/internal/core/model"
)

type MockClassifier struct {
	Scores map[string]float64
	Err    error
}

func (m *MockClassifier) Classify(ctx context.Context, text string, labels []string, multiLabel bool) (map[string]float64, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make(map[string]float64, len(labels))
	for _, l := range labels {
		out[l] = m.Scores[l]
	}
	return out, nil
}

func testMatches() []model.RankedMatch {
	return []model.RankedMatch{
		{Article: &model.Article{Number: "Article 19"}, Similarity: 0.9},
		{Article: &model.Article{Number: "Article 21"}, Similarity: 0.8},
	}
}

func TestGenerateKeepsPlausibleHypotheses(t *testing.T) {
	classifier := &MockClassifier{Scores: map[string]float64{
		"This could be protected as a fundamental right":  0.7,
		"This might fall under reasonable restrictions":   0.4,
		"This could be viewed as a matter of public interest": 0.1,
	}}
	g := NewGenerator(classifier, 0.3)

	loopholes := g.Generate(context.Background(), "query", testMatches())
	require.Len(t, loopholes, 2)

	// Most plausible first, each attributed to the top article.
	assert.Equal(t, "This could be protected as a fundamental right under Article 19", loopholes[0])
	assert.Equal(t, "This might fall under reasonable restrictions under Article 19", loopholes[1])
}

func TestGenerateNothingAboveThreshold(t *testing.T) {
	classifier := &MockClassifier{Scores: map[string]float64{}}
	g := NewGenerator(classifier, 0.3)

	loopholes := g.Generate(context.Background(), "query", testMatches())
	assert.Equal(t, []string{Sentinel}, loopholes)
}

func TestGenerateNoMatches(t *testing.T) {
	g := NewGenerator(&MockClassifier{}, 0.3)

	loopholes := g.Generate(context.Background(), "query", nil)
	assert.Equal(t, []string{Sentinel}, loopholes)
}

func TestGenerateClassifierFailure(t *testing.T) {
	classifier := &MockClassifier{Err: errors.New("service down")}
	g := NewGenerator(classifier, 0.3)

	loopholes := g.Generate(context.Background(), "query", testMatches())
	assert.Equal(t, []string{Sentinel}, loopholes)
	assert.NotEmpty(t, loopholes)
}
