package loophole

import (
	"context"
	"log"
	"sort"

	"github.com/lexlabs/gavel/internal/core/model"
	"github.com/lexlabs/gavel/internal/llm"
)

// Sentinel is returned when no hypothesis qualifies. Callers never need to
// special-case an empty slice.
const Sentinel = "No obvious loopholes found"

// The fixed counter-argument hypothesis set, scored per query.
var hypotheses = []string{
	"This could be protected as a fundamental right",
	"This might qualify as an exception under",
	"This could be interpreted as exercise of constitutional rights",
	"This might fall under reasonable restrictions",
	"This could be viewed as a matter of public interest",
}

// Generator scores counter-argument hypotheses against a query and keeps
// the plausible ones, each attributed to the top matched article.
type Generator struct {
	Classifier llm.ClassifierClient
	MinScore   float64
}

func NewGenerator(classifier llm.ClassifierClient, minScore float64) *Generator {
	return &Generator{Classifier: classifier, MinScore: minScore}
}

// Generate always returns at least one string. Classifier failure degrades
// to the sentinel rather than surfacing an error.
func (g *Generator) Generate(ctx context.Context, query string, matches []model.RankedMatch) []string {
	if len(matches) == 0 {
		return []string{Sentinel}
	}

	scores, err := g.Classifier.Classify(ctx, query, hypotheses, true)
	if err != nil {
		log.Printf("loophole classification failed: %v", err)
		return []string{Sentinel}
	}

	type scored struct {
		text  string
		score float64
	}
	var kept []scored
	for _, h := range hypotheses {
		if s, ok := scores[h]; ok && s > g.MinScore {
			kept = append(kept, scored{text: h, score: s})
		}
	}
	if len(kept) == 0 {
		return []string{Sentinel}
	}

	// Most plausible first; equal scores keep hypothesis order.
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].score > kept[j].score
	})

	top := matches[0].Article.Number
	loopholes := make([]string, len(kept))
	for i, k := range kept {
		loopholes[i] = k.text + " under " + top
	}
	return loopholes
}
