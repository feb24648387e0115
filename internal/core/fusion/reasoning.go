package fusion

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/lexlabs/gavel/internal/core/common"
	"github.com/lexlabs/gavel/internal/core/model"
)

// reasoning produces the supporting text for a verdict. When a generator is
// configured it is tried first under a hard timeout; any failure falls back
// to the templated composition, so this never blocks a request
// indefinitely.
func (e *Engine) reasoning(ctx context.Context, query string, verdict model.Verdict, matches []model.RankedMatch) string {
	templated := composeReasoning(verdict, matches)
	if e.Generator == nil {
		return templated
	}

	gctx := ctx
	if e.GenerateTimeout > 0 {
		var cancel context.CancelFunc
		gctx, cancel = context.WithTimeout(ctx, e.GenerateTimeout)
		defer cancel()
	}

	top := matches[0].Article
	prompt := fmt.Sprintf(`You are a legal expert. The situation below was judged %s based on %s ("%s").
Situation: %s

Write a short judicial reasoning (2-3 sentences) supporting that verdict, citing the article.
Output only the reasoning text.`, verdict, top.Number, common.FirstSentence(top.Description), query)

	generated, err := e.Generator.Generate(gctx, prompt)
	if err != nil {
		log.Printf("%v, using template: %v", model.ErrGenerationService, err)
		return templated
	}

	generated = strings.TrimSpace(generated)
	if generated == "" {
		return templated
	}
	return common.Truncate(generated, e.GenerateMaxChars)
}

// composeReasoning builds the templated reasoning from the verdict and the
// top matched articles.
func composeReasoning(verdict model.Verdict, matches []model.RankedMatch) string {
	if len(matches) == 0 {
		return NeutralReasoning
	}

	top := matches[0].Article
	principle := common.FirstSentence(top.Description)

	var b strings.Builder
	switch verdict {
	case model.VerdictYes:
		fmt.Fprintf(&b, "Analysis suggests this is constitutionally protected. Key article: %s. %s.", top.Number, capitalize(principle))
	case model.VerdictNo:
		fmt.Fprintf(&b, "This appears to conflict with constitutional provisions. See %s: %s.", top.Number, lowerFirst(principle))
	default:
		fmt.Fprintf(&b, "This falls into a constitutional grey area. Multiple interpretations possible based on %s.", top.Number)
	}

	if len(matches) > 1 {
		supp := matches[1].Article
		fmt.Fprintf(&b, " Supplementary context from %s: %s.", supp.Number, lowerFirst(common.FirstSentence(supp.Description)))
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
