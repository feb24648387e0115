package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/lexlabs/gavel/internal/core/common"
)

// ZeroShotClassifier scores a text against arbitrary candidate labels by
// prompting an LLM for a JSON label->score object. It stands in for a
// dedicated zero-shot classification model behind the same contract.
type ZeroShotClassifier struct {
	LLM LLMClient
}

func NewZeroShotClassifier(client LLMClient) *ZeroShotClassifier {
	return &ZeroShotClassifier{LLM: client}
}

func (z *ZeroShotClassifier) Classify(ctx context.Context, text string, labels []string, multiLabel bool) (map[string]float64, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("no candidate labels")
	}

	labelList := ""
	for _, l := range labels {
		labelList += fmt.Sprintf("- %s\n", l)
	}

	mode := "The scores must sum to 1 across labels."
	if multiLabel {
		mode = "Score each label independently; scores need not sum to 1."
	}

	prompt := fmt.Sprintf(`You are a zero-shot text classifier.
Text: %s

Candidate labels:
%s
Score how well each label applies to the text, from 0.0 to 1.0. %s
Output ONLY a JSON object mapping every label to its score.
Example: {"label a": 0.8, "label b": 0.1}
Do not output any other text.`, text, labelList, mode)

	resp, err := z.LLM.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	scores, err := common.ParseJSON[map[string]float64](resp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse classifier scores: %w", err)
	}

	// Models occasionally echo labels with different casing; fold back onto
	// the requested labels so lookups by caller keys succeed.
	out := make(map[string]float64, len(labels))
	for _, l := range labels {
		if s, ok := scores[l]; ok {
			out[l] = s
			continue
		}
		for k, s := range scores {
			if strings.EqualFold(k, l) {
				out[l] = s
				break
			}
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("classifier returned no scores for requested labels")
	}
	return out, nil
}
