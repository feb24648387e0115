package fusion

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lexlabs/gavel/internal/core/model"
	"github.com/lexlabs/gavel/internal/llm"
)

// Fusion strategies. Both derive a verdict from the same inputs; rules is
// deterministic and needs no model call, classifier fuses two concurrent
// classification signals.
const (
	StrategyRules      = "rules"
	StrategyClassifier = "classifier"
)

// NeutralReasoning is the fixed reasoning for queries with no relevant
// articles. No matches is a normal outcome, never an error.
const NeutralReasoning = "No directly relevant constitutional provisions found."

const (
	labelConstitutional   = "constitutional"
	labelUnconstitutional = "unconstitutional"
	labelAmbiguous        = "legally ambiguous"
)

var legalDomainLabels = []string{"lawful conduct", "unlawful conduct"}

// Engine combines independent classification signals into a single verdict
// with a confidence score and reasoning text.
type Engine struct {
	Classifier llm.ClassifierClient
	Generator  llm.LLMClient // optional; templated reasoning is used without it

	Strategy          string
	DecisionThreshold float64
	ClassifyTimeout   time.Duration
	GenerateTimeout   time.Duration
	GenerateMaxChars  int
}

func NewEngine(classifier llm.ClassifierClient, generator llm.LLMClient, strategy string, decisionThreshold float64) *Engine {
	return &Engine{
		Classifier:        classifier,
		Generator:         generator,
		Strategy:          strategy,
		DecisionThreshold: decisionThreshold,
		ClassifyTimeout:   30 * time.Second,
		GenerateTimeout:   20 * time.Second,
		GenerateMaxChars:  1024,
	}
}

// Fuse derives (verdict, confidence, reasoning) for the query given its
// ranked matches. It never fails: classifier errors degrade to the
// rule-based strategy, generation errors degrade to templated reasoning.
func (e *Engine) Fuse(ctx context.Context, query string, matches []model.RankedMatch) (model.Verdict, float64, string) {
	if len(matches) == 0 {
		return model.VerdictMaybe, model.DefaultConfidence, NeutralReasoning
	}

	verdict := model.VerdictMaybe
	confidence := model.DefaultConfidence

	switch e.Strategy {
	case StrategyClassifier:
		v, c, err := e.classifierFuse(ctx, query)
		if err != nil {
			log.Printf("classifier fusion failed, degrading to rules: %v", err)
			verdict = RuleVerdict(matches)
		} else {
			verdict, confidence = v, c
		}
	default:
		verdict = RuleVerdict(matches)
	}

	return verdict, confidence, e.reasoning(ctx, query, verdict, matches)
}

// classifierFuse dispatches the stance classifier and the legal-domain
// classifier concurrently and joins before the verdict is computed. The
// concurrency is a latency optimization only; the stance scores alone
// decide the verdict.
func (e *Engine) classifierFuse(ctx context.Context, query string) (model.Verdict, float64, error) {
	cctx := ctx
	if e.ClassifyTimeout > 0 {
		var cancel context.CancelFunc
		cctx, cancel = context.WithTimeout(ctx, e.ClassifyTimeout)
		defer cancel()
	}

	var stance, legal map[string]float64
	g, gctx := errgroup.WithContext(cctx)
	g.Go(func() error {
		s, err := e.Classifier.Classify(gctx, query, []string{labelConstitutional, labelUnconstitutional, labelAmbiguous}, false)
		if err != nil {
			return fmt.Errorf("%w: stance: %v", model.ErrClassifierService, err)
		}
		stance = s
		return nil
	})
	g.Go(func() error {
		// Auxiliary signal: logged for inspection, tolerated on failure.
		l, err := e.Classifier.Classify(gctx, query, legalDomainLabels, false)
		if err != nil {
			log.Printf("legal-domain classification failed: %v", err)
			return nil
		}
		legal = l
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.VerdictMaybe, model.DefaultConfidence, err
	}

	if legal != nil {
		log.Printf("legal-domain signal: %v", legal)
	}

	confidence := model.DefaultConfidence
	for _, score := range stance {
		if score > confidence {
			confidence = score
		}
	}

	switch {
	case stance[labelConstitutional] > e.DecisionThreshold:
		return model.VerdictYes, confidence, nil
	case stance[labelUnconstitutional] > e.DecisionThreshold:
		return model.VerdictNo, confidence, nil
	default:
		return model.VerdictMaybe, confidence, nil
	}
}
