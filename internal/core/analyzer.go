package core

import (
	"context"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lexlabs/gavel/internal/config"
	"github.com/lexlabs/gavel/internal/core/cache"
	"github.com/lexlabs/gavel/internal/core/common"
	"github.com/lexlabs/gavel/internal/core/fusion"
	"github.com/lexlabs/gavel/internal/core/loophole"
	"github.com/lexlabs/gavel/internal/core/model"
	"github.com/lexlabs/gavel/internal/core/rank"
	"github.com/lexlabs/gavel/internal/corpus"
	"github.com/lexlabs/gavel/internal/llm"
)

// PromptForInput answers empty or blank queries.
const PromptForInput = "Please provide a situation to analyze."

// Analyzer is the analysis facade: cache check, relevance ranking, verdict
// fusion and loophole generation, in that order. Constructed once at
// startup and shared across requests; the corpus is read-only and the
// cache is the only mutable shared state.
type Analyzer struct {
	Store     *corpus.Store
	Ranker    *rank.Ranker
	Fusion    *fusion.Engine
	Loopholes *loophole.Generator
	Cache     *cache.Cache

	threshold   float64
	topK        int
	maxQueryLen int
	batchSize   int

	// demo short-circuits known queries ahead of the ranker.
	demo map[string]model.Result
}

func NewAnalyzer(store *corpus.Store, embedder llm.EmbedderClient, classifier llm.ClassifierClient, generator llm.LLMClient, cfg *config.Config) *Analyzer {
	engine := fusion.NewEngine(classifier, generator, cfg.Analysis.Strategy, cfg.Analysis.DecisionThreshold)
	engine.ClassifyTimeout = time.Duration(cfg.Analysis.ClassifyTimeoutSecs) * time.Second
	engine.GenerateTimeout = time.Duration(cfg.Analysis.GenerateTimeoutSecs) * time.Second
	engine.GenerateMaxChars = cfg.Analysis.GenerateMaxChars

	demo := make(map[string]model.Result, len(cfg.Demo))
	for _, d := range cfg.Demo {
		demo[common.Normalize(d.Query)] = model.Result{
			Verdict:    parseVerdict(d.Verdict),
			Articles:   []model.RankedMatch{},
			Reasoning:  d.Reasoning,
			Loopholes:  []string{loophole.Sentinel},
			Confidence: model.DefaultConfidence,
		}
	}

	return &Analyzer{
		Store:       store,
		Ranker:      rank.NewRanker(store, embedder),
		Fusion:      engine,
		Loopholes:   loophole.NewGenerator(classifier, cfg.Analysis.LoopholeMinScore),
		Cache:       cache.New(cfg.Cache.Capacity, time.Duration(cfg.Cache.TTLSecs)*time.Second),
		threshold:   cfg.Analysis.SimilarityThreshold,
		topK:        cfg.Analysis.TopK,
		maxQueryLen: cfg.Analysis.MaxQueryLen,
		batchSize:   cfg.Analysis.BatchSize,
		demo:        demo,
	}
}

// Analyze always returns a well-formed Result. Domain failures inside
// ranking, fusion or loophole generation are caught here and converted to
// a MAYBE verdict with an explanatory reasoning; only corpus load at
// startup may halt the system.
func (a *Analyzer) Analyze(ctx context.Context, situation string) model.Result {
	situation = common.Truncate(situation, a.maxQueryLen)

	key := common.Normalize(situation)
	if key == "" {
		log.Printf("%v: blank situation", model.ErrInvalidQuery)
		return degraded(PromptForInput)
	}

	if r, ok := a.demo[key]; ok {
		return r
	}
	if r, ok := a.Cache.Get(key); ok {
		return r
	}

	matches, err := a.Ranker.Rank(ctx, situation, a.threshold, a.topK)
	if err != nil {
		log.Printf("ranking failed for query %q: %v", key, err)
		return degraded("Analysis could not be completed: the situation could not be evaluated against the corpus.")
	}
	if matches == nil {
		matches = []model.RankedMatch{}
	}

	// Fusion and loophole generation are independent; dispatch them
	// concurrently and join. Both degrade internally instead of failing.
	var (
		verdict    model.Verdict
		confidence float64
		reasoning  string
		loopholes  []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		verdict, confidence, reasoning = a.Fusion.Fuse(gctx, situation, matches)
		return nil
	})
	g.Go(func() error {
		loopholes = a.Loopholes.Generate(gctx, situation, matches)
		return nil
	})
	_ = g.Wait()

	result := model.Result{
		Verdict:    verdict,
		Articles:   matches,
		Reasoning:  reasoning,
		Loopholes:  loopholes,
		Confidence: confidence,
	}

	a.Cache.Put(key, result)
	return result
}

// AnalyzeBatch processes queries in fixed-size groups, items within a group
// concurrently, and returns results in input order. Each query is cached
// independently, so repeats across the batch hit the cache on their second
// occurrence.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, situations []string) []model.Result {
	results := make([]model.Result, len(situations))

	size := a.batchSize
	if size <= 0 {
		size = 1
	}

	for start := 0; start < len(situations); start += size {
		end := start + size
		if end > len(situations) {
			end = len(situations)
		}

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			g.Go(func() error {
				results[i] = a.Analyze(gctx, situations[i])
				return nil
			})
		}
		_ = g.Wait()
	}

	return results
}

func degraded(reasoning string) model.Result {
	return model.Result{
		Verdict:    model.VerdictMaybe,
		Articles:   []model.RankedMatch{},
		Reasoning:  reasoning,
		Loopholes:  []string{loophole.Sentinel},
		Confidence: model.DefaultConfidence,
	}
}

func parseVerdict(s string) model.Verdict {
	switch model.Verdict(strings.ToUpper(strings.TrimSpace(s))) {
	case model.VerdictYes:
		return model.VerdictYes
	case model.VerdictNo:
		return model.VerdictNo
	default:
		return model.VerdictMaybe
	}
}
