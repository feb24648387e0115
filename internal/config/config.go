package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	EmbeddingModel string `toml:"embedding_model"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
}

// AnalysisConfig carries every tunable of the analysis pipeline. Thresholds
// vary across deployments, so nothing here is hardcoded in the engine.
type AnalysisConfig struct {
	SimilarityThreshold float64 `toml:"similarity_threshold"`
	TopK                int     `toml:"top_k"`
	Strategy            string  `toml:"strategy"` // "rules" or "classifier"
	DecisionThreshold   float64 `toml:"decision_threshold"`
	LoopholeMinScore    float64 `toml:"loophole_min_score"`
	BatchSize           int     `toml:"batch_size"`
	MaxQueryLen         int     `toml:"max_query_len"`
	ClassifyTimeoutSecs int     `toml:"classify_timeout_secs"`
	GenerateTimeoutSecs int     `toml:"generate_timeout_secs"`
	GenerateMaxChars    int     `toml:"generate_max_chars"`
}

type CacheConfig struct {
	Capacity int `toml:"capacity"`
	TTLSecs  int `toml:"ttl_secs"`
}

type CorpusConfig struct {
	Path string `toml:"path"`
}

// DemoEntry is a canned response matched on the normalized query ahead of
// the ranker.
type DemoEntry struct {
	Query     string `toml:"query"`
	Verdict   string `toml:"verdict"`
	Reasoning string `toml:"reasoning"`
}

type Config struct {
	LLM      LLMConfig      `toml:"llm"`
	Analysis AnalysisConfig `toml:"analysis"`
	Cache    CacheConfig    `toml:"cache"`
	Corpus   CorpusConfig   `toml:"corpus"`
	Demo     []DemoEntry    `toml:"demo"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills zero values with the documented defaults.
func (c *Config) ApplyDefaults() {
	a := &c.Analysis
	if a.SimilarityThreshold == 0 {
		a.SimilarityThreshold = 0.4
	}
	if a.TopK == 0 {
		a.TopK = 3
	}
	if a.Strategy == "" {
		a.Strategy = "rules"
	}
	if a.DecisionThreshold == 0 {
		a.DecisionThreshold = 0.6
	}
	if a.LoopholeMinScore == 0 {
		a.LoopholeMinScore = 0.3
	}
	if a.BatchSize == 0 {
		a.BatchSize = 4
	}
	if a.MaxQueryLen == 0 {
		a.MaxQueryLen = 512
	}
	if a.ClassifyTimeoutSecs == 0 {
		a.ClassifyTimeoutSecs = 30
	}
	if a.GenerateTimeoutSecs == 0 {
		a.GenerateTimeoutSecs = 20
	}
	if a.GenerateMaxChars == 0 {
		a.GenerateMaxChars = 1024
	}
	if c.Cache.Capacity == 0 {
		c.Cache.Capacity = 1000
	}
	if c.Cache.TTLSecs == 0 {
		c.Cache.TTLSecs = 3600
	}
	if c.Corpus.Path == "" {
		c.Corpus.Path = "data/constitution.csv"
	}
}
