package server

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lexlabs/gavel/internal/config"
	"github.com/lexlabs/gavel/internal/core"
	"github.com/lexlabs/gavel/internal/corpus"
	"github.com/lexlabs/gavel/internal/llm"
)

type Server struct {
	Analyzer *core.Analyzer
}

func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Override config with env vars if present
	if envProvider := os.Getenv("LLM_PROVIDER"); envProvider != "" {
		cfg.LLM.Provider = envProvider
	}
	if envModel := os.Getenv("LLM_MODEL"); envModel != "" {
		cfg.LLM.Model = envModel
	}
	if envEmbeddingModel := os.Getenv("LLM_EMBEDDING_MODEL"); envEmbeddingModel != "" {
		cfg.LLM.EmbeddingModel = envEmbeddingModel
	}
	if envAPIKey := os.Getenv("LLM_API_KEY"); envAPIKey != "" {
		cfg.LLM.APIKey = envAPIKey
	}
	if envBaseURL := os.Getenv("LLM_BASE_URL"); envBaseURL != "" {
		cfg.LLM.BaseURL = envBaseURL
	}
	if envCorpus := os.Getenv("CORPUS_PATH"); envCorpus != "" {
		cfg.Corpus.Path = envCorpus
	}

	// Default to Ollama if provider is empty
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "ollama"
		cfg.LLM.Model = "gpt-oss:latest"
		cfg.LLM.BaseURL = "http://localhost:11434"
	}

	ctx := context.Background()
	llmClient, embedderClient, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}
	if embedderClient == nil {
		log.Fatalf("Provider %q has no embedding API; the ranker cannot run without one", cfg.LLM.Provider)
	}

	// Corpus load is the only failure allowed to halt the system.
	store, err := corpus.Load(cfg.Corpus.Path)
	if err != nil {
		log.Fatalf("Failed to load corpus: %v", err)
	}
	log.Printf("Loaded %d articles from %s, computing embeddings...", store.Len(), cfg.Corpus.Path)
	if err := store.EmbedAll(ctx, embedderClient); err != nil {
		log.Fatalf("Failed to embed corpus: %v", err)
	}

	classifier := llm.NewZeroShotClassifier(llmClient)
	analyzer := core.NewAnalyzer(store, embedderClient, classifier, llmClient, cfg)

	return &Server{
		Analyzer: analyzer,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(corsMiddleware())

	r.POST("/analyze", s.Analyze)
	r.POST("/analyze-batch", s.AnalyzeBatch)

	return r
}

// The original deployment serves a browser frontend from another origin.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

type AnalyzeRequest struct {
	Situation string `json:"situation"`
}

func (s *Server) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	reqID := uuid.New().String()
	log.Printf("[%s] analyze: %q", reqID, req.Situation)

	// Domain failures never surface as transport errors; the analyzer
	// always answers.
	result := s.Analyzer.Analyze(c.Request.Context(), req.Situation)
	log.Printf("[%s] verdict=%s confidence=%.2f", reqID, result.Verdict, result.Confidence)

	c.JSON(http.StatusOK, result)
}

type AnalyzeBatchRequest struct {
	Situations []string `json:"situations"`
}

func (s *Server) AnalyzeBatch(c *gin.Context) {
	var req AnalyzeBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	reqID := uuid.New().String()
	log.Printf("[%s] analyze-batch: %d situations", reqID, len(req.Situations))

	results := s.Analyzer.AnalyzeBatch(c.Request.Context(), req.Situations)

	c.JSON(http.StatusOK, gin.H{"results": results})
}
