package model

import "errors"

// ErrCorpusLoad is fatal at startup: the system cannot serve without a
// valid corpus. Everything else below is recoverable per-query and is
// converted to a degraded Result at the analyzer boundary.
var (
	ErrCorpusLoad        = errors.New("corpus load failed")
	ErrEmbeddingService  = errors.New("embedding service failed")
	ErrClassifierService = errors.New("classification service failed")
	ErrGenerationService = errors.New("generation service failed")
	ErrInvalidQuery      = errors.New("invalid query")
)
