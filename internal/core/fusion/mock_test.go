package fusion

import (
	"context"
	"sync"
)

// Classify is dispatched from concurrent goroutines; guard the counter.
type MockClassifier struct {
	mu     sync.Mutex
	Scores map[string]float64
	Calls  int
	Err    error
}

func (m *MockClassifier) Classify(ctx context.Context, text string, labels []string, multiLabel bool) (map[string]float64, error) {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make(map[string]float64, len(labels))
	for _, l := range labels {
		out[l] = m.Scores[l]
	}
	return out, nil
}

type MockLLM struct {
	Response string
	Err      error
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
