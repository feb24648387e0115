package core

import (
	"context"
)

// MockEmbedder returns preset unit vectors per text. Calls counts single
// Embed calls, which is how tests observe whether the ranker did any work.
type MockEmbedder struct {
	Vectors    map[string][]float32
	Default    []float32
	Calls      int
	BatchCalls int
	Err        error
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if v, ok := m.Vectors[text]; ok {
		return v, nil
	}
	return m.Default, nil
}

func (m *MockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	m.BatchCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	vecs := make([][]float32, len(texts))
	for i, t := range texts {
		if v, ok := m.Vectors[t]; ok {
			vecs[i] = v
		} else {
			vecs[i] = m.Default
		}
	}
	return vecs, nil
}

type MockClassifier struct {
	Scores map[string]float64
	Calls  int
	Err    error
}

func (m *MockClassifier) Classify(ctx context.Context, text string, labels []string, multiLabel bool) (map[string]float64, error) {
	m.Calls++
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
