package model

type Verdict string

const (
	VerdictYes   Verdict = "YES"
	VerdictNo    Verdict = "NO"
	VerdictMaybe Verdict = "MAYBE"
)

// DefaultConfidence is used when no model-based confidence is available.
const DefaultConfidence = 0.5

// Result is the full answer to a legality query. Immutable once constructed.
type Result struct {
	Verdict    Verdict       `json:"verdict"`
	Articles   []RankedMatch `json:"articles"`
	Reasoning  string        `json:"reasoning"`
	Loopholes  []string      `json:"loopholes"`
	Confidence float64       `json:"confidence"`
}
