package checkout

import "io"

// StockOutcome tags the result of one stock lookup.
type StockOutcome string

const (
	StockOK           StockOutcome = "ok"
	StockInsufficient StockOutcome = "insufficient"
	StockNotFound     StockOutcome = "not-found"
)

// StockResult is the outcome for a single cart item. Every item gets one;
// a failed lookup never stops the remaining checks.
type StockResult struct {
	ProductID string       `json:"product_id"`
	Name      string       `json:"name"`
	Outcome   StockOutcome `json:"outcome"`
	Available int          `json:"available,omitempty"`
	Requested int          `json:"requested"`
	Message   string       `json:"message,omitempty"`
}

// StockReport aggregates per-item results. Messages appear in cart
// iteration order so the output is deterministic.
type StockReport struct {
	Results  []StockResult `json:"results"`
	Messages []string      `json:"messages"`
}

// OK reports whether checkout may proceed.
func (r *StockReport) OK() bool {
	return len(r.Messages) == 0
}

// SlipUpload is an optional proof-of-payment file attached to a
// submission.
type SlipUpload struct {
	Filename string
	Reader   io.Reader
}
