package harness

import "github.com/roach88/statecraft/internal/game"

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	// True if every invariant check and assertion held.
	Pass bool `json:"pass"`

	// Errors contains invariant and assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// HistoryHash is the canonical hash of the finished history.
	HistoryHash string `json:"history_hash"`

	// Session is the finished session, for inspection beyond what
	// the assertions cover.
	Session *game.Session `json:"-"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
