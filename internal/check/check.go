package check

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Check is a single named pass/fail test. Run returning nil means the check
// passed; a non-nil error is the failure reason. Remediation is the hint
// printed when the check fails without a more specific message.
type Check struct {
	Name        string
	Run         func(ctx context.Context) error
	Remediation string
	Required    bool
}

// New builds a required check.
func New(name string, run func(ctx context.Context) error, remediation string) Check {
	return Check{Name: name, Run: run, Remediation: remediation, Required: true}
}

// Optional builds a non-required check: its failure renders as a warning and
// never affects the overall result.
func Optional(name string, run func(ctx context.Context) error, remediation string) Check {
	c := New(name, run, remediation)
	c.Required = false
	return c
}

// Registry is the ordered set of checks for one invocation. Construction is
// pure data; order matters only for display.
type Registry []Check

// Result holds the outcome of a single check.
type Result struct {
	Name        string        `json:"name"`
	Passed      bool          `json:"passed"`
	Required    bool          `json:"required"`
	Err         string        `json:"error,omitempty"`
	Kind        Kind          `json:"kind,omitempty"`
	Remediation string        `json:"remediation,omitempty"`
	Elapsed     time.Duration `json:"elapsed_ns"`
}

// IsCritical reports whether this is a required check that failed.
func (r Result) IsCritical() bool {
	return r.Required && !r.Passed
}

// Summary aggregates the results of one run.
type Summary struct {
	RunID       string    `json:"run_id"`
	Results     []Result  `json:"results"`
	AllPassed   bool      `json:"all_passed"`
	CompletedAt time.Time `json:"completed_at"`
}

func newSummary(results []Result) Summary {
	s := Summary{
		RunID:       uuid.NewString(),
		Results:     results,
		AllPassed:   true,
		CompletedAt: time.Now().UTC(),
	}
	for _, r := range results {
		if r.IsCritical() {
			s.AllPassed = false
		}
	}
	return s
}

// Failures returns the required results that failed.
func (s Summary) Failures() []Result {
	var out []Result
	for _, r := range s.Results {
		if r.IsCritical() {
			out = append(out, r)
		}
	}
	return out
}

// Warnings returns the non-required results that failed.
func (s Summary) Warnings() []Result {
	var out []Result
	for _, r := range s.Results {
		if !r.Required && !r.Passed {
			out = append(out, r)
		}
	}
	return out
}
