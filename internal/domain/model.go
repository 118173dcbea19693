package domain

import "time"

// Outcome is the result of a single check.
type Outcome string

const (
	OutcomePass Outcome = "pass"
	OutcomeFail Outcome = "fail"
)

// CheckResult records what happened to one check in the suite.
type CheckResult struct {
	Index    int      `json:"index"`
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Outcome  Outcome  `json:"outcome"`
	Error    string   `json:"error,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Skipped  bool     `json:"skipped,omitempty"`
}

// Report is the aggregate of one validation run.
type Report struct {
	Root      string        `json:"root"`
	Platform  Platform      `json:"platform"`
	Arch      string        `json:"arch"`
	Results   []CheckResult `json:"results"`
	Passed    int           `json:"passed"`
	Total     int           `json:"total"`
	StartedAt time.Time     `json:"started_at"`
	Duration  string        `json:"duration"`
}

// Record appends a result and updates the counters.
func (r *Report) Record(res CheckResult) {
	r.Total++
	if res.Outcome == OutcomePass {
		r.Passed++
	}
	r.Results = append(r.Results, res)
}

// Failed returns the number of failed checks.
func (r *Report) Failed() int { return r.Total - r.Passed }

// AllPassed reports whether every check passed.
func (r *Report) AllPassed() bool { return r.Passed == r.Total }

// ExitCode is 0 only when every check passed.
func (r *Report) ExitCode() int {
	if r.AllPassed() {
		return 0
	}
	return 1
}

// Warnings returns every warning raised during the run, in order.
func (r *Report) Warnings() []string {
	var out []string
	for _, res := range r.Results {
		out = append(out, res.Warnings...)
	}
	return out
}
