// Package report aggregates checker results into the per-run Report and
// renders it to the console, the dated report artifact and the audit log.
package report

import (
	"encoding/json"
	"time"

	"botguard/internal/issue"

	"github.com/google/uuid"
)

// Status is the aggregate pass/fail outcome.
type Status string

const (
	StatusSecure      Status = "secure"
	StatusIssuesFound Status = "issues_found"
)

// Report is the aggregated result of one monitoring run. Built once,
// never mutated.
type Report struct {
	RunID       string                 `json:"runId"`
	Environment string                 `json:"environment"`
	GeneratedAt time.Time              `json:"generatedAt"`
	Issues      []issue.Issue          `json:"issues"`
	Counts      map[issue.Category]int `json:"counts"`
	Total       int                    `json:"total"`
	Status      Status                 `json:"status"`
}

// Build combines the counted issues with the uncounted liveness warning.
// Total and Counts cover counted issues only; liveness appears in Issues
// so the report shows it, but it never moves the pass/fail needle.
func Build(env string, counted []issue.Issue, liveness *issue.Issue) Report {
	all := make([]issue.Issue, 0, len(counted)+1)
	all = append(all, counted...)
	if liveness != nil {
		all = append(all, *liveness)
	}

	r := Report{
		RunID:       uuid.NewString(),
		Environment: env,
		GeneratedAt: time.Now().UTC(),
		Issues:      all,
		Counts:      issue.CountByCategory(counted),
		Total:       len(counted),
		Status:      StatusIssuesFound,
	}
	if r.Total == 0 {
		r.Status = StatusSecure
	}
	return r
}

// Passed reports the aggregate signal consumed as the exit code.
func (r Report) Passed() bool {
	return r.Total == 0
}

// ToJSON serializes the report for machine consumers.
func (r Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
