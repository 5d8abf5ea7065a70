package ui

import (
	"strings"

	"github.com/jobdeck/jobdeck/internal/board"
)

// FilterJobs returns the jobs whose title, company name, or location
// contains the query, case-insensitively. An empty query matches
// everything. Filtering is local-only over the cached list; no network
// is involved.
func FilterJobs(jobs []board.Job, query string) []board.Job {
	if query == "" {
		return jobs
	}
	needle := strings.ToLower(query)
	out := make([]board.Job, 0, len(jobs))
	for _, job := range jobs {
		if strings.Contains(strings.ToLower(job.Title), needle) ||
			strings.Contains(strings.ToLower(job.CompanyName), needle) ||
			strings.Contains(strings.ToLower(job.Location), needle) {
			out = append(out, job)
		}
	}
	return out
}
