package board

import (
	"encoding/json"
	"time"
)

// Job describes a posting as served by the board API. Jobs are immutable
// from the client's perspective.
type Job struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	CompanyName string `json:"company_name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	JobType     string `json:"job_type"`
	Salary      string `json:"salary,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// PostedAt returns the parsed created_at timestamp, zero when unparseable.
func (j Job) PostedAt() time.Time {
	return parseTime(j.CreatedAt)
}

// Application statuses owned by the remote service. Unknown values are
// passed through untouched.
const (
	StatusPending     = "pending"
	StatusReviewed    = "reviewed"
	StatusShortlisted = "shortlisted"
	StatusRejected    = "rejected"
	StatusHired       = "hired"
)

// Application is one of the current user's submissions. The server embeds
// the job on some deployments and flattens job_title on others.
type Application struct {
	ID          int64  `json:"id"`
	JobTitle    string `json:"job_title"`
	Job         *Job   `json:"job,omitempty"`
	CoverLetter string `json:"cover_letter"`
	Status      string `json:"status"`
	AppliedAt   string `json:"applied_at"`
}

// Title resolves the posting title from whichever shape the server sent.
func (a Application) Title() string {
	if a.JobTitle != "" {
		return a.JobTitle
	}
	if a.Job != nil {
		return a.Job.Title
	}
	return ""
}

// Company resolves the company name when the job is embedded.
func (a Application) Company() string {
	if a.Job != nil {
		return a.Job.CompanyName
	}
	return ""
}

// SubmittedAt returns the parsed applied_at timestamp.
func (a Application) SubmittedAt() time.Time {
	return parseTime(a.AppliedAt)
}

// UserProfile is the read-only copy of the authenticated user.
type UserProfile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// LoginResult carries the access token and profile from /auth/login/.
type LoginResult struct {
	Access string      `json:"access"`
	User   UserProfile `json:"user"`
}

// Submission is the multipart payload for POST /applications/.
type Submission struct {
	JobID       int64
	CoverLetter string
	ResumeName  string // empty means no resume part
	Resume      []byte
}

// jobList accepts the two shapes /jobs/ is known to return: a bare array
// or a paginated {results: [...]} envelope.
type jobList []Job

func (l *jobList) UnmarshalJSON(data []byte) error {
	var bare []Job
	if err := json.Unmarshal(data, &bare); err == nil {
		*l = bare
		return nil
	}
	var envelope struct {
		Results []Job `json:"results"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}
	*l = envelope.Results
	return nil
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
