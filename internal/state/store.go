package state

import (
	"sync"
	"time"

	"github.com/jobdeck/jobdeck/internal/board"
)

// Snapshot is the point-in-time view of server-owned collections the UI
// renders from. Lists are wholesale-replaced on refresh, never merged.
type Snapshot struct {
	Jobs         []board.Job
	Applications []board.Application
	JobsLoaded   bool // false until the first successful jobs fetch
	LastError    error
	LastUpdated  time.Time
}

// Store coordinates concurrent access to the snapshot. Bubble Tea
// commands run on their own goroutines, so every mutation takes the
// lock.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// SetJobs replaces the cached jobs list and clears the last error.
func (s *Store) SetJobs(jobs []board.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Jobs = cloneJobs(jobs)
	s.snapshot.JobsLoaded = true
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
}

// SetApplications replaces the cached applications list.
func (s *Store) SetApplications(apps []board.Application) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Applications = cloneApps(apps)
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
}

// ClearApplications empties the applications list. Logout path.
func (s *Store) ClearApplications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Applications = nil
	s.snapshot.LastUpdated = time.Now()
}

// Fail records a refresh error. Previous data is kept: stale-but-present
// beats empty.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
}

// Snapshot returns an independent copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.snapshot
	snap.Jobs = cloneJobs(s.snapshot.Jobs)
	snap.Applications = cloneApps(s.snapshot.Applications)
	return snap
}

func cloneJobs(jobs []board.Job) []board.Job {
	if len(jobs) == 0 {
		return nil
	}
	dup := make([]board.Job, len(jobs))
	copy(dup, jobs)
	return dup
}

func cloneApps(apps []board.Application) []board.Application {
	if len(apps) == 0 {
		return nil
	}
	dup := make([]board.Application, len(apps))
	copy(dup, apps)
	return dup
}
