// Package state holds the in-memory cache of server-owned collections:
// the job list and the current user's applications.
package state
