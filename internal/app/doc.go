// Package app wires configuration, logging, the API client, the session
// store, and the collections cache into the running TUI.
package app
