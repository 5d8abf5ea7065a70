// Package board is the HTTP client for the remote job-board API. It owns
// the wire types, bearer-token auth, multipart submission, and the error
// taxonomy the rest of the program maps to user-visible text.
package board
