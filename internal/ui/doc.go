// Package ui is the Bubble Tea front end: the view controller that owns
// the current screen, the apply dialog, and every transition between
// them. Network work runs as commands; results come back as messages
// and are folded into the model on the event loop.
package ui
