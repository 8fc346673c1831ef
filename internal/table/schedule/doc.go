// Package schedule provides the two recomputation gates used by the table:
// a debouncer for resize events and a frame throttler for scroll events.
//
// Resize recomputation waits for a quiet period (default 150ms); a newer
// resize cancels the pending timer. Scroll recomputation is coalesced to at
// most one callback per frame interval (default 16ms) regardless of trigger
// frequency.
//
// Callbacks fire on a timer goroutine. Callers that require single-threaded
// handling should post into their own event loop from the callback; the TUI
// does this by sending a Bubble Tea message.
package schedule
