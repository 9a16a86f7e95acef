package tui

import "github.com/Veraticus/tally/internal/tracker"

// snapshotMsg carries fresh state, either loaded on request or pushed by a
// tracker subscription.
type snapshotMsg struct {
	snapshot tracker.Snapshot
}

// removedMsg reports the outcome of removing a transaction.
type removedMsg struct {
	err         error
	id          string
	description string
	snapshot    tracker.Snapshot
	removed     bool
}
