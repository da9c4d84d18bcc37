package presenter

import "sync"

// RaceGuard rejects stale navigation commands. Controllers stamp each
// command with a client-side value that increases per click (typically the
// send time in milliseconds); rapid next/prev clicks racing over the
// network can arrive reordered, and only commands stamped later than
// everything already seen may take effect.
//
// Stamps are only meaningful within one temporary-content session, so the
// watermark is reset whenever a new "present temporarily" command starts.
type RaceGuard struct {
	mu       sync.Mutex
	lastSeen int64
}

// Admit reports whether the command may proceed and, if so, advances the
// watermark before returning. Stamps must be positive.
func (g *RaceGuard) Admit(stamp int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if stamp <= g.lastSeen {
		return false
	}
	g.lastSeen = stamp
	return true
}

// Reset clears the watermark for a new temporary-content session.
func (g *RaceGuard) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastSeen = 0
}
