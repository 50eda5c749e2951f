package lobby

import (
	"github.com/storyloom/storyloom/internal/model"
	"github.com/storyloom/storyloom/internal/services/game"
)

// JoinOutcome is the one-shot notification delivered to a pooled player:
// either the game they were promoted into, or cancellation.
type JoinOutcome struct {
	Game      *game.Game
	Cancelled bool
}

type poolEntry struct {
	player  *model.Player
	outcome chan JoinOutcome // buffered, written exactly once
}

// notify delivers the entry's single outcome. Entries are removed from
// the pool before notification, so each channel receives exactly one
// value.
func (e *poolEntry) notify(o JoinOutcome) {
	e.outcome <- o
}

// pool is the insertion-ordered waiting queue. It has no lock of its
// own: the owning Manager serializes all access.
type pool struct {
	entries []*poolEntry
}

func newPool() *pool {
	return &pool{}
}

func (p *pool) contains(playerID model.PlayerID) bool {
	for _, e := range p.entries {
		if e.player.ID == playerID {
			return true
		}
	}
	return false
}

func (p *pool) add(player *model.Player) *poolEntry {
	entry := &poolEntry{
		player:  player,
		outcome: make(chan JoinOutcome, 1),
	}
	p.entries = append(p.entries, entry)
	return entry
}

// remove takes the entry for the given player out of the queue,
// returning nil if the player is not queued
func (p *pool) remove(playerID model.PlayerID) *poolEntry {
	for i, e := range p.entries {
		if e.player.ID == playerID {
			p.entries = append(p.entries[:i], p.entries[i+1:]...)
			return e
		}
	}
	return nil
}

// takeBatch removes and returns the n earliest entries, or nil if fewer
// than n players are waiting
func (p *pool) takeBatch(n int) []*poolEntry {
	if len(p.entries) < n {
		return nil
	}
	batch := p.entries[:n]
	p.entries = append([]*poolEntry{}, p.entries[n:]...)
	return batch
}

// drain removes and returns every waiting entry
func (p *pool) drain() []*poolEntry {
	entries := p.entries
	p.entries = nil
	return entries
}

func (p *pool) size() int {
	return len(p.entries)
}
