package model

import (
	"slices"
	"time"

	"github.com/mcoot/competeinator/internal/ident"
)

// MatchKind tags identifiers that refer to matches
type MatchKind struct{}

// MatchID uniquely identifies a match within a session
type MatchID = ident.ID[MatchKind]

// MatchState is the phase of a match
type MatchState string

const (
	MatchStateOpen    MatchState = "open"    // No winner yet
	MatchStateDecided MatchState = "decided" // Winner set, terminal
)

// MatchComponent records that a player takes part in a match
type MatchComponent struct {
	Player PlayerID
}

// Match is a contest between any number of players with at most one winner.
// Components may reference players that have since been deleted.
type Match struct {
	ID         MatchID
	Components []MatchComponent
	Winner     *PlayerID // nil while open
	CreatedAt  time.Time
	DecidedAt  *time.Time
}

// NewMatch creates an open match with no components
func NewMatch(id MatchID, createdAt time.Time) *Match {
	return &Match{
		ID:         id,
		Components: []MatchComponent{},
		CreatedAt:  createdAt,
	}
}

// HasComponent returns true if the player already takes part in the match
func (m *Match) HasComponent(playerID PlayerID) bool {
	for _, c := range m.Components {
		if c.Player == playerID {
			return true
		}
	}
	return false
}

// IsDecided returns true once a winner has been declared
func (m *Match) IsDecided() bool {
	return m.Winner != nil
}

// State returns the current phase of the match
func (m *Match) State() MatchState {
	if m.IsDecided() {
		return MatchStateDecided
	}
	return MatchStateOpen
}

// Participants returns the player IDs in component order
func (m *Match) Participants() []PlayerID {
	ids := make([]PlayerID, len(m.Components))
	for i, c := range m.Components {
		ids[i] = c.Player
	}
	return ids
}

// Clone returns a deep copy of the match
func (m *Match) Clone() *Match {
	clone := *m
	clone.Components = slices.Clone(m.Components)
	if clone.Components == nil {
		clone.Components = []MatchComponent{}
	}
	if m.Winner != nil {
		winner := *m.Winner
		clone.Winner = &winner
	}
	if m.DecidedAt != nil {
		decidedAt := *m.DecidedAt
		clone.DecidedAt = &decidedAt
	}
	return &clone
}

// SortMatches orders matches by ID
func SortMatches(matches []*Match) {
	slices.SortFunc(matches, func(a, b *Match) int {
		return a.ID.Compare(b.ID)
	})
}
