package model

import (
	"slices"
	"time"

	"github.com/mcoot/competeinator/internal/ident"
)

// PlayerKind tags identifiers that refer to players
type PlayerKind struct{}

// PlayerID uniquely identifies a player within a session
type PlayerID = ident.ID[PlayerKind]

// DeletedPlayerName is shown in place of a player that no longer exists
const DeletedPlayerName = "<DELETED>"

// Player is a tournament participant
type Player struct {
	ID        PlayerID
	Name      string // as typed, may collide with other players
	CreatedAt time.Time
}

// SortPlayers orders players by ID, which follows creation order
func SortPlayers(players []*Player) {
	slices.SortFunc(players, func(a, b *Player) int {
		return a.ID.Compare(b.ID)
	})
}
