package storage

import (
	"context"

	"github.com/mcoot/competeinator/internal/model"
)

// Storage defines the interface for the player and match store.
// Matches are never deleted; players are, without touching matches that
// reference them.
type Storage interface {
	// Player operations
	InsertPlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error
	ListPlayers(ctx context.Context) ([]*model.Player, error)

	// Match operations
	InsertMatch(ctx context.Context, match *model.Match) error
	SaveMatch(ctx context.Context, match *model.Match) error
	GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error)
	ListMatches(ctx context.Context) ([]*model.Match, error)

	// NextIDs reports the lowest identifier values never inserted, including
	// players that have since been deleted. Allocators resume from here.
	NextIDs(ctx context.Context) (NextIDs, error)
}

// NextIDs holds the first unused identifier value for each entity kind
type NextIDs struct {
	Player uint32
	Match  uint32
}

// IDSource issues identifiers for new entities. A backend shared between
// processes implements it so that every process draws from one sequence.
type IDSource interface {
	NextPlayerID(ctx context.Context) (model.PlayerID, error)
	NextMatchID(ctx context.Context) (model.MatchID, error)
}
