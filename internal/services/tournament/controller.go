package tournament

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/mcoot/competeinator/internal/dependencies/clock"
	"github.com/mcoot/competeinator/internal/ident"
	"github.com/mcoot/competeinator/internal/model"
	"github.com/mcoot/competeinator/internal/storage"
)

// Allocators holds one identifier allocator per entity kind
type Allocators struct {
	Players *ident.Allocator[model.PlayerKind]
	Matches *ident.Allocator[model.MatchKind]
}

// NewAllocators returns allocators that both start at 0
func NewAllocators() Allocators {
	return Allocators{
		Players: ident.NewAllocator[model.PlayerKind](),
		Matches: ident.NewAllocator[model.MatchKind](),
	}
}

// NextPlayerID allocates from the local player counter
func (a Allocators) NextPlayerID(context.Context) (model.PlayerID, error) {
	return a.Players.Next(), nil
}

// NextMatchID allocates from the local match counter
func (a Allocators) NextMatchID(context.Context) (model.MatchID, error) {
	return a.Matches.Next(), nil
}

var _ storage.IDSource = Allocators{}

// ResumeAllocators returns allocators that continue after IDs already issued
// by a store
func ResumeAllocators(next storage.NextIDs) Allocators {
	return Allocators{
		Players: ident.ResumeAllocator[model.PlayerKind](next.Player),
		Matches: ident.ResumeAllocator[model.MatchKind](next.Match),
	}
}

// Controller owns the tournament session: players, matches and the rules
// that keep them consistent
type Controller struct {
	storage storage.Storage
	ids     storage.IDSource
	clock   clock.Clock
	logger  *slog.Logger

	// mu serializes read-modify-write updates of matches
	mu sync.Mutex
}

// NewController creates a new tournament Controller
func NewController(
	storage storage.Storage,
	ids storage.IDSource,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		ids:     ids,
		clock:   clock,
		logger:  logger,
	}
}

// Player operations

// CreatePlayer adds a player with the name exactly as given.
// Names are not deduplicated; players are told apart by ID only.
func (c *Controller) CreatePlayer(ctx context.Context, name string) (*model.Player, error) {
	if name == "" {
		return nil, model.ErrEmptyPlayerName
	}

	id, err := c.ids.NextPlayerID(ctx)
	if err != nil {
		return nil, err
	}

	player := &model.Player{
		ID:        id,
		Name:      name,
		CreatedAt: c.clock.Now(),
	}

	if err := c.storage.InsertPlayer(ctx, player); err != nil {
		c.logger.Error("failed to save player",
			slog.String("player_id", player.ID.String()),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("player created",
		slog.String("player_id", player.ID.String()),
		slog.String("name", player.Name),
	)

	return player, nil
}

// GetPlayer retrieves a player by ID
func (c *Controller) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return c.storage.GetPlayer(ctx, id)
}

// DeletePlayer removes a player. Matches keep their references to the
// player, which then render as DeletedPlayerName. Deleting an unknown
// player does nothing.
func (c *Controller) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	if err := c.storage.DeletePlayer(ctx, id); err != nil {
		return err
	}

	c.logger.Info("player deleted", slog.String("player_id", id.String()))
	return nil
}

// OrderedPlayers returns all players in ID order
func (c *Controller) OrderedPlayers(ctx context.Context) ([]*model.Player, error) {
	players, err := c.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	model.SortPlayers(players)
	return players, nil
}

// ParticipantName returns the player's current name, or DeletedPlayerName
// if the player no longer exists
func (c *Controller) ParticipantName(ctx context.Context, id model.PlayerID) (string, error) {
	player, err := c.storage.GetPlayer(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return model.DeletedPlayerName, nil
		}
		return "", err
	}
	return player.Name, nil
}

// Match operations

// CreateMatch starts an empty, open match. At least one player must exist.
func (c *Controller) CreateMatch(ctx context.Context) (*model.Match, error) {
	players, err := c.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	if len(players) == 0 {
		return nil, model.ErrNoPlayers
	}

	id, err := c.ids.NextMatchID(ctx)
	if err != nil {
		return nil, err
	}
	return c.insertMatch(ctx, model.NewMatch(id, c.clock.Now()))
}

func (c *Controller) insertMatch(ctx context.Context, match *model.Match) (*model.Match, error) {
	if err := c.storage.InsertMatch(ctx, match); err != nil {
		c.logger.Error("failed to save match",
			slog.String("match_id", match.ID.String()),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("match created",
		slog.String("match_id", match.ID.String()),
		slog.Int("participant_count", len(match.Components)),
	)

	return match, nil
}

// GetMatch retrieves a match by ID
func (c *Controller) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	return c.storage.GetMatch(ctx, id)
}

// Matches returns all matches in ID order
func (c *Controller) Matches(ctx context.Context) ([]*model.Match, error) {
	matches, err := c.storage.ListMatches(ctx)
	if err != nil {
		return nil, err
	}
	model.SortMatches(matches)
	return matches, nil
}

// HasComponent reports whether the player already takes part in the match
func (c *Controller) HasComponent(ctx context.Context, matchID model.MatchID, playerID model.PlayerID) (bool, error) {
	match, err := c.storage.GetMatch(ctx, matchID)
	if err != nil {
		return false, err
	}
	return match.HasComponent(playerID), nil
}

// AddComponent enters a player into an open match.
// Adding a player who is already in the match changes nothing and reports
// added as false without an error.
func (c *Controller) AddComponent(ctx context.Context, matchID model.MatchID, playerID model.PlayerID) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	match, err := c.storage.GetMatch(ctx, matchID)
	if err != nil {
		return false, err
	}

	if match.HasComponent(playerID) {
		c.logger.Debug("duplicate participant ignored",
			slog.String("match_id", matchID.String()),
			slog.String("player_id", playerID.String()),
		)
		return false, nil
	}

	if match.IsDecided() {
		return false, model.ErrAlreadyDecided
	}

	if _, err := c.storage.GetPlayer(ctx, playerID); err != nil {
		return false, err
	}

	match.Components = append(match.Components, model.MatchComponent{Player: playerID})
	if err := c.storage.SaveMatch(ctx, match); err != nil {
		return false, err
	}

	c.logger.Info("participant added",
		slog.String("match_id", matchID.String()),
		slog.String("player_id", playerID.String()),
	)

	return true, nil
}

// DeclareWinner decides the match. A winner is permanent: declaring again
// fails with ErrAlreadyDecided and leaves the first winner in place.
func (c *Controller) DeclareWinner(ctx context.Context, matchID model.MatchID, playerID model.PlayerID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	match, err := c.storage.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}

	if match.IsDecided() {
		c.logger.Warn("winner already declared",
			slog.String("match_id", matchID.String()),
			slog.String("winner_id", match.Winner.String()),
			slog.String("rejected_id", playerID.String()),
		)
		return model.ErrAlreadyDecided
	}

	if !match.HasComponent(playerID) {
		return model.ErrNotParticipant
	}

	now := c.clock.Now()
	match.Winner = &playerID
	match.DecidedAt = &now

	if err := c.storage.SaveMatch(ctx, match); err != nil {
		return err
	}

	c.logger.Info("winner declared",
		slog.String("match_id", matchID.String()),
		slog.String("winner_id", playerID.String()),
	)

	return nil
}

// nameIndex maps live player IDs to names for rendering many references at once
type nameIndex map[model.PlayerID]string

func (c *Controller) loadNames(ctx context.Context) (nameIndex, error) {
	players, err := c.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	names := make(nameIndex, len(players))
	for _, p := range players {
		names[p.ID] = p.Name
	}
	return names, nil
}

func (n nameIndex) name(id model.PlayerID) string {
	if name, ok := n[id]; ok {
		return name
	}
	return model.DeletedPlayerName
}
