package tournament

import (
	"context"
	"io"
	"log/slog"

	"github.com/mcoot/competeinator/internal/codec"
	"github.com/mcoot/competeinator/internal/model"
)

// ImportResult describes what an import added to the session
type ImportResult struct {
	Matches        int
	PlayersCreated int
}

// Records converts every match into the history file form, in ID order.
// Participants are written under their current name; a deleted player is
// written as DeletedPlayerName.
func (c *Controller) Records(ctx context.Context) ([]codec.Record, error) {
	matches, err := c.Matches(ctx)
	if err != nil {
		return nil, err
	}

	names, err := c.loadNames(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]codec.Record, len(matches))
	for i, m := range matches {
		entries := make([]codec.Entry, len(m.Components))
		for j, comp := range m.Components {
			score := codec.LossScore
			if m.Winner != nil && *m.Winner == comp.Player {
				score = codec.WinScore
			}
			entries[j] = codec.Entry{Name: names.name(comp.Player), Score: score}
		}
		records[i] = codec.Record{Entries: entries}
	}
	return records, nil
}

// Export writes the match history to w
func (c *Controller) Export(ctx context.Context, w io.Writer) error {
	records, err := c.Records(ctx)
	if err != nil {
		return err
	}
	return codec.Encode(w, records)
}

// SaveFile writes the match history to path
func (c *Controller) SaveFile(ctx context.Context, path string) error {
	records, err := c.Records(ctx)
	if err != nil {
		return err
	}

	if err := codec.WriteFile(path, records); err != nil {
		c.logger.Error("failed to save match history",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return err
	}

	c.logger.Info("match history saved",
		slog.String("path", path),
		slog.Int("match_count", len(records)),
	)
	return nil
}

// Import reads a match history from r and adds every match in it as a new
// match. Failures to read or parse are returned as *codec.LoadError and
// leave the session untouched.
func (c *Controller) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	records, err := codec.Decode(r)
	if err != nil {
		return nil, err
	}
	return c.ImportRecords(ctx, records)
}

// LoadFile imports the match history stored at path
func (c *Controller) LoadFile(ctx context.Context, path string) (*ImportResult, error) {
	records, err := codec.ReadFile(path)
	if err != nil {
		c.logger.Error("failed to load match history",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	result, err := c.ImportRecords(ctx, records)
	if err != nil {
		return nil, err
	}

	c.logger.Info("match history loaded",
		slog.String("path", path),
		slog.Int("match_count", result.Matches),
		slog.Int("players_created", result.PlayersCreated),
	)
	return result, nil
}

// ImportRecords adds one new match per record. Each name is matched exactly
// against existing players (lowest ID first when names repeat); unknown
// names become new players. Imported matches always get fresh IDs.
func (c *Controller) ImportRecords(ctx context.Context, records []codec.Record) (*ImportResult, error) {
	players, err := c.OrderedPlayers(ctx)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]model.PlayerID, len(players))
	for _, p := range players {
		if _, ok := byName[p.Name]; !ok {
			byName[p.Name] = p.ID
		}
	}

	result := &ImportResult{}
	for _, rec := range records {
		matchID, err := c.ids.NextMatchID(ctx)
		if err != nil {
			return result, err
		}
		match := model.NewMatch(matchID, c.clock.Now())

		for _, entry := range rec.Entries {
			id, ok := byName[entry.Name]
			if !ok {
				player, err := c.CreatePlayer(ctx, entry.Name)
				if err != nil {
					return result, err
				}
				id = player.ID
				byName[entry.Name] = id
				result.PlayersCreated++
			}
			if !match.HasComponent(id) {
				match.Components = append(match.Components, model.MatchComponent{Player: id})
			}
		}

		if name, ok := rec.Winner(); ok {
			winner := byName[name]
			decidedAt := c.clock.Now()
			match.Winner = &winner
			match.DecidedAt = &decidedAt
		}

		if _, err := c.insertMatch(ctx, match); err != nil {
			return result, err
		}
		result.Matches++
	}

	return result, nil
}
