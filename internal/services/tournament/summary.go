package tournament

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/mcoot/competeinator/internal/model"
)

// Summary is the display form of a match
type Summary struct {
	Match        *model.Match // the match exactly as it was rendered
	MatchID      model.MatchID
	State        model.MatchState
	Participants []string // names in component order, deleted players as DeletedPlayerName
	Versus       string   // "A vs B vs C"
	Winner       string   // empty while open
	WinnerLine   string   // "B won!", empty while open
}

// Summarize renders a match with current player names
func (c *Controller) Summarize(ctx context.Context, matchID model.MatchID) (*Summary, error) {
	match, err := c.storage.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	names, err := c.loadNames(ctx)
	if err != nil {
		return nil, err
	}

	return summarize(match, names), nil
}

// Summaries renders every match in ID order
func (c *Controller) Summaries(ctx context.Context) ([]*Summary, error) {
	matches, err := c.Matches(ctx)
	if err != nil {
		return nil, err
	}

	names, err := c.loadNames(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]*Summary, len(matches))
	for i, m := range matches {
		summaries[i] = summarize(m, names)
	}
	return summaries, nil
}

func summarize(match *model.Match, names nameIndex) *Summary {
	participants := make([]string, len(match.Components))
	for i, comp := range match.Components {
		participants[i] = names.name(comp.Player)
	}

	summary := &Summary{
		Match:        match,
		MatchID:      match.ID,
		State:        match.State(),
		Participants: participants,
		Versus:       strings.Join(participants, " vs "),
	}

	if match.Winner != nil {
		summary.Winner = names.name(*match.Winner)
		summary.WinnerLine = fmt.Sprintf("%s won!", summary.Winner)
	}

	return summary
}

// Standing is a player's record across all matches
type Standing struct {
	PlayerID model.PlayerID
	Name     string
	Played   int
	Wins     int
}

// Standings tallies matches played and won for every live player, most
// wins first and ties in ID order
func (c *Controller) Standings(ctx context.Context) ([]Standing, error) {
	players, err := c.OrderedPlayers(ctx)
	if err != nil {
		return nil, err
	}

	matches, err := c.storage.ListMatches(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[model.PlayerID]int, len(players))
	standings := make([]Standing, len(players))
	for i, p := range players {
		index[p.ID] = i
		standings[i] = Standing{PlayerID: p.ID, Name: p.Name}
	}

	for _, m := range matches {
		for _, comp := range m.Components {
			if i, ok := index[comp.Player]; ok {
				standings[i].Played++
			}
		}
		if m.Winner != nil {
			if i, ok := index[*m.Winner]; ok {
				standings[i].Wins++
			}
		}
	}

	slices.SortStableFunc(standings, func(a, b Standing) int {
		return cmp.Compare(b.Wins, a.Wins)
	})
	return standings, nil
}
