package response

import (
	"time"

	"github.com/mcoot/competeinator/internal/model"
	"github.com/mcoot/competeinator/internal/services/tournament"
)

// Player represents a player in API responses
type Player struct {
	ID        uint32    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:        p.ID.Value(),
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
	}
}

// PlayersFromModel converts a list of players
func PlayersFromModel(players []*model.Player) []Player {
	result := make([]Player, len(players))
	for i, p := range players {
		result[i] = PlayerFromModel(p)
	}
	return result
}

// Participant is one component of a match
type Participant struct {
	PlayerID uint32 `json:"player_id"`
	Name     string `json:"name"`
}

// Match represents a match with rendered names
type Match struct {
	ID           uint32        `json:"id"`
	State        string        `json:"state"`
	Participants []Participant `json:"participants"`
	WinnerID     *uint32       `json:"winner_id"`
	Versus       string        `json:"versus"`
	WinnerLine   string        `json:"winner_line,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	DecidedAt    *time.Time    `json:"decided_at,omitempty"`
}

// MatchFromSummary converts a rendered match
func MatchFromSummary(s *tournament.Summary) Match {
	m := s.Match
	participants := make([]Participant, len(m.Components))
	for i, comp := range m.Components {
		participants[i] = Participant{
			PlayerID: comp.Player.Value(),
			Name:     s.Participants[i],
		}
	}

	var winnerID *uint32
	if m.Winner != nil {
		v := m.Winner.Value()
		winnerID = &v
	}

	return Match{
		ID:           m.ID.Value(),
		State:        string(m.State()),
		Participants: participants,
		WinnerID:     winnerID,
		Versus:       s.Versus,
		WinnerLine:   s.WinnerLine,
		CreatedAt:    m.CreatedAt,
		DecidedAt:    m.DecidedAt,
	}
}

// AddComponentResponse reports whether the player was newly added
type AddComponentResponse struct {
	Added bool  `json:"added"`
	Match Match `json:"match"`
}

// Standing is a row of the standings table
type Standing struct {
	PlayerID uint32 `json:"player_id"`
	Name     string `json:"name"`
	Played   int    `json:"played"`
	Wins     int    `json:"wins"`
}

// StandingsFromModel converts standings rows
func StandingsFromModel(standings []tournament.Standing) []Standing {
	result := make([]Standing, len(standings))
	for i, s := range standings {
		result[i] = Standing{
			PlayerID: s.PlayerID.Value(),
			Name:     s.Name,
			Played:   s.Played,
			Wins:     s.Wins,
		}
	}
	return result
}

// ImportResponse summarizes an import
type ImportResponse struct {
	Matches        int `json:"matches"`
	PlayersCreated int `json:"players_created"`
}
