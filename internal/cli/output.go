package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mcoot/competeinator/internal/model"
	"github.com/mcoot/competeinator/internal/services/tournament"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
	errW   io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w, errW io.Writer) *Output {
	return &Output{format: format, w: w, errW: errW}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	switch o.format {
	case FormatJSON:
		o.printJSON(data)
	case FormatYAML:
		o.printYAML(data)
	default:
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	switch o.format {
	case FormatJSON:
		data, _ := json.Marshal(map[string]any{
			"error": map[string]string{"message": err.Error()},
		})
		fmt.Fprintln(o.errW, string(data))
	case FormatYAML:
		data, _ := yaml.Marshal(map[string]any{
			"error": map[string]string{"message": err.Error()},
		})
		fmt.Fprint(o.errW, string(data))
	default:
		fmt.Fprintf(o.errW, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	o.Print(Message{Message: msg})
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printYAML(data any) {
	enc := yaml.NewEncoder(o.w)
	enc.SetIndent(2)
	_ = enc.Encode(data)
	_ = enc.Close()
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Message:
		fmt.Fprintln(o.w, v.Message)
	case Player:
		fmt.Fprintf(o.w, "Player %d: %s\n", v.ID, v.Name)
	case []Player:
		o.printPlayers(v)
	case Match:
		o.printMatch(v)
	case []Match:
		o.printMatches(v)
	case AddResult:
		o.printAddResult(v)
	case []Standing:
		o.printStandings(v)
	case ImportResult:
		fmt.Fprintf(o.w, "Imported %d matches (%d new players) from %s\n", v.Matches, v.PlayersCreated, v.Path)
	case ExportResult:
		fmt.Fprintf(o.w, "Saved %d matches to %s\n", v.Matches, v.Path)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Message is a plain status line
type Message struct {
	Message string `json:"message" yaml:"message"`
}

// Player output type
type Player struct {
	ID        uint32    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

func playerFromModel(p *model.Player) Player {
	return Player{ID: p.ID.Value(), Name: p.Name, CreatedAt: p.CreatedAt}
}

// Participant output type
type Participant struct {
	PlayerID uint32 `json:"player_id" yaml:"player_id"`
	Name     string `json:"name" yaml:"name"`
}

// Match output type
type Match struct {
	ID           uint32        `json:"id" yaml:"id"`
	State        string        `json:"state" yaml:"state"`
	Participants []Participant `json:"participants" yaml:"participants"`
	Versus       string        `json:"versus" yaml:"versus"`
	Winner       string        `json:"winner,omitempty" yaml:"winner,omitempty"`
	WinnerLine   string        `json:"winner_line,omitempty" yaml:"winner_line,omitempty"`
}

func matchFromSummary(s *tournament.Summary) Match {
	m := s.Match
	participants := make([]Participant, len(m.Components))
	for i, comp := range m.Components {
		participants[i] = Participant{PlayerID: comp.Player.Value(), Name: s.Participants[i]}
	}
	return Match{
		ID:           m.ID.Value(),
		State:        string(s.State),
		Participants: participants,
		Versus:       s.Versus,
		Winner:       s.Winner,
		WinnerLine:   s.WinnerLine,
	}
}

// AddResult output type
type AddResult struct {
	Added  bool   `json:"added" yaml:"added"`
	Player string `json:"player" yaml:"player"`
	Match  Match  `json:"match" yaml:"match"`
}

// Standing output type
type Standing struct {
	PlayerID uint32 `json:"player_id" yaml:"player_id"`
	Name     string `json:"name" yaml:"name"`
	Played   int    `json:"played" yaml:"played"`
	Wins     int    `json:"wins" yaml:"wins"`
}

// ImportResult output type
type ImportResult struct {
	Path           string `json:"path" yaml:"path"`
	Matches        int    `json:"matches" yaml:"matches"`
	PlayersCreated int    `json:"players_created" yaml:"players_created"`
}

// ExportResult output type
type ExportResult struct {
	Path    string `json:"path" yaml:"path"`
	Matches int    `json:"matches" yaml:"matches"`
}

func (o *Output) printPlayers(players []Player) {
	if len(players) == 0 {
		fmt.Fprintln(o.w, "No players")
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, p := range players {
		fmt.Fprintf(tw, "%d\t%s\n", p.ID, p.Name)
	}
	_ = tw.Flush()
}

func (o *Output) printMatch(m Match) {
	fmt.Fprintf(o.w, "Match %d [%s]\n", m.ID, m.State)
	if m.Versus != "" {
		fmt.Fprintf(o.w, "  %s\n", m.Versus)
	}
	if m.WinnerLine != "" {
		fmt.Fprintf(o.w, "  %s\n", m.WinnerLine)
	}
}

func (o *Output) printMatches(matches []Match) {
	if len(matches) == 0 {
		fmt.Fprintln(o.w, "No matches")
		return
	}
	for _, m := range matches {
		o.printMatch(m)
	}
}

func (o *Output) printAddResult(r AddResult) {
	if r.Added {
		fmt.Fprintf(o.w, "Added %s to match %d\n", r.Player, r.Match.ID)
	} else {
		fmt.Fprintf(o.w, "%s is already in match %d\n", r.Player, r.Match.ID)
	}
	o.printMatch(r.Match)
}

func (o *Output) printStandings(standings []Standing) {
	if len(standings) == 0 {
		fmt.Fprintln(o.w, "No players")
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPLAYED\tWINS")
	for _, s := range standings {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\n", s.PlayerID, s.Name, s.Played, s.Wins)
	}
	_ = tw.Flush()
}
