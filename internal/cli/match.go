package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mcoot/competeinator/internal/model"
	"github.com/mcoot/competeinator/internal/services/tournament"
)

func newMatchCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match commands",
	}

	cmd.AddCommand(newMatchNewCmd(s))
	cmd.AddCommand(newMatchAddCmd(s))
	cmd.AddCommand(newMatchWinCmd(s))
	cmd.AddCommand(newMatchListCmd(s))
	cmd.AddCommand(newMatchShowCmd(s))

	return cmd
}

func newMatchNewCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Create an empty match",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := s.tournament(cmd.Context())
			if err != nil {
				return err
			}

			match, err := t.CreateMatch(cmd.Context())
			if err != nil {
				return err
			}

			view, err := loadMatch(cmd.Context(), t, match.ID)
			if err != nil {
				return err
			}
			s.out.Print(view)
			return nil
		},
	}
}

func newMatchAddCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "add MATCH_ID PLAYER_ID",
		Short: "Enter a player into a match",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			matchID, playerID, err := parseMatchAndPlayer(args)
			if err != nil {
				return err
			}

			t, err := s.tournament(cmd.Context())
			if err != nil {
				return err
			}

			added, err := t.AddComponent(cmd.Context(), matchID, playerID)
			if err != nil {
				return err
			}

			name, err := t.ParticipantName(cmd.Context(), playerID)
			if err != nil {
				return err
			}
			view, err := loadMatch(cmd.Context(), t, matchID)
			if err != nil {
				return err
			}

			s.out.Print(AddResult{Added: added, Player: name, Match: view})
			return nil
		},
	}
}

func newMatchWinCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "win MATCH_ID PLAYER_ID",
		Short: "Declare the winner of a match",
		Long:  "Declare the winner of a match. The player must be in the match, and a winner cannot be changed once set.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			matchID, playerID, err := parseMatchAndPlayer(args)
			if err != nil {
				return err
			}

			t, err := s.tournament(cmd.Context())
			if err != nil {
				return err
			}

			if err := t.DeclareWinner(cmd.Context(), matchID, playerID); err != nil {
				return err
			}

			view, err := loadMatch(cmd.Context(), t, matchID)
			if err != nil {
				return err
			}
			s.out.Print(view)
			return nil
		},
	}
}

func newMatchListCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List matches",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := s.tournament(cmd.Context())
			if err != nil {
				return err
			}

			summaries, err := t.Summaries(cmd.Context())
			if err != nil {
				return err
			}

			result := make([]Match, len(summaries))
			for i, summary := range summaries {
				result[i] = matchFromSummary(summary)
			}
			s.out.Print(result)
			return nil
		},
	}
}

func newMatchShowCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show MATCH_ID",
		Short: "Show one match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matchID, err := parseMatchID(args[0])
			if err != nil {
				return err
			}

			t, err := s.tournament(cmd.Context())
			if err != nil {
				return err
			}

			view, err := loadMatch(cmd.Context(), t, matchID)
			if err != nil {
				return err
			}
			s.out.Print(view)
			return nil
		},
	}
}

func newStandingsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "standings",
		Short: "Show matches played and won per player",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := s.tournament(cmd.Context())
			if err != nil {
				return err
			}

			standings, err := t.Standings(cmd.Context())
			if err != nil {
				return err
			}

			result := make([]Standing, len(standings))
			for i, st := range standings {
				result[i] = Standing{
					PlayerID: st.PlayerID.Value(),
					Name:     st.Name,
					Played:   st.Played,
					Wins:     st.Wins,
				}
			}
			s.out.Print(result)
			return nil
		},
	}
}

func parseMatchAndPlayer(args []string) (model.MatchID, model.PlayerID, error) {
	matchID, err := parseMatchID(args[0])
	if err != nil {
		return matchID, model.PlayerID{}, err
	}
	playerID, err := parsePlayerID(args[1])
	if err != nil {
		return matchID, playerID, err
	}
	return matchID, playerID, nil
}

func loadMatch(ctx context.Context, t *tournament.Controller, id model.MatchID) (Match, error) {
	summary, err := t.Summarize(ctx, id)
	if err != nil {
		return Match{}, err
	}
	return matchFromSummary(summary), nil
}
