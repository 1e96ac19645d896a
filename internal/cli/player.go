package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/competeinator/internal/ident"
	"github.com/mcoot/competeinator/internal/model"
)

func newPlayerCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player management commands",
	}

	cmd.AddCommand(newPlayerAddCmd(s))
	cmd.AddCommand(newPlayerRemoveCmd(s))
	cmd.AddCommand(newPlayerListCmd(s))

	return cmd
}

func newPlayerAddCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Create a player",
		Long:  "Create a player. The name is kept exactly as given; quote names with spaces.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := s.tournament(cmd.Context())
			if err != nil {
				return err
			}

			player, err := t.CreatePlayer(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			s.out.Print(playerFromModel(player))
			return nil
		},
	}
}

func newPlayerRemoveCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a player",
		Long:    "Delete a player. Matches they took part in keep them, shown as " + model.DeletedPlayerName + ".",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePlayerID(args[0])
			if err != nil {
				return err
			}

			t, err := s.tournament(cmd.Context())
			if err != nil {
				return err
			}

			if err := t.DeletePlayer(cmd.Context(), id); err != nil {
				return err
			}

			s.out.PrintMessage(fmt.Sprintf("Deleted player %s", id))
			return nil
		},
	}
}

func newPlayerListCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List players in creation order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := s.tournament(cmd.Context())
			if err != nil {
				return err
			}

			players, err := t.OrderedPlayers(cmd.Context())
			if err != nil {
				return err
			}

			result := make([]Player, len(players))
			for i, p := range players {
				result[i] = playerFromModel(p)
			}
			s.out.Print(result)
			return nil
		},
	}
}

func parsePlayerID(arg string) (model.PlayerID, error) {
	id, err := ident.Parse[model.PlayerKind](arg)
	if err != nil {
		return id, fmt.Errorf("invalid player id %q", arg)
	}
	return id, nil
}

func parseMatchID(arg string) (model.MatchID, error) {
	id, err := ident.Parse[model.MatchKind](arg)
	if err != nil {
		return id, fmt.Errorf("invalid match id %q", arg)
	}
	return id, nil
}
