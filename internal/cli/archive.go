package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/competeinator/internal/codec"
)

func newExportCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "export [FILE]",
		Aliases: []string{"save"},
		Short:   "Save match history to a JSON file (default " + codec.DefaultOutputPath + ")",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := codec.DefaultOutputPath
			if len(args) == 1 {
				path = args[0]
			}

			t, err := s.tournament(cmd.Context())
			if err != nil {
				return err
			}

			matches, err := t.Matches(cmd.Context())
			if err != nil {
				return err
			}
			if err := t.SaveFile(cmd.Context(), path); err != nil {
				return err
			}

			s.out.Print(ExportResult{Path: path, Matches: len(matches)})
			return nil
		},
	}
}

func newImportCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "import [FILE]",
		Aliases: []string{"load"},
		Short:   "Add the matches in a JSON history file (default " + codec.DefaultInputPath + ")",
		Long: `Add every match in a JSON history file as a new match.

Names are matched exactly against existing players; unknown names become
new players. If the file cannot be read or parsed nothing is changed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := codec.DefaultInputPath
			if len(args) == 1 {
				path = args[0]
			}

			t, err := s.tournament(cmd.Context())
			if err != nil {
				return err
			}

			result, err := t.LoadFile(cmd.Context(), path)
			if err != nil {
				return err
			}

			s.out.Print(ImportResult{
				Path:           path,
				Matches:        result.Matches,
				PlayersCreated: result.PlayersCreated,
			})
			return nil
		},
	}
}
