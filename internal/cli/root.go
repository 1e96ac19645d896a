package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/competeinator/internal/factory"
	"github.com/mcoot/competeinator/internal/services/tournament"
)

// session carries state shared by every command of one process, including
// each line run inside the shell
type session struct {
	cfg *Config
	app *factory.App
	out *Output

	stdout io.Writer
	stderr io.Writer
}

func newSession(cfg *Config, stdout, stderr io.Writer) *session {
	return &session{
		cfg:    cfg,
		out:    NewOutput(cfg.Output, stdout, stderr),
		stdout: stdout,
		stderr: stderr,
	}
}

// tournament returns the controller, building the app on first use
func (s *session) tournament(ctx context.Context) (*tournament.Controller, error) {
	if s.app == nil {
		app, err := factory.New(ctx, s.cfg.Config(s.logger()))
		if err != nil {
			return nil, err
		}
		s.app = app
	}
	return s.app.Tournament, nil
}

func (s *session) logger() *slog.Logger {
	level := slog.LevelError
	if s.cfg.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(s.stderr, &slog.HandlerOptions{Level: level}))
}

func (s *session) close() error {
	if s.app == nil {
		return nil
	}
	return s.app.Close()
}

// NewRootCmd creates the root command
func NewRootCmd(cfg *Config, stdout, stderr io.Writer) *cobra.Command {
	return newRootCmd(newSession(cfg, stdout, stderr))
}

func newRootCmd(s *session) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "compete",
		Short: "Track players, matches and winners",
		Long: `compete records a tournament: players, the matches they take part in,
and who won each one. History can be saved to and loaded from JSON files.

With the default in-memory storage nothing outlives the process, so use
"compete shell" to run several commands against one session. With
--storage redis every invocation continues the same session.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := s.cfg.Validate(); err != nil {
				return err
			}
			s.out = NewOutput(s.cfg.Output, s.stdout, s.stderr)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(s.stdout)
	rootCmd.SetErr(s.stderr)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&s.cfg.StorageType, "storage", s.cfg.StorageType, "Storage backend: memory, redis (env: COMPETE_STORAGE)")
	rootCmd.PersistentFlags().StringVar(&s.cfg.Redis.URL, "redis-url", s.cfg.Redis.URL, "Redis URL (env: COMPETE_REDIS_URL)")
	rootCmd.PersistentFlags().StringVarP(&s.cfg.Output, "output", "o", s.cfg.Output, "Output format: text, json, yaml (env: COMPETE_OUTPUT)")
	rootCmd.PersistentFlags().BoolVarP(&s.cfg.Verbose, "verbose", "v", s.cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newPlayerCmd(s))
	rootCmd.AddCommand(newMatchCmd(s))
	rootCmd.AddCommand(newStandingsCmd(s))
	rootCmd.AddCommand(newExportCmd(s))
	rootCmd.AddCommand(newImportCmd(s))
	rootCmd.AddCommand(newShellCmd(s))

	return rootCmd
}

// Run executes the command line in args and returns the process exit code
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}

	s := newSession(cfg, stdout, stderr)
	root := newRootCmd(s)
	root.SetArgs(args)
	root.SetIn(stdin)

	runErr := root.ExecuteContext(ctx)
	if runErr != nil {
		s.out.PrintError(runErr)
	}
	if err := s.close(); err != nil {
		s.out.PrintError(fmt.Errorf("close storage: %w", err))
	}

	if runErr != nil {
		return 1
	}
	return 0
}

// Execute runs the root command
func Execute() {
	os.Exit(Run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
