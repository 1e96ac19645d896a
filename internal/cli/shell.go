package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/spf13/cobra"
)

var errNestedShell = errors.New("already in a shell")

func newShellCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run commands read line by line from standard input",
		Long: `Run commands read line by line from standard input against one session.

Each line is a command as it would follow "compete" on the command line,
for example: player add "Ann Lee". Errors are reported and the shell
carries on. Blank lines and lines starting with # are skipped; "exit" or
end of input stops the shell.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" || strings.HasPrefix(line, "#") {
					continue
				}
				if line == "exit" || line == "quit" {
					return nil
				}

				if err := s.runLine(cmd, line); err != nil {
					s.out.PrintError(err)
				}
			}
			return scanner.Err()
		},
	}
}

// runLine dispatches one shell line through a fresh command tree bound to
// the same session
func (s *session) runLine(parent *cobra.Command, line string) error {
	args, err := parseLine(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}
	if args[0] == "shell" {
		return errNestedShell
	}

	// Flags given on one line must not leak into the next
	saved := *s.cfg
	defer func() {
		*s.cfg = saved
		s.out = NewOutput(s.cfg.Output, s.stdout, s.stderr)
	}()

	root := newRootCmd(s)
	root.SetArgs(args)
	root.SetIn(parent.InOrStdin())
	return root.ExecuteContext(parent.Context())
}

// parseLine splits a line into words the way a POSIX shell would, without
// expanding variables or running substitutions. Operators such as ; and |
// are rejected since each line runs exactly one command.
func parseLine(line string) ([]string, error) {
	parser := shellwords.NewParser()
	args, err := parser.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("parse line: %w", err)
	}
	if parser.Position != -1 {
		// Position counts runes, not bytes
		return nil, fmt.Errorf("unsupported shell operator %q", []rune(line)[parser.Position])
	}
	return args, nil
}
