package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Cyclone1070/codecollab/internal/execution"
	"github.com/Cyclone1070/codecollab/internal/python"
	"github.com/Cyclone1070/codecollab/internal/workspace"
	"github.com/spf13/cobra"
)

// ExitError reports a run or lint that finished but failed.
type ExitError struct {
	Code   int
	Reason string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s (exit code %d)", e.Reason, e.Code)
}

func findFile(a *app, path string) (*workspace.FileNode, error) {
	n, ok := a.files.FindByPath(path)
	if !ok {
		return nil, fmt.Errorf("no such file: %s", path)
	}
	if n.IsFolder() {
		return nil, fmt.Errorf("%s is a folder", path)
	}
	return n, nil
}

func newListCommand(e env) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List the files in the workspace",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.withApp(cmd, func(a *app) error {
				out := cmd.OutOrStdout()
				a.files.Walk(func(path string, n *workspace.FileNode) bool {
					if n.IsFolder() {
						fmt.Fprintln(out, path+"/")
					} else {
						fmt.Fprintln(out, path)
					}
					return true
				})
				return nil
			})
		},
	}
}

func newCatCommand(e env) *cobra.Command {
	return &cobra.Command{
		Use:   "cat <path>",
		Short: "Print a workspace file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.withApp(cmd, func(a *app) error {
				n, err := findFile(a, args[0])
				if err != nil {
					return err
				}
				content := n.ContentString()
				fmt.Fprint(cmd.OutOrStdout(), content)
				if content != "" && !strings.HasSuffix(content, "\n") {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				return nil
			})
		},
	}
}

func newRunCommand(e env) *cobra.Command {
	var (
		stdin    string
		packages []string
	)
	cmd := &cobra.Command{
		Use:   "run <path>",
		Short: "Execute a workspace file on the execution service",
		Long: `Execute a workspace file on the execution service and print the
transcript the terminal panel would show.

Examples:
  codecollab run src/main.py
  codecollab run src/main.py --stdin "3\n4"
  codecollab run analysis.py --package numpy --package pandas`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.withApp(cmd, func(a *app) error {
				n, err := findFile(a, args[0])
				if err != nil {
					return err
				}
				lang := n.LanguageString()
				input := strings.ReplaceAll(stdin, `\n`, "\n")

				var result *execution.Result
				if strings.EqualFold(lang, "python") && len(packages) > 0 {
					result, err = a.exec.ExecutePython(cmd.Context(), n.ContentString(), packages, input)
				} else {
					result, err = a.exec.Execute(cmd.Context(), n.ContentString(), lang, input)
				}
				if err != nil {
					var unsupported *execution.UnsupportedLanguageError
					if errors.As(err, &unsupported) {
						return err
					}
					result = execution.FailedResult(lang, err)
				}

				fmt.Fprint(cmd.OutOrStdout(), execution.PlainTranscript(result, false))
				if !result.Succeeded() {
					code := result.Run.ExitStatus()
					if c := result.Compile; c != nil && c.Failed() {
						code = c.ExitStatus()
					}
					return &ExitError{Code: code, Reason: "run failed"}
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&stdin, "stdin", "", `program input; \n starts a new line`)
	cmd.Flags().StringArrayVar(&packages, "package", nil, "python package to import before running (repeatable)")
	return cmd
}

func newRuntimesCommand(e env) *cobra.Command {
	return &cobra.Command{
		Use:   "runtimes",
		Short: "List the runtimes of the execution service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.withApp(cmd, func(a *app) error {
				runtimes, err := a.exec.Runtimes(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list runtimes: %w", err)
				}
				out := cmd.OutOrStdout()
				for _, r := range runtimes {
					line := r.Language + " " + r.Version
					if len(r.Aliases) > 0 {
						line += " (" + strings.Join(r.Aliases, ", ") + ")"
					}
					fmt.Fprintln(out, line)
				}
				return nil
			})
		},
	}
}

func newLintCommand(e env) *cobra.Command {
	return &cobra.Command{
		Use:   "lint <path>",
		Short: "Lint a Python file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.withApp(cmd, func(a *app) error {
				n, err := findFile(a, args[0])
				if err != nil {
					return err
				}
				if !strings.EqualFold(n.LanguageString(), "python") {
					return fmt.Errorf("%s is not a Python file", args[0])
				}
				diags := python.Lint(n.ContentString())
				out := cmd.OutOrStdout()
				if len(diags) == 0 {
					fmt.Fprintln(out, "No problems")
					return nil
				}
				errs := 0
				for _, d := range diags {
					fmt.Fprintf(out, "%s:%s\n", args[0], d)
					if d.Severity == python.SeverityError {
						errs++
					}
				}
				if errs > 0 {
					return &ExitError{Code: 1, Reason: fmt.Sprintf("%d errors", errs)}
				}
				return nil
			})
		},
	}
}

func newResetCommand(e env) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace the workspace with the default files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("reset discards every file; pass --yes to confirm")
			}
			return e.withApp(cmd, func(a *app) error {
				a.files.Reset()
				fmt.Fprintln(cmd.OutOrStdout(), "✓ Workspace reset")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of codecollab",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "codecollab version %s\n", version)
		},
	}
}
