// Package main is the codecollab entry point. Without a subcommand it opens
// the terminal IDE; the subcommands work on the same persisted workspace.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Cyclone1070/codecollab/internal/config"
	"github.com/Cyclone1070/codecollab/internal/editor"
	"github.com/Cyclone1070/codecollab/internal/execution"
	"github.com/Cyclone1070/codecollab/internal/extensions"
	"github.com/Cyclone1070/codecollab/internal/logging"
	"github.com/Cyclone1070/codecollab/internal/preview"
	"github.com/Cyclone1070/codecollab/internal/python"
	"github.com/Cyclone1070/codecollab/internal/scm"
	"github.com/Cyclone1070/codecollab/internal/search"
	"github.com/Cyclone1070/codecollab/internal/storage"
	"github.com/Cyclone1070/codecollab/internal/ui"
	"github.com/Cyclone1070/codecollab/internal/workspace"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set during build with -ldflags
var version = "dev"

// app holds what every command needs. Close releases the database.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	blobs  storage.BlobStore
	files  *workspace.Store
	exec   *execution.Client
	close  func() error
}

func (a *app) Close() error {
	_ = a.logger.Sync()
	if a.close == nil {
		return nil
	}
	return a.close()
}

// env builds apps. Tests swap both functions.
type env struct {
	loadConfig func() (*config.Config, error)
	open       func(cfg *config.Config) (*app, error)
}

func defaultEnv() env {
	return env{loadConfig: config.Load, open: openApp}
}

func openApp(cfg *config.Config) (*app, error) {
	logger, err := logging.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise logging: %w", err)
	}
	timeout := time.Duration(cfg.Storage.OpenTimeoutMs) * time.Millisecond
	db, err := storage.Open(cfg.DBPath(), cfg.Storage.Bucket, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to open workspace database: %w", err)
	}
	return &app{
		cfg:    cfg,
		logger: logger,
		blobs:  db,
		files:  workspace.NewStore(db, cfg.Storage.FilesKey, logger),
		exec:   execution.NewClient(cfg, nil, logger),
		close:  db.Close,
	}, nil
}

// withApp loads the configuration, applies the persistent flags and runs fn
// with an open app.
func (e env) withApp(cmd *cobra.Command, fn func(a *app) error) error {
	cfg, err := e.loadConfig()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to load config: %v\n", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "Using default configuration.\n")
		cfg = config.DefaultConfig()
	}
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		cfg.Storage.DataDir = dir
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a, err := e.open(cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func newRootCmd(e env) *cobra.Command {
	root := &cobra.Command{
		Use:   "codecollab",
		Short: "A terminal code editor with remote execution",
		Long: `codecollab is a terminal IDE. Files live in a local workspace database,
code runs on a remote execution service, and Python files get linting,
formatting, completion and a step debugger.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.withApp(cmd, runTUI)
		},
	}
	root.PersistentFlags().String("data-dir", "", "directory holding the workspace database and log")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newListCommand(e),
		newCatCommand(e),
		newRunCommand(e),
		newRuntimesCommand(e),
		newLintCommand(e),
		newResetCommand(e),
		newVersionCommand(),
	)
	return root
}

func runTUI(a *app) error {
	cfg, logger := a.cfg, a.logger

	repo, err := scm.Open(logger.Named("scm"))
	if err != nil {
		return fmt.Errorf("failed to initialise source control: %w", err)
	}

	store := editor.NewStore(a.files, cfg, logger.Named("editor"))
	md := preview.NewGlamourRenderer(store.State().Theme)

	u := ui.New(ui.Dependencies{
		Config:     cfg,
		Store:      store,
		Executor:   a.exec,
		Searcher:   search.NewSearcher(cfg),
		SCM:        repo,
		Extensions: extensions.NewRegistry(a.blobs, cfg.Storage.ExtensionsKey, logger.Named("extensions")),
		Debugger:   python.NewDebugger(time.Duration(cfg.Debug.StepDelayMs)*time.Millisecond, logger.Named("debugger")),
		Previewer:  preview.NewPreviewer(md),
		Spinner: func() spinner.Model {
			return spinner.New(spinner.WithSpinner(spinner.Dot))
		},
		Logger: logger.Named("ui"),
	})

	logger.Info("starting ui", zap.String("db", cfg.DBPath()))
	if err := u.Start(); err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}
	return nil
}

func main() {
	if err := execute(defaultEnv(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

func execute(e env, args []string, stdout, stderr io.Writer) error {
	root := newRootCmd(e)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.Execute()
}
