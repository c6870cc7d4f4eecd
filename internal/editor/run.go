package editor

import (
	"context"
	"strings"

	"github.com/Cyclone1070/codecollab/internal/execution"
	"go.uber.org/zap"
)

// executor runs code remotely.
type executor interface {
	Execute(ctx context.Context, code, language, stdin string) (*execution.Result, error)
	ExecutePython(ctx context.Context, code string, packages []string, stdin string) (*execution.Result, error)
}

// RunOptions are the per-run inputs from the terminal panel.
type RunOptions struct {
	Stdin    string
	Packages []string
}

// RunActive executes the active tab's buffer and records the outcome. It
// blocks for the duration of the request. It returns false when there is no
// active tab or when a newer run superseded this one.
func (s *Store) RunActive(ctx context.Context, exec executor, opts RunOptions) bool {
	tab, ok := s.State().ActiveTab()
	if !ok {
		return false
	}

	gen := s.BeginRun()

	var (
		result *execution.Result
		err    error
	)
	if strings.EqualFold(tab.Language, "python") && len(opts.Packages) > 0 {
		result, err = exec.ExecutePython(ctx, tab.Content, opts.Packages, opts.Stdin)
	} else {
		result, err = exec.Execute(ctx, tab.Content, tab.Language, opts.Stdin)
	}
	if err != nil {
		s.logger.Warn("run failed",
			zap.String("file", tab.FileName),
			zap.String("language", tab.Language),
			zap.Error(err))
		result = execution.FailedResult(tab.Language, err)
	}

	return s.FinishRun(gen, result, err)
}
