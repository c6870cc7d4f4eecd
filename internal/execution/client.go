// Package execution submits source code to a remote Piston-compatible
// execution service. The client is stateless per call: callers track which
// run is current.
package execution

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Cyclone1070/codecollab/internal/config"
	"go.uber.org/zap"
)

// Limits are the timeouts (ms) and memory ceilings (bytes, -1 unrestricted)
// sent with each request.
type Limits struct {
	CompileTimeout     int
	RunTimeout         int
	CompileMemoryLimit int64
	RunMemoryLimit     int64
}

// Client talks to the execution service.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	limits        Limits
	pythonLimits  Limits
	allowedImport map[string]string
	logger        *zap.Logger
}

// NewClient builds a Client from cfg. A nil httpClient gets one with the
// configured request timeout.
func NewClient(cfg *config.Config, httpClient *http.Client, logger *zap.Logger) *Client {
	if cfg == nil {
		panic("cfg is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: time.Duration(cfg.Execution.RequestTimeoutMs) * time.Millisecond,
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.Execution.BaseURL, "/"),
		httpClient: httpClient,
		limits: Limits{
			CompileTimeout:     cfg.Execution.CompileTimeoutMs,
			RunTimeout:         cfg.Execution.RunTimeoutMs,
			CompileMemoryLimit: cfg.Execution.CompileMemoryLimit,
			RunMemoryLimit:     cfg.Execution.RunMemoryLimit,
		},
		pythonLimits: Limits{
			CompileTimeout:     cfg.Python.CompileTimeoutMs,
			RunTimeout:         cfg.Python.RunTimeoutMs,
			CompileMemoryLimit: cfg.Python.CompileMemoryLimit,
			RunMemoryLimit:     cfg.Python.RunMemoryLimit,
		},
		allowedImport: allowList(cfg.Python.AllowedPackages),
		logger:        logger,
	}
}

// Execute runs code as language. stdin always reaches the service with a
// trailing newline.
func (c *Client) Execute(ctx context.Context, code, language, stdin string) (*Result, error) {
	return c.execute(ctx, code, language, stdin, c.limits)
}

func (c *Client) execute(ctx context.Context, code, language, stdin string, limits Limits) (*Result, error) {
	spec, ok := LanguageInfo(language)
	if !ok {
		return nil, &UnsupportedLanguageError{Language: language}
	}

	req := Request{
		Language:           spec.Runtime,
		Version:            spec.Version,
		Files:              []File{{Name: "main." + spec.Extension, Content: code}},
		Stdin:              normalizeStdin(stdin),
		CompileTimeout:     limits.CompileTimeout,
		RunTimeout:         limits.RunTimeout,
		CompileMemoryLimit: limits.CompileMemoryLimit,
		RunMemoryLimit:     limits.RunMemoryLimit,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, &RequestError{Cause: err}
	}

	var result Result
	if err := c.do(ctx, http.MethodPost, "/execute", bytes.NewReader(body), &result); err != nil {
		c.logger.Warn("code execution failed",
			zap.String("language", language),
			zap.Error(err))
		return nil, err
	}

	c.logger.Info("code executed",
		zap.String("language", result.Language),
		zap.String("version", result.Version),
		zap.Int("exit_code", result.Run.Code),
		zap.Stringp("signal", result.Run.Signal))
	return &result, nil
}

// Runtimes lists the runtimes the service reports.
func (c *Client) Runtimes(ctx context.Context) ([]Runtime, error) {
	var runtimes []Runtime
	if err := c.do(ctx, http.MethodGet, "/runtimes", nil, &runtimes); err != nil {
		return nil, err
	}
	return runtimes, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &RequestError{Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NoResponseError{Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NoResponseError{Cause: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &DecodeError{Cause: err}
	}
	return nil
}

// errorMessage extracts {"message": "..."} from an error body, falling back
// to the trimmed body text.
func errorMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return strings.TrimSpace(string(data))
}

func normalizeStdin(stdin string) string {
	if strings.HasSuffix(stdin, "\n") {
		return stdin
	}
	return stdin + "\n"
}
