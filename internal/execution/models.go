package execution

// File is one source file submitted for execution.
type File struct {
	Name    string `json:"name,omitempty"`
	Content string `json:"content"`
}

// Request is the body posted to the execute endpoint.
type Request struct {
	Language           string   `json:"language"`
	Version            string   `json:"version"`
	Files              []File   `json:"files"`
	Stdin              string   `json:"stdin"`
	Args               []string `json:"args,omitempty"`
	CompileTimeout     int      `json:"compile_timeout"`
	RunTimeout         int      `json:"run_timeout"`
	CompileMemoryLimit int64    `json:"compile_memory_limit"`
	RunMemoryLimit     int64    `json:"run_memory_limit"`
}

// Stage is the outcome of the compile or run step. A process killed by a
// signal reports a null code, which decodes as 0, and a non-nil Signal.
type Stage struct {
	Stdout string  `json:"stdout"`
	Stderr string  `json:"stderr"`
	Code   int     `json:"code"`
	Signal *string `json:"signal"`
	Output string  `json:"output"`
}

// Failed reports a non-zero exit or termination by a signal.
func (s Stage) Failed() bool {
	return s.Code != 0 || s.Signal != nil
}

// ExitStatus is the process status to propagate: the exit code, or 1 for a
// stage killed by a signal.
func (s Stage) ExitStatus() int {
	if s.Code == 0 && s.Signal != nil {
		return 1
	}
	return s.Code
}

// Result is the service response. Compile is present only for compiled
// languages.
type Result struct {
	Language string `json:"language"`
	Version  string `json:"version"`
	Run      Stage  `json:"run"`
	Compile  *Stage `json:"compile,omitempty"`
}

// Succeeded reports whether every stage exited with code 0 on its own.
func (r *Result) Succeeded() bool {
	if r.Compile != nil && r.Compile.Failed() {
		return false
	}
	return !r.Run.Failed()
}

// Runtime is one entry of the runtimes listing.
type Runtime struct {
	Language string   `json:"language"`
	Version  string   `json:"version"`
	Aliases  []string `json:"aliases"`
	Runtime  string   `json:"runtime,omitempty"`
}

// FailedResult is what a failed invocation displays: exit code 1 with the
// error message as stderr.
func FailedResult(language string, err error) *Result {
	msg := err.Error()
	return &Result{
		Language: language,
		Run: Stage{
			Stderr: msg,
			Code:   1,
			Output: msg,
		},
	}
}
