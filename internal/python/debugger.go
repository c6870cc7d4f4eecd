package python

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Breakpoint marks a line. Setting a breakpoint on a line that already has
// one returns the existing breakpoint.
type Breakpoint struct {
	ID      string
	Line    int
	Enabled bool
}

type Variable struct {
	Name  string
	Value string
	Type  string
}

type StackFrame struct {
	ID       string
	Name     string
	Line     int
	Filename string
}

// DebugState is a snapshot of the session. CurrentLine is 0 when no line is
// current.
type DebugState struct {
	IsRunning   bool
	CurrentLine int
	Variables   []Variable
	StackFrames []StackFrame
	Breakpoints []Breakpoint
}

func (s DebugState) clone() DebugState {
	c := s
	c.Variables = append([]Variable(nil), s.Variables...)
	c.StackFrames = append([]StackFrame(nil), s.StackFrames...)
	c.Breakpoints = append([]Breakpoint(nil), s.Breakpoints...)
	return c
}

var sampleVariables = []Variable{
	{Name: "x", Value: "10", Type: "int"},
	{Name: "y", Value: "'hello'", Type: "str"},
	{Name: "items", Value: "[1, 2, 3]", Type: "list"},
}

var sampleFrames = []StackFrame{
	{ID: "1", Name: "<module>", Line: 1, Filename: "main.py"},
	{ID: "2", Name: "process_data", Line: 5, Filename: "main.py"},
}

// Debugger simulates a stepping session. It walks the buffer line by line
// and pauses at the first enabled breakpoint; variables and frames are
// fixed samples.
type Debugger struct {
	delay  time.Duration
	logger *zap.Logger

	mu        sync.Mutex
	state     DebugState
	cancel    context.CancelFunc
	nextSub   int
	listeners map[int]func(DebugState)
}

func NewDebugger(stepDelay time.Duration, logger *zap.Logger) *Debugger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Debugger{
		delay:     stepDelay,
		logger:    logger,
		listeners: make(map[int]func(DebugState)),
	}
}

func (d *Debugger) State() DebugState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state.clone()
}

// Subscribe registers fn for every state change.
func (d *Debugger) Subscribe(fn func(DebugState)) (unsubscribe func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.nextSub
	d.nextSub++
	d.listeners[id] = fn
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		delete(d.listeners, id)
	}
}

func (d *Debugger) update(fn func(st *DebugState) bool) {
	d.mu.Lock()
	if !fn(&d.state) {
		d.mu.Unlock()
		return
	}
	snap := d.state.clone()
	listeners := make([]func(DebugState), 0, len(d.listeners))
	for _, l := range d.listeners {
		listeners = append(listeners, l)
	}
	d.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}

// --- Breakpoints ---

func (d *Debugger) SetBreakpoint(line int) Breakpoint {
	var bp Breakpoint
	d.update(func(st *DebugState) bool {
		for _, existing := range st.Breakpoints {
			if existing.Line == line {
				bp = existing
				return false
			}
		}
		bp = Breakpoint{ID: uuid.NewString()[:8], Line: line, Enabled: true}
		st.Breakpoints = append(st.Breakpoints, bp)
		sort.Slice(st.Breakpoints, func(i, j int) bool { return st.Breakpoints[i].Line < st.Breakpoints[j].Line })
		return true
	})
	return bp
}

func (d *Debugger) RemoveBreakpoint(line int) {
	d.update(func(st *DebugState) bool {
		kept := st.Breakpoints[:0:0]
		for _, bp := range st.Breakpoints {
			if bp.Line != line {
				kept = append(kept, bp)
			}
		}
		st.Breakpoints = kept
		return true
	})
}

// ToggleBreakpoint flips the enabled flag of the breakpoint on line, if any.
func (d *Debugger) ToggleBreakpoint(line int) {
	d.update(func(st *DebugState) bool {
		for i := range st.Breakpoints {
			if st.Breakpoints[i].Line == line {
				st.Breakpoints[i].Enabled = !st.Breakpoints[i].Enabled
				return true
			}
		}
		return false
	})
}

func (d *Debugger) Breakpoints() []Breakpoint {
	return d.State().Breakpoints
}

// HasBreakpointAt reports whether an enabled breakpoint is set on line.
func (d *Debugger) HasBreakpointAt(line int) bool {
	for _, bp := range d.Breakpoints() {
		if bp.Line == line && bp.Enabled {
			return true
		}
	}
	return false
}

// --- Session ---

// Start walks code one line per step delay until it reaches an enabled
// breakpoint, the end of the code, Stop, or ctx cancellation. It blocks for
// the duration of the walk.
func (d *Debugger) Start(ctx context.Context, code string) {
	ctx, cancel := context.WithCancel(ctx)
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	d.cancel = cancel
	d.mu.Unlock()
	defer cancel()

	lines := len(splitLines(code))
	d.logger.Debug("debug session started", zap.Int("lines", lines))

	d.update(func(st *DebugState) bool {
		st.IsRunning = true
		st.CurrentLine = 1
		st.Variables = append([]Variable(nil), sampleVariables...)
		st.StackFrames = append([]StackFrame(nil), sampleFrames...)
		return true
	})

	for i := 1; i <= lines; i++ {
		if ctx.Err() != nil || !d.State().IsRunning {
			return
		}

		hit := false
		d.update(func(st *DebugState) bool {
			st.CurrentLine = i
			for _, bp := range st.Breakpoints {
				if bp.Line == i && bp.Enabled {
					hit = true
					st.IsRunning = false
				}
			}
			return true
		})
		if hit {
			d.logger.Debug("breakpoint hit", zap.Int("line", i))
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(d.delay):
		}
	}
}

// Stop ends the session and clears the current line, variables and frames.
// Breakpoints are kept.
func (d *Debugger) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.update(func(st *DebugState) bool {
		st.IsRunning = false
		st.CurrentLine = 0
		st.Variables = nil
		st.StackFrames = nil
		return true
	})
}

func (d *Debugger) step() {
	d.update(func(st *DebugState) bool {
		if st.CurrentLine == 0 {
			return false
		}
		st.CurrentLine++
		return true
	})
}

func (d *Debugger) StepOver() { d.step() }
func (d *Debugger) StepInto() { d.step() }
func (d *Debugger) StepOut()  { d.step() }

// Continue marks the session running and clears the current line.
func (d *Debugger) Continue() {
	d.update(func(st *DebugState) bool {
		st.IsRunning = true
		st.CurrentLine = 0
		return true
	})
}

// Evaluate returns the sample value of a known variable, or the expression
// in angle brackets.
func (d *Debugger) Evaluate(expr string) string {
	for _, v := range sampleVariables {
		if v.Name == expr {
			return v.Value
		}
	}
	return "<" + expr + ">"
}
