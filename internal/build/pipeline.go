// Package build supervises the sequential build pipeline: each step spawns a
// child process, waits for it within a budget, and the pipeline stops at the
// first failure. Steps depend on the previous step's filesystem effects, so
// there is no concurrency, no retry, and no rollback.
package build

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// State of a single pipeline step.
type State string

const (
	Pending State = "pending"
	Running State = "running"
	Passed  State = "passed"
	Failed  State = "failed"
)

// Step is one external command in the pipeline. Func, when set, runs
// in-process instead of spawning (used for the final verify phase).
type Step struct {
	Name    string
	Argv    []string
	Dir     string
	Timeout time.Duration

	Func func(ctx context.Context) error
}

// StepResult records the terminal state of a step.
type StepResult struct {
	Name    string        `json:"name"`
	State   State         `json:"state"`
	Output  string        `json:"output,omitempty"`
	Err     string        `json:"error,omitempty"`
	Elapsed time.Duration `json:"elapsed_ns"`
}

// Commander spawns a command and returns its combined output. Injected so
// tests can fake process execution.
type Commander func(ctx context.Context, dir string, argv []string) ([]byte, error)

func execCommander(ctx context.Context, dir string, argv []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// Pipeline runs its steps strictly in order and short-circuits on the first
// failure; skipped steps stay Pending in the returned results.
type Pipeline struct {
	Steps  []Step
	Exec   Commander
	Logger *zap.Logger
}

func NewPipeline(logger *zap.Logger, steps []Step) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{Steps: steps, Exec: execCommander, Logger: logger}
}

// Run executes the pipeline. ok is true iff every step passed.
func (p *Pipeline) Run(ctx context.Context) (results []StepResult, ok bool) {
	results = make([]StepResult, len(p.Steps))
	for i, s := range p.Steps {
		results[i] = StepResult{Name: s.Name, State: Pending}
	}
	for i, s := range p.Steps {
		results[i] = p.runStep(ctx, s)
		if results[i].State != Passed {
			return results, false
		}
	}
	return results, true
}

func (p *Pipeline) runStep(ctx context.Context, s Step) StepResult {
	res := StepResult{Name: s.Name, State: Running}
	p.Logger.Info("step_start", zap.String("step", s.Name), zap.Strings("argv", s.Argv))

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	sctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	var out []byte
	var err error
	if s.Func != nil {
		err = s.Func(sctx)
	} else {
		out, err = p.Exec(sctx, s.Dir, s.Argv)
	}
	res.Elapsed = time.Since(start)
	res.Output = strings.TrimSpace(string(out))

	if err != nil {
		res.State = Failed
		res.Err = err.Error()
		if errors.Is(sctx.Err(), context.DeadlineExceeded) {
			res.Err = "timed out after " + timeout.String()
		}
		p.Logger.Warn("step_failed",
			zap.String("step", s.Name),
			zap.String("error", res.Err),
			zap.Duration("elapsed", res.Elapsed),
		)
		return res
	}

	res.State = Passed
	p.Logger.Info("step_passed", zap.String("step", s.Name), zap.Duration("elapsed", res.Elapsed))
	return res
}

// Railway is the default pipeline for the hosting platform's build image:
// clean, install, build, then an in-process readiness verify supplied by the
// caller.
func Railway(dir string, timeout time.Duration, verify func(ctx context.Context) error) []Step {
	return []Step{
		{Name: "clean", Argv: []string{"npm", "run", "clean", "--if-present"}, Dir: dir, Timeout: timeout},
		{Name: "install", Argv: []string{"npm", "ci"}, Dir: dir, Timeout: timeout},
		{Name: "build", Argv: []string{"npm", "run", "build"}, Dir: dir, Timeout: timeout},
		{Name: "verify", Dir: dir, Timeout: timeout, Func: verify},
	}
}
