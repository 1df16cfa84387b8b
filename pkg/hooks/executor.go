package hooks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/vanderheijden86/podgraph/pkg/debug"
)

// maxSummaryStderr bounds the stderr shown per failed hook in Summary.
const maxSummaryStderr = 200

// Result is the outcome of one hook run.
type Result struct {
	Hook     Hook
	Phase    Phase
	Success  bool
	Stdout   string
	Stderr   string
	Err      error
	Duration time.Duration
}

// Executor runs the configured hooks for one export.
type Executor struct {
	config  *Config
	export  ExportContext
	results []Result
}

// NewExecutor returns an executor for cfg and export.
func NewExecutor(cfg *Config, export ExportContext) *Executor {
	if cfg == nil {
		cfg = &Config{}
	}
	return &Executor{config: cfg, export: export}
}

// Run loads hooks from dir and returns an executor, or nil when hooks are
// disabled or none are configured.
func Run(dir string, export ExportContext, disabled bool) (*Executor, []string, error) {
	if disabled {
		return nil, nil, nil
	}
	cfg, warnings, err := Load(dir)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Empty() {
		return nil, warnings, nil
	}
	return NewExecutor(cfg, export), warnings, nil
}

// RunPreExport runs pre-export hooks, stopping at the first failure whose
// policy is fail.
func (e *Executor) RunPreExport(ctx context.Context) error {
	return e.runPhase(ctx, PreExport)
}

// RunPostExport runs every post-export hook and returns the failures of
// hooks whose policy is fail.
func (e *Executor) RunPostExport(ctx context.Context) error {
	return e.runPhase(ctx, PostExport)
}

func (e *Executor) runPhase(ctx context.Context, phase Phase) error {
	var errs []error
	for _, h := range e.config.For(phase) {
		res := e.runHook(ctx, h, phase)
		e.results = append(e.results, res)
		if res.Success || h.OnError != OnErrorFail {
			continue
		}
		err := fmt.Errorf("%s hook %q: %w", phase, h.Name, res.Err)
		if phase == PreExport {
			return err
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (e *Executor) runHook(parent context.Context, h Hook, phase Phase) Result {
	ctx, cancel := context.WithTimeout(parent, h.Timeout)
	defer cancel()

	env := append(os.Environ(), e.export.ToEnv()...)
	lookup := envLookup(env)
	for k, v := range h.Env {
		env = append(env, k+"="+os.Expand(v, lookup))
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", h.Command)
	cmd.Env = env
	cmd.WaitDelay = time.Second
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res := Result{
		Hook:     h,
		Phase:    phase,
		Stdout:   strings.TrimSpace(stdout.String()),
		Stderr:   strings.TrimSpace(stderr.String()),
		Duration: time.Since(start),
	}
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		res.Err = fmt.Errorf("timed out after %s", h.Timeout)
	case err != nil:
		res.Err = err
	default:
		res.Success = true
	}
	debug.Log("hook %s (%s) success=%v in %s", h.Name, phase, res.Success, res.Duration)
	return res
}

// envLookup resolves variables against env, later entries winning.
func envLookup(env []string) func(string) string {
	m := make(map[string]string, len(env))
	for _, kv := range env {
		if k, v, ok := strings.Cut(kv, "="); ok {
			m[k] = v
		}
	}
	return func(k string) string { return m[k] }
}

// Results returns every run so far in order.
func (e *Executor) Results() []Result {
	return append([]Result(nil), e.results...)
}

// Summary is a human-readable report of the runs.
func (e *Executor) Summary() string {
	if len(e.results) == 0 {
		return "no hooks ran"
	}
	var sb strings.Builder
	failed := 0
	for _, r := range e.results {
		mark := "✓"
		if !r.Success {
			mark = "✗"
			failed++
		}
		fmt.Fprintf(&sb, "%s %s [%s] %s\n", mark, r.Hook.Name, r.Phase, r.Duration.Round(time.Millisecond))
		if !r.Success {
			fmt.Fprintf(&sb, "    error: %v\n", r.Err)
			if r.Stderr != "" {
				msg := r.Stderr
				if len(msg) > maxSummaryStderr {
					msg = msg[:maxSummaryStderr] + "..."
				}
				fmt.Fprintf(&sb, "    stderr: %s\n", msg)
			}
		}
	}
	fmt.Fprintf(&sb, "%d hook(s), %d failed", len(e.results), failed)
	return sb.String()
}
