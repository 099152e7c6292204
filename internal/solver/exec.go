// Package solver runs an external two-phase solver program.
package solver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"
	log "github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubecode"
)

// ErrNoCommand is returned when no solver command is configured.
var ErrNoCommand = errors.New("solver: no command configured")

// Exec calls a solver program as
//
//	<command...> <code> <max-steps>
//
// and parses its standard output with cubecode.ParseSolverOutput.
type Exec struct {
	argv    []string
	timeout time.Duration
	dir     string
}

// Option configures an Exec solver.
type Option func(*Exec)

// WithTimeout bounds each solver run. Zero means no limit beyond the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(e *Exec) {
		e.timeout = d
	}
}

// WithDir sets the working directory of the solver process.
// Solvers that cache pruning tables next to themselves need this.
func WithDir(dir string) Option {
	return func(e *Exec) {
		e.dir = dir
	}
}

// New parses command with shell quoting rules and returns a solver.
func New(command string, opts ...Option) (*Exec, error) {
	argv, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("failed to parse solver command: %w", err)
	}
	if len(argv) == 0 {
		return nil, ErrNoCommand
	}

	e := &Exec{argv: argv}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Command returns the parsed program and arguments.
func (e *Exec) Command() []string {
	return append([]string(nil), e.argv...)
}

// Solve implements cubecode.Solver.
func (e *Exec) Solve(ctx context.Context, code string, maxSteps int) (cubecode.Solution, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	args := append(e.argv[1:len(e.argv):len(e.argv)], code, strconv.Itoa(maxSteps))
	cmd := exec.CommandContext(ctx, e.argv[0], args...)
	cmd.Dir = e.dir
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger := log.WithFields(log.Fields{"solver": e.argv[0], "code": code, "max_steps": maxSteps})
	logger.Debug("running solver")

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return cubecode.Solution{}, fmt.Errorf("solver did not finish: %w", ctxErr)
	}

	sol, err := cubecode.ParseSolverOutput(stdout.String())
	var solverErr *cubecode.SolverError
	if errors.As(err, &solverErr) {
		logger.WithField("error_code", solverErr.Code).Debug("solver reported error")
		return sol, err
	}
	if runErr != nil {
		msg := strings.TrimSpace(stderr.String())
		return cubecode.Solution{}, fmt.Errorf("solver failed: %w: %s", runErr, msg)
	}
	if err != nil {
		return cubecode.Solution{}, err
	}

	if sol.Info == "" {
		sol.Info = fmt.Sprintf("solved in %s", elapsed.Round(time.Millisecond))
	}
	logger.WithFields(log.Fields{"moves": len(sol.Moves), "elapsed": elapsed}).Debug("solver finished")
	return sol, nil
}

var _ cubecode.Solver = (*Exec)(nil)
