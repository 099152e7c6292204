package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubecode"
	"github.com/SeamusWaldron/cubecode/internal/solver"
	"github.com/SeamusWaldron/cubecode/internal/storage"
)

var (
	solveTimeout  time.Duration
	solveNoRecord bool
	solveRemember bool
	historyLimit  int
)

var solveCmd = &cobra.Command{
	Use:   "solve [code|-]",
	Short: "Hand a code to the external solver",
	Long: `Send a code and the step limit to the configured two-phase solver and
print the solution. The solver is run as

  <solver command> <code> <max-steps>

and must print the moves, or "Error N", on its first line. The numbered
errors are passed through unchanged; see 'cubecode errors'.

Every attempt is recorded in the database unless --no-record is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSolve,
}

var historyCmd = &cobra.Command{
	Use:   "history [code]",
	Short: "List recorded solver attempts",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(solveCmd, historyCmd)

	solveCmd.Flags().DurationVar(&solveTimeout, "timeout", 30*time.Second, "Time limit for the solver process")
	solveCmd.Flags().BoolVar(&solveNoRecord, "no-record", false, "Do not record the attempt")
	solveCmd.Flags().BoolVar(&solveRemember, "remember", false, "Save --solver and --max-steps as defaults")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of attempts to show")
}

func runSolve(cmd *cobra.Command, args []string) error {
	code, err := readCode(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	command := getSolverCommand()
	s, err := solver.New(command, solver.WithTimeout(solveTimeout))
	if errors.Is(err, solver.ErrNoCommand) {
		return fmt.Errorf("%w (use --solver or --remember)", err)
	}
	if err != nil {
		return err
	}

	steps := getMaxSteps()
	if solveRemember && stateFile != nil {
		if err := stateFile.SetSolver(command, steps); err != nil {
			log.WithError(err).Warn("failed to save solver settings")
		}
	}

	if !cubecode.BalancedColors(code) {
		log.WithField("counts", cubecode.CountColors(code)).Warn("color counts are not nine each")
	}

	start := time.Now()
	sol, solveErr := cubecode.SubmitCode(cmd.Context(), s, code, steps)
	log.WithFields(log.Fields{
		"code":     code,
		"steps":    steps,
		"duration": time.Since(start),
	}).Debug("solver finished")

	rememberCode(code)
	if !solveNoRecord {
		recordAttempt(code, steps, sol, solveErr)
	}

	if solveErr != nil {
		return solveErr
	}

	out := cmd.OutOrStdout()
	if len(sol.Moves) == 0 {
		fmt.Fprintln(out, moveStyle.Render("already solved"))
		return nil
	}
	fmt.Fprintln(out, sol.String())
	fmt.Fprintln(out, statusStyle.Render(fmt.Sprintf("%d moves", len(sol.Moves))))
	if sol.Info != "" {
		fmt.Fprintln(out, statusStyle.Render(sol.Info))
	}

	from, err := cubecode.Parse(code)
	if err != nil {
		return err
	}
	if !sol.Verify(from) {
		fmt.Fprintln(out, errorStyle.Render("warning: solution does not solve the cube"))
	}
	return nil
}

// recordAttempt stores an attempt. Storage problems never fail the solve.
func recordAttempt(code string, steps int, sol cubecode.Solution, solveErr error) {
	if errors.Is(solveErr, context.Canceled) || errors.Is(solveErr, cubecode.ErrInvalidStepLimit) {
		return
	}
	db, err := openDB()
	if err != nil {
		log.WithError(err).Warn("failed to open database, attempt not recorded")
		return
	}
	defer db.Close()

	id, err := storage.NewAttemptRepository(db).Record(code, steps, sol, solveErr)
	if err != nil {
		log.WithError(err).Warn("failed to record attempt")
		return
	}
	log.WithField("attempt", id).Debug("attempt recorded")
}

func runHistory(cmd *cobra.Command, args []string) error {
	code := ""
	if len(args) > 0 {
		code = args[0]
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	attempts, err := storage.NewAttemptRepository(db).List(code, historyLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(attempts) == 0 {
		fmt.Fprintln(out, "No attempts recorded")
		return nil
	}
	for _, a := range attempts {
		result := ""
		switch {
		case a.Succeeded() && a.Moves != nil:
			result = *a.Moves
		case a.ErrorCode != nil:
			result = errorStyle.Render((&cubecode.SolverError{Code: *a.ErrorCode}).Error())
		case a.ErrorText != nil:
			result = errorStyle.Render(*a.ErrorText)
		}
		fmt.Fprintf(out, "%s  %s  max %d  %s\n", a.CreatedAt.Local().Format("2006-01-02 15:04:05"), a.Code, a.MaxSteps, result)
	}
	return nil
}
