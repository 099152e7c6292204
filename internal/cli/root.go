// Package cli implements the command-line interface for cubecode.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubecode"
	"github.com/SeamusWaldron/cubecode/internal/config"
	"github.com/SeamusWaldron/cubecode/internal/storage"
)

const version = "0.1.0"

var (
	// Global flags
	dbPath        string
	verbose       bool
	solverCommand string
	maxSteps      int

	stateFile *config.StateFile
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubecode",
	Short: "Rubik's cube state editor and solver front end",
	Long: `cubecode - edit a Rubik's cube state and exchange it as the 54-character
facelet code used by two-phase solvers.

Codes list the faces in the order U, R, F, D, L, B, each face row by row,
with one letter per sticker naming the face whose color it shows.`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
// An interrupt cancels the command's context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.cubecode/cubecode.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&solverCommand, "solver", "", "Solver command; the code and step limit are appended")
	rootCmd.PersistentFlags().IntVar(&maxSteps, "max-steps", 0, "Maximum solution length (default: 21)")
}

func setup(cmd *cobra.Command, args []string) error {
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	log.SetOutput(cmd.ErrOrStderr())
	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	sf, err := config.NewDefaultStateFile()
	if err != nil {
		log.WithError(err).Warn("state file unavailable, using defaults")
		return nil
	}
	stateFile = sf
	return nil
}

// getDBPath returns the database path from flag, state file or default.
func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if stateFile != nil {
		return stateFile.State().DBPath
	}
	return ""
}

func openDB() (*storage.DB, error) {
	path := getDBPath()
	if path == "" {
		return storage.OpenDefault()
	}
	return storage.Open(path)
}

// getSolverCommand returns the solver command from flag or state file.
func getSolverCommand() string {
	if solverCommand != "" {
		return solverCommand
	}
	if stateFile != nil {
		return stateFile.State().SolverCommand
	}
	return ""
}

// getMaxSteps returns the step limit from flag, state file or default.
// A negative flag value is passed through so the solver call rejects it.
func getMaxSteps() int {
	if maxSteps != 0 {
		return maxSteps
	}
	if stateFile != nil {
		return stateFile.MaxSteps()
	}
	return config.DefaultMaxSteps
}

// rememberCode stores code as the last code used. Failures are logged only.
func rememberCode(code string) {
	if stateFile == nil {
		return
	}
	if err := stateFile.SetLastCode(code); err != nil {
		log.WithError(err).Warn("failed to save state")
	}
}

// readCode resolves the code argument of a command: the literal code,
// "-" for standard input, or the last code used when args is empty.
// The result is validated.
func readCode(in io.Reader, args []string) (string, error) {
	var code string
	switch {
	case len(args) > 0 && args[0] == "-":
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("failed to read code: %w", err)
		}
		code = string(data)
	case len(args) > 0:
		code = args[0]
	case stateFile != nil && stateFile.State().LastCode != "":
		code = stateFile.State().LastCode
	default:
		code = cubecode.SolvedCode
	}

	code = strings.TrimSpace(code)
	if err := cubecode.Check(code); err != nil {
		return "", err
	}
	return code, nil
}
