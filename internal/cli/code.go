package cli

import (
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubecode"
)

var (
	codeFlag  string
	showPlain bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [code|-]",
	Short: "Check that a code is well formed",
	Long: `Check that a code has 54 characters drawn from URFDLB.

Only the syntax is checked. A code whose color counts are off is reported
as a warning; whether the cube can actually be solved is up to the solver.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

var showCmd = &cobra.Command{
	Use:   "show [code|-]",
	Short: "Display a code as a colored cube net",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShow,
}

var setCmd = &cobra.Command{
	Use:   "set <face> <row> <col> <color>",
	Short: "Change one sticker and print the new code",
	Long: `Change one sticker of the current code (--code, or the last code used)
and print the result. Rows and columns run 0..2 from the top-left of the
face as drawn on the net. Colors are given by name (red), by initial (g)
or by the letter of the face they belong to (F for green).`,
	Args: cobra.ExactArgs(4),
	RunE: runSet,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Make the solved cube the current code",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

var applyCmd = &cobra.Command{
	Use:   "apply <moves>",
	Short: "Turn faces of the current code",
	Long: `Apply a move sequence in standard notation, for example "R U R' U'",
to the current code (--code, or the last code used) and print the result.`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

var errorsCmd = &cobra.Command{
	Use:   "errors",
	Short: "List the numbered errors a solver can report",
	Args:  cobra.NoArgs,
	RunE:  runErrors,
}

func init() {
	rootCmd.AddCommand(validateCmd, showCmd, setCmd, resetCmd, applyCmd, errorsCmd)

	showCmd.Flags().BoolVar(&showPlain, "plain", false, "Print letters without colors")
	setCmd.Flags().StringVar(&codeFlag, "code", "", "Code to modify (default: last code used)")
	applyCmd.Flags().StringVar(&codeFlag, "code", "", "Code to modify (default: last code used)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	code, err := readCode(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "valid")
	if !cubecode.BalancedColors(code) {
		fmt.Fprintf(out, "warning: color counts %s (the solver will reject this)\n", renderCounts(code))
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	code, err := readCode(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	s, err := cubecode.Parse(code)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if showPlain {
		fmt.Fprint(out, s.String())
	} else {
		fmt.Fprint(out, renderNet(s, nil))
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, code)
	fmt.Fprintln(out, statusStyle.Render("counts: ")+renderCounts(code))
	if s.IsSolved() {
		fmt.Fprintln(out, moveStyle.Render("solved"))
	}
	return nil
}

// currentState decodes --code, or the last code used when the flag is empty.
func currentState(cmd *cobra.Command) (*cubecode.CubeState, error) {
	var args []string
	if codeFlag != "" {
		args = []string{codeFlag}
	}
	code, err := readCode(cmd.InOrStdin(), args)
	if err != nil {
		return nil, err
	}
	return cubecode.Parse(code)
}

// parseCellArgs parses face, row and column arguments.
func parseCellArgs(face, row, col string) (cubecode.Cell, error) {
	f, err := cubecode.ParseFace(face)
	if err != nil {
		return cubecode.Cell{}, err
	}
	r, err := strconv.Atoi(row)
	if err != nil {
		return cubecode.Cell{}, fmt.Errorf("invalid row %q: %w", row, err)
	}
	c, err := strconv.Atoi(col)
	if err != nil {
		return cubecode.Cell{}, fmt.Errorf("invalid column %q: %w", col, err)
	}
	return cubecode.Cell{Face: f, Row: r, Col: c}, nil
}

func runSet(cmd *cobra.Command, args []string) error {
	s, err := currentState(cmd)
	if err != nil {
		return err
	}
	cell, err := parseCellArgs(args[0], args[1], args[2])
	if err != nil {
		return err
	}
	color, err := cubecode.ParseColor(args[3])
	if err != nil {
		return err
	}
	if err := s.SetColor(cell.Face, cell.Row, cell.Col, color); err != nil {
		return err
	}

	code := cubecode.Encode(s)
	log.WithFields(log.Fields{"cell": cell.String(), "color": color.String()}).Debug("sticker set")
	rememberCode(code)
	fmt.Fprintln(cmd.OutOrStdout(), code)
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	code := cubecode.Encode(cubecode.NewCubeState())
	rememberCode(code)
	fmt.Fprintln(cmd.OutOrStdout(), code)
	return nil
}

func runApply(cmd *cobra.Command, args []string) error {
	s, err := currentState(cmd)
	if err != nil {
		return err
	}
	if err := s.ApplyNotation(args[0]); err != nil {
		return err
	}

	code := cubecode.Encode(s)
	rememberCode(code)
	fmt.Fprintln(cmd.OutOrStdout(), code)
	return nil
}

func runErrors(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-6s %s\n", "Code", "Meaning")
	fmt.Fprintf(out, "%-6s %s\n", "----", "-------")
	for _, e := range cubecode.SolverErrors() {
		fmt.Fprintf(out, "%-6d %s\n", e.Code, e.Message())
	}
	return nil
}
