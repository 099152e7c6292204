package cli

import (
	"bytes"
	"fmt"

	"github.com/google/renameio"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubecode"
	"github.com/SeamusWaldron/cubecode/internal/render"
)

var (
	renderOutput string
	renderCell   int
)

var renderCmd = &cobra.Command{
	Use:   "render [code|-]",
	Short: "Draw a code as a PNG cube net",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "cube.png", "Output PNG file")
	renderCmd.Flags().IntVar(&renderCell, "cell", 50, "Sticker size in pixels")
}

func runRender(cmd *cobra.Command, args []string) error {
	code, err := readCode(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	s, err := cubecode.Parse(code)
	if err != nil {
		return err
	}
	if renderCell < 4 {
		return fmt.Errorf("cell size must be at least 4, got %d", renderCell)
	}

	l := render.DefaultLayout()
	l.Swatch = l.Swatch * renderCell / l.Cell
	l.Gap = l.Gap * renderCell / l.Cell
	l.Cell = renderCell

	var buf bytes.Buffer
	if err := l.PNG(&buf, s, cubecode.NoColor); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	if err := renameio.WriteFile(renderOutput, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", renderOutput)
	return nil
}
