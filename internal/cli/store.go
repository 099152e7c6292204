package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/renameio"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubecode"
	"github.com/SeamusWaldron/cubecode/internal/storage"
)

var (
	saveNotes    string
	listLimit    int
	exportFormat string
	exportOutput string
)

var saveCmd = &cobra.Command{
	Use:   "save <name> [code|-]",
	Short: "Save a code under a name",
	Long: `Save a code in the database under a name. Saving to an existing name
replaces the stored code. Without a code argument the last code used is saved.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSave,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved codes",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var loadCmd = &cobra.Command{
	Use:   "load <name|id>",
	Short: "Print a saved code and make it the current code",
	Args:  cobra.ExactArgs(1),
	RunE:  runLoad,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <name|id>",
	Short: "Delete a saved code",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var exportCmd = &cobra.Command{
	Use:   "export <name|id>",
	Short: "Export a saved code",
	Long: `Export a saved code as plain text or JSON.

Examples:
  cubecode export scramble1
  cubecode export scramble1 --format json -o scramble1.json`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(saveCmd, listCmd, loadCmd, deleteCmd, exportCmd)

	saveCmd.Flags().StringVar(&saveNotes, "notes", "", "Notes for this code")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 50, "Maximum number of codes to show")
	exportCmd.Flags().StringVar(&exportFormat, "format", "txt", "Export format (txt, json)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}

func runSave(cmd *cobra.Command, args []string) error {
	code, err := readCode(cmd.InOrStdin(), args[1:])
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := storage.NewCodeRepository(db).Save(args[0], code, saveNotes)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s)\n", args[0], id)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	codes, err := storage.NewCodeRepository(db).List(listLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(codes) == 0 {
		fmt.Fprintln(out, "No saved codes")
		return nil
	}

	fmt.Fprintf(out, "%-20s %-54s %s\n", "Name", "Code", "Updated")
	fmt.Fprintf(out, "%-20s %-54s %s\n", "----", "----", "-------")
	for _, c := range codes {
		fmt.Fprintf(out, "%-20s %-54s %s\n", c.Name, c.Code, c.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func getSaved(idOrName string) (*storage.SavedCode, error) {
	db, err := openDB()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	c, err := storage.NewCodeRepository(db).Get(idOrName)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("no saved code named %q", idOrName)
	}
	return c, err
}

func runLoad(cmd *cobra.Command, args []string) error {
	c, err := getSaved(args[0])
	if err != nil {
		return err
	}
	rememberCode(c.Code)
	fmt.Fprintln(cmd.OutOrStdout(), c.Code)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := storage.NewCodeRepository(db).Delete(args[0]); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no saved code named %q", args[0])
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return nil
}

// exportedCode is the JSON form of a saved code.
type exportedCode struct {
	Name   string            `json:"name"`
	Code   string            `json:"code"`
	Notes  string            `json:"notes,omitempty"`
	Counts map[string]int    `json:"counts"`
	Net    map[string]string `json:"faces"`
}

func formatExport(c *storage.SavedCode, format string) (string, error) {
	switch strings.ToLower(format) {
	case "txt", "text":
		return c.Code + "\n", nil

	case "json":
		e := exportedCode{
			Name:   c.Name,
			Code:   c.Code,
			Counts: make(map[string]int, cubecode.NumFaces),
			Net:    make(map[string]string, cubecode.NumFaces),
		}
		if c.Notes != nil {
			e.Notes = *c.Notes
		}
		counts := cubecode.CountColors(c.Code)
		for _, f := range cubecode.Faces {
			pos, err := cubecode.Position(f, 0, 0)
			if err != nil {
				return "", err
			}
			e.Counts[f.String()] = counts[f]
			e.Net[f.String()] = c.Code[pos : pos+9]
		}
		data, err := json.MarshalIndent(e, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(data) + "\n", nil

	default:
		return "", fmt.Errorf("unknown format: %s (use txt or json)", format)
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	c, err := getSaved(args[0])
	if err != nil {
		return err
	}

	output, err := formatExport(c, exportFormat)
	if err != nil {
		return err
	}

	if exportOutput == "" {
		fmt.Fprint(cmd.OutOrStdout(), output)
		return nil
	}
	if err := renameio.WriteFile(exportOutput, []byte(output), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", c.Name, exportOutput)
	return nil
}
