package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubecode"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Revalidate a code file whenever it changes",
	Long: `Watch a text file holding a code and print the cube each time the file
is written. Useful next to an editor or a program that exports codes.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 300*time.Millisecond, "Wait this long after a change before reading")
}

// checkFile reads a code file and reports it to out.
func checkFile(out io.Writer, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(out, errorStyle.Render(err.Error()))
		return
	}

	code := strings.TrimSpace(string(data))
	s, err := cubecode.Parse(code)
	if err != nil {
		fmt.Fprintln(out, errorStyle.Render(err.Error()))
		return
	}

	fmt.Fprint(out, renderNet(s, nil))
	fmt.Fprintln(out, code)
	fmt.Fprintln(out, statusStyle.Render("counts: ")+renderCounts(code))
	rememberCode(code)
}

func runWatch(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so editors that replace the file are still seen.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	checkFile(out, path)

	var debounce <-chan time.Time
	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				debounce = time.After(watchDebounce)
			}

		case <-debounce:
			debounce = nil
			fmt.Fprintln(out)
			fmt.Fprintln(out, titleStyle.Render(time.Now().Format("15:04:05")+" "+filepath.Base(path)))
			checkFile(out, path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("watch error")
		}
	}
}
