package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubecode"
	"github.com/SeamusWaldron/cubecode/internal/ble"
	"github.com/SeamusWaldron/cubecode/internal/protocol"
	"github.com/SeamusWaldron/cubecode/internal/storage"
	"github.com/SeamusWaldron/cubecode/internal/tracker"
)

var (
	scanAttempts int
	trackFrom    string
	trackSave    string
	trackNoReset bool
	trackRaw     bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Look for GoCube smart cubes",
	Args:  cobra.NoArgs,
	RunE:  runScan,
}

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Follow a GoCube and keep its code up to date",
	Long: `Connect to a GoCube smart cube and apply every face turn it reports,
printing the code after each move. Press Ctrl-C to stop; the final code
becomes the current code.

By default the physical cube must be solved when tracking starts and is
told to treat its state as solved. Use --from to start from another code.`,
	Args: cobra.NoArgs,
	RunE: runTrack,
}

func init() {
	rootCmd.AddCommand(scanCmd, trackCmd)

	for _, c := range []*cobra.Command{scanCmd, trackCmd} {
		c.Flags().IntVar(&scanAttempts, "attempts", 3, "Number of 5 second scans before giving up")
	}
	trackCmd.Flags().StringVar(&trackFrom, "from", "", "Code of the cube when tracking starts (default: solved)")
	trackCmd.Flags().StringVar(&trackSave, "save", "", "Save the final code under this name")
	trackCmd.Flags().BoolVar(&trackNoReset, "no-reset", false, "Do not tell the cube to treat its state as solved")
	trackCmd.Flags().BoolVar(&trackRaw, "raw", false, "Also print every message frame the cube sends")
}

// scanForCube scans for GoCube devices with retries.
func scanForCube(ctx context.Context, out io.Writer, maxAttempts int) (*ble.Client, []ble.ScanResult, error) {
	fmt.Fprintln(out, "Scanning for GoCube devices...")

	client, err := ble.NewClient()
	if err != nil {
		return nil, nil, fmt.Errorf("BLE not available: %w", err)
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		results, err := client.Scan(ctx, 5*time.Second)
		if err != nil {
			fmt.Fprintf(out, "Scan %d failed: %v\n", attempt, err)
			continue
		}
		if len(results) > 0 {
			return client, results, nil
		}
		if ctx.Err() != nil {
			return client, nil, ctx.Err()
		}
		if attempt < maxAttempts {
			fmt.Fprintf(out, "Scan %d: No devices found, retrying...\n", attempt)
		}
	}
	return client, nil, nil
}

// pickDevice prefers the last device used when it shows up in results.
func pickDevice(results []ble.ScanResult, lastID string) ble.ScanResult {
	if lastID != "" {
		for _, r := range results {
			if r.UUID == lastID {
				return r
			}
		}
	}
	return results[0]
}

func runScan(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	_, results, err := scanForCube(cmd.Context(), out, scanAttempts)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(out, "No GoCube devices found")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Tips:")
		fmt.Fprintln(out, "  - Ensure your GoCube is powered on")
		fmt.Fprintln(out, "  - Move the cube to wake it up")
		fmt.Fprintln(out, "  - Check that Bluetooth is enabled")
		return nil
	}

	fmt.Fprintf(out, "Found %d device(s):\n", len(results))
	for _, r := range results {
		fmt.Fprintf(out, "  - %s (UUID: %s, RSSI: %d)\n", r.Name, r.UUID, r.RSSI)
	}
	return nil
}

func runTrack(cmd *cobra.Command, args []string) error {
	var start *cubecode.CubeState
	if trackFrom != "" {
		s, err := cubecode.Parse(trackFrom)
		if err != nil {
			return err
		}
		start = s
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	client, results, err := scanForCube(ctx, out, scanAttempts)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return ble.ErrDeviceNotFound
	}

	lastID := ""
	if stateFile != nil {
		lastID = stateFile.State().LastDeviceID
	}
	target := pickDevice(results, lastID)

	t := tracker.New(start)
	t.SetMoveCallback(func(m cubecode.Move, code string) {
		fmt.Fprintf(out, "%-3s %s\n", moveStyle.Render(m.Notation()), code)
	})
	client.SetMessageCallback(func(msg *protocol.Message) {
		if trackRaw {
			fmt.Fprintln(out, statusStyle.Render(fmt.Sprintf("[%s] %s", protocol.MessageTypeName(msg.Type), msg.RawBase64)))
		}
		t.HandleMessage(msg)
	})

	if err := client.ConnectToResult(ctx, target); err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer client.Disconnect()

	fmt.Fprintf(out, "Connected to %s\n", client.DeviceName())
	if stateFile != nil {
		if err := stateFile.SetLastDevice(client.DeviceUUID()); err != nil {
			log.WithError(err).Warn("failed to save state")
		}
	}

	if start == nil && !trackNoReset {
		if err := client.ResetSolved(); err != nil {
			log.WithError(err).Warn("failed to reset cube to solved")
		}
	}
	if err := client.FlashBacklight(); err != nil {
		log.WithError(err).Debug("flash failed")
	}
	if err := client.RequestBattery(); err != nil {
		log.WithError(err).Debug("battery request failed")
	}

	fmt.Fprintln(out, t.Code())
	fmt.Fprintln(out, helpStyle.Render("Turn the cube; Ctrl-C to stop"))

	<-ctx.Done()

	code := t.Code()
	fmt.Fprintln(out)
	fmt.Fprint(out, renderNet(t.State(), nil))
	fmt.Fprintln(out, code)
	fmt.Fprintln(out, statusStyle.Render(fmt.Sprintf("%d moves, battery %d%%", len(t.Moves()), t.Battery())))
	rememberCode(code)

	if trackSave != "" {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		if _, err := storage.NewCodeRepository(db).Save(trackSave, code, "tracked from "+client.DeviceName()); err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved %s\n", trackSave)
	}
	return nil
}
