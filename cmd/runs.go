package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/lead-quality-cli/internal/model"
	"github.com/sells-group/lead-quality-cli/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect stored fetch snapshots",
	Long:  "Commands for listing, viewing, and deleting snapshots saved by fetch.",
}

// -- runs list --

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshots",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		dateField, _ := cmd.Flags().GetString("date-field")
		limit, _ := cmd.Flags().GetInt("limit")

		snaps, err := st.ListSnapshots(ctx, store.SnapshotFilter{
			DateField: dateField,
			Limit:     limit,
		})
		if err != nil {
			return eris.Wrap(err, "runs list")
		}

		if len(snaps) == 0 {
			fmt.Fprintln(os.Stderr, "No snapshots found.")
			return nil
		}

		formatSnapshotList(os.Stdout, snaps)
		return nil
	},
}

// -- runs show --

var runsShowCmd = &cobra.Command{
	Use:   "show <snapshot-id>",
	Short: "Show a snapshot's window and contact count",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		snap, err := st.GetSnapshot(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "runs show")
		}

		// The full contact payload is replayed via analyze; the summary is
		// what a human wants here.
		snap.Contacts = nil

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	},
}

// -- runs delete --

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <snapshot-id>",
	Short: "Delete a stored snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		if err := st.DeleteSnapshot(ctx, args[0]); err != nil {
			return eris.Wrap(err, "runs delete")
		}

		zap.L().Info("snapshot deleted", zap.String("snapshot_id", args[0]))
		return nil
	},
}

// formatSnapshotList writes a tabular list of snapshot summaries to out.
func formatSnapshotList(out io.Writer, snaps []model.Snapshot) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tDATE_FIELD\tWINDOW_START\tWINDOW_END\tCONTACTS\tCREATED")
	_, _ = fmt.Fprintln(w, "--\t----------\t------------\t----------\t--------\t-------")

	for _, s := range snaps {
		start := time.UnixMilli(s.Window.StartMS).UTC().Format("2006-01-02")
		end := time.UnixMilli(s.Window.EndMS).UTC().Format("2006-01-02")

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			s.ID,
			s.Window.DateField,
			start,
			end,
			s.ContactCount,
			s.CreatedAt.Format(time.RFC3339),
		)
	}

	_ = w.Flush()
}

func init() {
	runsListCmd.Flags().String("date-field", "", "only show snapshots fetched with this date field")
	runsListCmd.Flags().Int("limit", 20, "maximum snapshots to list")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsDeleteCmd)
	rootCmd.AddCommand(runsCmd)
}
