package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/lead-quality-cli/internal/pipeline"
)

var analyzeRunID string

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Re-run the analysis over a stored snapshot",
	Long:  "Replays the full analysis over contacts persisted by a previous fetch. Uses the latest snapshot unless --run names one.",
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

		snap, err := loadSnapshot(cmd, st, analyzeRunID)
		if err != nil {
			return err
		}
		if snap == nil {
			return eris.New("no snapshots stored; run fetch first")
		}

		zap.L().Info("replaying snapshot",
			zap.String("snapshot_id", snap.ID),
			zap.Int("contacts", snap.ContactCount),
		)

		analysis, err := pipeline.Analyze(ctx, snap.Contacts)
		if err != nil {
			return eris.Wrap(err, "analyze snapshot")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(analysis)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeRunID, "run", "", "snapshot ID to analyze (default latest)")
	rootCmd.AddCommand(analyzeCmd)
}
