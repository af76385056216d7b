package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/lead-quality-cli/internal/model"
	"github.com/sells-group/lead-quality-cli/internal/pipeline"
	"github.com/sells-group/lead-quality-cli/internal/window"
	"github.com/sells-group/lead-quality-cli/pkg/hubspot"
)

var (
	fetchStart     string
	fetchEnd       string
	fetchDateField string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch contacts for a date window, analyze them, and save a snapshot",
	Long:  "Walks the CRM contact search API for the given window, normalizes lead statuses and reasons, builds the quality report, and persists the contact set as a snapshot for later replay.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		start, err := time.Parse("2006-01-02", fetchStart)
		if err != nil {
			return eris.Wrap(err, "parse --start")
		}
		end, err := time.Parse("2006-01-02", fetchEnd)
		if err != nil {
			return eris.Wrap(err, "parse --end")
		}
		if err := window.Validate(start, end); err != nil {
			return err
		}

		dateField, err := parseDateField(fetchDateField)
		if err != nil {
			return err
		}

		loc, err := time.LoadLocation(cfg.Window.Timezone)
		if err != nil {
			return eris.Wrapf(err, "load timezone %s", cfg.Window.Timezone)
		}
		startMS, endMS := window.Resolve(start, end, loc)

		client := newHubSpotClient()
		if err := client.Ping(ctx); err != nil {
			return eris.Wrap(err, "connection check")
		}

		walker := hubspot.NewWalker(client,
			hubspot.WithPageDelay(time.Duration(cfg.HubSpot.PageDelayMS)*time.Millisecond),
			hubspot.WithRetryWait(time.Duration(cfg.HubSpot.RetryWaitSecs)*time.Second),
			hubspot.WithProgress(func(pages, contacts int) {
				zap.L().Info("fetch progress",
					zap.Int("pages", pages),
					zap.Int("contacts", contacts),
				)
			}),
		)

		raw, err := walker.FetchAll(ctx, hubspot.Query{
			DateField: dateField,
			StartMS:   startMS,
			EndMS:     endMS,
		})
		if err != nil {
			return eris.Wrap(err, "fetch contacts")
		}

		contacts := pipeline.ExtractContacts(raw)

		analysis, err := pipeline.Analyze(ctx, contacts)
		if err != nil {
			return eris.Wrap(err, "analyze contacts")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		snap, err := st.SaveSnapshot(ctx, model.FetchWindow{
			DateField: string(dateField),
			StartMS:   startMS,
			EndMS:     endMS,
		}, contacts)
		if err != nil {
			return eris.Wrap(err, "save snapshot")
		}

		zap.L().Info("snapshot saved",
			zap.String("snapshot_id", snap.ID),
			zap.Int("contacts", snap.ContactCount),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(analysis)
	},
}

func parseDateField(s string) (hubspot.DateField, error) {
	switch hubspot.DateField(s) {
	case hubspot.DateFieldCreated, hubspot.DateFieldModified, hubspot.DateFieldEither:
		return hubspot.DateField(s), nil
	default:
		return "", eris.Errorf("invalid --date-field %q (want created, modified, or either)", s)
	}
}

func newHubSpotClient() hubspot.Client {
	var opts []hubspot.Option
	if cfg.HubSpot.BaseURL != "" {
		opts = append(opts, hubspot.WithBaseURL(cfg.HubSpot.BaseURL))
	}
	return hubspot.NewClient(cfg.HubSpot.Token, opts...)
}

func init() {
	fetchCmd.Flags().StringVar(&fetchStart, "start", "", "window start date (YYYY-MM-DD)")
	fetchCmd.Flags().StringVar(&fetchEnd, "end", "", "window end date (YYYY-MM-DD)")
	fetchCmd.Flags().StringVar(&fetchDateField, "date-field", "created", "date property to filter on: created, modified, or either")
	_ = fetchCmd.MarkFlagRequired("start")
	_ = fetchCmd.MarkFlagRequired("end")
	rootCmd.AddCommand(fetchCmd)
}
