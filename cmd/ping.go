package main

import (
	"errors"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/lead-quality-cli/pkg/hubspot"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check CRM API connectivity and credentials",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client := newHubSpotClient()

		err := client.Ping(cmd.Context())
		if err == nil {
			fmt.Println("OK: connected and authenticated")
			return nil
		}

		var authErr *hubspot.AuthError
		if errors.As(err, &authErr) {
			return eris.Wrap(err, "credentials rejected")
		}

		var apiErr *hubspot.APIError
		if errors.As(err, &apiErr) {
			return eris.Wrapf(err, "API unhealthy (status %d)", apiErr.StatusCode)
		}

		return eris.Wrap(err, "connection failed")
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}
