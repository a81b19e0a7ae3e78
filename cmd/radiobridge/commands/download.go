package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/radiobridge/radiobridge/pkg/config"
	"github.com/radiobridge/radiobridge/pkg/csvio"
	"github.com/radiobridge/radiobridge/pkg/rbook"
	"github.com/radiobridge/radiobridge/pkg/telemetry"
	"github.com/radiobridge/radiobridge/pkg/version"
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download repeater data for a geographic scope",
	Long: `Downloads repeater records for a state, county, or city and writes
them to a CSV working file.

The source is queried politely: one request at a time, rate limited,
with --nohammer adding a randomized delay between requests.

Example:
  radiobridge download --state CA --band 2m --band 70cm
  radiobridge download --state TX --county Travis --detail --nohammer`,
	RunE: runDownload,
}

var downloadFlags struct {
	state     string
	county    string
	city      string
	country   string
	bands     []string
	detail    bool
	nohammer  bool
	rateLimit time.Duration
	timeout   time.Duration
	output    string
}

func init() {
	f := downloadCmd.Flags()
	f.StringVar(&downloadFlags.state, "state", "", "Two-letter state code (required)")
	f.StringVar(&downloadFlags.county, "county", "", "Restrict to one county")
	f.StringVar(&downloadFlags.city, "city", "", "Restrict to one city")
	f.StringVar(&downloadFlags.country, "country", config.DefaultCountry, "Country")
	f.StringSliceVar(&downloadFlags.bands, "band", nil, "Band filter, repeatable (2m, 70cm, vhf, uhf, all)")
	f.BoolVar(&downloadFlags.detail, "detail", false, "Fetch extended fields, one request per repeater")
	f.BoolVar(&downloadFlags.nohammer, "nohammer", false, "Add a 1-10s random delay between requests")
	f.DurationVar(&downloadFlags.rateLimit, "rate-limit", config.DefaultPacingConfig().Interval, "Minimum interval between requests")
	f.DurationVar(&downloadFlags.timeout, "timeout", config.DefaultTimeout, "Per-request timeout")
	f.StringVar(&downloadFlags.output, "output", "", "Output file (default repeaters_<state>.csv)")

	downloadCmd.MarkFlagRequired("state")
}

func runDownload(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	shutdown, err := telemetry.Init(ctx, version.AppName, version.Current, viper.GetString("otel_endpoint"))
	if err != nil {
		slog.Warn("Telemetry init failed", "error", err)
	} else {
		defer shutdown(ctx)
	}

	pacing := config.DefaultPacingConfig()
	pacing.Interval = downloadFlags.rateLimit
	pacing.Considerate = downloadFlags.nohammer

	scope := rbook.Scope{
		Country: downloadFlags.country,
		State:   downloadFlags.state,
		County:  downloadFlags.county,
		City:    downloadFlags.city,
		Bands:   downloadFlags.bands,
		Detail:  downloadFlags.detail,
		Pacing:  pacing,
		Retry:   config.DefaultRetryConfig(),
		Timeout: downloadFlags.timeout,
	}

	result, err := rbook.Acquire(ctx, scope)
	if err != nil {
		return err
	}

	if failures := result.PartialFailures(); failures > 0 {
		fmt.Fprintf(os.Stderr, "Warning: detail fetch failed for %d of %d records\n",
			failures, len(result.Records))
	}

	output := downloadFlags.output
	if output == "" {
		output = fmt.Sprintf("repeaters_%s.csv", strings.ToLower(downloadFlags.state))
	}
	if err := csvio.Write(output, csvio.FromResult(result)); err != nil {
		return err
	}

	fmt.Printf("Wrote %d records to %s (provenance: %s)\n",
		len(result.Records), output, result.Provenance)
	return nil
}
