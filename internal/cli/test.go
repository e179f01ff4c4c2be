package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"setproxy/internal/conncheck"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connectivity through the configured proxy",
	Long: `Issue an HTTP request through the configured proxy and report the
status code or transport error.

By default the first enabled protocol is used (HTTP preferred over SOCKS5).
With --all, every enabled protocol is tested concurrently.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		timeoutMS, _ := cmd.Flags().GetInt64("timeout")
		testURL, _ := cmd.Flags().GetString("url")
		all, _ := cmd.Flags().GetBool("all")

		// Load defaults from DB settings if not overridden
		if !cmd.Flags().Changed("timeout") {
			if val, err := appInstance.Storage.GetSetting(ctx, "test_timeout_ms"); err == nil {
				if parsed, parseErr := strconv.ParseInt(val, 10, 64); parseErr == nil {
					timeoutMS = parsed
				}
			}
		}
		if !cmd.Flags().Changed("url") {
			if val, err := appInstance.Storage.GetSetting(ctx, "test_url"); err == nil && val != "" {
				testURL = val
			}
		}

		tester := conncheck.NewTester(conncheck.TesterConfig{
			Timeout: time.Duration(timeoutMS) * time.Millisecond,
			TestURL: testURL,
		})

		if all {
			results := tester.TestAll(ctx, appInstance.Profile)
			if len(results) == 0 {
				return fmt.Errorf("no protocols enabled")
			}
			for _, result := range results {
				fmt.Println(result.Summary())
			}
			return nil
		}

		result := tester.TestProfile(ctx, appInstance.Profile)
		fmt.Println(result.Summary())
		if result.Err != nil {
			return fmt.Errorf("connectivity test failed")
		}
		return nil
	},
}

func init() {
	testCmd.Flags().Int64("timeout", 10000, "request timeout (ms)")
	testCmd.Flags().String("url", conncheck.DefaultTestURL, "URL to request through the proxy")
	testCmd.Flags().Bool("all", false, "test every enabled protocol")

	rootCmd.AddCommand(testCmd)
}
