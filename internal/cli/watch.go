package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"setproxy/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll proxy status until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		intervalSec, _ := cmd.Flags().GetInt("interval")

		watcher, err := watch.NewWatcher(
			appInstance.Manager,
			appInstance.Profile,
			time.Duration(intervalSec)*time.Second,
		)
		if err != nil {
			return err
		}

		var last string
		err = watcher.Start(ctx, func(snap watch.Snapshot) {
			if snap.Err != nil {
				fmt.Printf("[%s] error: %v\n", snap.At.Format("15:04:05"), snap.Err)
				return
			}
			if snap.Summary == last {
				return
			}
			last = snap.Summary
			fmt.Printf("[%s] %s\n", snap.At.Format("15:04:05"), snap.Summary)
		})
		if err != nil {
			return err
		}
		defer watcher.Stop()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		return nil
	},
}

func init() {
	watchCmd.Flags().IntP("interval", "i", 10, "poll interval in seconds")
	rootCmd.AddCommand(watchCmd)
}
