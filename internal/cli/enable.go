package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"setproxy/internal/core/sysproxy"
	"setproxy/internal/core/types"
	apperrors "setproxy/pkg/errors"
)

var enableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Apply the configured proxy to the system",
	Long: `Apply the stored proxy profile to the selected network service.

Each enabled protocol gets its server, port, and on-state set. Without the
helper installed this opens one authorization prompt for the whole batch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		profile := appInstance.Profile

		if service, _ := cmd.Flags().GetString("service"); service != "" {
			profile.Service = service
		}

		executor := appInstance.Manager.Executor()
		fmt.Printf("Enabling proxy on %s (%s path)...\n", profile.Service, executor.Name())

		if err := appInstance.Manager.Enable(ctx, profile); err != nil {
			switch {
			case errors.Is(err, apperrors.ErrNoProtocols):
				return fmt.Errorf("no protocols enabled — run: setproxy config set --protocols http")
			case errors.Is(err, apperrors.ErrUserCancelled):
				return fmt.Errorf("cancelled")
			}
			return err
		}

		for _, proto := range profile.Protocols {
			fmt.Printf("  %-7s %s:%s\n", proto.Label(), profile.Host, profile.PortFor(proto))
		}
		if bypass := profile.BypassList(); len(bypass) > 0 && profile.HasProtocol(types.ProtocolHTTP) {
			fmt.Printf("  bypass  %v\n", bypass)
		}
		fmt.Println("Proxy enabled.")
		return nil
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Turn the system proxy off",
	Long: `Turn off all three proxy protocols on the selected network service,
regardless of which ones were enabled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		profile := appInstance.Profile

		if service, _ := cmd.Flags().GetString("service"); service != "" {
			profile.Service = service
		}

		fmt.Printf("Disabling proxy on %s...\n", profile.Service)
		if err := appInstance.Manager.Disable(ctx, profile); err != nil {
			return err
		}
		fmt.Println("Proxy disabled.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current system proxy state",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		profile := appInstance.Profile

		statuses, err := appInstance.Manager.Status(ctx, profile)
		if err != nil {
			return err
		}

		fmt.Printf("Service: %s\n\n", profile.Service)
		for _, st := range statuses {
			if st.Enabled {
				fmt.Printf("  %-7s on   %s:%s\n", st.Protocol.Label(), st.Server, st.Port)
			} else {
				fmt.Printf("  %-7s off\n", st.Protocol.Label())
			}
		}
		fmt.Printf("\n%s\n", sysproxy.Summary(statuses))
		return nil
	},
}

func init() {
	enableCmd.Flags().StringP("service", "s", "", "network service to configure")
	disableCmd.Flags().StringP("service", "s", "", "network service to configure")

	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(disableCmd)
	rootCmd.AddCommand(statusCmd)
}
