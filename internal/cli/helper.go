package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"setproxy/internal/core/privilege"
)

var helperCmd = &cobra.Command{
	Use:   "helper",
	Short: "Manage the no-password helper tool",
	Long: `Manage the helper script that forwards commands to networksetup
without an authorization prompt.

While the helper is installed and executable, enable/disable run each
command directly through it. Without it, commands are batched into a single
elevated invocation that prompts for credentials.`,
}

var helperInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the helper (one authorization prompt)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		path := appInstance.Manager.HelperPath()
		if privilege.HelperUsable(path) {
			fmt.Printf("Helper already installed at %s\n", path)
			return nil
		}

		if err := appInstance.Manager.InstallHelper(ctx); err != nil {
			return err
		}
		fmt.Printf("Helper installed at %s\n", path)
		return nil
	},
}

var helperUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the helper (one authorization prompt)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := appInstance.Manager.UninstallHelper(ctx); err != nil {
			return err
		}
		fmt.Println("Helper removed.")
		return nil
	},
}

var helperStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether the helper is usable",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := appInstance.Manager.HelperPath()
		if privilege.HelperUsable(path) {
			fmt.Printf("Helper installed and executable: %s\n", path)
			fmt.Println("enable/disable use the prompt-free path.")
		} else {
			fmt.Printf("Helper not usable: %s\n", path)
			fmt.Println("enable/disable will prompt for authorization.")
		}
		return nil
	},
}

func init() {
	helperCmd.AddCommand(helperInstallCmd)
	helperCmd.AddCommand(helperUninstallCmd)
	helperCmd.AddCommand(helperStatusCmd)
	rootCmd.AddCommand(helperCmd)
}
