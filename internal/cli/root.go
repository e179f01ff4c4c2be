package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"setproxy/internal/app"
)

var (
	appInstance *app.App
	version     = "dev"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "setproxy",
	Short: "Toggle the macOS system proxy from your terminal",
	Long: `setproxy - toggle the macOS HTTP/HTTPS/SOCKS5 system proxy

  Applies proxy settings to a network service via networksetup, either
  through an installed no-password helper or one elevated prompt per batch.

  Quick start:
    setproxy config set --host 127.0.0.1 --http-port 7890
    setproxy enable
    setproxy status
    setproxy disable

  Install the helper once to stop being prompted for credentials:
    setproxy helper install`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		appInstance, err = app.New()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if appInstance != nil {
			return appInstance.Close()
		}
		return nil
	},
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("setproxy %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
