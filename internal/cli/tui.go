package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"setproxy/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive terminal UI",
	Long:  `Launch the full-screen terminal UI for editing the profile, toggling the proxy, and watching status.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps := tui.Deps{
			Storage: appInstance.Storage,
			Profile: appInstance.Profile,
			Manager: appInstance.Manager,
		}

		p := tui.NewProgram(deps)
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("TUI error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
