package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"setproxy/internal/core/sysproxy"
	"setproxy/internal/storage/models"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the proxy profile",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored proxy profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := appInstance.Profile

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Host:\t%s\n", p.Host)
		fmt.Fprintf(w, "HTTP port:\t%s\n", p.HTTPPort)
		fmt.Fprintf(w, "HTTPS port:\t%s\n", p.HTTPSPort)
		fmt.Fprintf(w, "SOCKS5 port:\t%s\n", p.SOCKSPort)
		fmt.Fprintf(w, "Protocols:\t%s\n", p.ProtocolsString())
		fmt.Fprintf(w, "Service:\t%s\n", p.Service)
		fmt.Fprintf(w, "Bypass:\t%s\n", p.BypassDomains)
		fmt.Fprintf(w, "Enabled:\t%v\n", p.Enabled)
		return w.Flush()
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change profile fields and persist immediately",
	Example: `  setproxy config set --host 127.0.0.1 --http-port 7890
  setproxy config set --protocols http,socks5
  setproxy config set --bypass "127.0.0.1, localhost, *.local"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		p := appInstance.Profile

		if v, _ := cmd.Flags().GetString("host"); cmd.Flags().Changed("host") {
			p.Host = v
		}
		if v, _ := cmd.Flags().GetString("http-port"); cmd.Flags().Changed("http-port") {
			p.HTTPPort = v
		}
		if v, _ := cmd.Flags().GetString("https-port"); cmd.Flags().Changed("https-port") {
			p.HTTPSPort = v
		}
		if v, _ := cmd.Flags().GetString("socks-port"); cmd.Flags().Changed("socks-port") {
			p.SOCKSPort = v
		}
		if v, _ := cmd.Flags().GetString("protocols"); cmd.Flags().Changed("protocols") {
			protocols := models.ParseProtocols(v)
			if len(protocols) == 0 {
				return fmt.Errorf("no valid protocols in %q (known: http, https, socks5)", v)
			}
			p.Protocols = protocols
		}
		if v, _ := cmd.Flags().GetString("service"); cmd.Flags().Changed("service") {
			p.Service = v
		}
		if v, _ := cmd.Flags().GetString("bypass"); cmd.Flags().Changed("bypass") {
			p.BypassDomains = v
		}

		if err := appInstance.SaveProfile(ctx); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
		fmt.Println("Profile saved.")
		return nil
	},
}

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "List configurable network services",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		services, err := listServices(ctx)
		if err != nil {
			return err
		}

		for _, svc := range services {
			marker := " "
			if svc == appInstance.Profile.Service {
				marker = "*"
			}
			fmt.Printf("%s %s\n", marker, svc)
		}
		return nil
	},
}

func listServices(ctx context.Context) ([]string, error) {
	return sysproxy.ListServices(ctx)
}

func init() {
	configSetCmd.Flags().String("host", "", "proxy server address")
	configSetCmd.Flags().String("http-port", "", "HTTP proxy port")
	configSetCmd.Flags().String("https-port", "", "HTTPS proxy port")
	configSetCmd.Flags().String("socks-port", "", "SOCKS5 proxy port")
	configSetCmd.Flags().String("protocols", "", "comma-separated protocol set (http,https,socks5)")
	configSetCmd.Flags().StringP("service", "s", "", "network service name")
	configSetCmd.Flags().String("bypass", "", "comma-separated bypass domain list")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(servicesCmd)
}
