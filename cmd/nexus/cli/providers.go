package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/onurkarakus/nexus"
)

type providerInfo struct {
	ID           nexus.ProviderID   `json:"id"`
	Name         string             `json:"name"`
	Auth         string             `json:"auth"`
	Capabilities []nexus.Capability `json:"capabilities"`
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List configured providers and their capabilities",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := setup(cmd)
		if err != nil {
			return err
		}

		var infos []providerInfo
		for _, id := range c.Registry().IDs() {
			conn, err := c.Connect(id)
			if err != nil {
				return err
			}
			auth := "token"
			if conn.SelfAuthenticated() {
				auth = "self"
			}
			infos = append(infos, providerInfo{
				ID:           id,
				Name:         conn.Provider().Name(),
				Auth:         auth,
				Capabilities: conn.Capabilities(),
			})
		}

		out := cmd.OutOrStdout()
		if jsonOut {
			if infos == nil {
				infos = []providerInfo{}
			}
			return printJSON(out, infos)
		}
		if len(infos) == 0 {
			fmt.Fprintln(out, "No providers configured")
			return nil
		}
		w := newTable(out)
		fmt.Fprintln(w, "ID\tNAME\tAUTH\tCAPABILITIES")
		for _, info := range infos {
			caps := make([]string, len(info.Capabilities))
			for i, capability := range info.Capabilities {
				caps[i] = capability.String()
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", info.ID, info.Name, info.Auth, strings.Join(caps, ","))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
}
