package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/onurkarakus/nexus"
	"github.com/onurkarakus/nexus/provider/github"
	"github.com/onurkarakus/nexus/provider/twitter"
)

type providerStatus struct {
	ID     nexus.ProviderID `json:"id"`
	Status string           `json:"status"`
	Detail string           `json:"detail,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that each configured provider is reachable",
	Long: `Run a full chain against every configured provider in parallel.

GitHub is probed by listing repository labels. Twitter carries its own
credentials and has no read-only endpoint in this client, so it is only
checked for a successful connect and cast.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := setup(cmd)
		if err != nil {
			return err
		}

		ids := c.Registry().IDs()
		results := make([]providerStatus, len(ids))
		g, ctx := errgroup.WithContext(cmd.Context())
		for i, id := range ids {
			g.Go(func() error {
				results[i] = probe(ctx, c, id)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOut {
			return printJSON(out, results)
		}
		if len(results) == 0 {
			fmt.Fprintln(out, "No providers configured")
			return nil
		}
		w := newTable(out)
		fmt.Fprintln(w, "PROVIDER\tSTATUS\tDETAIL")
		for _, r := range results {
			fmt.Fprintf(w, "%s\t%s\t%s\n", r.ID, r.Status, r.Detail)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func probe(ctx context.Context, c *nexus.Connector, id nexus.ProviderID) providerStatus {
	status := providerStatus{ID: id}
	fail := func(err error) providerStatus {
		status.Status = "error"
		if kind := nexus.KindOf(err); kind != "" {
			status.Status = string(kind)
		}
		status.Detail = err.Error()
		return status
	}

	conn, err := c.Connect(id)
	if err != nil {
		return fail(err)
	}
	if conn.SelfAuthenticated() {
		if id == twitter.ID {
			if _, err := nexus.As[twitter.PostActions](conn); err != nil {
				return fail(err)
			}
		}
		status.Status = "ok"
		status.Detail = "self-authenticated"
		return status
	}
	if conn, err = conn.WithDefaultToken(); err != nil {
		return fail(err)
	}

	if id == github.ID {
		actions, err := nexus.As[github.IssueActions](conn)
		if err != nil {
			return fail(err)
		}
		labels, err := actions.GetLabels(ctx)
		if err != nil {
			return fail(err)
		}
		status.Detail = fmt.Sprintf("%d labels", len(labels))
	}
	status.Status = "ok"
	return status
}
