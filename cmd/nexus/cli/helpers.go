package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/onurkarakus/nexus"
	"github.com/onurkarakus/nexus/provider/github"
	"github.com/onurkarakus/nexus/provider/twitter"
)

// issueActions runs connect, default-token authentication and the cast
// for the GitHub provider.
func issueActions(cmd *cobra.Command) (github.IssueActions, error) {
	c, err := setup(cmd)
	if err != nil {
		return nil, err
	}
	conn, err := c.Connect(github.ID)
	if err != nil {
		return nil, err
	}
	if conn, err = conn.WithDefaultToken(); err != nil {
		return nil, fmt.Errorf("%w\nset GITHUB_TOKEN or run \"nexus auth login\"", err)
	}
	return nexus.As[github.IssueActions](conn)
}

// postActions casts the self-authenticated Twitter provider directly.
func postActions(cmd *cobra.Command) (twitter.PostActions, error) {
	c, err := setup(cmd)
	if err != nil {
		return nil, err
	}
	conn, err := c.Connect(twitter.ID)
	if err != nil {
		return nil, err
	}
	return nexus.As[twitter.PostActions](conn)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func parseIssueNumber(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid issue number %q", arg)
	}
	return n, nil
}
