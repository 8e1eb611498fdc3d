package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/onurkarakus/nexus/provider/github"
)

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "Manage labels in the configured GitHub repository",
}

var labelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List repository labels",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		actions, err := issueActions(cmd)
		if err != nil {
			return err
		}
		labels, err := actions.GetLabels(cmd.Context())
		if err != nil {
			return err
		}
		return printLabels(cmd.OutOrStdout(), labels)
	},
}

var labelsAddCmd = &cobra.Command{
	Use:   "add <number> <label>...",
	Short: "Add labels to an issue",
	Long: `Add one or more existing labels to an issue and print the labels it now has.

Examples:
  nexus labels add 42 bug "help wanted"`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseIssueNumber(args[0])
		if err != nil {
			return err
		}
		actions, err := issueActions(cmd)
		if err != nil {
			return err
		}
		labels, err := actions.AddLabels(cmd.Context(), n, args[1:]...)
		if err != nil {
			return err
		}
		return printLabels(cmd.OutOrStdout(), labels)
	},
}

var labelsRemoveCmd = &cobra.Command{
	Use:   "remove <number> <label>",
	Short: "Remove a label from an issue",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseIssueNumber(args[0])
		if err != nil {
			return err
		}
		actions, err := issueActions(cmd)
		if err != nil {
			return err
		}
		labels, err := actions.RemoveLabel(cmd.Context(), n, args[1])
		if err != nil {
			return err
		}
		return printLabels(cmd.OutOrStdout(), labels)
	},
}

func init() {
	labelsCmd.AddCommand(labelsListCmd, labelsAddCmd, labelsRemoveCmd)
	rootCmd.AddCommand(labelsCmd)
}

func printLabels(out io.Writer, labels []github.Label) error {
	if jsonOut {
		return printJSON(out, labels)
	}
	if len(labels) == 0 {
		fmt.Fprintln(out, "No labels")
		return nil
	}
	w := newTable(out)
	fmt.Fprintln(w, "NAME\tCOLOR\tDESCRIPTION")
	for _, l := range labels {
		desc := ""
		if l.Description != nil {
			desc = *l.Description
		}
		fmt.Fprintf(w, "%s\t#%s\t%s\n", l.Name, l.Color, desc)
	}
	return w.Flush()
}
