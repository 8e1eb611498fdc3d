package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/onurkarakus/nexus/provider/github"
)

var (
	issueState string
	issueTitle string
	issueBody  string
)

var issuesCmd = &cobra.Command{
	Use:   "issues",
	Short: "Work with issues in the configured GitHub repository",
}

var issuesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List issues",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		actions, err := issueActions(cmd)
		if err != nil {
			return err
		}
		issues, err := actions.GetIssues(cmd.Context(), github.IssueState(issueState))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOut {
			return printJSON(out, issues)
		}
		if len(issues) == 0 {
			fmt.Fprintln(out, "No issues found")
			return nil
		}
		w := newTable(out)
		fmt.Fprintln(w, "NUMBER\tSTATE\tTITLE")
		for _, issue := range issues {
			fmt.Fprintf(w, "#%d\t%s\t%s\n", issue.Number, issue.State, issue.Title)
		}
		return w.Flush()
	},
}

var issuesGetCmd = &cobra.Command{
	Use:   "get <number>",
	Short: "Show an issue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseIssueNumber(args[0])
		if err != nil {
			return err
		}
		actions, err := issueActions(cmd)
		if err != nil {
			return err
		}
		issue, err := actions.GetIssue(cmd.Context(), n)
		if err != nil {
			return err
		}
		return printIssue(cmd, issue)
	},
}

var issuesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Open a new issue",
	Long: `Open a new issue.

Examples:
  nexus issues create --title "Crash on start" --body "Steps to reproduce..."`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		actions, err := issueActions(cmd)
		if err != nil {
			return err
		}
		issue, err := actions.CreateIssue(cmd.Context(), issueTitle, issueBody)
		if err != nil {
			return err
		}
		return printIssue(cmd, issue)
	},
}

var issuesUpdateCmd = &cobra.Command{
	Use:   "update <number>",
	Short: "Change the title, body or state of an issue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseIssueNumber(args[0])
		if err != nil {
			return err
		}

		var update github.IssueUpdate
		flags := cmd.Flags()
		if flags.Changed("title") {
			update.Title = github.Ptr(issueTitle)
		}
		if flags.Changed("body") {
			update.Body = github.Ptr(issueBody)
		}
		if flags.Changed("state") {
			update.State = github.Ptr(github.IssueState(issueState))
		}

		return updateIssue(cmd, n, update)
	},
}

var issuesCloseCmd = &cobra.Command{
	Use:   "close <number>",
	Short: "Close an issue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseIssueNumber(args[0])
		if err != nil {
			return err
		}
		return updateIssue(cmd, n, github.IssueUpdate{State: github.Ptr(github.StateClosed)})
	},
}

var issuesReopenCmd = &cobra.Command{
	Use:   "reopen <number>",
	Short: "Reopen a closed issue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseIssueNumber(args[0])
		if err != nil {
			return err
		}
		return updateIssue(cmd, n, github.IssueUpdate{State: github.Ptr(github.StateOpen)})
	},
}

var issuesCommentCmd = &cobra.Command{
	Use:   "comment <number>",
	Short: "Comment on an issue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseIssueNumber(args[0])
		if err != nil {
			return err
		}
		actions, err := issueActions(cmd)
		if err != nil {
			return err
		}
		comment, err := actions.CreateComment(cmd.Context(), n, issueBody)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOut {
			return printJSON(out, comment)
		}
		fmt.Fprintf(out, "Comment %d added to #%d\n", comment.ID, n)
		if comment.URL != "" {
			fmt.Fprintln(out, comment.URL)
		}
		return nil
	},
}

func init() {
	issuesListCmd.Flags().StringVar(&issueState, "state", "open", "issue state: open, closed or all")

	issuesCreateCmd.Flags().StringVar(&issueTitle, "title", "", "issue title (required)")
	issuesCreateCmd.Flags().StringVar(&issueBody, "body", "", "issue body in markdown")
	issuesCreateCmd.MarkFlagRequired("title")

	issuesUpdateCmd.Flags().StringVar(&issueTitle, "title", "", "new title")
	issuesUpdateCmd.Flags().StringVar(&issueBody, "body", "", "new body")
	issuesUpdateCmd.Flags().StringVar(&issueState, "state", "", "new state: open or closed")

	issuesCommentCmd.Flags().StringVar(&issueBody, "body", "", "comment body in markdown (required)")
	issuesCommentCmd.MarkFlagRequired("body")

	issuesCmd.AddCommand(issuesListCmd, issuesGetCmd, issuesCreateCmd, issuesUpdateCmd,
		issuesCloseCmd, issuesReopenCmd, issuesCommentCmd)
	rootCmd.AddCommand(issuesCmd)
}

func updateIssue(cmd *cobra.Command, n int, update github.IssueUpdate) error {
	actions, err := issueActions(cmd)
	if err != nil {
		return err
	}
	issue, err := actions.UpdateIssue(cmd.Context(), n, update)
	if err != nil {
		return err
	}
	return printIssue(cmd, issue)
}

func printIssue(cmd *cobra.Command, issue *github.Issue) error {
	out := cmd.OutOrStdout()
	if jsonOut {
		return printJSON(out, issue)
	}
	fmt.Fprintf(out, "#%d %s [%s]\n", issue.Number, issue.Title, issue.State)
	if issue.URL != "" {
		fmt.Fprintln(out, issue.URL)
	}
	return nil
}
