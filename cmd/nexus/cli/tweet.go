package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var tweetCmd = &cobra.Command{
	Use:   "tweet <text>...",
	Short: "Post a tweet",
	Long: `Post a tweet with the configured Twitter credentials.
Arguments are joined with spaces.

Examples:
  nexus tweet "Released v1.2.0"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actions, err := postActions(cmd)
		if err != nil {
			return err
		}
		tweet, err := actions.PostTweet(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOut {
			return printJSON(out, tweet)
		}
		fmt.Fprintf(out, "Posted tweet %s\n", tweet.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tweetCmd)
}
