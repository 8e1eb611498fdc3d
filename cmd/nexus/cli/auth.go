package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/onurkarakus/nexus/internal/credential"
	"github.com/onurkarakus/nexus/provider/github"
)

var loginToken string

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the stored GitHub token",
	Long: `Manage the GitHub token kept in the system keychain.

A token in GITHUB_TOKEN (or GH_PAT) always takes precedence over the
stored one. Twitter credentials are read from the environment only.`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a GitHub token in the keychain",
	Long: `Store a GitHub personal access token in the system keychain.

The token is read from --token, or prompted for without echo.

Examples:
  nexus auth login
  echo "$TOKEN" | nexus auth login`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		token := loginToken
		if token == "" {
			fmt.Fprint(cmd.ErrOrStderr(), "GitHub token: ")
			b, err := readSecret(cmd.InOrStdin())
			fmt.Fprintln(cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("reading token: %w", err)
			}
			token = string(b)
		}

		if err := store.Set(github.ID, token); err != nil {
			return err
		}
		// A cached connector would still hold the previous default.
		connector = nil

		fmt.Fprintf(cmd.OutOrStdout(), "GitHub token saved to keychain service %q\n", store.Service())
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored GitHub token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		err := store.Delete(github.ID)
		if errors.Is(err, credential.ErrNotFound) {
			fmt.Fprintln(cmd.OutOrStdout(), "No stored GitHub token")
			return nil
		}
		if err != nil {
			return err
		}
		connector = nil
		fmt.Fprintln(cmd.OutOrStdout(), "GitHub token removed")
		return nil
	},
}

type authStatus struct {
	Provider string `json:"provider"`
	Source   string `json:"source"`
	Token    string `json:"token,omitempty"`
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the GitHub token comes from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := setup(cmd); err != nil {
			return err
		}

		status := authStatus{Provider: string(github.ID), Source: "none"}
		if cfg.GitHub.Token != "" {
			status.Source = "env"
			status.Token = credential.Mask(cfg.GitHub.Token)
		} else if token, ok := store.Lookup(github.ID); ok {
			status.Source = "keychain"
			status.Token = credential.Mask(token)
		}

		out := cmd.OutOrStdout()
		if jsonOut {
			return printJSON(out, status)
		}
		if status.Source == "none" {
			fmt.Fprintln(out, "GitHub: not authenticated")
			return nil
		}
		fmt.Fprintf(out, "GitHub: token from %s (%s)\n", status.Source, status.Token)
		return nil
	},
}

func init() {
	authLoginCmd.Flags().StringVar(&loginToken, "token", "", "token to store instead of prompting")

	authCmd.AddCommand(authLoginCmd, authLogoutCmd, authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

// readSecret reads a line without echo when in is a terminal, and reads it
// plainly otherwise (for piped input).
func readSecret(in io.Reader) ([]byte, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return term.ReadPassword(int(f.Fd()))
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return nil, err
	}
	return []byte(strings.TrimSpace(line)), nil
}
