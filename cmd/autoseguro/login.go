// ABOUTME: Login and logout commands
// ABOUTME: Checks operator credentials and persists the session flag

package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in as the office operator",
	Long: `Log in so the other commands can read and change records.

The session stays open until 'autoseguro logout'. Without flags the
username and password are read from standard input.

Examples:
  autoseguro login
  autoseguro login --user admin --password 103020`,
	Annotations: map[string]string{annotationPublic: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		pass, _ := cmd.Flags().GetString("password")

		reader := bufio.NewReader(cmd.InOrStdin())
		if user == "" {
			fmt.Fprint(cmd.OutOrStdout(), "Username: ")
			line, _ := reader.ReadString('\n')
			user = strings.TrimSpace(line)
		}
		if pass == "" {
			fmt.Fprint(cmd.OutOrStdout(), "Password: ")
			line, _ := reader.ReadString('\n')
			pass = strings.TrimRight(line, "\r\n")
		}

		authenticator, err := cfg.Authenticator()
		if err != nil {
			return fmt.Errorf("failed to load credentials: %w", err)
		}
		if err := session.Login(authenticator, user, pass); err != nil {
			return err
		}

		color.Green("✓ Logged in as %s", user)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:         "logout",
	Short:       "End the operator session",
	Annotations: map[string]string{annotationPublic: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := session.Logout(); err != nil {
			return err
		}
		color.Green("✓ Logged out")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringP("user", "u", "", "username")
	loginCmd.Flags().StringP("password", "p", "", "password")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
