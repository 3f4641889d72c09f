// ABOUTME: Shared confirmation prompt for destructive commands
// ABOUTME: Honors a --confirm flag and otherwise asks y/N on the command's input

package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// confirmed reports whether the user accepted prompt, either with --confirm
// or by answering y/yes.
func confirmed(cmd *cobra.Command, prompt string) bool {
	if ok, _ := cmd.Flags().GetBool("confirm"); ok {
		return true
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	if response != "y" && response != "yes" {
		fmt.Fprintln(cmd.OutOrStdout(), "Canceled.")
		return false
	}
	return true
}

// setIfChanged copies a string flag into dst when the user passed it.
func setIfChanged(cmd *cobra.Command, name string, dst *string) {
	if cmd.Flags().Changed(name) {
		*dst, _ = cmd.Flags().GetString(name)
	}
}
