// ABOUTME: Client commands: add, edit, list, and remove insured people
// ABOUTME: Validates name and CPF before saving

package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harper/autoseguro/internal/models"
	"github.com/harper/autoseguro/internal/ui"
	"github.com/spf13/cobra"
)

var clientCmd = &cobra.Command{
	Use:     "client",
	Aliases: []string{"clients", "c"},
	Short:   "Manage insured clients",
}

var clientAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a client",
	Long: `Register a new insured client.

Examples:
  autoseguro client add --name "Maria Souza" --cpf 987.654.321-00
  autoseguro client add --name "Maria Souza" --cpf 98765432100 --email maria@email.com --phone "(11) 98888-7777"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := &models.Client{}
		readClientFlags(cmd, c)
		if err := models.ValidateClient(c); err != nil {
			return err
		}

		if err := store.SaveClient(c); err != nil {
			return fmt.Errorf("failed to save client: %w", err)
		}

		color.Green("✓ Added client %s", c.Name)
		fmt.Printf("  %s\n", ui.FormatClient(c))
		return nil
	},
}

var clientEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a client's details",
	Long: `Change the given fields of a client. Fields not passed are kept.

Examples:
  autoseguro client edit 1 --phone "(11) 97777-0000"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := store.GetClient(args[0])
		if err != nil {
			return lookupError("client", args[0], err)
		}
		readClientFlags(cmd, c)
		if err := models.ValidateClient(c); err != nil {
			return err
		}

		if err := store.SaveClient(c); err != nil {
			return fmt.Errorf("failed to save client: %w", err)
		}

		color.Green("✓ Updated client %s", c.Name)
		return nil
	},
}

var clientListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List clients",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		clients, err := store.ListClients()
		if err != nil {
			return fmt.Errorf("failed to list clients: %w", err)
		}

		search, _ := cmd.Flags().GetString("search")
		search = strings.ToLower(search)

		shown := 0
		for i := range clients {
			c := &clients[i]
			if search != "" && !strings.Contains(strings.ToLower(c.Name), search) && !strings.Contains(c.CPF, search) {
				continue
			}
			fmt.Println(ui.FormatClient(c))
			shown++
		}
		if shown == 0 {
			fmt.Println("No clients found.")
		}
		return nil
	},
}

var clientRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove"},
	Short:   "Remove a client",
	Long: `Remove a client. Vehicles, policies and claims that reference the
client are kept and will show "Cliente não encontrado".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := store.GetClient(args[0])
		if err != nil {
			return lookupError("client", args[0], err)
		}

		if !confirmed(cmd, fmt.Sprintf("Remove client '%s'?", c.Name)) {
			return nil
		}

		if err := store.DeleteClient(c.ID); err != nil {
			return fmt.Errorf("failed to remove client: %w", err)
		}

		color.Green("✓ Removed client %s", c.Name)
		return nil
	},
}

func addClientFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "full name")
	cmd.Flags().String("cpf", "", "CPF (123.456.789-00)")
	cmd.Flags().String("email", "", "email address")
	cmd.Flags().String("phone", "", "phone number")
}

func readClientFlags(cmd *cobra.Command, c *models.Client) {
	setIfChanged(cmd, "name", &c.Name)
	setIfChanged(cmd, "cpf", &c.CPF)
	setIfChanged(cmd, "email", &c.Email)
	setIfChanged(cmd, "phone", &c.Phone)
}

func init() {
	addClientFlags(clientAddCmd)
	_ = clientAddCmd.MarkFlagRequired("name")
	_ = clientAddCmd.MarkFlagRequired("cpf")
	addClientFlags(clientEditCmd)
	clientListCmd.Flags().StringP("search", "s", "", "filter by name or CPF fragment")
	clientRemoveCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	clientCmd.AddCommand(clientAddCmd, clientEditCmd, clientListCmd, clientRemoveCmd)
	rootCmd.AddCommand(clientCmd)
}
