// ABOUTME: Policy commands: add, edit, list, and remove insurance policies
// ABOUTME: A policy covers one vehicle; the client defaults to the vehicle's owner

package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harper/autoseguro/internal/models"
	"github.com/harper/autoseguro/internal/ui"
	"github.com/spf13/cobra"
)

var policyCmd = &cobra.Command{
	Use:     "policy",
	Aliases: []string{"policies", "p"},
	Short:   "Manage insurance policies",
}

var policyAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a policy",
	Long: `Register a policy for a registered vehicle.

Examples:
  autoseguro policy add --plate ABC-1234 --start 2024-01-01 --end 2025-01-01 --value "R$ 2.500,00"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := &models.Policy{}
		readPolicyFlags(cmd, p)
		if err := checkPolicy(cmd, p); err != nil {
			return err
		}

		if err := store.SavePolicy(p); err != nil {
			return fmt.Errorf("failed to save policy: %w", err)
		}

		color.Green("✓ Added policy for %s", p.VehiclePlate)
		return nil
	},
}

var policyEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a policy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := store.GetPolicy(args[0])
		if err != nil {
			return lookupError("policy", args[0], err)
		}
		readPolicyFlags(cmd, p)
		if err := checkPolicy(cmd, p); err != nil {
			return err
		}

		if err := store.SavePolicy(p); err != nil {
			return fmt.Errorf("failed to save policy: %w", err)
		}

		color.Green("✓ Updated policy for %s", p.VehiclePlate)
		return nil
	},
}

var policyListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List policies",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := store.Load()
		if err != nil {
			return fmt.Errorf("failed to load records: %w", err)
		}

		plate, _ := cmd.Flags().GetString("plate")
		shown := 0
		for i := range ds.Policies {
			p := &ds.Policies[i]
			if plate != "" && !strings.EqualFold(p.VehiclePlate, plate) {
				continue
			}
			fmt.Println(ui.FormatPolicy(ds, p))
			shown++
		}
		if shown == 0 {
			fmt.Println("No policies found.")
		}
		return nil
	},
}

var policyRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove"},
	Short:   "Remove a policy",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := store.GetPolicy(args[0])
		if err != nil {
			return lookupError("policy", args[0], err)
		}

		if !confirmed(cmd, fmt.Sprintf("Remove policy for '%s' (%s to %s)?", p.VehiclePlate, p.StartDate, p.EndDate)) {
			return nil
		}

		if err := store.DeletePolicy(p.ID); err != nil {
			return fmt.Errorf("failed to remove policy: %w", err)
		}

		color.Green("✓ Removed policy for %s", p.VehiclePlate)
		return nil
	},
}

// checkPolicy validates p. Like checkClaim, only a plate given on the
// command line is looked up.
func checkPolicy(cmd *cobra.Command, p *models.Policy) error {
	if err := models.ValidatePolicy(p); err != nil {
		return err
	}
	if !cmd.Flags().Changed("plate") {
		return nil
	}
	v, err := store.GetVehicleByPlate(p.VehiclePlate)
	if err != nil {
		return lookupError("vehicle", p.VehiclePlate, err)
	}
	if p.ClientID == "" {
		p.ClientID = v.ClientID
	}
	return nil
}

func addPolicyFlags(cmd *cobra.Command) {
	cmd.Flags().String("plate", "", "covered vehicle plate")
	cmd.Flags().String("client", "", "policy holder client id (default: vehicle owner)")
	cmd.Flags().String("start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().String("value", "", `premium (e.g., "R$ 2.500,00")`)
}

func readPolicyFlags(cmd *cobra.Command, p *models.Policy) {
	setIfChanged(cmd, "plate", &p.VehiclePlate)
	setIfChanged(cmd, "client", &p.ClientID)
	setIfChanged(cmd, "start", &p.StartDate)
	setIfChanged(cmd, "end", &p.EndDate)
	setIfChanged(cmd, "value", &p.Value)
	p.VehiclePlate = strings.ToUpper(strings.TrimSpace(p.VehiclePlate))
}

func init() {
	addPolicyFlags(policyAddCmd)
	_ = policyAddCmd.MarkFlagRequired("plate")
	addPolicyFlags(policyEditCmd)
	policyListCmd.Flags().String("plate", "", "only policies covering this plate")
	policyRemoveCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	policyCmd.AddCommand(policyAddCmd, policyEditCmd, policyListCmd, policyRemoveCmd)
	rootCmd.AddCommand(policyCmd)
}
