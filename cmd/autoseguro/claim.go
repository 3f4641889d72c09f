// ABOUTME: Claim commands: add, edit, list, and remove incident reports
// ABOUTME: New claims start as Pendente; --status accepts stored values or English aliases

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harper/autoseguro/internal/models"
	"github.com/harper/autoseguro/internal/ui"
	"github.com/spf13/cobra"
)

var claimCmd = &cobra.Command{
	Use:     "claim",
	Aliases: []string{"claims"},
	Short:   "Manage claims",
}

var claimAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Report a claim",
	Long: `Report a claim against a registered vehicle.

Examples:
  autoseguro claim add --plate ABC-1234 --description "Colisão traseira"
  autoseguro claim add --plate ABC-1234 --date 2024-02-15 --status review`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := &models.Claim{
			Date:   time.Now().Format(models.DateLayout),
			Status: models.StatusPending,
		}
		if err := readClaimFlags(cmd, c); err != nil {
			return err
		}
		if err := checkClaim(cmd, c); err != nil {
			return err
		}

		if err := store.SaveClaim(c); err != nil {
			return fmt.Errorf("failed to save claim: %w", err)
		}

		color.Green("✓ Added claim for %s (%s)", c.VehiclePlate, c.Status)
		return nil
	},
}

var claimEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a claim or move it to another status",
	Long: `Change the given fields of a claim. Fields not passed are kept.

Examples:
  autoseguro claim edit 1 --status completed`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := store.GetClaim(args[0])
		if err != nil {
			return lookupError("claim", args[0], err)
		}
		if err := readClaimFlags(cmd, c); err != nil {
			return err
		}
		if err := checkClaim(cmd, c); err != nil {
			return err
		}

		if err := store.SaveClaim(c); err != nil {
			return fmt.Errorf("failed to save claim: %w", err)
		}

		color.Green("✓ Updated claim for %s (%s)", c.VehiclePlate, c.Status)
		return nil
	},
}

var claimListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List claims",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var want models.ClaimStatus
		if s, _ := cmd.Flags().GetString("status"); s != "" {
			st, err := models.ParseClaimStatus(s)
			if err != nil {
				return err
			}
			want = st
		}

		ds, err := store.Load()
		if err != nil {
			return fmt.Errorf("failed to load records: %w", err)
		}

		shown := 0
		for i := range ds.Claims {
			c := &ds.Claims[i]
			if want != "" && c.Status != want {
				continue
			}
			fmt.Println(ui.FormatClaim(ds, c))
			shown++
		}
		if shown == 0 {
			fmt.Println("No claims found.")
		}
		return nil
	},
}

var claimRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove"},
	Short:   "Remove a claim",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := store.GetClaim(args[0])
		if err != nil {
			return lookupError("claim", args[0], err)
		}

		if !confirmed(cmd, fmt.Sprintf("Remove claim for '%s' from %s?", c.VehiclePlate, c.Date)) {
			return nil
		}

		if err := store.DeleteClaim(c.ID); err != nil {
			return fmt.Errorf("failed to remove claim: %w", err)
		}

		color.Green("✓ Removed claim for %s", c.VehiclePlate)
		return nil
	},
}

// checkClaim validates c. A plate given on the command line must belong to
// a registered vehicle, whose owner fills an empty client; a stored plate is
// kept even when its vehicle was removed.
func checkClaim(cmd *cobra.Command, c *models.Claim) error {
	if err := models.ValidateClaim(c); err != nil {
		return err
	}
	if !cmd.Flags().Changed("plate") {
		return nil
	}
	v, err := store.GetVehicleByPlate(c.VehiclePlate)
	if err != nil {
		return lookupError("vehicle", c.VehiclePlate, err)
	}
	if c.ClientID == "" {
		c.ClientID = v.ClientID
	}
	return nil
}

func addClaimFlags(cmd *cobra.Command) {
	cmd.Flags().String("plate", "", "vehicle plate")
	cmd.Flags().String("client", "", "client id (default: vehicle owner)")
	cmd.Flags().String("date", "", "incident date (YYYY-MM-DD, default today)")
	cmd.Flags().StringP("description", "d", "", "what happened")
	cmd.Flags().String("status", "", "pending, review, or completed")
}

func readClaimFlags(cmd *cobra.Command, c *models.Claim) error {
	setIfChanged(cmd, "plate", &c.VehiclePlate)
	setIfChanged(cmd, "client", &c.ClientID)
	setIfChanged(cmd, "date", &c.Date)
	setIfChanged(cmd, "description", &c.Description)
	c.VehiclePlate = strings.ToUpper(strings.TrimSpace(c.VehiclePlate))

	if cmd.Flags().Changed("status") {
		s, _ := cmd.Flags().GetString("status")
		st, err := models.ParseClaimStatus(s)
		if err != nil {
			return err
		}
		c.Status = st
	}
	return nil
}

func init() {
	addClaimFlags(claimAddCmd)
	_ = claimAddCmd.MarkFlagRequired("plate")
	addClaimFlags(claimEditCmd)
	claimListCmd.Flags().String("status", "", "only claims in this status")
	claimRemoveCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	claimCmd.AddCommand(claimAddCmd, claimEditCmd, claimListCmd, claimRemoveCmd)
	rootCmd.AddCommand(claimCmd)
}
