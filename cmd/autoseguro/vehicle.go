// ABOUTME: Vehicle commands: add, edit, list, and remove insured cars
// ABOUTME: Plates are stored upper-case and must be unique

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harper/autoseguro/internal/models"
	"github.com/harper/autoseguro/internal/storage"
	"github.com/harper/autoseguro/internal/ui"
	"github.com/spf13/cobra"
)

var vehicleCmd = &cobra.Command{
	Use:     "vehicle",
	Aliases: []string{"vehicles", "v"},
	Short:   "Manage insured vehicles",
}

var vehicleAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a vehicle",
	Long: `Register a vehicle owned by an existing client.

Examples:
  autoseguro vehicle add --plate XYZ-9876 --model "Honda Civic" --year 2021 --color Preto --client 1`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v := &models.Vehicle{}
		readVehicleFlags(cmd, v)
		if err := checkVehicle(cmd, v); err != nil {
			return err
		}

		if err := store.SaveVehicle(v); err != nil {
			return fmt.Errorf("failed to save vehicle: %w", err)
		}

		color.Green("✓ Added vehicle %s", v.Plate)
		return nil
	},
}

var vehicleEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a vehicle's details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := store.GetVehicle(args[0])
		if err != nil {
			return lookupError("vehicle", args[0], err)
		}
		readVehicleFlags(cmd, v)
		if err := checkVehicle(cmd, v); err != nil {
			return err
		}

		if err := store.SaveVehicle(v); err != nil {
			return fmt.Errorf("failed to save vehicle: %w", err)
		}

		color.Green("✓ Updated vehicle %s", v.Plate)
		return nil
	},
}

var vehicleListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List vehicles with their owners",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := store.Load()
		if err != nil {
			return fmt.Errorf("failed to load records: %w", err)
		}

		vehicles := ds.Vehicles
		if owner, _ := cmd.Flags().GetString("client"); owner != "" {
			vehicles = ds.VehiclesOf(owner)
		}

		if len(vehicles) == 0 {
			fmt.Println("No vehicles found.")
			return nil
		}
		for i := range vehicles {
			fmt.Println(ui.FormatVehicle(ds, &vehicles[i]))
		}
		return nil
	},
}

var vehicleRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove"},
	Short:   "Remove a vehicle",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := store.GetVehicle(args[0])
		if err != nil {
			return lookupError("vehicle", args[0], err)
		}

		if !confirmed(cmd, fmt.Sprintf("Remove vehicle '%s'?", v.Plate)) {
			return nil
		}

		if err := store.DeleteVehicle(v.ID); err != nil {
			return fmt.Errorf("failed to remove vehicle: %w", err)
		}

		color.Green("✓ Removed vehicle %s", v.Plate)
		return nil
	},
}

// checkVehicle validates v, the owner given with --client and plate
// uniqueness. A stored owner that was since removed is tolerated.
func checkVehicle(cmd *cobra.Command, v *models.Vehicle) error {
	if err := models.ValidateVehicle(v); err != nil {
		return err
	}
	if v.ClientID != "" && cmd.Flags().Changed("client") {
		if _, err := store.GetClient(v.ClientID); err != nil {
			return lookupError("client", v.ClientID, err)
		}
	}

	existing, err := store.GetVehicleByPlate(v.Plate)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != v.ID:
		return fmt.Errorf("plate %s is already registered", v.Plate)
	}
	return nil
}

func addVehicleFlags(cmd *cobra.Command) {
	cmd.Flags().String("plate", "", "license plate (ABC-1234)")
	cmd.Flags().String("model", "", "make and model")
	cmd.Flags().String("year", "", "model year")
	cmd.Flags().String("color", "", "color")
	cmd.Flags().String("client", "", "owner client id")
}

func readVehicleFlags(cmd *cobra.Command, v *models.Vehicle) {
	setIfChanged(cmd, "plate", &v.Plate)
	setIfChanged(cmd, "model", &v.Model)
	setIfChanged(cmd, "year", &v.Year)
	setIfChanged(cmd, "color", &v.Color)
	setIfChanged(cmd, "client", &v.ClientID)
	v.Plate = strings.ToUpper(strings.TrimSpace(v.Plate))
}

func init() {
	addVehicleFlags(vehicleAddCmd)
	_ = vehicleAddCmd.MarkFlagRequired("plate")
	addVehicleFlags(vehicleEditCmd)
	vehicleListCmd.Flags().String("client", "", "only vehicles owned by this client id")
	vehicleRemoveCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	vehicleCmd.AddCommand(vehicleAddCmd, vehicleEditCmd, vehicleListCmd, vehicleRemoveCmd)
	rootCmd.AddCommand(vehicleCmd)
}
