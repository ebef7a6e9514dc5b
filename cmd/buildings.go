package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"visitor-pass-console/internal/access"
	"visitor-pass-console/internal/collection"
	"visitor-pass-console/internal/console"
	"visitor-pass-console/internal/model"
)

var (
	buildingIn          model.BuildingInput
	buildingDepartments string
)

var buildingsCmd = &cobra.Command{
	Use:   "buildings",
	Short: "Manage buildings",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		_, err := requirePage(cmd.Context(), access.PageBuildings)
		return err
	},
}

var buildingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List buildings",
	RunE: func(cmd *cobra.Command, args []string) error {
		printTable(out(cmd), console.BuildingTable(con.Buildings.List(cmd.Context())), "No buildings found.")
		return nil
	},
}

var buildingsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a building",
	RunE: func(cmd *cobra.Command, args []string) error {
		buildingIn.Departments = model.ParseDepartments(buildingDepartments)
		if err := buildingIn.Validate(); err != nil {
			return err
		}
		b := con.Buildings.Add(cmd.Context(), buildingIn)
		fmt.Fprintf(out(cmd), "Building %s added with id %s\n", b.Name, b.ID)
		return nil
	},
}

var buildingsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit a building",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		existing, ok := con.Buildings.Find(ctx, args[0])
		if !ok {
			return collection.ErrNotFound
		}

		var patch model.BuildingPatch
		flags := cmd.Flags()
		changed(flags, "name", &patch.Name, buildingIn.Name)
		changed(flags, "address", &patch.Address, buildingIn.Address)
		changed(flags, "description", &patch.Description, buildingIn.Description)
		changed(flags, "floors", &patch.FloorCount, buildingIn.FloorCount)
		changed(flags, "departments", &patch.Departments, model.ParseDepartments(buildingDepartments))

		if err := patch.ValidateAgainst(existing); err != nil {
			return err
		}
		b, _ := con.Buildings.Update(ctx, args[0], patch)
		fmt.Fprintf(out(cmd), "Building %s updated\n", b.ID)
		return nil
	},
}

var buildingsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a building",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !con.Buildings.Delete(cmd.Context(), args[0]) {
			return collection.ErrNotFound
		}
		fmt.Fprintf(out(cmd), "Building %s deleted\n", args[0])
		return nil
	},
}

func buildingFlags(cmd *cobra.Command, required bool) {
	f := cmd.Flags()
	f.StringVar(&buildingIn.Name, "name", "", "building name")
	f.StringVar(&buildingIn.Address, "address", "", "street address")
	f.StringVar(&buildingIn.Description, "description", "", "description")
	f.IntVar(&buildingIn.FloorCount, "floors", 1, "number of floors")
	f.StringVar(&buildingDepartments, "departments", "", "comma separated department names")
	if required {
		cmd.MarkFlagRequired("name")
		cmd.MarkFlagRequired("address")
	}
}

func init() {
	buildingFlags(buildingsAddCmd, true)
	buildingFlags(buildingsUpdateCmd, false)

	buildingsCmd.AddCommand(buildingsListCmd, buildingsAddCmd, buildingsUpdateCmd, buildingsDeleteCmd)
	rootCmd.AddCommand(buildingsCmd)
}
