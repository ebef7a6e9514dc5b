package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"visitor-pass-console/internal/access"
	"visitor-pass-console/internal/collection"
	"visitor-pass-console/internal/console"
	"visitor-pass-console/internal/model"
	"visitor-pass-console/internal/roster"
)

var (
	employeeIn     model.EmployeeInput
	employeeStatus string
	importDryRun   bool
)

var employeesCmd = &cobra.Command{
	Use:   "employees",
	Short: "Manage employee records",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		_, err := requirePage(cmd.Context(), access.PageEmployees)
		return err
	},
}

var employeesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List employees",
	RunE: func(cmd *cobra.Command, args []string) error {
		printTable(out(cmd), console.EmployeeTable(con.Employees.List(cmd.Context())), "No employees found.")
		return nil
	},
}

var employeesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an employee",
	RunE: func(cmd *cobra.Command, args []string) error {
		employeeIn.Status = model.Status(employeeStatus)
		if err := employeeIn.Validate(); err != nil {
			return err
		}
		e := con.Employees.Add(cmd.Context(), employeeIn)
		fmt.Fprintf(out(cmd), "Employee %s added with id %s\n", e.FullName, e.ID)
		return nil
	},
}

var employeesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit an employee",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		existing, ok := con.Employees.Find(ctx, args[0])
		if !ok {
			return collection.ErrNotFound
		}

		var patch model.EmployeePatch
		flags := cmd.Flags()
		changed(flags, "name", &patch.FullName, employeeIn.FullName)
		changed(flags, "card", &patch.CardNumber, employeeIn.CardNumber)
		changed(flags, "position", &patch.Position, employeeIn.Position)
		changed(flags, "department", &patch.Department, employeeIn.Department)
		changed(flags, "building", &patch.Building, employeeIn.Building)
		changed(flags, "phone", &patch.Phone, employeeIn.Phone)
		changed(flags, "email", &patch.Email, employeeIn.Email)
		changed(flags, "status", &patch.Status, model.Status(employeeStatus))

		if err := patch.ValidateAgainst(existing); err != nil {
			return err
		}
		e, _ := con.Employees.Update(ctx, args[0], patch)
		fmt.Fprintf(out(cmd), "Employee %s updated\n", e.ID)
		return nil
	},
}

var employeesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an employee",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !con.Employees.Delete(cmd.Context(), args[0]) {
			return collection.ErrNotFound
		}
		fmt.Fprintf(out(cmd), "Employee %s deleted\n", args[0])
		return nil
	},
}

var employeesImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Add employees from a roster export (tab or comma separated)",
	Long: `Reads a roster exported from an HR system. The file may be UTF-8 or UTF-16
with a byte order mark. English and Russian column headers are recognised.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := roster.ReadFile(args[0])
		if err != nil {
			return err
		}

		w := out(cmd)
		for _, skipped := range res.Skipped {
			fmt.Fprintf(cmd.ErrOrStderr(), "Skipped %v\n", skipped)
		}
		if importDryRun {
			fmt.Fprintf(w, "%d employees would be imported, %d rows skipped\n", len(res.Employees), len(res.Skipped))
			return nil
		}

		for _, in := range res.Employees {
			con.Employees.Add(cmd.Context(), in)
		}
		fmt.Fprintf(w, "Imported %d employees, skipped %d rows\n", len(res.Employees), len(res.Skipped))
		return nil
	},
}

func employeeFlags(cmd *cobra.Command, required bool) {
	f := cmd.Flags()
	f.StringVar(&employeeIn.FullName, "name", "", "full name")
	f.StringVar(&employeeIn.CardNumber, "card", "", "access card number")
	f.StringVar(&employeeIn.Position, "position", "", "position")
	f.StringVar(&employeeIn.Department, "department", "", "department")
	f.StringVar(&employeeIn.Building, "building", "", "building name")
	f.StringVar(&employeeIn.Phone, "phone", "", "phone number")
	f.StringVar(&employeeIn.Email, "email", "", "email address")
	f.StringVar(&employeeStatus, "status", "", "active or inactive")
	if required {
		for _, name := range []string{"name", "position", "department"} {
			cmd.MarkFlagRequired(name)
		}
	}
}

func init() {
	employeeFlags(employeesAddCmd, true)
	employeeFlags(employeesUpdateCmd, false)
	employeesImportCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "only report what would be imported")

	employeesCmd.AddCommand(employeesListCmd, employeesAddCmd, employeesUpdateCmd, employeesDeleteCmd, employeesImportCmd)
	rootCmd.AddCommand(employeesCmd)
}
