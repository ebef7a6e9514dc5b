package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"visitor-pass-console/internal/access"
	"visitor-pass-console/internal/collection"
	"visitor-pass-console/internal/console"
	"visitor-pass-console/internal/model"
)

var (
	operatorIn          model.OperatorInput
	operatorRole        string
	operatorShift       string
	operatorStatus      string
	operatorPermissions []string
	operatorNewPassword bool
)

var errUsernameTaken = errors.New("username is already taken")

var operatorsCmd = &cobra.Command{
	Use:   "operators",
	Short: "Manage operator accounts",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		_, err := requirePage(cmd.Context(), access.PageOperators)
		return err
	},
}

var operatorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List operators",
	RunE: func(cmd *cobra.Command, args []string) error {
		printTable(out(cmd), console.OperatorTable(con.Operators.List(cmd.Context())), "No operators found.")
		return nil
	},
}

var operatorsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an operator; the password is prompted for",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		password, err := readPassword(cmd, "Password for "+operatorIn.Username+": ")
		if err != nil {
			return err
		}

		operatorIn.Password = password
		operatorIn.Role = model.Role(operatorRole)
		operatorIn.Shift = model.Shift(operatorShift)
		operatorIn.Status = model.Status(operatorStatus)
		operatorIn.Permissions = operatorPermissions
		if err := operatorIn.Validate(); err != nil {
			return err
		}
		if con.Operators.UsernameTaken(ctx, operatorIn.Username, "") {
			return errUsernameTaken
		}

		op, err := con.Operators.Add(ctx, operatorIn)
		if err != nil {
			return err
		}
		fmt.Fprintf(out(cmd), "Operator %s added with id %s\n", op.Username, op.ID)
		return nil
	},
}

var operatorsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit an operator",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		existing, ok := con.Operators.Find(ctx, args[0])
		if !ok {
			return collection.ErrNotFound
		}

		var patch model.OperatorPatch
		flags := cmd.Flags()
		changed(flags, "name", &patch.FullName, operatorIn.FullName)
		changed(flags, "username", &patch.Username, operatorIn.Username)
		changed(flags, "role", &patch.Role, model.Role(operatorRole))
		changed(flags, "shift", &patch.Shift, model.Shift(operatorShift))
		changed(flags, "status", &patch.Status, model.Status(operatorStatus))
		changed(flags, "permissions", &patch.Permissions, operatorPermissions)

		if operatorNewPassword {
			password, err := readPassword(cmd, "New password: ")
			if err != nil {
				return err
			}
			patch.Password = &password
		}

		if err := patch.ValidateAgainst(existing); err != nil {
			return err
		}
		if patch.Username != nil && con.Operators.UsernameTaken(ctx, *patch.Username, existing.ID) {
			return errUsernameTaken
		}

		op, _, err := con.Operators.Update(ctx, args[0], patch)
		if err != nil {
			return err
		}
		fmt.Fprintf(out(cmd), "Operator %s updated\n", op.Username)
		return nil
	},
}

var operatorsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an operator",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !con.Operators.Delete(cmd.Context(), args[0]) {
			return collection.ErrNotFound
		}
		fmt.Fprintf(out(cmd), "Operator %s deleted\n", args[0])
		return nil
	},
}

func operatorFlags(cmd *cobra.Command, required bool) {
	f := cmd.Flags()
	f.StringVar(&operatorIn.FullName, "name", "", "full name")
	f.StringVar(&operatorIn.Username, "username", "", "login name")
	f.StringVar(&operatorRole, "role", string(model.RoleOperator), "admin or operator")
	f.StringVar(&operatorShift, "shift", string(model.ShiftMorning), "morning, evening or night")
	f.StringVar(&operatorStatus, "status", "", "active or inactive")
	f.StringSliceVar(&operatorPermissions, "permissions", nil,
		"permissions, any of: "+strings.Join([]string{
			model.PermissionAll, model.PermissionViewVisitors, model.PermissionManageVisitors,
			model.PermissionViewEmployees, model.PermissionManageEmployees, model.PermissionViewBuildings,
			model.PermissionManageBuildings, model.PermissionViewReports, model.PermissionSystemSettings,
		}, ", "))
	if required {
		cmd.MarkFlagRequired("name")
		cmd.MarkFlagRequired("username")
	}
}

func init() {
	operatorFlags(operatorsAddCmd, true)
	operatorFlags(operatorsUpdateCmd, false)
	operatorsUpdateCmd.Flags().BoolVar(&operatorNewPassword, "password", false, "prompt for a new password")

	operatorsCmd.AddCommand(operatorsListCmd, operatorsAddCmd, operatorsUpdateCmd, operatorsDeleteCmd)
	rootCmd.AddCommand(operatorsCmd)
}
