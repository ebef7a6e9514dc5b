package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"visitor-pass-console/internal/access"
	"visitor-pass-console/internal/model"
	"visitor-pass-console/internal/session"
)

var errNotLoggedIn = errors.New("not logged in, run the login command first")

var loginUsername string

func newSession(ctx context.Context) *session.Manager {
	return session.NewManager(ctx, con.Operators, session.NewSlotStore(con.Provider),
		session.WithRevalidation(cfg.Session.Revalidate))
}

// requirePage returns the signed-in operator when the page policy lets them open page.
func requirePage(ctx context.Context, page string) (model.Operator, error) {
	op, ok := newSession(ctx).Current(ctx)
	if !ok {
		return model.Operator{}, errNotLoggedIn
	}
	if con.Policy.Check(&op, page) == access.Deny {
		return model.Operator{}, errors.New(access.DeniedNotice)
	}
	return op, nil
}

// readPassword prompts on the terminal without echo, or reads a line from
// piped input.
func readPassword(cmd *cobra.Command, prompt string) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		fmt.Fprint(cmd.ErrOrStderr(), prompt)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.ErrOrStderr())
		return string(b), err
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in as an operator",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		password, err := readPassword(cmd, "Password: ")
		if err != nil {
			return err
		}

		op, err := newSession(ctx).Login(ctx, loginUsername, password)
		if err != nil {
			return err
		}
		fmt.Fprintf(out(cmd), "Signed in as %s (%s)\n", op.FullName, op.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	RunE: func(cmd *cobra.Command, args []string) error {
		newSession(cmd.Context()).Logout(cmd.Context())
		fmt.Fprintln(out(cmd), "Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in operator and the pages they may open",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		op, ok := newSession(ctx).Current(ctx)
		if !ok {
			return errNotLoggedIn
		}

		fmt.Fprintf(out(cmd), "%s (%s)\nRole: %s\nShift: %s\nPermissions: %s\n",
			op.FullName, op.Username, op.Role, op.Shift, strings.Join(op.Permissions, ", "))

		var pages []string
		for _, p := range con.Policy.Visible(&op) {
			pages = append(pages, p.Name)
		}
		fmt.Fprintf(out(cmd), "Pages: %s\n", strings.Join(pages, ", "))
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "operator username")
	loginCmd.MarkFlagRequired("username")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}
