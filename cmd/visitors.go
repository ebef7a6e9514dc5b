package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"visitor-pass-console/internal/access"
	"visitor-pass-console/internal/collection"
	"visitor-pass-console/internal/console"
	"visitor-pass-console/internal/dashboard"
	"visitor-pass-console/internal/email"
	"visitor-pass-console/internal/jwt"
	"visitor-pass-console/internal/model"
	"visitor-pass-console/internal/pass"
)

var (
	visitorIn     model.VisitorInput
	visitorStatus string
	visitorDate   string
	passQRFile    string
)

var errNoSecret = errors.New("no secret configured, passes issued here could not be verified")

var visitorsCmd = &cobra.Command{
	Use:   "visitors",
	Short: "Register visitors and record approval decisions",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		_, err := requirePage(cmd.Context(), access.PageVisitors)
		return err
	},
}

var visitorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List visitors",
	RunE: func(cmd *cobra.Command, args []string) error {
		visitors := con.Visitors.List(cmd.Context())
		if visitorDate != "" {
			visitors = dashboard.VisitorsOn(visitors, visitorDate)
		}
		if visitorStatus != "" {
			var filtered []model.Visitor
			for _, v := range visitors {
				if string(v.Status) == visitorStatus {
					filtered = append(filtered, v)
				}
			}
			visitors = filtered
		}
		printTable(out(cmd), console.VisitorTable(visitors), "No visitors found.")
		return nil
	},
}

var visitorsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a visitor awaiting approval",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := visitorIn.Validate(); err != nil {
			return err
		}

		ctx := cmd.Context()
		v := con.Visitors.Add(ctx, visitorIn)
		notifyRegistered(ctx, v)

		fmt.Fprintf(out(cmd), "Visitor %s registered with id %s (pending)\n", v.FullName, v.ID)
		return nil
	},
}

// notifyRegistered mails the notice before the command exits.
func notifyRegistered(ctx context.Context, v model.Visitor) {
	if !cfg.Email.Enabled() {
		return
	}
	client, err := email.NewClient(cfg.Email)
	if err != nil {
		slog.Error("Failed to initialize mail", "error", err)
		return
	}
	msg, err := email.RenderVisitorRegistered(v)
	if err != nil {
		slog.Error("Failed to render visitor notification", "error", err)
		return
	}
	msg.To = []string{cfg.Email.Notify}
	if err := client.Send(ctx, msg); err != nil {
		slog.Error("Failed to send visitor notification", "error", err, "visitor", v.ID)
	}
}

var visitorsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit a visitor's details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		existing, ok := con.Visitors.Find(ctx, args[0])
		if !ok {
			return collection.ErrNotFound
		}

		var patch model.VisitorPatch
		flags := cmd.Flags()
		changed(flags, "name", &patch.FullName, visitorIn.FullName)
		changed(flags, "card", &patch.CardNumber, visitorIn.CardNumber)
		changed(flags, "destination", &patch.Destination, visitorIn.Destination)
		changed(flags, "date", &patch.VisitDate, visitorIn.VisitDate)
		changed(flags, "time", &patch.VisitTime, visitorIn.VisitTime)
		changed(flags, "purpose", &patch.Purpose, visitorIn.Purpose)

		if err := patch.ValidateAgainst(existing); err != nil {
			return err
		}
		v, _ := con.Visitors.Update(ctx, args[0], patch)
		fmt.Fprintf(out(cmd), "Visitor %s updated\n", v.ID)
		return nil
	},
}

func decisionCmd(use, short string, decide func(ctx context.Context, id string) (model.Visitor, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := decide(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Visitor %s is now %s\n", v.ID, v.Status)
			return nil
		},
	}
}

var visitorsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a visitor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !con.Visitors.Delete(cmd.Context(), args[0]) {
			return collection.ErrNotFound
		}
		fmt.Fprintf(out(cmd), "Visitor %s deleted\n", args[0])
		return nil
	},
}

var visitorsPassCmd = &cobra.Command{
	Use:   "pass <id>",
	Short: "Issue a signed pass for an approved visitor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Secret == "" {
			return errNoSecret
		}
		v, ok := con.Visitors.Find(cmd.Context(), args[0])
		if !ok {
			return collection.ErrNotFound
		}

		p, err := pass.NewIssuer(jwt.NewSigner(cfg.Secret), cfg.PassTTL()).Issue(v)
		if err != nil {
			return err
		}

		content := p.Token
		if cfg.BaseURL != "" {
			content = cfg.BaseURL + "/pass/" + p.Token
		}
		fmt.Fprintln(out(cmd), content)

		if passQRFile == "" {
			return nil
		}
		png, err := pass.QR(content, pass.DefaultQRSize)
		if err != nil {
			return fmt.Errorf("failed to generate QR code: %w", err)
		}
		if err := os.WriteFile(passQRFile, png, 0o644); err != nil {
			return fmt.Errorf("failed to save QR code: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "QR code saved to %s\n", passQRFile)
		return nil
	},
}

func visitorFlags(cmd *cobra.Command, required bool) {
	f := cmd.Flags()
	f.StringVar(&visitorIn.FullName, "name", "", "full name")
	f.StringVar(&visitorIn.CardNumber, "card", "", "identity card number")
	f.StringVar(&visitorIn.Destination, "destination", "", "building being visited")
	f.StringVar(&visitorIn.VisitDate, "date", "", "visit date (YYYY-MM-DD)")
	f.StringVar(&visitorIn.VisitTime, "time", "", "visit time (HH:MM)")
	f.StringVar(&visitorIn.Purpose, "purpose", "", "purpose of the visit")
	if required {
		for _, name := range []string{"name", "card", "date", "time"} {
			cmd.MarkFlagRequired(name)
		}
	}
}

func init() {
	visitorsListCmd.Flags().StringVar(&visitorStatus, "status", "", "only visitors with this status")
	visitorsListCmd.Flags().StringVar(&visitorDate, "date", "", "only visitors on this date (YYYY-MM-DD)")
	visitorFlags(visitorsAddCmd, true)
	visitorFlags(visitorsUpdateCmd, false)
	visitorsPassCmd.Flags().StringVar(&passQRFile, "qr", "", "also write the pass as a QR code PNG to this file")

	visitorsCmd.AddCommand(
		visitorsListCmd,
		visitorsAddCmd,
		visitorsUpdateCmd,
		decisionCmd("approve", "Approve a pending visitor", func(ctx context.Context, id string) (model.Visitor, error) {
			return con.Visitors.Approve(ctx, id)
		}),
		decisionCmd("deny", "Deny a pending visitor", func(ctx context.Context, id string) (model.Visitor, error) {
			return con.Visitors.Deny(ctx, id)
		}),
		decisionCmd("complete", "Mark an approved visit as finished", func(ctx context.Context, id string) (model.Visitor, error) {
			return con.Visitors.Complete(ctx, id)
		}),
		visitorsDeleteCmd,
		visitorsPassCmd,
	)
	rootCmd.AddCommand(visitorsCmd)
}
