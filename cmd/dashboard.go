package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"visitor-pass-console/internal/access"
	"visitor-pass-console/internal/console"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show today's visitors, pending approvals and recent registrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if _, err := requirePage(ctx, access.PageDashboard); err != nil {
			return err
		}

		s := con.Dashboard(ctx)
		w := out(cmd)
		fmt.Fprintf(w, "Date:              %s\n", s.Date)
		fmt.Fprintf(w, "Visitors today:    %d\n", len(s.TodayVisitors))
		fmt.Fprintf(w, "Pending approval:  %d\n", len(s.PendingVisitors))
		fmt.Fprintf(w, "Active employees:  %d\n", len(s.ActiveEmployees))
		fmt.Fprintf(w, "Employees:         %d\n", s.TotalEmployees)
		fmt.Fprintf(w, "Buildings:         %d\n", s.TotalBuildings)

		fmt.Fprintln(w, "\nRecent visitors")
		printTable(w, console.VisitorTable(s.RecentVisitors), "No visitors registered yet.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
