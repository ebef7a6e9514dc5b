package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"visitor-pass-console/internal/console"
)

func printTable(w io.Writer, t console.Table, empty string) {
	if len(t.Rows) == 0 {
		fmt.Fprintln(w, empty)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.Columns, "\t"))
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
	fmt.Fprintf(w, "\nTotal: %d\n", len(t.Rows))
}
