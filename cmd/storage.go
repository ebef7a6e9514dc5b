package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"visitor-pass-console/internal/access"
	"visitor-pass-console/internal/storage"
)

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Back up and restore stored slots",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		_, err := requirePage(cmd.Context(), access.PageOperators)
		return err
	},
}

var storageExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write every slot as one JSON document, to stdout when no file is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		keys, err := con.Provider.Keys(ctx)
		if err != nil {
			return err
		}
		sort.Strings(keys)

		slots := make(map[string]json.RawMessage, len(keys))
		for _, key := range keys {
			data, err := con.Provider.Get(ctx, key)
			if err != nil {
				return fmt.Errorf("reading slot %q: %w", key, err)
			}
			if !json.Valid(data) {
				slog.Warn("Skipping slot with non-JSON contents", "key", key)
				continue
			}
			slots[key] = data
		}

		var w io.Writer = out(cmd)
		if len(args) == 1 {
			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}

		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(slots)
	},
}

var storageImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore slots from an export, replacing slots with the same key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		var slots map[string]json.RawMessage
		if err := json.Unmarshal(data, &slots); err != nil {
			return fmt.Errorf("parsing %s: %w", args[0], err)
		}
		for key := range slots {
			if err := storage.ValidateKey(key); err != nil {
				return err
			}
		}

		for key, raw := range slots {
			if err := con.Provider.Put(ctx, key, raw); err != nil {
				return fmt.Errorf("writing slot %q: %w", key, err)
			}
		}
		fmt.Fprintf(out(cmd), "Restored %d slots\n", len(slots))
		return nil
	},
}

func init() {
	storageCmd.AddCommand(storageExportCmd, storageImportCmd)
	rootCmd.AddCommand(storageCmd)
}
