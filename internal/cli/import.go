package cli

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mizuiro-games/gamedata/pkg/schema"
)

// newImportCmd creates the import command that replaces every collection
// from a single JSON document produced by export.
func newImportCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Replace every collection from one JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := flags.newService()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			var payload map[string][]schema.Record
			if err := json.Unmarshal(data, &payload); err != nil {
				return err
			}

			counts, err := svc.ImportAll(payload)
			if err != nil {
				return err
			}

			names := make([]string, 0, len(counts))
			for name := range counts {
				names = append(names, name)
			}
			sort.Strings(names)

			total := 0
			for _, name := range names {
				printDetail("%s: %d", name, counts[name])
				total += counts[name]
			}
			printSuccess("imported %d record(s)", total)
			return nil
		},
	}

	return cmd
}
