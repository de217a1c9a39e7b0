package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mizuiro-games/gamedata/pkg/integrity"
)

// newCheckCmd creates the check command that validates cross-references
// between collections. A non-empty report makes the command fail so the
// check can gate CI pipelines.
func newCheckCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check referential integrity between collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := flags.newService()
			if err != nil {
				return err
			}

			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			report, err := integrity.Check(svc.Store())
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Checked %s", cfg.DataDir))

			if report.Total() == 0 {
				printSuccess("all references resolve")
				return nil
			}

			for _, category := range integrity.Categories {
				violations := report[category]
				if len(violations) == 0 {
					continue
				}
				printWarning("%s (%d)", category, len(violations))
				for _, v := range violations {
					printDetail("%s.%s -> %s", v.Source, v.Field, v.MissingID)
				}
			}
			printNewline()
			printError("%d dangling reference(s)", report.Total())
			return fmt.Errorf("%d dangling reference(s)", report.Total())
		},
	}
}
