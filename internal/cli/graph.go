package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mizuiro-games/gamedata/pkg/graph"
)

const (
	formatJSON = "json"
	formatDOT  = "dot"
	formatSVG  = "svg"
)

// newGraphCmd creates the graph command that emits the dependency graph.
func newGraphCmd(flags *rootFlags) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Emit the dependency graph between collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := flags.newService()
			if err != nil {
				return err
			}

			g, err := graph.Build(svc.Store())
			if err != nil {
				return err
			}

			var data []byte
			switch format {
			case formatJSON:
				data, err = json.MarshalIndent(g, "", "  ")
				if err != nil {
					return err
				}
				data = append(data, '\n')
			case formatDOT:
				data = []byte(graph.ToDOT(g))
			case formatSVG:
				data, err = graph.RenderSVG(cmd.Context(), graph.ToDOT(g))
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q: want json, dot, or svg", format)
			}

			if output == "" {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			printStats(len(g.Nodes), len(g.Edges))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json, dot, svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}
