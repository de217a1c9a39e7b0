package cli

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

// newExportCmd creates the export command that writes the complete dataset
// as a single JSON document.
func newExportCmd(flags *rootFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every collection as one JSON document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := flags.newService()
			if err != nil {
				return err
			}

			payload, err := svc.ExportAll()
			if err != nil {
				return err
			}

			var buf []byte
			buf, err = marshalPretty(payload)
			if err != nil {
				return err
			}

			if output == "" {
				_, err = os.Stdout.Write(buf)
				return err
			}
			if err := os.WriteFile(output, buf, 0o644); err != nil {
				return err
			}

			total := 0
			for _, records := range payload {
				total += len(records)
			}
			printSuccess("exported %d record(s) across %d collection(s)", total, len(payload))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}

// marshalPretty marshals with indentation and without HTML escaping so
// Japanese display strings stay readable.
func marshalPretty(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
