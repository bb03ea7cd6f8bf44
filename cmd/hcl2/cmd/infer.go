package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/risqcapital/hcl2go/value"
	"github.com/risqcapital/hcl2go/valueio"
)

var inferFormat string

var inferCmd = &cobra.Command{
	Use:   "infer [file]",
	Short: "Infer a Value from a JSON or YAML document",
	Long: `Infer reads a JSON or YAML document from a file or stdin, lifts it
into this module's Value lattice via valueio.Infer, and prints it back out
as JSON (round-tripping through the lattice rather than passing the input
through unchanged, so the command also serves as a format-normalizer).

Example:
  hcl2 infer --format yaml config.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInfer,
}

func init() {
	rootCmd.AddCommand(inferCmd)
	inferCmd.Flags().StringVar(&inferFormat, "format", "json", "input format: json or yaml")
}

func runInfer(_ *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	}
	data, err := readInput(path)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	var v value.Value
	var d interface{ Error() string }

	switch inferFormat {
	case "json":
		dv, derr := valueio.FromJSON(data)
		if derr != nil {
			d = derr
		}
		v = dv
	case "yaml":
		dv, derr := valueio.FromYAML(data)
		if derr != nil {
			d = derr
		}
		v = dv
	default:
		return fmt.Errorf("unsupported --format %q, expected json or yaml", inferFormat)
	}
	if d != nil {
		return fmt.Errorf("failed to infer value: %s", d.Error())
	}

	out, derr := valueio.ToJSON(v, true)
	if derr != nil {
		return fmt.Errorf("failed to render result: %s", derr.Error())
	}

	fmt.Println(string(out))
	return nil
}
