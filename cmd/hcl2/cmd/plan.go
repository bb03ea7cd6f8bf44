package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/risqcapital/hcl2go/ast"
	"github.com/risqcapital/hcl2go/generations"
	"github.com/risqcapital/hcl2go/scope"
)

var planReverse bool

var planCmd = &cobra.Command{
	Use:   "plan [file]",
	Short: "Topologically layer a module's blocks by discovered dependencies",
	Long: `Plan reads a JSON-encoded Module (see the ast package's JSON wire
format), runs the dependency tracker over each top-level block, and prints
the resulting generations: layer 0 has no intra-module dependencies, layer
k+1 depends only on layers <= k.

Example:
  hcl2 plan module.json
  hcl2 plan --reverse module.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().BoolVar(&planReverse, "reverse", false, "return generations in reverse (leaves-first) order")
}

func runPlan(_ *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	}
	data, err := readInput(path)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	var module ast.Module
	if err := module.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("failed to decode module: %w", err)
	}

	p, d := generations.Plan(&module, scope.New(nil), planReverse)
	if d != nil {
		return fmt.Errorf("planning failed: %s", d.Error())
	}

	for i, layer := range p.Generations {
		fmt.Printf("generation %d:\n", i)
		for _, b := range layer {
			fmt.Printf("  %s\n", b.String())
		}
	}
	return nil
}
