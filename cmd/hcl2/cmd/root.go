// Package cmd implements the hcl2 command-line front end: a thin cobra
// tree over the eval/tracker/generations/valueio packages, one file per
// subcommand, with shared persistent flags on a single rootCmd.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "hcl2",
	Short: "HCL2 expression evaluator and dependency planner",
	Long: `hcl2 is a command-line front end over this module's evaluator,
dependency tracker, and generation planner.

Since parsing HCL2 source text is outside this module's scope, every
subcommand consumes an already-parsed AST as JSON (see the ast package's
JSON wire format) rather than .hcl source files directly.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// readInput reads either the named file or, when path is "-" or empty,
// stdin.
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
