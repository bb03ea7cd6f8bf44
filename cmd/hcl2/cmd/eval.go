package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/risqcapital/hcl2go/ast"
	"github.com/risqcapital/hcl2go/eval"
	"github.com/risqcapital/hcl2go/scope"
	"github.com/risqcapital/hcl2go/value"
	"github.com/risqcapital/hcl2go/valueio"
)

var (
	evalQuery string
	evalSets  []string
	evalVars  []string
)

var evalCmd = &cobra.Command{
	Use:   "eval [file]",
	Short: "Evaluate a JSON-encoded expression",
	Long: `Evaluate reads a single expression node (in this module's ast JSON
wire format) from a file or stdin, evaluates it, and prints the result
as JSON.

Examples:
  # Evaluate an expression fixture
  hcl2 eval expr.json

  # Seed the root scope with a variable
  hcl2 eval --var foo=1 expr.json

  # Pick a sub-path of the result with a gjson query
  hcl2 eval --query "items.0.name" expr.json

  # Patch the rendered JSON before printing it
  hcl2 eval --set "items.0.name=\"replaced\"" expr.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().StringVar(&evalQuery, "query", "", "extract a sub-path of the result via a gjson path expression")
	evalCmd.Flags().StringArrayVar(&evalSets, "set", nil, "patch the rendered JSON before printing, as path=rawjson (repeatable)")
	evalCmd.Flags().StringArrayVar(&evalVars, "var", nil, "bind a root-scope variable, as name=jsonvalue (repeatable)")
}

func runEval(_ *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	}
	data, err := readInput(path)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	expr, err := ast.UnmarshalExpr(data)
	if err != nil {
		return fmt.Errorf("failed to decode expression: %w", err)
	}

	rootScope := scope.New(nil)
	for _, kv := range evalVars {
		name, raw, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("invalid --var %q, expected name=jsonvalue", kv)
		}
		var x any
		if err := json.Unmarshal([]byte(raw), &x); err != nil {
			return fmt.Errorf("invalid --var %q: %w", kv, err)
		}
		v, d := valueio.Infer(x)
		if d != nil {
			return fmt.Errorf("invalid --var value for %s: %s", name, d.Error())
		}
		rootScope.Define(name, v)
	}

	ev := eval.New(eval.Options{})
	result, d := ev.Eval(expr, rootScope)
	if d != nil {
		return fmt.Errorf("evaluation failed: %s", d.Error())
	}
	resolved, d := value.RequireResolved(result)
	if d != nil {
		return fmt.Errorf("evaluation incomplete: %s", d.Error())
	}

	out, d := valueio.ToJSON(resolved, true)
	if d != nil {
		return fmt.Errorf("failed to render result: %s", d.Error())
	}

	for _, kv := range evalSets {
		p, raw, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("invalid --set %q, expected path=rawjson", kv)
		}
		patched, d := valueio.Patch(out, p, raw)
		if d != nil {
			return fmt.Errorf("failed to apply --set %q: %s", kv, d.Error())
		}
		out = patched
	}

	if evalQuery != "" {
		resultValue, d := valueio.FromJSON(out)
		if d != nil {
			return fmt.Errorf("failed to re-decode patched result: %s", d.Error())
		}
		queried, d := valueio.Query(resultValue, evalQuery)
		if d != nil {
			return fmt.Errorf("query %q failed: %s", evalQuery, d.Error())
		}
		out, d = valueio.ToJSON(queried, true)
		if d != nil {
			return fmt.Errorf("failed to render queried result: %s", d.Error())
		}
	}

	fmt.Println(string(out))
	return nil
}
