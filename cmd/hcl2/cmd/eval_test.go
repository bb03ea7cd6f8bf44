package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/risqcapital/hcl2go/ast"
)

// runCLI executes rootCmd with args, capturing whatever it writes to
// os.Stdout via fmt.Println (the subcommands don't use cmd.OutOrStdout).
func runCLI(t *testing.T, args []string) string {
	t.Helper()
	evalQuery, evalSets, evalVars = "", nil, nil
	t.Cleanup(func() { evalQuery, evalSets, evalVars = "", nil, nil })

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe failed: %v", err)
	}
	origStdout := os.Stdout
	os.Stdout = w
	rootCmd.SetArgs(args)
	runErr := rootCmd.Execute()
	w.Close()
	os.Stdout = origStdout
	if runErr != nil {
		t.Fatalf("rootCmd.Execute(%v) failed: %v", args, runErr)
	}

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("failed to read captured stdout: %v", err)
	}
	return string(bytes.TrimSpace(out))
}

func writeExprFixture(t *testing.T, expr ast.Expr) string {
	t.Helper()
	data, err := json.Marshal(expr)
	if err != nil {
		t.Fatalf("failed to marshal fixture: %v", err)
	}
	path := filepath.Join(t.TempDir(), "expr.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

// TestEvalCommandWithVar exercises the eval subcommand end to end: binding a
// --var and evaluating an attribute access against it, snapshotting the
// rendered JSON.
func TestEvalCommandWithVar(t *testing.T) {
	expr := &ast.GetAttr{On: &ast.Identifier{Name: "server"}, Key: "port"}
	path := writeExprFixture(t, expr)

	out := runCLI(t, []string{"eval", "--var", `server={"port":8080,"name":"svc"}`, path})
	snaps.MatchSnapshot(t, "eval_var_output", out)
}

func TestEvalCommandWithQuery(t *testing.T) {
	expr := &ast.ObjectExpr{Fields: []ast.ObjectField{
		{Key: &ast.Identifier{Name: "a"}, Value: &ast.Literal{Value: ast.LiteralInt(1)}},
		{Key: &ast.Identifier{Name: "b"}, Value: &ast.Literal{Value: ast.LiteralInt(2)}},
	}}
	path := writeExprFixture(t, expr)

	out := runCLI(t, []string{"eval", "--query", "b", path})
	snaps.MatchSnapshot(t, "eval_query_output", out)
}
