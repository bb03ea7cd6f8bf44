// Package generations topologically layers a module's top-level blocks by
// the dependencies the tracker discovers between them: instead of a
// statically declared dependency list, the edges come from references
// discovered by evaluation.
package generations

import (
	"sort"

	"github.com/risqcapital/hcl2go/ast"
	"github.com/risqcapital/hcl2go/diag"
	"github.com/risqcapital/hcl2go/scope"
	"github.com/risqcapital/hcl2go/tracker"
)

// PlanResult is the result of planning a module's blocks into generations.
type PlanResult struct {
	// Generations[i] holds the blocks at layer i: every block in layer 0
	// has no intra-module dependency; every block in layer k+1 depends
	// only on blocks in layers <= k.
	Generations [][]*ast.Block
}

// blockKey renders a Block's identity tuple as a single string usable as a
// map key, matching how a discovered reference's leading known components
// are compared against other blocks' keys.
func blockKey(parts []string) string {
	s := ""
	for i, p := range parts {
		if i > 0 {
			s += "\x1f"
		}
		s += p
	}
	return s
}

// Plan builds the dependency graph over m's top-level blocks and returns
// their topological generations. reverse, when true, returns the layers in
// reverse order (roots first becomes leaves first).
func Plan(m *ast.Module, sc *scope.Scope, reverse bool) (*PlanResult, *diag.Diagnostic) {
	blocks := m.GetBlocks("")
	keyOf := make(map[*ast.Block]string, len(blocks))
	byKey := make(map[string]*ast.Block, len(blocks))
	for _, b := range blocks {
		k := blockKey(b.Key())
		keyOf[b] = k
		byKey[k] = b
	}

	t := tracker.New()
	// deps[b] = set of blocks b depends on.
	deps := make(map[*ast.Block]map[*ast.Block]bool, len(blocks))
	for _, b := range blocks {
		refs, d := t.TrackBlock(b, sc)
		if d != nil {
			return nil, d
		}
		depSet := make(map[*ast.Block]bool)
		for _, r := range refs {
			keys := r.Keys()
			// A reference matches a block if some non-empty prefix of its
			// path equals that block's identity tuple.
			for n := 1; n <= len(keys); n++ {
				if other, ok := byKey[blockKey(keys[:n])]; ok && other != b {
					depSet[other] = true
				}
			}
		}
		deps[b] = depSet
	}

	generations, d := topoLayers(blocks, deps)
	if d != nil {
		return nil, d
	}
	if reverse {
		for i, j := 0, len(generations)-1; i < j; i, j = i+1, j-1 {
			generations[i], generations[j] = generations[j], generations[i]
		}
	}
	return &PlanResult{Generations: generations}, nil
}

// topoLayers computes Kahn's-algorithm-style generations: layer 0 is every
// block with no remaining dependency, each following layer peels off
// whatever becomes dependency-free once earlier layers are removed. A
// remaining non-empty dependency set after every layer is exhausted means
// the graph has a cycle.
func topoLayers(blocks []*ast.Block, deps map[*ast.Block]map[*ast.Block]bool) ([][]*ast.Block, *diag.Diagnostic) {
	remaining := make(map[*ast.Block]map[*ast.Block]bool, len(deps))
	for b, d := range deps {
		cp := make(map[*ast.Block]bool, len(d))
		for k := range d {
			cp[k] = true
		}
		remaining[b] = cp
	}

	var generations [][]*ast.Block
	placed := make(map[*ast.Block]bool, len(blocks))

	for len(placed) < len(blocks) {
		var layer []*ast.Block
		for _, b := range blocks {
			if placed[b] {
				continue
			}
			ready := true
			for dep := range remaining[b] {
				if !placed[dep] {
					ready = false
					break
				}
			}
			if ready {
				layer = append(layer, b)
			}
		}
		if len(layer) == 0 {
			return nil, diag.New(diag.CodeGenerationsNotDAG, "block dependency graph is not a DAG")
		}
		sort.Slice(layer, func(i, j int) bool {
			return blockKey(layer[i].Key()) < blockKey(layer[j].Key())
		})
		for _, b := range layer {
			placed[b] = true
		}
		generations = append(generations, layer)
	}
	return generations, nil
}
