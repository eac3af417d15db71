// Package symbols implements the scoped function/index map (§4.3): a stack
// of scopes mapping an identifier to the set of free-function indices
// declared under that name, backed by a single registry of FunctionEntry
// values shared across every scope in a chain so indices stay stable as
// child scopes are introduced and popped.
package symbols

import (
	"iter"

	"github.com/cindergame/cinderc/internal/ast"
)

// FunctionEntry is one registered free function: its index, declared name,
// and the AST node carrying its body for downstream lowering.
type FunctionEntry struct {
	Idx  int
	Name string
	Body *ast.Function
}

// Index is a scoped map from name to function indices. Introducing a scope
// (Child) never mutates the parent; popping (Pop) returns the topmost
// layer's name->indices map as an owned value, matching the copy-on-write
// policy shared by the type and locals scopes.
type Index struct {
	parent *Index
	top    map[string][]int
	reg    *[]*FunctionEntry
}

// New returns an empty, scope-less index with a fresh shared registry.
func New() *Index {
	reg := make([]*FunctionEntry, 0)
	return &Index{top: make(map[string][]int), reg: &reg}
}

// Child splits off a new scope on top of ix, sharing ix's function
// registry.
func (ix *Index) Child() *Index {
	return &Index{parent: ix, top: make(map[string][]int), reg: ix.reg}
}

// Pop returns the topmost layer and the parent scope.
func (ix *Index) Pop() (map[string][]int, *Index) {
	return ix.top, ix.parent
}

// Register adds a function entry to the shared registry and indexes it
// under name in the topmost scope, returning its newly minted index.
func (ix *Index) Register(name string, body *ast.Function) int {
	idx := len(*ix.reg)
	*ix.reg = append(*ix.reg, &FunctionEntry{Idx: idx, Name: name, Body: body})
	ix.top[name] = append(ix.top[name], idx)
	return idx
}

// Query walks from the innermost scope outward, concatenating matches at
// each level (preserving scope-shadow ordering), pairing each index with
// its full entry. The returned sequence is restartable: iterating it twice
// re-yields the same results, since it holds no exclusive reference to the
// index and each call only reads.
func (ix *Index) Query(name string) iter.Seq[*FunctionEntry] {
	return func(yield func(*FunctionEntry) bool) {
		for s := ix; s != nil; s = s.parent {
			for _, idx := range s.top[name] {
				if !yield((*s.reg)[idx]) {
					return
				}
			}
		}
	}
}
