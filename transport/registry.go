package transport

import (
	"sync"

	"github.com/phanxgames/shapetree"
)

// entry pairs one tree with the mutex that serializes every UpdateNode/Walk
// call against it. shapetree.Tree has no internal locking by design; the
// transport layer is where that single-writer discipline is enforced.
type entry struct {
	mu   sync.Mutex
	tree *shapetree.Tree
}

// TreeRegistry maps tree ids to lazily-created trees. It is safe for
// concurrent use.
type TreeRegistry struct {
	mu    sync.Mutex
	trees map[uint32]*entry
}

// NewTreeRegistry creates an empty registry.
func NewTreeRegistry() *TreeRegistry {
	return &TreeRegistry{trees: make(map[uint32]*entry)}
}

// entryFor returns the entry for id, creating it (with a fresh tree) on
// first use.
func (r *TreeRegistry) entryFor(id uint32) *entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.trees[id]
	if !ok {
		e = &entry{tree: shapetree.NewTree()}
		r.trees[id] = e
	}
	return e
}

// Apply serializes and applies update against the tree named by update.Target.
func (r *TreeRegistry) Apply(update shapetree.TreeUpdate) ([]shapetree.NodeUpdateResponse, error) {
	e := r.entryFor(update.Target)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tree.ApplyTreeUpdate(update)
}

// Debug describes the current state of the tree named id.
type Debug struct {
	NodeCount int            `json:"nodeCount"`
	RootAABB  shapetree.Aabb `json:"rootAabb"`
}

// Describe reports debug state for the tree named id, without mutating it.
func (r *TreeRegistry) Describe(id uint32) Debug {
	e := r.entryFor(id)
	e.mu.Lock()
	defer e.mu.Unlock()
	return Debug{NodeCount: e.tree.NodeCount(), RootAABB: e.tree.Root().AABB}
}
