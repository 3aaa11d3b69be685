// Package deferred implements lazy computation graphs: a Node is a promise
// of a result, possibly depending on other Nodes, and Materialize walks the
// dependency graph in topological order and executes each node exactly once.
// Graph construction is synchronous and never executes work; execution
// happens only inside Materialize. A materialized Node memoizes its result,
// so repeated materializations return identical values.
package deferred

import (
	"log"
	"strconv"
	"sync"

	xxhash "github.com/cespare/xxhash/v2"
	uuid "github.com/gofrs/uuid"
)

// A Func computes a node's value from the materialized values of its
// dependencies, in dependency order
type Func func(deps []interface{}) (interface{}, error)

// A Node is a logical, not-yet-executed unit of work. Nodes form a directed
// acyclic graph through their dependency lists.
type Node struct {
	id     string
	name   string
	fn     Func
	deps   []*Node
	once   sync.Once
	result interface{}
	err    error
}

// NewNode creates a Node wrapping fn, depending on deps. A node with no
// dependencies receives a random ID; a derived node's ID is a fingerprint
// of its name and dependency IDs, so equivalent graph positions get stable
// identities.
func NewNode(name string, fn Func, deps ...*Node) *Node {
	return &Node{
		id:   nodeID(name, deps),
		name: name,
		fn:   fn,
		deps: deps,
	}
}

func nodeID(name string, deps []*Node) string {
	if len(deps) == 0 {
		id, err := uuid.NewV4()
		if err != nil {
			log.Fatalf("failed to generate UUID for Node: %v", err)
		}
		return id.String()
	}
	digest := xxhash.New()
	digest.WriteString(name)
	for _, dep := range deps {
		digest.WriteString(dep.id)
	}
	return name + "-" + strconv.FormatUint(digest.Sum64(), 16)
}

// ID returns the identity of this Node within its graph
func (n *Node) ID() string {
	return n.id
}

// Name returns the operation name this Node was created with
func (n *Node) Name() string {
	return n.name
}

// Materialize executes this Node's whole dependency chain and returns its
// concrete value. Each node in the graph runs at most once, even when
// shared by several dependents or when Materialize is called repeatedly;
// later calls return the memoized result.
func (n *Node) Materialize() (interface{}, error) {
	n.once.Do(func() {
		deps := make([]interface{}, len(n.deps))
		for i, dep := range n.deps {
			v, err := dep.Materialize()
			if err != nil {
				n.err = err
				return
			}
			deps[i] = v
		}
		n.result, n.err = n.fn(deps)
	})
	return n.result, n.err
}
