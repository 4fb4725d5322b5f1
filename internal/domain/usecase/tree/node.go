package tree

import (
	"github.com/kiarash-moradi/mlm-dashboard/internal/domain/entity"
)

// BinaryNode is one user in the in-memory binary placement tree.
// At most one left and one right child; children live in the same
// id-indexed arena the builder returns, so wiring an edge never copies
// a node.
type BinaryNode struct {
	ID       uint64
	Name     string
	Position entity.Position
	Left     *BinaryNode
	Right    *BinaryNode
}

// SponsorNode is one user in the in-memory sponsorship tree, with
// unbounded fan-out.
type SponsorNode struct {
	ID          uint64
	Name        string
	SponsorName string
	Children    []*SponsorNode
}

// View is the serializable rooted-tree shape handed to the UI layer.
// The binary tree emits at most two children in left/right order; the
// sponsor tree emits arbitrary-arity children. Position is "root" at
// the viewing user regardless of the node's global placement.
type View struct {
	ID       uint64  `json:"id"`
	Name     string  `json:"name"`
	Position string  `json:"position"`
	Children []*View `json:"children"`
}

const rootPosition = "root"
