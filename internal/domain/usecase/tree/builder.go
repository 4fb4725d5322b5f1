package tree

import (
	"context"

	"github.com/kiarash-moradi/mlm-dashboard/internal/domain/entity"
	coreport "github.com/kiarash-moradi/mlm-dashboard/internal/domain/port/core"
	"github.com/kiarash-moradi/mlm-dashboard/internal/domain/port/persistence"
)

// Builder constructs the binary and sponsorship trees from the flat
// user table. Both builds are single full scans into an id-indexed
// arena; rendering re-roots at the viewing user so ancestors and
// siblings outside that subtree stay invisible.
type Builder struct {
	userRepo persistence.UserRepository
	logger   coreport.Logger
}

// NewBuilder creates a tree builder
func NewBuilder(userRepo persistence.UserRepository, logger coreport.Logger) *Builder {
	return &Builder{
		userRepo: userRepo,
		logger:   logger,
	}
}

// BuildBinaryTree indexes every user by id and attaches each one to its
// upline's left or right slot when the upline exists in the index. A
// user whose upline is null or absent stays a free root. A self
// referential upline edge is dropped rather than wired.
func BuildBinaryTree(users []entity.User) map[uint64]*BinaryNode {
	nodes := make(map[uint64]*BinaryNode, len(users))
	for _, u := range users {
		nodes[u.ID] = &BinaryNode{
			ID:       u.ID,
			Name:     u.Username,
			Position: u.Position,
		}
	}

	for _, u := range users {
		if u.UplineID == nil || *u.UplineID == u.ID {
			continue
		}
		parent, ok := nodes[*u.UplineID]
		if !ok {
			continue
		}
		child := nodes[u.ID]
		switch u.Position {
		case entity.PositionLeft:
			if parent.Left == nil {
				parent.Left = child
			}
		case entity.PositionRight:
			if parent.Right == nil {
				parent.Right = child
			}
		}
	}

	return nodes
}

// BuildSponsorTree wires each user under the user whose username equals
// its sponsor_name. This is a join by natural key: the scan is O(n²) on
// purpose, matching the stored shape of the data rather than assuming
// an id foreign key exists.
func BuildSponsorTree(users []entity.User) map[uint64]*SponsorNode {
	nodes := make(map[uint64]*SponsorNode, len(users))
	for _, u := range users {
		nodes[u.ID] = &SponsorNode{
			ID:          u.ID,
			Name:        u.Username,
			SponsorName: u.SponsorName,
		}
	}

	for _, child := range users {
		if child.SponsorName == "" {
			continue
		}
		for _, candidate := range users {
			if candidate.ID == child.ID {
				continue
			}
			if candidate.Username == child.SponsorName {
				parent := nodes[candidate.ID]
				parent.Children = append(parent.Children, nodes[child.ID])
				break
			}
		}
	}

	return nodes
}

// BinaryViewFor loads all users and returns the binary tree re-rooted
// at the viewing user, or nil when the user is unknown.
func (b *Builder) BinaryViewFor(ctx context.Context, userID uint64) (*View, error) {
	users, err := b.userRepo.ListAll(ctx)
	if err != nil {
		b.logger.Error("Failed to load users for binary tree", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, err
	}

	nodes := BuildBinaryTree(users)
	view := BinaryView(nodes, userID)

	b.logger.Debug("Binary tree built", map[string]any{
		"user_id":    userID,
		"node_count": len(nodes),
		"found":      view != nil,
	})
	return view, nil
}

// SponsorViewFor loads all users and returns the sponsorship tree
// re-rooted at the viewing user, or nil when the user is unknown.
func (b *Builder) SponsorViewFor(ctx context.Context, userID uint64) (*View, error) {
	users, err := b.userRepo.ListAll(ctx)
	if err != nil {
		b.logger.Error("Failed to load users for sponsor tree", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, err
	}

	nodes := BuildSponsorTree(users)
	view := SponsorView(nodes, userID)

	b.logger.Debug("Sponsor tree built", map[string]any{
		"user_id":    userID,
		"node_count": len(nodes),
		"found":      view != nil,
	})
	return view, nil
}

// BinaryView serializes the subtree rooted at userID. Descent carries a
// visited set so a corrupt cyclic placement terminates instead of
// recursing forever.
func BinaryView(nodes map[uint64]*BinaryNode, userID uint64) *View {
	root, ok := nodes[userID]
	if !ok {
		return nil
	}
	visited := make(map[uint64]bool)
	return binaryView(root, rootPosition, visited)
}

func binaryView(n *BinaryNode, position string, visited map[uint64]bool) *View {
	if n == nil || visited[n.ID] {
		return nil
	}
	visited[n.ID] = true

	v := &View{
		ID:       n.ID,
		Name:     n.Name,
		Position: position,
		Children: []*View{},
	}
	if left := binaryView(n.Left, string(entity.PositionLeft), visited); left != nil {
		v.Children = append(v.Children, left)
	}
	if right := binaryView(n.Right, string(entity.PositionRight), visited); right != nil {
		v.Children = append(v.Children, right)
	}
	return v
}

// SponsorView serializes the sponsorship subtree rooted at userID with
// the same cycle defense as BinaryView.
func SponsorView(nodes map[uint64]*SponsorNode, userID uint64) *View {
	root, ok := nodes[userID]
	if !ok {
		return nil
	}
	visited := make(map[uint64]bool)
	return sponsorView(root, rootPosition, visited)
}

func sponsorView(n *SponsorNode, position string, visited map[uint64]bool) *View {
	if n == nil || visited[n.ID] {
		return nil
	}
	visited[n.ID] = true

	v := &View{
		ID:       n.ID,
		Name:     n.Name,
		Position: position,
		Children: []*View{},
	}
	for _, child := range n.Children {
		if cv := sponsorView(child, "", visited); cv != nil {
			v.Children = append(v.Children, cv)
		}
	}
	return v
}
