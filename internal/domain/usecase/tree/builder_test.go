package tree

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kiarash-moradi/mlm-dashboard/internal/domain/entity"
	mockcore "github.com/kiarash-moradi/mlm-dashboard/mocks/port/core"
	mockpersistence "github.com/kiarash-moradi/mlm-dashboard/mocks/port/persistence"
)

func uid(v uint64) *uint64 {
	return &v
}

func TestBuildBinaryTree(t *testing.T) {
	t.Run("wires children to their upline slots", func(t *testing.T) {
		users := []entity.User{
			{ID: 1, Username: "root"},
			{ID: 2, Username: "left", UplineID: uid(1), Position: entity.PositionLeft},
			{ID: 3, Username: "right", UplineID: uid(1), Position: entity.PositionRight},
			{ID: 4, Username: "leftleft", UplineID: uid(2), Position: entity.PositionLeft},
		}

		nodes := BuildBinaryTree(users)

		assert.Len(t, nodes, 4)
		assert.Equal(t, nodes[2], nodes[1].Left)
		assert.Equal(t, nodes[3], nodes[1].Right)
		assert.Equal(t, nodes[4], nodes[2].Left)
		assert.Nil(t, nodes[2].Right)
	})

	t.Run("keeps users with missing upline as free roots", func(t *testing.T) {
		users := []entity.User{
			{ID: 1, Username: "root"},
			{ID: 2, Username: "orphan", UplineID: uid(99), Position: entity.PositionLeft},
		}

		nodes := BuildBinaryTree(users)

		assert.Nil(t, nodes[1].Left)
		assert.NotNil(t, nodes[2])
	})

	t.Run("drops a self referential upline edge", func(t *testing.T) {
		users := []entity.User{
			{ID: 1, Username: "loner", UplineID: uid(1), Position: entity.PositionLeft},
		}

		nodes := BuildBinaryTree(users)

		assert.Nil(t, nodes[1].Left)
		assert.Nil(t, nodes[1].Right)
	})

	t.Run("first child wins an already occupied slot", func(t *testing.T) {
		users := []entity.User{
			{ID: 1, Username: "root"},
			{ID: 2, Username: "first", UplineID: uid(1), Position: entity.PositionLeft},
			{ID: 3, Username: "second", UplineID: uid(1), Position: entity.PositionLeft},
		}

		nodes := BuildBinaryTree(users)

		assert.Equal(t, nodes[2], nodes[1].Left)
		assert.Nil(t, nodes[1].Right)
	})
}

func TestBuildSponsorTree(t *testing.T) {
	t.Run("attaches children by sponsor name", func(t *testing.T) {
		users := []entity.User{
			{ID: 1, Username: "alice"},
			{ID: 2, Username: "bob", SponsorName: "alice"},
			{ID: 3, Username: "carol", SponsorName: "alice"},
			{ID: 4, Username: "dave", SponsorName: "bob"},
		}

		nodes := BuildSponsorTree(users)

		assert.Len(t, nodes[1].Children, 2)
		assert.Len(t, nodes[2].Children, 1)
		assert.Equal(t, nodes[4], nodes[2].Children[0])
	})

	t.Run("leaves users with unknown sponsor unattached", func(t *testing.T) {
		users := []entity.User{
			{ID: 1, Username: "alice"},
			{ID: 2, Username: "bob", SponsorName: "nobody"},
		}

		nodes := BuildSponsorTree(users)

		assert.Empty(t, nodes[1].Children)
		assert.NotNil(t, nodes[2])
	})

	t.Run("ignores a sponsor name equal to the user's own name", func(t *testing.T) {
		users := []entity.User{
			{ID: 1, Username: "alice", SponsorName: "alice"},
		}

		nodes := BuildSponsorTree(users)

		assert.Empty(t, nodes[1].Children)
	})
}

func TestBinaryView(t *testing.T) {
	t.Run("re-roots at the viewing user", func(t *testing.T) {
		users := []entity.User{
			{ID: 1, Username: "root"},
			{ID: 2, Username: "mid", UplineID: uid(1), Position: entity.PositionLeft},
			{ID: 3, Username: "sibling", UplineID: uid(1), Position: entity.PositionRight},
			{ID: 4, Username: "deep", UplineID: uid(2), Position: entity.PositionRight},
		}
		nodes := BuildBinaryTree(users)

		view := BinaryView(nodes, 2)

		assert.NotNil(t, view)
		assert.Equal(t, uint64(2), view.ID)
		assert.Equal(t, "root", view.Position)
		// The ancestor and the sibling branch are invisible from here.
		assert.Len(t, view.Children, 1)
		assert.Equal(t, uint64(4), view.Children[0].ID)
		assert.Equal(t, "right", view.Children[0].Position)
	})

	t.Run("returns nil for an unknown user", func(t *testing.T) {
		nodes := BuildBinaryTree([]entity.User{{ID: 1, Username: "root"}})
		assert.Nil(t, BinaryView(nodes, 99))
	})

	t.Run("terminates on a cyclic placement", func(t *testing.T) {
		// Wire a corrupt cycle directly into the arena.
		a := &BinaryNode{ID: 1, Name: "a"}
		b := &BinaryNode{ID: 2, Name: "b"}
		a.Left = b
		b.Left = a
		nodes := map[uint64]*BinaryNode{1: a, 2: b}

		view := BinaryView(nodes, 1)

		assert.NotNil(t, view)
		assert.Len(t, view.Children, 1)
		assert.Empty(t, view.Children[0].Children)
	})
}

func TestSponsorView(t *testing.T) {
	t.Run("serializes nested children without positions", func(t *testing.T) {
		users := []entity.User{
			{ID: 1, Username: "alice"},
			{ID: 2, Username: "bob", SponsorName: "alice"},
			{ID: 3, Username: "carol", SponsorName: "bob"},
		}
		nodes := BuildSponsorTree(users)

		view := SponsorView(nodes, 1)

		assert.NotNil(t, view)
		assert.Equal(t, "root", view.Position)
		assert.Len(t, view.Children, 1)
		assert.Equal(t, "", view.Children[0].Position)
		assert.Len(t, view.Children[0].Children, 1)
	})

	t.Run("returns nil for an unknown user", func(t *testing.T) {
		nodes := BuildSponsorTree(nil)
		assert.Nil(t, SponsorView(nodes, 1))
	})
}

func TestBuilderViews(t *testing.T) {
	ctx := context.Background()

	t.Run("BinaryViewFor loads users and re-roots", func(t *testing.T) {
		mockUserRepo := new(mockpersistence.MockUserRepository)
		mockLogger := new(mockcore.MockLogger)

		users := []entity.User{
			{ID: 1, Username: "root"},
			{ID: 2, Username: "left", UplineID: uid(1), Position: entity.PositionLeft},
		}
		mockUserRepo.On("ListAll", ctx).Return(users, nil)
		mockLogger.On("Debug", "Binary tree built", mock.Anything).Return()

		builder := NewBuilder(mockUserRepo, mockLogger)
		view, err := builder.BinaryViewFor(ctx, 1)

		assert.NoError(t, err)
		assert.NotNil(t, view)
		assert.Equal(t, uint64(1), view.ID)
		assert.Len(t, view.Children, 1)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("SponsorViewFor surfaces repository failures", func(t *testing.T) {
		mockUserRepo := new(mockpersistence.MockUserRepository)
		mockLogger := new(mockcore.MockLogger)

		dbError := errors.New("connection refused")
		mockUserRepo.On("ListAll", ctx).Return(nil, dbError)
		mockLogger.On("Error", "Failed to load users for sponsor tree", mock.Anything).Return()

		builder := NewBuilder(mockUserRepo, mockLogger)
		view, err := builder.SponsorViewFor(ctx, 1)

		assert.Nil(t, view)
		assert.Equal(t, dbError, err)
		mockLogger.AssertExpectations(t)
	})
}
