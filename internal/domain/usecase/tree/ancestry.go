package tree

import (
	"context"

	errs "github.com/kiarash-moradi/mlm-dashboard/internal/domain/error"
	coreport "github.com/kiarash-moradi/mlm-dashboard/internal/domain/port/core"
	"github.com/kiarash-moradi/mlm-dashboard/internal/domain/port/persistence"
)

// MaxWalkDepth caps upline and indirect walks. Bonuses only propagate
// five levels, so walking deeper is never needed; the cap is also the
// hard stop against corrupt cyclic data.
const MaxWalkDepth = 5

// Relative is one user found by an ancestry walk, with its distance
// from the starting user (level 1 = nearest).
type Relative struct {
	UserID   uint64
	Username string
	Level    int
}

// Walker resolves upline chains and sponsorship descendants to a
// bounded depth. All walks are pure reads; a missing link terminates
// the walk, it never errors.
type Walker struct {
	userRepo persistence.UserRepository
	logger   coreport.Logger
}

// NewWalker creates an ancestry walker
func NewWalker(userRepo persistence.UserRepository, logger coreport.Logger) *Walker {
	return &Walker{
		userRepo: userRepo,
		logger:   logger,
	}
}

// AncestorsOf walks strictly upward through upline_id (binary tree, not
// sponsor tree), one hop per level, nearest first. The walk stops at
// the first missing upline, at maxLevel, or on a repeated id.
func (w *Walker) AncestorsOf(ctx context.Context, userID uint64, maxLevel int) ([]Relative, error) {
	if maxLevel <= 0 || maxLevel > MaxWalkDepth {
		maxLevel = MaxWalkDepth
	}

	current, err := w.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ancestors := make([]Relative, 0, maxLevel)
	visited := map[uint64]bool{userID: true}

	for level := 1; level <= maxLevel; level++ {
		if current.UplineID == nil {
			break
		}
		uplineID := *current.UplineID
		if visited[uplineID] {
			w.logger.Warn("Cycle detected in upline chain", map[string]any{
				"user_id":   userID,
				"upline_id": uplineID,
				"level":     level,
			})
			break
		}

		upline, err := w.userRepo.GetByID(ctx, uplineID)
		if err != nil {
			if errs.IsUserNotFoundError(err) {
				break
			}
			return nil, err
		}

		ancestors = append(ancestors, Relative{
			UserID:   upline.ID,
			Username: upline.Username,
			Level:    level,
		})
		visited[uplineID] = true
		current = upline
	}

	return ancestors, nil
}

// IndirectsOf walks strictly downward through sponsor_name links,
// breadth-first by level: level 1 is everyone sponsored by the starting
// user, level L+1 everyone sponsored by a level-L user. Each descendant
// appears once, at its first-discovered level.
func (w *Walker) IndirectsOf(ctx context.Context, userID uint64, maxLevel int) ([]Relative, error) {
	if maxLevel <= 0 || maxLevel > MaxWalkDepth {
		maxLevel = MaxWalkDepth
	}

	start, err := w.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var indirects []Relative
	visited := map[uint64]bool{userID: true}
	frontier := []string{start.Username}

	for level := 1; level <= maxLevel; level++ {
		if len(frontier) == 0 {
			break
		}

		sponsored, err := w.userRepo.ListBySponsorNames(ctx, frontier)
		if err != nil {
			return nil, err
		}

		frontier = frontier[:0]
		for _, u := range sponsored {
			if visited[u.ID] {
				continue
			}
			visited[u.ID] = true
			indirects = append(indirects, Relative{
				UserID:   u.ID,
				Username: u.Username,
				Level:    level,
			})
			frontier = append(frontier, u.Username)
		}
	}

	return indirects, nil
}
