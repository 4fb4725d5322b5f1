package commission

import (
	"context"

	"github.com/kiarash-moradi/mlm-dashboard/internal/domain/entity"
	errs "github.com/kiarash-moradi/mlm-dashboard/internal/domain/error"
	"github.com/kiarash-moradi/mlm-dashboard/internal/domain/port/persistence"
)

// ScheduleResolver answers which leadership/mentor rate applies to a
// member at a given level, given the member's personal and group
// volumes. Schedules are admin data read at computation time; the
// resolver itself is pure.
type ScheduleResolver struct {
	packageRepo persistence.PackageRepository
}

// NewScheduleResolver creates a schedule resolver
func NewScheduleResolver(packageRepo persistence.PackageRepository) *ScheduleResolver {
	return &ScheduleResolver{packageRepo: packageRepo}
}

// RateFor finds the rate of the entry matching level with thresholds
// satisfied by pvt/gvt. Out-of-range levels, missing entries, and unmet
// thresholds all yield 0, never an error.
func RateFor(entries []entity.ScheduleEntry, level, pvt, gvt int) int {
	if level < 1 || level > entity.MaxScheduleLevel {
		return 0
	}
	for _, e := range entries {
		if e.Level != level {
			continue
		}
		if e.Unlocked(pvt, gvt) {
			return e.Rate
		}
		return 0
	}
	return 0
}

// PackageRateFor loads a package's schedule of the given kind and
// resolves the applicable rate.
func (r *ScheduleResolver) PackageRateFor(ctx context.Context, packageID uint64, kind entity.ScheduleKind, level, pvt, gvt int) (int, error) {
	if packageID == 0 {
		return 0, errs.ErrPackageNotFound
	}
	entries, err := r.packageRepo.ListSchedule(ctx, packageID, kind)
	if err != nil {
		return 0, err
	}
	return RateFor(entries, level, pvt, gvt), nil
}
