package migration

import (
	"context"

	"github.com/kiarash-moradi/mlm-dashboard/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Default packages available on a fresh install. Prices in cents.
var defaultPackages = []model.Package{
	{ID: 1, Name: "starter", Price: 10000, PV: 10, DailyMax: 5, PairRate: 10, ReferralRate: 10},
	{ID: 2, Name: "builder", Price: 50000, PV: 60, DailyMax: 10, PairRate: 10, ReferralRate: 10},
	{ID: 3, Name: "leader", Price: 100000, PV: 130, DailyMax: 20, PairRate: 12, ReferralRate: 10},
}

// Five-level leadership and mentor schedules shared by all default
// packages. Rates in percent, thresholds in points.
var defaultScheduleLevels = []struct {
	level int
	pvt   int
	gvt   int
	rate  int
}{
	{1, 100, 0, 10},
	{2, 200, 1000, 7},
	{3, 300, 5000, 5},
	{4, 400, 20000, 3},
	{5, 500, 50000, 2},
}

// CreateDefaultCatalog seeds the package catalog and its bonus
// schedules when they are missing. Existing rows are left untouched so
// admin edits survive restarts.
func CreateDefaultCatalog(ctx context.Context, db *gorm.DB) error {
	for _, pkg := range defaultPackages {
		result := db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&pkg)
		if result.Error != nil {
			return result.Error
		}

		for _, kind := range []string{"leadership", "mentor"} {
			for _, lvl := range defaultScheduleLevels {
				entry := model.ScheduleEntry{
					PackageID:   pkg.ID,
					Kind:        kind,
					Level:       lvl.level,
					PVTRequired: lvl.pvt,
					GVTRequired: lvl.gvt,
					Rate:        lvl.rate,
				}
				result := db.WithContext(ctx).
					Clauses(clause.OnConflict{DoNothing: true}).
					Create(&entry)
				if result.Error != nil {
					return result.Error
				}
			}
		}
	}

	return nil
}
