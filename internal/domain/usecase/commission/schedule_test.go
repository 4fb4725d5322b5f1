package commission

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kiarash-moradi/mlm-dashboard/internal/domain/entity"
	errs "github.com/kiarash-moradi/mlm-dashboard/internal/domain/error"
	mockpersistence "github.com/kiarash-moradi/mlm-dashboard/mocks/port/persistence"
)

func leadershipEntries() []entity.ScheduleEntry {
	return []entity.ScheduleEntry{
		{PackageID: 1, Kind: entity.ScheduleLeadership, Level: 1, PVTRequired: 0, GVTRequired: 0, Rate: 10},
		{PackageID: 1, Kind: entity.ScheduleLeadership, Level: 2, PVTRequired: 100, GVTRequired: 500, Rate: 7},
		{PackageID: 1, Kind: entity.ScheduleLeadership, Level: 3, PVTRequired: 200, GVTRequired: 1000, Rate: 5},
	}
}

func TestRateFor(t *testing.T) {
	entries := leadershipEntries()

	testCases := []struct {
		name     string
		level    int
		pvt      int
		gvt      int
		expected int
	}{
		{"level one has no thresholds", 1, 0, 0, 10},
		{"level two unlocked at exact thresholds", 2, 100, 500, 7},
		{"level two locked below pvt threshold", 2, 99, 500, 0},
		{"level two locked below gvt threshold", 2, 100, 499, 0},
		{"missing level yields zero", 4, 9999, 9999, 0},
		{"level zero is out of range", 0, 9999, 9999, 0},
		{"level above the cap is out of range", 6, 9999, 9999, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, RateFor(entries, tc.level, tc.pvt, tc.gvt))
		})
	}
}

func TestScheduleResolverPackageRateFor(t *testing.T) {
	ctx := context.Background()

	t.Run("loads the schedule and resolves the rate", func(t *testing.T) {
		mockPackageRepo := new(mockpersistence.MockPackageRepository)
		mockPackageRepo.On("ListSchedule", ctx, uint64(1), entity.ScheduleLeadership).Return(leadershipEntries(), nil)

		resolver := NewScheduleResolver(mockPackageRepo)
		rate, err := resolver.PackageRateFor(ctx, 1, entity.ScheduleLeadership, 2, 150, 600)

		assert.NoError(t, err)
		assert.Equal(t, 7, rate)
		mockPackageRepo.AssertExpectations(t)
	})

	t.Run("rejects zero package id", func(t *testing.T) {
		mockPackageRepo := new(mockpersistence.MockPackageRepository)

		resolver := NewScheduleResolver(mockPackageRepo)
		_, err := resolver.PackageRateFor(ctx, 0, entity.ScheduleMentor, 1, 0, 0)

		assert.ErrorIs(t, err, errs.ErrPackageNotFound)
		mockPackageRepo.AssertNotCalled(t, "ListSchedule")
	})

	t.Run("surfaces repository failures", func(t *testing.T) {
		mockPackageRepo := new(mockpersistence.MockPackageRepository)
		dbError := errors.New("connection refused")
		mockPackageRepo.On("ListSchedule", ctx, uint64(1), entity.ScheduleMentor).Return(nil, dbError)

		resolver := NewScheduleResolver(mockPackageRepo)
		_, err := resolver.PackageRateFor(ctx, 1, entity.ScheduleMentor, 1, 0, 0)

		assert.Equal(t, dbError, err)
	})
}
