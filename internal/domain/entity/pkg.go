package entity

import "time"

// ScheduleKind selects which five-level schedule of a package applies
type ScheduleKind string

// Schedule kinds
const (
	ScheduleLeadership ScheduleKind = "leadership"
	ScheduleMentor     ScheduleKind = "mentor"
)

// MaxScheduleLevel is the deepest level a leadership or mentor schedule
// reaches; it matches the ancestry walk depth cap.
const MaxScheduleLevel = 5

// Package is an admin-managed entry package. Rates are integer
// percentages; prices are cents.
type Package struct {
	ID            uint64
	Name          string
	PriceInCents  int64
	PV            int // point value credited on purchase
	DailyMax      int // pair cap per day
	PairRate      int
	ReferralRate  int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FormattedPrice returns the package price with 2 decimal places
func (p *Package) FormattedPrice() string {
	return FormatCents(p.PriceInCents)
}

// ScheduleEntry is one row of a package's leadership or mentor schedule,
// keyed by (package, kind, level 1..5). PVT and GVT are the personal and
// group volume thresholds gating the rate.
type ScheduleEntry struct {
	PackageID   uint64
	Kind        ScheduleKind
	Level       int
	PVTRequired int
	GVTRequired int
	Rate        int
}

// Unlocked reports whether the member's volumes satisfy this entry
func (s ScheduleEntry) Unlocked(pvt, gvt int) bool {
	return pvt >= s.PVTRequired && gvt >= s.GVTRequired
}
