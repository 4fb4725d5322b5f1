package dto

import "time"

// EarningsResponse represents the per-type bonus totals on the
// dashboard landing view
type EarningsResponse struct {
	UserID          uint64 `json:"userId"`
	PairBonus       string `json:"pairBonus"`
	ReferralBonus   string `json:"referralBonus"`
	LeadershipBonus string `json:"leadershipBonus"`
	MentorBonus     string `json:"mentorBonus"`
	AffiliateBonus  string `json:"affiliateBonus"`
}

// ReportRowResponse represents one line of a bonus report
type ReportRowResponse struct {
	Label  string `json:"label"`
	Level  int    `json:"level"`
	Amount string `json:"amount"`
}

// PackageRateResponse represents a resolved schedule rate
type PackageRateResponse struct {
	PackageID uint64 `json:"packageId"`
	Kind      string `json:"kind"`
	Level     int    `json:"level"`
	Rate      int    `json:"rate"`
}

// AffiliateSaleResponse represents one correlated store sale
type AffiliateSaleResponse struct {
	Amount        string    `json:"amount"`
	CreatedAt     time.Time `json:"createdAt"`
	BuyerUsername string    `json:"buyerUsername"`
}
