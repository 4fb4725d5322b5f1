package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kiarash-moradi/mlm-dashboard/internal/domain/entity"
	domainerr "github.com/kiarash-moradi/mlm-dashboard/internal/domain/error"
	coreport "github.com/kiarash-moradi/mlm-dashboard/internal/domain/port/core"
	"github.com/kiarash-moradi/mlm-dashboard/internal/domain/usecase/commission"
	"github.com/kiarash-moradi/mlm-dashboard/internal/infrastructure/adapter/api/dto"
)

// CommissionHandler handles bonus reporting HTTP requests
type CommissionHandler struct {
	engine   *commission.Engine
	resolver *commission.ScheduleResolver
	logger   coreport.Logger
}

// NewCommissionHandler creates a new commission handler instance
func NewCommissionHandler(
	engine *commission.Engine,
	resolver *commission.ScheduleResolver,
	logger coreport.Logger,
) *CommissionHandler {
	return &CommissionHandler{
		engine:   engine,
		resolver: resolver,
		logger:   logger,
	}
}

// GetEarnings handles the GET /commission/:userId/earnings endpoint
func (h *CommissionHandler) GetEarnings(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	resp := dto.EarningsResponse{UserID: userID}

	totals := []struct {
		entryType entity.EntryType
		dest      *string
	}{
		{entity.TypePairBonus, &resp.PairBonus},
		{entity.TypeReferralBonus, &resp.ReferralBonus},
		{entity.TypeLeadershipBonus, &resp.LeadershipBonus},
		{entity.TypeMentorBonus, &resp.MentorBonus},
		{entity.TypeAffiliateBonus, &resp.AffiliateBonus},
	}
	for _, t := range totals {
		total, err := h.engine.TotalByType(ctx, userID, t.entryType)
		if err != nil {
			respondError(c, err)
			return
		}
		*t.dest = total
	}

	c.JSON(http.StatusOK, resp)
}

// GetAncestorBonuses handles the GET /commission/:userId/ancestors endpoint
func (h *CommissionHandler) GetAncestorBonuses(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	rows, err := h.engine.AncestorBonusReport(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toReportRows(rows))
}

// GetIndirectBonuses handles the GET /commission/:userId/indirects endpoint
func (h *CommissionHandler) GetIndirectBonuses(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	rows, err := h.engine.IndirectBonusReport(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toReportRows(rows))
}

// GetAffiliateSales handles the GET /commission/:userId/affiliate-sales endpoint
func (h *CommissionHandler) GetAffiliateSales(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	sales, err := h.engine.RecentAffiliateSales(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.AffiliateSaleResponse, 0, len(sales))
	for _, s := range sales {
		resp = append(resp, dto.AffiliateSaleResponse{
			Amount:        s.Amount,
			CreatedAt:     s.CreatedAt,
			BuyerUsername: s.BuyerUsername,
		})
	}

	c.JSON(http.StatusOK, resp)
}

// GetPackageRate handles the GET /commission/rates/:packageId endpoint.
// Query parameters: kind (leadership|mentor), level, pvt, gvt.
func (h *CommissionHandler) GetPackageRate(c *gin.Context) {
	packageID, err := strconv.ParseUint(c.Param("packageId"), 10, 64)
	if err != nil || packageID == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid package ID format",
		})
		return
	}

	kind := entity.ScheduleKind(c.DefaultQuery("kind", string(entity.ScheduleLeadership)))
	if kind != entity.ScheduleLeadership && kind != entity.ScheduleMentor {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid schedule kind, must be leadership or mentor",
		})
		return
	}

	level, _ := strconv.Atoi(c.DefaultQuery("level", "1"))
	pvt, _ := strconv.Atoi(c.DefaultQuery("pvt", "0"))
	gvt, _ := strconv.Atoi(c.DefaultQuery("gvt", "0"))

	rate, err := h.resolver.PackageRateFor(c.Request.Context(), packageID, kind, level, pvt, gvt)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PackageRateResponse{
		PackageID: packageID,
		Kind:      string(kind),
		Level:     level,
		Rate:      rate,
	})
}

func toReportRows(rows []commission.ReportRow) []dto.ReportRowResponse {
	resp := make([]dto.ReportRowResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, dto.ReportRowResponse{
			Label:  r.Label,
			Level:  r.Level,
			Amount: r.Amount,
		})
	}
	return resp
}
