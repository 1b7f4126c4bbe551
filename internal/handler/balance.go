package handler

import (
	"net/http"
	"time"

	"github.com/VYR4L/backend-expense-tracker/internal/models"
	"github.com/VYR4L/backend-expense-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BalanceHandler serves the per-user balance snapshot.
type BalanceHandler struct {
	Balances *service.BalanceService
}

func NewBalanceHandler(balances *service.BalanceService) *BalanceHandler {
	return &BalanceHandler{Balances: balances}
}

// balanceResp is the stored snapshot plus the read-time projections.
type balanceResp struct {
	*models.Balance
	MonthlyNet               decimal.Decimal `json:"monthly_net"`
	ProjectedMonthEndBalance decimal.Decimal `json:"projected_month_end_balance"`
	TotalNet                 decimal.Decimal `json:"total_net"`
}

// Get returns the caller's snapshot. The path user id must match the
// principal; other users' balances read as not found.
func (h *BalanceHandler) Get(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	userID := pathID(c, "user_id")
	if userID == 0 || userID != user.ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Balance not found for this user"})
		return
	}

	balance, err := h.Balances.Get(userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	now := time.Now().UTC()
	c.JSON(http.StatusOK, balanceResp{
		Balance:                  balance,
		MonthlyNet:               balance.MonthlyNet(),
		ProjectedMonthEndBalance: balance.ProjectedMonthEndBalance(now),
		TotalNet:                 balance.TotalNet(),
	})
}
