package handler

import (
	"net/http"

	"github.com/VYR4L/backend-expense-tracker/internal/models"
	"github.com/VYR4L/backend-expense-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GoalHandler serves savings-goal CRUD and the add-amount progress
// operation.
type GoalHandler struct {
	Goals *service.GoalService
}

func NewGoalHandler(goals *service.GoalService) *GoalHandler {
	return &GoalHandler{Goals: goals}
}

type createGoalReq struct {
	Name          string          `json:"name" binding:"required,max=100"`
	TargetAmount  decimal.Decimal `json:"target_amount" binding:"required"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Color         string          `json:"color" binding:"required,max=7"`
	Icon          string          `json:"icon" binding:"max=100"`
}

type updateGoalReq struct {
	Name          *string          `json:"name" binding:"omitempty,max=100"`
	TargetAmount  *decimal.Decimal `json:"target_amount"`
	CurrentAmount *decimal.Decimal `json:"current_amount"`
	Color         *string          `json:"color" binding:"omitempty,max=7"`
	Icon          *string          `json:"icon" binding:"omitempty,max=100"`
}

type addAmountReq struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// goalResp is the goal plus its derived completion percentage.
type goalResp struct {
	*models.Goal
	PercentComplete decimal.Decimal `json:"percent_complete"`
}

func toGoalResp(g *models.Goal) goalResp {
	return goalResp{Goal: g, PercentComplete: g.PercentComplete()}
}

func (h *GoalHandler) Create(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	var req createGoalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.Goals.Create(user.ID, service.GoalInput{
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Color:         req.Color,
		Icon:          req.Icon,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toGoalResp(goal))
}

func (h *GoalHandler) Get(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	id := pathID(c, "id")
	if id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
		return
	}

	goal, err := h.Goals.Get(id, user.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGoalResp(goal))
}

// ListForUser returns the caller's goals; the path user id must match
// the principal.
func (h *GoalHandler) ListForUser(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	userID := pathID(c, "user_id")
	if userID == 0 || userID != user.ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
		return
	}

	goals, err := h.Goals.ListForUser(user.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp := make([]goalResp, 0, len(goals))
	for i := range goals {
		resp = append(resp, toGoalResp(&goals[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *GoalHandler) Update(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	id := pathID(c, "id")
	if id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
		return
	}

	var req updateGoalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.Goals.Update(id, user.ID, service.GoalPatch{
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Color:         req.Color,
		Icon:          req.Icon,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGoalResp(goal))
}

func (h *GoalHandler) Delete(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	id := pathID(c, "id")
	if id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
		return
	}

	if err := h.Goals.Delete(id, user.ID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GoalHandler) AddAmount(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	id := pathID(c, "id")
	if id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
		return
	}

	var req addAmountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.Goals.AddAmount(id, user.ID, req.Amount)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGoalResp(goal))
}
