package handler

import (
	"net/http"

	"fintrack/internal/models"
	"fintrack/internal/store"
	"fintrack/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GoalHandler serves the savings-goal routes.
type GoalHandler struct {
	Goals *store.GoalStore
}

func NewGoalHandler(goals *store.GoalStore) *GoalHandler {
	return &GoalHandler{Goals: goals}
}

type createGoalReq struct {
	Title        string          `json:"title" binding:"required,max=128"`
	TargetAmount decimal.Decimal `json:"targetAmount" binding:"required"`
	Description  string          `json:"description" binding:"max=255"`
}

type updateGoalReq struct {
	Title         *string          `json:"title"`
	TargetAmount  *decimal.Decimal `json:"targetAmount"`
	CurrentAmount *decimal.Decimal `json:"currentAmount"`
	Description   *string          `json:"description"`
	// Delta adjusts the current amount relative to its present value;
	// the result is clamped at zero. Mutually exclusive with
	// currentAmount.
	Delta *decimal.Decimal `json:"delta"`
}

type goalResp struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Description   string          `json:"description,omitempty"`
	CreatedAt     string          `json:"createdAt"`
	UpdatedAt     string          `json:"updatedAt"`
}

func toGoalResp(g *models.Goal) goalResp {
	return goalResp{
		ID:            g.ID,
		Title:         g.Title,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		Description:   g.Description,
		CreatedAt:     g.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:     g.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (h *GoalHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	goals, err := h.Goals.List(user.ID)
	if err != nil {
		storeError(c, err)
		return
	}

	out := make([]goalResp, 0, len(goals))
	for i := range goals {
		out = append(out, toGoalResp(&goals[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *GoalHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	g, err := h.Goals.Get(user.ID, c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGoalResp(g))
}

func (h *GoalHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createGoalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	g, err := h.Goals.Create(user.ID, req.Title, req.TargetAmount, req.Description)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toGoalResp(g))
}

// Update applies a partial patch. A delta is resolved here against the
// stored current amount, clamped at zero, so the store only ever sees
// absolute values.
func (h *GoalHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req updateGoalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := store.GoalPatch{
		Title:         req.Title,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Description:   req.Description,
	}

	if req.Delta != nil {
		if req.CurrentAmount != nil {
			util.Error(c, http.StatusBadRequest, "provide either currentAmount or delta, not both")
			return
		}
		g, err := h.Goals.Get(user.ID, c.Param("id"))
		if err != nil {
			storeError(c, err)
			return
		}
		next := g.CurrentAmount.Add(*req.Delta)
		if next.IsNegative() {
			next = decimal.Zero
		}
		patch.CurrentAmount = &next
	}

	g, err := h.Goals.Update(user.ID, c.Param("id"), patch)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGoalResp(g))
}

func (h *GoalHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.Goals.Delete(user.ID, c.Param("id")); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "goal deleted"})
}
