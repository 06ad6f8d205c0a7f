package handler

import (
	"net/http"

	"fintrack/internal/models"
	"fintrack/internal/store"
	"fintrack/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PlannedExpenseHandler serves the planned-expense routes.
type PlannedExpenseHandler struct {
	Planned *store.PlannedExpenseStore
}

func NewPlannedExpenseHandler(planned *store.PlannedExpenseStore) *PlannedExpenseHandler {
	return &PlannedExpenseHandler{Planned: planned}
}

type plannedExpenseReq struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"max=255"`
	Date        string          `json:"date" binding:"required"`
	CategoryID  string          `json:"categoryId" binding:"required"`
}

type plannedExpenseResp struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Date        string          `json:"date"`
	Category    categoryResp    `json:"category"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

func toPlannedExpenseResp(p *models.PlannedExpense) plannedExpenseResp {
	return plannedExpenseResp{
		ID:          p.ID,
		Amount:      p.Amount,
		Description: p.Description,
		Date:        util.FormatDate(p.Date),
		Category:    toCategoryResp(&p.Category),
		CreatedAt:   p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   p.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (r *plannedExpenseReq) toInput(c *gin.Context) (store.PlannedExpenseInput, bool) {
	date, err := util.ParseDate(r.Date)
	if err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return store.PlannedExpenseInput{}, false
	}
	return store.PlannedExpenseInput{
		Amount:      r.Amount,
		Description: r.Description,
		Date:        date,
		CategoryID:  r.CategoryID,
	}, true
}

func (h *PlannedExpenseHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	items, err := h.Planned.List(user.ID)
	if err != nil {
		storeError(c, err)
		return
	}

	out := make([]plannedExpenseResp, 0, len(items))
	for i := range items {
		out = append(out, toPlannedExpenseResp(&items[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *PlannedExpenseHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	p, err := h.Planned.Get(user.ID, c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPlannedExpenseResp(p))
}

func (h *PlannedExpenseHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req plannedExpenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}

	p, err := h.Planned.Create(user.ID, in)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPlannedExpenseResp(p))
}

func (h *PlannedExpenseHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req plannedExpenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}

	p, err := h.Planned.Update(user.ID, c.Param("id"), in)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPlannedExpenseResp(p))
}

func (h *PlannedExpenseHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.Planned.Delete(user.ID, c.Param("id")); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "planned expense deleted"})
}
