package handler

import (
	"net/http"

	"fintrack/internal/models"
	"fintrack/internal/store"
	"fintrack/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// SavingHandler serves the savings routes.
type SavingHandler struct {
	Savings *store.SavingStore
}

func NewSavingHandler(savings *store.SavingStore) *SavingHandler {
	return &SavingHandler{Savings: savings}
}

type savingReq struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"max=255"`
	Date        string          `json:"date" binding:"required"`
}

type savingResp struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Date        string          `json:"date"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

func toSavingResp(s *models.Saving) savingResp {
	return savingResp{
		ID:          s.ID,
		Amount:      s.Amount,
		Description: s.Description,
		Date:        util.FormatDate(s.Date),
		CreatedAt:   s.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   s.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (r *savingReq) toInput(c *gin.Context) (store.SavingInput, bool) {
	date, err := util.ParseDate(r.Date)
	if err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return store.SavingInput{}, false
	}
	return store.SavingInput{
		Amount:      r.Amount,
		Description: r.Description,
		Date:        date,
	}, true
}

func (h *SavingHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	items, err := h.Savings.List(user.ID)
	if err != nil {
		storeError(c, err)
		return
	}

	out := make([]savingResp, 0, len(items))
	for i := range items {
		out = append(out, toSavingResp(&items[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *SavingHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	sv, err := h.Savings.Get(user.ID, c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSavingResp(sv))
}

func (h *SavingHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req savingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}

	sv, err := h.Savings.Create(user.ID, in)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSavingResp(sv))
}

func (h *SavingHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req savingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}

	sv, err := h.Savings.Update(user.ID, c.Param("id"), in)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSavingResp(sv))
}

func (h *SavingHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.Savings.Delete(user.ID, c.Param("id")); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "saving deleted"})
}
