package handler

import (
	"net/http"

	"fintrack/internal/models"
	"fintrack/internal/store"
	"fintrack/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TransactionHandler serves the income/expense ledger routes.
type TransactionHandler struct {
	Transactions *store.TransactionStore
}

func NewTransactionHandler(transactions *store.TransactionStore) *TransactionHandler {
	return &TransactionHandler{Transactions: transactions}
}

type transactionReq struct {
	Type        string          `json:"type" binding:"required,oneof=income expense"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"max=255"`
	Date        string          `json:"date" binding:"required"`
	CategoryID  string          `json:"categoryId" binding:"required"`
}

type transactionResp struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Date        string          `json:"date"`
	Category    categoryResp    `json:"category"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

func toTransactionResp(t *models.Transaction) transactionResp {
	return transactionResp{
		ID:          t.ID,
		Type:        t.Type,
		Amount:      t.Amount,
		Description: t.Description,
		Date:        util.FormatDate(t.Date),
		Category:    toCategoryResp(&t.Category),
		CreatedAt:   t.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   t.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (r *transactionReq) toInput(c *gin.Context) (store.TransactionInput, bool) {
	date, err := util.ParseDate(r.Date)
	if err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return store.TransactionInput{}, false
	}
	return store.TransactionInput{
		Type:        r.Type,
		Amount:      r.Amount,
		Description: r.Description,
		Date:        date,
		CategoryID:  r.CategoryID,
	}, true
}

func (h *TransactionHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	txs, err := h.Transactions.List(user.ID)
	if err != nil {
		storeError(c, err)
		return
	}

	items := make([]transactionResp, 0, len(txs))
	for i := range txs {
		items = append(items, toTransactionResp(&txs[i]))
	}
	c.JSON(http.StatusOK, items)
}

func (h *TransactionHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	t, err := h.Transactions.Get(user.ID, c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTransactionResp(t))
}

func (h *TransactionHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}

	t, err := h.Transactions.Create(user.ID, in)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTransactionResp(t))
}

func (h *TransactionHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}

	t, err := h.Transactions.Update(user.ID, c.Param("id"), in)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTransactionResp(t))
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.Transactions.Delete(user.ID, c.Param("id")); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "transaction deleted"})
}
