package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/store"
	"fintrack/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler renders the transaction ledger as CSV or XLSX. Both
// routes accept an optional ?start=&end= date range.
type ExportHandler struct {
	Transactions *store.TransactionStore
}

func NewExportHandler(transactions *store.TransactionStore) *ExportHandler {
	return &ExportHandler{Transactions: transactions}
}

var exportHeaders = []string{"Type", "Category", "Amount", "Description", "Date"}

func exportRow(t *models.Transaction) []string {
	return []string{
		t.Type,
		t.Category.Name,
		t.Amount.StringFixed(2),
		t.Description,
		util.FormatDate(t.Date),
	}
}

func (h *ExportHandler) fetch(c *gin.Context) ([]models.Transaction, bool) {
	user, ok := currentUser(c)
	if !ok {
		return nil, false
	}

	var start, end time.Time
	if s := c.Query("start"); s != "" {
		var err error
		if start, err = util.ParseDate(s); err != nil {
			util.Error(c, http.StatusBadRequest, err.Error())
			return nil, false
		}
	}
	if s := c.Query("end"); s != "" {
		var err error
		if end, err = util.ParseDate(s); err != nil {
			util.Error(c, http.StatusBadRequest, err.Error())
			return nil, false
		}
	}

	txs, err := h.Transactions.ListBetween(user.ID, start, end)
	if err != nil {
		storeError(c, err)
		return nil, false
	}
	return txs, true
}

// CSV streams the ledger as a CSV attachment.
func (h *ExportHandler) CSV(c *gin.Context) {
	txs, ok := h.fetch(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.csv\"",
		time.Now().Format("20060102")))

	// UTF-8 BOM so spreadsheet apps detect the encoding
	_, _ = c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	_ = writer.Write(exportHeaders)
	for i := range txs {
		_ = writer.Write(exportRow(&txs[i]))
	}
}

// XLSX renders the ledger as a spreadsheet attachment.
func (h *ExportHandler) XLSX(c *gin.Context) {
	txs, ok := h.fetch(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	sheetName := "Transactions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "internal server error")
		return
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}
	for idx := range txs {
		row := idx + 2
		for col, val := range exportRow(&txs[idx]) {
			cell := fmt.Sprintf("%c%d", 'A'+col, row)
			f.SetCellValue(sheetName, cell, val)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "B", 18)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "D", 30)
	f.SetColWidth(sheetName, "E", "E", 12)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, "internal server error")
	}
}
