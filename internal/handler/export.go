package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/VYR4L/backend-expense-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler serves CSV/XLSX downloads of the caller's ledger.
type ExportHandler struct {
	Transactions *service.TransactionService
}

func NewExportHandler(transactions *service.TransactionService) *ExportHandler {
	return &ExportHandler{Transactions: transactions}
}

var exportHeaders = []string{"ID", "Type", "Description", "Amount", "Category ID", "Occurred At", "Created At"}

// ExportCSV streams the user's live transactions as CSV.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	txns, err := h.Transactions.ListAll(user.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	writer.Write(exportHeaders)
	for i := range txns {
		t := &txns[i]
		writer.Write([]string{
			strconv.FormatUint(uint64(t.ID), 10),
			t.Type,
			t.Description,
			t.Amount.StringFixed(2),
			strconv.FormatUint(uint64(t.CategoryID), 10),
			t.OccurredAt.Format("2006-01-02"),
			t.CreatedAt.Format(time.RFC3339),
		})
	}

	// csv.Writer latches the first write error; one check covers them all
	writer.Flush()
	if err := writer.Error(); err != nil {
		c.Error(err)
	}
}

// ExportXLSX writes the user's live transactions into a spreadsheet.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	txns, err := h.Transactions.ListAll(user.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	f := excelize.NewFile()
	sheetName := "Transactions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx := range txns {
		t := &txns[idx]
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), t.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), t.Type)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), t.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), t.Amount.StringFixed(2))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), t.CategoryID)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), t.OccurredAt.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), t.CreatedAt.Format(time.RFC3339))
	}

	f.SetColWidth(sheetName, "B", "C", 20)
	f.SetColWidth(sheetName, "D", "G", 14)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
