package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"expense-ledger/internal/models"
	"expense-ledger/internal/service"
	"expense-ledger/internal/util"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler serves /v1/expenses.
type ExpenseHandler struct {
	Expenses *service.ExpenseService
}

func NewExpenseHandler(expenses *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{Expenses: expenses}
}

type expenseCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type expenseResp struct {
	ID         string           `json:"id"`
	Amount     float64          `json:"amount"`
	Narration  string           `json:"narration"`
	UserID     string           `json:"userId"`
	CategoryID string           `json:"categoryId"`
	Category   *expenseCategory `json:"category,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

func toExpenseResp(e *models.Expense) expenseResp {
	resp := expenseResp{
		ID:         e.ID,
		Amount:     e.Amount.InexactFloat64(),
		Narration:  e.Narration,
		UserID:     e.UserID,
		CategoryID: e.CategoryID,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
	if e.Category != nil {
		resp.Category = &expenseCategory{ID: e.Category.ID, Name: e.Category.Name}
	}
	return resp
}

func toExpenseList(expenses []models.Expense) []expenseResp {
	items := make([]expenseResp, 0, len(expenses))
	for i := range expenses {
		items = append(items, toExpenseResp(&expenses[i]))
	}
	return items
}

// bindExpense decodes and validates an expense body; it writes the error response itself.
func bindExpense(c *gin.Context) (util.ExpenseInput, bool) {
	var req util.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return util.ExpenseInput{}, false
	}
	in, err := util.ParseExpenseInput(req)
	if err != nil {
		fail(c, err)
		return util.ExpenseInput{}, false
	}
	return in, true
}

func listQuery(c *gin.Context) service.ExpenseQuery {
	return service.ExpenseQuery{
		Filter:    c.Query("filter"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}
}

// ---------- create ----------

func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	in, ok := bindExpense(c)
	if !ok {
		return
	}

	e, err := h.Expenses.Create(c.Request.Context(), user.UserID, in)
	if err != nil {
		fail(c, err)
		return
	}
	util.JSON(c, http.StatusCreated, toExpenseResp(e))
}

// ---------- list ----------

// ListExpenses supports ?filter=<category name> or ?startDate=&endDate= (YYYY-MM-DD, end inclusive).
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	expenses, err := h.Expenses.Query(c.Request.Context(), user.UserID, listQuery(c))
	if err != nil {
		fail(c, err)
		return
	}
	util.JSON(c, http.StatusOK, toExpenseList(expenses))
}

// ---------- single expense ----------

func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	e, err := h.Expenses.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	util.JSON(c, http.StatusOK, toExpenseResp(e))
}

func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	in, ok := bindExpense(c)
	if !ok {
		return
	}

	e, err := h.Expenses.Update(c.Request.Context(), id, in)
	if err != nil {
		fail(c, err)
		return
	}
	util.JSON(c, http.StatusOK, toExpenseResp(e))
}

func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.Expenses.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---------- summary ----------

func (h *ExpenseHandler) Summary(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	sum, err := h.Expenses.Summary(c.Request.Context(), user.UserID, c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		fail(c, err)
		return
	}
	util.JSON(c, http.StatusOK, sum)
}

// ---------- export ----------

// Export downloads the listed expenses as CSV (default) or XLSX.
func (h *ExpenseHandler) Export(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	format := strings.ToLower(c.DefaultQuery("format", service.FormatCSV))
	if format != service.FormatCSV && format != service.FormatXLSX {
		fail(c, service.Validation("Unsupported format"))
		return
	}

	expenses, err := h.Expenses.Query(c.Request.Context(), user.UserID, listQuery(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.Header("Content-Type", service.ContentType(format))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"expenses_%s.%s\"",
		time.Now().Format("20060102"), format))
	c.Status(http.StatusOK)
	if err := service.Export(c.Writer, format, expenses); err != nil {
		// headers are already sent; record for the request log
		_ = c.Error(err)
	}
}
