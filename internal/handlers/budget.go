package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/zaffaf/backend/internal/auth"
	"example.com/zaffaf/backend/internal/models"
	"example.com/zaffaf/backend/internal/notifications"
	"example.com/zaffaf/backend/internal/repository"
)

type BudgetHandler struct {
	Budgets *repository.BudgetRepository
	Hub     *notifications.Hub
}

// NewBudgetHandler создает обработчик свадебного бюджета.
func NewBudgetHandler(budgets *repository.BudgetRepository, hub *notifications.Hub) *BudgetHandler {
	return &BudgetHandler{Budgets: budgets, Hub: hub}
}

type SetBudgetRequest struct {
	TotalCents int64  `json:"total_cents" validate:"required,gt=0"`
	Currency   string `json:"currency" validate:"required,len=3,alpha"`
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	AmountCents int64  `json:"amount_cents" validate:"required,gt=0"`
	Color       string `json:"color" validate:"omitempty,max=20"`
}

type ExpenseRequest struct {
	Description string    `json:"description" validate:"required,max=300"`
	AmountCents int64     `json:"amount_cents" validate:"required,gt=0"`
	Date        time.Time `json:"date" validate:"required"`
	Paid        bool      `json:"paid"`
	Vendor      string    `json:"vendor" validate:"max=200"`
	Notes       string    `json:"notes" validate:"max=1000"`
}

type BudgetResponse struct {
	Budget     models.Budget           `json:"budget"`
	Categories []models.BudgetCategory `json:"categories"`
}

type ExpenseListResponse struct {
	Expenses []models.Expense `json:"expenses"`
	Count    int              `json:"count"`
}

// Get возвращает бюджет вместе со статьями расходов.
func (h *BudgetHandler) Get(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	budget, err := h.Budgets.Get(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "budget not set")
		}
		return serverError(c)
	}

	categories, err := h.Budgets.ListCategories(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, BudgetResponse{Budget: budget, Categories: categories})
}

// Set создает или меняет общий бюджет.
func (h *BudgetHandler) Set(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req SetBudgetRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	budget, err := h.Budgets.Set(c.Request().Context(), userID, req.TotalCents, req.Currency)
	if err != nil {
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "invalid budget")
		}
		return serverError(c)
	}

	publishBudgetUpdate(h.Hub, userID, budget.SpentCents, budget.RemainingCents)

	return c.JSON(http.StatusOK, budget)
}

// ListCategories возвращает статьи расходов.
func (h *BudgetHandler) ListCategories(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	categories, err := h.Budgets.ListCategories(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, categories)
}

// AddCategory добавляет статью расходов.
func (h *BudgetHandler) AddCategory(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	category, err := h.Budgets.AddCategory(c.Request().Context(), userID, req.Name, req.AmountCents, req.Color)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return notFound(c, "budget not set")
		case errors.Is(err, repository.ErrBudgetExceeded):
			return badRequest(c, "categories exceed total budget")
		case errors.Is(err, repository.ErrInvalid):
			return badRequest(c, "invalid category")
		}
		return serverError(c)
	}

	h.publishTotals(c, userID)

	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory меняет статью расходов.
func (h *BudgetHandler) UpdateCategory(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid category id")
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	category, err := h.Budgets.UpdateCategory(c.Request().Context(), userID, categoryID, req.Name, req.AmountCents, req.Color)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return notFound(c, "category not found")
		case errors.Is(err, repository.ErrBudgetExceeded):
			return badRequest(c, "categories exceed total budget")
		case errors.Is(err, repository.ErrInvalid):
			return badRequest(c, "invalid category")
		}
		return serverError(c)
	}

	h.publishTotals(c, userID)

	return c.JSON(http.StatusOK, category)
}

// DeleteCategory удаляет статью вместе с тратами.
func (h *BudgetHandler) DeleteCategory(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid category id")
	}

	if err := h.Budgets.DeleteCategory(c.Request().Context(), userID, categoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "category not found")
		}
		return serverError(c)
	}

	h.publishTotals(c, userID)

	return c.NoContent(http.StatusNoContent)
}

// ListExpenses возвращает траты, опционально отфильтрованные по статье.
func (h *BudgetHandler) ListExpenses(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var categoryID *uuid.UUID
	if raw := c.QueryParam("category_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return badRequest(c, "invalid category id")
		}
		categoryID = &parsed
	}

	expenses, err := h.Budgets.ListExpenses(c.Request().Context(), userID, categoryID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, ExpenseListResponse{Expenses: expenses, Count: len(expenses)})
}

// AddExpense добавляет трату в статью.
func (h *BudgetHandler) AddExpense(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid category id")
	}

	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	expense, err := h.Budgets.AddExpense(c.Request().Context(), userID, categoryID, repository.ExpenseInput{
		Description: req.Description,
		AmountCents: req.AmountCents,
		Date:        req.Date,
		Paid:        req.Paid,
		Vendor:      req.Vendor,
		Notes:       req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return notFound(c, "category not found")
		case errors.Is(err, repository.ErrBudgetExceeded):
			return badRequest(c, "expenses exceed category amount")
		case errors.Is(err, repository.ErrInvalid):
			return badRequest(c, "invalid expense")
		}
		return serverError(c)
	}

	h.publishTotals(c, userID)

	return c.JSON(http.StatusCreated, expense)
}

// UpdateExpense меняет трату.
func (h *BudgetHandler) UpdateExpense(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid expense id")
	}

	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	expense, err := h.Budgets.UpdateExpense(c.Request().Context(), userID, expenseID, repository.ExpenseInput{
		Description: req.Description,
		AmountCents: req.AmountCents,
		Date:        req.Date,
		Paid:        req.Paid,
		Vendor:      req.Vendor,
		Notes:       req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return notFound(c, "expense not found")
		case errors.Is(err, repository.ErrBudgetExceeded):
			return badRequest(c, "expenses exceed category amount")
		case errors.Is(err, repository.ErrInvalid):
			return badRequest(c, "invalid expense")
		}
		return serverError(c)
	}

	h.publishTotals(c, userID)

	return c.JSON(http.StatusOK, expense)
}

// DeleteExpense удаляет трату.
func (h *BudgetHandler) DeleteExpense(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid expense id")
	}

	if err := h.Budgets.DeleteExpense(c.Request().Context(), userID, expenseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "expense not found")
		}
		return serverError(c)
	}

	h.publishTotals(c, userID)

	return c.NoContent(http.StatusNoContent)
}

func (h *BudgetHandler) publishTotals(c echo.Context, userID uuid.UUID) {
	budget, err := h.Budgets.Get(c.Request().Context(), userID)
	if err != nil {
		return
	}

	publishBudgetUpdate(h.Hub, userID, budget.SpentCents, budget.RemainingCents)
}
