package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/zaffaf/backend/internal/models"
)

type BudgetRepository struct {
	db *pgxpool.Pool
}

// NewBudgetRepository создает репозиторий бюджета.
func NewBudgetRepository(db *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{db: db}
}

type ExpenseInput struct {
	Description string
	AmountCents int64
	Date        time.Time
	Paid        bool
	Vendor      string
	Notes       string
}

// Get возвращает бюджет пользователя.
func (r *BudgetRepository) Get(ctx context.Context, userID uuid.UUID) (models.Budget, error) {
	var budget models.Budget

	err := r.db.QueryRow(ctx,
		`SELECT user_id, total_cents, currency, spent_cents, remaining_cents, created_at, updated_at
		 FROM budgets
		 WHERE user_id = $1`,
		userID,
	).Scan(&budget.UserID, &budget.TotalCents, &budget.Currency, &budget.SpentCents, &budget.RemainingCents, &budget.CreatedAt, &budget.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return budget, ErrNotFound
		}
		return budget, err
	}

	return budget, nil
}

// Set создает бюджет или меняет его сумму и валюту, затем пересчитывает итоги.
func (r *BudgetRepository) Set(ctx context.Context, userID uuid.UUID, totalCents int64, currency string) (models.Budget, error) {
	var budget models.Budget

	if totalCents <= 0 {
		return budget, ErrInvalid
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return budget, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO budgets (user_id, total_cents, currency, spent_cents, remaining_cents)
		 VALUES ($1, $2, $3, 0, $2)
		 ON CONFLICT (user_id) DO UPDATE
		 SET total_cents = EXCLUDED.total_cents,
		     currency = EXCLUDED.currency,
		     updated_at = NOW()`,
		userID, totalCents, currency,
	)
	if err != nil {
		return budget, err
	}

	if err = recalcBudget(ctx, tx, userID); err != nil {
		return budget, err
	}

	err = tx.QueryRow(ctx,
		`SELECT user_id, total_cents, currency, spent_cents, remaining_cents, created_at, updated_at
		 FROM budgets
		 WHERE user_id = $1`,
		userID,
	).Scan(&budget.UserID, &budget.TotalCents, &budget.Currency, &budget.SpentCents, &budget.RemainingCents, &budget.CreatedAt, &budget.UpdatedAt)
	if err != nil {
		return budget, err
	}

	return budget, tx.Commit(ctx)
}

// ListCategories возвращает статьи расходов пользователя.
func (r *BudgetRepository) ListCategories(ctx context.Context, userID uuid.UUID) ([]models.BudgetCategory, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, name, amount_cents, color, created_at
		 FROM budget_categories
		 WHERE user_id = $1
		 ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]models.BudgetCategory, 0)
	for rows.Next() {
		var category models.BudgetCategory

		err := rows.Scan(&category.ID, &category.UserID, &category.Name, &category.AmountCents, &category.Color, &category.CreatedAt)
		if err != nil {
			return nil, err
		}

		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

// AddCategory создает статью расходов, не позволяя сумме статей
// превысить общий бюджет.
func (r *BudgetRepository) AddCategory(ctx context.Context, userID uuid.UUID, name string, amountCents int64, color string) (models.BudgetCategory, error) {
	var category models.BudgetCategory

	if strings.TrimSpace(name) == "" || amountCents <= 0 {
		return category, ErrInvalid
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return category, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var totalCents int64
	err = tx.QueryRow(ctx,
		`SELECT total_cents FROM budgets WHERE user_id = $1`,
		userID,
	).Scan(&totalCents)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return category, ErrNotFound
		}
		return category, err
	}

	var allocated int64
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0)
		 FROM budget_categories
		 WHERE user_id = $1`,
		userID,
	).Scan(&allocated)
	if err != nil {
		return category, err
	}

	if allocated+amountCents > totalCents {
		return category, ErrBudgetExceeded
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO budget_categories (id, user_id, name, amount_cents, color)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, user_id, name, amount_cents, color, created_at`,
		uuid.New(), userID, name, amountCents, color,
	).Scan(&category.ID, &category.UserID, &category.Name, &category.AmountCents, &category.Color, &category.CreatedAt)
	if err != nil {
		return category, err
	}

	if err = recalcBudget(ctx, tx, userID); err != nil {
		return category, err
	}

	return category, tx.Commit(ctx)
}

// UpdateCategory меняет статью расходов с той же проверкой лимита.
func (r *BudgetRepository) UpdateCategory(ctx context.Context, userID, categoryID uuid.UUID, name string, amountCents int64, color string) (models.BudgetCategory, error) {
	var category models.BudgetCategory

	if strings.TrimSpace(name) == "" || amountCents <= 0 {
		return category, ErrInvalid
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return category, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var totalCents int64
	err = tx.QueryRow(ctx,
		`SELECT total_cents FROM budgets WHERE user_id = $1`,
		userID,
	).Scan(&totalCents)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return category, ErrNotFound
		}
		return category, err
	}

	var otherAllocated int64
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0)
		 FROM budget_categories
		 WHERE user_id = $1 AND id <> $2`,
		userID, categoryID,
	).Scan(&otherAllocated)
	if err != nil {
		return category, err
	}

	if otherAllocated+amountCents > totalCents {
		return category, ErrBudgetExceeded
	}

	err = tx.QueryRow(ctx,
		`UPDATE budget_categories
		 SET name = $3, amount_cents = $4, color = $5
		 WHERE id = $2 AND user_id = $1
		 RETURNING id, user_id, name, amount_cents, color, created_at`,
		userID, categoryID, name, amountCents, color,
	).Scan(&category.ID, &category.UserID, &category.Name, &category.AmountCents, &category.Color, &category.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return category, ErrNotFound
		}
		return category, err
	}

	if err = recalcBudget(ctx, tx, userID); err != nil {
		return category, err
	}

	return category, tx.Commit(ctx)
}

// DeleteCategory удаляет статью вместе с ее тратами и пересчитывает бюджет.
func (r *BudgetRepository) DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	cmd, err := tx.Exec(ctx,
		`DELETE FROM budget_categories
		 WHERE id = $2 AND user_id = $1`,
		userID, categoryID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err = recalcBudget(ctx, tx, userID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ListExpenses возвращает траты пользователя, опционально по одной статье.
func (r *BudgetRepository) ListExpenses(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID) ([]models.Expense, error) {
	query := `SELECT id, category_id, description, amount_cents, date, paid, vendor, notes, created_at
		 FROM expenses
		 WHERE user_id = $1
		 ORDER BY date DESC`
	args := []interface{}{userID}

	if categoryID != nil {
		query = `SELECT id, category_id, description, amount_cents, date, paid, vendor, notes, created_at
			 FROM expenses
			 WHERE user_id = $1 AND category_id = $2
			 ORDER BY date DESC`
		args = append(args, *categoryID)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := make([]models.Expense, 0)
	for rows.Next() {
		var expense models.Expense

		err := rows.Scan(&expense.ID, &expense.CategoryID, &expense.Description, &expense.AmountCents, &expense.Date, &expense.Paid, &expense.Vendor, &expense.Notes, &expense.CreatedAt)
		if err != nil {
			return nil, err
		}

		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return expenses, nil
}

// AddExpense добавляет трату в статью; суммарные траты статьи
// не могут превысить ее объем.
func (r *BudgetRepository) AddExpense(ctx context.Context, userID, categoryID uuid.UUID, input ExpenseInput) (models.Expense, error) {
	var expense models.Expense

	if strings.TrimSpace(input.Description) == "" || input.AmountCents <= 0 {
		return expense, ErrInvalid
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return expense, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var categoryAmount int64
	err = tx.QueryRow(ctx,
		`SELECT amount_cents FROM budget_categories WHERE id = $2 AND user_id = $1`,
		userID, categoryID,
	).Scan(&categoryAmount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return expense, ErrNotFound
		}
		return expense, err
	}

	var spent int64
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0)
		 FROM expenses
		 WHERE user_id = $1 AND category_id = $2`,
		userID, categoryID,
	).Scan(&spent)
	if err != nil {
		return expense, err
	}

	if spent+input.AmountCents > categoryAmount {
		return expense, ErrBudgetExceeded
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO expenses (id, user_id, category_id, description, amount_cents, date, paid, vendor, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, category_id, description, amount_cents, date, paid, vendor, notes, created_at`,
		uuid.New(), userID, categoryID, input.Description, input.AmountCents, input.Date, input.Paid, input.Vendor, input.Notes,
	).Scan(&expense.ID, &expense.CategoryID, &expense.Description, &expense.AmountCents, &expense.Date, &expense.Paid, &expense.Vendor, &expense.Notes, &expense.CreatedAt)
	if err != nil {
		return expense, err
	}

	return expense, tx.Commit(ctx)
}

// UpdateExpense меняет трату; лимит статьи проверяется без учета самой траты.
func (r *BudgetRepository) UpdateExpense(ctx context.Context, userID, expenseID uuid.UUID, input ExpenseInput) (models.Expense, error) {
	var expense models.Expense

	if strings.TrimSpace(input.Description) == "" || input.AmountCents <= 0 {
		return expense, ErrInvalid
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return expense, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var categoryID uuid.UUID
	err = tx.QueryRow(ctx,
		`SELECT category_id FROM expenses WHERE id = $2 AND user_id = $1`,
		userID, expenseID,
	).Scan(&categoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return expense, ErrNotFound
		}
		return expense, err
	}

	var categoryAmount int64
	err = tx.QueryRow(ctx,
		`SELECT amount_cents FROM budget_categories WHERE id = $2 AND user_id = $1`,
		userID, categoryID,
	).Scan(&categoryAmount)
	if err != nil {
		return expense, err
	}

	var otherSpent int64
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0)
		 FROM expenses
		 WHERE user_id = $1 AND category_id = $2 AND id <> $3`,
		userID, categoryID, expenseID,
	).Scan(&otherSpent)
	if err != nil {
		return expense, err
	}

	if otherSpent+input.AmountCents > categoryAmount {
		return expense, ErrBudgetExceeded
	}

	err = tx.QueryRow(ctx,
		`UPDATE expenses
		 SET description = $3, amount_cents = $4, date = $5, paid = $6, vendor = $7, notes = $8
		 WHERE id = $2 AND user_id = $1
		 RETURNING id, category_id, description, amount_cents, date, paid, vendor, notes, created_at`,
		userID, expenseID, input.Description, input.AmountCents, input.Date, input.Paid, input.Vendor, input.Notes,
	).Scan(&expense.ID, &expense.CategoryID, &expense.Description, &expense.AmountCents, &expense.Date, &expense.Paid, &expense.Vendor, &expense.Notes, &expense.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return expense, ErrNotFound
		}
		return expense, err
	}

	return expense, tx.Commit(ctx)
}

// DeleteExpense удаляет трату.
func (r *BudgetRepository) DeleteExpense(ctx context.Context, userID, expenseID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM expenses
		 WHERE id = $2 AND user_id = $1`,
		userID, expenseID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// recalcBudget пересчитывает spent/remaining по полному набору статей.
// Итоги никогда не поддерживаются инкрементально, поэтому разъехаться
// с категориями они не могут, как бы ни прервалась предыдущая запись.
func recalcBudget(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error {
	var totalCents int64

	err := tx.QueryRow(ctx,
		`SELECT total_cents FROM budgets WHERE user_id = $1`,
		userID,
	).Scan(&totalCents)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	rows, err := tx.Query(ctx,
		`SELECT amount_cents FROM budget_categories WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	var amounts []int64
	for rows.Next() {
		var amount int64
		if err := rows.Scan(&amount); err != nil {
			return err
		}
		amounts = append(amounts, amount)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	spent, remaining := budgetTotals(totalCents, amounts)

	_, err = tx.Exec(ctx,
		`UPDATE budgets
		 SET spent_cents = $2, remaining_cents = $3, updated_at = NOW()
		 WHERE user_id = $1`,
		userID, spent, remaining,
	)
	return err
}

// budgetTotals считает итоги: потрачено = сумма статей, остаток не
// уходит ниже нуля.
func budgetTotals(totalCents int64, amounts []int64) (int64, int64) {
	var spent int64
	for _, amount := range amounts {
		spent += amount
	}

	return spent, remainingCents(totalCents, spent)
}

func remainingCents(totalCents, spentCents int64) int64 {
	remaining := totalCents - spentCents
	if remaining < 0 {
		return 0
	}
	return remaining
}
