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

type ChecklistRepository struct {
	db *pgxpool.Pool
}

// NewChecklistRepository создает репозиторий свадебного чеклиста.
func NewChecklistRepository(db *pgxpool.Pool) *ChecklistRepository {
	return &ChecklistRepository{db: db}
}

type ChecklistItemInput struct {
	Title       string
	Description string
	Status      models.ChecklistStatus
	Priority    models.ChecklistPriority
	DueDate     *time.Time
}

// List возвращает задачи пользователя, новые первыми.
func (r *ChecklistRepository) List(ctx context.Context, userID uuid.UUID) ([]models.ChecklistItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, title, description, status, priority, due_date, created_at
		 FROM checklist_items
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.ChecklistItem, 0)
	for rows.Next() {
		var item models.ChecklistItem

		err := rows.Scan(&item.ID, &item.UserID, &item.Title, &item.Description, &item.Status, &item.Priority, &item.DueDate, &item.CreatedAt)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// Add создает задачу.
func (r *ChecklistRepository) Add(ctx context.Context, userID uuid.UUID, input ChecklistItemInput) (models.ChecklistItem, error) {
	var item models.ChecklistItem

	if err := validateChecklistInput(input); err != nil {
		return item, err
	}

	err := r.db.QueryRow(ctx,
		`INSERT INTO checklist_items (id, user_id, title, description, status, priority, due_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, user_id, title, description, status, priority, due_date, created_at`,
		uuid.New(), userID, input.Title, input.Description, input.Status, input.Priority, input.DueDate,
	).Scan(&item.ID, &item.UserID, &item.Title, &item.Description, &item.Status, &item.Priority, &item.DueDate, &item.CreatedAt)
	if err != nil {
		return item, err
	}

	return item, nil
}

// Update меняет задачу целиком.
func (r *ChecklistRepository) Update(ctx context.Context, userID, itemID uuid.UUID, input ChecklistItemInput) (models.ChecklistItem, error) {
	var item models.ChecklistItem

	if err := validateChecklistInput(input); err != nil {
		return item, err
	}

	err := r.db.QueryRow(ctx,
		`UPDATE checklist_items
		 SET title = $3, description = $4, status = $5, priority = $6, due_date = $7
		 WHERE id = $2 AND user_id = $1
		 RETURNING id, user_id, title, description, status, priority, due_date, created_at`,
		userID, itemID, input.Title, input.Description, input.Status, input.Priority, input.DueDate,
	).Scan(&item.ID, &item.UserID, &item.Title, &item.Description, &item.Status, &item.Priority, &item.DueDate, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return item, ErrNotFound
		}
		return item, err
	}

	return item, nil
}

// SetStatus меняет только статус задачи.
func (r *ChecklistRepository) SetStatus(ctx context.Context, userID, itemID uuid.UUID, status models.ChecklistStatus) (models.ChecklistItem, error) {
	var item models.ChecklistItem

	if !status.Valid() {
		return item, ErrInvalid
	}

	err := r.db.QueryRow(ctx,
		`UPDATE checklist_items
		 SET status = $3
		 WHERE id = $2 AND user_id = $1
		 RETURNING id, user_id, title, description, status, priority, due_date, created_at`,
		userID, itemID, status,
	).Scan(&item.ID, &item.UserID, &item.Title, &item.Description, &item.Status, &item.Priority, &item.DueDate, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return item, ErrNotFound
		}
		return item, err
	}

	return item, nil
}

// Delete удаляет задачу.
func (r *ChecklistRepository) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM checklist_items
		 WHERE id = $2 AND user_id = $1`,
		userID, itemID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func validateChecklistInput(input ChecklistItemInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return ErrInvalid
	}
	if !input.Status.Valid() || !input.Priority.Valid() {
		return ErrInvalid
	}
	return nil
}
