package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/zaffaf/backend/internal/models"
)

// FavoriteRepository хранит избранные заведения. Вместе со ссылкой
// сохраняется снимок карточки, чтобы список работал и без внешнего API.
type FavoriteRepository struct {
	db *pgxpool.Pool
}

// NewFavoriteRepository создает репозиторий избранного.
func NewFavoriteRepository(db *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// List возвращает избранное пользователя, новые записи первыми.
func (r *FavoriteRepository) List(ctx context.Context, userID uuid.UUID) ([]models.FavoriteVenue, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id, venue_id, name, address, rating, price, image, city, created_at
		 FROM favorite_venues
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favorites := make([]models.FavoriteVenue, 0)
	for rows.Next() {
		var favorite models.FavoriteVenue

		err := rows.Scan(&favorite.UserID, &favorite.VenueID, &favorite.Name, &favorite.Address, &favorite.Rating, &favorite.Price, &favorite.Image, &favorite.City, &favorite.CreatedAt)
		if err != nil {
			return nil, err
		}

		favorites = append(favorites, favorite)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return favorites, nil
}

// Add сохраняет заведение в избранное. Повторное добавление — конфликт.
func (r *FavoriteRepository) Add(ctx context.Context, favorite models.FavoriteVenue) (models.FavoriteVenue, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO favorite_venues (user_id, venue_id, name, address, rating, price, image, city)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		favorite.UserID, favorite.VenueID, favorite.Name, favorite.Address, favorite.Rating, favorite.Price, favorite.Image, favorite.City,
	).Scan(&favorite.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return favorite, ErrConflict
		}
		return favorite, err
	}

	return favorite, nil
}

// Remove убирает заведение из избранного.
func (r *FavoriteRepository) Remove(ctx context.Context, userID uuid.UUID, venueID string) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM favorite_venues
		 WHERE user_id = $1 AND venue_id = $2`,
		userID, venueID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Exists сообщает, есть ли заведение в избранном пользователя.
func (r *FavoriteRepository) Exists(ctx context.Context, userID uuid.UUID, venueID string) (bool, error) {
	var one int

	err := r.db.QueryRow(ctx,
		`SELECT 1
		 FROM favorite_venues
		 WHERE user_id = $1 AND venue_id = $2`,
		userID, venueID,
	).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
