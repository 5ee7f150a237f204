package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/zaffaf/backend/internal/models"
)

// VenueCacheRepository хранит карточки заведений в Postgres в формате jsonb.
// Кеш без срока: карточка живет, пока ее не перезапишут свежей выборкой.
type VenueCacheRepository struct {
	db *pgxpool.Pool
}

// NewVenueCacheRepository создает кеш карточек заведений.
func NewVenueCacheRepository(db *pgxpool.Pool) *VenueCacheRepository {
	return &VenueCacheRepository{db: db}
}

// Get возвращает сохраненную карточку по идентификатору места.
func (r *VenueCacheRepository) Get(ctx context.Context, venueID string) (models.VenueDetail, error) {
	var detail models.VenueDetail
	var payload []byte

	err := r.db.QueryRow(ctx,
		`SELECT payload
		 FROM venue_details
		 WHERE venue_id = $1`,
		venueID,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return detail, ErrNotFound
		}
		return detail, err
	}

	if err := json.Unmarshal(payload, &detail); err != nil {
		return detail, err
	}

	return detail, nil
}

// Set сохраняет карточку, перезаписывая предыдущую версию.
func (r *VenueCacheRepository) Set(ctx context.Context, detail models.VenueDetail) error {
	payload, err := json.Marshal(detail)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO venue_details (venue_id, payload)
		 VALUES ($1, $2)
		 ON CONFLICT (venue_id) DO UPDATE
		 SET payload = EXCLUDED.payload, updated_at = NOW()`,
		detail.ID, payload,
	)
	return err
}
