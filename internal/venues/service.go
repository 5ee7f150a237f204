package venues

import (
	"context"
	"errors"
	"log/slog"

	"example.com/zaffaf/backend/internal/models"
	"example.com/zaffaf/backend/internal/places"
	"example.com/zaffaf/backend/internal/repository"
)

// ErrFetchDisabled возвращается при промахе хранилища, когда походы
// во внешний API выключены: зал не «не существует», он недоступен.
var ErrFetchDisabled = errors.New("venue fetch is disabled")

// Searcher выполняет прогон агрегации по внешнему API.
type Searcher interface {
	Search(ctx context.Context) ([]models.Venue, error)
}

// SearchCache хранит агрегированный список между прогонами.
type SearchCache interface {
	Get(ctx context.Context) ([]models.Venue, error)
	Set(ctx context.Context, venues []models.Venue) error
}

// DetailStore хранит карточки заведений.
type DetailStore interface {
	Get(ctx context.Context, venueID string) (models.VenueDetail, error)
	Set(ctx context.Context, detail models.VenueDetail) error
}

// DetailFetcher запрашивает карточку у внешнего API.
type DetailFetcher interface {
	Details(ctx context.Context, placeID string) (places.DetailsResponse, error)
}

// Service отдает списки и карточки заведений, пряча за собой кеши
// и внешний API.
type Service struct {
	searcher    Searcher
	searchCache SearchCache
	details     DetailStore
	fetcher     DetailFetcher
	mapper      places.Mapper
	enableFetch bool
	logger      *slog.Logger
}

// NewService создает сервис заведений.
func NewService(searcher Searcher, searchCache SearchCache, details DetailStore, fetcher DetailFetcher, mapper places.Mapper, enableFetch bool, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		searcher:    searcher,
		searchCache: searchCache,
		details:     details,
		fetcher:     fetcher,
		mapper:      mapper,
		enableFetch: enableFetch,
		logger:      logger,
	}
}

// List возвращает агрегированный список заведений. Свежий кеш обслуживается
// без похода во внешний API; промах запускает полный прогон агрегации.
func (s *Service) List(ctx context.Context) ([]models.Venue, error) {
	cached, err := s.searchCache.Get(ctx)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		// Недоступный кеш не повод отказывать: идем во внешний API.
		s.logger.Warn("venue search cache read failed", slog.String("error", err.Error()))
	}

	if !s.enableFetch {
		return []models.Venue{}, nil
	}

	venues, err := s.searcher.Search(ctx)
	if err != nil {
		if errors.Is(err, places.ErrMissingAPIKey) {
			return []models.Venue{}, nil
		}
		return nil, err
	}

	if err := s.searchCache.Set(ctx, venues); err != nil {
		s.logger.Warn("venue search cache write failed", slog.String("error", err.Error()))
	}

	return venues, nil
}

// GetByID возвращает карточку заведения. Сначала локальное хранилище,
// при промахе — внешний API с записью результата обратно.
func (s *Service) GetByID(ctx context.Context, venueID string) (models.VenueDetail, error) {
	detail, err := s.details.Get(ctx, venueID)
	if err == nil {
		return detail, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return detail, err
	}

	if !s.enableFetch {
		return detail, ErrFetchDisabled
	}

	// Любой сбой внешнего API на этом пути означает «карточки нет»,
	// а не серверную ошибку. Причину оставляем в логе.
	resp, err := s.fetcher.Details(ctx, venueID)
	if err != nil {
		if !errors.Is(err, places.ErrMissingAPIKey) {
			s.logger.Warn("venue detail fetch failed",
				slog.String("venue_id", venueID),
				slog.String("error", err.Error()))
		}
		return detail, repository.ErrNotFound
	}

	detail = s.mapper.ToDetail(resp.Result)

	if err := s.details.Set(ctx, detail); err != nil {
		s.logger.Warn("venue detail cache write failed",
			slog.String("venue_id", venueID),
			slog.String("error", err.Error()))
	}

	return detail, nil
}
