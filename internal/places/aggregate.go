package places

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"example.com/zaffaf/backend/internal/models"
)

// AggregatorOptions ограничивают стоимость одного прогона агрегации.
type AggregatorOptions struct {
	Cities          []string
	Terms           []string
	MaxCities       int
	MaxTermsPerCity int
	MaxPages        int
	PageDelay       time.Duration
	MaxResults      int
}

// Aggregator обходит матрицу город × термин, фильтрует и дедуплицирует выдачу.
type Aggregator struct {
	client Client
	mapper Mapper
	logger *slog.Logger
	opts   AggregatorOptions
}

// NewAggregator создает агрегатор поисковой выдачи.
func NewAggregator(client Client, mapper Mapper, logger *slog.Logger, opts AggregatorOptions) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	if len(opts.Cities) == 0 {
		opts.Cities = Cities
	}
	if len(opts.Terms) == 0 {
		opts.Terms = SearchTerms
	}

	return &Aggregator{client: client, mapper: mapper, logger: logger, opts: opts}
}

// Search выполняет полный прогон агрегации и возвращает итоговый список залов.
// Сбой одной пары (город, термин) логируется и дает ноль результатов —
// частичная выдача всегда предпочтительнее пустой. Жесткая остановка только
// при отсутствии ключа API.
func (a *Aggregator) Search(ctx context.Context) ([]models.Venue, error) {
	var mu sync.Mutex
	raw := make([]RawResult, 0, 64)

	outer, ctx := errgroup.WithContext(ctx)
	outer.SetLimit(a.opts.MaxCities)

	for _, city := range a.opts.Cities {
		city := city
		outer.Go(func() error {
			inner, innerCtx := errgroup.WithContext(ctx)
			inner.SetLimit(a.opts.MaxTermsPerCity)

			for _, term := range a.opts.Terms {
				term := term
				inner.Go(func() error {
					results, err := a.fetchPair(innerCtx, city, term)
					if err != nil {
						if errors.Is(err, ErrMissingAPIKey) {
							return err
						}
						a.logger.Warn("venue search failed",
							slog.String("city", city),
							slog.String("term", term),
							slog.String("error", err.Error()))
					}

					if len(results) > 0 {
						mu.Lock()
						raw = append(raw, results...)
						mu.Unlock()
					}

					return nil
				})
			}

			return inner.Wait()
		})
	}

	if err := outer.Wait(); err != nil {
		return nil, err
	}

	venues := make([]models.Venue, 0, len(raw))
	for _, result := range raw {
		if !a.mapper.Keep(result.Place) {
			continue
		}
		venues = append(venues, a.mapper.ToVenue(result.Place, result.City))
	}

	venues = Dedupe(venues)
	if len(venues) > a.opts.MaxResults && a.opts.MaxResults > 0 {
		venues = venues[:a.opts.MaxResults]
	}

	a.logger.Info("venue aggregation completed",
		slog.Int("raw_results", len(raw)),
		slog.Int("venues", len(venues)))

	return venues, nil
}

// fetchPair выгружает страницы выдачи для одной пары (город, термин).
// Токен следующей страницы действителен только после паузы (контракт upstream).
func (a *Aggregator) fetchPair(ctx context.Context, city, term string) ([]RawResult, error) {
	query := fmt.Sprintf("%s %s Algeria", term, city)

	var results []RawResult
	token := ""

	for page := 0; page < a.opts.MaxPages; page++ {
		if page > 0 {
			select {
			case <-ctx.Done():
				return results, ctx.Err()
			case <-time.After(a.opts.PageDelay):
			}
		}

		response, err := a.client.TextSearch(ctx, query, token)
		if err != nil {
			return results, err
		}

		for _, place := range response.Results {
			results = append(results, RawResult{Place: place, City: city})
		}

		if response.NextPageToken == "" {
			break
		}
		token = response.NextPageToken
	}

	return results, nil
}

// Dedupe схлопывает список по идентификатору места: позиция — первой записи,
// содержимое — последней (insert/overwrite, без пофилдового слияния).
func Dedupe(venues []models.Venue) []models.Venue {
	index := make(map[string]int, len(venues))
	out := make([]models.Venue, 0, len(venues))

	for _, venue := range venues {
		if at, ok := index[venue.ID]; ok {
			out[at] = venue
			continue
		}

		index[venue.ID] = len(out)
		out = append(out, venue)
	}

	return out
}
