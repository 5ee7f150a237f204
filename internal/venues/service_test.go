package venues

import (
	"context"
	"errors"
	"testing"

	"example.com/zaffaf/backend/internal/models"
	"example.com/zaffaf/backend/internal/places"
	"example.com/zaffaf/backend/internal/repository"
)

type fakeSearcher struct {
	calls  int
	venues []models.Venue
}

func (f *fakeSearcher) Search(ctx context.Context) ([]models.Venue, error) {
	f.calls++
	return f.venues, nil
}

type memorySearchCache struct {
	venues []models.Venue
	set    int
}

func (c *memorySearchCache) Get(ctx context.Context) ([]models.Venue, error) {
	if c.venues == nil {
		return nil, repository.ErrNotFound
	}
	return c.venues, nil
}

func (c *memorySearchCache) Set(ctx context.Context, venues []models.Venue) error {
	c.venues = venues
	c.set++
	return nil
}

type memoryDetailStore struct {
	details map[string]models.VenueDetail
}

func (s *memoryDetailStore) Get(ctx context.Context, venueID string) (models.VenueDetail, error) {
	detail, ok := s.details[venueID]
	if !ok {
		return models.VenueDetail{}, repository.ErrNotFound
	}
	return detail, nil
}

func (s *memoryDetailStore) Set(ctx context.Context, detail models.VenueDetail) error {
	if s.details == nil {
		s.details = make(map[string]models.VenueDetail)
	}
	s.details[detail.ID] = detail
	return nil
}

type fakeFetcher struct {
	calls int
	place places.Place
}

func (f *fakeFetcher) Details(ctx context.Context, placeID string) (places.DetailsResponse, error) {
	f.calls++
	return places.DetailsResponse{Result: f.place, Status: places.StatusOK}, nil
}

func testMapper() places.Mapper {
	return places.Mapper{BaseURL: "https://example.test/place", APIKey: "key", MinRating: 3.5}
}

func TestListUsesCacheAfterFirstSearch(t *testing.T) {
	searcher := &fakeSearcher{venues: []models.Venue{{ID: "v1", Name: "Salle Atlas"}}}
	cache := &memorySearchCache{}

	svc := NewService(searcher, cache, &memoryDetailStore{}, &fakeFetcher{}, testMapper(), true, nil)

	for i := 0; i < 3; i++ {
		venues, err := svc.List(context.Background())
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(venues) != 1 || venues[0].ID != "v1" {
			t.Fatalf("unexpected venues: %+v", venues)
		}
	}

	if searcher.calls != 1 {
		t.Fatalf("searcher called %d times, want 1", searcher.calls)
	}
	if cache.set != 1 {
		t.Fatalf("cache written %d times, want 1", cache.set)
	}
}

func TestListFetchDisabledReturnsEmpty(t *testing.T) {
	searcher := &fakeSearcher{venues: []models.Venue{{ID: "v1"}}}

	svc := NewService(searcher, &memorySearchCache{}, &memoryDetailStore{}, &fakeFetcher{}, testMapper(), false, nil)

	venues, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(venues) != 0 {
		t.Fatalf("expected empty list, got %+v", venues)
	}
	if searcher.calls != 0 {
		t.Fatalf("searcher called %d times, want 0", searcher.calls)
	}
}

func TestGetByIDFetchesOnceThenServesStore(t *testing.T) {
	fetcher := &fakeFetcher{place: places.Place{
		PlaceID:          "v1",
		Name:             "Salle Atlas",
		FormattedAddress: "12 Rue Didouche Mourad, Alger",
		Rating:           4.4,
	}}
	store := &memoryDetailStore{}

	svc := NewService(&fakeSearcher{}, &memorySearchCache{}, store, fetcher, testMapper(), true, nil)

	for i := 0; i < 2; i++ {
		detail, err := svc.GetByID(context.Background(), "v1")
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if detail.ID != "v1" || detail.Name != "Salle Atlas" {
			t.Fatalf("unexpected detail: %+v", detail)
		}
	}

	if fetcher.calls != 1 {
		t.Fatalf("fetcher called %d times, want 1", fetcher.calls)
	}
}

func TestGetByIDFetchDisabledMissIsDistinct(t *testing.T) {
	fetcher := &fakeFetcher{place: places.Place{PlaceID: "v1"}}

	svc := NewService(&fakeSearcher{}, &memorySearchCache{}, &memoryDetailStore{}, fetcher, testMapper(), false, nil)

	_, err := svc.GetByID(context.Background(), "v1")
	if !errors.Is(err, ErrFetchDisabled) {
		t.Fatalf("expected ErrFetchDisabled, got %v", err)
	}
	if fetcher.calls != 0 {
		t.Fatalf("fetcher called %d times, want 0", fetcher.calls)
	}
}

type failingFetcher struct {
	calls int
	err   error
}

func (f *failingFetcher) Details(ctx context.Context, placeID string) (places.DetailsResponse, error) {
	f.calls++
	return places.DetailsResponse{}, f.err
}

func TestGetByIDUpstreamFailureIsNotFound(t *testing.T) {
	fetcher := &failingFetcher{err: errors.New("places api status NOT_FOUND: place id is invalid")}

	svc := NewService(&fakeSearcher{}, &memorySearchCache{}, &memoryDetailStore{}, fetcher, testMapper(), true, nil)

	_, err := svc.GetByID(context.Background(), "bogus")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if fetcher.calls != 1 {
		t.Fatalf("fetcher called %d times, want 1", fetcher.calls)
	}
}
