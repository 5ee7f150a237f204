package places

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"example.com/zaffaf/backend/internal/models"
)

type scriptedClient struct {
	mu      sync.Mutex
	calls   []string
	respond func(query, pageToken string) (SearchResponse, error)
}

func (c *scriptedClient) TextSearch(ctx context.Context, query, pageToken string) (SearchResponse, error) {
	c.mu.Lock()
	c.calls = append(c.calls, query+"|"+pageToken)
	c.mu.Unlock()

	return c.respond(query, pageToken)
}

func (c *scriptedClient) Details(ctx context.Context, placeID string) (DetailsResponse, error) {
	return DetailsResponse{}, errors.New("not scripted")
}

func (c *scriptedClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

func testOptions(cities, terms []string) AggregatorOptions {
	return AggregatorOptions{
		Cities:          cities,
		Terms:           terms,
		MaxCities:       3,
		MaxTermsPerCity: 2,
		MaxPages:        2,
		PageDelay:       0,
		MaxResults:      48,
	}
}

func TestDedupeKeepsFirstPositionLastContent(t *testing.T) {
	venues := []models.Venue{
		{ID: "a", Name: "Salle A", Image: PlaceholderImage},
		{ID: "b", Name: "Salle B"},
		{ID: "a", Name: "Salle A", Image: "https://example.test/photo-a"},
		{ID: "c", Name: "Salle C"},
	}

	out := Dedupe(venues)

	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	if out[0].ID != "a" || out[1].ID != "b" || out[2].ID != "c" {
		t.Fatalf("order = %v", []string{out[0].ID, out[1].ID, out[2].ID})
	}
	if out[0].Image != "https://example.test/photo-a" {
		t.Fatalf("duplicate content not overwritten: %q", out[0].Image)
	}
}

func TestSearchStopsAtMaxPages(t *testing.T) {
	client := &scriptedClient{
		respond: func(query, pageToken string) (SearchResponse, error) {
			// Токен следующей страницы есть всегда: без лимита обход бы не кончился.
			return SearchResponse{
				Status:        StatusOK,
				NextPageToken: "more",
				Results: []Place{{
					PlaceID: query + "|" + pageToken,
					Name:    "Salle",
					Types:   []string{"wedding_hall"},
					Rating:  4.5,
				}},
			}, nil
		},
	}

	agg := NewAggregator(client, Mapper{MinRating: 3.5}, nil, testOptions([]string{"Alger"}, []string{"salle de mariage"}))

	venues, err := agg.Search(context.Background())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if client.callCount() != 2 {
		t.Fatalf("TextSearch called %d times, want 2", client.callCount())
	}
	if len(venues) != 2 {
		t.Fatalf("venues = %d, want 2", len(venues))
	}
}

func TestSearchFiltersAndDeduplicates(t *testing.T) {
	client := &scriptedClient{
		respond: func(query, pageToken string) (SearchResponse, error) {
			// Запрос кончается на " Algeria", так что ветвим по токену
			// города с пробелами, иначе "Alger" совпадет и с хвостом.
			if strings.Contains(query, " Oran ") {
				return SearchResponse{Status: StatusOK, Results: []Place{
					{
						PlaceID: "shared",
						Name:    "Salle Atlas",
						Types:   []string{"wedding_hall"},
						Rating:  4.4,
						Photos:  []Photo{{PhotoReference: "ref-1"}},
					},
				}}, nil
			}
			return SearchResponse{Status: StatusOK, Results: []Place{
				{PlaceID: "shared", Name: "Salle Atlas", Types: []string{"wedding_hall"}, Rating: 4.4},
				{PlaceID: "low", Name: "Salle Basse", Types: []string{"wedding_hall"}, Rating: 2.0},
				{PlaceID: "lawyer", Name: "Cabinet", Types: []string{"lawyer"}, Rating: 5.0},
			}}, nil
		},
	}

	opts := testOptions([]string{"Alger", "Oran"}, []string{"salle de mariage"})
	opts.MaxCities = 1 // последовательный обход ради детерминизма

	mapper := Mapper{BaseURL: "https://example.test/place", APIKey: "key", MinRating: 3.5}
	agg := NewAggregator(client, mapper, nil, opts)

	venues, err := agg.Search(context.Background())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(venues) != 1 {
		t.Fatalf("venues = %+v, want single shared venue", venues)
	}
	if venues[0].ID != "shared" {
		t.Fatalf("id = %q", venues[0].ID)
	}
	// Вторая встреча перезаписала содержимое: появилось фото вместо заглушки.
	if venues[0].Image == PlaceholderImage {
		t.Fatalf("image not overwritten by later sighting")
	}
	if venues[0].City != "Oran" {
		t.Fatalf("city = %q, want Oran", venues[0].City)
	}
}

func TestSearchMissingAPIKeyStopsRun(t *testing.T) {
	client := &scriptedClient{
		respond: func(query, pageToken string) (SearchResponse, error) {
			return SearchResponse{}, ErrMissingAPIKey
		},
	}

	agg := NewAggregator(client, Mapper{MinRating: 3.5}, nil, testOptions([]string{"Alger"}, []string{"salle de mariage"}))

	_, err := agg.Search(context.Background())
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("err = %v, want ErrMissingAPIKey", err)
	}
}

func TestSearchPartialFailureYieldsPartialResults(t *testing.T) {
	client := &scriptedClient{
		respond: func(query, pageToken string) (SearchResponse, error) {
			if strings.Contains(query, "Oran") {
				return SearchResponse{}, errors.New("quota exceeded")
			}
			return SearchResponse{Status: StatusOK, Results: []Place{
				{PlaceID: "ok", Name: "Salle Atlas", Types: []string{"banquet_hall"}, Rating: 4.0},
			}}, nil
		},
	}

	agg := NewAggregator(client, Mapper{MinRating: 3.5}, nil, testOptions([]string{"Alger", "Oran"}, []string{"salle de mariage"}))

	venues, err := agg.Search(context.Background())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(venues) != 1 || venues[0].ID != "ok" {
		t.Fatalf("venues = %+v", venues)
	}
}

func TestSearchCapsResults(t *testing.T) {
	client := &scriptedClient{
		respond: func(query, pageToken string) (SearchResponse, error) {
			results := make([]Place, 0, 10)
			for i := 0; i < 10; i++ {
				results = append(results, Place{
					PlaceID: query + "|" + string(rune('a'+i)),
					Name:    "Salle",
					Types:   []string{"wedding_hall"},
					Rating:  4.0,
				})
			}
			return SearchResponse{Status: StatusOK, Results: results}, nil
		},
	}

	opts := testOptions([]string{"Alger"}, []string{"t1", "t2"})
	opts.MaxResults = 12

	agg := NewAggregator(client, Mapper{MinRating: 3.5}, nil, opts)

	venues, err := agg.Search(context.Background())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(venues) != 12 {
		t.Fatalf("venues = %d, want cap 12", len(venues))
	}
}
