package places

import (
	"strings"
	"testing"
)

func TestKeepFiltersByTypeAndRating(t *testing.T) {
	mapper := Mapper{MinRating: 3.5}

	cases := []struct {
		name  string
		place Place
		want  bool
	}{
		{"wedding hall above threshold", Place{Types: []string{"wedding_hall"}, Rating: 4.2}, true},
		{"wedding hall below threshold", Place{Types: []string{"wedding_hall"}, Rating: 2.1}, false},
		{"unrated venue passes", Place{Types: []string{"banquet_hall"}}, true},
		{"lawyer office is dropped", Place{Types: []string{"lawyer", "point_of_interest"}, Rating: 5.0}, false},
		{"restaurant passes", Place{Types: []string{"restaurant", "food"}, Rating: 3.5}, true},
		{"no types", Place{Rating: 4.8}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mapper.Keep(tc.place); got != tc.want {
				t.Fatalf("Keep(%+v) = %v, want %v", tc.place, got, tc.want)
			}
		})
	}
}

func TestToVenuePlaceholderWithoutPhotos(t *testing.T) {
	mapper := Mapper{BaseURL: "https://example.test/place", APIKey: "key"}

	venue := mapper.ToVenue(Place{PlaceID: "p1", Name: "Salle Atlas"}, "Alger")
	if venue.Image != PlaceholderImage {
		t.Fatalf("image = %q, want placeholder", venue.Image)
	}
	if venue.City != "Alger" {
		t.Fatalf("city = %q, want Alger", venue.City)
	}
	if venue.Price != "Sur demande" {
		t.Fatalf("price = %q", venue.Price)
	}
}

func TestToVenuePhotoURL(t *testing.T) {
	mapper := Mapper{BaseURL: "https://example.test/place", APIKey: "secret"}

	venue := mapper.ToVenue(Place{
		PlaceID: "p1",
		Photos:  []Photo{{PhotoReference: "ref-1", Width: 1200, Height: 800}},
	}, "Oran")

	if !strings.HasPrefix(venue.Image, "https://example.test/place/photo?") {
		t.Fatalf("image = %q", venue.Image)
	}
	for _, part := range []string{"maxwidth=800", "photo_reference=ref-1", "key=secret"} {
		if !strings.Contains(venue.Image, part) {
			t.Fatalf("image %q missing %q", venue.Image, part)
		}
	}
}

func TestPhotoURLMissingPieces(t *testing.T) {
	if got := (Mapper{BaseURL: "https://example.test", APIKey: "k"}).PhotoURL("", 800); got != "" {
		t.Fatalf("empty reference: got %q", got)
	}
	if got := (Mapper{BaseURL: "https://example.test"}).PhotoURL("ref", 800); got != "" {
		t.Fatalf("empty key: got %q", got)
	}
}

func TestToDetailCapsPhotosAndFillsReviews(t *testing.T) {
	mapper := Mapper{BaseURL: "https://example.test/place", APIKey: "key"}

	place := Place{
		PlaceID:              "p1",
		Name:                 "Salle Atlas",
		FormattedAddress:     "12 Rue Didouche Mourad, Alger, Algérie",
		FormattedPhoneNumber: "021 63 12 34",
		Website:              "https://salle-atlas.example",
		Photos: []Photo{
			{PhotoReference: "a"}, {PhotoReference: "b"}, {PhotoReference: "c"},
			{PhotoReference: "d"}, {PhotoReference: "e"},
		},
		Reviews: []Review{{AuthorName: "Amine", Rating: 5, Text: "Parfait", Time: 1700000000}},
	}

	detail := mapper.ToDetail(place)

	if len(detail.Photos) != 4 {
		t.Fatalf("photos = %d, want 4", len(detail.Photos))
	}
	if detail.Image != detail.Photos[0].URL {
		t.Fatalf("image %q should match first photo %q", detail.Image, detail.Photos[0].URL)
	}
	if detail.City != "Alger" {
		t.Fatalf("city = %q, want Alger", detail.City)
	}
	if detail.PhoneNumber != "021 63 12 34" {
		t.Fatalf("phone = %q", detail.PhoneNumber)
	}
	if len(detail.Reviews) != 1 || detail.Reviews[0].RelativeTime == "" {
		t.Fatalf("reviews = %+v", detail.Reviews)
	}
	if detail.Price != "Prix sur demande" {
		t.Fatalf("price = %q", detail.Price)
	}
}

func TestToDetailCityFromCoordinates(t *testing.T) {
	mapper := Mapper{}

	detail := mapper.ToDetail(Place{
		PlaceID:          "p1",
		FormattedAddress: "Quelque part",
		Geometry:         &Geometry{Location: Location{Lat: 35.6976, Lng: -0.6337}},
	})

	if detail.City != "Oran" {
		t.Fatalf("city = %q, want Oran", detail.City)
	}
}
