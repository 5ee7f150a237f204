package places

import "testing"

func TestNearestCity(t *testing.T) {
	cases := []struct {
		name string
		lat  float64
		lng  float64
		want string
	}{
		{"central Algiers", 36.7538, 3.0588, "Alger"},
		{"Oran suburb", 35.65, -0.60, "Oran"},
		{"middle of the Sahara", 27.0, 2.0, ""},
		{"Mediterranean offshore", 37.9, 4.0, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NearestCity(tc.lat, tc.lng); got != tc.want {
				t.Fatalf("NearestCity(%v, %v) = %q, want %q", tc.lat, tc.lng, got, tc.want)
			}
		})
	}
}

func TestCityFromAddress(t *testing.T) {
	cases := []struct {
		name    string
		address string
		want    string
	}{
		{"trailing country", "12 Rue Didouche Mourad, Alger, Algérie", "Alger"},
		{"trailing country english", "Boulevard de l'ALN, Oran, Algeria", "Oran"},
		{"postal code before country", "Cité Zouaghi, Constantine 25000, Algeria", "Constantine"},
		{"no comma", "Alger", ""},
		{"city with postal code segment", "Rue des Frères, Setif 19000, Algérie", "Setif"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CityFromAddress(tc.address); got != tc.want {
				t.Fatalf("CityFromAddress(%q) = %q, want %q", tc.address, got, tc.want)
			}
		})
	}
}
