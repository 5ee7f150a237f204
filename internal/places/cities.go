package places

import (
	"math"
	"regexp"
	"strings"
)

// Города-якоря поиска. Список фиксированный, динамического обнаружения нет.
var Cities = []string{
	"Bordj Bouarreridj",
	"Alger",
	"Oran",
	"Setif",
	"Tlemcen",
	"Annaba",
	"Batna",
	"Constantine",
}

// Варианты поискового запроса: один запрос по одному термину находит
// далеко не все залы, поэтому матрица город × термин.
var SearchTerms = []string{
	"salle des fêtes mariage",
	"salle de mariage",
	"salle de réception",
	"wedding venue",
}

type cityCoordinate struct {
	Name     string
	Lat      float64
	Lng      float64
	RadiusKM float64
}

var cityCoordinates = []cityCoordinate{
	{"Alger", 36.7538, 3.0588, 30},
	{"Oran", 35.6969, -0.6331, 25},
	{"Setif", 36.1898, 5.4108, 20},
	{"Tlemcen", 34.8784, -1.3143, 20},
	{"Annaba", 36.9009, 7.7659, 20},
	{"Batna", 35.5569, 6.1742, 20},
	{"Constantine", 36.3650, 6.6147, 20},
	{"Blida", 36.4722, 2.8278, 20},
	{"Bejaia", 36.7513, 5.0567, 20},
	{"Tizi Ouzou", 36.7169, 4.0476, 20},
	{"Ain Defla", 36.2614, 1.9214, 20},
	{"Bordj Bouarreridj", 36.0730, 4.7631, 20},
}

const earthRadiusKM = 6371

func haversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKM * c
}

// NearestCity возвращает ближайший известный город в пределах его радиуса
// или пустую строку, если координаты ни к одному городу не привязываются.
func NearestCity(lat, lng float64) string {
	closest := ""
	closestDistance := math.MaxFloat64

	for _, city := range cityCoordinates {
		distance := haversineKM(lat, lng, city.Lat, city.Lng)
		if distance <= city.RadiusKM && distance < closestDistance {
			closest = city.Name
			closestDistance = distance
		}
	}

	return closest
}

var postalCodeRe = regexp.MustCompile(`\d{4,5}`)

// CityFromAddress грубо выдергивает город из хвоста адресной строки.
// Резервный путь: используется только когда нет ни города поиска, ни координат.
func CityFromAddress(address string) string {
	parts := strings.Split(address, ",")
	if len(parts) < 2 {
		return ""
	}

	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	candidate := parts[len(parts)-1]
	if strings.Contains(candidate, "Algeria") || strings.Contains(candidate, "Algérie") || postalCodeRe.MatchString(candidate) {
		candidate = parts[len(parts)-2]
	}

	candidate = strings.TrimSpace(postalCodeRe.ReplaceAllString(candidate, ""))
	return candidate
}
