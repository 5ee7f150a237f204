package places

import (
	"net/url"
	"strconv"
	"strings"

	"example.com/zaffaf/backend/internal/models"
)

const (
	// PlaceholderImage подставляется, когда у места нет фотографий.
	PlaceholderImage = "/images/venue-placeholder.jpg"

	// Google Places не отдает структурированных цен.
	listPrice   = "Sur demande"
	detailPrice = "Prix sur demande"

	listPhotoMaxWidth   = 800
	detailPhotoMaxWidth = 800
	maxDetailPhotos     = 4
)

// Категории, релевантные свадебным залам. Запись без пересечения с этим
// списком отбрасывается.
var venueTypes = map[string]struct{}{
	"banquet_hall":       {},
	"event_venue":        {},
	"wedding_hall":       {},
	"restaurant":         {},
	"lodging":            {},
	"hotel":              {},
	"tourist_attraction": {},
	"park":               {},
}

// Mapper превращает сырые записи Places в карточки приложения.
type Mapper struct {
	BaseURL   string
	APIKey    string
	MinRating float64
}

// Keep решает, проходит ли запись фильтры релевантности и качества.
// Отсутствующий рейтинг (0) фильтр качества пропускает.
func (m Mapper) Keep(place Place) bool {
	if !hasVenueType(place.Types) {
		return false
	}

	return place.Rating == 0 || place.Rating >= m.MinRating
}

// ToVenue собирает списочную карточку; city — город, под которым место найдено.
func (m Mapper) ToVenue(place Place, city string) models.Venue {
	image := PlaceholderImage
	if len(place.Photos) > 0 {
		if u := m.PhotoURL(place.Photos[0].PhotoReference, listPhotoMaxWidth); u != "" {
			image = u
		}
	}

	return models.Venue{
		ID:      place.PlaceID,
		Name:    place.Name,
		Address: place.FormattedAddress,
		Rating:  place.Rating,
		Price:   listPrice,
		Image:   image,
		City:    city,
		Types:   place.Types,
	}
}

// ToDetail собирает расширенную карточку из ответа details-эндпоинта.
// Город берется по координатам, затем из адреса — у детального запроса
// нет города поиска.
func (m Mapper) ToDetail(place Place) models.VenueDetail {
	city := ""
	if place.Geometry != nil {
		city = NearestCity(place.Geometry.Location.Lat, place.Geometry.Location.Lng)
	}
	if city == "" {
		city = CityFromAddress(place.FormattedAddress)
	}

	detail := models.VenueDetail{
		Venue: models.Venue{
			ID:      place.PlaceID,
			Name:    place.Name,
			Address: place.FormattedAddress,
			Rating:  place.Rating,
			Price:   detailPrice,
			Image:   PlaceholderImage,
			City:    city,
			Types:   place.Types,
		},
		PhoneNumber:      firstNonEmpty(place.FormattedPhoneNumber, place.InternationalPhoneNumber),
		Website:          place.Website,
		UserRatingsTotal: place.UserRatingsTotal,
	}

	for i, photo := range place.Photos {
		if i >= maxDetailPhotos {
			break
		}

		u := m.PhotoURL(photo.PhotoReference, detailPhotoMaxWidth)
		if u == "" {
			continue
		}

		detail.Photos = append(detail.Photos, models.VenuePhoto{
			Reference: photo.PhotoReference,
			URL:       u,
			Width:     photo.Width,
			Height:    photo.Height,
		})
	}

	if len(detail.Photos) > 0 {
		detail.Image = detail.Photos[0].URL
	}

	if place.OpeningHours != nil {
		detail.OpeningHours = &models.OpeningHours{
			IsOpen:      place.OpeningHours.OpenNow,
			WeekdayText: place.OpeningHours.WeekdayText,
		}
	}

	for _, review := range place.Reviews {
		detail.Reviews = append(detail.Reviews, models.VenueReview{
			AuthorName:   review.AuthorName,
			Rating:       review.Rating,
			Text:         review.Text,
			Time:         review.Time,
			RelativeTime: RelativeTimeFR(review.Time),
			Language:     review.Language,
		})
	}

	if place.Geometry != nil {
		detail.Location = &models.GeoPoint{
			Lat: place.Geometry.Location.Lat,
			Lng: place.Geometry.Location.Lng,
		}
	}

	return detail
}

// PhotoURL строит ссылку на photo-эндпоинт или возвращает пустую строку,
// если ссылку собрать не из чего.
func (m Mapper) PhotoURL(reference string, maxWidth int) string {
	if strings.TrimSpace(reference) == "" || strings.TrimSpace(m.APIKey) == "" {
		return ""
	}

	params := url.Values{}
	params.Set("maxwidth", strconv.Itoa(maxWidth))
	params.Set("photo_reference", reference)
	params.Set("key", m.APIKey)

	return strings.TrimRight(m.BaseURL, "/") + "/photo?" + params.Encode()
}

func hasVenueType(types []string) bool {
	for _, t := range types {
		if _, ok := venueTypes[t]; ok {
			return true
		}
	}

	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
