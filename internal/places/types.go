package places

// Типизированные ответы Google Places API. Все, что приходит снаружи,
// парсится в эти структуры на границе — дальше по системе сырой JSON не ходит.

const (
	StatusOK          = "OK"
	StatusZeroResults = "ZERO_RESULTS"
)

type SearchResponse struct {
	Results       []Place `json:"results"`
	NextPageToken string  `json:"next_page_token,omitempty"`
	Status        string  `json:"status"`
	ErrorMessage  string  `json:"error_message,omitempty"`
}

type DetailsResponse struct {
	Result       Place  `json:"result"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
}

type Place struct {
	PlaceID                  string        `json:"place_id"`
	Name                     string        `json:"name"`
	FormattedAddress         string        `json:"formatted_address"`
	Rating                   float64       `json:"rating,omitempty"`
	UserRatingsTotal         int           `json:"user_ratings_total,omitempty"`
	Types                    []string      `json:"types,omitempty"`
	Photos                   []Photo       `json:"photos,omitempty"`
	OpeningHours             *OpeningHours `json:"opening_hours,omitempty"`
	FormattedPhoneNumber     string        `json:"formatted_phone_number,omitempty"`
	InternationalPhoneNumber string        `json:"international_phone_number,omitempty"`
	Website                  string        `json:"website,omitempty"`
	Reviews                  []Review      `json:"reviews,omitempty"`
	Geometry                 *Geometry     `json:"geometry,omitempty"`
	BusinessStatus           string        `json:"business_status,omitempty"`
}

type Photo struct {
	PhotoReference string `json:"photo_reference"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
}

type OpeningHours struct {
	OpenNow     bool     `json:"open_now"`
	WeekdayText []string `json:"weekday_text,omitempty"`
}

type Review struct {
	AuthorName string `json:"author_name"`
	Rating     int    `json:"rating"`
	Text       string `json:"text"`
	Time       int64  `json:"time"`
	Language   string `json:"language,omitempty"`
	ProfileURL string `json:"profile_photo_url,omitempty"`
}

type Geometry struct {
	Location Location `json:"location"`
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RawResult — результат поиска, помеченный городом, под которым он найден.
type RawResult struct {
	Place Place
	City  string
}
