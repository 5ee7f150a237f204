package models

import (
	"time"

	"github.com/google/uuid"
)

type ChecklistStatus string

type ChecklistPriority string

const (
	ChecklistStatusTodo       ChecklistStatus = "todo"
	ChecklistStatusInProgress ChecklistStatus = "in-progress"
	ChecklistStatusCompleted  ChecklistStatus = "completed"

	ChecklistPriorityLow    ChecklistPriority = "low"
	ChecklistPriorityMedium ChecklistPriority = "medium"
	ChecklistPriorityHigh   ChecklistPriority = "high"
)

// Valid проверяет, что статус входит в известный набор.
func (s ChecklistStatus) Valid() bool {
	switch s {
	case ChecklistStatusTodo, ChecklistStatusInProgress, ChecklistStatusCompleted:
		return true
	}
	return false
}

// Valid проверяет, что приоритет входит в известный набор.
func (p ChecklistPriority) Valid() bool {
	switch p {
	case ChecklistPriorityLow, ChecklistPriorityMedium, ChecklistPriorityHigh:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         *string   `json:"name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type RefreshToken struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	TokenHash  string     `json:"-"`
	ExpiresAt  time.Time  `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	ReplacedBy *uuid.UUID `json:"replaced_by,omitempty"`
}

// Venue — карточка заведения в списочной выдаче.
// ID — place_id из Google Places, ключ дедупликации и кэширования.
type Venue struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Rating  float64  `json:"rating"`
	Price   string   `json:"price"`
	Image   string   `json:"image"`
	City    string   `json:"city,omitempty"`
	Types   []string `json:"types,omitempty"`
}

// VenueDetail — расширенная карточка, заполняется только детальным запросом.
type VenueDetail struct {
	Venue
	PhoneNumber      string        `json:"phoneNumber,omitempty"`
	Website          string        `json:"website,omitempty"`
	OpeningHours     *OpeningHours `json:"openingHours,omitempty"`
	Photos           []VenuePhoto  `json:"photos,omitempty"`
	Reviews          []VenueReview `json:"reviews,omitempty"`
	UserRatingsTotal int           `json:"userRatingsTotal,omitempty"`
	Location         *GeoPoint     `json:"location,omitempty"`
}

type OpeningHours struct {
	IsOpen      bool     `json:"isOpen"`
	WeekdayText []string `json:"weekdayText,omitempty"`
}

type VenuePhoto struct {
	Reference string `json:"reference"`
	URL       string `json:"url"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

type VenueReview struct {
	AuthorName   string `json:"authorName"`
	Rating       int    `json:"rating"`
	Text         string `json:"text"`
	Time         int64  `json:"time"`
	RelativeTime string `json:"relativeTime"`
	Language     string `json:"language,omitempty"`
}

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// FavoriteVenue — сохраненный снимок карточки на момент добавления.
type FavoriteVenue struct {
	UserID    uuid.UUID `json:"user_id"`
	VenueID   string    `json:"venue_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Rating    float64   `json:"rating"`
	Price     string    `json:"price"`
	Image     string    `json:"image"`
	City      string    `json:"city,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Budget struct {
	UserID         uuid.UUID `json:"user_id"`
	TotalCents     int64     `json:"total_cents"`
	Currency       string    `json:"currency"`
	SpentCents     int64     `json:"spent_cents"`
	RemainingCents int64     `json:"remaining_cents"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BudgetCategory — плоская статья расходов: сумма считается
// потраченной целиком в момент создания.
type BudgetCategory struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	AmountCents int64     `json:"amount_cents"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
}

type Expense struct {
	ID          uuid.UUID `json:"id"`
	CategoryID  uuid.UUID `json:"category_id"`
	Description string    `json:"description"`
	AmountCents int64     `json:"amount_cents"`
	Date        time.Time `json:"date"`
	Paid        bool      `json:"paid"`
	Vendor      string    `json:"vendor,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type ChecklistItem struct {
	ID          uuid.UUID         `json:"id"`
	UserID      uuid.UUID         `json:"user_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      ChecklistStatus   `json:"status"`
	Priority    ChecklistPriority `json:"priority"`
	DueDate     *time.Time        `json:"due_date,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}
