package models

import "time"

type Store struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Address   string    `gorm:"type:varchar(400);not null" json:"address"`
	OwnerID   *uint     `gorm:"index" json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Foreign Key Relationship
	Owner *User `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL" json:"-"`
}

// StoreSummary is a store with its aggregate rating, as listed to admins.
// AverageRating is nil when the store has no ratings.
type StoreSummary struct {
	ID            uint     `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Address       string   `json:"address"`
	OwnerID       *uint    `json:"owner_id"`
	AverageRating *float64 `json:"average_rating"`
	TotalRatings  int64    `json:"total_ratings"`
}

// StoreListing is a store as seen by an authenticated caller, including
// the caller's own rating (nil if they have not rated it).
type StoreListing struct {
	ID            uint     `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Address       string   `json:"address"`
	OwnerName     *string  `json:"owner_name"`
	AverageRating *float64 `json:"average_rating"`
	TotalRatings  int64    `json:"total_ratings"`
	UserRating    *int     `json:"user_rating"`
}

// OwnedStore is one entry of the store owner dashboard.
type OwnedStore struct {
	ID            uint     `json:"id"`
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	AverageRating *float64 `json:"averageRating"`
	TotalRatings  int64    `json:"totalRatings"`
}

// OwnerDashboard is what a store owner sees: their stores and every rating
// left on them, newest first. Both slices are empty, never nil, when the
// owner has no stores.
type OwnerDashboard struct {
	Stores []OwnedStore `json:"stores"`
	Users  []StoreRater `json:"users"`
}
