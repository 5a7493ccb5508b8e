package models

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Rating is one user's score for one store. The (UserID, StoreID) pair is unique.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_ratings_user_store" json:"user_id"`
	StoreID   uint      `gorm:"not null;uniqueIndex:idx_ratings_user_store;index" json:"store_id"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Foreign Key Relationships
	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Store *Store `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE" json:"-"`
}

// StoreRater is one rating left on a store the caller owns.
type StoreRater struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	StoreName string    `json:"storeName"`
	Rating    int       `json:"rating"`
	Date      time.Time `json:"date"`
}

// DashboardStats holds the admin dashboard counters.
type DashboardStats struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalStores  int64 `json:"totalStores"`
	TotalRatings int64 `json:"totalRatings"`
}
