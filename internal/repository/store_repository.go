package repository

import (
	"context"
	"errors"

	"github.com/Baaaki/store-rating/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StoreFilter narrows store listings.
type StoreFilter struct {
	Search  string
	StoreID *uint
	Sort    clause.OrderByColumn
}

type StoreRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

func (r *StoreRepository) Create(ctx context.Context, store *models.Store) error {
	err := r.db.WithContext(ctx).Create(store).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

func (r *StoreRepository) GetByID(ctx context.Context, id uint) (*models.Store, error) {
	var store models.Store
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&store).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &store, nil
}

// EmailExists reports whether any store already uses email.
func (r *StoreRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Store{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// ListSummaries is the admin listing: every store with its aggregate rating.
// Search matches name, email and address.
func (r *StoreRepository) ListSummaries(ctx context.Context, filter StoreFilter) ([]models.StoreSummary, error) {
	query := r.db.WithContext(ctx).
		Table("stores AS s").
		Select("s.id, s.name, s.email, s.address, s.owner_id, " +
			"AVG(r.rating) AS average_rating, COUNT(r.id) AS total_ratings").
		Joins("LEFT JOIN ratings r ON r.store_id = s.id")

	if filter.Search != "" {
		p := likePattern(filter.Search)
		query = query.Where("(LOWER(s.name) LIKE ? OR LOWER(s.email) LIKE ? OR LOWER(s.address) LIKE ?)", p, p, p)
	}

	stores := make([]models.StoreSummary, 0)
	err := query.
		Group("s.id, s.name, s.email, s.address, s.owner_id, s.created_at").
		Order(orderWithTiebreak(filter.Sort, "s")).
		Scan(&stores).Error
	return stores, err
}

// ListForUser lists stores as seen by userID, carrying the owner's name and
// the caller's own rating. Search matches name and address.
func (r *StoreRepository) ListForUser(ctx context.Context, userID uint, filter StoreFilter) ([]models.StoreListing, error) {
	// ur holds at most one row per store, so it never inflates COUNT(r.id)
	query := r.db.WithContext(ctx).
		Table("stores AS s").
		Select("s.id, s.name, s.email, s.address, u.name AS owner_name, "+
			"AVG(r.rating) AS average_rating, COUNT(r.id) AS total_ratings, MAX(ur.rating) AS user_rating").
		Joins("LEFT JOIN users u ON u.id = s.owner_id").
		Joins("LEFT JOIN ratings r ON r.store_id = s.id").
		Joins("LEFT JOIN ratings ur ON ur.store_id = s.id AND ur.user_id = ?", userID)

	if filter.Search != "" {
		p := likePattern(filter.Search)
		query = query.Where("(LOWER(s.name) LIKE ? OR LOWER(s.address) LIKE ?)", p, p)
	}
	if filter.StoreID != nil {
		query = query.Where("s.id = ?", *filter.StoreID)
	}

	stores := make([]models.StoreListing, 0)
	err := query.
		Group("s.id, s.name, s.email, s.address, u.name").
		Order(orderWithTiebreak(filter.Sort, "s")).
		Scan(&stores).Error
	return stores, err
}

// ListOwned returns the stores owned by ownerID with their aggregate rating.
func (r *StoreRepository) ListOwned(ctx context.Context, ownerID uint) ([]models.OwnedStore, error) {
	stores := make([]models.OwnedStore, 0)
	err := r.db.WithContext(ctx).
		Table("stores AS s").
		Select("s.id, s.name, s.address, AVG(r.rating) AS average_rating, COUNT(r.id) AS total_ratings").
		Joins("LEFT JOIN ratings r ON r.store_id = s.id").
		Where("s.owner_id = ?", ownerID).
		Group("s.id, s.name, s.address").
		Order("s.id").
		Scan(&stores).Error
	return stores, err
}

// Raters lists every rating left on storeIDs, newest first.
func (r *StoreRepository) Raters(ctx context.Context, storeIDs []uint) ([]models.StoreRater, error) {
	raters := make([]models.StoreRater, 0)
	if len(storeIDs) == 0 {
		return raters, nil
	}

	err := r.db.WithContext(ctx).
		Table("ratings AS r").
		Select("u.id, u.name, u.email, u.address, s.name AS store_name, r.rating, r.created_at AS date").
		Joins("JOIN users u ON u.id = r.user_id").
		Joins("JOIN stores s ON s.id = r.store_id").
		Where("r.store_id IN ?", storeIDs).
		Order("r.created_at DESC, r.id DESC").
		Scan(&raters).Error
	return raters, err
}

func (r *StoreRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Store{}).Count(&count).Error
	return count, err
}
