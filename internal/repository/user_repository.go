package repository

import (
	"context"
	"errors"

	"github.com/Baaaki/store-rating/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrDuplicate is returned when an insert hits a unique email index.
var ErrDuplicate = errors.New("duplicate record")

// UserFilter narrows the admin user listing.
type UserFilter struct {
	Search string
	Role   models.Role // empty means any role
	Sort   clause.OrderByColumn
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// EmailExists reports whether any user already holds email.
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("password", passwordHash).Error
}

// List returns users matching filter. Search is a case-insensitive substring
// match over name, email and address.
func (r *UserRepository) List(ctx context.Context, filter UserFilter) ([]models.UserListItem, error) {
	query := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("users.id, users.name, users.email, users.address, users.role")

	if filter.Search != "" {
		p := likePattern(filter.Search)
		query = query.Where("(LOWER(users.name) LIKE ? OR LOWER(users.email) LIKE ? OR LOWER(users.address) LIKE ?)", p, p, p)
	}
	if filter.Role != "" {
		query = query.Where("users.role = ?", filter.Role)
	}

	users := make([]models.UserListItem, 0)
	err := query.Order(orderWithTiebreak(filter.Sort, "users")).Scan(&users).Error
	return users, err
}

// Detail returns the user with the aggregate rating over every store they own.
// Returns nil, nil when the user does not exist.
func (r *UserRepository) Detail(ctx context.Context, id uint) (*models.UserDetail, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil || user == nil {
		return nil, err
	}

	var agg struct {
		AverageRating *float64
		TotalRatings  int64
	}
	err = r.db.WithContext(ctx).
		Table("ratings AS r").
		Select("AVG(r.rating) AS average_rating, COUNT(r.id) AS total_ratings").
		Joins("JOIN stores s ON s.id = r.store_id").
		Where("s.owner_id = ?", id).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}

	return &models.UserDetail{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Address:       user.Address,
		Role:          user.Role,
		AverageRating: agg.AverageRating,
		TotalRatings:  agg.TotalRatings,
	}, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}
