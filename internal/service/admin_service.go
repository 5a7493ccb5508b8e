package service

import (
	"context"

	"github.com/Baaaki/store-rating/internal/apperror"
	"github.com/Baaaki/store-rating/internal/models"
	"github.com/Baaaki/store-rating/internal/repository"
	"github.com/Baaaki/store-rating/internal/validation"
	"github.com/Baaaki/store-rating/pkg/logger"
	"go.uber.org/zap"
)

// UserListQuery is a ListQuery plus an optional role filter.
type UserListQuery struct {
	ListQuery
	Role string
}

// AdminService backs the /api/admin routes. User and store creation share
// their rules with registration and owner store creation.
type AdminService struct {
	userRepo   *repository.UserRepository
	storeRepo  *repository.StoreRepository
	ratingRepo *repository.RatingRepository
	auth       *AuthService
	stores     *StoreService
}

func NewAdminService(
	userRepo *repository.UserRepository,
	storeRepo *repository.StoreRepository,
	ratingRepo *repository.RatingRepository,
	auth *AuthService,
	stores *StoreService,
) *AdminService {
	return &AdminService{
		userRepo:   userRepo,
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
		auth:       auth,
		stores:     stores,
	}
}

func (s *AdminService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	var err error

	if stats.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	if stats.TotalStores, err = s.storeRepo.Count(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	if stats.TotalRatings, err = s.ratingRepo.Count(ctx); err != nil {
		return nil, apperror.Internal(err)
	}

	return &stats, nil
}

// CreateUser creates a user with an explicit role.
func (s *AdminService) CreateUser(ctx context.Context, in UserInput) (*models.User, error) {
	user, err := s.auth.createUser(ctx, in)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Admin created user",
		zap.Uint("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)
	return user, nil
}

func (s *AdminService) CreateStore(ctx context.Context, in StoreInput) (*models.Store, error) {
	return s.stores.CreateStore(ctx, in)
}

func (s *AdminService) ListUsers(ctx context.Context, q UserListQuery) ([]models.UserListItem, error) {
	filter := repository.UserFilter{Search: q.Search}

	if q.Role != "" {
		role, verr := validation.ValidateRole(q.Role)
		if verr != nil {
			return nil, invalid(verr)
		}
		filter.Role = role
	}

	sort, err := repository.ParseSort(repository.UserSortColumns, q.SortBy, q.SortOrder)
	if err != nil {
		return nil, sortError(err)
	}
	filter.Sort = sort

	users, err := s.userRepo.List(ctx, filter)
	if err != nil {
		logger.Log.Error("Failed to list users", zap.Error(err))
		return nil, apperror.Internal(err)
	}
	return users, nil
}

func (s *AdminService) ListStores(ctx context.Context, q ListQuery) ([]models.StoreSummary, error) {
	sort, err := repository.ParseSort(repository.AdminStoreSortColumns, q.SortBy, q.SortOrder)
	if err != nil {
		return nil, sortError(err)
	}

	stores, err := s.storeRepo.ListSummaries(ctx, repository.StoreFilter{Search: q.Search, Sort: sort})
	if err != nil {
		logger.Log.Error("Failed to list stores", zap.Error(err))
		return nil, apperror.Internal(err)
	}
	return stores, nil
}

func (s *AdminService) UserDetail(ctx context.Context, id uint) (*models.UserDetail, error) {
	detail, err := s.userRepo.Detail(ctx, id)
	if err != nil {
		logger.Log.Error("Failed to fetch user detail",
			zap.Uint("user_id", id),
			zap.Error(err),
		)
		return nil, apperror.Internal(err)
	}
	if detail == nil {
		return nil, apperror.NotFound(MsgUserNotFound)
	}
	return detail, nil
}
