package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Baaaki/store-rating/internal/apperror"
	"github.com/Baaaki/store-rating/internal/models"
	"github.com/Baaaki/store-rating/internal/repository"
	"github.com/Baaaki/store-rating/internal/validation"
	"github.com/Baaaki/store-rating/pkg/logger"
	"go.uber.org/zap"
)

// StoreInput carries the fields of a new store. OwnerID is optional.
type StoreInput struct {
	Name    string
	Email   string
	Address string
	OwnerID *uint
}

// ListQuery holds the raw search and sort parameters of a listing request.
type ListQuery struct {
	Search    string
	SortBy    string
	SortOrder string
}

type StoreService struct {
	storeRepo *repository.StoreRepository
	userRepo  *repository.UserRepository
}

func NewStoreService(storeRepo *repository.StoreRepository, userRepo *repository.UserRepository) *StoreService {
	return &StoreService{
		storeRepo: storeRepo,
		userRepo:  userRepo,
	}
}

// CreateStore validates and inserts a store. A non-nil OwnerID must refer
// to an existing store owner.
func (s *StoreService) CreateStore(ctx context.Context, in StoreInput) (*models.Store, error) {
	in.Email = validation.NormalizeEmail(in.Email)
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.Address) == "" {
		return nil, apperror.Validation(MsgStoreFieldsRequired)
	}
	if err := invalid(validation.First(
		validation.ValidateStoreName(in.Name),
		validation.ValidateEmail(in.Email),
		validation.ValidateAddress(in.Address),
	)); err != nil {
		return nil, err
	}

	if in.OwnerID != nil {
		owner, err := s.userRepo.GetByID(ctx, *in.OwnerID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if owner == nil || owner.Role != models.RoleStoreOwner {
			logger.Log.Warn("Store owner rejected",
				zap.Uint("owner_id", *in.OwnerID),
			)
			return nil, apperror.Validation(MsgInvalidOwner)
		}
	}

	exists, err := s.storeRepo.EmailExists(ctx, in.Email)
	if err != nil {
		logger.Log.Error("Failed to check store email existence",
			zap.String("email", in.Email),
			zap.Error(err),
		)
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict(MsgStoreEmailRegistered)
	}

	store := &models.Store{
		Name:    in.Name,
		Email:   in.Email,
		Address: in.Address,
		OwnerID: in.OwnerID,
	}
	if err := s.storeRepo.Create(ctx, store); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict(MsgStoreEmailRegistered)
		}
		logger.Log.Error("Failed to create store in database",
			zap.String("email", in.Email),
			zap.Error(err),
		)
		return nil, apperror.Internal(err)
	}

	logger.Log.Info("Store created successfully",
		zap.Uint("store_id", store.ID),
		zap.String("email", store.Email),
	)
	return store, nil
}

// CreateOwnedStore creates a store owned by ownerID, whatever the input says.
func (s *StoreService) CreateOwnedStore(ctx context.Context, ownerID uint, in StoreInput) (*models.Store, error) {
	in.OwnerID = &ownerID
	return s.CreateStore(ctx, in)
}

// ListStores lists stores as seen by userID. storeID, when set, restricts
// the result to that store.
func (s *StoreService) ListStores(ctx context.Context, userID uint, q ListQuery, storeID *uint) ([]models.StoreListing, error) {
	sort, err := repository.ParseSort(repository.StoreSortColumns, q.SortBy, q.SortOrder)
	if err != nil {
		return nil, sortError(err)
	}

	stores, err := s.storeRepo.ListForUser(ctx, userID, repository.StoreFilter{
		Search:  q.Search,
		StoreID: storeID,
		Sort:    sort,
	})
	if err != nil {
		logger.Log.Error("Failed to list stores",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
		return nil, apperror.Internal(err)
	}
	return stores, nil
}

// OwnerDashboard returns the stores ownerID owns and the ratings left on them.
func (s *StoreService) OwnerDashboard(ctx context.Context, ownerID uint) (*models.OwnerDashboard, error) {
	stores, err := s.storeRepo.ListOwned(ctx, ownerID)
	if err != nil {
		logger.Log.Error("Failed to fetch owned stores",
			zap.Uint("owner_id", ownerID),
			zap.Error(err),
		)
		return nil, apperror.Internal(err)
	}

	ids := make([]uint, 0, len(stores))
	for _, store := range stores {
		ids = append(ids, store.ID)
	}

	raters, err := s.storeRepo.Raters(ctx, ids)
	if err != nil {
		logger.Log.Error("Failed to fetch store raters",
			zap.Uint("owner_id", ownerID),
			zap.Error(err),
		)
		return nil, apperror.Internal(err)
	}

	return &models.OwnerDashboard{Stores: stores, Users: raters}, nil
}
