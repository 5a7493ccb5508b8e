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

type RatingService struct {
	ratingRepo *repository.RatingRepository
	storeRepo  *repository.StoreRepository
}

func NewRatingService(ratingRepo *repository.RatingRepository, storeRepo *repository.StoreRepository) *RatingService {
	return &RatingService{
		ratingRepo: ratingRepo,
		storeRepo:  storeRepo,
	}
}

// Submit records userID's rating of storeID, replacing any earlier rating
// of the same store. value is the raw rating as decoded from the request.
func (s *RatingService) Submit(ctx context.Context, userID uint, storeID *uint, value any) error {
	rating, verr := validation.ParseRating(value)
	if verr != nil {
		return invalid(verr)
	}
	if storeID == nil {
		return apperror.Validation(MsgStoreIDRequired)
	}

	store, err := s.storeRepo.GetByID(ctx, *storeID)
	if err != nil {
		logger.Log.Error("Failed to get store",
			zap.Uint("store_id", *storeID),
			zap.Error(err),
		)
		return apperror.Internal(err)
	}
	if store == nil {
		return apperror.NotFound(MsgStoreNotFound)
	}

	if err := s.ratingRepo.Upsert(ctx, &models.Rating{
		UserID:  userID,
		StoreID: store.ID,
		Rating:  rating,
	}); err != nil {
		logger.Log.Error("Failed to submit rating",
			zap.Uint("user_id", userID),
			zap.Uint("store_id", store.ID),
			zap.Error(err),
		)
		return apperror.Internal(err)
	}

	logger.Log.Debug("Rating submitted",
		zap.Uint("user_id", userID),
		zap.Uint("store_id", store.ID),
		zap.Int("rating", rating),
	)
	return nil
}
