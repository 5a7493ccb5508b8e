package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Baaaki/store-rating/internal/apperror"
	"github.com/Baaaki/store-rating/internal/service"
	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	ratingService *service.RatingService
}

func NewRatingHandler(ratingService *service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// SubmitRatingRequest keeps both fields loosely typed: clients send numbers
// or numeric strings.
type SubmitRatingRequest struct {
	StoreID json.RawMessage `json:"store_id"`
	Rating  any             `json:"rating"`
}

// Submit creates or replaces the caller's rating of a store.
// POST /api/ratings
func (h *RatingHandler) Submit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req SubmitRatingRequest
	if !bindJSON(c, &req) {
		return
	}

	storeID, err := parseOptionalID(req.StoreID)
	if err != nil {
		respondError(c, apperror.Validation("Invalid store id"))
		return
	}

	if err := h.ratingService.Submit(c.Request.Context(), userID, storeID, req.Rating); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Rating submitted successfully")
}
