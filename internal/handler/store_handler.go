package handler

import (
	"net/http"

	"github.com/Baaaki/store-rating/internal/apperror"
	"github.com/Baaaki/store-rating/internal/service"
	"github.com/gin-gonic/gin"
)

type StoreHandler struct {
	storeService *service.StoreService
}

func NewStoreHandler(storeService *service.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

type OwnerStoreRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// ListStores lists stores with the caller's own rating.
// GET /api/stores?search=&sortBy=&sortOrder=&storeId=
func (h *StoreHandler) ListStores(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var storeID *uint
	if raw := c.Query("storeId"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			respondError(c, apperror.Validation("Invalid store id"))
			return
		}
		storeID = id
	}

	stores, err := h.storeService.ListStores(c.Request.Context(), userID, listQuery(c), storeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stores)
}

// OwnerDashboard shows the caller's stores and who rated them.
// GET /api/store-owner/dashboard
func (h *StoreHandler) OwnerDashboard(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	dashboard, err := h.storeService.OwnerDashboard(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// CreateOwnedStore creates a store owned by the caller.
// POST /api/store-owner/stores
func (h *StoreHandler) CreateOwnedStore(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req OwnerStoreRequest
	if !bindJSON(c, &req) {
		return
	}

	store, err := h.storeService.CreateOwnedStore(c.Request.Context(), ownerID, service.StoreInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Store created successfully",
		"id":      store.ID,
	})
}
