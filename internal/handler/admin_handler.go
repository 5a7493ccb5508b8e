package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Baaaki/store-rating/internal/apperror"
	"github.com/Baaaki/store-rating/internal/middleware"
	"github.com/Baaaki/store-rating/internal/service"
	"github.com/Baaaki/store-rating/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// Request types
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

type CreateStoreRequest struct {
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Address string          `json:"address"`
	OwnerID json.RawMessage `json:"owner_id"`
}

// Dashboard returns user, store and rating totals.
// GET /api/admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.adminService.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// CreateUser adds a user with any role.
// POST /api/admin/users
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	adminID, _ := middleware.CurrentUserID(c)
	logger.Log.Info("Admin creating user",
		zap.Uint("admin_id", adminID),
		zap.String("email", req.Email),
		zap.String("role", req.Role),
	)

	user, err := h.adminService.CreateUser(c.Request.Context(), service.UserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Role:     req.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"id":      user.ID,
	})
}

// ListUsers filters by search and role and sorts by an allow-listed column.
// GET /api/admin/users?search=&role=&sortBy=&sortOrder=
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminService.ListUsers(c.Request.Context(), service.UserListQuery{
		ListQuery: listQuery(c),
		Role:      c.Query("role"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetUser returns a user with the aggregate rating of the stores they own.
// GET /api/admin/users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, apperror.Validation("Invalid user id"))
		return
	}

	detail, err := h.adminService.UserDetail(c.Request.Context(), *id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// CreateStore adds a store, optionally assigned to a store owner.
// POST /api/admin/stores
func (h *AdminHandler) CreateStore(c *gin.Context) {
	var req CreateStoreRequest
	if !bindJSON(c, &req) {
		return
	}

	ownerID, err := parseOptionalID(req.OwnerID)
	if err != nil {
		respondError(c, apperror.Validation("Invalid owner id"))
		return
	}

	store, err := h.adminService.CreateStore(c.Request.Context(), service.StoreInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: ownerID,
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

// ListStores lists every store with its aggregate rating.
// GET /api/admin/stores?search=&sortBy=&sortOrder=
func (h *AdminHandler) ListStores(c *gin.Context) {
	stores, err := h.adminService.ListStores(c.Request.Context(), listQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stores)
}

func listQuery(c *gin.Context) service.ListQuery {
	return service.ListQuery{
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
}
