package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Baaaki/store-rating/internal/handler"
	"github.com/Baaaki/store-rating/internal/models"
	"github.com/Baaaki/store-rating/internal/observability"
	"github.com/Baaaki/store-rating/internal/repository"
	"github.com/Baaaki/store-rating/internal/service"
	"github.com/Baaaki/store-rating/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

// APIIntegrationTestSuite drives the full router against SQLite.
type APIIntegrationTestSuite struct {
	suite.Suite
	testDB *testutil.TestDatabase
	router *gin.Engine
}

// SetupSuite runs before all tests
func (s *APIIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	s.testDB = testutil.SetupTestDatabase(s.T())

	// Setup repositories and services
	userRepo := repository.NewUserRepository(s.testDB.DB)
	storeRepo := repository.NewStoreRepository(s.testDB.DB)
	ratingRepo := repository.NewRatingRepository(s.testDB.DB)

	authService := service.NewAuthService(userRepo, testutil.TestJWTSecret, time.Hour, bcrypt.MinCost)
	storeService := service.NewStoreService(storeRepo, userRepo)
	ratingService := service.NewRatingService(ratingRepo, storeRepo)
	adminService := service.NewAdminService(userRepo, storeRepo, ratingRepo, authService, storeService)

	registry := prometheus.NewRegistry()
	s.router = handler.NewRouter(handler.Handlers{
		Auth:   handler.NewAuthHandler(authService),
		User:   handler.NewUserHandler(authService),
		Admin:  handler.NewAdminHandler(adminService),
		Store:  handler.NewStoreHandler(storeService),
		Rating: handler.NewRatingHandler(ratingService),
		Health: handler.NewHealthHandler(s.testDB.DB),
	}, handler.RouterOptions{
		JWTSecret:      testutil.TestJWTSecret,
		AllowedOrigins: []string{"http://localhost:5173"},
		Prom:           observability.NewProm(registry),
		Gatherer:       registry,
	})
}

// TearDownSuite runs after all tests
func (s *APIIntegrationTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

// SetupTest runs before each test (clean database)
func (s *APIIntegrationTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)
}

func (s *APIIntegrationTestSuite) do(method, path string, body interface{}, user *models.User) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(s.T(), err)
		reader = bytes.NewReader(raw)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		req.Header.Set("Authorization", testutil.BearerHeader(testutil.TokenFor(s.T(), user)))
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *APIIntegrationTestSuite) decode(w *httptest.ResponseRecorder, out interface{}) {
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), out), "body=%s", w.Body.String())
}

func (s *APIIntegrationTestSuite) assertError(w *httptest.ResponseRecorder, status int, msg string) {
	s.T().Helper()
	assert.Equal(s.T(), status, w.Code, "body=%s", w.Body.String())
	var body map[string]interface{}
	s.decode(w, &body)
	assert.Len(s.T(), body, 1, "error envelope carries only the error key")
	if msg != "" {
		assert.Equal(s.T(), msg, body["error"])
	} else {
		assert.NotEmpty(s.T(), body["error"])
	}
}

func (s *APIIntegrationTestSuite) admin() *models.User {
	return testutil.CreateTestUser(s.T(), s.testDB.DB, "Admin Person", "admin@example.com", models.RoleAdmin)
}

func registerBody(email, role string) map[string]string {
	return map[string]string{
		"name":     "Registered Test Person",
		"email":    email,
		"password": "Secret1!",
		"address":  "42 Test Lane",
		"role":     role,
	}
}

func (s *APIIntegrationTestSuite) TestBannerAndHealth() {
	w := s.do(http.MethodGet, "/", nil, nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "Store Rating App Backend Running...", w.Body.String())

	assert.Equal(s.T(), http.StatusOK, s.do(http.MethodGet, "/healthz", nil, nil).Code)
	assert.Equal(s.T(), http.StatusOK, s.do(http.MethodGet, "/readyz", nil, nil).Code)

	w = s.do(http.MethodGet, "/metrics", nil, nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Body.String(), "storerating_http_requests_total")

	s.assertError(s.do(http.MethodGet, "/api/nowhere", nil, nil), http.StatusNotFound, "Route not found")
}

func (s *APIIntegrationTestSuite) TestRegisterAndLogin() {
	w := s.do(http.MethodPost, "/api/auth/register", registerBody("new@example.com", ""), nil)
	require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())

	var created map[string]interface{}
	s.decode(w, &created)
	assert.Equal(s.T(), map[string]interface{}{"message": "User registered successfully"}, created)

	w = s.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email": "new@example.com", "password": "Secret1!",
	}, nil)
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

	var login struct {
		Token string                 `json:"token"`
		User  map[string]interface{} `json:"user"`
	}
	s.decode(w, &login)
	assert.NotEmpty(s.T(), login.Token)
	assert.Equal(s.T(), "user", login.User["role"])
	assert.Equal(s.T(), "42 Test Lane", login.User["address"])
	assert.NotContains(s.T(), login.User, "password")
	assert.ElementsMatch(s.T(), []string{"id", "name", "email", "role", "address"}, keys(login.User))
}

func (s *APIIntegrationTestSuite) TestRegister_DuplicateEmailIsBadRequest() {
	require.Equal(s.T(), http.StatusCreated, s.do(http.MethodPost, "/api/auth/register", registerBody("dup@example.com", ""), nil).Code)

	for _, role := range []string{"user", "store_owner", "admin"} {
		w := s.do(http.MethodPost, "/api/auth/register", registerBody("dup@example.com", role), nil)
		s.assertError(w, http.StatusBadRequest, "Email already registered")
	}
}

func (s *APIIntegrationTestSuite) TestRegister_InvalidInput() {
	testCases := []struct {
		name string
		body interface{}
		msg  string
	}{
		{"malformed json", `{"name": `, "Invalid request body"},
		{"empty body", "", "Invalid request body"},
		{"short name", map[string]string{"name": "Short", "email": "a@b.co", "password": "Secret1!", "address": "x"},
			"Name must be between 20 and 60 characters"},
		{"unknown role", registerBody("role@example.com", "superuser"), "Invalid role"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.assertError(s.do(http.MethodPost, "/api/auth/register", tc.body, nil), http.StatusBadRequest, tc.msg)
		})
	}
}

func (s *APIIntegrationTestSuite) TestLogin_IdenticalFailures() {
	testutil.CreateTestUser(s.T(), s.testDB.DB, "Known User", "known@example.com", models.RoleUser)

	unknown := s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "unknown@example.com", "password": "Whatever1!"}, nil)
	wrong := s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "known@example.com", "password": "Whatever1!"}, nil)

	s.assertError(unknown, http.StatusUnauthorized, "Invalid email or password")
	s.assertError(wrong, http.StatusUnauthorized, "Invalid email or password")
	assert.Equal(s.T(), unknown.Body.String(), wrong.Body.String())
}

func (s *APIIntegrationTestSuite) TestProtectedRoutes_RequireToken() {
	for _, path := range []string{"/api/stores", "/api/admin/dashboard", "/api/store-owner/dashboard"} {
		s.assertError(s.do(http.MethodGet, path, nil, nil), http.StatusUnauthorized, "")
	}
}

func (s *APIIntegrationTestSuite) TestRoleGates() {
	user := testutil.CreateTestUser(s.T(), s.testDB.DB, "Plain User", "plain@example.com", models.RoleUser)
	owner := testutil.CreateTestUser(s.T(), s.testDB.DB, "Store Owner", "owner@example.com", models.RoleStoreOwner)
	admin := s.admin()

	s.assertError(s.do(http.MethodGet, "/api/admin/dashboard", nil, user), http.StatusForbidden, "")
	s.assertError(s.do(http.MethodGet, "/api/admin/users", nil, owner), http.StatusForbidden, "")
	s.assertError(s.do(http.MethodGet, "/api/store-owner/dashboard", nil, user), http.StatusForbidden, "")
	s.assertError(s.do(http.MethodGet, "/api/store-owner/dashboard", nil, admin), http.StatusForbidden, "")

	assert.Equal(s.T(), http.StatusOK, s.do(http.MethodGet, "/api/stores", nil, owner).Code)
	assert.Equal(s.T(), http.StatusOK, s.do(http.MethodGet, "/api/stores", nil, admin).Code)
}

func (s *APIIntegrationTestSuite) TestChangePassword_BothRoutes() {
	user := testutil.CreateTestUser(s.T(), s.testDB.DB, "Plain User", "plain@example.com", models.RoleUser)
	owner := testutil.CreateTestUser(s.T(), s.testDB.DB, "Store Owner", "owner@example.com", models.RoleStoreOwner)

	w := s.do(http.MethodPut, "/api/users/password", map[string]string{
		"currentPassword": "Wrong123!", "newPassword": "NewPass1!",
	}, user)
	s.assertError(w, http.StatusBadRequest, "Current password is incorrect")

	w = s.do(http.MethodPut, "/api/users/password", map[string]string{"newPassword": "NewPass1!"}, user)
	s.assertError(w, http.StatusBadRequest, "currentPassword is required")

	w = s.do(http.MethodPut, "/api/users/password", map[string]string{
		"currentPassword": testutil.TestPassword, "newPassword": "NewPass1!",
	}, user)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.JSONEq(s.T(), `{"message":"Password updated successfully"}`, w.Body.String())

	w = s.do(http.MethodPut, "/api/store-owner/change-password", map[string]string{
		"currentPassword": testutil.TestPassword, "newPassword": "NewPass1!",
	}, owner)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	s.assertError(s.do(http.MethodPut, "/api/store-owner/change-password", map[string]string{
		"currentPassword": "NewPass1!", "newPassword": "Another1!",
	}, user), http.StatusForbidden, "")

	w = s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "owner@example.com", "password": "NewPass1!"}, nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *APIIntegrationTestSuite) TestAdminCreateUserAndDetail() {
	admin := s.admin()

	body := registerBody("created@example.com", "store_owner")
	w := s.do(http.MethodPost, "/api/admin/users", body, admin)
	require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Message string `json:"message"`
		ID      uint   `json:"id"`
	}
	s.decode(w, &created)
	assert.Equal(s.T(), "User created successfully", created.Message)
	assert.NotZero(s.T(), created.ID)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/admin/users/%d", created.ID), nil, admin)
	require.Equal(s.T(), http.StatusOK, w.Code)
	var detail map[string]interface{}
	s.decode(w, &detail)
	assert.Equal(s.T(), "store_owner", detail["role"])
	assert.Nil(s.T(), detail["average_rating"])
	assert.Equal(s.T(), float64(0), detail["total_ratings"])

	s.assertError(s.do(http.MethodGet, "/api/admin/users/abc", nil, admin), http.StatusBadRequest, "Invalid user id")
	s.assertError(s.do(http.MethodGet, "/api/admin/users/99999", nil, admin), http.StatusNotFound, "User not found")
	s.assertError(s.do(http.MethodPost, "/api/admin/users", body, admin), http.StatusBadRequest, "Email already registered")
}

func (s *APIIntegrationTestSuite) TestAdminListUsers() {
	admin := s.admin()
	testutil.CreateTestUser(s.T(), s.testDB.DB, "Zed Customer", "zed@shop.com", models.RoleUser)
	testutil.CreateTestUser(s.T(), s.testDB.DB, "Amy Owner", "amy@shop.com", models.RoleStoreOwner)

	w := s.do(http.MethodGet, "/api/admin/users?search=SHOP&sortBy=name&sortOrder=desc", nil, admin)
	require.Equal(s.T(), http.StatusOK, w.Code)
	var users []map[string]interface{}
	s.decode(w, &users)
	require.Len(s.T(), users, 2)
	assert.Equal(s.T(), "zed@shop.com", users[0]["email"])
	assert.ElementsMatch(s.T(), []string{"id", "name", "email", "address", "role"}, keys(users[0]))

	w = s.do(http.MethodGet, "/api/admin/users?role=store_owner", nil, admin)
	s.decode(w, &users)
	require.Len(s.T(), users, 1)
	assert.Equal(s.T(), "amy@shop.com", users[0]["email"])

	s.assertError(s.do(http.MethodGet, "/api/admin/users?role=king", nil, admin), http.StatusBadRequest, "Invalid role")
	s.assertError(s.do(http.MethodGet, "/api/admin/users?sortBy=password", nil, admin), http.StatusBadRequest, "Invalid sort field")
	s.assertError(s.do(http.MethodGet, "/api/admin/users?sortOrder=random", nil, admin), http.StatusBadRequest, "Invalid sort order")
}

func (s *APIIntegrationTestSuite) TestAdminCreateStore() {
	admin := s.admin()
	owner := testutil.CreateTestUser(s.T(), s.testDB.DB, "Store Owner", "owner@example.com", models.RoleStoreOwner)
	user := testutil.CreateTestUser(s.T(), s.testDB.DB, "Plain User", "plain@example.com", models.RoleUser)

	w := s.do(http.MethodPost, "/api/admin/stores", map[string]interface{}{
		"name": "Owned Store", "email": "owned@store.com", "address": "1 Main St", "owner_id": fmt.Sprint(owner.ID),
	}, admin)
	require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/admin/stores", map[string]interface{}{
		"name": "Unowned Store", "email": "unowned@store.com", "address": "2 Main St", "owner_id": "",
	}, admin)
	require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())

	testCases := []struct {
		name string
		body map[string]interface{}
		msg  string
	}{
		{"missing address", map[string]interface{}{"name": "S", "email": "s@store.com"}, "Name, email, and address are required"},
		{"duplicate email", map[string]interface{}{"name": "S", "email": "owned@store.com", "address": "x"}, "Store email already registered"},
		{"owner is plain user", map[string]interface{}{"name": "S", "email": "s@store.com", "address": "x", "owner_id": user.ID},
			"Owner must be an existing store owner"},
		{"owner id garbage", map[string]interface{}{"name": "S", "email": "s@store.com", "address": "x", "owner_id": "abc"}, "Invalid owner id"},
		{"long address", map[string]interface{}{"name": "S", "email": "s@store.com", "address": strings.Repeat("a", 401)},
			"Address must not exceed 400 characters"},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.assertError(s.do(http.MethodPost, "/api/admin/stores", tc.body, admin), http.StatusBadRequest, tc.msg)
		})
	}

	w = s.do(http.MethodGet, "/api/admin/stores?sortBy=email", nil, admin)
	require.Equal(s.T(), http.StatusOK, w.Code)
	var stores []map[string]interface{}
	s.decode(w, &stores)
	require.Len(s.T(), stores, 2)
	assert.Equal(s.T(), "owned@store.com", stores[0]["email"])
	assert.Equal(s.T(), float64(owner.ID), stores[0]["owner_id"])
	assert.Nil(s.T(), stores[1]["owner_id"])
	assert.Nil(s.T(), stores[1]["average_rating"])
}

func (s *APIIntegrationTestSuite) TestRatingFlowAndAggregates() {
	owner := testutil.CreateTestUser(s.T(), s.testDB.DB, "Store Owner", "owner@example.com", models.RoleStoreOwner)
	alice := testutil.CreateTestUser(s.T(), s.testDB.DB, "Alice Customer", "alice@example.com", models.RoleUser)
	bob := testutil.CreateTestUser(s.T(), s.testDB.DB, "Bob Customer", "bob@example.com", models.RoleUser)
	store := testutil.CreateTestStore(s.T(), s.testDB.DB, "Rated Store", "rated@store.com", &owner.ID)

	w := s.do(http.MethodPost, "/api/ratings", map[string]interface{}{"store_id": store.ID, "rating": 2}, alice)
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(s.T(), `{"message":"Rating submitted successfully"}`, w.Body.String())

	// resubmission overwrites; string forms are accepted
	w = s.do(http.MethodPost, "/api/ratings", map[string]interface{}{"store_id": fmt.Sprint(store.ID), "rating": "4"}, alice)
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())
	w = s.do(http.MethodPost, "/api/ratings", map[string]interface{}{"store_id": store.ID, "rating": 5}, bob)
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

	var count int64
	s.testDB.DB.Model(&models.Rating{}).Count(&count)
	assert.Equal(s.T(), int64(2), count)

	for user, own := range map[*models.User]float64{alice: 4, bob: 5} {
		w = s.do(http.MethodGet, "/api/stores", nil, user)
		require.Equal(s.T(), http.StatusOK, w.Code)
		var stores []map[string]interface{}
		s.decode(w, &stores)
		require.Len(s.T(), stores, 1)
		assert.InDelta(s.T(), 4.5, stores[0]["average_rating"], 0.001)
		assert.Equal(s.T(), float64(2), stores[0]["total_ratings"])
		assert.Equal(s.T(), own, stores[0]["user_rating"])
		assert.Equal(s.T(), owner.Name, stores[0]["owner_name"])
	}

	w = s.do(http.MethodGet, "/api/stores", nil, owner)
	var stores []map[string]interface{}
	s.decode(w, &stores)
	assert.Nil(s.T(), stores[0]["user_rating"])
}

func (s *APIIntegrationTestSuite) TestRating_Errors() {
	user := testutil.CreateTestUser(s.T(), s.testDB.DB, "Plain User", "plain@example.com", models.RoleUser)
	store := testutil.CreateTestStore(s.T(), s.testDB.DB, "Store", "store@example.com", nil)

	s.assertError(s.do(http.MethodPost, "/api/ratings", map[string]interface{}{"store_id": store.ID, "rating": 0}, user),
		http.StatusBadRequest, "Rating must be between 1 and 5")
	s.assertError(s.do(http.MethodPost, "/api/ratings", map[string]interface{}{"store_id": store.ID, "rating": 6}, user),
		http.StatusBadRequest, "Rating must be between 1 and 5")
	s.assertError(s.do(http.MethodPost, "/api/ratings", map[string]interface{}{"rating": 3}, user),
		http.StatusBadRequest, "Store ID is required")
	s.assertError(s.do(http.MethodPost, "/api/ratings", map[string]interface{}{"store_id": 99999, "rating": 3}, user),
		http.StatusNotFound, "Store not found")
}

func (s *APIIntegrationTestSuite) TestStoreSearchAndFilter() {
	user := testutil.CreateTestUser(s.T(), s.testDB.DB, "Plain User", "plain@example.com", models.RoleUser)
	first := testutil.CreateTestStore(s.T(), s.testDB.DB, "Green Grocer", "green@store.com", nil)
	testutil.CreateTestStore(s.T(), s.testDB.DB, "Blue Bakery", "blue@store.com", nil)

	var stores []map[string]interface{}
	s.decode(s.do(http.MethodGet, "/api/stores?search=green", nil, user), &stores)
	require.Len(s.T(), stores, 1)
	assert.Equal(s.T(), "Green Grocer", stores[0]["name"])

	// store search does not look at email
	s.decode(s.do(http.MethodGet, "/api/stores?search=blue@", nil, user), &stores)
	assert.Empty(s.T(), stores)

	s.decode(s.do(http.MethodGet, fmt.Sprintf("/api/stores?storeId=%d", first.ID), nil, user), &stores)
	require.Len(s.T(), stores, 1)
	assert.Equal(s.T(), float64(first.ID), stores[0]["id"])

	s.assertError(s.do(http.MethodGet, "/api/stores?storeId=abc", nil, user), http.StatusBadRequest, "Invalid store id")
	s.assertError(s.do(http.MethodGet, "/api/stores?sortBy=created_at", nil, user), http.StatusBadRequest, "Invalid sort field")
}

func (s *APIIntegrationTestSuite) TestOwnerDashboardAndStores() {
	admin := s.admin()
	owner := testutil.CreateTestUser(s.T(), s.testDB.DB, "Store Owner", "owner@example.com", models.RoleStoreOwner)
	rater := testutil.CreateTestUser(s.T(), s.testDB.DB, "Rating Customer", "rater@example.com", models.RoleUser)

	w := s.do(http.MethodGet, "/api/store-owner/dashboard", nil, owner)
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.JSONEq(s.T(), `{"stores":[],"users":[]}`, w.Body.String())

	w = s.do(http.MethodPost, "/api/admin/stores", map[string]interface{}{
		"name": "Admin Made", "email": "admin-made@store.com", "address": "1 Main St", "owner_id": owner.ID,
	}, admin)
	require.Equal(s.T(), http.StatusCreated, w.Code)
	var created struct {
		ID uint `json:"id"`
	}
	s.decode(w, &created)

	w = s.do(http.MethodPost, "/api/store-owner/stores", map[string]interface{}{
		"name": "Self Made", "email": "self-made@store.com", "address": "2 Main St",
	}, owner)
	require.Equal(s.T(), http.StatusCreated, w.Code)
	var own struct {
		ID uint `json:"id"`
	}
	s.decode(w, &own)

	other := testutil.CreateTestStore(s.T(), s.testDB.DB, "Someone Else", "else@store.com", nil)
	testutil.CreateTestRating(s.T(), s.testDB.DB, rater.ID, created.ID, 3)
	testutil.CreateTestRating(s.T(), s.testDB.DB, admin.ID, created.ID, 5)
	testutil.CreateTestRating(s.T(), s.testDB.DB, rater.ID, other.ID, 1)

	w = s.do(http.MethodGet, "/api/store-owner/dashboard", nil, owner)
	require.Equal(s.T(), http.StatusOK, w.Code)

	var dashboard struct {
		Stores []map[string]interface{} `json:"stores"`
		Users  []map[string]interface{} `json:"users"`
	}
	s.decode(w, &dashboard)
	require.Len(s.T(), dashboard.Stores, 2)
	assert.Equal(s.T(), "Admin Made", dashboard.Stores[0]["name"])
	assert.InDelta(s.T(), 4.0, dashboard.Stores[0]["averageRating"], 0.001)
	assert.Equal(s.T(), float64(2), dashboard.Stores[0]["totalRatings"])
	assert.Nil(s.T(), dashboard.Stores[1]["averageRating"])
	assert.Equal(s.T(), float64(own.ID), dashboard.Stores[1]["id"])

	require.Len(s.T(), dashboard.Users, 2)
	for _, rating := range dashboard.Users {
		assert.Equal(s.T(), "Admin Made", rating["storeName"])
		assert.NotEmpty(s.T(), rating["date"])
	}

	w = s.do(http.MethodPost, "/api/store-owner/stores", map[string]interface{}{
		"name": "Dup", "email": "self-made@store.com", "address": "3 Main St",
	}, owner)
	s.assertError(w, http.StatusBadRequest, "Store email already registered")
}

func (s *APIIntegrationTestSuite) TestAdminDashboard() {
	admin := s.admin()
	store := testutil.CreateTestStore(s.T(), s.testDB.DB, "Store", "store@example.com", nil)
	testutil.CreateTestRating(s.T(), s.testDB.DB, admin.ID, store.ID, 4)

	w := s.do(http.MethodGet, "/api/admin/dashboard", nil, admin)

	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.JSONEq(s.T(), `{"totalUsers":1,"totalStores":1,"totalRatings":1}`, w.Body.String())
}

func keys(m map[string]interface{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// TestAPIIntegrationTestSuite runs the test suite
func TestAPIIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(APIIntegrationTestSuite))
}
