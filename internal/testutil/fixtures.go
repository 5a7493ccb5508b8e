package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Baaaki/store-rating/internal/models"
	"github.com/Baaaki/store-rating/internal/utils"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// TestPassword satisfies the password policy and is used for every fixture user.
	TestPassword = "Passw0rd!"
	// TestJWTSecret signs tokens in handler and middleware tests.
	TestJWTSecret = "test-jwt-secret"
)

// TestName pads prefix into a name accepted by the 20-60 character rule.
func TestName(prefix string) string {
	if len(prefix) >= 20 {
		return prefix
	}
	return prefix + strings.Repeat("x", 20-len(prefix))
}

// CreateTestUser inserts a user whose password is TestPassword.
// MinCost keeps fixtures fast; verification does not depend on cost.
func CreateTestUser(t *testing.T, db *gorm.DB, name, email string, role models.Role) *models.User {
	t.Helper()

	hash, err := utils.HashPasswordWithCost(TestPassword, bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Name:         TestName(name),
		Email:        email,
		PasswordHash: hash,
		Address:      "1 Fixture Street",
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTestStore inserts a store, optionally owned by ownerID.
func CreateTestStore(t *testing.T, db *gorm.DB, name, email string, ownerID *uint) *models.Store {
	t.Helper()

	store := &models.Store{
		Name:    name,
		Email:   email,
		Address: fmt.Sprintf("%s Avenue", name),
		OwnerID: ownerID,
	}
	require.NoError(t, db.Create(store).Error)
	return store
}

// CreateTestRating inserts a rating directly, bypassing the upsert path.
func CreateTestRating(t *testing.T, db *gorm.DB, userID, storeID uint, value int) *models.Rating {
	t.Helper()

	rating := &models.Rating{UserID: userID, StoreID: storeID, Rating: value}
	require.NoError(t, db.Create(rating).Error)
	return rating
}

// TokenFor issues a bearer token for user signed with TestJWTSecret.
func TokenFor(t *testing.T, user *models.User) string {
	t.Helper()

	token, err := utils.GenerateToken(user, TestJWTSecret, time.Hour)
	require.NoError(t, err)
	return token
}

// BearerHeader formats a token as an Authorization header value.
func BearerHeader(token string) string {
	return "Bearer " + token
}
