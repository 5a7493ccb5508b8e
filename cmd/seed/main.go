package main

import (
	"context"
	"log"

	"github.com/Baaaki/store-rating/internal/config"
	"github.com/Baaaki/store-rating/internal/database"
	"github.com/Baaaki/store-rating/internal/models"
	"github.com/Baaaki/store-rating/internal/repository"
	"github.com/Baaaki/store-rating/internal/service"
	"github.com/Baaaki/store-rating/internal/validation"
	"github.com/Baaaki/store-rating/pkg/logger"
	"go.uber.org/zap"
)

// samplePassword satisfies the password rules; sample accounts are for local use only.
const samplePassword = "Sample@123"

type sampleStore struct {
	name, email, address string
	ownerEmail           string
}

var (
	sampleUsers = []service.UserInput{
		{Name: "Priya Raman Store Owner", Email: "owner.priya@example.com", Address: "12 Market Road", Role: string(models.RoleStoreOwner)},
		{Name: "Marcus Lee Store Owner", Email: "owner.marcus@example.com", Address: "98 Harbour Street", Role: string(models.RoleStoreOwner)},
		{Name: "Olivia Hart Regular Customer", Email: "olivia@example.com", Address: "4 Elm Close", Role: string(models.RoleUser)},
		{Name: "Daniel Cho Regular Customer", Email: "daniel@example.com", Address: "77 Birch Lane", Role: string(models.RoleUser)},
	}

	sampleStores = []sampleStore{
		{"Corner Coffee House", "hello@cornercoffee.example.com", "1 Market Road", "owner.priya@example.com"},
		{"Harbour Hardware", "info@harbourhw.example.com", "100 Harbour Street", "owner.marcus@example.com"},
		{"Green Leaf Grocers", "shop@greenleaf.example.com", "5 Station Square", ""},
	}

	// customer email -> store email -> rating
	sampleRatings = map[string]map[string]int{
		"olivia@example.com": {"hello@cornercoffee.example.com": 5, "info@harbourhw.example.com": 3},
		"daniel@example.com": {"hello@cornercoffee.example.com": 4, "shop@greenleaf.example.com": 2},
	}
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.AdminPassword == "" {
		log.Fatal("Missing environment variable: ADMIN_PASSWORD")
	}

	if err := logger.Init(!cfg.IsProduction(), cfg.LogFile); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to connect database", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		logger.Log.Fatal("Failed to migrate database", zap.Error(err))
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry, cfg.BcryptCost)
	storeService := service.NewStoreService(storeRepo, userRepo)
	ratingService := service.NewRatingService(ratingRepo, storeRepo)
	adminService := service.NewAdminService(userRepo, storeRepo, ratingRepo, authService, storeService)

	admin, err := ensureUser(ctx, userRepo, adminService, service.UserInput{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		Address:  cfg.AdminAddress,
		Role:     string(models.RoleAdmin),
	})
	if err != nil {
		logger.Log.Fatal("Failed to seed admin", zap.String("email", cfg.AdminEmail), zap.Error(err))
	}
	logger.Log.Info("Admin user ready", zap.Uint("id", admin.ID), zap.String("email", admin.Email))

	if !cfg.SeedSampleData {
		return
	}

	if err := seedSamples(ctx, userRepo, storeRepo, adminService, ratingService); err != nil {
		logger.Log.Fatal("Failed to seed sample data", zap.Error(err))
	}
	logger.Log.Info("Sample data seeded",
		zap.Int("users", len(sampleUsers)),
		zap.Int("stores", len(sampleStores)),
	)
}

// ensureUser returns the existing account for in.Email or creates it.
func ensureUser(ctx context.Context, users *repository.UserRepository, admin *service.AdminService, in service.UserInput) (*models.User, error) {
	existing, err := users.GetByEmail(ctx, validation.NormalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		logger.Log.Info("User already exists", zap.String("email", in.Email))
		return existing, nil
	}
	return admin.CreateUser(ctx, in)
}

func seedSamples(
	ctx context.Context,
	users *repository.UserRepository,
	stores *repository.StoreRepository,
	admin *service.AdminService,
	ratings *service.RatingService,
) error {
	idsByEmail := make(map[string]uint, len(sampleUsers))
	for _, in := range sampleUsers {
		in.Password = samplePassword
		user, err := ensureUser(ctx, users, admin, in)
		if err != nil {
			return err
		}
		idsByEmail[user.Email] = user.ID
	}

	storeIDs := make(map[string]uint, len(sampleStores))
	for _, s := range sampleStores {
		exists, err := stores.EmailExists(ctx, validation.NormalizeEmail(s.email))
		if err != nil {
			return err
		}
		if exists {
			logger.Log.Info("Store already exists", zap.String("email", s.email))
			continue
		}

		var ownerID *uint
		if id, ok := idsByEmail[s.ownerEmail]; ok {
			ownerID = &id
		}
		store, err := admin.CreateStore(ctx, service.StoreInput{
			Name:    s.name,
			Email:   s.email,
			Address: s.address,
			OwnerID: ownerID,
		})
		if err != nil {
			return err
		}
		storeIDs[s.email] = store.ID
	}

	for customer, byStore := range sampleRatings {
		for storeEmail, value := range byStore {
			storeID, ok := storeIDs[storeEmail]
			if !ok {
				continue
			}
			if err := ratings.Submit(ctx, idsByEmail[customer], &storeID, value); err != nil {
				return err
			}
		}
	}
	return nil
}
