package service

import (
	"context"
	"errors"
	"time"

	"github.com/Baaaki/store-rating/internal/apperror"
	"github.com/Baaaki/store-rating/internal/models"
	"github.com/Baaaki/store-rating/internal/repository"
	"github.com/Baaaki/store-rating/internal/utils"
	"github.com/Baaaki/store-rating/internal/validation"
	"github.com/Baaaki/store-rating/pkg/logger"
	"go.uber.org/zap"
)

// UserInput carries the fields needed to create a user, either through
// self registration or by an admin.
type UserInput struct {
	Name     string
	Email    string
	Password string
	Address  string
	Role     string
}

type AuthService struct {
	userRepo      *repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
	bcryptCost    int
}

func NewAuthService(userRepo *repository.UserRepository, jwtSecret string, jwtExpiration time.Duration, bcryptCost int) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		bcryptCost:    bcryptCost,
	}
}

// Register creates a user. An empty role defaults to models.RoleUser.
// No token is issued; the client logs in afterwards.
func (s *AuthService) Register(ctx context.Context, in UserInput) (*models.User, error) {
	if in.Role == "" {
		in.Role = string(models.RoleUser)
	}
	return s.createUser(ctx, in)
}

func (s *AuthService) createUser(ctx context.Context, in UserInput) (*models.User, error) {
	start := time.Now()
	in.Email = validation.NormalizeEmail(in.Email)

	// 1. Validate input, first failing field wins
	if err := invalid(validation.First(
		validation.ValidateName(in.Name),
		validation.ValidateEmail(in.Email),
		validation.ValidatePassword(in.Password),
		validation.ValidateAddress(in.Address),
	)); err != nil {
		logger.Log.Warn("User validation failed",
			zap.String("email", in.Email),
			zap.Error(err),
		)
		return nil, err
	}
	role, verr := validation.ValidateRole(in.Role)
	if verr != nil {
		return nil, invalid(verr)
	}

	// 2. Check if email already exists
	exists, err := s.userRepo.EmailExists(ctx, in.Email)
	if err != nil {
		logger.Log.Error("Failed to check email existence",
			zap.String("email", in.Email),
			zap.Error(err),
		)
		return nil, apperror.Internal(err)
	}
	if exists {
		logger.Log.Warn("Email already exists",
			zap.String("email", in.Email),
		)
		return nil, apperror.Conflict(MsgEmailRegistered)
	}

	// 3. Hash password (bcrypt)
	hashStart := time.Now()
	hashedPassword, err := utils.HashPasswordWithCost(in.Password, s.bcryptCost)
	if err != nil {
		logger.Log.Error("Failed to hash password",
			zap.Error(err),
		)
		return nil, apperror.Internal(err)
	}
	hashDuration := time.Since(hashStart)

	// 4. Create user
	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hashedPassword,
		Address:      in.Address,
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict(MsgEmailRegistered)
		}
		logger.Log.Error("Failed to create user in database",
			zap.String("email", in.Email),
			zap.Error(err),
		)
		return nil, apperror.Internal(err)
	}

	logger.Log.Info("User created successfully",
		zap.Uint("user_id", user.ID),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)),
		zap.Duration("hash_duration", hashDuration),
		zap.Duration("total_duration", time.Since(start)),
	)

	return user, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	start := time.Now()
	email = validation.NormalizeEmail(email)

	if err := invalid(validation.ValidateEmail(email)); err != nil {
		return nil, "", err
	}

	// 1. Get user by email
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Error("Failed to get user by email",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, "", apperror.Internal(err)
	}
	if user == nil {
		logger.Log.Warn("Login failed: user not found",
			zap.String("email", email),
		)
		return nil, "", apperror.Authentication(MsgInvalidCredentials)
	}

	// 2. Verify password
	valid, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		logger.Log.Error("Failed to verify password",
			zap.Uint("user_id", user.ID),
			zap.Error(err),
		)
		return nil, "", apperror.Internal(err)
	}
	if !valid {
		logger.Log.Warn("Login failed: invalid password",
			zap.Uint("user_id", user.ID),
		)
		return nil, "", apperror.Authentication(MsgInvalidCredentials)
	}

	// 3. Generate JWT token
	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		logger.Log.Error("Failed to generate JWT token",
			zap.Uint("user_id", user.ID),
			zap.Error(err),
		)
		return nil, "", apperror.Internal(err)
	}

	logger.Log.Info("User logged in successfully",
		zap.Uint("user_id", user.ID),
		zap.String("role", string(user.Role)),
		zap.Duration("total_duration", time.Since(start)),
	)

	return user, token, nil
}

// ChangePassword replaces userID's password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	if err := invalid(validation.ValidatePassword(newPassword)); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Error("Failed to get user by id",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
		return apperror.Internal(err)
	}
	if user == nil {
		return apperror.NotFound(MsgUserNotFound)
	}

	valid, err := utils.VerifyPassword(currentPassword, user.PasswordHash)
	if err != nil {
		return apperror.Internal(err)
	}
	if !valid {
		logger.Log.Warn("Password change rejected: current password mismatch",
			zap.Uint("user_id", userID),
		)
		return apperror.Validation(MsgCurrentPasswordWrong)
	}

	hashedPassword, err := utils.HashPasswordWithCost(newPassword, s.bcryptCost)
	if err != nil {
		return apperror.Internal(err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		logger.Log.Error("Failed to update password",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
		return apperror.Internal(err)
	}

	logger.Log.Info("Password updated", zap.Uint("user_id", userID))
	return nil
}
