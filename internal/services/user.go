package service

import (
	"context"
	"time"

	"github.com/example/ecommerce-catalog-api/internal/cache"
	"github.com/example/ecommerce-catalog-api/internal/config"
	"github.com/example/ecommerce-catalog-api/internal/errors"
	"github.com/example/ecommerce-catalog-api/internal/models"
	repository "github.com/example/ecommerce-catalog-api/internal/repositories"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

type UserService interface {
	RegisterUser(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	LoginUser(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	GetUserProfile(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type userService struct {
	repo        repository.UserRepository
	rateLimiter *cache.LoginRateLimiter
	jwtKey      []byte
}

func NewUserService(repo repository.UserRepository, rateLimiter *cache.LoginRateLimiter, cfg *config.Security) UserService {
	return &userService{repo: repo, rateLimiter: rateLimiter, jwtKey: []byte(cfg.JWTKey)}
}

func (s *userService) RegisterUser(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {

	existing, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.DatabaseError("Failed to check user email").WithError(err)
	}

	if existing != nil {
		return nil, errors.ConflictError("A user with this email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.InternalError("Failed to hash password").WithError(err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     "customer",
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, errors.DatabaseError("Failed to create user").WithError(err)
	}

	return user, nil
}

func (s *userService) LoginUser(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {

	allowed, remaining, retryAfter, err := s.rateLimiter.Check(ctx, req.Email)
	if err != nil {
		return nil, errors.InternalError("Failed to check login rate").WithError(err)
	}

	if !allowed {
		return &models.LoginResponse{
			Success:    false,
			RetryAfter: retryAfter,
			Message:    "Too many login attempts, try again later",
		}, errors.TooManyRequestsError("Too many login attempts")
	}

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.DatabaseError("Failed to get user").WithError(err)
	}

	// A missing user and a wrong password produce the same response.
	if user == nil {
		return &models.LoginResponse{
			Success:        false,
			RemainingTries: remaining,
			Message:        "Invalid email or password",
		}, errors.UnauthorizedError("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return &models.LoginResponse{
			Success:        false,
			RemainingTries: remaining,
			Message:        "Invalid email or password",
		}, errors.UnauthorizedError("Invalid credentials")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, errors.InternalError("Failed to generate token").WithError(err)
	}

	return &models.LoginResponse{
		Success:   true,
		Token:     token,
		ExpiresIn: int(tokenTTL.Seconds()),
	}, nil
}

func (s *userService) GetUserProfile(ctx context.Context, id uuid.UUID) (*models.User, error) {

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, errors.DatabaseError("Failed to get user").WithError(err)
	}

	if user == nil {
		return nil, errors.NotFoundError("User not found")
	}

	return user, nil
}

func (s *userService) generateToken(user *models.User) (string, error) {

	claims := &models.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   user.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(s.jwtKey)
}
