package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/example/ecommerce-catalog-api/internal/cache"
	"github.com/example/ecommerce-catalog-api/internal/config"
	appErrors "github.com/example/ecommerce-catalog-api/internal/errors"
	"github.com/example/ecommerce-catalog-api/internal/models"
	"github.com/example/ecommerce-catalog-api/internal/repositories/mocks"
	service "github.com/example/ecommerce-catalog-api/internal/services"
	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

const testJWTKey = "test-signing-key"

func newUserService(t *testing.T) (service.UserService, *mocks.UserRepository, redismock.ClientMock) {
	t.Helper()

	mockRepo := new(mocks.UserRepository)
	client, redisMock := redismock.NewClientMock()

	limiter := cache.NewLoginRateLimiter(client, &config.RateConfig{
		MaxAttempts: 5,
		WindowSize:  15 * time.Minute,
	})

	userService := service.NewUserService(mockRepo, limiter, &config.Security{JWTKey: testJWTKey})

	return userService, mockRepo, redisMock
}

func anyArgs(expected, actual []interface{}) error {
	return nil
}

// expectAttemptRecorded wires the sliding-window commands for a login
// attempt that is under the limit.
func expectAttemptRecorded(redisMock redismock.ClientMock, email string, priorAttempts int64) {
	key := "login_attempts:" + email

	redisMock.CustomMatch(anyArgs).ExpectZRemRangeByScore(key, "0", "0").SetVal(0)
	redisMock.ExpectZCard(key).SetVal(priorAttempts)
	redisMock.CustomMatch(anyArgs).ExpectZAdd(key, redis.Z{}).SetVal(1)
	redisMock.ExpectExpire(key, 15*time.Minute).SetVal(true)
}

func TestRegisterUser(t *testing.T) {
	// Arrange
	ctx := context.Background()

	req := &models.RegisterRequest{
		Email:    "alice@example.com",
		Password: "s3cret-passw0rd",
		Name:     "Alice",
	}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		userService, mockRepo, _ := newUserService(t)

		mockRepo.On("GetUserByEmail", mock.Anything, req.Email).Return(nil, nil).Once()
		mockRepo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			if u.Email != req.Email || u.Name != req.Name || u.Role != "customer" {
				return false
			}

			// The stored password must be a hash, not the plaintext.
			return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)) == nil
		})).Return(nil).Once()

		// Act
		user, err := userService.RegisterUser(ctx, req)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "customer", user.Role)
		assert.NotEqual(t, req.Password, user.Password)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Duplicate Email", func(t *testing.T) {
		// Arrange
		userService, mockRepo, _ := newUserService(t)

		mockRepo.On("GetUserByEmail", mock.Anything, req.Email).
			Return(&models.User{ID: uuid.New(), Email: req.Email}, nil).Once()

		// Act
		user, err := userService.RegisterUser(ctx, req)

		// Assert
		assert.Nil(t, user)
		assertAppErrorCode(t, err, appErrors.ErrCodeConflict)
		mockRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})
}

func TestLoginUser(t *testing.T) {
	// Arrange
	ctx := context.Background()
	email := "bob@example.com"
	password := "correct-horse-battery"

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)

	storedUser := &models.User{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hashed),
		Role:     "customer",
	}

	t.Run("Success - Valid Credentials", func(t *testing.T) {
		// Arrange
		userService, mockRepo, redisMock := newUserService(t)
		expectAttemptRecorded(redisMock, email, 0)

		mockRepo.On("GetUserByEmail", mock.Anything, email).Return(storedUser, nil).Once()

		// Act
		result, err := userService.LoginUser(ctx, &models.LoginRequest{Email: email, Password: password})

		// Assert
		assert.NoError(t, err)
		assert.True(t, result.Success)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, int((24 * time.Hour).Seconds()), result.ExpiresIn)

		claims := &models.Claims{}
		_, err = jwt.ParseWithClaims(result.Token, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(testJWTKey), nil
		})
		assert.NoError(t, err)
		assert.Equal(t, storedUser.ID, claims.UserID)
		assert.Equal(t, "customer", claims.Role)
	})

	t.Run("Failure - Wrong Password", func(t *testing.T) {
		// Arrange
		userService, mockRepo, redisMock := newUserService(t)
		expectAttemptRecorded(redisMock, email, 1)

		mockRepo.On("GetUserByEmail", mock.Anything, email).Return(storedUser, nil).Once()

		// Act
		result, err := userService.LoginUser(ctx, &models.LoginRequest{Email: email, Password: "wrong"})

		// Assert
		assertAppErrorCode(t, err, appErrors.ErrCodeUnauthorized)
		assert.False(t, result.Success)
		assert.Empty(t, result.Token)
		assert.Equal(t, 3, result.RemainingTries)
	})

	t.Run("Failure - Unknown Email Looks The Same", func(t *testing.T) {
		// Arrange
		userService, mockRepo, redisMock := newUserService(t)
		expectAttemptRecorded(redisMock, email, 1)

		mockRepo.On("GetUserByEmail", mock.Anything, email).Return(nil, nil).Once()

		// Act
		result, err := userService.LoginUser(ctx, &models.LoginRequest{Email: email, Password: password})

		// Assert
		assertAppErrorCode(t, err, appErrors.ErrCodeUnauthorized)
		assert.Equal(t, "Invalid email or password", result.Message)
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		// Arrange
		userService, mockRepo, redisMock := newUserService(t)
		key := "login_attempts:" + email

		redisMock.CustomMatch(anyArgs).ExpectZRemRangeByScore(key, "0", "0").SetVal(0)
		redisMock.ExpectZCard(key).SetVal(5)
		redisMock.ExpectZRangeWithScores(key, 0, 0).SetVal([]redis.Z{
			{Score: float64(time.Now().UnixNano()), Member: "1"},
		})

		// Act
		result, err := userService.LoginUser(ctx, &models.LoginRequest{Email: email, Password: password})

		// Assert
		assertAppErrorCode(t, err, appErrors.ErrCodeTooManyRequests)
		assert.False(t, result.Success)
		assert.Positive(t, result.RetryAfter)
		mockRepo.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
	})
}

func TestGetUserProfile(t *testing.T) {
	// Arrange
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		userService, mockRepo, _ := newUserService(t)

		mockRepo.On("GetUserByID", mock.Anything, userID).
			Return(&models.User{ID: userID, Email: "carol@example.com"}, nil).Once()

		// Act
		user, err := userService.GetUserProfile(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "carol@example.com", user.Email)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		userService, mockRepo, _ := newUserService(t)

		mockRepo.On("GetUserByID", mock.Anything, userID).Return(nil, nil).Once()

		// Act
		user, err := userService.GetUserProfile(ctx, userID)

		// Assert
		assert.Nil(t, user)
		assertAppErrorCode(t, err, appErrors.ErrCodeNotFound)
	})
}
