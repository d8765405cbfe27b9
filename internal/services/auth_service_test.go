package services_test

import (
	"fmt"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"pena/internal/models"
	"pena/internal/services"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

// TestMain suppresses logging during tests for cleaner output.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

const testJWTSecret = "test_jwt_secret"

func newRegisterRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Username:  "testuser",
		Email:     "Test@Example.com",
		Password:  "password123",
		FirstName: "Test",
		LastName:  "User",
	}
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)

	req := newRegisterRequest()

	mockRepo.On("GetByUsername", "testuser").Return(nil, models.ErrNotFound).Once()
	mockRepo.On("GetByEmail", "test@example.com").Return(nil, models.ErrNotFound).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		args.Get(0).(*models.User).ID = "user-123"
	}).Return(nil).Once()

	user, token, err := authService.Register(req)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	mockRepo.AssertExpectations(t)

	// Email is stored lowercased, the digest never equals the plaintext.
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, req.Password, user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)))

	// Decoded claims match the stored user.
	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "testuser", claims.Username)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestAuthService_Register_Conflicts(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)
	req := newRegisterRequest()

	// Username already taken.
	mockRepo.On("GetByUsername", "testuser").Return(&models.User{ID: "1"}, nil).Once()
	_, _, err := authService.Register(req)
	assert.ErrorIs(t, err, models.ErrConflict)

	// Email already registered.
	mockRepo.On("GetByUsername", "testuser").Return(nil, models.ErrNotFound).Once()
	mockRepo.On("GetByEmail", "test@example.com").Return(&models.User{ID: "1"}, nil).Once()
	_, _, err = authService.Register(req)
	assert.ErrorIs(t, err, models.ErrConflict)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_PasswordHashing(t *testing.T) {
	plaintext := "password123"
	first, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	assert.NoError(t, err)
	second, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	assert.NoError(t, err)

	// Random per-call salt: same plaintext, different digests, both verify.
	assert.NotEqual(t, string(first), string(second))
	assert.NoError(t, bcrypt.CompareHashAndPassword(first, []byte(plaintext)))
	assert.NoError(t, bcrypt.CompareHashAndPassword(second, []byte(plaintext)))

	// Mutated plaintext and mutated digest both fail, without panicking.
	assert.Error(t, bcrypt.CompareHashAndPassword(first, []byte("password124")))
	mutated := append([]byte{}, first...)
	mutated[len(mutated)-1] ^= 0x01
	assert.Error(t, bcrypt.CompareHashAndPassword(mutated, []byte(plaintext)))
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Email:    "test@example.com",
		Password: string(hashed),
		Role:     models.RoleUser,
		IsActive: true,
	}

	// Login by username.
	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Once()
	_, token, err := authService.Login("testuser", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Username, claims.Username)

	// Login by email falls back when the username lookup misses.
	mockRepo.On("GetByUsername", "Test@Example.com").Return(nil, models.ErrNotFound).Once()
	mockRepo.On("GetByEmail", "test@example.com").Return(user, nil).Once()
	_, token, err = authService.Login("Test@Example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// Wrong password.
	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Once()
	_, _, err = authService.Login("testuser", "wrongpassword")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	// Unknown identifier yields the same generic failure.
	mockRepo.On("GetByUsername", "nobody").Return(nil, models.ErrNotFound).Once()
	mockRepo.On("GetByEmail", "nobody").Return(nil, models.ErrNotFound).Once()
	_, _, err = authService.Login("nobody", "password123")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	// Deactivated account.
	disabled := *user
	disabled.IsActive = false
	mockRepo.On("GetByUsername", "testuser").Return(&disabled, nil).Once()
	_, _, err = authService.Login("testuser", "password123")
	assert.ErrorIs(t, err, models.ErrAccountDisabled)

	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)

	user := &models.User{ID: "user-123", Username: "testuser", Email: "test@example.com", Role: models.RoleAdmin}
	token, err := authService.GenerateToken(user)
	assert.NoError(t, err)

	// Verification is idempotent: same token, identical claims.
	first, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	second, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, models.RoleAdmin, first.Role)

	// Garbage token.
	_, err = authService.ValidateToken("invalid.token.string")
	assert.ErrorIs(t, err, models.ErrTokenInvalid)

	// Token signed with a different secret.
	other := services.NewAuthService(mockRepo, "another_secret", time.Hour)
	foreign, err := other.GenerateToken(user)
	assert.NoError(t, err)
	_, err = authService.ValidateToken(foreign)
	assert.ErrorIs(t, err, models.ErrTokenInvalid)

	// Expired token fails with the expiry error, not the generic one.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, services.Claims{
		UserID:   "user-123",
		Username: "testuser",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	expiredString, err := expired.SignedString([]byte(testJWTSecret))
	assert.NoError(t, err)
	_, err = authService.ValidateToken(expiredString)
	assert.ErrorIs(t, err, models.ErrTokenExpired)
}

func TestAuthService_ChangePassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("oldpassword"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-123", Username: "testuser", Password: string(hashed), IsActive: true}

	// Wrong current password: nothing is written.
	mockRepo.On("GetByID", "user-123").Return(user, nil).Once()
	err := authService.ChangePassword("user-123", models.ChangePasswordRequest{
		CurrentPassword: "nottheone",
		NewPassword:     "newpassword",
	})
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)

	// Correct current password: the stored digest changes.
	mockRepo.On("GetByID", "user-123").Return(user, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()
	err = authService.ChangePassword("user-123", models.ChangePasswordRequest{
		CurrentPassword: "oldpassword",
		NewPassword:     "newpassword",
	})
	assert.NoError(t, err)
	assert.NotEqual(t, "newpassword", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("newpassword")))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)

	user := &models.User{ID: "user-123", FirstName: "Old", LastName: "Name", Bio: "old bio"}
	bio := "new bio"

	mockRepo.On("GetByID", "user-123").Return(user, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()

	updated, err := authService.UpdateProfile("user-123", models.UpdateProfileRequest{
		FirstName: "New",
		Bio:       &bio,
	})
	assert.NoError(t, err)
	assert.Equal(t, "New", updated.FirstName)
	assert.Equal(t, "Name", updated.LastName) // untouched
	assert.Equal(t, "new bio", updated.Bio)
	assert.Equal(t, "New Name", updated.FullName())
	mockRepo.AssertExpectations(t)
}

func TestAuthService_GetProfile_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)

	mockRepo.On("GetByID", "ghost").Return(nil, fmt.Errorf("%w: user with ID ghost", models.ErrNotFound)).Once()
	_, err := authService.GetProfile("ghost")
	assert.ErrorIs(t, err, models.ErrNotFound)
	mockRepo.AssertExpectations(t)
}
