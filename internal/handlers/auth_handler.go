package handlers

import (
	"errors"
	"log"

	"pena/internal/models"
	"pena/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
// auth guards the routes that require a verified token.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Get("/profile", auth, h.HandleGetProfile)
	authRoutes.Put("/profile", auth, h.HandleUpdateProfile)
	authRoutes.Put("/change-password", auth, h.HandleChangePassword)
	authRoutes.Post("/logout", auth, h.HandleLogout)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  formatValidationErrors(err),
		})
	}

	user, token, err := h.authService.Register(req)
	if err != nil {
		return respondDomainError(c, err, "Could not register user")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    userResponse(user),
		"token":   token,
	})
}

// HandleLogin handles user login by username or email and issues a token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  formatValidationErrors(err),
		})
	}

	user, token, err := h.authService.Login(req.Identifier, req.Password)
	if err != nil {
		log.Printf("Login failed for %s: %v", req.Identifier, err)
		return respondDomainError(c, err, "Could not log in")
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    userResponse(user),
		"token":   token,
	})
}

// HandleGetProfile returns the authenticated user's profile.
func (h *AuthHandler) HandleGetProfile(c *fiber.Ctx) error {
	user, err := h.authService.GetProfile(userID(c))
	if err != nil {
		return respondDomainError(c, err, "Could not fetch profile")
	}
	return c.JSON(fiber.Map{
		"user": userResponse(user),
	})
}

// HandleUpdateProfile updates the authenticated user's mutable fields.
func (h *AuthHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  formatValidationErrors(err),
		})
	}

	user, err := h.authService.UpdateProfile(userID(c), req)
	if err != nil {
		return respondDomainError(c, err, "Could not update profile")
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    userResponse(user),
	})
}

// HandleChangePassword verifies the current password and stores the new
// one. A wrong current password is a payload defect, not an auth failure.
func (h *AuthHandler) HandleChangePassword(c *fiber.Ctx) error {
	var req models.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  formatValidationErrors(err),
		})
	}

	if err := h.authService.ChangePassword(userID(c), req); err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Current password is incorrect",
			})
		}
		return respondDomainError(c, err, "Could not change password")
	}

	return c.JSON(fiber.Map{
		"message": "Password changed successfully",
	})
}

// HandleLogout acknowledges logout. Tokens are stateless; the client
// discards its copy.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Logout successful",
	})
}

// userResponse is the outward shape of a user. The password digest never
// leaves the server; fullName is derived.
func userResponse(user *models.User) fiber.Map {
	return fiber.Map{
		"id":           user.ID,
		"username":     user.Username,
		"email":        user.Email,
		"firstName":    user.FirstName,
		"lastName":     user.LastName,
		"fullName":     user.FullName(),
		"role":         user.Role,
		"profileImage": user.ProfileImage,
		"bio":          user.Bio,
		"createdAt":    user.CreatedAt,
		"updatedAt":    user.UpdatedAt,
	}
}
