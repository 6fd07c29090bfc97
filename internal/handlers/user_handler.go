package handlers

import (
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for accounts: registration, the
// token lifecycle and account administration.
type UserHandler struct {
	authService *services.AuthService
	userService *services.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService, userService *services.UserService) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes. auth is the bearer-token
// middleware applied to the protected subset.
func (h *UserHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	users := router.Group("/users")
	users.Post("/register", h.HandleRegister)
	users.Post("/login", h.HandleLogin)
	users.Post("/refresh", h.HandleRefresh)
	users.Post("/logout", auth, h.HandleLogout)
	users.Get("/", auth, middleware.RequireRoles(models.RoleAdmin), h.HandleGetUsers)
	users.Put("/update/:id", auth, h.HandleUpdateUser)
	users.Delete("/delete/:id", auth, middleware.RequireRoles(models.RoleAdmin), h.HandleDeleteUser)
}

// RegisterRequest is the request body for registration.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"firstName" validate:"required,min=2,max=50"`
	LastName  string `json:"lastName" validate:"required,min=2,max=50"`
	Role      string `json:"role" validate:"omitempty,oneof=user admin"`
}

// HandleRegister handles new user registration.
func (h *UserHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email, password, first name and last name should be submitted",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	user, err := h.authService.Register(req.Email, req.Password, req.FirstName, req.LastName, req.Role)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    user,
	})
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin verifies credentials and issues a token pair.
func (h *UserHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	accessToken, refreshToken, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":      "Login successful",
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"user":         user,
	})
}

// RefreshRequest is the request body for token refresh.
type RefreshRequest struct {
	Token string `json:"token" validate:"required"`
}

// HandleRefresh exchanges a valid refresh token for a new access token.
func (h *UserHandler) HandleRefresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	accessToken, err := h.authService.Refresh(req.Token)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"accessToken": accessToken,
	})
}

// HandleLogout invalidates the caller's stored refresh token.
func (h *UserHandler) HandleLogout(c *fiber.Ctx) error {
	if err := h.authService.Logout(middleware.CallerID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleGetUsers lists all users. Password hashes never serialize.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// UpdateUserRequest is the request body for a partial profile update.
type UpdateUserRequest struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password"`
	FirstName *string `json:"firstName" validate:"omitempty,min=2,max=50"`
	LastName  *string `json:"lastName" validate:"omitempty,min=2,max=50"`
	Role      *string `json:"role" validate:"omitempty,oneof=user admin"`
}

// HandleUpdateUser applies a partial update to a user's profile.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	user, err := h.userService.UpdateUser(
		middleware.CallerID(c), middleware.CallerRole(c), c.Params("id"),
		services.UserUpdate{
			Email:     req.Email,
			Password:  req.Password,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Role:      req.Role,
		})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"user":    user,
	})
}

// HandleDeleteUser deletes a user by id.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.userService.DeleteUser(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Deleted user of id " + id,
	})
}
