package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/shopwice/internal/config"
	"github.com/example/shopwice/internal/models"
	"github.com/example/shopwice/internal/services"
	"github.com/example/shopwice/internal/utils"
)

// AuthHandler bundles dependencies for authentication endpoints.
type AuthHandler struct {
	svc *services.AuthService
	cfg *config.Config
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(svc *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{svc: svc, cfg: cfg}
}

type registerRequest struct {
	Email           string `json:"email"`
	PhoneNumber     string `json:"phone_number"`
	Username        string `json:"username"`
	FullName        string `json:"full_name"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func userPayload(user *models.User) fiber.Map {
	return fiber.Map{
		"user_id":   user.ID,
		"username":  user.Username,
		"email":     user.Email,
		"full_name": user.FullName(),
	}
}

func (h *AuthHandler) issueTokens(user *models.User) (utils.TokenPair, error) {
	return utils.GenerateTokenPair(h.cfg.JWTSecret, user.ID, h.cfg.AccessTokenTTL, h.cfg.RefreshTokenTTL)
}

// Register creates a new account and returns a fresh token pair.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.svc.Register(services.RegisterInput{
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
		Username:        req.Username,
		FullName:        req.FullName,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return respondError(c, "Registration failed.", err)
	}

	tokens, err := h.issueTokens(user)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User registered successfully",
		"data":    userPayload(user),
		"tokens":  tokens,
	})
}

type loginRequest struct {
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

// Login authenticates with email or phone number and mints a new token
// pair.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.svc.Login(services.LoginInput{
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		return respondError(c, "Login failed.", err)
	}

	tokens, err := h.issueTokens(user)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"data":    userPayload(user),
		"tokens":  tokens,
	})
}
