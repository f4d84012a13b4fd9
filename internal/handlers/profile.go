package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/shopwice/internal/middleware"
	"github.com/example/shopwice/internal/models"
	"github.com/example/shopwice/internal/services"
)

// ProfileHandler manages the authenticated user's own account view.
type ProfileHandler struct {
	db  *gorm.DB
	svc *services.AuthService
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(db *gorm.DB, svc *services.AuthService) *ProfileHandler {
	return &ProfileHandler{db: db, svc: svc}
}

// GetProfile returns the authenticated user's account and phone profile.
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	user, err := h.svc.GetUser(userID)
	if err != nil {
		return err
	}

	payload := fiber.Map{
		"user_id":    user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"full_name":  user.FullName(),
		"is_active":  user.IsActive,
		"created_at": user.CreatedAt,
		"updated_at": user.UpdatedAt,
	}
	if user.Profile != nil {
		payload["phone_number"] = user.Profile.PhoneNumber
		payload["normalized_phone"] = user.Profile.NormalizedPhone
	}

	return c.JSON(fiber.Map{"success": true, "data": payload})
}

type updateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UpdateProfile updates the user's name parts.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{}
	if req.FirstName != "" {
		updates["first_name"] = req.FirstName
	}
	if req.LastName != "" {
		updates["last_name"] = req.LastName
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "nothing to update")
	}

	if err := h.db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		return err
	}

	return h.GetProfile(c)
}
