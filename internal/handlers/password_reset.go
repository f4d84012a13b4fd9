package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/example/shopwice/internal/services"
)

// PasswordResetHandler manages the two-step password-reset flow.
type PasswordResetHandler struct {
	svc *services.AuthService
}

// NewPasswordResetHandler constructs a PasswordResetHandler.
func NewPasswordResetHandler(svc *services.AuthService) *PasswordResetHandler {
	return &PasswordResetHandler{svc: svc}
}

type resetRequestBody struct {
	ResetIdentifier string `json:"reset_identifier"`
}

// Request creates a reset code for the account matching the identifier
// and hands it to the out-of-band delivery channel.
func (h *PasswordResetHandler) Request(c *fiber.Ctx) error {
	var req resetRequestBody
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	identifierType, err := h.svc.RequestPasswordReset(req.ResetIdentifier, c.IP())
	if err != nil {
		return respondError(c, "Password reset request failed.", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Reset code sent to your %s.", identifierType),
		"detail":  "Reset code sent.",
	})
}

type resetConfirmBody struct {
	ResetIdentifier string `json:"reset_identifier"`
	ResetCode       string `json:"reset_code"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Confirm redeems a reset code and sets the new password.
func (h *PasswordResetHandler) Confirm(c *fiber.Ctx) error {
	var req resetConfirmBody
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	_, err := h.svc.ConfirmPasswordReset(services.ConfirmPasswordResetInput{
		Identifier:      req.ResetIdentifier,
		Code:            req.ResetCode,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return respondError(c, "Password reset failed.", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"detail":  "Password reset successful",
	})
}
