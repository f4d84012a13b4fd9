package services

import (
	"crypto/rand"
	"errors"
	"log"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/shopwice/internal/config"
	"github.com/example/shopwice/internal/models"
	"github.com/example/shopwice/internal/phone"
	"github.com/example/shopwice/internal/utils"
)

// AuthService implements the account use cases: registration, login and
// the two password-reset steps. Each mutating use case runs inside its
// own transaction so its writes land atomically.
type AuthService struct {
	db       *gorm.DB
	cfg      *config.Config
	notifier Notifier
}

// NewAuthService constructs an AuthService.
func NewAuthService(db *gorm.DB, cfg *config.Config, notifier Notifier) *AuthService {
	return &AuthService{db: db, cfg: cfg, notifier: notifier}
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Email           string
	PhoneNumber     string
	Username        string
	FullName        string
	Password        string
	ConfirmPassword string
}

// SplitFullName splits a full name on the first space into first and
// last name; a single word becomes the first name.
func SplitFullName(fullName string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(fullName), " ", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return parts[0], ""
}

// Register validates the input, then atomically creates the user and its
// profile. The username defaults to the normalized phone number when not
// provided. Uniqueness is pre-checked for friendly field errors and
// backstopped by database unique constraints on insert.
func (s *AuthService) Register(in RegisterInput) (*models.User, error) {
	errs := ValidationErrors{}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		errs.Add("email", "Email address is required.")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Please enter a valid email address.")
	}

	normalizedPhone, phoneErr := phone.Normalize(in.PhoneNumber)
	if phoneErr != nil {
		errs.Add("phone_number", phoneErr.Error())
	}

	username := strings.TrimSpace(in.Username)
	if username != "" && len(username) < 3 {
		errs.Add("username", "Username must be at least 3 characters long.")
	}

	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		errs.Add("full_name", "Full name is required.")
	} else if len(fullName) < 2 {
		errs.Add("full_name", "Full name must be at least 2 characters long.")
	}

	if in.Password == "" {
		errs.Add("password", "Password is required.")
	} else if err := ValidatePasswordStrength(in.Password); err != nil {
		errs.Add("password", err.Error())
	}
	if in.Password != in.ConfirmPassword {
		errs.Add("confirm_password", "Passwords don't match. Please make sure both password fields are identical.")
	}

	if errs.Has() {
		return nil, errs
	}

	if username == "" {
		username = normalizedPhone
	}

	// Friendly per-field duplicate messages; the unique indexes catch
	// whatever slips through the check-then-create window.
	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		errs.Add("email", "An account with this email address already exists. Please use a different email or try logging in.")
	}
	if err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		if strings.TrimSpace(in.Username) != "" {
			errs.Add("username", "This username is already taken. Please choose a different username.")
		} else {
			errs.Add("phone_number", "This phone number is already registered. Please use a different number or try logging in.")
		}
	}
	if err := s.db.Model(&models.UserProfile{}).Where("normalized_phone = ?", normalizedPhone).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		errs.Add("phone_number", "This phone number is already registered. Please use a different number or try logging in.")
	}
	if errs.Has() {
		return nil, errs
	}

	passwordHash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	firstName, lastName := SplitFullName(fullName)
	user := models.User{
		Username:     username,
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: passwordHash,
		IsActive:     true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := models.UserProfile{
			UserID:          user.ID,
			PhoneNumber:     strings.TrimSpace(in.PhoneNumber),
			NormalizedPhone: normalizedPhone,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, FieldError(NonFieldErrors, "An account with this email, username or phone number already exists.")
		}
		return nil, err
	}

	return &user, nil
}

// LoginInput carries the login form fields. Exactly one of Email and
// PhoneNumber must be set.
type LoginInput struct {
	Email       string
	PhoneNumber string
	Password    string
}

// Login resolves the account by email or normalized phone and verifies
// the password. Token issuance is left to the caller so every successful
// login mints a fresh pair.
func (s *AuthService) Login(in LoginInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	phoneNumber := strings.TrimSpace(in.PhoneNumber)

	if email == "" && phoneNumber == "" {
		return nil, FieldError(NonFieldErrors, "Please provide either email or phone number to log in")
	}
	if email != "" && phoneNumber != "" {
		return nil, FieldError(NonFieldErrors, "Please use either email or phone number, not both.")
	}
	if in.Password == "" {
		return nil, FieldError("password", "Password is required.")
	}

	var user models.User
	if email != "" {
		if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, FieldError("email", "No account found with this email address.")
			}
			return nil, err
		}
	} else {
		normalized, err := phone.Normalize(phoneNumber)
		if err != nil {
			return nil, FieldError("phone_number", err.Error())
		}
		var profile models.UserProfile
		if err := s.db.Where("normalized_phone = ?", normalized).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, FieldError("phone_number", "No account found with this phone number.")
			}
			return nil, err
		}
		if err := s.db.First(&user, "id = ?", profile.UserID).Error; err != nil {
			return nil, err
		}
	}

	if !utils.CheckPassword(user.PasswordHash, in.Password) {
		return nil, FieldError("password", "Incorrect password.")
	}
	if !user.IsActive {
		return nil, FieldError(NonFieldErrors, "Account is disabled.")
	}

	return &user, nil
}

// RequestPasswordReset classifies the identifier, resolves the account
// and creates a fresh reset code delivered out of band. The returned
// string names the channel used, "email" or "phone".
func (s *AuthService) RequestPasswordReset(identifier, ipAddress string) (string, error) {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return "", FieldError("reset_identifier", "Email or phone number is required.")
	}

	var user models.User
	var storedIdentifier, identifierType string

	if phone.IsEmail(trimmed) {
		identifierType = "email"
		storedIdentifier = strings.ToLower(trimmed)
		if err := s.db.Where("email = ?", storedIdentifier).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", FieldError("reset_identifier", "No account found with this email address. Please check your email or register for a new account.")
			}
			return "", err
		}
	} else {
		identifierType = "phone"
		normalized, err := phone.Normalize(trimmed)
		if err != nil {
			return "", FieldError("reset_identifier", "Invalid phone number format. Please use format like 0501234567 or +233501234567.")
		}
		storedIdentifier = normalized
		var profile models.UserProfile
		if err := s.db.Where("normalized_phone = ?", normalized).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", FieldError("reset_identifier", "No account found with this phone number. Please check your phone number or register for a new account.")
			}
			return "", err
		}
		if err := s.db.First(&user, "id = ?", profile.UserID).Error; err != nil {
			return "", err
		}
	}

	code, err := generateResetCode()
	if err != nil {
		return "", err
	}

	reset := models.PasswordReset{
		UserID:     user.ID,
		ResetCode:  code,
		Identifier: storedIdentifier,
		ExpiresAt:  time.Now().Add(s.cfg.ResetCodeTTL),
		IPAddress:  ipAddress,
	}
	if err := s.db.Create(&reset).Error; err != nil {
		return "", err
	}

	// Delivery failure is logged, not surfaced: the code row exists and
	// the caller already gets a generic success message.
	if err := s.notifier.SendResetCode(identifierType, storedIdentifier, code); err != nil {
		log.Printf("reset code delivery failed for %s %s: %v", identifierType, storedIdentifier, err)
	}

	return identifierType, nil
}

// ConfirmPasswordResetInput carries the reset confirmation form fields.
type ConfirmPasswordResetInput struct {
	Identifier      string
	Code            string
	NewPassword     string
	ConfirmPassword string
}

// ConfirmPasswordReset redeems a reset code. The credential update and
// the used-marking of the code commit in the same transaction, so there
// is no state where the password changed but the code is still unused.
func (s *AuthService) ConfirmPasswordReset(in ConfirmPasswordResetInput) (*models.User, error) {
	errs := ValidationErrors{}

	identifier := strings.TrimSpace(in.Identifier)
	code := strings.TrimSpace(in.Code)
	if identifier == "" {
		errs.Add("reset_identifier", "Email or phone number is required.")
	}
	if code == "" {
		errs.Add("reset_code", "Reset code is required.")
	}
	if in.NewPassword == "" {
		errs.Add("new_password", "New password is required.")
	} else if err := ValidatePasswordStrength(in.NewPassword); err != nil {
		errs.Add("new_password", err.Error())
	}
	if in.ConfirmPassword == "" {
		errs.Add("confirm_password", "Password confirmation is required.")
	} else if in.NewPassword != "" && in.NewPassword != in.ConfirmPassword {
		errs.Add("confirm_password", "Passwords don't match. Please make sure both password fields are identical.")
	}
	if errs.Has() {
		return nil, errs
	}

	var lookup string
	if phone.IsEmail(identifier) {
		lookup = strings.ToLower(identifier)
	} else {
		normalized, err := phone.Normalize(identifier)
		if err != nil {
			return nil, FieldError("reset_identifier", "Invalid phone number format. Please use format like 0501234567 or +233501234567.")
		}
		lookup = normalized
	}

	var reset models.PasswordReset
	err := s.db.Where("identifier = ? AND reset_code = ? AND is_used = ?", lookup, code, false).
		Order("created_at desc").
		First(&reset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, FieldError(NonFieldErrors, "Invalid or expired reset code. Please request a new password reset.")
		}
		return nil, err
	}
	if !reset.IsValid() {
		return nil, FieldError(NonFieldErrors, "This reset code has expired. Please request a new password reset.")
	}

	passwordHash, err := utils.HashPassword(in.NewPassword)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", reset.UserID).Error; err != nil {
			return err
		}
		if err := tx.Model(&user).Update("password_hash", passwordHash).Error; err != nil {
			return err
		}
		now := time.Now()
		return tx.Model(&reset).Updates(map[string]interface{}{
			"is_used": true,
			"used_at": &now,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUser loads a user by ID together with its profile.
func (s *AuthService) GetUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Profile").First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func generateResetCode() (string, error) {
	const digits = "0123456789"
	code := make([]byte, 6)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		code[i] = digits[n.Int64()]
	}
	return string(code), nil
}
