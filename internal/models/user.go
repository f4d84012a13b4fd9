package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. The username is either chosen by
// the user at registration or defaults to the normalized phone number.
type User struct {
	BaseModel
	Username     string `gorm:"uniqueIndex;size:150" json:"username"`
	Email        string `gorm:"uniqueIndex;size:255" json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	PasswordHash string `json:"-"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`

	Profile        *UserProfile    `gorm:"constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	PasswordResets []PasswordReset `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// FullName joins the stored name parts back together.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// UserProfile extends User with phone identifiers. NormalizedPhone is the
// canonical 233-prefixed form and is the only phone lookup key.
type UserProfile struct {
	BaseModel
	UserID          uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	PhoneNumber     string    `gorm:"size:15" json:"phone_number"`
	NormalizedPhone string    `gorm:"uniqueIndex;size:15" json:"normalized_phone"`
}

// TableName keeps the table name the existing clients know.
func (UserProfile) TableName() string { return "user_profiles" }

// PasswordReset stores a single-use 6-digit reset code. Identifier holds
// whatever the code was requested against: a lower-cased email or a
// normalized phone number.
type PasswordReset struct {
	BaseModel
	UserID     uuid.UUID  `gorm:"type:uuid;index" json:"user_id"`
	ResetCode  string     `gorm:"size:6" json:"-"`
	Identifier string     `gorm:"index;size:255" json:"identifier"`
	IsUsed     bool       `gorm:"default:false" json:"is_used"`
	ExpiresAt  time.Time  `json:"expires_at"`
	UsedAt     *time.Time `json:"used_at"`
	IPAddress  string     `json:"-"`
}

func (PasswordReset) TableName() string { return "password_resets" }

func (r *PasswordReset) expiredAt(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

func (r *PasswordReset) validAt(now time.Time) bool {
	return !r.IsUsed && !r.expiredAt(now)
}

// IsExpired reports whether the code is past its expiry. A code is still
// redeemable at the exact expiry instant.
func (r *PasswordReset) IsExpired() bool {
	return r.expiredAt(time.Now())
}

// IsValid reports whether the code can still be redeemed: unused and not
// past expiry.
func (r *PasswordReset) IsValid() bool {
	return r.validAt(time.Now())
}
