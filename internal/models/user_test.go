package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPasswordResetValidity(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		isUsed    bool
		expiresAt time.Time
		valid     bool
	}{
		{"unused and unexpired", false, now.Add(15 * time.Minute), true},
		{"unused but expired", false, now.Add(-time.Minute), false},
		{"used but unexpired", true, now.Add(15 * time.Minute), false},
		{"used and expired", true, now.Add(-time.Minute), false},
		{"redeemable at the exact expiry instant", false, now, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reset := PasswordReset{IsUsed: tt.isUsed, ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.valid, reset.validAt(now))
		})
	}
}

func TestPasswordResetExpiredAt(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	reset := PasswordReset{ExpiresAt: now}

	assert.False(t, reset.expiredAt(now))
	assert.False(t, reset.expiredAt(now.Add(-time.Second)))
	assert.True(t, reset.expiredAt(now.Add(time.Nanosecond)))
}

func TestUserFullName(t *testing.T) {
	u := User{FirstName: "Kwame", LastName: "Mensah"}
	assert.Equal(t, "Kwame Mensah", u.FullName())

	single := User{FirstName: "Kwame"}
	assert.Equal(t, "Kwame", single.FullName())
}
