package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/shopwice/internal/config"
)

type recordingNotifier struct {
	codes []string
}

func (n *recordingNotifier) SendResetCode(identifierType, identifier, code string) error {
	n.codes = append(n.codes, code)
	return nil
}

func newMockAuthService(t *testing.T) (*AuthService, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		TranslateError:         true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	cfg := &config.Config{JWTSecret: "test-secret", ResetCodeTTL: 15 * time.Minute}
	return NewAuthService(db, cfg, &recordingNotifier{}), mock
}

func TestRegisterRejectsTakenPhoneNumberInEitherForm(t *testing.T) {
	// Both raw spellings normalize to the same canonical number, so both
	// must collide with an existing profile row for 233501234567.
	rawForms := []string{"0501234567", "+233 50 123 4567"}

	for _, raw := range rawForms {
		t.Run(raw, func(t *testing.T) {
			svc, mock := newMockAuthService(t)

			mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE email = \$1`).
				WithArgs("ama@example.com").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
			mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE username = \$1`).
				WithArgs("233501234567").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
			mock.ExpectQuery(`SELECT count\(\*\) FROM "user_profiles" WHERE normalized_phone = \$1`).
				WithArgs("233501234567").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

			_, err := svc.Register(RegisterInput{
				Email:           "ama@example.com",
				PhoneNumber:     raw,
				FullName:        "Ama Serwaa",
				Password:        "Strongpass1",
				ConfirmPassword: "Strongpass1",
			})
			require.Error(t, err)

			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Contains(t, verrs, "phone_number")
			assert.Contains(t, verrs["phone_number"][0], "already registered")
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestConfirmPasswordResetRejectsRedeemedCode(t *testing.T) {
	svc, mock := newMockAuthService(t)

	// A redeemed code no longer matches the unused-row lookup.
	mock.ExpectQuery(`SELECT \* FROM "password_resets" WHERE identifier = \$1 AND reset_code = \$2 AND is_used = \$3`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.ConfirmPasswordReset(ConfirmPasswordResetInput{
		Identifier:      "0501234567",
		Code:            "123456",
		NewPassword:     "Strongpass1",
		ConfirmPassword: "Strongpass1",
	})
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Contains(t, verrs, NonFieldErrors)
	assert.Contains(t, verrs[NonFieldErrors][0], "Invalid or expired reset code")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmPasswordResetRejectsExpiredCode(t *testing.T) {
	svc, mock := newMockAuthService(t)

	rows := sqlmock.NewRows([]string{"id", "user_id", "reset_code", "identifier", "is_used", "expires_at"}).
		AddRow(uuid.NewString(), uuid.NewString(), "123456", "233501234567", false, time.Now().Add(-time.Minute))
	mock.ExpectQuery(`SELECT \* FROM "password_resets" WHERE identifier = \$1 AND reset_code = \$2 AND is_used = \$3`).
		WillReturnRows(rows)

	_, err := svc.ConfirmPasswordReset(ConfirmPasswordResetInput{
		Identifier:      "0501234567",
		Code:            "123456",
		NewPassword:     "Strongpass1",
		ConfirmPassword: "Strongpass1",
	})
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Contains(t, verrs, NonFieldErrors)
	assert.Contains(t, verrs[NonFieldErrors][0], "expired")
	assert.NoError(t, mock.ExpectationsWereMet())
}
