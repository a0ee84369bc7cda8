package service

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/YusovID/service-dispatch/internal/domain"
	"github.com/YusovID/service-dispatch/internal/session"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newMockDBAndTx(t *testing.T) (*sqlx.DB, *sqlx.Tx, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, smock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")

	smock.ExpectBegin()

	tx, err := sqlxDB.Beginx()
	require.NoError(t, err)

	return sqlxDB, tx, smock
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

var fixedNow = time.Date(2030, time.March, 15, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func customerSession() *session.Session {
	return &session.Session{
		UserID:    "customer-1",
		TokenID:   "token-1",
		ExpiresAt: fixedNow.Add(time.Hour),
		Profile: &domain.Profile{
			ID:             "customer-1",
			Role:           domain.RoleCustomer,
			FullName:       "Ayşe Yılmaz",
			Phone:          "5551112233",
			City:           "İstanbul",
			District:       "Kadıköy",
			Neighborhood:   "Moda",
			SiteName:       strPtr("Papatya Sitesi"),
			FloorApartment: "3/7",
		},
	}
}

func providerSession() *session.Session {
	return &session.Session{
		UserID:    "provider-user-1",
		TokenID:   "token-2",
		ExpiresAt: fixedNow.Add(time.Hour),
		Profile:   &domain.Profile{ID: "provider-user-1", Role: domain.RoleProvider, FullName: "Usta Mehmet"},
	}
}
