//go:build integration

package postgres

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/YusovID/service-dispatch/internal/apperrors"
	"github.com/YusovID/service-dispatch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestRepository_GenerateTrackingNumber(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	repo := NewRequestRepository(testDB, logger)
	ctx := context.Background()

	first, err := repo.GenerateTrackingNumber(ctx)
	require.NoError(t, err)
	second, err := repo.GenerateTrackingNumber(ctx)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(first, "360TS"))
	assert.Len(t, first, len("360TS")+6+6)
	assert.NotEqual(t, first, second)
}

func TestRequestRepository_CreateRequest(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	f := seedFixture(t)
	repo := NewRequestRepository(testDB, logger)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		created := createRequest(t, f, "360TS300315000001")

		assert.Equal(t, domain.StatusPending, created.Status)
		assert.Nil(t, created.ProviderID)
		assert.Equal(t, f.customer.ID, created.CustomerID)
		assert.Equal(t, "Kadıköy", created.Address.District)
		require.NotNil(t, created.Address.SiteName)
		assert.Equal(t, "Papatya Sitesi", *created.Address.SiteName)
		assert.Nil(t, created.Address.Block)

		appt := created.AppointmentDate.UTC()
		assert.Equal(t, 2030, appt.Year())
		assert.Equal(t, time.March, appt.Month())
		assert.Equal(t, 15, appt.Day())

		exists, err := repo.TrackingNumberExists(ctx, "360TS300315000001")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.TrackingNumberExists(ctx, "360TS300315999999")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Failure: duplicate tracking number", func(t *testing.T) {
		_, err := repo.CreateRequest(ctx, domain.NewRequest{
			TrackingNumber: "360TS300315000001",
			CustomerID:     f.customer.ID,
			CategoryID:     f.category.ID,
			Group:          domain.GroupHomeOffice,
			Description:    "ikinci",
			Appointment:    "16.03.2030 10:00:00",
			Address:        f.customer.AddressSnapshot(),
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	})

	t.Run("Failure: appointment rejected by the store", func(t *testing.T) {
		_, err := repo.CreateRequest(ctx, domain.NewRequest{
			TrackingNumber: "360TS300315000002",
			CustomerID:     f.customer.ID,
			CategoryID:     f.category.ID,
			Group:          domain.GroupHomeOffice,
			Description:    "geçersiz tarih",
			Appointment:    "yarın öğlen:00",
			Address:        f.customer.AddressSnapshot(),
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidAppointment)
	})

	t.Run("Failure: other data errors keep their cause", func(t *testing.T) {
		_, err := repo.CreateRequest(ctx, domain.NewRequest{
			TrackingNumber: "360TS300315000003",
			CustomerID:     f.customer.ID,
			CategoryID:     f.category.ID,
			Group:          domain.GroupHomeOffice,
			Description:    "priz\x00bozuk",
			Appointment:    "16.03.2030 10:00:00",
			Address:        f.customer.AddressSnapshot(),
		})
		require.Error(t, err)
		assert.NotErrorIs(t, err, apperrors.ErrInvalidAppointment)
	})
}

func TestRequestRepository_ListProviderQueue(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	f := seedFixture(t)
	repo := NewRequestRepository(testDB, logger)
	ctx := context.Background()

	mine := createRequest(t, f, "360TS300315000010")
	open := createRequest(t, f, "360TS300315000011")

	_, err := repo.ClaimRequest(ctx, mine.ID, f.company.ID)
	require.NoError(t, err)

	queue, err := repo.ListProviderQueue(ctx, f.company.ID)
	require.NoError(t, err)
	require.Len(t, queue, 2)
	assert.Equal(t, open.ID, queue[0].ID, "newest first")
	assert.Equal(t, mine.ID, queue[1].ID)

	customerRequests, err := repo.ListRequestsByCustomer(ctx, f.customer.ID)
	require.NoError(t, err)
	assert.Len(t, customerRequests, 2)

	none, err := repo.ListRequestsByCustomer(ctx, f.provider.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRequestRepository_ClaimRequest(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	f := seedFixture(t)
	repo := NewRequestRepository(testDB, logger)
	ctx := context.Background()

	req := createRequest(t, f, "360TS300315000020")

	claimed, err := repo.ClaimRequest(ctx, req.ID, f.company.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAssigned, claimed.Status)
	require.NotNil(t, claimed.ProviderID)
	assert.Equal(t, f.company.ID, *claimed.ProviderID)

	_, err = repo.ClaimRequest(ctx, req.ID, f.company.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyClaimed)

	_, err = repo.ClaimRequest(ctx, "00000000-0000-0000-0000-000000000000", f.company.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRequestRepository_ClaimRequest_Concurrent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	f := seedFixture(t)
	repo := NewRequestRepository(testDB, logger)
	req := createRequest(t, f, "360TS300315000030")

	const claimers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		wins    int
		claimed int
	)

	for i := 0; i < claimers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := repo.ClaimRequest(context.Background(), req.ID, f.company.ID)

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				wins++
			} else if assert.ErrorIs(t, err, apperrors.ErrAlreadyClaimed) {
				claimed++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, claimers-1, claimed)
}

func TestRequestRepository_StatusTransitions(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	f := seedFixture(t)
	repo := NewRequestRepository(testDB, logger)
	paymentRepo := NewPaymentRepository(testDB, logger)
	providerRepo := NewProviderRepository(testDB)
	ctx := context.Background()

	req := createRequest(t, f, "360TS300315000040")
	_, err := repo.ClaimRequest(ctx, req.ID, f.company.ID)
	require.NoError(t, err)

	tx, err := testDB.BeginTxx(ctx, nil)
	require.NoError(t, err)

	locked, err := repo.GetRequestByIDWithLock(ctx, tx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAssigned, locked.Status)

	err = repo.UpdateRequestStatus(ctx, tx, req.ID, domain.StatusPending, domain.StatusInProgress)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	require.NoError(t, repo.UpdateRequestStatus(ctx, tx, req.ID, domain.StatusAssigned, domain.StatusInProgress))

	err = repo.CompleteRequest(ctx, tx, req.ID)
	assert.ErrorIs(t, err, apperrors.ErrPaymentRequired, "no payment row yet")

	_, err = paymentRepo.CreatePayment(ctx, tx, req.ID, domain.Quote{ServiceFee: money("100"), LaborCost: money("50"), MaterialCost: money("25")})
	require.NoError(t, err)

	require.NoError(t, repo.CompleteRequest(ctx, tx, req.ID))
	require.NoError(t, providerRepo.IncrementCompleted(ctx, tx, f.company.ID))
	require.NoError(t, tx.Commit())

	got, err := repo.GetRequestByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, got.Status)

	company, err := providerRepo.GetProviderByUserID(ctx, f.provider.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, company.TotalServices)
}
