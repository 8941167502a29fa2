package services_test

import (
	"testing"
	"time"

	"github.com/nimamdd/medident/internal/models"
	"github.com/nimamdd/medident/internal/repository"
	"github.com/nimamdd/medident/internal/services"

	"github.com/stretchr/testify/require"
)

func TestSaleDate_NormalizesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("IRST", int((3*time.Hour + 30*time.Minute).Seconds()))
	ts := time.Date(2024, 5, 12, 1, 15, 0, 0, loc) // 2024-05-11 21:45 UTC

	day := services.SaleDate(ts)
	require.Equal(t, time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC), day)
}

func TestRecordSale_AccumulatesPerDay(t *testing.T) {
	store := newFakeStore()
	svc := services.NewSalesService(store)

	day1 := time.Date(2024, 5, 11, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 5, 12, 9, 0, 0, 0, time.UTC)

	orders := []*models.Order{
		{AmountToman: 100000, CreatedAt: day1},
		{AmountToman: 250000, CreatedAt: day1},
		{AmountToman: 400000, CreatedAt: day2},
	}
	for _, order := range orders {
		require.NoError(t, store.Transaction(func(tx repository.Store) error {
			return svc.RecordSale(tx, order)
		}))
	}

	rows, err := svc.GetDailySales()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Newest first.
	require.Equal(t, services.SaleDate(day2), rows[0].Date)
	require.Equal(t, int64(400000), rows[0].TotalToman)
	require.Equal(t, int64(1), rows[0].OrderCount)

	require.Equal(t, services.SaleDate(day1), rows[1].Date)
	require.Equal(t, int64(350000), rows[1].TotalToman)
	require.Equal(t, int64(2), rows[1].OrderCount)
}
