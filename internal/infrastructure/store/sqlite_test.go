package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealscout/backend/internal/domain"
)

func openTestLedger(t *testing.T) *SQLiteLedger {
	t.Helper()
	ledger, err := Open(filepath.Join(t.TempDir(), "prices.db"))
	require.NoError(t, err)
	t.Cleanup(func() { ledger.Close() })
	return ledger
}

func testOffer(name string, price float64, source string) domain.Offer {
	return domain.Offer{
		ProductName: name,
		Price:       price,
		Source:      source,
		URL:         "https://example.com/p/1",
		ObservedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRecordIfBetter(t *testing.T) {
	ledger := openTestLedger(t)
	ctx := context.Background()

	t.Run("price only ever decreases", func(t *testing.T) {
		updates := 0
		for _, price := range []float64{500, 700, 300, 400} {
			updated, err := ledger.RecordIfBetter(ctx, testOffer("Laptop X", price, "Amazon Egypt"))
			require.NoError(t, err)
			if updated {
				updates++
			}
		}

		assert.Equal(t, 2, updates, "only 500 (first) and 300 (cheaper) should update")

		record, err := ledger.BestPrice(ctx, "Laptop X")
		require.NoError(t, err)
		assert.Equal(t, 300.0, record.Price)
	})

	t.Run("equal price does not update", func(t *testing.T) {
		updated, err := ledger.RecordIfBetter(ctx, testOffer("Laptop X", 300, "Noon Egypt"))
		require.NoError(t, err)
		assert.False(t, updated)

		record, err := ledger.BestPrice(ctx, "Laptop X")
		require.NoError(t, err)
		assert.Equal(t, "Amazon Egypt", record.Source, "original record must survive an equal-price write")
	})

	t.Run("empty name is a no-op", func(t *testing.T) {
		updated, err := ledger.RecordIfBetter(ctx, testOffer("", 100, "Amazon Egypt"))
		require.NoError(t, err)
		assert.False(t, updated)
	})
}

func TestBestPrice_NotFound(t *testing.T) {
	ledger := openTestLedger(t)

	_, err := ledger.BestPrice(context.Background(), "never seen")
	assert.True(t, errors.Is(err, domain.ErrNoOffers))
}

func TestSummary(t *testing.T) {
	ledger := openTestLedger(t)
	ctx := context.Background()

	require.NoError(t, ledger.RecordObservation(ctx, testOffer("Laptop X", 1000, "Amazon Egypt")))
	require.NoError(t, ledger.RecordObservation(ctx, testOffer("Laptop X", 900, "Noon Egypt")))
	require.NoError(t, ledger.RecordObservation(ctx, testOffer("Stylus Y", 450, "Amazon Egypt")))

	summaries, err := ledger.Summary(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byName := make(map[string]domain.ProductSummary)
	for _, s := range summaries {
		byName[s.Name] = s
	}

	assert.Equal(t, 900.0, byName["Laptop X"].MinPrice)
	assert.Equal(t, 950.0, byName["Laptop X"].AvgPrice)
	assert.Equal(t, 450.0, byName["Stylus Y"].MinPrice)
}

func TestRecordObservation_UpsertPerSource(t *testing.T) {
	ledger := openTestLedger(t)
	ctx := context.Background()

	// Same product/source pair: the later observation replaces the earlier
	require.NoError(t, ledger.RecordObservation(ctx, testOffer("Laptop X", 1000, "Amazon Egypt")))
	require.NoError(t, ledger.RecordObservation(ctx, testOffer("Laptop X", 950, "Amazon Egypt")))

	summaries, err := ledger.Summary(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 950.0, summaries[0].MinPrice)
	assert.Equal(t, 950.0, summaries[0].AvgPrice)
}

func TestClear(t *testing.T) {
	ledger := openTestLedger(t)
	ctx := context.Background()

	require.NoError(t, ledger.RecordObservation(ctx, testOffer("Laptop X", 1000, "Amazon Egypt")))
	_, err := ledger.RecordIfBetter(ctx, testOffer("Laptop X", 1000, "Amazon Egypt"))
	require.NoError(t, err)

	require.NoError(t, ledger.Clear(ctx))

	summaries, err := ledger.Summary(ctx)
	require.NoError(t, err)
	assert.Empty(t, summaries)

	_, err = ledger.BestPrice(ctx, "Laptop X")
	assert.True(t, errors.Is(err, domain.ErrNoOffers))
}

func TestRecordIfBetter_ConcurrentWriters(t *testing.T) {
	ledger := openTestLedger(t)
	ctx := context.Background()

	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func(base float64) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 25; j++ {
				ledger.RecordIfBetter(ctx, testOffer("Laptop X", base+float64(j), "Amazon Egypt"))
			}
		}(float64(100 + i*10))
	}
	for i := 0; i < 4; i++ {
		<-done
	}

	record, err := ledger.BestPrice(ctx, "Laptop X")
	require.NoError(t, err)
	assert.Equal(t, 100.0, record.Price, "lowest concurrent write must win")
}
