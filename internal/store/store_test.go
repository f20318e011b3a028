package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Simplici0/cleanbid/internal/db"
	"github.com/Simplici0/cleanbid/internal/estimate"
	"github.com/Simplici0/cleanbid/internal/migrations"
	"github.com/Simplici0/cleanbid/internal/pricing"
	"github.com/Simplici0/cleanbid/internal/scope"
	"github.com/Simplici0/cleanbid/internal/specialization"
	"github.com/Simplici0/cleanbid/internal/workload"
)

func openTestStore(t *testing.T) (*Store, *sql.DB) {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "store-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, migrations.Up(database))
	return New(database, zaptest.NewLogger(t)), database
}

func testEstimate(t *testing.T, sqft float64) (scope.Snapshot, estimate.Estimate) {
	t.Helper()

	snap := scope.Snapshot{
		Areas: []scope.Area{{
			ID: "a1", Name: "Open Office", Difficulty: scope.DifficultyStandard, SquareFootage: sqft, Quantity: 1,
			Tasks: []scope.AreaTask{{TaskCode: "VACUUM", FrequencyCode: scope.FrequencyDaily}},
		}},
		Schedule:        scope.Schedule{DaysPerWeek: 5, HoursPerShift: 8},
		LaborRates:      scope.LaborRates{CleanerRate: 15},
		ProductionRates: []scope.ProductionRate{{TaskCode: "VACUUM", Unit: scope.UnitSqftPer1000, BaseMinutes: 10}},
		PricingStrategy: scope.PricingStrategy{Method: scope.MethodCostPlus, CostPlusPct: scope.Float(30)},
		Specialization:  specialization.Wrap(specialization.CarpetCare{Method: "HOT_WATER_EXTRACTION", CarpetAge: "NEW"}),
	}
	svc := estimate.NewService(workload.DefaultPolicy(), pricing.DefaultPolicy(), zaptest.NewLogger(t))
	est, err := svc.Estimate(snap)
	require.NoError(t, err)
	return snap, est
}

func TestProductionRates_UpsertListDelete(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	first, err := s.UpsertProductionRate(ctx, scope.ProductionRate{TaskCode: "vacuum", FloorType: "carpet", Unit: "sqft_per_1000", BaseMinutes: 12})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.Equal(t, "VACUUM", first.TaskCode)
	assert.Equal(t, 1.0, first.AdjustmentFactor)

	again, err := s.UpsertProductionRate(ctx, scope.ProductionRate{TaskCode: "VACUUM", FloorType: "CARPET", Unit: scope.UnitSqftPer1000, BaseMinutes: 14, AdjustmentFactor: 1.1})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	_, err = s.UpsertProductionRate(ctx, scope.ProductionRate{TaskCode: "MOP", Unit: scope.UnitSqftPer1000, BaseMinutes: 8})
	require.NoError(t, err)

	rates, err := s.ListProductionRates(ctx)
	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.Equal(t, "MOP", rates[0].TaskCode)
	assert.Equal(t, 14.0, rates[1].BaseMinutes)
	assert.Equal(t, 1.1, rates[1].AdjustmentFactor)

	_, err = s.UpsertProductionRate(ctx, scope.ProductionRate{TaskCode: "MOP", Unit: "HOURLY", BaseMinutes: 8})
	assert.Error(t, err)

	require.NoError(t, s.DeleteProductionRate(ctx, first.ID))
	assert.ErrorIs(t, s.DeleteProductionRate(ctx, first.ID), ErrNotFound)
}

func TestBids_CreateListGet(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	acme, err := s.CreateBid(ctx, "Acme HQ", "Acme Corp")
	require.NoError(t, err)
	_, err = s.CreateBid(ctx, "Clinic North", "Northside Health")
	require.NoError(t, err)

	_, err = s.CreateBid(ctx, "  ", "")
	assert.Error(t, err)

	all, err := s.ListBids(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Clinic North", all[0].Name)

	filtered, err := s.ListBids(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, acme.ID, filtered[0].ID)

	got, err := s.GetBid(ctx, acme.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", got.Client)
	assert.Zero(t, got.LatestVersion)

	_, err = s.GetBid(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVersions_SaveUpdateLock(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	bid, err := s.CreateBid(ctx, "Acme HQ", "Acme Corp")
	require.NoError(t, err)

	snap, est := testEstimate(t, 10000)
	v1, err := s.SaveVersion(ctx, bid.ID, snap, est)
	require.NoError(t, err)
	assert.Equal(t, 1, v1.Number)
	assert.Equal(t, StatusDraft, v1.Status)
	assert.Nil(t, v1.SentAt)
	assert.InDelta(t, est.Pricing.Totals.RecommendedPrice, v1.Estimate.Pricing.Totals.RecommendedPrice, 1e-9)
	assert.InDelta(t, est.Workload.MonthlyHours, v1.Estimate.Workload.MonthlyHours, 1e-9)
	require.NotNil(t, v1.Snapshot.Spec())
	assert.Equal(t, specialization.BidTypeCarpetCare, v1.Snapshot.Spec().BidType())

	snap2, est2 := testEstimate(t, 20000)
	require.NoError(t, s.UpdateVersion(ctx, v1.ID, snap2, est2))

	updated, err := s.GetVersion(ctx, bid.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 20000.0, updated.Snapshot.Areas[0].SquareFootage)

	require.NoError(t, s.MarkSent(ctx, v1.ID))
	require.NoError(t, s.MarkSent(ctx, v1.ID))
	assert.ErrorIs(t, s.UpdateVersion(ctx, v1.ID, snap, est), ErrVersionLocked)

	sent, err := s.GetVersion(ctx, bid.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, StatusSent, sent.Status)
	assert.NotNil(t, sent.SentAt)

	v2, err := s.SaveVersion(ctx, bid.ID, snap, est)
	require.NoError(t, err)
	assert.Equal(t, 2, v2.Number)
	assert.NotEqual(t, v1.ID, v2.ID)

	versions, err := s.ListVersions(ctx, bid.ID)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, 1, versions[0].Number)

	latest, err := s.GetBid(ctx, bid.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, latest.LatestVersion)
	assert.InDelta(t, est.Pricing.Totals.RecommendedPrice, latest.LatestPrice, 1e-9)
}

func TestVersions_NotFound(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	snap, est := testEstimate(t, 10000)
	_, err := s.SaveVersion(ctx, 42, snap, est)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.GetVersion(ctx, 42, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.MarkSent(ctx, "missing"), ErrNotFound)
	assert.ErrorIs(t, s.UpdateVersion(ctx, "missing", snap, est), ErrNotFound)
}
