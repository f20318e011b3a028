package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/cleanbid/internal/scope"
)

func rateTable() []scope.ProductionRate {
	return []scope.ProductionRate{
		{TaskCode: "VACUUM", Unit: scope.UnitSqftPer1000, BaseMinutes: 10},
		{TaskCode: "VACUUM", FloorType: "CARPET", Unit: scope.UnitSqftPer1000, BaseMinutes: 12},
		{TaskCode: "VACUUM", BuildingType: "MEDICAL", Unit: scope.UnitSqftPer1000, BaseMinutes: 14},
		{TaskCode: "VACUUM", FloorType: "CARPET", BuildingType: "MEDICAL", Unit: scope.UnitSqftPer1000, BaseMinutes: 16},
		{TaskCode: "CLEAN_FIXTURES", Unit: scope.UnitEach, BaseMinutes: 4},
	}
}

func TestResolveRate_Precedence(t *testing.T) {
	tests := []struct {
		name           string
		floor, bldg    string
		wantMinutes    float64
		wantPrecedence Precedence
	}{
		{"exact", "CARPET", "MEDICAL", 16, MatchExact},
		{"floor only", "CARPET", "OFFICE", 12, MatchFloor},
		{"building only", "VCT", "MEDICAL", 14, MatchBuilding},
		{"wildcard", "VCT", "OFFICE", 10, MatchTask},
		{"no qualifiers", "", "", 10, MatchTask},
		{"case insensitive", "carpet", "medical", 16, MatchExact},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := ResolveRate("VACUUM", tt.floor, tt.bldg, rateTable())
			require.True(t, ok)
			assert.Equal(t, tt.wantMinutes, m.Rate.BaseMinutes)
			assert.Equal(t, tt.wantPrecedence, m.Precedence)
		})
	}
}

func TestResolveRate_EmptyFloorSkipsFloorLevels(t *testing.T) {
	m, ok := ResolveRate("VACUUM", "", "MEDICAL", rateTable())
	require.True(t, ok)
	assert.Equal(t, MatchBuilding, m.Precedence)
}

func TestResolveRate_NotFound(t *testing.T) {
	_, ok := ResolveRate("POLISH_BRASS", "CARPET", "MEDICAL", rateTable())
	assert.False(t, ok)

	_, ok = ResolveRate("VACUUM", "CARPET", "MEDICAL", nil)
	assert.False(t, ok)
}

func TestScale(t *testing.T) {
	area := scope.Area{SquareFootage: 2500, Quantity: 2}
	assert.Equal(t, 5.0, Scale(scope.UnitSqftPer1000, area))
	assert.Equal(t, 2.0, Scale(scope.UnitEach, area))
	assert.Equal(t, 1.0, Scale(scope.UnitEach, scope.Area{SquareFootage: 2500}))
}
