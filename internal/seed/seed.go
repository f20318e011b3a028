package seed

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Simplici0/cleanbid/internal/scope"
)

// Config controls the startup seed.
type Config struct {
	// ResetDefaults restores the default minutes of seeded rates that were
	// edited since.
	ResetDefaults bool
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// DefaultProductionRates covers every task the service templates attach.
var DefaultProductionRates = []scope.ProductionRate{
	{TaskCode: "EMPTY_TRASH", Unit: scope.UnitSqftPer1000, BaseMinutes: 3},
	{TaskCode: "VACUUM", Unit: scope.UnitSqftPer1000, BaseMinutes: 10},
	{TaskCode: "VACUUM", FloorType: "CARPET", Unit: scope.UnitSqftPer1000, BaseMinutes: 12},
	{TaskCode: "VACUUM", BuildingType: "MEDICAL", Unit: scope.UnitSqftPer1000, BaseMinutes: 13},
	{TaskCode: "DUST_SURFACES", Unit: scope.UnitSqftPer1000, BaseMinutes: 6},
	{TaskCode: "WIPE_TABLES", Unit: scope.UnitSqftPer1000, BaseMinutes: 8},
	{TaskCode: "CLEAN_FIXTURES", Unit: scope.UnitSqftPer1000, BaseMinutes: 45},
	{TaskCode: "CLEAN_FIXTURES", BuildingType: "MEDICAL", Unit: scope.UnitSqftPer1000, BaseMinutes: 55},
	{TaskCode: "RESTOCK_DISPENSERS", Unit: scope.UnitEach, BaseMinutes: 5},
	{TaskCode: "MOP", Unit: scope.UnitSqftPer1000, BaseMinutes: 12},
	{TaskCode: "MOP", FloorType: "CERAMIC_TILE", Unit: scope.UnitSqftPer1000, BaseMinutes: 14},
	{TaskCode: "DEGREASE", Unit: scope.UnitSqftPer1000, BaseMinutes: 25},
	{TaskCode: "SWEEP", Unit: scope.UnitSqftPer1000, BaseMinutes: 4},
	{TaskCode: "SPOT_CLEAN", Unit: scope.UnitSqftPer1000, BaseMinutes: 2},
}

// Run executes the startup seed in an idempotent way.
func Run(db *sql.DB, cfg Config) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}
	for _, rate := range DefaultProductionRates {
		if err := ensureRate(tx, rate, cfg.ResetDefaults, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureRate(tx *sql.Tx, rate scope.ProductionRate, reset bool, stats *Stats) error {
	var (
		id      int64
		minutes float64
		factor  float64
	)
	err := tx.QueryRow(`
		SELECT id, base_minutes, adjustment_factor
		FROM production_rates
		WHERE task_code = ? AND floor_type = ? AND building_type = ?
	`, rate.TaskCode, rate.FloorType, rate.BuildingType).Scan(&id, &minutes, &factor)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := tx.Exec(`
			INSERT INTO production_rates (task_code, floor_type, building_type, unit, base_minutes, adjustment_factor)
			VALUES (?, ?, ?, ?, ?, ?)
		`, rate.TaskCode, rate.FloorType, rate.BuildingType, string(rate.Unit), rate.BaseMinutes, rate.Factor()); err != nil {
			return fmt.Errorf("insert production rate %s: %w", rate.TaskCode, err)
		}
		stats.Inserts++
		return nil
	case err != nil:
		return fmt.Errorf("check production rate %s existence: %w", rate.TaskCode, err)
	}

	if !reset || (minutes == rate.BaseMinutes && factor == rate.Factor()) {
		return nil
	}
	if _, err := tx.Exec(`
		UPDATE production_rates
		SET unit = ?, base_minutes = ?, adjustment_factor = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, string(rate.Unit), rate.BaseMinutes, rate.Factor(), id); err != nil {
		return fmt.Errorf("reset production rate %s: %w", rate.TaskCode, err)
	}
	stats.Updates++
	return nil
}
