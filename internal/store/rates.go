package store

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Simplici0/cleanbid/internal/scope"
)

// ListProductionRates returns the whole reference table in a stable order.
func (s *Store) ListProductionRates(ctx context.Context) ([]scope.ProductionRate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, task_code, floor_type, building_type, unit, base_minutes, adjustment_factor
		FROM production_rates
		ORDER BY task_code, floor_type, building_type
	`)
	if err != nil {
		return nil, fmt.Errorf("query production rates: %w", err)
	}
	defer rows.Close()

	rates := make([]scope.ProductionRate, 0)
	for rows.Next() {
		var r scope.ProductionRate
		var unit string
		if err := rows.Scan(&r.ID, &r.TaskCode, &r.FloorType, &r.BuildingType, &unit, &r.BaseMinutes, &r.AdjustmentFactor); err != nil {
			return nil, fmt.Errorf("scan production rate: %w", err)
		}
		r.Unit = scope.RateUnit(unit)
		rates = append(rates, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate production rates: %w", err)
	}

	return rates, nil
}

// UpsertProductionRate inserts a rate or replaces the minutes of the rate
// with the same task, floor and building qualifiers.
func (s *Store) UpsertProductionRate(ctx context.Context, r scope.ProductionRate) (scope.ProductionRate, error) {
	r = normalizeRate(r)
	if err := r.Validate(); err != nil {
		return scope.ProductionRate{}, fmt.Errorf("validate production rate: %w", err)
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO production_rates (task_code, floor_type, building_type, unit, base_minutes, adjustment_factor)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (task_code, floor_type, building_type) DO UPDATE SET
			unit = excluded.unit,
			base_minutes = excluded.base_minutes,
			adjustment_factor = excluded.adjustment_factor,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id
	`, r.TaskCode, r.FloorType, r.BuildingType, string(r.Unit), r.BaseMinutes, r.Factor()).Scan(&r.ID)
	if err != nil {
		return scope.ProductionRate{}, fmt.Errorf("upsert production rate: %w", err)
	}
	r.AdjustmentFactor = r.Factor()

	s.log.Info("production rate saved",
		zap.Int64("id", r.ID),
		zap.String("task_code", r.TaskCode),
		zap.String("floor_type", r.FloorType),
		zap.String("building_type", r.BuildingType),
	)
	return r, nil
}

func (s *Store) DeleteProductionRate(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM production_rates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete production rate: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete production rate rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func normalizeRate(r scope.ProductionRate) scope.ProductionRate {
	r.TaskCode = strings.ToUpper(strings.TrimSpace(r.TaskCode))
	r.FloorType = strings.ToUpper(strings.TrimSpace(r.FloorType))
	r.BuildingType = strings.ToUpper(strings.TrimSpace(r.BuildingType))
	r.Unit = scope.RateUnit(strings.ToUpper(strings.TrimSpace(string(r.Unit))))
	return r
}
