package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Simplici0/cleanbid/internal/db"
	"github.com/Simplici0/cleanbid/internal/scope"
	"github.com/Simplici0/cleanbid/internal/seed"
	"github.com/Simplici0/cleanbid/internal/store"
)

// readSnapshot decodes a snapshot file. Files ending in .json are read as
// JSON, everything else as YAML. Unknown fields are rejected.
func readSnapshot(path string) (scope.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return scope.Snapshot{}, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()
	return decodeSnapshot(f, strings.EqualFold(filepath.Ext(path), ".json"))
}

func decodeSnapshot(r io.Reader, asJSON bool) (scope.Snapshot, error) {
	var snap scope.Snapshot
	if asJSON {
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&snap); err != nil {
			return scope.Snapshot{}, fmt.Errorf("decode snapshot json: %w", err)
		}
		return snap, nil
	}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&snap); err != nil && !errors.Is(err, io.EOF) {
		return scope.Snapshot{}, fmt.Errorf("decode snapshot yaml: %w", err)
	}
	return snap, nil
}

// withRates fills an empty rate table from the database, or from the seed
// defaults when no database is configured.
func (a *app) withRates(ctx context.Context, snap scope.Snapshot) (scope.Snapshot, error) {
	if len(snap.ProductionRates) > 0 {
		return snap, nil
	}
	if a.dbPath == "" {
		snap.ProductionRates = append([]scope.ProductionRate(nil), seed.DefaultProductionRates...)
		return snap, nil
	}

	database, err := db.Open(a.dbPath)
	if err != nil {
		return scope.Snapshot{}, err
	}
	defer database.Close()

	rates, err := store.New(database, a.log.Named("store")).ListProductionRates(ctx)
	if err != nil {
		return scope.Snapshot{}, err
	}
	snap.ProductionRates = rates
	return snap, nil
}
