package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Simplici0/cleanbid/internal/estimate"
	"github.com/Simplici0/cleanbid/internal/scope"
)

type Status string

const (
	StatusDraft Status = "DRAFT"
	StatusSent  Status = "SENT"
)

type Bid struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Client        string  `json:"client"`
	CreatedAt     string  `json:"created_at"`
	LatestVersion int     `json:"latest_version"`
	LatestPrice   float64 `json:"latest_price"`
}

// Version is one saved calculation of a bid. The estimate is stored next to
// the snapshot it was computed from.
type Version struct {
	ID        string            `json:"id"`
	BidID     int64             `json:"bid_id"`
	Number    int               `json:"number"`
	Status    Status            `json:"status"`
	Snapshot  scope.Snapshot    `json:"snapshot"`
	Estimate  estimate.Estimate `json:"estimate"`
	CreatedAt string            `json:"created_at"`
	UpdatedAt string            `json:"updated_at"`
	SentAt    *string           `json:"sent_at,omitempty"`
}

func (s *Store) CreateBid(ctx context.Context, name, client string) (Bid, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Bid{}, fmt.Errorf("create bid: name is required")
	}

	var b Bid
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO bids (name, client) VALUES (?, ?)
		RETURNING id, name, client, created_at
	`, name, strings.TrimSpace(client)).Scan(&b.ID, &b.Name, &b.Client, &b.CreatedAt)
	if err != nil {
		return Bid{}, fmt.Errorf("insert bid: %w", err)
	}

	s.log.Info("bid created", zap.Int64("bid_id", b.ID), zap.String("name", b.Name))
	return b, nil
}

const bidColumns = `
	b.id,
	b.name,
	b.client,
	b.created_at,
	COALESCE((SELECT MAX(v.version) FROM bid_versions v WHERE v.bid_id = b.id), 0),
	COALESCE((SELECT v.recommended_price FROM bid_versions v WHERE v.bid_id = b.id ORDER BY v.version DESC LIMIT 1), 0)
`

func (s *Store) GetBid(ctx context.Context, id int64) (Bid, error) {
	var b Bid
	err := s.db.QueryRowContext(ctx, `SELECT `+bidColumns+` FROM bids b WHERE b.id = ?`, id).
		Scan(&b.ID, &b.Name, &b.Client, &b.CreatedAt, &b.LatestVersion, &b.LatestPrice)
	if errors.Is(err, sql.ErrNoRows) {
		return Bid{}, ErrNotFound
	}
	if err != nil {
		return Bid{}, fmt.Errorf("get bid: %w", err)
	}
	return b, nil
}

// ListBids returns bids newest first, optionally filtered by a substring of
// the name or client.
func (s *Store) ListBids(ctx context.Context, query string) ([]Bid, error) {
	query = strings.TrimSpace(query)
	search := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+bidColumns+`
		FROM bids b
		WHERE (? = '' OR b.name LIKE ? OR b.client LIKE ?)
		ORDER BY datetime(b.created_at) DESC, b.id DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query bids: %w", err)
	}
	defer rows.Close()

	bids := make([]Bid, 0)
	for rows.Next() {
		var b Bid
		if err := rows.Scan(&b.ID, &b.Name, &b.Client, &b.CreatedAt, &b.LatestVersion, &b.LatestPrice); err != nil {
			return nil, fmt.Errorf("scan bid: %w", err)
		}
		bids = append(bids, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bids: %w", err)
	}

	return bids, nil
}

// SaveVersion stores snap and its estimate as the next DRAFT version of a bid.
func (s *Store) SaveVersion(ctx context.Context, bidID int64, snap scope.Snapshot, est estimate.Estimate) (Version, error) {
	snapJSON, workloadJSON, pricingJSON, err := encodeVersion(snap, est)
	if err != nil {
		return Version{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Version{}, fmt.Errorf("begin save version transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM bids WHERE id = ?)`, bidID).Scan(&exists); err != nil {
		return Version{}, fmt.Errorf("check bid existence: %w", err)
	}
	if !exists {
		return Version{}, ErrNotFound
	}

	var next int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) + 1 FROM bid_versions WHERE bid_id = ?`, bidID).Scan(&next); err != nil {
		return Version{}, fmt.Errorf("next version number: %w", err)
	}

	id := uuid.NewString()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO bid_versions (id, bid_id, version, status, snapshot_json, workload_json, pricing_json, recommended_price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, bidID, next, string(StatusDraft), snapJSON, workloadJSON, pricingJSON, est.Pricing.Totals.RecommendedPrice); err != nil {
		return Version{}, fmt.Errorf("insert bid version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Version{}, fmt.Errorf("commit save version transaction: %w", err)
	}

	s.log.Info("bid version saved",
		zap.Int64("bid_id", bidID),
		zap.Int("version", next),
		zap.String("version_id", id),
		zap.Float64("recommended_price", est.Pricing.Totals.RecommendedPrice),
	)
	return s.GetVersion(ctx, bidID, next)
}

// UpdateVersion replaces the contents of a DRAFT version. Sent versions are
// locked and fail with ErrVersionLocked.
func (s *Store) UpdateVersion(ctx context.Context, versionID string, snap scope.Snapshot, est estimate.Estimate) error {
	snapJSON, workloadJSON, pricingJSON, err := encodeVersion(snap, est)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE bid_versions
		SET snapshot_json = ?, workload_json = ?, pricing_json = ?, recommended_price = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = ?
	`, snapJSON, workloadJSON, pricingJSON, est.Pricing.Totals.RecommendedPrice, versionID, string(StatusDraft))
	if err != nil {
		return fmt.Errorf("update bid version: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update bid version rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}

	status, err := s.versionStatus(ctx, versionID)
	if err != nil {
		return err
	}
	if status == StatusSent {
		return ErrVersionLocked
	}
	return fmt.Errorf("update bid version %s: unexpected status %q", versionID, status)
}

// MarkSent locks a version. Marking a sent version again is a no-op.
func (s *Store) MarkSent(ctx context.Context, versionID string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE bid_versions
		SET status = ?, sent_at = COALESCE(sent_at, CURRENT_TIMESTAMP)
		WHERE id = ?
	`, string(StatusSent), versionID)
	if err != nil {
		return fmt.Errorf("mark bid version sent: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark bid version sent rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	s.log.Info("bid version sent", zap.String("version_id", versionID))
	return nil
}

const versionColumns = `id, bid_id, version, status, snapshot_json, workload_json, pricing_json, created_at, updated_at, sent_at`

func (s *Store) GetVersion(ctx context.Context, bidID int64, number int) (Version, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+versionColumns+` FROM bid_versions WHERE bid_id = ? AND version = ?`, bidID, number)
	v, err := scanVersion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Version{}, ErrNotFound
	}
	if err != nil {
		return Version{}, fmt.Errorf("get bid version: %w", err)
	}
	return v, nil
}

// ListVersions returns every version of a bid, oldest first.
func (s *Store) ListVersions(ctx context.Context, bidID int64) ([]Version, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+versionColumns+` FROM bid_versions WHERE bid_id = ? ORDER BY version`, bidID)
	if err != nil {
		return nil, fmt.Errorf("query bid versions: %w", err)
	}
	defer rows.Close()

	versions := make([]Version, 0)
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bid version: %w", err)
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bid versions: %w", err)
	}

	return versions, nil
}

func (s *Store) versionStatus(ctx context.Context, versionID string) (Status, error) {
	var status string
	err := s.db.QueryRowContext(ctx, `SELECT status FROM bid_versions WHERE id = ?`, versionID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get bid version status: %w", err)
	}
	return Status(status), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVersion(row rowScanner) (Version, error) {
	var (
		v                                   Version
		status                              string
		snapJSON, workloadJSON, pricingJSON string
		sentAt                              sql.NullString
	)
	if err := row.Scan(&v.ID, &v.BidID, &v.Number, &status, &snapJSON, &workloadJSON, &pricingJSON, &v.CreatedAt, &v.UpdatedAt, &sentAt); err != nil {
		return Version{}, err
	}
	v.Status = Status(status)
	if sentAt.Valid {
		v.SentAt = &sentAt.String
	}

	if err := json.Unmarshal([]byte(snapJSON), &v.Snapshot); err != nil {
		return Version{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if err := json.Unmarshal([]byte(workloadJSON), &v.Estimate.Workload); err != nil {
		return Version{}, fmt.Errorf("decode workload: %w", err)
	}
	if err := json.Unmarshal([]byte(pricingJSON), &v.Estimate.Pricing); err != nil {
		return Version{}, fmt.Errorf("decode pricing: %w", err)
	}
	return v, nil
}

func encodeVersion(snap scope.Snapshot, est estimate.Estimate) (string, string, string, error) {
	snapJSON, err := json.Marshal(snap)
	if err != nil {
		return "", "", "", fmt.Errorf("encode snapshot: %w", err)
	}
	workloadJSON, err := json.Marshal(est.Workload)
	if err != nil {
		return "", "", "", fmt.Errorf("encode workload: %w", err)
	}
	pricingJSON, err := json.Marshal(est.Pricing)
	if err != nil {
		return "", "", "", fmt.Errorf("encode pricing: %w", err)
	}
	return string(snapJSON), string(workloadJSON), string(pricingJSON), nil
}
