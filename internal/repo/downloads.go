// Package repo holds the SQL-backed stores.
package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"vidgrab/internal/domain/consts"
	"vidgrab/internal/logging"
	"vidgrab/internal/models"

	"github.com/Masterminds/squirrel"
)

var ledgerColumns = []string{
	consts.QDLID,
	consts.QDLRunID,
	consts.QDLEntryIndex,
	consts.QDLURL,
	consts.QDLTitle,
	consts.QDLStatus,
	consts.QDLPct,
	consts.QDLError,
	consts.QDLCreatedAt,
	consts.QDLUpdatedAt,
}

// upsertSuffix keeps the first known title and URL of a row.
const upsertSuffix = `ON CONFLICT(run_id, entry_index) DO UPDATE SET
    status = excluded.status,
    percent = excluded.percent,
    error = excluded.error,
    url = COALESCE(NULLIF(excluded.url, ''), downloads.url),
    title = COALESCE(NULLIF(excluded.title, ''), downloads.title),
    updated_at = excluded.updated_at`

// DownloadStore holds a pointer to the sql.DB.
type DownloadStore struct {
	DB  *sql.DB
	Now func() time.Time
}

// GetDownloadStore returns a download store instance with injected database.
func GetDownloadStore(db *sql.DB) *DownloadStore {
	return &DownloadStore{
		DB:  db,
		Now: time.Now,
	}
}

// UpsertStatuses writes a batch of status updates in one transaction.
func (ds *DownloadStore) UpsertStatuses(ctx context.Context, updates []models.StatusUpdate) (err error) {
	if len(updates) == 0 {
		return nil
	}

	tx, err := ds.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.E("Panic rollback failed for %d status updates: %v", len(updates), rbErr)
			}
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.E("Failed to rollback %d status updates (original error: %v): %v", len(updates), err, rbErr)
			}
		}
	}()

	now := ds.now()
	for _, u := range updates {
		pct := normalizePercent(u.Percent, u.Status)
		query := squirrel.
			Insert(consts.DBDownloads).
			Columns(
				consts.QDLRunID,
				consts.QDLEntryIndex,
				consts.QDLURL,
				consts.QDLTitle,
				consts.QDLStatus,
				consts.QDLPct,
				consts.QDLError,
				consts.QDLCreatedAt,
				consts.QDLUpdatedAt,
			).
			Values(u.RunID, u.EntryIndex, u.URL, u.Title, string(u.Status), pct, u.Error, now, now).
			Suffix(upsertSuffix).
			RunWith(tx)

		if _, err = query.ExecContext(ctx); err != nil {
			return fmt.Errorf("failed to upsert status for run %q entry %d: %w", u.RunID, u.EntryIndex, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit status updates: %w", err)
	}
	return nil
}

// ListRecent returns the most recently updated ledger rows, newest first.
func (ds *DownloadStore) ListRecent(ctx context.Context, limit int) ([]models.LedgerRow, error) {
	query := squirrel.
		Select(ledgerColumns...).
		From(consts.DBDownloads).
		OrderBy(consts.QDLUpdatedAt+" DESC", consts.QDLID+" DESC")
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}
	return ds.queryRows(ctx, query)
}

// ListRun returns every row of one run in entry order.
func (ds *DownloadStore) ListRun(ctx context.Context, runID string) ([]models.LedgerRow, error) {
	query := squirrel.
		Select(ledgerColumns...).
		From(consts.DBDownloads).
		Where(squirrel.Eq{consts.QDLRunID: runID}).
		OrderBy(consts.QDLEntryIndex)
	return ds.queryRows(ctx, query)
}

// MarkInterrupted marks rows left pending or active by an earlier process as cancelled.
func (ds *DownloadStore) MarkInterrupted(ctx context.Context) (int64, error) {
	res, err := squirrel.
		Update(consts.DBDownloads).
		Set(consts.QDLStatus, string(models.LedgerCancelled)).
		Set(consts.QDLUpdatedAt, ds.now()).
		Where(squirrel.Eq{consts.QDLStatus: []string{string(models.LedgerPending), string(models.LedgerActive)}}).
		RunWith(ds.DB).
		ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to mark interrupted downloads: %w", err)
	}
	return res.RowsAffected()
}

// ******************************** Private ********************************

func (ds *DownloadStore) queryRows(ctx context.Context, query squirrel.SelectBuilder) ([]models.LedgerRow, error) {
	rows, err := query.RunWith(ds.DB).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query downloads: %w", err)
	}
	defer rows.Close()

	var out []models.LedgerRow
	for rows.Next() {
		var (
			r          models.LedgerRow
			url, title sql.NullString
			status     string
			errMsg     sql.NullString
			pct        sql.NullFloat64
		)
		if err := rows.Scan(&r.ID, &r.RunID, &r.EntryIndex, &url, &title, &status, &pct, &errMsg, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan download row: %w", err)
		}
		r.URL = url.String
		r.Title = title.String
		r.Status = models.LedgerStatus(status)
		r.Percent = pct.Float64
		r.Error = errMsg.String
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (ds *DownloadStore) now() time.Time {
	if ds.Now == nil {
		return time.Now().UTC()
	}
	return ds.Now().UTC()
}

// normalizePercent clamps the percentage and pins finished rows to 100.
func normalizePercent(pct float64, status models.LedgerStatus) float64 {
	switch {
	case status == models.LedgerDone:
		return 100.0
	case pct < 0:
		return 0
	case pct > 100:
		return 100.0
	default:
		return pct
	}
}
