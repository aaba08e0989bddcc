package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/akrram0/Subscription-managerr-bot/internal/domain"
)

// SQLiteRepo implements Repo using an embedded SQLite database.
type SQLiteRepo struct{ db *sql.DB }

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies recommended PRAGMAs, runs SQL migrations, and returns a repository.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Reasonable pooling for SQLite; it's a single-writer engine.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

// applyPragmas configures the SQLite connection for durability and concurrency.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// EnsureUser inserts the user row if missing; existing rows are untouched.
func (r *SQLiteRepo) EnsureUser(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO users (user_id) VALUES (?)`, userID)
	return err
}

// GetLanguage returns the stored locale code, or "" when the user is unknown
// or has not picked a language yet.
func (r *SQLiteRepo) GetLanguage(ctx context.Context, userID int64) (string, error) {
	var lang sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT language FROM users WHERE user_id = ?`, userID).Scan(&lang)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if !lang.Valid {
		return "", nil
	}
	return lang.String, nil
}

// SetLanguage upserts the user's locale preference.
func (r *SQLiteRepo) SetLanguage(ctx context.Context, userID int64, lang string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (user_id, language) VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET language = excluded.language`,
		userID, lang)
	return err
}

// CreateSubscription validates the draft and inserts an active row.
func (r *SQLiteRepo) CreateSubscription(ctx context.Context, userID int64, d domain.Draft) (int64, error) {
	if err := d.Validate(time.Now()); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO subscriptions
			(user_id, service_name, cost, currency, billing_cycle, next_payment_date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		userID, d.ServiceName, d.Cost, d.Currency, string(d.BillingCycle), d.NextPaymentDate)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const subscriptionCols = `id, user_id, service_name, cost, currency, billing_cycle, next_payment_date, is_active, created_at`

// ListActive returns the user's active subscriptions ordered by due date.
func (r *SQLiteRepo) ListActive(ctx context.Context, userID int64) ([]domain.Subscription, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+subscriptionCols+`
		FROM subscriptions
		WHERE user_id = ? AND is_active = 1
		ORDER BY next_payment_date ASC, id ASC`,
		userID)
	if err != nil {
		return nil, err
	}
	return scanSubscriptions(rows)
}

// GetByID returns the subscription only if it belongs to userID; a miss or a
// foreign row is a nil result, not an error.
func (r *SQLiteRepo) GetByID(ctx context.Context, id, userID int64) (*domain.Subscription, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+subscriptionCols+`
		FROM subscriptions
		WHERE id = ? AND user_id = ?`,
		id, userID)

	sub, err := scanSubscription(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// Deactivate soft-deletes. The row stays for history; it just disappears from
// every user-facing query. Returns false when no matching active row existed.
func (r *SQLiteRepo) Deactivate(ctx context.Context, id, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE subscriptions SET is_active = 0
		WHERE id = ? AND user_id = ? AND is_active = 1`,
		id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListDueIn returns active subscriptions (all users) due in exactly `days`
// days. Exact-day match: a missed job run skips that tier's reminders.
func (r *SQLiteRepo) ListDueIn(ctx context.Context, now time.Time, days int) ([]domain.Subscription, error) {
	target := domain.FormatDate(now.AddDate(0, 0, days))
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+subscriptionCols+`
		FROM subscriptions
		WHERE is_active = 1 AND next_payment_date = ?
		ORDER BY next_payment_date ASC, id ASC`,
		target)
	if err != nil {
		return nil, err
	}
	return scanSubscriptions(rows)
}

// ListPastDue returns active subscriptions dated strictly before today.
func (r *SQLiteRepo) ListPastDue(ctx context.Context, now time.Time) ([]domain.Subscription, error) {
	today := domain.FormatDate(now)
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+subscriptionCols+`
		FROM subscriptions
		WHERE is_active = 1 AND next_payment_date < ?
		ORDER BY next_payment_date ASC, id ASC`,
		today)
	if err != nil {
		return nil, err
	}
	return scanSubscriptions(rows)
}

// AdvanceNextPayment overwrites the payment date unconditionally.
func (r *SQLiteRepo) AdvanceNextPayment(ctx context.Context, id int64, newDate string) error {
	if _, err := domain.ParseDate(newDate); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		UPDATE subscriptions SET next_payment_date = ? WHERE id = ?`,
		newDate, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row rowScanner) (*domain.Subscription, error) {
	var (
		sub       domain.Subscription
		cycle     string
		activeInt int
		createdAt string
	)
	if err := row.Scan(
		&sub.ID, &sub.UserID, &sub.ServiceName, &sub.Cost, &sub.Currency,
		&cycle, &sub.NextPaymentDate, &activeInt, &createdAt,
	); err != nil {
		return nil, err
	}
	sub.BillingCycle = domain.BillingCycle(cycle)
	sub.Active = activeInt != 0
	if t, err := time.Parse(time.DateTime, createdAt); err == nil {
		sub.CreatedAt = t.UTC()
	}
	return &sub, nil
}

func scanSubscriptions(rows *sql.Rows) ([]domain.Subscription, error) {
	defer rows.Close()

	var res []domain.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *sub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
