package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"pspcatalog/internal/psp/models"
)

//go:embed migrations/*.sql
var migrations embed.FS

const selectColumns = `SELECT psp_code, payment_type_code, channel_code, language_code,
	status, business_name, broker_name, description,
	min_amount, max_amount, fixed_cost, updated_at
FROM psps`

const orderBy = ` ORDER BY psp_code, payment_type_code, channel_code, language_code`

const (
	queryAll                     = selectColumns + orderBy
	queryByAmount                = selectColumns + ` WHERE min_amount <= $1 AND max_amount >= $1` + orderBy
	queryByLanguage              = selectColumns + ` WHERE language_code = $1` + orderBy
	queryByPaymentType           = selectColumns + ` WHERE payment_type_code = $1` + orderBy
	queryByAmountLanguage        = selectColumns + ` WHERE min_amount <= $1 AND max_amount >= $1 AND language_code = $2` + orderBy
	queryByAmountPaymentType     = selectColumns + ` WHERE min_amount <= $1 AND max_amount >= $1 AND payment_type_code = $2` + orderBy
	queryByPaymentTypeLanguage   = selectColumns + ` WHERE payment_type_code = $1 AND language_code = $2` + orderBy
	queryByAmountPaymentTypeLang = selectColumns + ` WHERE min_amount <= $1 AND max_amount >= $1 AND payment_type_code = $2 AND language_code = $3` + orderBy
	upsertRecord                 = `INSERT INTO psps (
	psp_code, payment_type_code, channel_code, language_code,
	status, business_name, broker_name, description,
	min_amount, max_amount, fixed_cost, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (psp_code, payment_type_code, channel_code, language_code) DO UPDATE SET
	status = EXCLUDED.status,
	business_name = EXCLUDED.business_name,
	broker_name = EXCLUDED.broker_name,
	description = EXCLUDED.description,
	min_amount = EXCLUDED.min_amount,
	max_amount = EXCLUDED.max_amount,
	fixed_cost = EXCLUDED.fixed_cost,
	updated_at = EXCLUDED.updated_at`
)

// PostgresStore persists the catalog in PostgreSQL. Each access path is a
// single indexed query; amount containment lives in the WHERE clause.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed catalog store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate applies the embedded schema files in name order. Every statement is
// idempotent, so it is safe to run on each start.
func Migrate(ctx context.Context, db *sql.DB) error {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)
	for _, name := range names {
		stmt, err := migrations.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(stmt)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

func (s *PostgresStore) Upsert(ctx context.Context, record *models.PspRecord) error {
	if record == nil {
		return fmt.Errorf("psp record is required")
	}
	_, err := s.db.ExecContext(ctx, upsertRecord,
		record.Key.PspCode,
		record.Key.PaymentType,
		record.Key.Channel,
		string(record.Key.Language),
		string(record.Status),
		record.Name,
		record.BrokerName,
		record.Description,
		record.MinAmount,
		record.MaxAmount,
		record.FeeAmount,
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert psp: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindAll(ctx context.Context) ([]models.PspRecord, error) {
	return s.query(ctx, "find all psps", queryAll)
}

func (s *PostgresStore) FindByAmount(ctx context.Context, amount int64) ([]models.PspRecord, error) {
	return s.query(ctx, "find psps by amount", queryByAmount, amount)
}

func (s *PostgresStore) FindByLanguage(ctx context.Context, language string) ([]models.PspRecord, error) {
	return s.query(ctx, "find psps by language", queryByLanguage, language)
}

func (s *PostgresStore) FindByPaymentType(ctx context.Context, paymentType string) ([]models.PspRecord, error) {
	return s.query(ctx, "find psps by payment type", queryByPaymentType, paymentType)
}

func (s *PostgresStore) FindByAmountAndLanguage(ctx context.Context, amount int64, language string) ([]models.PspRecord, error) {
	return s.query(ctx, "find psps by amount and language", queryByAmountLanguage, amount, language)
}

func (s *PostgresStore) FindByAmountAndPaymentType(ctx context.Context, amount int64, paymentType string) ([]models.PspRecord, error) {
	return s.query(ctx, "find psps by amount and payment type", queryByAmountPaymentType, amount, paymentType)
}

func (s *PostgresStore) FindByPaymentTypeAndLanguage(ctx context.Context, paymentType, language string) ([]models.PspRecord, error) {
	return s.query(ctx, "find psps by payment type and language", queryByPaymentTypeLanguage, paymentType, language)
}

func (s *PostgresStore) FindByAmountPaymentTypeAndLanguage(ctx context.Context, amount int64, paymentType, language string) ([]models.PspRecord, error) {
	return s.query(ctx, "find psps by amount, payment type and language", queryByAmountPaymentTypeLang, amount, paymentType, language)
}

func (s *PostgresStore) query(ctx context.Context, op, stmt string, args ...any) ([]models.PspRecord, error) {
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []models.PspRecord
	for rows.Next() {
		var (
			r        models.PspRecord
			language string
			status   string
		)
		if err := rows.Scan(
			&r.Key.PspCode,
			&r.Key.PaymentType,
			&r.Key.Channel,
			&language,
			&status,
			&r.Name,
			&r.BrokerName,
			&r.Description,
			&r.MinAmount,
			&r.MaxAmount,
			&r.FeeAmount,
			&r.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		r.Key.Language = models.Language(language)
		r.Status = models.Status(status)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}
