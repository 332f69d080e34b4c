package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"dbexplorer/internal/apperrors"
	"dbexplorer/internal/models"
	"dbexplorer/internal/querybuilder"
)

// RecordRepository executes statements built by the query builder. It never
// builds SQL from identifiers itself.
type RecordRepository struct {
	db      DBTX
	timeout queryTimeout
}

func NewRecordRepository(db DBTX, timeout time.Duration) *RecordRepository {
	return &RecordRepository{db: db, timeout: queryTimeout(timeout)}
}

// Count runs a single-value COUNT statement.
func (r *RecordRepository) Count(ctx context.Context, st querybuilder.Statement) (int64, error) {
	ctx, cancel := r.timeout.context(ctx)
	defer cancel()

	var n int64
	if err := r.db.QueryRowContext(ctx, st.SQL, st.Args...).Scan(&n); err != nil {
		return 0, apperrors.Store(err, "failed to count rows")
	}
	return n, nil
}

// Select runs a row-returning statement and scans every row into a Record.
func (r *RecordRepository) Select(ctx context.Context, st querybuilder.Statement) ([]*models.Record, error) {
	ctx, cancel := r.timeout.context(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, st.SQL, st.Args...)
	if err != nil {
		return nil, apperrors.Store(err, "failed to fetch rows")
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Lookup fetches the first row of st. It returns nil without error when no
// row matches, including when the lookup value cannot be represented in the
// key column's type.
func (r *RecordRepository) Lookup(ctx context.Context, st querybuilder.Statement) (*models.Record, error) {
	records, err := r.Select(ctx, st)
	if err != nil {
		if isInvalidTextRepresentation(err) {
			return nil, nil
		}
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// Exec runs a statement and returns the number of affected rows.
func (r *RecordRepository) Exec(ctx context.Context, st querybuilder.Statement) (int64, error) {
	ctx, cancel := r.timeout.context(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, st.SQL, st.Args...)
	if err != nil {
		return 0, apperrors.Store(err, "failed to execute statement")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, apperrors.Store(err, "failed to read affected rows")
	}
	return n, nil
}

// SQLSTATE 22P02, e.g. "abc" compared against an integer column.
const invalidTextRepresentation = "22P02"

func isInvalidTextRepresentation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation
}

func scanRecords(rows *sql.Rows) ([]*models.Record, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, apperrors.Store(err, "failed to read result columns")
	}

	records := make([]*models.Record, 0)
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, apperrors.Store(err, "failed to scan row")
		}
		rec := models.NewRecord()
		for i, col := range columns {
			rec.Set(col, normalizeValue(values[i]))
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Store(err, "error iterating rows")
	}

	return records, nil
}

// normalizeValue turns driver values into JSON-friendly scalars and values
// that bind back cleanly as query parameters.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(time.RFC3339)
	case [16]byte:
		return uuid.UUID(val).String()
	default:
		return val
	}
}
