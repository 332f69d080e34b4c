package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"dbexplorer/internal/apperrors"
	"dbexplorer/internal/models"
)

// SchemaRepository is the Schema Catalog. Every call reads a fresh snapshot of
// the store's metadata; nothing is cached between calls.
type SchemaRepository struct {
	db      DBTX
	schema  string
	timeout queryTimeout
}

func NewSchemaRepository(db DBTX, schema string, timeout time.Duration) *SchemaRepository {
	return &SchemaRepository{db: db, schema: schema, timeout: queryTimeout(timeout)}
}

// Schema is the store schema all identifiers are resolved in.
func (r *SchemaRepository) Schema() string {
	return r.schema
}

const listTablesQuery = `
		SELECT t.table_name,
			COUNT(c.column_name) AS column_count,
			s.n_live_tup AS row_count
		FROM information_schema.tables t
		LEFT JOIN information_schema.columns c
			ON c.table_schema = t.table_schema
			AND c.table_name = t.table_name
		LEFT JOIN pg_stat_user_tables s
			ON s.schemaname = t.table_schema
			AND s.relname = t.table_name
		WHERE t.table_schema = $1
			AND t.table_type = 'BASE TABLE'
		GROUP BY t.table_name, s.n_live_tup
		ORDER BY t.table_name
	`

// ListTables returns all base tables in the schema ordered by name, with
// column counts and the planner's live-row estimate.
func (r *SchemaRepository) ListTables(ctx context.Context) ([]models.TableDescriptor, error) {
	ctx, cancel := r.timeout.context(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, listTablesQuery, r.schema)
	if err != nil {
		return nil, apperrors.Store(err, "failed to list tables")
	}
	defer rows.Close()

	tables := make([]models.TableDescriptor, 0)
	for rows.Next() {
		var t models.TableDescriptor
		var rowCount sql.NullInt64
		if err := rows.Scan(&t.Name, &t.ColumnCount, &rowCount); err != nil {
			return nil, apperrors.Store(err, "failed to scan table")
		}
		if rowCount.Valid {
			n := rowCount.Int64
			t.RowCount = &n
		}
		tables = append(tables, t)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Store(err, "error iterating tables")
	}

	return tables, nil
}

// TableNames returns the live table allow-list as a set.
func (r *SchemaRepository) TableNames(ctx context.Context) (map[string]bool, error) {
	tables, err := r.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]bool, len(tables))
	for _, t := range tables {
		names[t.Name] = true
	}
	return names, nil
}

const listColumnsQuery = `
		SELECT column_name, data_type, is_nullable, ordinal_position
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position
	`

// GetColumns returns the table's columns in declaration order. It fails with
// NotFound if the table is not in the live table list.
func (r *SchemaRepository) GetColumns(ctx context.Context, table string) ([]models.ColumnDescriptor, error) {
	names, err := r.TableNames(ctx)
	if err != nil {
		return nil, err
	}
	if !names[table] {
		return nil, apperrors.NotFound("table %q not found", table)
	}

	return r.columns(ctx, table)
}

func (r *SchemaRepository) columns(ctx context.Context, table string) ([]models.ColumnDescriptor, error) {
	ctx, cancel := r.timeout.context(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, listColumnsQuery, r.schema, table)
	if err != nil {
		return nil, apperrors.Store(err, fmt.Sprintf("failed to get columns for %s", table))
	}
	defer rows.Close()

	columns := make([]models.ColumnDescriptor, 0)
	for rows.Next() {
		var col models.ColumnDescriptor
		var nullable string
		if err := rows.Scan(&col.Name, &col.DataType, &nullable, &col.Position); err != nil {
			return nil, apperrors.Store(err, "failed to scan column")
		}
		col.Nullable = nullable == "YES"
		col.Kind = models.ClassifyDataType(col.DataType)
		columns = append(columns, col)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Store(err, "error iterating columns")
	}

	return columns, nil
}

// ValidateIdentifier reports whether table is a live table and, if column is
// non-empty, whether column is one of its live columns.
func (r *SchemaRepository) ValidateIdentifier(ctx context.Context, table, column string) (bool, error) {
	cols, err := r.GetColumns(ctx, table)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return false, nil
		}
		return false, err
	}
	if column == "" {
		return true, nil
	}
	_, ok := models.FindColumn(cols, column)
	return ok, nil
}

const primaryKeysQuery = `
		SELECT kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
		WHERE tc.constraint_type = 'PRIMARY KEY'
			AND tc.table_schema = $1
			AND tc.table_name = $2
		ORDER BY kcu.ordinal_position
	`

// GetPrimaryKeys returns the declared primary-key columns of a table. It does
// not validate the table; callers pass a name taken from the catalog.
func (r *SchemaRepository) GetPrimaryKeys(ctx context.Context, table string) ([]string, error) {
	ctx, cancel := r.timeout.context(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, primaryKeysQuery, r.schema, table)
	if err != nil {
		return nil, apperrors.Store(err, fmt.Sprintf("failed to get primary keys for %s", table))
	}
	defer rows.Close()

	pks := make([]string, 0, 1)
	for rows.Next() {
		var pk string
		if err := rows.Scan(&pk); err != nil {
			return nil, apperrors.Store(err, "failed to scan primary key")
		}
		pks = append(pks, pk)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Store(err, "error iterating primary keys")
	}

	return pks, nil
}
