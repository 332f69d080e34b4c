package repositories

import (
	"context"
	"time"

	"dbexplorer/internal/apperrors"
	"dbexplorer/internal/models"
)

// RelationshipRepository is the Relationship Catalog: foreign-key edges between
// tables of the Schema Catalog.
type RelationshipRepository struct {
	db      DBTX
	schema  *SchemaRepository
	timeout queryTimeout
}

func NewRelationshipRepository(db DBTX, schema *SchemaRepository, timeout time.Duration) *RelationshipRepository {
	return &RelationshipRepository{db: db, schema: schema, timeout: queryTimeout(timeout)}
}

// One row per referencing column. Constraint names are only unique per table,
// so both sides are resolved through the constraint's own relation ids, and
// composite keys are split by pairing conkey and confkey positionally.
const listForeignKeysQuery = `
		SELECT src.relname AS from_table,
			fa.attname AS from_column,
			dst.relname AS to_table,
			ta.attname AS to_column,
			con.conname AS constraint_name
		FROM pg_constraint con
		JOIN pg_class src ON src.oid = con.conrelid
		JOIN pg_namespace src_ns ON src_ns.oid = src.relnamespace
		JOIN pg_class dst ON dst.oid = con.confrelid
		JOIN pg_namespace dst_ns ON dst_ns.oid = dst.relnamespace
		CROSS JOIN LATERAL unnest(con.conkey, con.confkey) WITH ORDINALITY AS k(from_attnum, to_attnum, ord)
		JOIN pg_attribute fa ON fa.attrelid = con.conrelid AND fa.attnum = k.from_attnum
		JOIN pg_attribute ta ON ta.attrelid = con.confrelid AND ta.attnum = k.to_attnum
		WHERE con.contype = 'f'
			AND src_ns.nspname = $1
			AND dst_ns.nspname = $1
		ORDER BY src.relname, con.conname, k.ord
	`

// ListForeignKeys returns every foreign-key edge whose both ends are tables in
// the current catalog snapshot.
func (r *RelationshipRepository) ListForeignKeys(ctx context.Context) ([]models.ForeignKeyEdge, error) {
	tables, err := r.schema.TableNames(ctx)
	if err != nil {
		return nil, err
	}

	edges, err := r.foreignKeys(ctx)
	if err != nil {
		return nil, err
	}

	filtered := edges[:0]
	for _, e := range edges {
		if tables[e.FromTable] && tables[e.ToTable] {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

func (r *RelationshipRepository) foreignKeys(ctx context.Context) ([]models.ForeignKeyEdge, error) {
	ctx, cancel := r.timeout.context(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, listForeignKeysQuery, r.schema.Schema())
	if err != nil {
		return nil, apperrors.Store(err, "failed to list foreign keys")
	}
	defer rows.Close()

	edges := make([]models.ForeignKeyEdge, 0)
	for rows.Next() {
		var e models.ForeignKeyEdge
		if err := rows.Scan(&e.FromTable, &e.FromColumn, &e.ToTable, &e.ToColumn, &e.ConstraintName); err != nil {
			return nil, apperrors.Store(err, "failed to scan foreign key")
		}
		edges = append(edges, e)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Store(err, "error iterating foreign keys")
	}

	return edges, nil
}

// EdgesForTable returns the edges where table is the referencing or the
// referenced side, in catalog order.
func (r *RelationshipRepository) EdgesForTable(ctx context.Context, table string) ([]models.ForeignKeyEdge, error) {
	edges, err := r.ListForeignKeys(ctx)
	if err != nil {
		return nil, err
	}
	return FilterEdges(edges, table), nil
}

// FilterEdges keeps the edges touching table. A self-referencing edge is
// kept once.
func FilterEdges(edges []models.ForeignKeyEdge, table string) []models.ForeignKeyEdge {
	out := make([]models.ForeignKeyEdge, 0)
	for _, e := range edges {
		if e.Outbound(table) || e.Inbound(table) {
			out = append(out, e)
		}
	}
	return out
}
