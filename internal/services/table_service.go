package services

import (
	"context"

	"dbexplorer/internal/apperrors"
	"dbexplorer/internal/models"
	"dbexplorer/internal/querybuilder"
)

type TableService struct {
	catalog SchemaCatalog
	records RecordStore
	sweeper Sweeper
}

func NewTableService(catalog SchemaCatalog, records RecordStore, sweeper Sweeper) *TableService {
	return &TableService{
		catalog: catalog,
		records: records,
		sweeper: sweeper,
	}
}

// ListRowsParams are the listing inputs as received from the caller. Table and
// SortBy are untrusted until checked against the catalog.
type ListRowsParams struct {
	Table     string
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
}

// ListTables returns the base tables ordered by name. With nonEmptyOnly,
// tables whose estimated row count is known to be zero are left out.
func (s *TableService) ListTables(ctx context.Context, nonEmptyOnly bool) ([]models.TableDescriptor, error) {
	tables, err := s.catalog.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	if !nonEmptyOnly {
		return tables, nil
	}

	filtered := make([]models.TableDescriptor, 0, len(tables))
	for _, t := range tables {
		if t.RowCount != nil && *t.RowCount == 0 {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered, nil
}

// ListRows serves one searchable, sorted page of an arbitrary table.
func (s *TableService) ListRows(ctx context.Context, p ListRowsParams) (*models.RowsPage, error) {
	if p.Limit <= 0 {
		return nil, apperrors.Validation("limit must be greater than zero")
	}

	columns, err := s.catalog.GetColumns(ctx, p.Table)
	if err != nil {
		return nil, err
	}

	if s.sweeper != nil {
		s.sweeper.Sweep(ctx, p.Table)
	}

	primaryKeys, err := s.catalog.GetPrimaryKeys(ctx, p.Table)
	if err != nil {
		return nil, err
	}

	page := querybuilder.ClampPage(p.Page)
	q := querybuilder.ListQuery{
		Schema:      s.catalog.Schema(),
		Table:       p.Table,
		Columns:     columns,
		Search:      p.Search,
		SortBy:      querybuilder.ResolveSortColumn(columns, p.SortBy),
		SortOrder:   querybuilder.NormalizeSortOrder(p.SortOrder),
		TieBreakers: primaryKeys,
		Page:        page,
		Limit:       p.Limit,
	}

	total, err := s.records.Count(ctx, q.Count())
	if err != nil {
		return nil, err
	}

	rows, err := s.records.Select(ctx, q.Select())
	if err != nil {
		return nil, err
	}

	return &models.RowsPage{
		Table:       p.Table,
		Rows:        rows,
		Columns:     columns,
		PrimaryKeys: primaryKeys,
		Pagination:  models.NewPagination(page, p.Limit, total),
	}, nil
}
