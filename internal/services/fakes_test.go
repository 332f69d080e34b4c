package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"dbexplorer/internal/apperrors"
	"dbexplorer/internal/models"
	"dbexplorer/internal/querybuilder"
)

type fakeCatalog struct {
	columns   map[string][]models.ColumnDescriptor
	rowCounts map[string]*int64
	pks       map[string][]string
	err       error
}

func (f *fakeCatalog) Schema() string { return "public" }

func (f *fakeCatalog) ListTables(ctx context.Context) ([]models.TableDescriptor, error) {
	if f.err != nil {
		return nil, f.err
	}
	names := make([]string, 0, len(f.columns))
	for name := range f.columns {
		names = append(names, name)
	}
	sort.Strings(names)

	tables := make([]models.TableDescriptor, 0, len(names))
	for _, name := range names {
		tables = append(tables, models.TableDescriptor{
			Name:        name,
			ColumnCount: len(f.columns[name]),
			RowCount:    f.rowCounts[name],
		})
	}
	return tables, nil
}

func (f *fakeCatalog) GetColumns(ctx context.Context, table string) ([]models.ColumnDescriptor, error) {
	if f.err != nil {
		return nil, f.err
	}
	cols, ok := f.columns[table]
	if !ok {
		return nil, apperrors.NotFound("table %q not found", table)
	}
	return cols, nil
}

func (f *fakeCatalog) ValidateIdentifier(ctx context.Context, table, column string) (bool, error) {
	cols, err := f.GetColumns(ctx, table)
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

func (f *fakeCatalog) GetPrimaryKeys(ctx context.Context, table string) ([]string, error) {
	return f.pks[table], nil
}

type fakeEdges struct {
	edges []models.ForeignKeyEdge
	err   error
}

func (f *fakeEdges) ListForeignKeys(ctx context.Context) ([]models.ForeignKeyEdge, error) {
	return f.edges, f.err
}

func (f *fakeEdges) EdgesForTable(ctx context.Context, table string) ([]models.ForeignKeyEdge, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.ForeignKeyEdge, 0)
	for _, e := range f.edges {
		if e.Outbound(table) || e.Inbound(table) {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeStore answers statements by their SQL text and arguments.
type fakeStore struct {
	mu       sync.Mutex
	rows     map[string][]*models.Record
	counts   map[string]int64
	errs     map[string]error
	executed []querybuilder.Statement
	deleted  int64
	execErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rows:   make(map[string][]*models.Record),
		counts: make(map[string]int64),
		errs:   make(map[string]error),
	}
}

func stmtKey(sql string, args ...any) string {
	return fmt.Sprintf("%s %v", sql, args)
}

func (f *fakeStore) on(sql string, args []any, recs ...*models.Record) {
	f.rows[stmtKey(sql, args...)] = recs
}

func (f *fakeStore) fail(sql string, args []any, err error) {
	f.errs[stmtKey(sql, args...)] = err
}

func (f *fakeStore) record(st querybuilder.Statement) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.executed = append(f.executed, st)
	return stmtKey(st.SQL, st.Args...)
}

func (f *fakeStore) Count(ctx context.Context, st querybuilder.Statement) (int64, error) {
	k := f.record(st)
	if err := f.errs[k]; err != nil {
		return 0, err
	}
	return f.counts[k], nil
}

func (f *fakeStore) Select(ctx context.Context, st querybuilder.Statement) ([]*models.Record, error) {
	k := f.record(st)
	if err := f.errs[k]; err != nil {
		return nil, err
	}
	recs := f.rows[k]
	if recs == nil {
		return []*models.Record{}, nil
	}
	return recs, nil
}

func (f *fakeStore) Lookup(ctx context.Context, st querybuilder.Statement) (*models.Record, error) {
	recs, err := f.Select(ctx, st)
	if err != nil || len(recs) == 0 {
		return nil, err
	}
	return recs[0], nil
}

func (f *fakeStore) Exec(ctx context.Context, st querybuilder.Statement) (int64, error) {
	f.record(st)
	if f.execErr != nil {
		return 0, f.execErr
	}
	return f.deleted, nil
}

func (f *fakeStore) statements() []querybuilder.Statement {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]querybuilder.Statement(nil), f.executed...)
}

type countingSweeper struct {
	mu     sync.Mutex
	tables []string
}

func (s *countingSweeper) Sweep(ctx context.Context, table string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables = append(s.tables, table)
	return 0
}

func col(name, dataType string) models.ColumnDescriptor {
	return models.ColumnDescriptor{Name: name, DataType: dataType, Kind: models.ClassifyDataType(dataType)}
}

func int64p(n int64) *int64 { return &n }
