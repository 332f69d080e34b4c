package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"dbexplorer/internal/apperrors"
	"dbexplorer/internal/models"
	"dbexplorer/internal/querybuilder"
)

const maxParallelFetches = 4

type RelationshipService struct {
	catalog    SchemaCatalog
	edges      RelationshipCatalog
	records    RecordStore
	sweeper    Sweeper
	primaryKey string
}

func NewRelationshipService(
	catalog SchemaCatalog,
	edges RelationshipCatalog,
	records RecordStore,
	sweeper Sweeper,
	primaryKey string,
) *RelationshipService {
	return &RelationshipService{
		catalog:    catalog,
		edges:      edges,
		records:    records,
		sweeper:    sweeper,
		primaryKey: primaryKey,
	}
}

// ListForeignKeys returns the full edge set of the schema.
func (s *RelationshipService) ListForeignKeys(ctx context.Context) ([]models.ForeignKeyEdge, error) {
	return s.edges.ListForeignKeys(ctx)
}

// traversal is one related-row fetch: rows of table where column = value.
type traversal struct {
	edge   models.ForeignKeyEdge
	table  string
	column string
	value  any
}

// Resolve fetches the row of table identified by id and every row one
// foreign-key hop away from it, in either direction.
func (s *RelationshipService) Resolve(ctx context.Context, table, id string) (*models.RelationshipGraph, error) {
	columns, err := s.catalog.GetColumns(ctx, table)
	if err != nil {
		return nil, err
	}
	if _, ok := models.FindColumn(columns, s.primaryKey); !ok {
		return nil, apperrors.InvalidIdentifier("table %q has no %q column", table, s.primaryKey)
	}

	if s.sweeper != nil {
		s.sweeper.Sweep(ctx, table)
	}

	schema := s.catalog.Schema()
	main, err := s.records.Lookup(ctx, querybuilder.SelectWhereEqual(schema, table, s.primaryKey, id))
	if err != nil {
		return nil, err
	}
	if main == nil {
		return nil, apperrors.NotFound("row %q not found in table %q", id, table)
	}

	edges, err := s.edges.EdgesForTable(ctx, table)
	if err != nil {
		return nil, err
	}

	plan := planTraversals(edges, table, main, s.primaryKey)

	results := make([][]*models.Record, len(plan))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelFetches)
	for i, tr := range plan {
		i, tr := i, tr
		g.Go(func() error {
			ok, err := s.catalog.ValidateIdentifier(gctx, tr.table, tr.column)
			if err != nil {
				return err
			}
			if !ok {
				return apperrors.InvalidIdentifier("column %q not found in table %q", tr.column, tr.table)
			}

			rows, err := s.records.Select(gctx, querybuilder.SelectWhereEqual(schema, tr.table, tr.column, tr.value))
			if err != nil {
				return err
			}
			results[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	related := models.NewRelatedRecords()
	traversed := make([]models.ForeignKeyEdge, 0, len(plan))
	for i, tr := range plan {
		related.Append(tr.table, results[i]...)
		traversed = append(traversed, tr.edge)
	}

	return &models.RelationshipGraph{
		MainRecord:            models.MainRecord{Table: table, Record: main},
		RelatedRecordsByTable: related,
		Edges:                 traversed,
		TotalRelated:          related.Total(),
	}, nil
}

// planTraversals lists outbound fetches then inbound fetches, each in edge
// order. Outbound edges whose referencing value is null are dropped.
func planTraversals(edges []models.ForeignKeyEdge, table string, main *models.Record, primaryKey string) []traversal {
	plan := make([]traversal, 0, len(edges))

	for _, e := range edges {
		if !e.Outbound(table) {
			continue
		}
		v, _ := main.Get(e.FromColumn)
		if v == nil {
			continue
		}
		plan = append(plan, traversal{edge: e, table: e.ToTable, column: e.ToColumn, value: v})
	}

	pk, _ := main.Get(primaryKey)
	if pk == nil {
		return plan
	}
	for _, e := range edges {
		if !e.Inbound(table) {
			continue
		}
		plan = append(plan, traversal{edge: e, table: e.FromTable, column: e.FromColumn, value: pk})
	}

	return plan
}
