package services

import (
	"context"

	"dbexplorer/internal/models"
	"dbexplorer/internal/querybuilder"
)

// SchemaCatalog is implemented by repositories.SchemaRepository.
type SchemaCatalog interface {
	Schema() string
	ListTables(ctx context.Context) ([]models.TableDescriptor, error)
	GetColumns(ctx context.Context, table string) ([]models.ColumnDescriptor, error)
	ValidateIdentifier(ctx context.Context, table, column string) (bool, error)
	GetPrimaryKeys(ctx context.Context, table string) ([]string, error)
}

// RelationshipCatalog is implemented by repositories.RelationshipRepository.
type RelationshipCatalog interface {
	ListForeignKeys(ctx context.Context) ([]models.ForeignKeyEdge, error)
	EdgesForTable(ctx context.Context, table string) ([]models.ForeignKeyEdge, error)
}

// RecordStore is implemented by repositories.RecordRepository.
type RecordStore interface {
	Count(ctx context.Context, st querybuilder.Statement) (int64, error)
	Select(ctx context.Context, st querybuilder.Statement) ([]*models.Record, error)
	Lookup(ctx context.Context, st querybuilder.Statement) (*models.Record, error)
	Exec(ctx context.Context, st querybuilder.Statement) (int64, error)
}

// Sweeper runs the retention cleanup ahead of reads on the maintenance table.
type Sweeper interface {
	Sweep(ctx context.Context, table string) int64
}
