// Package querybuilder builds parameterized statements against tables whose
// names and columns come from a live catalog snapshot. Values are always bound
// as $n parameters; identifiers are quoted and must already have passed the
// catalog allow-list.
package querybuilder

import (
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"dbexplorer/internal/models"
)

type SortOrder string

const (
	Asc  SortOrder = "ASC"
	Desc SortOrder = "DESC"
)

// Statement is a SQL string plus its bound arguments.
type Statement struct {
	SQL  string
	Args []any
}

// NormalizeSortOrder coerces s to ASC or DESC. Matching is case-insensitive;
// anything else is ASC.
func NormalizeSortOrder(s string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(s), string(Desc)) {
		return Desc
	}
	return Asc
}

// ResolveSortColumn returns sortBy if it is one of cols, otherwise the first
// declared column. Returns "" only when cols is empty.
func ResolveSortColumn(cols []models.ColumnDescriptor, sortBy string) string {
	if c, ok := models.FindColumn(cols, sortBy); ok {
		return c.Name
	}
	if len(cols) == 0 {
		return ""
	}
	return cols[0].Name
}

// ClampPage returns page, or 1 if page is below 1.
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// Offset is the row offset of page for the given limit.
func Offset(page, limit int) int {
	return (ClampPage(page) - 1) * limit
}

// QuoteTable returns the schema-qualified, quoted table name.
func QuoteTable(schema, table string) string {
	if schema == "" {
		return pgx.Identifier{table}.Sanitize()
	}
	return pgx.Identifier{schema, table}.Sanitize()
}

func QuoteColumn(column string) string {
	return pgx.Identifier{column}.Sanitize()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike makes s match literally inside a LIKE pattern.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ListQuery describes one page of a table listing.
type ListQuery struct {
	Schema    string
	Table     string
	Columns   []models.ColumnDescriptor
	Search    string
	SortBy    string
	SortOrder SortOrder
	Page      int
	Limit     int

	// TieBreakers are appended to ORDER BY so pages over a non-unique sort
	// column stay stable. Usually the primary-key columns.
	TieBreakers []string
}

// searchPredicate ORs a case-insensitive substring match over every text-like
// column, one parameter per column starting at $first. It returns "" when
// there is no search term or no text-like column.
func (q ListQuery) searchPredicate(first int) (string, []any) {
	if q.Search == "" {
		return "", nil
	}

	pattern := "%" + EscapeLike(q.Search) + "%"
	var clauses []string
	var args []any
	for _, col := range q.Columns {
		if !col.Searchable() {
			continue
		}
		clauses = append(clauses, fmt.Sprintf("%s ILIKE $%d", QuoteColumn(col.Name), first+len(args)))
		args = append(args, pattern)
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return "(" + strings.Join(clauses, " OR ") + ")", args
}

// Count builds the COUNT(*) statement sharing the listing's search predicate.
func (q ListQuery) Count() Statement {
	var sb strings.Builder
	sb.WriteString("SELECT COUNT(*) FROM ")
	sb.WriteString(QuoteTable(q.Schema, q.Table))

	where, args := q.searchPredicate(1)
	if where != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(where)
	}
	return Statement{SQL: sb.String(), Args: args}
}

// Select builds the page statement. The sort column is always taken from
// Columns, falling back to the first declared column. Tie-breakers not in
// Columns are skipped.
func (q ListQuery) Select() Statement {
	var sb strings.Builder
	sb.WriteString("SELECT * FROM ")
	sb.WriteString(QuoteTable(q.Schema, q.Table))

	where, args := q.searchPredicate(1)
	if where != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(where)
	}

	if sortCol := ResolveSortColumn(q.Columns, q.SortBy); sortCol != "" {
		order := q.SortOrder
		if order != Desc {
			order = Asc
		}
		fmt.Fprintf(&sb, " ORDER BY %s %s", QuoteColumn(sortCol), order)
		for _, name := range q.TieBreakers {
			col, ok := models.FindColumn(q.Columns, name)
			if !ok || col.Name == sortCol {
				continue
			}
			fmt.Fprintf(&sb, ", %s %s", QuoteColumn(col.Name), order)
		}
	}

	fmt.Fprintf(&sb, " LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, q.Limit, Offset(q.Page, q.Limit))

	return Statement{SQL: sb.String(), Args: args}
}

// SelectWhereEqual builds SELECT * FROM table WHERE column = $1.
func SelectWhereEqual(schema, table, column string, value any) Statement {
	return Statement{
		SQL:  fmt.Sprintf("SELECT * FROM %s WHERE %s = $1", QuoteTable(schema, table), QuoteColumn(column)),
		Args: []any{value},
	}
}

// DeleteOlderThan builds the retention sweep for a timestamp column.
func DeleteOlderThan(schema, table, column string, cutoff time.Time) Statement {
	return Statement{
		SQL:  fmt.Sprintf("DELETE FROM %s WHERE %s < $1", QuoteTable(schema, table), QuoteColumn(column)),
		Args: []any{cutoff},
	}
}
