// Package render prints catalog overviews as aligned terminal tables.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"dbexplorer/internal/models"
)

const maxCellWidth = 48

// Table is a column-aligned text table. Widths are measured in terminal
// cells so wide runes line up.
type Table struct {
	headers []string
	rows    [][]string
}

func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// Append adds a row. Missing cells render empty, extra cells are dropped.
func (t *Table) Append(cells ...string) {
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = runewidth.Truncate(cells[i], maxCellWidth, "…")
		}
	}
	t.rows = append(t.rows, row)
}

func (t *Table) widths() []int {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	return widths
}

// Render writes the table. Styling is applied after padding so escape codes
// never affect alignment.
func (t *Table) Render(w io.Writer, colored bool) error {
	widths := t.widths()
	header := color.Style{color.FgCyan, color.OpBold}

	line := make([]string, len(t.headers))
	for i, h := range t.headers {
		line[i] = paint(header, runewidth.FillRight(h, widths[i]), colored)
	}
	if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(line, "  "), " ")); err != nil {
		return err
	}

	for i := range line {
		line[i] = strings.Repeat("-", widths[i])
	}
	if _, err := fmt.Fprintln(w, strings.Join(line, "  ")); err != nil {
		return err
	}

	for _, row := range t.rows {
		for i, cell := range row {
			line[i] = runewidth.FillRight(cell, widths[i])
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(line, "  "), " ")); err != nil {
			return err
		}
	}
	return nil
}

func paint(style color.Style, s string, colored bool) string {
	if !colored {
		return s
	}
	return style.Sprint(s)
}

// Tables renders a table list.
func Tables(w io.Writer, tables []models.TableDescriptor, colored bool) error {
	t := NewTable("TABLE", "COLUMNS", "ROWS (EST.)")
	for _, d := range tables {
		rows := "?"
		if d.RowCount != nil {
			rows = strconv.FormatInt(*d.RowCount, 10)
		}
		t.Append(d.Name, strconv.Itoa(d.ColumnCount), rows)
	}
	return t.Render(w, colored)
}

// Relationships renders the foreign-key edge list.
func Relationships(w io.Writer, edges []models.ForeignKeyEdge, colored bool) error {
	t := NewTable("FROM", "TO", "CONSTRAINT")
	for _, e := range edges {
		t.Append(e.FromTable+"."+e.FromColumn, e.ToTable+"."+e.ToColumn, e.ConstraintName)
	}
	return t.Render(w, colored)
}
