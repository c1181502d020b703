// Package query builds parameterized PostgreSQL SELECT statements from a
// mapping of Go field names to table columns.
package query

import "strings"

// ProjectionMap maps view names (Go field names) to alias-qualified columns
// of one table, in projection order.
type ProjectionMap struct {
	from    string
	alias   string
	columns map[string]string
	order   []string
}

// NewProjectionMap creates an empty projection over schema.table aliased as alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		from:    schema + "." + table + " " + alias,
		alias:   alias,
		columns: map[string]string{},
	}
}

// Project appends column under viewName.
func (p *ProjectionMap) Project(column, viewName string) *ProjectionMap {
	qualified := p.alias + "." + column
	p.columns[viewName] = qualified
	p.order = append(p.order, qualified)
	return p
}

// From returns the FROM target, "schema.table alias".
func (p *ProjectionMap) From() string {
	return p.from
}

// Column returns the qualified column for viewName. Unmapped names are
// returned unchanged.
func (p *ProjectionMap) Column(viewName string) string {
	if col, ok := p.columns[viewName]; ok {
		return col
	}
	return viewName
}

// Columns returns the projected columns as a select list.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.order, ", ")
}

// Returning returns the unqualified select list for RETURNING clauses.
func (p *ProjectionMap) Returning() string {
	cols := make([]string, len(p.order))
	for i, col := range p.order {
		cols[i] = strings.TrimPrefix(col, p.alias+".")
	}
	return strings.Join(cols, ", ")
}
