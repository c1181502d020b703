package query

import (
	"reflect"
	"strconv"
	"strings"
)

// Placeholder marks a bind parameter in condition fragments. Fragments are
// numbered left to right into PostgreSQL "$n" parameters when a query is built.
const Placeholder = "?"

// SortField is one ORDER BY term. Field is a projected view name.
type SortField struct {
	Field      string
	Descending bool
}

type fragment struct {
	sql  string
	args []any
}

// Builder assembles SELECT statements over a ProjectionMap. Conditions
// combine with AND.
type Builder struct {
	projection *ProjectionMap
	where      []fragment
	sort       []SortField
}

// NewBuilder creates a Builder ordered by sort.
func NewBuilder(projection *ProjectionMap, sort ...SortField) *Builder {
	return &Builder{
		projection: projection,
		sort:       sort,
	}
}

// WhereEquals adds "field = value". Nil values, including typed nil
// pointers, add nothing.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if isNil(value) {
		return b
	}
	return b.add(b.projection.Column(field)+" = ?", value)
}

// WhereContains adds a case-insensitive substring match. LIKE wildcards in
// value match literally. Nil or empty values add nothing.
func (b *Builder) WhereContains(field string, value *string) *Builder {
	return b.WhereSearch(value, field)
}

// WhereSearch matches value as a case-insensitive substring of any of the
// fields. Nil or empty values add nothing.
func (b *Builder) WhereSearch(value *string, fields ...string) *Builder {
	if value == nil || *value == "" || len(fields) == 0 {
		return b
	}

	pattern := containsPattern(*value)
	clauses := make([]string, len(fields))
	args := make([]any, len(fields))
	for i, field := range fields {
		clauses[i] = b.projection.Column(field) + " ILIKE ?"
		args[i] = pattern
	}

	if len(clauses) == 1 {
		return b.add(clauses[0], args...)
	}
	return b.add("("+strings.Join(clauses, " OR ")+")", args...)
}

// WhereExists adds EXISTS (subquery). The subquery may reference the outer
// alias and uses Placeholder for its args.
func (b *Builder) WhereExists(subquery string, args ...any) *Builder {
	return b.add("EXISTS ("+subquery+")", args...)
}

func (b *Builder) add(sql string, args ...any) *Builder {
	b.where = append(b.where, fragment{sql: sql, args: args})
	return b
}

// BuildCount returns SELECT COUNT(*) over the current conditions.
func (b *Builder) BuildCount() (string, []any) {
	var s statement
	s.write("SELECT COUNT(*) FROM ", b.projection.From())
	b.writeWhere(&s)
	return s.String(), s.args
}

// BuildPage returns at most limit ordered rows after skipping offset rows.
// LIMIT and OFFSET are bound as parameters.
func (b *Builder) BuildPage(limit, offset int) (string, []any) {
	var s statement
	s.write("SELECT ", b.projection.Columns(), " FROM ", b.projection.From())
	b.writeWhere(&s)
	b.writeOrder(&s)
	s.fragment(" LIMIT ? OFFSET ?", limit, offset)
	return s.String(), s.args
}

// BuildSingle returns the row whose idField equals id. Conditions and
// ordering are ignored.
func (b *Builder) BuildSingle(idField string, id any) (string, []any) {
	var s statement
	s.write("SELECT ", b.projection.Columns(), " FROM ", b.projection.From(), " WHERE ")
	s.fragment(b.projection.Column(idField)+" = ?", id)
	return s.String(), s.args
}

// BuildDistinct returns the distinct values of field in ascending order.
func (b *Builder) BuildDistinct(field string) (string, []any) {
	col := b.projection.Column(field)

	var s statement
	s.write("SELECT DISTINCT ", col, " FROM ", b.projection.From())
	b.writeWhere(&s)
	s.write(" ORDER BY ", col, " ASC")
	return s.String(), s.args
}

func (b *Builder) writeWhere(s *statement) {
	for i, f := range b.where {
		if i == 0 {
			s.write(" WHERE ")
		} else {
			s.write(" AND ")
		}
		s.fragment(f.sql, f.args...)
	}
}

func (b *Builder) writeOrder(s *statement) {
	for i, f := range b.sort {
		if i == 0 {
			s.write(" ORDER BY ")
		} else {
			s.write(", ")
		}
		dir := " ASC"
		if f.Descending {
			dir = " DESC"
		}
		s.write(b.projection.Column(f.Field), dir)
	}
}

// statement accumulates SQL text and numbers placeholders as fragments are
// appended.
type statement struct {
	strings.Builder
	args []any
}

func (s *statement) write(parts ...string) {
	for _, p := range parts {
		s.WriteString(p)
	}
}

func (s *statement) fragment(sql string, args ...any) {
	for _, arg := range args {
		i := strings.Index(sql, Placeholder)
		if i < 0 {
			break
		}
		s.args = append(s.args, arg)
		s.WriteString(sql[:i])
		s.WriteString("$" + strconv.Itoa(len(s.args)))
		sql = sql[i+len(Placeholder):]
	}
	s.WriteString(sql)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}

func isNil(value any) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	}
	return false
}
