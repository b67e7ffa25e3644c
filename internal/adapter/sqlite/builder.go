package sqlite

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Statement is a parameterized SQL statement ready for execution.
// Values are always bound through Args, never interpolated into SQL.
type Statement struct {
	SQL  string
	Args []any
}

// Column is a single column/value assignment.
type Column struct {
	Name  string
	Value any
}

// Fields is an ordered list of column assignments.
type Fields []Column

// Names returns the column names in order.
func (f Fields) Names() []string {
	names := make([]string, len(f))
	for i, c := range f {
		names[i] = c.Name
	}
	return names
}

// Values returns the column values in order.
func (f Fields) Values() []any {
	values := make([]any, len(f))
	for i, c := range f {
		values[i] = c.Value
	}
	return values
}

// Filter is a set of column equality predicates. Every entry must hold:
// predicates are joined with AND. An empty filter matches every row.
type Filter map[string]any

var (
	errNoTable  = errors.New("sqlite: table name required")
	errNoFields = errors.New("sqlite: at least one field required")

	identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

func checkIdent(kind, name string) error {
	if !identRe.MatchString(name) {
		return fmt.Errorf("sqlite: invalid %s name %q", kind, name)
	}
	return nil
}

func checkTable(table string) error {
	if table == "" {
		return errNoTable
	}
	return checkIdent("table", table)
}

func checkFields(fields Fields) error {
	if len(fields) == 0 {
		return errNoFields
	}
	for _, c := range fields {
		if err := checkIdent("column", c.Name); err != nil {
			return err
		}
	}
	return nil
}

func checkColumns(columns []string) error {
	for _, c := range columns {
		if err := checkIdent("column", c); err != nil {
			return err
		}
	}
	return nil
}

func (f Filter) where() (sq.Eq, error) {
	if len(f) == 0 {
		return nil, nil
	}
	eq := make(sq.Eq, len(f))
	for k, v := range f {
		if err := checkIdent("column", k); err != nil {
			return nil, err
		}
		eq[k] = v
	}
	return eq, nil
}

func toStatement(b sq.Sqlizer) (Statement, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return Statement{}, fmt.Errorf("sqlite: build statement: %w", err)
	}
	return Statement{SQL: query, Args: args}, nil
}

func insertBuilder(table string, fields Fields) (sq.InsertBuilder, error) {
	if err := checkTable(table); err != nil {
		return sq.InsertBuilder{}, err
	}
	if err := checkFields(fields); err != nil {
		return sq.InsertBuilder{}, err
	}
	return sq.Insert(table).Columns(fields.Names()...).Values(fields.Values()...), nil
}

// BuildInsert builds INSERT INTO table (cols) VALUES (?, ...).
func BuildInsert(table string, fields Fields) (Statement, error) {
	b, err := insertBuilder(table, fields)
	if err != nil {
		return Statement{}, err
	}
	return toStatement(b)
}

// BuildInsertIgnore builds an INSERT that silently does nothing when it would
// violate a uniqueness constraint on conflictColumns (any constraint if none given).
func BuildInsertIgnore(table string, fields Fields, conflictColumns ...string) (Statement, error) {
	b, err := insertBuilder(table, fields)
	if err != nil {
		return Statement{}, err
	}
	if err := checkColumns(conflictColumns); err != nil {
		return Statement{}, err
	}
	suffix := "ON CONFLICT DO NOTHING"
	if len(conflictColumns) > 0 {
		suffix = fmt.Sprintf("ON CONFLICT (%s) DO NOTHING", strings.Join(conflictColumns, ", "))
	}
	return toStatement(b.Suffix(suffix))
}

// BuildUpsert builds an INSERT that, on conflict with conflictColumns,
// overwrites updateColumns with the values it tried to insert.
func BuildUpsert(table string, fields Fields, conflictColumns, updateColumns []string) (Statement, error) {
	b, err := insertBuilder(table, fields)
	if err != nil {
		return Statement{}, err
	}
	if len(conflictColumns) == 0 || len(updateColumns) == 0 {
		return Statement{}, errors.New("sqlite: upsert needs conflict and update columns")
	}
	if err := checkColumns(conflictColumns); err != nil {
		return Statement{}, err
	}
	if err := checkColumns(updateColumns); err != nil {
		return Statement{}, err
	}

	sets := make([]string, len(updateColumns))
	for i, c := range updateColumns {
		sets[i] = fmt.Sprintf("%s = excluded.%s", c, c)
	}
	suffix := fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET %s",
		strings.Join(conflictColumns, ", "), strings.Join(sets, ", "))
	return toStatement(b.Suffix(suffix))
}

// BuildSelect builds SELECT columns FROM table [WHERE filter] [ORDER BY orderBy].
// No columns selects *.
func BuildSelect(table string, columns []string, filter Filter, orderBy ...string) (Statement, error) {
	if err := checkTable(table); err != nil {
		return Statement{}, err
	}
	if err := checkColumns(columns); err != nil {
		return Statement{}, err
	}
	if err := checkColumns(orderBy); err != nil {
		return Statement{}, err
	}
	if len(columns) == 0 {
		columns = []string{"*"}
	}

	where, err := filter.where()
	if err != nil {
		return Statement{}, err
	}

	b := sq.Select(columns...).From(table)
	if where != nil {
		b = b.Where(where)
	}
	if len(orderBy) > 0 {
		b = b.OrderBy(orderBy...)
	}
	return toStatement(b)
}

// BuildCount builds SELECT COUNT(*) FROM table [WHERE filter].
func BuildCount(table string, filter Filter) (Statement, error) {
	if err := checkTable(table); err != nil {
		return Statement{}, err
	}
	where, err := filter.where()
	if err != nil {
		return Statement{}, err
	}
	b := sq.Select("COUNT(*)").From(table)
	if where != nil {
		b = b.Where(where)
	}
	return toStatement(b)
}

// BuildUpdate builds UPDATE table SET fields [WHERE filter].
func BuildUpdate(table string, fields Fields, filter Filter) (Statement, error) {
	if err := checkTable(table); err != nil {
		return Statement{}, err
	}
	if err := checkFields(fields); err != nil {
		return Statement{}, err
	}
	where, err := filter.where()
	if err != nil {
		return Statement{}, err
	}

	b := sq.Update(table)
	for _, c := range fields {
		b = b.Set(c.Name, c.Value)
	}
	if where != nil {
		b = b.Where(where)
	}
	return toStatement(b)
}

// BuildDelete builds DELETE FROM table [WHERE filter].
// An empty filter deletes every row.
func BuildDelete(table string, filter Filter) (Statement, error) {
	if err := checkTable(table); err != nil {
		return Statement{}, err
	}
	where, err := filter.where()
	if err != nil {
		return Statement{}, err
	}
	b := sq.Delete(table)
	if where != nil {
		b = b.Where(where)
	}
	return toStatement(b)
}
