package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// Column describes one column of a table.
type Column struct {
	// Name of the column in the database.
	Name string

	// DDL is the portable type and nullability from the `ddl` tag.
	DDL string

	// Auto is true for values assigned by the store.
	Auto bool

	index int
}

// Table is the declarative description of a model's table.
type Table struct {
	Name        string
	Columns     []Column
	ForeignKeys []ForeignKey
}

// Describe reflects the struct tags of a model into a Table.
// Fields without a `db` tag or tagged with "-" are not columns.
func Describe(m Model) Table {
	t := reflect.TypeOf(m)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	res := Table{
		Name:        m.TableName(),
		ForeignKeys: m.ForeignKeys(),
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		if dbTag == "" || dbTag == "-" {
			continue
		}
		name, opt, _ := strings.Cut(dbTag, ",")
		res.Columns = append(res.Columns, Column{
			Name:  name,
			DDL:   field.Tag.Get("ddl"),
			Auto:  opt == "auto",
			index: i,
		})
	}
	return res
}

// ColumnNames returns the names of all columns.
func (t Table) ColumnNames() []string {
	res := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		res[i] = c.Name
	}
	return res
}

// Insertable returns columns supplied by a caller on insert, which are
// all columns except the auto-assigned ones.
func (t Table) Insertable() []Column {
	res := make([]Column, 0, len(t.Columns))
	for _, c := range t.Columns {
		if !c.Auto {
			res = append(res, c)
		}
	}
	return res
}

// CreateDDL renders a CREATE TABLE statement. Auto columns get autoDDL
// instead of their portable type, because auto-increment syntax differs
// between engines.
func (t Table) CreateDDL(autoDDL string) string {
	var lines []string
	for _, c := range t.Columns {
		ddl := c.DDL
		if c.Auto {
			ddl = autoDDL
		}
		lines = append(lines, fmt.Sprintf("    %s %s", c.Name, ddl))
	}
	for _, fk := range t.ForeignKeys {
		lines = append(lines, fmt.Sprintf("    FOREIGN KEY (%s) REFERENCES %s(%s)",
			fk.Column, fk.RefTable, fk.RefColumn))
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n)",
		t.Name, strings.Join(lines, ",\n"))
}

// Args returns values of the given columns of a row, in the same order.
// Nil optional fields become SQL NULL.
func Args(m Model, cols []Column) []any {
	v := reflect.Indirect(reflect.ValueOf(m))
	res := make([]any, len(cols))
	for i, c := range cols {
		f := v.Field(c.index)
		if f.Kind() == reflect.Pointer {
			if f.IsNil() {
				res[i] = nil
				continue
			}
			f = f.Elem()
		}
		res[i] = f.Interface()
	}
	return res
}

// ScanTargets returns pointers to the fields of row that correspond to
// cols. The row must be a pointer to a model struct.
func ScanTargets(row any, cols []Column) []any {
	v := reflect.ValueOf(row).Elem()
	res := make([]any, len(cols))
	for i, c := range cols {
		res[i] = v.Field(c.index).Addr().Interface()
	}
	return res
}

// ResetAuto sets auto-assigned fields of a row to their zero values,
// so the store assigns them. The row must be a pointer to a model struct.
func ResetAuto(row any, t Table) {
	v := reflect.ValueOf(row).Elem()
	for _, c := range t.Columns {
		if c.Auto {
			f := v.Field(c.index)
			f.Set(reflect.Zero(f.Type()))
		}
	}
}

// Values returns a key-value view of a row. Nil optional fields map to nil.
func Values(m Model) map[string]any {
	t := Describe(m)
	args := Args(m, t.Columns)
	res := make(map[string]any, len(args))
	for i, c := range t.Columns {
		res[c.Name] = args[i]
	}
	return res
}

// Value returns the string value of a column. The second result is false
// if the column does not exist or is NULL.
func Value(m Model, column string) (string, bool) {
	val, ok := Values(m)[column]
	if !ok || val == nil {
		return "", false
	}
	switch v := val.(type) {
	case string:
		return v, true
	default:
		return fmt.Sprint(v), true
	}
}
