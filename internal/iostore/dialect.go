package iostore

import (
	"fmt"
	"strings"

	"github.com/gnames/gnpin/pkg/config"
	"github.com/gnames/gnpin/pkg/schema"
)

// dialect renders statements that differ between engines.
type dialect struct {
	engine string
}

func (d dialect) placeholder(i int) string {
	if d.engine == config.EnginePostgres {
		return fmt.Sprintf("$%d", i)
	}
	return "?"
}

func (d dialect) autoDDL() string {
	if d.engine == config.EnginePostgres {
		return "BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY"
	}
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}

func (d dialect) createSQL(t schema.Table) string {
	return t.CreateDDL(d.autoDDL())
}

// dropSQL on PostgreSQL cascades to foreign-key constraints of other
// tables. SQLite keeps them, so rows may point to a missing table.
func (d dialect) dropSQL(table string) string {
	if d.engine == config.EnginePostgres {
		return fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)
	}
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", table)
}

// insertSQL renders a multi-row insert that skips rows with an existing
// primary key. Other constraint violations still fail.
func (d dialect) insertSQL(table string, cols []schema.Column, rowsNum int) string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}

	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES ", table, strings.Join(names, ", "))

	n := 1
	for i := range rowsNum {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for j := range cols {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(d.placeholder(n))
			n++
		}
		b.WriteByte(')')
	}
	b.WriteString(" ON CONFLICT DO NOTHING")
	return b.String()
}

func (d dialect) selectSQL(t schema.Table) string {
	return fmt.Sprintf("SELECT %s FROM %s",
		strings.Join(t.ColumnNames(), ", "), t.Name)
}
