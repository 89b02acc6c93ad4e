package iostore

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/gnames/gnpin/pkg/schema"
)

// sqlTable issues hand-written parameterized statements.
type sqlTable[T schema.Model] struct {
	c         *conn
	d         dialect
	tbl       schema.Table
	batchSize int
}

func newSQLTable[T schema.Model](c *conn, batchSize int) *sqlTable[T] {
	var m T
	return &sqlTable[T]{
		c:         c,
		d:         dialect{engine: c.engine},
		tbl:       schema.Describe(m),
		batchSize: batchSize,
	}
}

func (s *sqlTable[T]) Create(ctx context.Context) error {
	_, err := s.c.db.ExecContext(ctx, s.d.createSQL(s.tbl))
	if err != nil {
		return CreateTableError(s.tbl.Name, err)
	}
	return nil
}

func (s *sqlTable[T]) Drop(ctx context.Context) error {
	q := s.d.dropSQL(s.tbl.Name)
	err := s.c.withoutForeignKeys(ctx, func(ctx context.Context, cn *sql.Conn) error {
		_, err := cn.ExecContext(ctx, q)
		return err
	})
	if err != nil {
		return DropTableError(s.tbl.Name, err)
	}
	return nil
}

func (s *sqlTable[T]) AddData(ctx context.Context, rows []T) error {
	cols := s.tbl.Insertable()
	for start := 0; start < len(rows); start += s.batchSize {
		end := min(start+s.batchSize, len(rows))
		batch := rows[start:end]

		args := make([]any, 0, len(batch)*len(cols))
		for _, v := range batch {
			args = append(args, schema.Args(v, cols)...)
		}

		q := s.d.insertSQL(s.tbl.Name, cols, len(batch))
		if _, err := s.c.db.ExecContext(ctx, q, args...); err != nil {
			return InsertError(s.tbl.Name, start, err)
		}
	}
	slog.Debug("Rows sent", "table", s.tbl.Name, "rows", len(rows))
	return nil
}

func (s *sqlTable[T]) GetData(ctx context.Context) ([]T, error) {
	rows, err := s.c.db.QueryContext(ctx, s.d.selectSQL(s.tbl))
	if err != nil {
		return nil, SelectError(s.tbl.Name, err)
	}
	defer rows.Close()

	var res []T
	for rows.Next() {
		var row T
		if err = rows.Scan(schema.ScanTargets(&row, s.tbl.Columns)...); err != nil {
			return nil, SelectError(s.tbl.Name, err)
		}
		res = append(res, row)
	}
	if err = rows.Err(); err != nil {
		return nil, SelectError(s.tbl.Name, err)
	}
	return res, nil
}
