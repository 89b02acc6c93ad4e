package iostore

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnpin/pkg/errcode"
)

func UnknownDriverError(driver string) error {
	msg := "Unknown storage driver <em>%s</em>, use 'sql' or 'gorm'"
	vars := []any{driver}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ConfigUnknownDriverError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown driver %q", fn, driver),
	}
}

func UnknownEngineError(engine string) error {
	msg := "Unknown database engine <em>%s</em>, use 'sqlite' or 'postgres'"
	vars := []any{engine}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ConfigUnknownEngineError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown engine %q", fn, engine),
	}
}

func ConnectionError(engine, target string, err error) error {
	msg := "Cannot connect to %s database <em>%s</em>"
	vars := []any{engine, target}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot connect to %s: %w", fn, target, err),
	}
}

func CreateTableError(table string, err error) error {
	msg := "Cannot create table <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBCreateTableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot create table %s: %w", fn, table, err),
	}
}

func DropTableError(table string, err error) error {
	msg := "Cannot drop table <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot drop table %s: %w", fn, table, err),
	}
}

func InsertError(table string, offset int, err error) error {
	msg := "Cannot insert rows into <em>%s</em> starting from row %d"
	vars := []any{table, offset}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBInsertError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: insert into %s at row %d: %w",
			fn, table, offset, err),
	}
}

func SelectError(table string, err error) error {
	msg := "Cannot read table <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBSelectError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot select from %s: %w", fn, table, err),
	}
}

func CloseError(err error) error {
	msg := "Cannot close the database"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBCloseError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot close database: %w", fn, err),
	}
}
