package iodb

import (
	"fmt"
	"runtime"

	"github.com/cathapult/cathapult/pkg/errcode"
	"github.com/gnames/gn"
)

func OpenError(path string, err error) error {
	msg := "Cannot open database <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open %s: %w", fn.Name(), path, err),
	}
}

func CreateError(path string, err error) error {
	msg := "Cannot create summary table in <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBCreateError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot create table in %s: %w",
			fn.Name(), path, err),
	}
}

// ImportError reports a failure while loading the bulk summary. Row is the
// number of the data row that failed, 0 when the failure happened before
// any row was read.
func ImportError(path string, row int, err error) error {
	msg := "Cannot import bulk summary into <em>%s</em> (row %d)"
	vars := []any{path, row}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBImportError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: import into %s failed at row %d: %w",
			fn.Name(), path, row, err),
	}
}

func QueryError(path string, err error) error {
	msg := "Cannot query database <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: query of %s failed: %w", fn.Name(), path, err),
	}
}

func MissingError(path string) error {
	msg := "Database <em>%s</em> has no domain summary, run 'cathapult createdb' first"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBMissingError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: no %s table in %s", fn.Name(), tableName, path),
	}
}
