package iotable

import (
	"fmt"
	"runtime"

	"github.com/cathapult/cathapult/pkg/errcode"
	"github.com/gnames/gn"
)

func ReadError(path string, err error) error {
	msg := "Cannot read table <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TableReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn.Name(), path, err),
	}
}

func SchemaError(path, column string) error {
	msg := "Table <em>%s</em> has no <em>%s</em> column"
	vars := []any{path, column}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TableSchemaError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: column %q is missing in %s",
			fn.Name(), column, path),
	}
}

func WriteError(path string, err error) error {
	msg := "Cannot write table <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TableWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write %s: %w", fn.Name(), path, err),
	}
}

func GroupSplitError(path, column string, err error) error {
	msg := "Cannot split <em>%s</em> into groups by <em>%s</em>"
	vars := []any{path, column}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GroupSplitError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot split by %q: %w",
			fn.Name(), column, err),
	}
}
