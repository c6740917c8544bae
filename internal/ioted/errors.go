package ioted

import (
	"fmt"
	"runtime"

	"github.com/cathapult/cathapult/pkg/errcode"
	"github.com/gnames/gn"
)

func RequestError(acc, url string, err error) error {
	msg := "Cannot fetch TED summary for <em>%s</em>"
	vars := []any{acc}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FetchRequestError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: GET %s: %w", fn.Name(), url, err),
	}
}

func StatusError(acc, url string, status int) error {
	msg := "TED service returned status %d for <em>%s</em>"
	vars := []any{status, acc}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FetchStatusError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: GET %s: status %d", fn.Name(), url, status),
	}
}

func DecodeError(acc string, err error) error {
	msg := "Cannot decode TED summary for <em>%s</em>"
	vars := []any{acc}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FetchDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot decode %s: %w", fn.Name(), acc, err),
	}
}
