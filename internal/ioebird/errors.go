package ioebird

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnpin/pkg/errcode"
)

func NoAPIKeyError() error {
	msg := "eBird API key is not set, add it to config.yaml " +
		"or export <em>GNPIN_EBIRD_API_KEY</em>"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.EBirdNoAPIKeyError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: eBird API key is empty", fn),
	}
}

// ConnectionError reports an unreachable eBird API or a response with
// a status other than 200. Status is 0 if no response was received.
func ConnectionError(url string, status int, err error) error {
	msg := "Cannot get data from eBird <em>%s</em> (status %d)"
	vars := []any{url, status}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.EBirdConnectionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: request to %s failed: %w", fn, url, err),
	}
}

func DecodeError(what string, err error) error {
	msg := "Cannot decode eBird <em>%s</em>"
	vars := []any{what}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.EBirdDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot decode %s: %w", fn, what, err),
	}
}
