package ioimport

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnpin/pkg/errcode"
)

// ReplaceError reports a failed step of the Bird table replacement.
func ReplaceError(step string, err error) error {
	msg := "Cannot replace birds, <em>%s</em> step failed"
	vars := []any{step}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ImportReplaceError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s of birds failed: %w", fn, step, err),
	}
}

func NoFormsError(code string) error {
	msg := "eBird knows no forms of <em>%s</em>"
	vars := []any{code}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TaxonNoFormsError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: no forms for species %q", fn, code),
	}
}

func SubspeciesError(code string, err error) error {
	msg := "Cannot save subspecies of <em>%s</em>, is the species imported?"
	vars := []any{code}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ImportSubspeciesError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot save subspecies of %s: %w", fn, code, err),
	}
}
