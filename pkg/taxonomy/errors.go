package taxonomy

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnpin/pkg/errcode"
)

// MalformedError reports a taxon record without an expected field.
func MalformedError(code, field string) error {
	msg := "eBird record <em>%s</em> has no valid <em>%s</em>"
	vars := []any{code, field}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TaxonMalformedError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: malformed taxon %q: field %s",
			fn, code, field),
	}
}
