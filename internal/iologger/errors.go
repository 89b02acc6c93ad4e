package iologger

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnpin/pkg/errcode"
)

// CreateLogFileError reports a log file that cannot be opened for writing.
func CreateLogFileError(path string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  "Cannot open log file <em>%s</em>, check log.destination in config.yaml",
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: open %s: %w", fn, path, err),
	}
}
