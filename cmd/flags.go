package cmd

import (
	"context"
	"strings"

	"github.com/gnames/gnpin/internal/iofs"
	"github.com/gnames/gnpin/internal/iostore"
	"github.com/gnames/gnpin/pkg/config"
	"github.com/gnames/gnpin/pkg/schema"
	"github.com/gnames/gnpin/pkg/store"
	"github.com/spf13/cobra"
)

// flagOptions converts persistent flags set by a user into config options.
func flagOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	flags := cmd.Flags()
	if flags.Changed("driver") {
		s, _ := flags.GetString("driver")
		res = append(res, config.OptDatabaseDriver(s))
	}
	if flags.Changed("engine") {
		s, _ := flags.GetString("engine")
		res = append(res, config.OptDatabaseEngine(s))
	}
	return res
}

// stringFlag returns the value of a string flag as an optional column.
func stringFlag(cmd *cobra.Command, name string) *string {
	s, _ := cmd.Flags().GetString(name)
	return schema.Ptr(strings.TrimSpace(s))
}

// openStore opens the configured store with all tables in place.
// The caller must close it.
func openStore(ctx context.Context) (store.Store, error) {
	if cfg.Database.Engine == config.EngineSQLite {
		if err := iofs.EnsureParentDir(cfg.DatabasePath()); err != nil {
			return nil, err
		}
	}

	st, err := iostore.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err = store.Init(ctx, st); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}
