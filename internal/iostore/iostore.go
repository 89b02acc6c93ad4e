// Package iostore implements the storage drivers of GNpin.
// This is an impure I/O package that implements contracts
// defined in pkg/store.
//
// Two drivers are available: "sql" issues parameterized statements
// through database/sql, "gorm" delegates to GORM. Both work on SQLite
// (modernc.org/sqlite) or PostgreSQL (pgx).
package iostore

import (
	"context"
	"log/slog"

	"github.com/gnames/gnpin/pkg/config"
	"github.com/gnames/gnpin/pkg/store"
)

// New opens the database and returns the store of the configured driver.
// The caller owns the store and must close it.
func New(ctx context.Context, cfg *config.Config) (store.Store, error) {
	driver := cfg.Database.Driver
	if driver != config.DriverSQL && driver != config.DriverGORM {
		return nil, UnknownDriverError(driver)
	}

	batchSize := cfg.Database.BatchSize
	if batchSize < 1 {
		batchSize = config.New().Database.BatchSize
	}

	c, err := open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var res store.Store
	switch driver {
	case config.DriverGORM:
		res, err = newGORMStore(c, batchSize)
		if err != nil {
			c.close()
			return nil, err
		}
	default:
		res = newSQLStore(c, batchSize)
	}

	slog.Info("Store is ready",
		"driver", driver,
		"engine", c.engine,
		"batch_size", batchSize,
	)
	return res, nil
}
