// Package store defines the storage contract of the catalogue.
//
// The rest of GNpin is written only against these interfaces, so the
// active storage driver is swapped by configuration alone.
package store

import (
	"context"

	"github.com/gnames/gnpin/pkg/schema"
)

// Table gives access to one table of the catalogue.
type Table[T schema.Model] interface {
	// Create makes the table with its columns and foreign-key constraints.
	// It does nothing if the table already exists.
	Create(ctx context.Context) error

	// Drop removes the table. It does not fail if the table is absent.
	Drop(ctx context.Context) error

	// AddData inserts rows. Rows with an already existing primary key are
	// skipped silently. Any other constraint violation is an error.
	// Rows are sent in batches, each batch commits on its own.
	AddData(ctx context.Context, rows []T) error

	// GetData returns every row of the table in the order the store
	// keeps them. It fails if the table does not exist.
	GetData(ctx context.Context) ([]T, error)
}

// Store owns the connection to the catalogue database and one Table per
// entity. The owner must call Close on every exit path.
type Store interface {
	Birds() Table[schema.Bird]
	Subspecies() Table[schema.Subspecies]
	Supergroups() Table[schema.Supergroup]
	Sources() Table[schema.Source]
	Subgroups() Table[schema.Subgroup]
	Pins() Table[schema.Pin]

	// Driver returns the name of the active storage driver.
	Driver() string

	// Close releases the database connection.
	Close() error
}

// Initializer is implemented by stores that create all their tables at
// once.
type Initializer interface {
	Init(ctx context.Context) error
}

// Init creates all tables of the store, parents first.
// It is safe to run on an existing database.
func Init(ctx context.Context, s Store) error {
	if in, ok := s.(Initializer); ok {
		return in.Init(ctx)
	}

	creators := []interface {
		Create(context.Context) error
	}{
		s.Birds(),
		s.Subspecies(),
		s.Supergroups(),
		s.Sources(),
		s.Subgroups(),
		s.Pins(),
	}
	for _, c := range creators {
		if err := c.Create(ctx); err != nil {
			return err
		}
	}
	return nil
}
