package iostore

import (
	"github.com/gnames/gnpin/pkg/config"
	"github.com/gnames/gnpin/pkg/schema"
	"github.com/gnames/gnpin/pkg/store"
)

// sqlStore implements store.Store with database/sql statements.
type sqlStore struct {
	c           *conn
	birds       *sqlTable[schema.Bird]
	subspecies  *sqlTable[schema.Subspecies]
	supergroups *sqlTable[schema.Supergroup]
	sources     *sqlTable[schema.Source]
	subgroups   *sqlTable[schema.Subgroup]
	pins        *sqlTable[schema.Pin]
}

func newSQLStore(c *conn, batchSize int) store.Store {
	return &sqlStore{
		c:           c,
		birds:       newSQLTable[schema.Bird](c, batchSize),
		subspecies:  newSQLTable[schema.Subspecies](c, batchSize),
		supergroups: newSQLTable[schema.Supergroup](c, batchSize),
		sources:     newSQLTable[schema.Source](c, batchSize),
		subgroups:   newSQLTable[schema.Subgroup](c, batchSize),
		pins:        newSQLTable[schema.Pin](c, batchSize),
	}
}

func (s *sqlStore) Birds() store.Table[schema.Bird]             { return s.birds }
func (s *sqlStore) Subspecies() store.Table[schema.Subspecies]   { return s.subspecies }
func (s *sqlStore) Supergroups() store.Table[schema.Supergroup] { return s.supergroups }
func (s *sqlStore) Sources() store.Table[schema.Source]         { return s.sources }
func (s *sqlStore) Subgroups() store.Table[schema.Subgroup]     { return s.subgroups }
func (s *sqlStore) Pins() store.Table[schema.Pin]               { return s.pins }

func (s *sqlStore) Driver() string { return config.DriverSQL }

func (s *sqlStore) Close() error { return s.c.close() }
