package iostore

import (
	"context"

	"github.com/gnames/gnpin/pkg/config"
	"github.com/gnames/gnpin/pkg/schema"
	"github.com/gnames/gnpin/pkg/store"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// gormStore implements store.Store with GORM over the same connection
// the sql driver uses.
type gormStore struct {
	c           *conn
	db          *gorm.DB
	birds       *gormTable[schema.Bird]
	subspecies  *gormTable[schema.Subspecies]
	supergroups *gormTable[schema.Supergroup]
	sources     *gormTable[schema.Source]
	subgroups   *gormTable[schema.Subgroup]
	pins        *gormTable[schema.Pin]
}

func newGORMStore(c *conn, batchSize int) (store.Store, error) {
	var dialector gorm.Dialector
	switch c.engine {
	case config.EnginePostgres:
		dialector = postgres.New(postgres.Config{Conn: c.db})
	default:
		dialector = sqlite.New(sqlite.Config{DriverName: "sqlite", Conn: c.db})
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, ConnectionError(c.engine, "gorm", err)
	}

	res := &gormStore{
		c:           c,
		db:          db,
		birds:       newGORMTable[schema.Bird](db, c.engine, batchSize),
		subspecies:  newGORMTable[schema.Subspecies](db, c.engine, batchSize),
		supergroups: newGORMTable[schema.Supergroup](db, c.engine, batchSize),
		sources:     newGORMTable[schema.Source](db, c.engine, batchSize),
		subgroups:   newGORMTable[schema.Subgroup](db, c.engine, batchSize),
		pins:        newGORMTable[schema.Pin](db, c.engine, batchSize),
	}
	return res, nil
}

func (s *gormStore) Birds() store.Table[schema.Bird]             { return s.birds }
func (s *gormStore) Subspecies() store.Table[schema.Subspecies]   { return s.subspecies }
func (s *gormStore) Supergroups() store.Table[schema.Supergroup] { return s.supergroups }
func (s *gormStore) Sources() store.Table[schema.Source]         { return s.sources }
func (s *gormStore) Subgroups() store.Table[schema.Subgroup]     { return s.subgroups }
func (s *gormStore) Pins() store.Table[schema.Pin]               { return s.pins }

func (s *gormStore) Driver() string { return config.DriverGORM }

// Init creates all missing tables with GORM migrator.
func (s *gormStore) Init(ctx context.Context) error {
	if err := schema.Migrate(s.db.WithContext(ctx)); err != nil {
		return CreateTableError("all", err)
	}
	return nil
}

func (s *gormStore) Close() error { return s.c.close() }
