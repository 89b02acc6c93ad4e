package iostore

import (
	"context"
	"log/slog"
	"slices"

	"github.com/gnames/gnpin/pkg/config"
	"github.com/gnames/gnpin/pkg/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormTable delegates every operation to GORM.
type gormTable[T schema.Model] struct {
	db        *gorm.DB
	engine    string
	tbl       schema.Table
	batchSize int
}

func newGORMTable[T schema.Model](db *gorm.DB, engine string, batchSize int) *gormTable[T] {
	var m T
	return &gormTable[T]{
		db:        db,
		engine:    engine,
		tbl:       schema.Describe(m),
		batchSize: batchSize,
	}
}

func (g *gormTable[T]) Create(ctx context.Context) error {
	var m T
	mig := g.db.WithContext(ctx).Migrator()
	if mig.HasTable(&m) {
		return nil
	}
	if err := mig.CreateTable(&m); err != nil {
		return CreateTableError(g.tbl.Name, err)
	}
	return nil
}

func (g *gormTable[T]) Drop(ctx context.Context) error {
	var m T
	err := g.db.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		if g.engine == config.EngineSQLite {
			if err := tx.Exec("PRAGMA foreign_keys = OFF").Error; err != nil {
				return err
			}
			defer tx.Exec("PRAGMA foreign_keys = ON")
		}
		return tx.Migrator().DropTable(&m)
	})
	if err != nil {
		return DropTableError(g.tbl.Name, err)
	}
	return nil
}

// AddData works on a copy of rows, so store-assigned values are not
// written back to the caller's slice.
func (g *gormTable[T]) AddData(ctx context.Context, rows []T) error {
	if len(rows) == 0 {
		return nil
	}

	batch := slices.Clone(rows)
	for i := range batch {
		schema.ResetAuto(&batch[i], g.tbl)
	}

	err := g.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		CreateInBatches(batch, g.batchSize).Error
	if err != nil {
		return InsertError(g.tbl.Name, 0, err)
	}
	slog.Debug("Rows sent", "table", g.tbl.Name, "rows", len(rows))
	return nil
}

func (g *gormTable[T]) GetData(ctx context.Context) ([]T, error) {
	var res []T
	if err := g.db.WithContext(ctx).Find(&res).Error; err != nil {
		return nil, SelectError(g.tbl.Name, err)
	}
	return res, nil
}
