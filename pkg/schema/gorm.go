package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models in creation order. A table comes
// after every table it references.
func AllModels() []Model {
	return []Model{
		&Bird{},
		&Subspecies{},
		&Supergroup{},
		&Source{},
		&Subgroup{},
		&Pin{},
	}
}

// Migrate creates missing tables with GORM in creation order.
func Migrate(db *gorm.DB) error {
	m := db.Migrator()
	for _, v := range AllModels() {
		if m.HasTable(v) {
			continue
		}
		if err := m.CreateTable(v); err != nil {
			return err
		}
	}
	return nil
}
