// Package schema provides the table models of the GNpin catalogue.
//
// Struct tags are the declarative contract every storage driver honors:
// `db` names the column (with an optional ",auto" flag for store-assigned
// values), `ddl` gives its portable type and nullability, `gorm` maps the
// same column for the ORM driver. Optional columns are pointers.
package schema

// Model is a row of one of the catalogue tables.
type Model interface {
	// TableName returns the table name for this model.
	TableName() string

	// ForeignKeys returns foreign-key constraints of the table.
	ForeignKeys() []ForeignKey
}

// ForeignKey describes a column that references a key of another table.
type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
}

// Bird is a species from the eBird taxonomy. Bird rows are owned
// by the taxonomy importer and replaced on every refresh.
type Bird struct {
	// EBirdCode is the eBird species code, for example "ostric2".
	EBirdCode string `db:"ebird_code" ddl:"TEXT PRIMARY KEY" gorm:"column:ebird_code;primaryKey" json:"ebird_code"`

	// CommonName is the English common name of the species.
	CommonName string `db:"common_name" ddl:"TEXT NOT NULL" gorm:"column:common_name;not null" json:"common_name"`

	// FamilyCommonName is the common name of the family.
	FamilyCommonName *string `db:"family_common_name" ddl:"TEXT" gorm:"column:family_common_name" json:"family_common_name"`

	// Order is the taxonomic order, for example "Struthioniformes".
	Order string `db:"bird_order" ddl:"TEXT NOT NULL" gorm:"column:bird_order;not null" json:"order"`

	// Family is the scientific name of the family.
	Family string `db:"family" ddl:"TEXT NOT NULL" gorm:"column:family;not null" json:"family"`

	// Genus is the first token of the scientific name.
	Genus string `db:"genus" ddl:"TEXT NOT NULL" gorm:"column:genus;not null" json:"genus"`

	// Species is the second token (specific epithet) of the scientific name.
	Species string `db:"species" ddl:"TEXT NOT NULL" gorm:"column:species;not null" json:"species"`
}

func (Bird) TableName() string { return "birds" }

func (Bird) ForeignKeys() []ForeignKey { return nil }

// Subspecies is an eBird ISSF (identifiable sub-specific group).
type Subspecies struct {
	EBirdCode      string `db:"ebird_code" ddl:"TEXT PRIMARY KEY" gorm:"column:ebird_code;primaryKey" json:"ebird_code"`
	CommonName     string `db:"common_name" ddl:"TEXT NOT NULL" gorm:"column:common_name;not null" json:"common_name"`
	SubspeciesName string `db:"subspecies_name" ddl:"TEXT NOT NULL" gorm:"column:subspecies_name;not null" json:"subspecies_name"`

	// SpeciesCode references Bird.EBirdCode. It is not checked against
	// the species of pins that use this subspecies.
	SpeciesCode string `db:"species" ddl:"TEXT NOT NULL" gorm:"column:species;not null" json:"species"`

	Bird *Bird `db:"-" gorm:"foreignKey:SpeciesCode;references:EBirdCode" json:"-"`
}

func (Subspecies) TableName() string { return "subspecies" }

func (Subspecies) ForeignKeys() []ForeignKey {
	return []ForeignKey{
		{Column: "species", RefTable: "birds", RefColumn: "ebird_code"},
	}
}

// Supergroup is a top-level organisation, such as a charity.
type Supergroup struct {
	Name        string  `db:"name" ddl:"TEXT PRIMARY KEY" gorm:"column:name;primaryKey" json:"name"`
	ShortName   *string `db:"short_name" ddl:"TEXT" gorm:"column:short_name" json:"short_name"`
	Description *string `db:"description" ddl:"TEXT" gorm:"column:description" json:"description"`
	Website     *string `db:"website" ddl:"TEXT" gorm:"column:website" json:"website"`
}

func (Supergroup) TableName() string { return "supergroups" }

func (Supergroup) ForeignKeys() []ForeignKey { return nil }

// Source is an organisation or artist that issues pins. It may belong
// to a Supergroup.
type Source struct {
	Name string `db:"name" ddl:"TEXT PRIMARY KEY" gorm:"column:name;primaryKey" json:"name"`

	// Type is "Charity", "Artist" or "Other".
	Type        *string `db:"type" ddl:"TEXT" gorm:"column:type" json:"type"`
	ShortName   *string `db:"short_name" ddl:"TEXT" gorm:"column:short_name" json:"short_name"`
	Description *string `db:"description" ddl:"TEXT" gorm:"column:description" json:"description"`

	// SupergroupName references Supergroup.Name.
	SupergroupName *string `db:"parent" ddl:"TEXT" gorm:"column:parent" json:"parent"`
	Website        *string `db:"website" ddl:"TEXT" gorm:"column:website" json:"website"`

	Supergroup *Supergroup `db:"-" gorm:"foreignKey:SupergroupName;references:Name" json:"-"`
}

func (Source) TableName() string { return "sources" }

func (Source) ForeignKeys() []ForeignKey {
	return []ForeignKey{
		{Column: "parent", RefTable: "supergroups", RefColumn: "name"},
	}
}

// Subgroup is a division of a Source. A subgroup cannot exist without
// its source.
type Subgroup struct {
	Name        string  `db:"name" ddl:"TEXT PRIMARY KEY" gorm:"column:name;primaryKey" json:"name"`
	ShortName   *string `db:"short_name" ddl:"TEXT" gorm:"column:short_name" json:"short_name"`
	Description *string `db:"description" ddl:"TEXT" gorm:"column:description" json:"description"`

	// SourceName references Source.Name.
	SourceName string  `db:"parent" ddl:"TEXT NOT NULL" gorm:"column:parent;not null" json:"parent"`
	Website    *string `db:"website" ddl:"TEXT" gorm:"column:website" json:"website"`

	Source *Source `db:"-" gorm:"foreignKey:SourceName;references:Name" json:"-"`
}

func (Subgroup) TableName() string { return "subgroups" }

func (Subgroup) ForeignKeys() []ForeignKey {
	return []ForeignKey{
		{Column: "parent", RefTable: "sources", RefColumn: "name"},
	}
}

// Pin is one enamel pin of the collection.
type Pin struct {
	// ID is assigned by the store. Values supplied by callers are ignored.
	ID int64 `db:"id,auto" ddl:"INTEGER PRIMARY KEY" gorm:"column:id;primaryKey;autoIncrement" json:"id"`

	SpeciesCode    string  `db:"species" ddl:"TEXT NOT NULL" gorm:"column:species;not null" json:"species"`
	SubspeciesCode *string `db:"subspecies" ddl:"TEXT" gorm:"column:subspecies" json:"subspecies"`
	SourceName     string  `db:"source" ddl:"TEXT NOT NULL" gorm:"column:source;not null" json:"source"`
	SubgroupName   *string `db:"subgroup" ddl:"TEXT" gorm:"column:subgroup" json:"subgroup"`

	Bird       *Bird       `db:"-" gorm:"foreignKey:SpeciesCode;references:EBirdCode" json:"-"`
	Subspecies *Subspecies `db:"-" gorm:"foreignKey:SubspeciesCode;references:EBirdCode" json:"-"`
	Source     *Source     `db:"-" gorm:"foreignKey:SourceName;references:Name" json:"-"`
	Subgroup   *Subgroup   `db:"-" gorm:"foreignKey:SubgroupName;references:Name" json:"-"`
}

func (Pin) TableName() string { return "pins" }

func (Pin) ForeignKeys() []ForeignKey {
	return []ForeignKey{
		{Column: "species", RefTable: "birds", RefColumn: "ebird_code"},
		{Column: "subspecies", RefTable: "subspecies", RefColumn: "ebird_code"},
		{Column: "source", RefTable: "sources", RefColumn: "name"},
		{Column: "subgroup", RefTable: "subgroups", RefColumn: "name"},
	}
}

// Ptr returns a pointer to s, or nil for an empty string.
// It fills optional columns.
func Ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the value of an optional column, or an empty string.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
