// Package catalog provides lookups and single-row additions used by the
// user interface of GNpin.
package catalog

import (
	"context"

	"github.com/gnames/gnpin/pkg/fuzzy"
	"github.com/gnames/gnpin/pkg/schema"
	"github.com/gnames/gnpin/pkg/store"
)

// DefaultThreshold is the minimal fuzzy score of a search match.
const DefaultThreshold = 80

// Source types offered to users.
var SourceTypes = []string{"Charity", "Artist", "Other"}

// Catalog works with the catalogue tables of a store.
type Catalog struct {
	st store.Store
}

// New creates a Catalog over an open store.
func New(st store.Store) *Catalog {
	return &Catalog{st: st}
}

// Store returns the underlying store for direct table access.
func (c *Catalog) Store() store.Store {
	return c.st
}

// SearchBirds finds birds with a common name similar to name.
func (c *Catalog) SearchBirds(
	ctx context.Context,
	name string,
	threshold int,
) ([]fuzzy.Match[schema.Bird], error) {
	return Search(ctx, c.st.Birds(), name, "common_name", threshold)
}

// SearchSources finds sources with a name similar to name.
func (c *Catalog) SearchSources(
	ctx context.Context,
	name string,
	threshold int,
) ([]fuzzy.Match[schema.Source], error) {
	return Search(ctx, c.st.Sources(), name, "name", threshold)
}

// Search finds rows of a table whose attribute is similar to the query.
func Search[T schema.Model](
	ctx context.Context,
	tbl store.Table[T],
	query, attr string,
	threshold int,
) ([]fuzzy.Match[T], error) {
	rows, err := tbl.GetData(ctx)
	if err != nil {
		return nil, err
	}
	get := func(row T) (string, bool) {
		return schema.Value(row, attr)
	}
	return fuzzy.Search(rows, query, get, threshold), nil
}

// SourcesByType returns sources of the given type.
func (c *Catalog) SourcesByType(
	ctx context.Context,
	typ string,
) ([]schema.Source, error) {
	return filter(ctx, c.st.Sources(), func(s schema.Source) bool {
		return schema.Deref(s.Type) == typ
	})
}

// SubgroupsOf returns subgroups of a source.
func (c *Catalog) SubgroupsOf(
	ctx context.Context,
	source string,
) ([]schema.Subgroup, error) {
	return filter(ctx, c.st.Subgroups(), func(s schema.Subgroup) bool {
		return s.SourceName == source
	})
}

// SubspeciesOf returns stored subspecies of a species.
func (c *Catalog) SubspeciesOf(
	ctx context.Context,
	speciesCode string,
) ([]schema.Subspecies, error) {
	return filter(ctx, c.st.Subspecies(), func(s schema.Subspecies) bool {
		return s.SpeciesCode == speciesCode
	})
}

// Pins returns all pins of the collection.
func (c *Catalog) Pins(ctx context.Context) ([]schema.Pin, error) {
	return c.st.Pins().GetData(ctx)
}

// AddPin adds a pin. Its ID is assigned by the store.
func (c *Catalog) AddPin(ctx context.Context, p schema.Pin) error {
	return c.st.Pins().AddData(ctx, []schema.Pin{p})
}

// AddSupergroup adds a top-level organisation.
func (c *Catalog) AddSupergroup(ctx context.Context, s schema.Supergroup) error {
	return c.st.Supergroups().AddData(ctx, []schema.Supergroup{s})
}

// AddSource adds a pin source.
func (c *Catalog) AddSource(ctx context.Context, s schema.Source) error {
	return c.st.Sources().AddData(ctx, []schema.Source{s})
}

// AddSubgroup adds a subgroup of a source.
func (c *Catalog) AddSubgroup(ctx context.Context, s schema.Subgroup) error {
	return c.st.Subgroups().AddData(ctx, []schema.Subgroup{s})
}

// AddSubspecies adds a subspecies of a stored bird.
func (c *Catalog) AddSubspecies(ctx context.Context, s schema.Subspecies) error {
	return c.st.Subspecies().AddData(ctx, []schema.Subspecies{s})
}

func filter[T schema.Model](
	ctx context.Context,
	tbl store.Table[T],
	keep func(T) bool,
) ([]T, error) {
	rows, err := tbl.GetData(ctx)
	if err != nil {
		return nil, err
	}
	var res []T
	for _, v := range rows {
		if keep(v) {
			res = append(res, v)
		}
	}
	return res, nil
}
