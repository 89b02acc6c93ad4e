// Package taxonomy converts eBird taxonomy records into catalogue rows.
package taxonomy

import (
	"context"
	"strings"

	"github.com/gnames/gnlib"
	"github.com/gnames/gnpin/pkg/schema"
)

// Categories of eBird taxa.
const (
	CategorySpecies    = "species"
	CategoryISSF       = "issf"
	CategorySlash      = "slash"
	CategoryHybrid     = "hybrid"
	CategorySpuh       = "spuh"
	CategoryForm       = "form"
	CategoryDomestic   = "domestic"
	CategoryIntergrade = "intergrade"
)

// Taxon is one record of the eBird taxonomy.
type Taxon struct {
	SciName       string   `json:"sciName"`
	ComName       string   `json:"comName"`
	SpeciesCode   string   `json:"speciesCode"`
	Category      string   `json:"category"`
	TaxonOrder    float64  `json:"taxonOrder"`
	BandingCodes  []string `json:"bandingCodes"`
	ComNameCodes  []string `json:"comNameCodes"`
	SciNameCodes  []string `json:"sciNameCodes"`
	Order         string   `json:"order"`
	FamilyCode    string   `json:"familyCode"`
	FamilyComName string   `json:"familyComName"`
	FamilySciName string   `json:"familySciName"`
	ReportAs      string   `json:"reportAs"`
	Extinct       bool     `json:"extinct"`
}

// Client reads the eBird reference API.
type Client interface {
	// Taxonomy returns the full eBird taxonomy.
	Taxonomy(ctx context.Context) ([]Taxon, error)

	// TaxaByCodes returns taxonomy records of the given species codes.
	TaxaByCodes(ctx context.Context, codes []string) ([]Taxon, error)

	// Forms returns codes of all taxa reported within a species,
	// the species itself included.
	Forms(ctx context.Context, speciesCode string) ([]string, error)
}

// Importer refreshes catalogue tables from eBird.
type Importer interface {
	// Update replaces the Bird table with species of the current eBird
	// taxonomy. It returns the number of imported birds.
	Update(ctx context.Context) (int, error)

	// ImportSubspecies adds subspecies (ISSF) of a species to the
	// Subspecies table. It returns the number of found subspecies.
	ImportSubspecies(ctx context.Context, speciesCode string) (int, error)
}

// FilterSpecies keeps taxa of the species category only.
func FilterSpecies(taxa []Taxon) []Taxon {
	var res []Taxon
	for _, v := range taxa {
		if v.Category == CategorySpecies {
			res = append(res, v)
		}
	}
	return res
}

// ToBird projects a species record to a Bird row. Genus and species are
// the first two tokens of the scientific name.
func ToBird(t Taxon) (schema.Bird, error) {
	var res schema.Bird
	err := checkFields(t,
		"speciesCode", t.SpeciesCode,
		"comName", t.ComName,
		"order", t.Order,
		"familySciName", t.FamilySciName,
		"sciName", t.SciName,
	)
	if err != nil {
		return res, err
	}

	words := strings.Fields(t.SciName)
	if len(words) < 2 {
		return res, MalformedError(t.SpeciesCode, "sciName")
	}

	res = schema.Bird{
		EBirdCode:        t.SpeciesCode,
		CommonName:       gnlib.FixUtf8(t.ComName),
		FamilyCommonName: schema.Ptr(gnlib.FixUtf8(t.FamilyComName)),
		Order:            t.Order,
		Family:           t.FamilySciName,
		Genus:            words[0],
		Species:          words[1],
	}
	return res, nil
}

// ToBirds filters species out of taxa and projects them to Bird rows.
// The first malformed record aborts the conversion.
func ToBirds(taxa []Taxon) ([]schema.Bird, error) {
	species := FilterSpecies(taxa)
	res := make([]schema.Bird, 0, len(species))
	for _, v := range species {
		bird, err := ToBird(v)
		if err != nil {
			return nil, err
		}
		res = append(res, bird)
	}
	return res, nil
}

// ToSubspecies projects an ISSF record to a Subspecies row of the species.
// The subspecies name is the part of the scientific name that follows
// the binomial, for example "camelus/rothschildi" for
// "Struthio camelus camelus/rothschildi".
func ToSubspecies(t Taxon, speciesCode string) (schema.Subspecies, error) {
	var res schema.Subspecies
	err := checkFields(t,
		"speciesCode", t.SpeciesCode,
		"comName", t.ComName,
		"sciName", t.SciName,
	)
	if err != nil {
		return res, err
	}

	words := strings.Fields(t.SciName)
	if len(words) < 3 {
		return res, MalformedError(t.SpeciesCode, "sciName")
	}

	res = schema.Subspecies{
		EBirdCode:      t.SpeciesCode,
		CommonName:     gnlib.FixUtf8(t.ComName),
		SubspeciesName: strings.Join(words[2:], " "),
		SpeciesCode:    speciesCode,
	}
	return res, nil
}

// SubspeciesOf selects ISSF records among taxa and projects them
// to Subspecies rows of the species.
func SubspeciesOf(taxa []Taxon, speciesCode string) ([]schema.Subspecies, error) {
	var res []schema.Subspecies
	for _, v := range taxa {
		if v.Category != CategoryISSF {
			continue
		}
		ssp, err := ToSubspecies(v, speciesCode)
		if err != nil {
			return nil, err
		}
		res = append(res, ssp)
	}
	return res, nil
}

// checkFields takes pairs of field names and values.
func checkFields(t Taxon, pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return MalformedError(t.SpeciesCode, pairs[i])
		}
	}
	return nil
}
