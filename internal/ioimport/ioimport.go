// Package ioimport implements taxonomy.Importer. It refreshes the Bird
// table from eBird and adds subspecies of single species on demand.
// This is an impure I/O package.
package ioimport

import (
	"context"
	"log/slog"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnpin/pkg/config"
	"github.com/gnames/gnpin/pkg/schema"
	"github.com/gnames/gnpin/pkg/store"
	"github.com/gnames/gnpin/pkg/taxonomy"
)

type importer struct {
	st        store.Store
	client    taxonomy.Client
	progress  bool
	chunkSize int
}

// New creates an Importer that writes into st and reads eBird via client.
func New(
	cfg *config.Config,
	st store.Store,
	client taxonomy.Client,
) taxonomy.Importer {
	chunk := cfg.Database.BatchSize
	if chunk < 1 {
		chunk = config.New().Database.BatchSize
	}
	return &importer{
		st:        st,
		client:    client,
		progress:  cfg.Import.Progress,
		chunkSize: chunk,
	}
}

// Update downloads the eBird taxonomy and replaces the Bird table with
// its species. The table is not touched if download or conversion fails.
// Drop and create commit before the insert, so a failed insert leaves
// the table with fewer birds; the next run repairs it.
func (im *importer) Update(ctx context.Context) (int, error) {
	start := time.Now()

	taxa, err := im.client.Taxonomy(ctx)
	if err != nil {
		return 0, err
	}

	birds, err := taxonomy.ToBirds(taxa)
	if err != nil {
		return 0, err
	}
	slog.Info("Selected species from eBird taxonomy",
		"records", humanize.Comma(int64(len(taxa))),
		"species", humanize.Comma(int64(len(birds))),
	)

	if err = im.replace(ctx, birds); err != nil {
		return 0, err
	}

	slog.Info("Bird table replaced",
		"birds", len(birds),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return len(birds), nil
}

func (im *importer) replace(ctx context.Context, birds []schema.Bird) error {
	tbl := im.st.Birds()
	if err := tbl.Drop(ctx); err != nil {
		return ReplaceError("drop", err)
	}
	if err := tbl.Create(ctx); err != nil {
		return ReplaceError("create", err)
	}

	if !im.progress {
		if err := tbl.AddData(ctx, birds); err != nil {
			return ReplaceError("insert", err)
		}
		return nil
	}

	bar := pb.Full.Start(len(birds))
	bar.Set("prefix", "Importing birds: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	for i := 0; i < len(birds); i += im.chunkSize {
		end := min(i+im.chunkSize, len(birds))
		if err := tbl.AddData(ctx, birds[i:end]); err != nil {
			return ReplaceError("insert", err)
		}
		bar.Add(end - i)
	}
	return nil
}

// ImportSubspecies adds ISSF subspecies of a stored species. Existing
// subspecies are kept, duplicates are ignored.
func (im *importer) ImportSubspecies(
	ctx context.Context,
	speciesCode string,
) (int, error) {
	forms, err := im.client.Forms(ctx, speciesCode)
	if err != nil {
		return 0, err
	}
	if len(forms) == 0 {
		return 0, NoFormsError(speciesCode)
	}

	var codes []string
	for _, v := range forms {
		if v != speciesCode {
			codes = append(codes, v)
		}
	}
	if len(codes) == 0 {
		return 0, nil
	}

	taxa, err := im.client.TaxaByCodes(ctx, codes)
	if err != nil {
		return 0, err
	}

	ssp, err := taxonomy.SubspeciesOf(taxa, speciesCode)
	if err != nil {
		return 0, err
	}

	if err = im.st.Subspecies().AddData(ctx, ssp); err != nil {
		return 0, SubspeciesError(speciesCode, err)
	}

	slog.Info("Subspecies imported",
		"species", speciesCode,
		"forms", len(forms),
		"subspecies", len(ssp),
	)
	return len(ssp), nil
}
