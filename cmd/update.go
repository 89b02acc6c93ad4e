/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnpin/internal/ioebird"
	"github.com/gnames/gnpin/internal/ioimport"
	"github.com/gnames/gnpin/pkg/config"
	"github.com/spf13/cobra"
)

// getUpdateCmd returns the update command.
func getUpdateCmd() *cobra.Command {
	var progress bool

	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Replace birds with the current eBird taxonomy",
		Long: `Download the eBird taxonomy and replace the birds table with its species.

Only records of the "species" category are kept. The birds table is
replaced only after the download and conversion succeed.

The eBird API key is read from config.yaml or GNPIN_EBIRD_API_KEY.

Examples:
  gnpin update
  gnpin update --progress`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if progress {
				cfg.Update([]config.Option{config.OptImportProgress(true)})
			}
			return runUpdate(cmd, args)
		},
	}

	updateCmd.Flags().BoolVarP(&progress, "progress", "p",
		false, "show progress bar during import")

	return updateCmd
}

func runUpdate(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	st, err := openStore(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer st.Close()

	gn.Info("Downloading eBird taxonomy (locale <em>%s</em>)...", cfg.EBird.Locale)
	im := ioimport.New(cfg, st, ioebird.New(cfg.EBird))
	num, err := im.Update(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Imported <em>%s</em> bird species", humanize.Comma(int64(num)))
	return nil
}

// getSubspeciesCmd returns the subspecies command.
func getSubspeciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subspecies CODE",
		Short: "Import subspecies of a bird species from eBird",
		Long: `Import identifiable subspecies groups (ISSF) of a species.

CODE is the eBird species code of a bird already in the catalogue,
for example "rocpig" for Rock Pigeon.

Examples:
  gnpin subspecies rocpig`,
		Args: cobra.ExactArgs(1),
		RunE: runSubspecies,
	}
}

func runSubspecies(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	code := args[0]

	st, err := openStore(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer st.Close()

	im := ioimport.New(cfg, st, ioebird.New(cfg.EBird))
	num, err := im.ImportSubspecies(ctx, code)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Imported <em>%s</em> subspecies of <em>%s</em>",
		humanize.Comma(int64(num)), code)
	return nil
}
