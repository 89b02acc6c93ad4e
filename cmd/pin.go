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
	"strconv"
	"strings"

	"github.com/gnames/gnpin/pkg/catalog"
	"github.com/gnames/gnpin/pkg/schema"
	"github.com/gnames/gnpin/pkg/store"
	"github.com/spf13/cobra"
)

// getPinCmd returns the pin command with its subcommands.
func getPinCmd() *cobra.Command {
	pinCmd := &cobra.Command{
		Use:   "pin",
		Short: "Manage pins of the collection",
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a pin",
		Long: `Add a pin of a bird species issued by a source.

The species, source and optional subspecies and subgroup must already
be in the catalogue. The pin ID is assigned automatically.

Examples:
  gnpin pin add --species ostric2 --source RSPB
  gnpin pin add --species rocpig --subspecies rocpig1 --source RSPB --subgroup "RSPB Exeter"`,
		Args: cobra.NoArgs,
		RunE: runPinAdd,
	}
	addCmd.Flags().String("species", "", "eBird code of the species")
	addCmd.Flags().String("subspecies", "", "eBird code of the subspecies")
	addCmd.Flags().String("source", "", "name of the source")
	addCmd.Flags().String("subgroup", "", "name of the subgroup")
	_ = addCmd.MarkFlagRequired("species")
	_ = addCmd.MarkFlagRequired("source")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List pins",
		Args:  cobra.NoArgs,
		RunE:  runPinList,
	}
	listCmd.Flags().Bool("json", false, "print rows as JSON")

	pinCmd.AddCommand(addCmd, listCmd)
	return pinCmd
}

func runPinAdd(cmd *cobra.Command, _ []string) error {
	p := schema.Pin{
		SpeciesCode:    schema.Deref(stringFlag(cmd, "species")),
		SubspeciesCode: stringFlag(cmd, "subspecies"),
		SourceName:     schema.Deref(stringFlag(cmd, "source")),
		SubgroupName:   stringFlag(cmd, "subgroup"),
	}
	name := strings.Join([]string{p.SpeciesCode, p.SourceName}, "/")
	return runAdd("pin", name, func(ctx context.Context, c *catalog.Catalog) error {
		return c.AddPin(ctx, p)
	})
}

func runPinList(cmd *cobra.Command, _ []string) error {
	return runList(cmd,
		func(ctx context.Context, st store.Store) ([]schema.Pin, error) {
			return catalog.New(st).Pins(ctx)
		},
		[]string{"ID", "SPECIES", "SUBSPECIES", "SOURCE", "SUBGROUP"},
		func(p schema.Pin) []string {
			return []string{
				strconv.FormatInt(p.ID, 10),
				p.SpeciesCode,
				schema.Deref(p.SubspeciesCode),
				p.SourceName,
				schema.Deref(p.SubgroupName),
			}
		},
	)
}
