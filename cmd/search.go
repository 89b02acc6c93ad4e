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
	"fmt"
	"strconv"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnpin/pkg/catalog"
	"github.com/gnames/gnpin/pkg/fuzzy"
	"github.com/gnames/gnpin/pkg/schema"
	"github.com/spf13/cobra"
)

// Entities available for search.
const (
	entityBirds   = "birds"
	entitySources = "sources"
)

type searchOpts struct {
	threshold int
	entity    string
	json      bool
}

// getSearchCmd returns the search command.
func getSearchCmd() *cobra.Command {
	var opts searchOpts

	searchCmd := &cobra.Command{
		Use:   "search NAME",
		Short: "Find birds or sources by a similar name",
		Long: `Find birds by common name or sources by name.

Names are compared with a partial fuzzy ratio, so a part of a name or a
slightly misspelled name still matches. Matches scoring at least the
threshold (0-100) are printed in catalogue order.

Examples:
  gnpin search "Maroon Pigeon"
  gnpin search pigeon -t 90
  gnpin search "RSPB" -e sources`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args, opts)
		},
	}

	searchCmd.Flags().IntVarP(&opts.threshold, "threshold", "t",
		catalog.DefaultThreshold, "minimal score of a match (0-100)")
	searchCmd.Flags().StringVarP(&opts.entity, "entity", "e",
		entityBirds, "what to search: birds or sources")
	searchCmd.Flags().BoolVar(&opts.json, "json", false, "print matches as JSON")

	return searchCmd
}

func runSearch(cmd *cobra.Command, args []string, opts searchOpts) error {
	ctx := context.Background()
	name := strings.Join(args, " ")
	out := cmd.OutOrStdout()

	if opts.entity != entityBirds && opts.entity != entitySources {
		err := fmt.Errorf("unknown entity '%s', use '%s' or '%s'",
			opts.entity, entityBirds, entitySources)
		gn.PrintErrorMessage(err)
		return err
	}

	st, err := openStore(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer st.Close()
	ctl := catalog.New(st)

	if opts.entity == entitySources {
		var matches []fuzzy.Match[schema.Source]
		matches, err = ctl.SearchSources(ctx, name, opts.threshold)
		if err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		if opts.json {
			return printJSON(out, matches)
		}
		rows := make([][]string, len(matches))
		for i, m := range matches {
			rows[i] = []string{
				strconv.Itoa(m.Score),
				m.Row.Name,
				schema.Deref(m.Row.Type),
				schema.Deref(m.Row.SupergroupName),
			}
		}
		return printTable(out, []string{"SCORE", "NAME", "TYPE", "PARENT"}, rows)
	}

	var matches []fuzzy.Match[schema.Bird]
	matches, err = ctl.SearchBirds(ctx, name, opts.threshold)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if opts.json {
		return printJSON(out, matches)
	}
	rows := make([][]string, len(matches))
	for i, m := range matches {
		rows[i] = []string{
			strconv.Itoa(m.Score),
			m.Row.EBirdCode,
			m.Row.CommonName,
			m.Row.Genus + " " + m.Row.Species,
		}
	}
	return printTable(out, []string{"SCORE", "CODE", "NAME", "SCIENTIFIC NAME"}, rows)
}
