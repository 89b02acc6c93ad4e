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
	"slices"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnpin/pkg/catalog"
	"github.com/gnames/gnpin/pkg/schema"
	"github.com/gnames/gnpin/pkg/store"
	"github.com/spf13/cobra"
)

// addOrgFlags adds flags shared by all organisation levels.
func addOrgFlags(cmd *cobra.Command) {
	cmd.Flags().String("short", "", "short name")
	cmd.Flags().String("desc", "", "description")
	cmd.Flags().String("website", "", "website URL")
}

// getSupergroupCmd returns the supergroup command with its subcommands.
func getSupergroupCmd() *cobra.Command {
	supergroupCmd := &cobra.Command{
		Use:   "supergroup",
		Short: "Manage top-level organisations",
	}

	addCmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a supergroup",
		Long: `Add a top-level organisation, for example a charity federation.

Examples:
  gnpin supergroup add "The Wildlife Trusts" --short TWT`,
		Args: cobra.ExactArgs(1),
		RunE: runSupergroupAdd,
	}
	addOrgFlags(addCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List supergroups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd,
				func(ctx context.Context, st store.Store) ([]schema.Supergroup, error) {
					return st.Supergroups().GetData(ctx)
				},
				[]string{"NAME", "SHORT", "WEBSITE"},
				func(s schema.Supergroup) []string {
					return []string{s.Name, schema.Deref(s.ShortName), schema.Deref(s.Website)}
				},
			)
		},
	}
	listCmd.Flags().Bool("json", false, "print rows as JSON")

	supergroupCmd.AddCommand(addCmd, listCmd)
	return supergroupCmd
}

func runSupergroupAdd(cmd *cobra.Command, args []string) error {
	sg := schema.Supergroup{
		Name:        strings.TrimSpace(args[0]),
		ShortName:   stringFlag(cmd, "short"),
		Description: stringFlag(cmd, "desc"),
		Website:     stringFlag(cmd, "website"),
	}
	return runAdd("supergroup", sg.Name, func(ctx context.Context, c *catalog.Catalog) error {
		return c.AddSupergroup(ctx, sg)
	})
}

// getSourceCmd returns the source command with its subcommands.
func getSourceCmd() *cobra.Command {
	sourceCmd := &cobra.Command{
		Use:   "source",
		Short: "Manage organisations and artists that issue pins",
	}

	addCmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a source",
		Long: fmt.Sprintf(`Add an organisation or an artist that issues pins.

A source may belong to a supergroup given by --parent. The supergroup
must already exist. Type is one of: %s.

Examples:
  gnpin source add "RSPB" --type Charity --website https://www.rspb.org.uk
  gnpin source add "Devon Wildlife Trust" --parent "The Wildlife Trusts"`,
			strings.Join(catalog.SourceTypes, ", ")),
		Args: cobra.ExactArgs(1),
		RunE: runSourceAdd,
	}
	addOrgFlags(addCmd)
	addCmd.Flags().String("type", "", "source type")
	addCmd.Flags().String("parent", "", "name of the supergroup")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List sources",
		Args:  cobra.NoArgs,
		RunE:  runSourceList,
	}
	listCmd.Flags().String("type", "", "list only sources of this type")
	listCmd.Flags().Bool("json", false, "print rows as JSON")

	sourceCmd.AddCommand(addCmd, listCmd)
	return sourceCmd
}

func runSourceAdd(cmd *cobra.Command, args []string) error {
	src := schema.Source{
		Name:           strings.TrimSpace(args[0]),
		Type:           stringFlag(cmd, "type"),
		ShortName:      stringFlag(cmd, "short"),
		Description:    stringFlag(cmd, "desc"),
		SupergroupName: stringFlag(cmd, "parent"),
		Website:        stringFlag(cmd, "website"),
	}
	if src.Type != nil && !slices.Contains(catalog.SourceTypes, *src.Type) {
		err := fmt.Errorf("unknown source type '%s', use one of: %s",
			*src.Type, strings.Join(catalog.SourceTypes, ", "))
		gn.PrintErrorMessage(err)
		return err
	}
	return runAdd("source", src.Name, func(ctx context.Context, c *catalog.Catalog) error {
		return c.AddSource(ctx, src)
	})
}

func runSourceList(cmd *cobra.Command, _ []string) error {
	typ, _ := cmd.Flags().GetString("type")
	return runList(cmd,
		func(ctx context.Context, st store.Store) ([]schema.Source, error) {
			if typ == "" {
				return st.Sources().GetData(ctx)
			}
			return catalog.New(st).SourcesByType(ctx, typ)
		},
		[]string{"NAME", "TYPE", "PARENT", "WEBSITE"},
		func(s schema.Source) []string {
			return []string{
				s.Name,
				schema.Deref(s.Type),
				schema.Deref(s.SupergroupName),
				schema.Deref(s.Website),
			}
		},
	)
}

// getSubgroupCmd returns the subgroup command with its subcommands.
func getSubgroupCmd() *cobra.Command {
	subgroupCmd := &cobra.Command{
		Use:   "subgroup",
		Short: "Manage divisions of sources",
	}

	addCmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a subgroup",
		Long: `Add a division of a source, for example a local group of a charity.

The parent source is required and must already exist.

Examples:
  gnpin subgroup add "RSPB Exeter" --parent RSPB`,
		Args: cobra.ExactArgs(1),
		RunE: runSubgroupAdd,
	}
	addOrgFlags(addCmd)
	addCmd.Flags().String("parent", "", "name of the source")
	_ = addCmd.MarkFlagRequired("parent")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List subgroups",
		Args:  cobra.NoArgs,
		RunE:  runSubgroupList,
	}
	listCmd.Flags().String("parent", "", "list only subgroups of this source")
	listCmd.Flags().Bool("json", false, "print rows as JSON")

	subgroupCmd.AddCommand(addCmd, listCmd)
	return subgroupCmd
}

func runSubgroupAdd(cmd *cobra.Command, args []string) error {
	sg := schema.Subgroup{
		Name:        strings.TrimSpace(args[0]),
		ShortName:   stringFlag(cmd, "short"),
		Description: stringFlag(cmd, "desc"),
		SourceName:  schema.Deref(stringFlag(cmd, "parent")),
		Website:     stringFlag(cmd, "website"),
	}
	return runAdd("subgroup", sg.Name, func(ctx context.Context, c *catalog.Catalog) error {
		return c.AddSubgroup(ctx, sg)
	})
}

func runSubgroupList(cmd *cobra.Command, _ []string) error {
	parent, _ := cmd.Flags().GetString("parent")
	return runList(cmd,
		func(ctx context.Context, st store.Store) ([]schema.Subgroup, error) {
			if parent == "" {
				return st.Subgroups().GetData(ctx)
			}
			return catalog.New(st).SubgroupsOf(ctx, parent)
		},
		[]string{"NAME", "PARENT", "SHORT", "WEBSITE"},
		func(s schema.Subgroup) []string {
			return []string{
				s.Name,
				s.SourceName,
				schema.Deref(s.ShortName),
				schema.Deref(s.Website),
			}
		},
	)
}

// runAdd opens the catalogue and runs a single-row addition.
func runAdd(
	kind, name string,
	add func(context.Context, *catalog.Catalog) error,
) error {
	ctx := context.Background()

	st, err := openStore(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer st.Close()

	if err = add(ctx, catalog.New(st)); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Added %s <em>%s</em>", kind, name)
	return nil
}

// runList prints rows of a table, as JSON if --json is set.
func runList[T any](
	cmd *cobra.Command,
	get func(context.Context, store.Store) ([]T, error),
	header []string,
	row func(T) []string,
) error {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	st, err := openStore(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer st.Close()

	items, err := get(ctx, st)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return printJSON(out, items)
	}

	rows := make([][]string, len(items))
	for i, v := range items {
		rows[i] = row(v)
	}
	return printTable(out, header, rows)
}
