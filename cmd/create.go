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

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getCreateCmd returns the create command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create catalogue tables",
		Long: `Create all tables of the pin catalogue.

Tables are created parents first: birds, subspecies, supergroups,
sources, subgroups, pins. Existing tables and their data are kept,
so the command is safe to run again.

Examples:
  gnpin create
  gnpin create --engine postgres --driver gorm`,
		Args: cobra.NoArgs,
		RunE: runCreate,
	}
}

func runCreate(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	st, err := openStore(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer st.Close()

	gn.Info("Catalogue tables are ready (driver <em>%s</em>, engine <em>%s</em>)",
		st.Driver(), cfg.Database.Engine)
	gn.Info("\nNext steps:")
	gn.Info("  - Run 'gnpin update' to import birds from eBird")
	return nil
}
