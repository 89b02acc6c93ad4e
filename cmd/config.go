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
	"fmt"
	"io"

	"github.com/gnames/gnpin/pkg/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// maskedKey replaces a secret in printed configuration.
const maskedKey = "********"

// getConfigCmd returns the config command.
func getConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after config.yaml, environment variables
and flags are applied. The eBird API key and the database password
are masked.

Examples:
  gnpin config
  GNPIN_DATABASE_DRIVER=gorm gnpin config`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printConfig(cmd.OutOrStdout(), cfg)
		},
	}
}

func printConfig(w io.Writer, c *config.Config) error {
	res := *c
	if res.EBird.APIKey != "" {
		res.EBird.APIKey = maskedKey
	}
	if res.Database.Password != "" {
		res.Database.Password = maskedKey
	}

	bs, err := yaml.Marshal(&res)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "# %s\n%s", config.ConfigFilePath(c.HomeDir), bs)
	return err
}
