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
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnpin/internal/iofs"
	"github.com/gnames/gnpin/internal/iologger"
	gnpin "github.com/gnames/gnpin/pkg"
	"github.com/gnames/gnpin/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands attached.
// A new tree is built on every call.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", gnpin.Version, gnpin.Build),
		Use:     "gnpin",
		Short:   "GNpin keeps a catalogue of enamel bird pins",
		Long: `GNpin keeps a catalogue of enamel bird pins.

Birds come from the eBird taxonomy, pins are attached to a bird species
(optionally a subspecies) and to the organisation that issued them.
Organisations form a hierarchy: supergroup, source, subgroup.

Data live in SQLite (default) or PostgreSQL and are accessed either
through plain SQL statements or through GORM, chosen by configuration.

Configuration precedence (highest to lowest):
  1. CLI flags (--driver, --engine)
  2. Environment variables (GNPIN_*)
  3. Config file (~/.config/gnpin/config.yaml)
  4. Built-in defaults

Examples:
  GNPIN_EBIRD_API_KEY     eBird API key
  GNPIN_DATABASE_DRIVER   storage driver (sql|gorm)
  GNPIN_DATABASE_ENGINE   database engine (sqlite|postgres)`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "gnpin version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gnpin")

	rootCmd.PersistentFlags().String("driver", "",
		"storage driver: sql or gorm")
	rootCmd.PersistentFlags().String("engine", "",
		"database engine: sqlite or postgres")

	rootCmd.AddCommand(
		getCreateCmd(),
		getUpdateCmd(),
		getSubspeciesCmd(),
		getSearchCmd(),
		getSupergroupCmd(),
		getSourceCmd(),
		getSubgroupCmd(),
		getPinCmd(),
		getConfigCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, _ []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Log to file with defaults until the user's settings are known.
	if err = iologger.Init(config.LogDir(homeDir), config.New().Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	cfg.Update(cfgViper.ToOptions())
	cfg.Update(flagOptions(cmd))
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	if err = iologger.Init(config.LogDir(homeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"driver", cfg.Database.Driver,
		"engine", cfg.Database.Engine,
	)
	return nil
}

func runRoot(cmd *cobra.Command, _ []string) error {
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := getRootCmd().Execute()
	_ = iologger.Close()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

// initEnvVars binds the environment variables GNPIN_* to the persistent
// fields of config.yaml. They are listed one by one, so the allowed
// variables are easy to see.
func initEnvVars(v *viper.Viper) {
	v.SetEnvPrefix("GNPIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	keys := []string{
		"database.driver",
		"database.engine",
		"database.path",
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.database",
		"database.ssl_mode",
		"database.batch_size",

		"ebird.api_key",
		"ebird.url",
		"ebird.locale",
		"ebird.timeout",

		"log.level",
		"log.format",
		"log.destination",
	}
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	v.AutomaticEnv()
}
