// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/climate-app/climate/internal/apierr"
	"github.com/climate-app/climate/internal/config"
	"github.com/climate-app/climate/internal/logger"
	"github.com/climate-app/climate/internal/service"
)

// Exit codes returned by the climate command.
const (
	exitFailure  = 1
	exitConfig   = 2
	exitUpstream = 3
)

var errInvalidConfig = errors.New("invalid configuration")

type app struct {
	confPath string
	conf     *config.Config
	log      *logger.Logger
	service  *service.Service
}

func newRootCmd() *cobra.Command {
	a := new(app)
	root := &cobra.Command{
		Use:           "climate",
		Short:         "Weather lookups with normalized conditions",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.confPath, "config", "c", "", "path to the config file")

	root.AddCommand(
		a.weatherCmd(),
		a.searchCmd(),
		a.reverseCmd(),
		a.watchCmd(),
		a.serveCmd(),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	conf, err := loadConfig(a.confPath)
	if err != nil {
		return fmt.Errorf("%w: failed to load config: %w", errInvalidConfig, err)
	}
	a.conf = conf
	a.log = logger.New(conf.LogLevel)

	a.service, err = service.New(conf, a.log, service.WithOutput(cmd.OutOrStdout()))
	if err != nil {
		return fmt.Errorf("failed to initialize climate service: %w", err)
	}
	return nil
}

// exitCode maps a command error to the process exit status. Missing or invalid
// configuration and provider or network failures get their own codes.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errInvalidConfig), apierr.IsConfiguration(err):
		return exitConfig
	case apierr.IsProvider(err), apierr.IsNetwork(err):
		return exitUpstream
	default:
		return exitFailure
	}
}

// loadConfig reads the config from the given path, the default location or the
// environment only, in that order.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.NewFromFile(filepath.Dir(path), filepath.Base(path))
	}
	if dir, file := findConfigFile(); dir != "" && file != "" {
		return config.NewFromFile(dir, file)
	}
	return config.New()
}

func findConfigFile() (string, string) {
	homedir, err := os.UserHomeDir()
	if err != nil {
		return "", ""
	}
	exts := []string{"toml", "yaml", "yml", "json"}
	for _, ext := range exts {
		path := filepath.Join(homedir, ".config", "climate", "config."+ext)
		if _, err = os.Stat(path); err == nil {
			return filepath.Dir(path), filepath.Base(path)
		}
	}
	return "", ""
}
