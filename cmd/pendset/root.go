package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/TatyanaV/taxtastic/configuration"
)

// version is overridden at link time.
var version = "v0.1.0"

// app carries what every subcommand needs once flags are resolved.
type app struct {
	configPath  string
	logLevel    string
	output      string
	showVersion bool

	config *configuration.Configuration
	log    *logrus.Entry
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "pendset",
		Short:        "`pendset` indexes Newick trees and reports their pendant edges",
		Long:         "`pendset` indexes Newick trees and reports their pendant edges",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		Run: func(cmd *cobra.Command, args []string) {
			if a.showVersion {
				fmt.Fprintf(cmd.OutOrStdout(), "pendset %s\n", version)
				return
			}
			// nolint:errcheck
			cmd.Usage()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "",
		"YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "",
		"log level (error, warn, info or debug)")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "",
		"output format (text, yaml or json)")
	root.Flags().BoolVarP(&a.showVersion, "version", "v", false,
		"show the version and exit")

	root.AddCommand(
		newEdgesCmd(a),
		newPendantCmd(a),
		newLonelyCmd(a),
		newFmtCmd(a),
	)
	return root
}

// setup resolves the configuration from, in increasing order of
// precedence, defaults, the configuration file, the environment and flags.
func (a *app) setup(cmd *cobra.Command) error {
	config, err := a.resolveConfiguration()
	if err != nil {
		return fmt.Errorf("configuration error: %v", err)
	}
	if cmd.Flags().Changed("log-level") {
		level, err := configuration.ParseLoglevel(a.logLevel)
		if err != nil {
			return err
		}
		config.Log.Level = level
	}
	if cmd.Flags().Changed("output") {
		config.Output.Format = a.output
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("configuration error: %v", err)
	}

	a.config = config
	a.log, err = configureLogging(cmd.ErrOrStderr(), config)
	return err
}

func (a *app) resolveConfiguration() (*configuration.Configuration, error) {
	if a.configPath == "" {
		config := configuration.Default()
		p := configuration.NewParser("pendset", os.Environ())
		if err := p.Override(config); err != nil {
			return nil, err
		}
		return config, nil
	}

	fp, err := os.Open(a.configPath)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	config, err := configuration.Parse(fp)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %v", a.configPath, err)
	}
	return config, nil
}
