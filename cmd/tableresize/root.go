package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/aerissecure/tableresize/internal/config"
	"github.com/aerissecure/tableresize/internal/observability"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app carries what every subcommand needs once PersistentPreRunE has run.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "tableresize",
		Short:         "Resize the columns of HTML tables the way a rich-text editor does.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize()
		},
	}

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./tableresize.yaml or ~/.tableresize.yaml)")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("measurer", "", "width measurer: static or chrome (overrides config/env)")
	root.PersistentFlags().Int("viewport-width", 0, "viewport width in px (overrides config/env)")
	_ = a.v.BindPFlag("logger.level", root.PersistentFlags().Lookup("log-level"))
	_ = a.v.BindPFlag("layout.measurer", root.PersistentFlags().Lookup("measurer"))
	_ = a.v.BindPFlag("layout.viewport_width", root.PersistentFlags().Lookup("viewport-width"))

	root.AddCommand(
		newInspectCmd(a),
		newResizeCmd(a),
		newConvertCmd(a),
		newInsertCmd(a),
	)
	return root
}

// initialize reads the config file and environment, then sets up logging.
func (a *app) initialize() error {
	if a.cfgFile != "" {
		path, err := homedir.Expand(a.cfgFile)
		if err != nil {
			return fmt.Errorf("failed to expand config path: %w", err)
		}
		a.v.SetConfigFile(path)
	} else {
		a.v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			a.v.AddConfigPath(filepath.Clean(home))
		}
		a.v.SetConfigType("yaml")
	}
	config.Bind(a.v)

	if err := a.readConfig(); err != nil {
		return err
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	observability.InitializeLogger(cfg.Logger)
	a.logger = observability.GetLogger()
	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug("Loaded config file", zap.String("path", used))
	}
	return nil
}

// configNames are tried in order in every search path when --config is unset.
var configNames = []string{"tableresize", ".tableresize"}

func (a *app) readConfig() error {
	if a.cfgFile != "" {
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}
		return nil
	}
	for _, name := range configNames {
		a.v.SetConfigName(name)
		err := a.v.ReadInConfig()
		if err == nil {
			return nil
		}
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	// No config file; defaults and environment apply.
	return nil
}
