// Package cli is the command line host of the module.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/izouxv/goShamir/log"
)

// EnvPrefix is the prefix of environment variables overriding flags,
// e.g. SHAMIR_LOG_LEVEL or SHAMIR_PASSWORD.
const EnvPrefix = "SHAMIR"

// app carries the state shared by the commands of one root command.
type app struct {
	settings *viper.Viper
	logger   log.Logger
	out      io.Writer
}

// NewRootCommand builds the command tree writing results to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	a := &app{
		settings: viper.New(),
		logger:   log.Shared,
		out:      out,
	}

	rootCmd := &cobra.Command{
		Use:           "shamir",
		Short:         "recover a Shamir secret from possibly corrupted shares",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	rootCmd.SetOut(out)

	rootCmd.PersistentFlags().String("config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("log-level", string(log.LevelInfo), "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-encoding", string(log.EncodingConsole), "log encoding: console or json")

	rootCmd.AddCommand(
		newRecoverCommand(a),
		newSplitCommand(a),
		newOpenCommand(a),
	)
	return rootCmd
}

// setup binds flags, environment and config file, then builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	if err := a.settings.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "bind flags")
	}
	a.settings.SetEnvPrefix(EnvPrefix)
	a.settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.settings.AutomaticEnv()

	if file := a.settings.GetString("config"); file != "" {
		a.settings.SetConfigFile(file)
		if err := a.settings.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "read config %s", file)
		}
	}

	logger, err := log.New(
		log.WithLevel(log.Level(a.settings.GetString("log-level"))),
		log.WithEncoding(log.Encoding(a.settings.GetString("log-encoding"))),
	)
	if err != nil {
		return errors.Wrap(err, "create logger")
	}
	a.logger = logger
	a.logger.Debug("settings loaded",
		zap.String("command", cmd.Name()),
		zap.String("config", a.settings.ConfigFileUsed()))
	return nil
}

// Execute runs the command line with os.Args.
func Execute() {
	rootCmd := NewRootCommand(os.Stdout)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// noExtraArgs make sure every arg has been processed
func noExtraArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 0 {
		return errors.Errorf("unknown args `%v`", args)
	}
	return nil
}
