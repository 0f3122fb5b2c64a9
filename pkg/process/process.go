// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

// Package process runs cobra commands with configuration bound from
// flags, environment variables and an optional config file.
package process

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
)

// Error is a process error class.
var Error = errs.Class("process error")

// EnvPrefix is the prefix of environment variables that override flags.
const EnvPrefix = "topology"

var configFile = flag.String("config", "", "path of a config file whose values override flag defaults")

// Exec runs a *cobra.Command and sets up the process wide configuration
// and logging. It exits the process when the command fails.
func Exec(cmd *cobra.Command) {
	if err := ExecE(cmd); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// ExecE is Exec without exiting.
func ExecE(cmd *cobra.Command) error {
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	cleanup(cmd)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return cmd.ExecuteContext(ctx)
}

// Ctx returns the context of a running command.
func Ctx(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// Viper returns a viper that knows the flags of cmd, the environment and
// the config file.
func Viper(cmd *cobra.Command) (*viper.Viper, error) {
	vip := viper.New()
	if err := vip.BindPFlags(cmd.Flags()); err != nil {
		return nil, Error.Wrap(err)
	}

	vip.SetEnvPrefix(EnvPrefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	vip.AutomaticEnv()

	if *configFile != "" {
		vip.SetConfigFile(*configFile)
		if err := vip.ReadInConfig(); err != nil {
			return nil, Error.Wrap(err)
		}
	}
	return vip, nil
}

// cleanup wraps every runnable command so viper values are applied to
// flags that were not set explicitly and a logger is installed.
func cleanup(cmd *cobra.Command) {
	for _, sub := range cmd.Commands() {
		cleanup(sub)
	}

	internalRun, internalRunE := cmd.Run, cmd.RunE
	if internalRun == nil && internalRunE == nil {
		return
	}
	if internalRunE == nil {
		internalRunE = func(cmd *cobra.Command, args []string) error {
			internalRun(cmd, args)
			return nil
		}
	}

	cmd.Run = nil
	cmd.RunE = func(cmd *cobra.Command, args []string) (err error) {
		vip, err := Viper(cmd)
		if err != nil {
			return err
		}

		var group errs.Group
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if f.Changed || !vip.IsSet(f.Name) {
				return
			}
			group.Add(f.Value.Set(vip.GetString(f.Name)))
		})
		flag.CommandLine.VisitAll(func(f *flag.Flag) {
			if cmd.Flags().Lookup(f.Name) != nil || !vip.IsSet(f.Name) {
				return
			}
			group.Add(f.Value.Set(vip.GetString(f.Name)))
		})
		if err := group.Err(); err != nil {
			return Error.Wrap(err)
		}

		logger, err := NewLogger()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
		defer zap.ReplaceGlobals(logger)()
		defer zap.RedirectStdLog(logger)()

		return internalRunE(cmd, args)
	}
}
