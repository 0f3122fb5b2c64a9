// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package process

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/zeebo/errs"
)

// SaveConfig writes the current values of every visible flag of cmd to
// outfile. The format follows the file extension.
func SaveConfig(cmd *cobra.Command, outfile string) error {
	vip, err := Viper(cmd)
	if err != nil {
		return err
	}

	out := viper.New()
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Hidden || readBoolAnnotation(f, "setup") || f.Name == "config" || f.Name == "defaults" {
			return
		}
		out.Set(f.Name, vip.Get(f.Name))
	})

	if err := os.MkdirAll(filepath.Dir(outfile), 0700); err != nil {
		return errs.Wrap(err)
	}
	return errs.Wrap(out.WriteConfigAs(outfile))
}

// readBoolAnnotation is a helper to see if a boolean annotation is set to true on the flag.
func readBoolAnnotation(flag *pflag.Flag, key string) bool {
	annotation := flag.Annotations[key]
	return len(annotation) > 0 && annotation[0] == "true"
}
