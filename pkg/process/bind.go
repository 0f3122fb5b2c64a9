// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package process

import (
	"github.com/spf13/cobra"

	"storj.io/common/cfgstruct"
)

// Bind sets flags on a command that match the configuration struct
// 'config'. Fields use the `help`, `default` and `hidden` tags; nested
// structs add a dotted prefix.
func Bind(cmd *cobra.Command, config interface{}, opts ...cfgstruct.BindOpt) {
	cfgstruct.Bind(cmd.Flags(), config, opts...)
}
