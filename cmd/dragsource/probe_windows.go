//go:build windows && !xproto

package main

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func runProbe(*cobra.Command, *viper.Viper) error {
	return errors.New("probe: only available with the x11 backend")
}
