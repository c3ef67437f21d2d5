package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newProbeCmd() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Open a drop target window and print dropped files",
		Long: `probe opens an X11 window that accepts file drops and prints the paths
it receives, one per line. Use --count to exit after a number of drops.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PreRunE:      func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:         func(cmd *cobra.Command, _ []string) error { return runProbe(cmd, v) },
	}
	f := cmd.Flags()
	f.String("display", "", "X11 display (default $DISPLAY)")
	f.String("title", "dragsource probe", "target window title")
	f.String("size", "300x300", "target window size, WxH")
	f.Int("count", 0, "exit after this many drops (0: never)")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)
	return cmd
}
