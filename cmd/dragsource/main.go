// dragsource: drag files out of a terminal into other applications.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "dragsource [flags] FILE...",
		Short: "Drag files into other applications",
		Long: `dragsource starts a native drag of the given files.

On X11 it opens a small source window: press a mouse button on it and move
the pointer to a drop target (file manager, browser, editor). The window
stays open for more drags until interrupted.

On windows the drag starts after --delay and follows the pointer until the
mouse button is released.

Config file search order:
  $HOME/.config/dragsource/dragsource.toml
  path supplied via --config

All flags can be set via DRAGSOURCE_<FLAG> env vars or config-file keys.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		PreRunE:      func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:         func(cmd *cobra.Command, args []string) error { return run(cmd.Context(), v, args) },
	}

	f := cmd.Flags()
	f.String("display", "", "X11 display (default $DISPLAY)")
	f.String("image", "", "image file shown while dragging")
	f.String("title", "dragsource", "source window title")
	f.String("size", "200x200", "source window size, WxH")
	f.Duration("delay", 0, "wait before starting a windows drag")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	cmd.AddCommand(newVersionCmd(), newProbeCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("dragsource %s\n", Version)
		},
	}
}
