//go:build !windows || (windows && xproto)

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmigpin/dragsource/driver/xdriver/dragndrop"
)

func runProbe(cmd *cobra.Command, v *viper.Viper) error {
	lv := &slog.LevelVar{}
	logger := setupLogging(v, lv)

	size, err := parseSize(v.GetString("size"))
	if err != nil {
		return err
	}
	display := v.GetString("display")
	if display == "" {
		display = os.Getenv("DISPLAY")
	}

	count := v.GetInt("count")
	drops := make(chan struct{}, 16)
	out := cmd.OutOrStdout()
	t, err := dragndrop.NewTarget(&dragndrop.Options{
		Display: display,
		Title:   v.GetString("title"),
		Size:    size,
		Logger:  logger,
		OnDrop: func(paths []string, err error) {
			if err != nil {
				logger.Warn("drop", "err", err)
				return
			}
			for _, p := range paths {
				fmt.Fprintln(out, p)
			}
			select {
			case drops <- struct{}{}:
			default:
			}
		},
	})
	if err != nil {
		return err
	}
	defer t.Close()

	logger.Info("drop target ready", "window", fmt.Sprintf("0x%x", uint32(t.Window())))
	ctx := cmd.Context()
	for n := 0; count == 0 || n < count; {
		select {
		case <-ctx.Done():
			return nil
		case <-t.Done():
			return nil
		case <-drops:
			n++
		}
	}
	return nil
}
