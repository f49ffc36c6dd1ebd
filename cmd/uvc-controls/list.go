package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/kevmo314/uvc-controls/internal/config"
	"github.com/kevmo314/uvc-controls/internal/logging"
	"github.com/kevmo314/uvc-controls/pkg/fields"
	"github.com/kevmo314/uvc-controls/pkg/render"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every control of the camera and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		log, err := logging.New(logging.Level(cfg.LogLevel), os.Stderr)
		if err != nil {
			return err
		}
		defer log.Sync()

		dev, info, err := openDevice(cfg.Device, log)
		if err != nil {
			return err
		}
		defer dev.Close()

		entries, skipped, err := fields.Fetch(cmd.Context(), info.Controls())
		if err != nil {
			return err
		}
		for _, err := range multierr.Errors(skipped) {
			var ce *fields.ControlError
			if errors.As(err, &ce) {
				log.Warn("could not fetch control", zap.String("control", ce.Control), zap.Error(ce.Err))
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), render.Table(fields.ClassifyAll(entries)))
		return nil
	},
}
