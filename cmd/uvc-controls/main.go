// Uvc-controls adjusts the camera terminal and processing unit controls of a
// UVC webcam from the terminal.
//
// Usage:
//
//	uvc-controls [command] [flags]
//
// Running without arguments opens the first camera found and starts an
// interactive session.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/kevmo314/uvc-controls"
	"github.com/kevmo314/uvc-controls/internal/config"
	"github.com/kevmo314/uvc-controls/internal/logging"
	"github.com/kevmo314/uvc-controls/internal/version"
	"github.com/kevmo314/uvc-controls/pkg/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "uvc-controls",
	Short: "Adjust UVC camera controls",
	Long: `Interactive editor for the controls of a UVC webcam.

Use the arrow keys or h/j/k/l to move between controls and change them,
and q to quit. Every change is written to the camera immediately.`,
	Version:      version.Version,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runSession,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/uvc-controls/config.yaml)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("uvc-controls %s\n", version.Full())
	},
}

func runSession(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("uvc-controls needs an interactive terminal, use 'uvc-controls list' instead")
	}

	v := newView()
	log, err := logging.New(logging.Level(cfg.LogLevel), v.logs)
	if err != nil {
		return err
	}
	defer log.Sync()

	dev, info, err := openDevice(cfg.Device, log)
	if err != nil {
		return err
	}
	defer dev.Close()

	return v.run(cmd.Context(), session.New(info.Controls(), log), log)
}

// openDevice opens the configured device node, or the first camera matching
// the configured IDs.
func openDevice(cfg config.Device, log *zap.Logger) (*uvc.UVCDevice, *uvc.DeviceInfo, error) {
	var dev *uvc.UVCDevice
	if cfg.Path != "" {
		d, err := uvc.OpenPath(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		dev = d
		log.Info("opened device", zap.String("path", cfg.Path))
	} else {
		d, c, err := uvc.OpenFirst(uvc.Filter{VendorID: cfg.VendorID, ProductID: cfg.ProductID})
		if err != nil {
			return nil, nil, err
		}
		dev = d
		log.Info("opened device", zap.Stringer("device", c))
	}

	info, err := dev.DeviceInfo()
	if err != nil {
		dev.Close()
		return nil, nil, err
	}
	log.Debug("video control interface",
		zap.Uint8("interface", info.InterfaceNumber()),
		zap.String("uvc", info.UVCVersionString()),
	)
	for _, xu := range info.ExtensionUnits {
		log.Debug("extension unit", zap.Uint8("unit", xu.UnitID), zap.Stringer("guid", xu.GUIDExtensionCode))
	}
	return dev, info, nil
}
