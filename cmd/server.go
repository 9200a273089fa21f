package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"perfoverlay/internal/auth"
	"perfoverlay/internal/conf"
	"perfoverlay/internal/hotkey"
	"perfoverlay/internal/overlay"
	"perfoverlay/internal/system"
	"perfoverlay/internal/web"
)

const (
	// toggleHotkeyID is the id the toggle hotkey is registered under
	toggleHotkeyID = 1
	logFile        = "perfoverlay.log"
)

var (
	configPath string
	useTUI     bool
	asJSON     bool
)

var rootCmd = &cobra.Command{
	Use:           "perfoverlay",
	Short:         "Always-on-top CPU, RAM and GPU overlay",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return conf.LoadConfig(configPath)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		terminal := useTUI || !nativeHost
		out := io.Writer(os.Stderr)
		if terminal {
			// the terminal belongs to the overlay; logs go next to the config
			f, err := os.OpenFile(filepath.Join(filepath.Dir(configPath), logFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			defer f.Close()
			out = f
		}
		return runOverlay(cmd.Context(), newLogger(out), terminal)
	},
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print one overlay line and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printSnapshot(cmd.Context(), newLogger(os.Stderr))
	},
}

var addUserCmd = &cobra.Command{
	Use:   "adduser NAME PASSWORD",
	Short: "Add a viewer for the web mirror",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.NewUser(args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "user %s added\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.toml", "path to the TOML config file")
	rootCmd.Flags().BoolVar(&useTUI, "tui", false, "render in the terminal instead of a native window")
	snapshotCmd.Flags().BoolVar(&asJSON, "json", false, "print the snapshot as JSON")
	rootCmd.AddCommand(snapshotCmd, addUserCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newLogger(out io.Writer) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: conf.GetLogLevel()}))
	slog.SetDefault(logger)
	return logger
}

func parseHotkey() (overlay.Hotkey, error) {
	cfg := conf.GetHotkey()
	key, err := hotkey.ParseKey(cfg.Key)
	if err != nil {
		return overlay.Hotkey{}, err
	}
	mods, err := hotkey.ParseModifiers(cfg.Modifiers)
	if err != nil {
		return overlay.Hotkey{}, err
	}
	return overlay.Hotkey{Key: key, Modifiers: mods}, nil
}

func runOverlay(ctx context.Context, logger *slog.Logger, terminal bool) error {
	hk, err := parseHotkey()
	if err != nil {
		return fmt.Errorf("invalid hotkey config: %w", err)
	}

	computer := system.NewComputer(logger)
	computer.Open(ctx)
	defer computer.Close()
	reader := system.NewReader(computer)

	h, err := selectHost(logger, terminal)
	if err != nil {
		return err
	}

	registry := hotkey.NewRegistry()
	registrar := hotkey.NewRegistrar(toggleHotkeyID, h.surface, h.binder, registry, h.notifier, logger)
	controller := overlay.NewController(reader, h.surface, h.chrome, registrar, logger)
	defer func() {
		if err := controller.Close(); err != nil {
			logger.Warn("failed to release hotkey", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	mirrorErr := make(chan error, 1)
	if mirrorCfg := conf.GetMirror(); mirrorCfg.Enabled {
		mirror := web.NewMirror(func() (*system.SystemInfo, error) {
			infoCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return system.GetSystemInfo(infoCtx, computer)
		}, logger)
		controller.AddSink(mirror)
		go func() {
			mirrorErr <- web.Serve(ctx, mirrorCfg.Listen, mirror, logger)
		}()
	}

	if info, err := system.GetSystemInfo(ctx, computer); err != nil {
		logger.Warn("failed to describe host", "error", err)
	} else {
		logger.Info("host", "user", info.User, "os", info.OS, "cpu", info.CPU, "memory", info.Memory, "gpu", info.GPU)
	}

	controller.Start(hk)
	logger.Info("overlay started",
		"host", h.name,
		"hotkey", hotkey.KeyName(hk.Key, hk.Modifiers),
		"hardware", len(computer.Hardware()))

	runErr := h.run(ctx, controller)
	cancel()

	select {
	case err := <-mirrorErr:
		if err != nil {
			logger.Error("mirror stopped", "error", err)
		}
	default:
	}
	return runErr
}

// selectHost picks the native window unless the terminal was asked for
// or no native host exists on this platform
func selectHost(logger *slog.Logger, terminal bool) (*host, error) {
	if terminal {
		if !useTUI {
			logger.Info("no native overlay on this platform, using the terminal")
		}
		return newTerminalHost(logger), nil
	}
	return newNativeHost(conf.GetOverlay(), logger)
}

func printSnapshot(ctx context.Context, logger *slog.Logger) error {
	computer := system.NewComputer(logger)
	computer.Open(ctx)
	defer computer.Close()
	reader := system.NewReader(computer)

	// CPU load is a delta between two reads
	reader.Sample()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(overlay.TickInterval):
	}
	snapshot := reader.Sample()

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(snapshot)
	}
	fmt.Println(overlay.PlainText(overlay.Compose(snapshot)))
	return nil
}
