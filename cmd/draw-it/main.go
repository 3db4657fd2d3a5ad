package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chadlavi/draw-it/internal/canvas"
	"github.com/chadlavi/draw-it/internal/config"
	"github.com/chadlavi/draw-it/internal/download"
	"github.com/chadlavi/draw-it/internal/flags"
	"github.com/chadlavi/draw-it/internal/logging"
	"github.com/chadlavi/draw-it/internal/prompt"
	"github.com/chadlavi/draw-it/internal/session"
	"github.com/chadlavi/draw-it/internal/tui"
)

var (
	// Global flags
	configPath string
	debug      bool
	ephemeral  bool
	storeName  string

	// Drawing flags
	outDir      string
	restorePath string
	background  string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "draw-it",
	Short: "Sketch a random prompt in your terminal",
	Long: `draw-it shows a short prompt and a canvas. Drag with the mouse to draw,
pick colors from the palette and save the result as a PNG.

Run without arguments to start drawing.`,
	SilenceUsage: true,
	RunE:         runDraw,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: .draw-it/config.json, then ~/.draw-it/config.json)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log at debug level")
	rootCmd.PersistentFlags().StringVar(&storeName, "store", "", "Flag store backend: file, sqlite or memory")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "Keep flags in memory for this run only")

	rootCmd.Flags().StringVarP(&outDir, "out", "o", "", "Directory downloads are written to")
	rootCmd.Flags().StringVar(&restorePath, "restore", "", "Drawing file to load at start and write back on quit")
	rootCmd.Flags().StringVar(&background, "background", "", "Background image (path or file:// URL)")

	flagsCmd.AddCommand(flagsGetCmd)
	flagsCmd.AddCommand(flagsResetCmd)
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(flagsCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and layers the command-line flags on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	store := flags.Backend(storeName)
	if ephemeral {
		store = flags.BackendMemory
	}
	err = cfg.Apply(config.Overrides{
		FlagStore:       store,
		OutputDir:       outDir,
		BackgroundImage: background,
		Debug:           debug,
	})
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func runDraw(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger(cfg, cmd.ErrOrStderr())
	defer func() { _ = logger.Sync() }()

	store := openFlagStore(cfg, logger.Named("flags"))
	defer store.Close()

	prompts, err := prompt.Load(cfg.PromptsFile)
	if err != nil {
		return err
	}

	base := cfg.CanvasBase()
	if restorePath != "" {
		data, err := os.ReadFile(restorePath)
		switch {
		case err == nil:
			base.SaveData = string(data)
		case errors.Is(err, os.ErrNotExist):
			logger.Info("no drawing to restore yet", zap.String("path", restorePath))
		default:
			return fmt.Errorf("read drawing: %w", err)
		}
	}

	raster := canvas.NewRaster(logger.Named("canvas"))
	sess := session.New(session.Options{
		Prompt:  prompt.Pick(prompts, nil),
		Surface: raster,
		Flags:   store,
		Saver:   download.NewDirSaver(cfg.OutputDir),
		Base:    base,
		Logger:  logger,
	})

	p := tea.NewProgram(
		tui.NewRootModel(tui.Options{
			Session:     sess,
			Raster:      raster,
			CellWidthPx: cfg.CellWidthPx,
			Logger:      logger.Named("tui"),
		}),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	if restorePath != "" && raster.Mounted() {
		if err := writeDrawing(restorePath, raster); err != nil {
			return err
		}
		logger.Info("drawing kept", zap.String("path", restorePath), zap.Int("lines", len(raster.Lines())))
	}
	return nil
}

// newLogger builds the file logger. Without a usable log file the app still
// runs, silently.
func newLogger(cfg *config.Config, stderr io.Writer) *zap.Logger {
	logger, err := logging.New(cfg.LogFile, cfg.Debug)
	if err != nil {
		fmt.Fprintf(stderr, "draw-it: logging disabled: %v\n", err)
		return zap.NewNop()
	}
	return logger
}

// openFlagStore opens the configured flag store, falling back to an
// in-memory one when storage is unavailable. Flags then read as their
// defaults and dismissals only last for this run.
func openFlagStore(cfg *config.Config, logger *zap.Logger) *flags.Store {
	store, err := flags.Open(cfg.FlagStore, cfg.FlagStorePath, logger)
	if err != nil {
		logger.Warn("flag store unavailable, using memory",
			zap.String("backend", string(cfg.FlagStore)),
			zap.String("path", cfg.FlagStorePath),
			zap.Error(err))
		return flags.New(flags.NewMemoryKV(), logger)
	}
	return store
}

// writeDrawing stores the raster's save data so a later --restore can pick
// it up.
func writeDrawing(path string, raster *canvas.Raster) error {
	data, err := raster.SaveData()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return fmt.Errorf("write drawing: %w", err)
	}
	return nil
}
