// Package session holds the state of one drawing session: brush color,
// palette visibility, the one-time rotation warning and the latest
// exported image. Every method is meant to run on the UI event loop; a
// Session is not safe for concurrent use.
package session

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chadlavi/draw-it/internal/canvas"
	"github.com/chadlavi/draw-it/internal/compositor"
	"github.com/chadlavi/draw-it/internal/download"
	"github.com/chadlavi/draw-it/internal/flags"
	"github.com/chadlavi/draw-it/internal/layout"
	"github.com/chadlavi/draw-it/internal/model"
)

// Options wires a Session to its collaborators.
type Options struct {
	Prompt  string
	Surface canvas.Surface
	Flags   *flags.Store
	Saver   download.Saver
	// Base is the surface configuration before size and colors are derived.
	Base   canvas.Config
	Now    func() time.Time
	Logger *zap.Logger
}

// Session is the drawing session state machine.
type Session struct {
	id     uuid.UUID
	prompt string

	brushColor             string
	paletteOpen            bool
	rotationWarningVisible bool
	exportedImage          string

	surface canvas.Surface
	flags   *flags.Store
	saver   download.Saver
	base    canvas.Config
	now     func() time.Time
	logger  *zap.Logger
}

// New builds a session and subscribes it to the surface's change
// notifications. The rotation warning starts visible unless the flag store
// says it was dismissed.
func New(opts Options) *Session {
	id := uuid.New()
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("session_id", id.String()))

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	s := &Session{
		id:                     id,
		prompt:                 opts.Prompt,
		brushColor:             model.DefaultBrushColor,
		rotationWarningVisible: opts.Flags.Read(flags.RotationWarning),
		surface:                opts.Surface,
		flags:                  opts.Flags,
		saver:                  opts.Saver,
		base:                   opts.Base,
		now:                    now,
		logger:                 logger,
	}
	if s.surface != nil {
		s.surface.OnChange(s.OnStrokeSettled)
	}

	logger.Info("session started",
		zap.String("prompt", s.prompt),
		zap.Bool("rotation_warning", s.rotationWarningVisible))
	return s
}

func (s *Session) ID() string                   { return s.id.String() }
func (s *Session) Prompt() string               { return s.prompt }
func (s *Session) BrushColor() string           { return s.brushColor }
func (s *Session) PaletteOpen() bool            { return s.paletteOpen }
func (s *Session) RotationWarningVisible() bool { return s.rotationWarningVisible }
func (s *Session) ExportedImage() string        { return s.exportedImage }
func (s *Session) Surface() canvas.Surface      { return s.surface }

// CanDownload reports whether an export exists to save.
func (s *Session) CanDownload() bool { return s.exportedImage != "" }

// DebugVisible reports whether the debug panel has anything to show.
func (s *Session) DebugVisible() bool { return s.exportedImage != "" }

// CanvasConfig derives the surface configuration for a viewport width.
// The guide line always follows the brush color.
func (s *Session) CanvasConfig(viewportWidth int) canvas.Config {
	cfg := s.base
	size := layout.Dimension(viewportWidth)
	cfg.CanvasWidth = size
	cfg.CanvasHeight = size
	cfg.BrushColor = s.brushColor
	cfg.CatenaryColor = s.brushColor
	return cfg
}

// Sync pushes the derived configuration to the surface.
func (s *Session) Sync(viewportWidth int) {
	if s.surface == nil {
		return
	}
	s.surface.Configure(s.CanvasConfig(viewportWidth))
}

// OnStrokeSettled recomposites the surface into the exported image.
func (s *Session) OnStrokeSettled() {
	encoded, err := compositor.Composite(s.surface)
	if err != nil {
		s.logger.Warn("composite failed, dropping export", zap.Error(err))
		encoded = ""
	}
	s.exportedImage = encoded
	s.logger.Debug("stroke settled", zap.Int("export_bytes", len(encoded)))
}

// SelectColor sets the brush color. The picker is trusted, so any value is
// accepted as-is.
func (s *Session) SelectColor(hex string) {
	s.brushColor = hex
	s.logger.Debug("brush color selected", zap.String("color", hex))
}

// TogglePalette opens a closed palette and closes an open one.
func (s *Session) TogglePalette() {
	s.paletteOpen = !s.paletteOpen
}

// ClosePaletteOnOutsideClick closes the palette. It never opens it.
func (s *Session) ClosePaletteOnOutsideClick() {
	s.paletteOpen = false
}

// Undo asks the surface to drop its last line. The surface's change
// notification refreshes the export.
func (s *Session) Undo() {
	if s.surface == nil {
		return
	}
	s.surface.Undo()
}

// Clear wipes the surface and invalidates the export until the next stroke.
func (s *Session) Clear() {
	if s.surface != nil {
		s.surface.Clear()
	}
	s.exportedImage = ""
}

// DismissRotationWarning hides the warning for good and persists that.
func (s *Session) DismissRotationWarning() {
	s.rotationWarningVisible = false
	s.flags.Write(flags.RotationWarning, false)
	s.logger.Info("rotation warning dismissed")
}

// Download saves the current export under a timestamped name and returns
// that name. With nothing exported it does nothing and returns "".
func (s *Session) Download() (string, error) {
	if s.exportedImage == "" || s.saver == nil {
		return "", nil
	}
	filename := download.Filename(s.now())
	if err := s.saver.Save(s.exportedImage, filename); err != nil {
		s.logger.Warn("download failed", zap.String("filename", filename), zap.Error(err))
		return filename, err
	}
	s.logger.Info("drawing downloaded", zap.String("filename", filename))
	return filename, nil
}
