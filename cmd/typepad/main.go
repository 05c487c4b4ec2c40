// Package main is the entry point for the typepad renderer.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dshills/typepad/internal/app"
	"github.com/dshills/typepad/internal/config"
	"github.com/dshills/typepad/internal/config/watcher"
	"github.com/dshills/typepad/internal/engine/buffer"
	"github.com/dshills/typepad/internal/renderer/backend"
	"github.com/dshills/typepad/internal/renderer/raster"
	"github.com/dshills/typepad/internal/shape"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	ConfigPath string
	Out        string
	Caret      string
	LogLevel   string
	Width      int
	Height     int
	Watch      bool
	Term       bool
	File       string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, closer, err := app.OpenLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closer.Close()
	log.Logger = logger

	sess, err := newSession(cfg, logger)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.File != "" {
		if err := sess.Open(opts.File); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}
	if opts.Caret != "" {
		pos, err := parseCaret(opts.Caret)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		sess.SetCaret(pos, false)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if opts.Term {
		err = runTerminal(ctx, sess, opts)
	} else {
		err = runRender(ctx, sess, cfg, opts)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to a TOML or YAML configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.Out, "out", "typepad.png", "PNG file to render to")
	flag.StringVar(&opts.Caret, "caret", "", "Caret position as paragraph:byte")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.IntVar(&opts.Width, "width", 0, "View width in pixels (overrides config)")
	flag.IntVar(&opts.Height, "height", 0, "View height in pixels; 0 fits the document")
	flag.BoolVar(&opts.Watch, "watch", false, "Re-render when the file changes")
	flag.BoolVar(&opts.Term, "term", false, "Edit in a terminal preview instead of rendering a PNG")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "typepad - plain text layout and rendering\n\n")
		fmt.Fprintf(os.Stderr, "Usage: typepad [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  typepad notes.txt                  Render notes.txt to typepad.png\n")
		fmt.Fprintf(os.Stderr, "  typepad -width 400 -caret 2:5 a.txt  Wrap at 400px with the caret shown\n")
		fmt.Fprintf(os.Stderr, "  typepad -watch -out a.png a.txt    Re-render on every save\n")
		fmt.Fprintf(os.Stderr, "  typepad -term a.txt                Edit in the terminal\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("typepad %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if flag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "Error: at most one file may be given\n")
		os.Exit(2)
	}
	opts.File = flag.Arg(0)

	return opts
}

// loadConfig reads the config file, then applies the environment and flags.
func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if opts.Width > 0 {
		cfg.Layout.Width = opts.Width
	}
	if opts.Height > 0 {
		cfg.Layout.Height = opts.Height
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSession(cfg *config.Config, logger zerolog.Logger) (*app.Session, error) {
	font, provider, err := app.LoadFonts(cfg.Font)
	if err != nil {
		return nil, err
	}
	palette, err := cfg.Palette()
	if err != nil {
		return nil, err
	}

	buf := buffer.New(font,
		buffer.WithFontProvider(provider),
		buffer.WithLocale(cfg.Locale()),
		buffer.WithCacheSize(cfg.Layout.CacheSize),
		buffer.WithLogger(logger.With().Str("component", "buffer").Logger()),
	)
	return app.NewSession(buf,
		app.WithMargin(cfg.Layout.Margin),
		app.WithPalette(palette),
		app.WithLogger(logger),
	), nil
}

func parseCaret(s string) (buffer.TextPosition, error) {
	var p, b int
	if _, err := fmt.Sscanf(s, "%d:%d", &p, &b); err != nil {
		return buffer.TextPosition{}, fmt.Errorf("invalid caret %q: want paragraph:byte", s)
	}
	return buffer.NewPosition(p, b), nil
}

// render draws the session into opts.Out. With no configured height the
// image is tall enough for the whole document.
func render(sess *app.Session, cfg *config.Config, opts options) error {
	width, height := cfg.Layout.Width, cfg.Layout.Height
	sess.Resize(width, height)
	if opts.Height == 0 {
		sess.Buffer().Reshape()
		height = sess.Buffer().Height() + 2*sess.Margin()
		sess.Resize(width, height)
	}
	if width <= 0 {
		sess.Buffer().Reshape()
		width = int(math.Ceil(float64(documentWidth(sess.Buffer())))) + 2*sess.Margin()
	}

	surf := raster.New(width, height)
	sess.Paint(surf, false)

	f, err := os.Create(opts.Out)
	if err != nil {
		return fmt.Errorf("create %s: %w", opts.Out, err)
	}
	if err := surf.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info().Str("out", opts.Out).Int("width", width).Int("height", height).Msg("rendered")
	return nil
}

// documentWidth returns the widest paragraph extent.
func documentWidth(buf *buffer.Buffer) float32 {
	var w float32
	for i := 0; i < buf.LineCount(); i++ {
		if l := buf.Line(i); l != nil && l.Blob != nil {
			w = max(w, l.Blob.Bounds().Right)
		}
	}
	return w
}

func runRender(ctx context.Context, sess *app.Session, cfg *config.Config, opts options) error {
	if err := render(sess, cfg, opts); err != nil {
		return err
	}
	if !opts.Watch {
		return nil
	}
	if opts.File == "" {
		return errors.New("-watch needs a file")
	}

	changed := make(chan struct{}, 1)
	w, err := watchFile(ctx, opts.File, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return err
	}
	defer w.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changed:
			if err := sess.Open(opts.File); err != nil {
				log.Warn().Err(err).Msg("reload failed")
				continue
			}
			if err := render(sess, cfg, opts); err != nil {
				log.Warn().Err(err).Msg("render failed")
			}
		}
	}
}

func watchFile(ctx context.Context, path string, onChange func()) (*watcher.Watcher, error) {
	w, err := watcher.New(watcher.WithLogger(log.Logger))
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		w.Stop()
		return nil, err
	}
	w.OnChange(func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove {
			return
		}
		log.Debug().Str("path", ev.Path).Stringer("op", ev.Op).Msg("file changed")
		onChange()
	})
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return nil, err
	}
	return w, nil
}

// cellSize returns the pixel size of a terminal cell for font: one advance
// of 'M' by one line of spacing.
func cellSize(font shape.Font) (float32, float32) {
	glyphs := font.ShapeRun("M", 0, 1, shape.DefaultLocale, nil)
	w := float32(backend.DefaultCellWidth)
	if len(glyphs) > 0 && glyphs[0].Advance > 0 {
		w = glyphs[0].Advance
	}
	return float32(math.Ceil(float64(w))), float32(math.Ceil(float64(font.Spacing())))
}

func runTerminal(ctx context.Context, sess *app.Session, opts options) error {
	cw, ch := cellSize(sess.Buffer().Font())
	term, err := backend.NewTerminal(backend.WithCellSize(cw, ch))
	if err != nil {
		return err
	}
	if err := term.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer term.Shutdown()

	var reload atomic.Bool
	if opts.Watch && opts.File != "" {
		w, err := watchFile(ctx, opts.File, func() {
			reload.Store(true)
			term.Interrupt()
		})
		if err != nil {
			return err
		}
		defer w.Stop()
	}
	go func() {
		<-ctx.Done()
		term.Interrupt()
	}()

	sess.Resize(term.PixelSize())
	for {
		sess.Paint(term, false)
		term.Show()

		ev := term.PollEvent()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if reload.Swap(false) {
			if err := sess.Open(opts.File); err != nil {
				log.Warn().Err(err).Msg("reload failed")
			}
		}
		if sess.HandleEvent(ev, cw, ch) {
			return nil
		}
	}
}
