// Package app wires a console campus life session: catalog, activity log,
// input source, save slots, and the optional semester archive.
package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	i18ncatalog "github.com/louisbranch/campuslife/internal/platform/i18n/catalog"
	"github.com/louisbranch/campuslife/internal/random"
	"github.com/louisbranch/campuslife/internal/services/campus/catalog"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/activity"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/event"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/semester"
	"github.com/louisbranch/campuslife/internal/services/campus/prompt"
	"github.com/louisbranch/campuslife/internal/services/campus/scenario"
	"github.com/louisbranch/campuslife/internal/services/campus/storage/savefile"
	campussqlite "github.com/louisbranch/campuslife/internal/services/campus/storage/sqlite"
)

// RuntimeConfig controls where a session reads from and writes to.
type RuntimeConfig struct {
	CatalogPath string
	SaveDir     string
	// ArchivePath enables per-semester checkpoints when set.
	ArchivePath string
	LogPath     string
	// Seed fixes the dice; zero draws a fresh seed.
	Seed int64
	// ScriptPath replays a Lua playthrough instead of reading In.
	ScriptPath string
	Locale     string
	LoadQuery  string

	In  io.Reader
	Out io.Writer
}

const logFlags = log.LstdFlags

// Run plays one session to graduation or until input runs out.
func Run(ctx context.Context, cfg RuntimeConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	in, out := cfg.In, cfg.Out
	if in == nil {
		in = strings.NewReader("")
	}
	if out == nil {
		out = io.Discard
	}
	locale := strings.TrimSpace(cfg.Locale)
	if locale == "" {
		locale = i18ncatalog.BaseLocale
	}

	logger, closeLog, err := openActivityLog(cfg.LogPath)
	if err != nil {
		return err
	}
	defer closeLog()

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logger.Printf("catalog: %v; using built-in defaults", err)
	}

	var (
		src  prompt.Source = prompt.NewLines(in)
		echo bool
		seed = cfg.Seed
	)
	if strings.TrimSpace(cfg.ScriptPath) != "" {
		playthrough, err := scenario.LoadFile(cfg.ScriptPath)
		if err != nil {
			return fmt.Errorf("load playthrough %s: %w", cfg.ScriptPath, err)
		}
		src = playthrough.Script()
		echo = true
		if seed == 0 {
			seed = playthrough.Seed
		}
		logger.Printf("replaying playthrough %q (%d answers)", playthrough.Name, len(playthrough.Lines))
	}
	seed, err = random.ResolveSeed(seed)
	if err != nil {
		return fmt.Errorf("resolve seed: %w", err)
	}
	logger.Printf("session seed %d", seed)

	saves, err := savefile.Open(cfg.SaveDir)
	if err != nil {
		return fmt.Errorf("open save slots: %w", err)
	}

	var checkpoints semester.Checkpointer
	if path := strings.TrimSpace(cfg.ArchivePath); path != "" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create archive dir: %w", err)
			}
		}
		archive, err := campussqlite.Open(ctx, path)
		if err != nil {
			return fmt.Errorf("open semester archive: %w", err)
		}
		defer func() {
			if closeErr := archive.Close(); closeErr != nil {
				log.Printf("close semester archive: %v", closeErr)
			}
		}()
		checkpoints = archive
	}

	registry, err := event.DefaultRegistry()
	if err != nil {
		return fmt.Errorf("build event registry: %w", err)
	}

	printer := i18ncatalog.Default().Printer(locale)
	game := &Game{
		Env: activity.Env{
			Prompt:  prompt.New(src, out, echo, prompt.WithPrinter(printer)),
			Dice:    random.NewRand(seed),
			Out:     out,
			Logger:  logger,
			Catalog: cat,
			Printer: printer,
			Locale:  locale,
		},
		Dispatcher:  event.NewDispatcher(registry),
		Saves:       saves,
		Checkpoints: checkpoints,
		LoadQuery:   cfg.LoadQuery,
	}
	if err := game.Play(ctx); err != nil {
		logger.Printf("session ended: %v", err)
		return err
	}
	logger.Printf("session complete")
	return nil
}

// openActivityLog appends to path, or discards entries when path is empty.
func openActivityLog(path string) (*log.Logger, func(), error) {
	if strings.TrimSpace(path) == "" {
		return log.New(io.Discard, "", logFlags), func() {}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open activity log: %w", err)
	}
	closeLog := func() {
		if err := file.Close(); err != nil {
			log.Printf("close activity log: %v", err)
		}
	}
	return log.New(file, "", logFlags), closeLog, nil
}
