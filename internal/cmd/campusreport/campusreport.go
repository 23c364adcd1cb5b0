// Package campusreport renders a player's progress report from their save
// slot and semester archive.
package campusreport

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	entrypoint "github.com/louisbranch/campuslife/internal/platform/cmd"
	i18ncatalog "github.com/louisbranch/campuslife/internal/platform/i18n/catalog"
	"github.com/louisbranch/campuslife/internal/services/campus/render"
	"github.com/louisbranch/campuslife/internal/services/campus/storage"
	"github.com/louisbranch/campuslife/internal/services/campus/storage/savefile"
	campussqlite "github.com/louisbranch/campuslife/internal/services/campus/storage/sqlite"
)

// Report formats.
const (
	FormatHTML = "html"
	FormatText = "text"
)

// Config holds report command configuration.
type Config struct {
	SaveDir     string `env:"CAMPUSLIFE_SAVE_DIR"     envDefault:"."`
	ArchivePath string `env:"CAMPUSLIFE_ARCHIVE_PATH"`
	Locale      string `env:"CAMPUSLIFE_LOCALE"       envDefault:"en-US"`
	Player      string
	OutPath     string
	Format      string
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Format = FormatText
	fs.StringVar(&cfg.SaveDir, "saves", cfg.SaveDir, "Directory holding save slots")
	fs.StringVar(&cfg.ArchivePath, "archive", cfg.ArchivePath, "SQLite semester archive path")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "Message locale")
	fs.StringVar(&cfg.Player, "player", cfg.Player, "Player name (fuzzy matched against save slots)")
	fs.StringVar(&cfg.OutPath, "out", cfg.OutPath, "Write the report to this file instead of stdout")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "Report format: html or text")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run renders the report.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	format := strings.ToLower(strings.TrimSpace(cfg.Format))
	if format == "" {
		format = FormatText
	}
	if format != FormatHTML && format != FormatText {
		return fmt.Errorf("unknown report format %q", cfg.Format)
	}
	if strings.TrimSpace(cfg.Player) == "" {
		return errors.New("player is required")
	}

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceReport, func(ctx context.Context) error {
		report, err := buildReport(ctx, cfg)
		if err != nil {
			return err
		}
		if strings.TrimSpace(cfg.OutPath) == "" {
			return write(ctx, out, format, report)
		}

		file, err := os.Create(cfg.OutPath)
		if err != nil {
			return fmt.Errorf("create report: %w", err)
		}
		if err := write(ctx, file, format, report); err != nil {
			file.Close()
			return err
		}
		if err := file.Close(); err != nil {
			return fmt.Errorf("close report: %w", err)
		}
		printer := i18ncatalog.Default().Printer(cfg.Locale)
		printer.Fprintf(errOut, "core.report.written", report.Player, cfg.OutPath)
		fmt.Fprintln(errOut)
		return nil
	})
}

func buildReport(ctx context.Context, cfg Config) (render.Report, error) {
	saves, err := savefile.Open(cfg.SaveDir)
	if err != nil {
		return render.Report{}, fmt.Errorf("open save slots: %w", err)
	}
	slots, err := saves.Find(ctx, cfg.Player)
	if err != nil {
		return render.Report{}, err
	}
	if len(slots) == 0 {
		return render.Report{}, fmt.Errorf("no save for %q: %w", cfg.Player, storage.ErrNotFound)
	}
	sess, err := saves.Load(ctx, slots[0])
	if err != nil {
		return render.Report{}, fmt.Errorf("load %s: %w", slots[0], err)
	}

	checkpoints, err := loadCheckpoints(ctx, cfg.ArchivePath, sess.Student.Name)
	if err != nil {
		return render.Report{}, err
	}
	return render.NewReport(sess, checkpoints), nil
}

// loadCheckpoints reads the player's archive rows. A missing archive means
// no rows rather than an error.
func loadCheckpoints(ctx context.Context, path, player string) ([]storage.Checkpoint, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	archive, err := campussqlite.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open semester archive: %w", err)
	}
	defer archive.Close()
	return archive.ListCheckpoints(ctx, player)
}

func write(ctx context.Context, w io.Writer, format string, report render.Report) error {
	if format == FormatHTML {
		return render.Page(report).Render(ctx, w)
	}
	return render.Text(w, report)
}
