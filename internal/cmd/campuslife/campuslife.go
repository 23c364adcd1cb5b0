// Package campuslife parses game command flags and launches a console
// session.
package campuslife

import (
	"context"
	"flag"
	"fmt"
	"io"

	entrypoint "github.com/louisbranch/campuslife/internal/platform/cmd"
	apperrors "github.com/louisbranch/campuslife/internal/platform/errors"
	campusapp "github.com/louisbranch/campuslife/internal/services/campus/app"
)

// Config holds game command configuration.
type Config struct {
	CatalogPath string `env:"CAMPUSLIFE_CATALOG"      envDefault:"config.yaml"`
	SaveDir     string `env:"CAMPUSLIFE_SAVE_DIR"     envDefault:"."`
	ArchivePath string `env:"CAMPUSLIFE_ARCHIVE_PATH"`
	LogPath     string `env:"CAMPUSLIFE_LOG_PATH"     envDefault:"university_sim.log"`
	Seed        int64  `env:"CAMPUSLIFE_SEED"`
	ScriptPath  string `env:"CAMPUSLIFE_SCRIPT"`
	Locale      string `env:"CAMPUSLIFE_LOCALE"       envDefault:"en-US"`
	LoadQuery   string
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "Activity catalog file (.yaml or .toml)")
	fs.StringVar(&cfg.SaveDir, "saves", cfg.SaveDir, "Directory holding save slots")
	fs.StringVar(&cfg.ArchivePath, "archive", cfg.ArchivePath, "SQLite semester archive path (disabled when empty)")
	fs.StringVar(&cfg.LogPath, "log", cfg.LogPath, "Activity log file (disabled when empty)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 picks one)")
	fs.StringVar(&cfg.ScriptPath, "script", cfg.ScriptPath, "Lua playthrough to replay instead of reading stdin")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "Message locale")
	fs.StringVar(&cfg.LoadQuery, "load", cfg.LoadQuery, "Load the save slot whose player best matches this name")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run plays one session. Running out of input ends the session normally.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceCampus, func(ctx context.Context) error {
		err := campusapp.Run(ctx, campusapp.RuntimeConfig{
			CatalogPath: cfg.CatalogPath,
			SaveDir:     cfg.SaveDir,
			ArchivePath: cfg.ArchivePath,
			LogPath:     cfg.LogPath,
			Seed:        cfg.Seed,
			ScriptPath:  cfg.ScriptPath,
			Locale:      cfg.Locale,
			LoadQuery:   cfg.LoadQuery,
			In:          in,
			Out:         out,
		})
		if apperrors.HasCode(err, apperrors.CodeInputClosed) {
			fmt.Fprintln(errOut, apperrors.UserMessage(err, cfg.Locale))
			return nil
		}
		return err
	})
}
