package campuslife

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConfig_ParsesDefaultsAndFlags(t *testing.T) {
	fs := flag.NewFlagSet("campuslife", flag.ContinueOnError)
	t.Setenv("CAMPUSLIFE_SAVE_DIR", "/var/saves")
	t.Setenv("CAMPUSLIFE_SEED", "99")

	cfg, err := ParseConfig(fs, []string{"-locale", "pt-BR", "-load", "ada", "-archive", "data/archive.db"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.SaveDir != "/var/saves" {
		t.Fatalf("save dir = %q, want /var/saves", cfg.SaveDir)
	}
	if cfg.Seed != 99 {
		t.Fatalf("seed = %d, want 99", cfg.Seed)
	}
	if cfg.CatalogPath != "config.yaml" || cfg.LogPath != "university_sim.log" {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.Locale != "pt-BR" || cfg.LoadQuery != "ada" || cfg.ArchivePath != "data/archive.db" {
		t.Fatalf("flags = %+v", cfg)
	}
}

func TestParseConfig_RejectsBadSeed(t *testing.T) {
	fs := flag.NewFlagSet("campuslife", flag.ContinueOnError)
	t.Setenv("CAMPUSLIFE_SEED", "lucky")

	if _, err := ParseConfig(fs, nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestRunEndsQuietlyWhenInputCloses(t *testing.T) {
	dir := t.TempDir()
	var out, errOut bytes.Buffer
	cfg := Config{
		CatalogPath: filepath.Join(dir, "config.yaml"),
		SaveDir:     dir,
		Seed:        5,
		Locale:      "en-US",
	}

	err := Run(context.Background(), cfg, strings.NewReader("n\nAda\n"), &out, &errOut)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Enter your name:") {
		t.Fatalf("output = %s", out.String())
	}
	if !strings.Contains(errOut.String(), "No more input. The session has ended.") {
		t.Fatalf("stderr = %s", errOut.String())
	}
}

func TestRunReportsMissingPlaythrough(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{SaveDir: dir, ScriptPath: filepath.Join(dir, "missing.lua")}

	if err := Run(context.Background(), cfg, nil, nil, nil); err == nil {
		t.Fatal("expected error")
	}
}
