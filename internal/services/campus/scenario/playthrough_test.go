package scenario

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadStringBuildsAnswers(t *testing.T) {
	p, err := LoadString(`
local run = Playthrough.new("first year")
run:seed(42)
run:new_game{ name = "Ada", major = 3, plot = 4 }
run:times(2, 1)
run:choose(Menu.study, Menu.status)
run:input("Essay", "0.5")
run:save()
run:continue()
return run
`)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Name != "first year" || p.Seed != 42 {
		t.Fatalf("playthrough = %+v", p)
	}
	want := []string{"n", "Ada", "3", "2", "4", "1", "1", "1", "9", "Essay", "0.5", "10", "11"}
	if !reflect.DeepEqual(p.Lines, want) {
		t.Fatalf("lines = %v, want %v", p.Lines, want)
	}
}

func TestLoadStringLoadsSlot(t *testing.T) {
	p, err := LoadString(`
local run = Playthrough.new()
run:load(2)
run:load()
return run
`)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if want := []string{"y", "2", "y", "1"}; !reflect.DeepEqual(p.Lines, want) {
		t.Fatalf("lines = %v, want %v", p.Lines, want)
	}
}

func TestScriptReplaysLines(t *testing.T) {
	p := &Playthrough{Lines: []string{"n", "Ada"}}
	script := p.Script()
	ctx := context.Background()
	for _, want := range p.Lines {
		got, err := script.Next(ctx)
		if err != nil || got != want {
			t.Fatalf("next = %q, %v; want %q", got, err, want)
		}
	}
	if script.Remaining() != 0 {
		t.Fatalf("remaining = %d", script.Remaining())
	}
	if p.Script().Remaining() != 2 {
		t.Fatal("each script should start from the first answer")
	}
}

func TestLoadFileNamesAfterFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "speedrun.lua")
	source := "local run = Playthrough.new()\nrun:continue()\nreturn run\n"
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	p, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Name != "speedrun" || len(p.Lines) != 1 || p.Lines[0] != "11" {
		t.Fatalf("playthrough = %+v", p)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadStringErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{name: "no playthrough returned", source: `return 1`, want: "must return a Playthrough"},
		{name: "syntax error", source: `local run = `, want: "load lua"},
		{name: "major out of range", source: `local run = Playthrough.new(); run:new_game{ name = "Ada", major = 9 }; return run`, want: "major out of range"},
		{name: "blank name", source: `local run = Playthrough.new(); run:new_game{ name = "  " }; return run`, want: "name is required"},
		{name: "choice below one", source: `local run = Playthrough.new(); run:choose(0); return run`, want: "choices start at 1"},
		{name: "negative count", source: `local run = Playthrough.new(); run:times(-1, "1"); return run`, want: "count must not be negative"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadString(tc.source)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want %q", err, tc.want)
			}
		})
	}
}
