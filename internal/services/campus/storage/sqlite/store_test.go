package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/louisbranch/campuslife/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/character"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/session"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/world"
	"github.com/louisbranch/campuslife/internal/services/campus/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func finishedSemester(name string, semesterGPA float64) *session.Session {
	sess := session.New(character.New(name, "Medicine", character.DifficultyHard), world.WeatherRainy)
	sess.Student.SetGPA(semesterGPA / 2)
	sess.Story.AddAchievement("Oriented Freshman")
	sess.Story.AdvanceSemester()
	sess.Student.AdvanceSemester()
	return sess
}

func TestOpenAppliesMigrations(t *testing.T) {
	store := openTestStore(t)
	applied, err := sqlitemigrate.AppliedMigrations(context.Background(), store.sqlDB)
	if err != nil {
		t.Fatalf("applied migrations: %v", err)
	}
	if len(applied) != 1 || applied[0] != "0001_checkpoints.sql" {
		t.Fatalf("applied = %v", applied)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(context.Background(), "  "); err == nil {
		t.Fatal("expected error for blank path")
	}
}

func TestCheckpointRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }
	sess := finishedSemester("Ada", 3.2)

	if err := store.Checkpoint(ctx, sess, 3.2); err != nil {
		t.Fatalf("checkpoint: %v", err)
	}
	got, err := store.GetCheckpoint(ctx, "ADA", 1)
	if err != nil {
		t.Fatalf("get checkpoint: %v", err)
	}
	if got.Player != "ada" || got.Semester != 1 || got.SemesterGPA != 3.2 || got.CumulativeGPA != 1.6 {
		t.Fatalf("checkpoint = %+v", got)
	}
	if !got.CreatedAt.Equal(fixed) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, fixed)
	}
	restored, err := storage.Restore(got.Snapshot)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !reflect.DeepEqual(restored, sess) {
		t.Fatalf("restored = %+v, want %+v", restored, sess)
	}
}

func TestCheckpointReplaysReplace(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	if err := store.Checkpoint(ctx, finishedSemester("Ada", 2), 2); err != nil {
		t.Fatalf("checkpoint: %v", err)
	}
	if err := store.Checkpoint(ctx, finishedSemester("Ada", 3), 3); err != nil {
		t.Fatalf("checkpoint replay: %v", err)
	}
	list, err := store.ListCheckpoints(ctx, "ada")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].SemesterGPA != 3 {
		t.Fatalf("checkpoints = %+v", list)
	}
}

func TestListCheckpointsOrdersBySemester(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	for _, semester := range []int{3, 1, 2} {
		checkpoint := storage.NewCheckpoint(finishedSemester("Grace", 2), 2, time.Now())
		checkpoint.Semester = semester
		if err := store.PutCheckpoint(ctx, checkpoint); err != nil {
			t.Fatalf("put %d: %v", semester, err)
		}
	}
	if err := store.Checkpoint(ctx, finishedSemester("Ada", 1), 1); err != nil {
		t.Fatalf("checkpoint: %v", err)
	}

	list, err := store.ListCheckpoints(ctx, "grace")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("checkpoints = %d, want 3", len(list))
	}
	for i, checkpoint := range list {
		if checkpoint.Semester != i+1 {
			t.Fatalf("checkpoint %d semester = %d", i, checkpoint.Semester)
		}
	}
	players, err := store.Players(ctx)
	if err != nil {
		t.Fatalf("players: %v", err)
	}
	if !reflect.DeepEqual(players, []string{"ada", "grace"}) {
		t.Fatalf("players = %v", players)
	}
}

func TestGetCheckpointNotFound(t *testing.T) {
	store := openTestStore(t)
	_, err := store.GetCheckpoint(context.Background(), "nobody", 1)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestPutCheckpointRejectsInvalid(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	checkpoint := storage.NewCheckpoint(finishedSemester("Ada", 2), 2, time.Now())

	checkpoint.Semester = 0
	if err := store.PutCheckpoint(ctx, checkpoint); !errors.Is(err, ErrInvalidCheckpoint) {
		t.Fatalf("semester 0: err = %v", err)
	}
	checkpoint.Semester = 1
	checkpoint.Player = ""
	if err := store.PutCheckpoint(ctx, checkpoint); !errors.Is(err, ErrInvalidCheckpoint) {
		t.Fatalf("blank player: err = %v", err)
	}
}
