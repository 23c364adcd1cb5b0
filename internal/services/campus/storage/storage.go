// Package storage defines the save document shared by every persistence
// backend, and the contracts those backends satisfy.
package storage

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/louisbranch/campuslife/internal/platform/errors"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/session"
)

// ErrNotFound indicates a requested save or checkpoint is missing.
var ErrNotFound = apperrors.New(apperrors.CodeSaveNotFound, "save not found")

// SaveStore persists whole sessions under a player slot.
type SaveStore interface {
	Save(ctx context.Context, sess *session.Session) (string, error)
	Load(ctx context.Context, slot string) (*session.Session, error)
	List(ctx context.Context) ([]string, error)
}

// Checkpoint is the archived state of a session at the end of a semester.
type Checkpoint struct {
	Player        string
	Semester      int
	SemesterGPA   float64
	CumulativeGPA float64
	Snapshot      Snapshot
	CreatedAt     time.Time
}

// CheckpointStore archives semester checkpoints.
type CheckpointStore interface {
	PutCheckpoint(ctx context.Context, checkpoint Checkpoint) error
	GetCheckpoint(ctx context.Context, player string, semester int) (Checkpoint, error)
	ListCheckpoints(ctx context.Context, player string) ([]Checkpoint, error)
}

// PlayerKey normalises a player name into the key used by slots and
// checkpoints.
func PlayerKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NewCheckpoint captures sess after a finished semester. The checkpoint
// records the semester that just ended.
func NewCheckpoint(sess *session.Session, semesterGPA float64, now time.Time) Checkpoint {
	return Checkpoint{
		Player:        PlayerKey(sess.Student.Name),
		Semester:      sess.Semester() - 1,
		SemesterGPA:   semesterGPA,
		CumulativeGPA: sess.Student.GPA,
		Snapshot:      Capture(sess),
		CreatedAt:     now.UTC(),
	}
}
