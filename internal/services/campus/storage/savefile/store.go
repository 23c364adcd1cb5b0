// Package savefile keeps save slots as JSON files in one directory, one
// slot per player: save_<lower name>.json.
package savefile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/louisbranch/campuslife/internal/platform/errors"
	"github.com/louisbranch/campuslife/internal/platform/otel"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/session"
	"github.com/louisbranch/campuslife/internal/services/campus/storage"
)

const (
	slotPrefix = "save_"
	slotSuffix = ".json"
)

// Store is a directory of save slots.
type Store struct {
	dir    string
	tracer trace.Tracer
}

var _ storage.SaveStore = (*Store)(nil)

// Open returns a store rooted at dir, creating it when missing.
func Open(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create save dir: %w", err)
	}
	return &Store{dir: dir, tracer: otel.Tracer("savefile")}, nil
}

// Dir returns the slot directory.
func (s *Store) Dir() string {
	return s.dir
}

// SlotName returns the file name of player's slot.
func SlotName(player string) string {
	return slotPrefix + storage.PlayerKey(player) + slotSuffix
}

// Save writes sess to its player's slot and returns the slot name. The
// document goes to a temp file first and is renamed over the slot, so a
// failed write leaves the previous save intact.
func (s *Store) Save(ctx context.Context, sess *session.Session) (slot string, err error) {
	slot = SlotName(sess.Student.Name)
	_, span := s.tracer.Start(ctx, "campus.save", trace.WithAttributes(attribute.String("campus.slot", slot)))
	defer func() { endSpan(span, err) }()

	data, err := storage.Encode(storage.Capture(sess))
	if err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(s.dir, slot+".*.tmp")
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeSaveWriteFailed, "create temp save", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", apperrors.Wrap(apperrors.CodeSaveWriteFailed, "write save", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return "", apperrors.Wrap(apperrors.CodeSaveWriteFailed, "sync save", err)
	}
	if err = tmp.Close(); err != nil {
		return "", apperrors.Wrap(apperrors.CodeSaveWriteFailed, "close save", err)
	}
	if err = os.Rename(tmpName, filepath.Join(s.dir, slot)); err != nil {
		return "", apperrors.Wrap(apperrors.CodeSaveWriteFailed, "replace save", err)
	}
	return slot, nil
}

// Load reads a slot by file name. A missing slot is storage.ErrNotFound;
// an unreadable document is SAVE_MALFORMED.
func (s *Store) Load(ctx context.Context, slot string) (sess *session.Session, err error) {
	_, span := s.tracer.Start(ctx, "campus.load", trace.WithAttributes(attribute.String("campus.slot", slot)))
	defer func() { endSpan(span, err) }()

	if !validSlot(slot) {
		return nil, fmt.Errorf("load %q: %w", slot, storage.ErrNotFound)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, slot))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %q: %w", slot, storage.ErrNotFound)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeSaveMalformed, "read save", err)
	}
	snap, err := storage.Decode(data)
	if err != nil {
		return nil, err
	}
	return storage.Restore(snap)
}

// List returns every slot name in the directory, sorted.
func (s *Store) List(context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	var slots []string
	for _, entry := range entries {
		if entry.Type().IsRegular() && validSlot(entry.Name()) {
			slots = append(slots, entry.Name())
		}
	}
	sort.Strings(slots)
	return slots, nil
}

// Find returns the slots whose player name fuzzy-matches query, best match
// first.
func (s *Store) Find(ctx context.Context, query string) ([]string, error) {
	slots, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	names := slotNames(slots)
	matches := fuzzy.FindFrom(storage.PlayerKey(query), names)
	out := make([]string, len(matches))
	for i, match := range matches {
		out[i] = slots[match.Index]
	}
	return out, nil
}

// slotNames implements fuzzy.Source over the player part of slot names.
type slotNames []string

func (n slotNames) String(i int) string {
	return strings.TrimSuffix(strings.TrimPrefix(n[i], slotPrefix), slotSuffix)
}

func (n slotNames) Len() int {
	return len(n)
}

func validSlot(name string) bool {
	return name == filepath.Base(name) &&
		strings.HasPrefix(name, slotPrefix) &&
		strings.HasSuffix(name, slotSuffix) &&
		len(name) > len(slotPrefix)+len(slotSuffix)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
