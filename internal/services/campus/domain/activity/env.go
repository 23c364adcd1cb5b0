// Package activity implements the things a student does between story
// events: challenges, studying, resting, socialising, working, clubs,
// research, items, and course management.
package activity

import (
	"fmt"
	"io"
	"log"

	"golang.org/x/text/message"

	apperrors "github.com/louisbranch/campuslife/internal/platform/errors"
	i18ncatalog "github.com/louisbranch/campuslife/internal/platform/i18n/catalog"
	"github.com/louisbranch/campuslife/internal/services/campus/catalog"
	"github.com/louisbranch/campuslife/internal/services/campus/prompt"
)

// Dice is the subset of *rand.Rand the game draws from.
type Dice interface {
	Intn(n int) int
	Float64() float64
}

// Env carries the collaborators every activity needs. It holds no game
// state; that lives in the session passed alongside it.
type Env struct {
	Prompt  *prompt.Prompter
	Dice    Dice
	Out     io.Writer
	Logger  *log.Logger
	Catalog catalog.Catalog
	Printer *message.Printer
	Locale  string
}

// Say writes one localized line. key names a message in the campus
// catalog.
func (e Env) Say(key string, args ...any) {
	out := e.output()
	e.printer().Fprintf(out, key, args...)
	fmt.Fprintln(out)
}

// T renders a localized message without writing it.
func (e Env) T(key string, args ...any) string {
	return e.printer().Sprintf(key, args...)
}

// ErrorText renders err for the player in the session locale.
func (e Env) ErrorText(err error) string {
	return apperrors.UserMessage(err, e.Locale)
}

// Println writes narrative text verbatim.
func (e Env) Println(text string) {
	fmt.Fprintln(e.output(), text)
}

// Logf records an entry in the activity log.
func (e Env) Logf(format string, args ...any) {
	if e.Logger != nil {
		e.Logger.Printf(format, args...)
	}
}

func (e Env) output() io.Writer {
	if e.Out == nil {
		return io.Discard
	}
	return e.Out
}

// printer falls back to the session locale, then the base locale.
func (e Env) printer() *message.Printer {
	if e.Printer != nil {
		return e.Printer
	}
	return i18ncatalog.Default().Printer(e.Locale)
}
