// Package prompt reads player choices from an injected line source.
//
// Every question re-prompts until a valid answer arrives. The only error a
// caller sees is an exhausted source (INPUT_CLOSED) or a cancelled context.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/message"

	apperrors "github.com/louisbranch/campuslife/internal/platform/errors"
	i18ncatalog "github.com/louisbranch/campuslife/internal/platform/i18n/catalog"
)

// Source yields one line of player input at a time.
type Source interface {
	Next(ctx context.Context) (string, error)
}

// ErrClosed reports that the source has no more input.
var ErrClosed = apperrors.New(apperrors.CodeInputClosed, "input closed")

// Lines reads newline-separated input from r.
type Lines struct {
	scanner *bufio.Scanner
}

// NewLines returns a source reading from r, typically os.Stdin.
func NewLines(r io.Reader) *Lines {
	return &Lines{scanner: bufio.NewScanner(r)}
}

// Next returns the next line without its newline.
func (l *Lines) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !l.scanner.Scan() {
		if err := l.scanner.Err(); err != nil {
			return "", apperrors.Wrap(apperrors.CodeInputClosed, "read input", err)
		}
		return "", ErrClosed
	}
	return l.scanner.Text(), nil
}

// Script replays a fixed list of answers. It backs headless playthroughs
// and tests.
type Script struct {
	lines []string
	pos   int
}

// NewScript returns a source that yields lines in order.
func NewScript(lines ...string) *Script {
	return &Script{lines: append([]string(nil), lines...)}
}

// Next returns the next scripted line.
func (s *Script) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.pos >= len(s.lines) {
		return "", ErrClosed
	}
	line := s.lines[s.pos]
	s.pos++
	return line, nil
}

// Remaining reports how many scripted lines are left.
func (s *Script) Remaining() int {
	return len(s.lines) - s.pos
}

// Prompter asks questions on out and reads answers from a Source. Its own
// labels come from the core catalog namespace.
type Prompter struct {
	src     Source
	out     io.Writer
	echo    bool
	printer *message.Printer
}

// Option configures a Prompter.
type Option func(*Prompter)

// WithPrinter renders the prompter's labels with printer instead of the
// base locale.
func WithPrinter(printer *message.Printer) Option {
	return func(p *Prompter) {
		if printer != nil {
			p.printer = printer
		}
	}
}

// New returns a prompter. Answers from non-interactive sources are echoed
// when echo is set so transcripts read like a console session.
func New(src Source, out io.Writer, echo bool, opts ...Option) *Prompter {
	if out == nil {
		out = io.Discard
	}
	p := &Prompter{src: src, out: out, echo: echo}
	for _, opt := range opts {
		opt(p)
	}
	if p.printer == nil {
		p.printer = i18ncatalog.Default().Printer(i18ncatalog.BaseLocale)
	}
	return p
}

// Choose lists options and returns the 0-based index of the selected one.
// Players answer with the 1-based number shown next to each option.
func (p *Prompter) Choose(ctx context.Context, options []string) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("choose: no options")
	}
	p.say("core.prompt.actions")
	for i, option := range options {
		fmt.Fprintf(p.out, "%d. %s\n", i+1, option)
	}
	for {
		line, err := p.read(ctx, p.printer.Sprintf("core.prompt.choice"))
		if err != nil {
			return 0, err
		}
		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			p.say("core.prompt.invalid")
			continue
		}
		if choice < 1 || choice > len(options) {
			p.say("core.prompt.range_int", 1, len(options))
			continue
		}
		return choice - 1, nil
	}
}

// Ask returns the trimmed answer to question. Blank answers re-prompt.
func (p *Prompter) Ask(ctx context.Context, question string) (string, error) {
	for {
		line, err := p.read(ctx, question)
		if err != nil {
			return "", err
		}
		if answer := strings.TrimSpace(line); answer != "" {
			return answer, nil
		}
	}
}

// AskInt reads an integer and clamps it to [minValue,maxValue].
func (p *Prompter) AskInt(ctx context.Context, question string, minValue, maxValue int) (int, error) {
	for {
		line, err := p.read(ctx, question)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			p.say("core.prompt.invalid")
			continue
		}
		return min(maxValue, max(minValue, n)), nil
	}
}

// AskFloat reads a number within [minValue,maxValue], re-prompting otherwise.
func (p *Prompter) AskFloat(ctx context.Context, question string, minValue, maxValue float64) (float64, error) {
	for {
		line, err := p.read(ctx, question)
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			p.say("core.prompt.invalid")
			continue
		}
		if !(f >= minValue && f <= maxValue) {
			p.say("core.prompt.range_float", minValue, maxValue)
			continue
		}
		return f, nil
	}
}

// Confirm asks a yes/no question. Only answers starting with y count as yes.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	line, err := p.read(ctx, question)
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "y"), nil
}

func (p *Prompter) say(key string, args ...any) {
	p.printer.Fprintf(p.out, key, args...)
	fmt.Fprintln(p.out)
}

func (p *Prompter) read(ctx context.Context, label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.src.Next(ctx)
	if err != nil {
		return "", err
	}
	if p.echo {
		fmt.Fprintln(p.out, line)
	}
	return line, nil
}
