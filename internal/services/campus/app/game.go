package app

import (
	"context"
	"strings"

	apperrors "github.com/louisbranch/campuslife/internal/platform/errors"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/activity"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/character"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/event"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/narrative"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/semester"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/session"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/world"
	"github.com/louisbranch/campuslife/internal/services/campus/storage"
)

// SaveStore is the slot store the game saves to and loads from.
type SaveStore interface {
	storage.SaveStore
	Find(ctx context.Context, query string) ([]string, error)
}

// Game is one console session: pick or create a student, then play the
// remaining semesters.
type Game struct {
	Env         activity.Env
	Dispatcher  *event.Dispatcher
	Saves       SaveStore
	Checkpoints semester.Checkpointer
	// LoadQuery skips the load question and fuzzy-matches a slot instead.
	LoadQuery string
}

// Play runs the session to graduation.
func (g *Game) Play(ctx context.Context) error {
	g.Env.Say("core.welcome")
	sess, err := g.start(ctx)
	if err != nil {
		return err
	}

	var opts []semester.Option
	if g.Saves != nil {
		opts = append(opts, semester.WithSaver(g.Saves))
	}
	if g.Checkpoints != nil {
		opts = append(opts, semester.WithCheckpoints(g.Checkpoints))
	}
	return semester.New(g.Env, sess, g.Dispatcher, opts...).Run(ctx)
}

func (g *Game) start(ctx context.Context) (*session.Session, error) {
	if g.Saves != nil {
		sess, err := g.load(ctx)
		if err != nil || sess != nil {
			return sess, err
		}
	}
	return g.newSession(ctx)
}

// load returns nil without an error when the player ends up starting over:
// declined, nothing to load, or a broken save.
func (g *Game) load(ctx context.Context) (*session.Session, error) {
	var (
		slots []string
		err   error
	)
	query := strings.TrimSpace(g.LoadQuery)
	if query != "" {
		slots, err = g.Saves.Find(ctx, query)
		if err == nil && len(slots) > 0 {
			g.Env.Say("core.load.matches", query)
		}
	} else {
		wants, askErr := g.Env.Prompt.Confirm(ctx, g.Env.T("core.load.ask"))
		if askErr != nil {
			return nil, askErr
		}
		if !wants {
			return nil, nil
		}
		slots, err = g.Saves.List(ctx)
		if err == nil && len(slots) > 0 {
			g.Env.Say("core.load.list")
		}
	}
	if err != nil {
		g.Env.Say("core.load.failed", g.Env.ErrorText(err))
		g.Env.Logf("list saves: %v", err)
		return nil, nil
	}
	if len(slots) == 0 {
		g.Env.Say("core.load.none")
		return nil, nil
	}

	slot := slots[0]
	if query == "" || len(slots) > 1 {
		choice, err := g.Env.Prompt.Choose(ctx, slots)
		if err != nil {
			return nil, err
		}
		slot = slots[choice]
	}

	sess, err := g.Saves.Load(ctx, slot)
	if err != nil {
		if apperrors.IsFatal(err) || ctx.Err() != nil {
			return nil, err
		}
		g.Env.Say("core.load.failed", g.Env.ErrorText(err))
		g.Env.Logf("load %s: %v", slot, err)
		return nil, nil
	}
	g.Env.Say("core.load.done", slot)
	g.Env.Logf("loaded %s at semester %d", slot, sess.Semester())
	return sess, nil
}

func (g *Game) newSession(ctx context.Context) (*session.Session, error) {
	env := g.Env
	env.Say("core.create.header")
	name, err := env.Prompt.Ask(ctx, env.T("core.create.name"))
	if err != nil {
		return nil, err
	}

	env.Say("core.create.major")
	majors := character.Majors()
	major, err := env.Prompt.Choose(ctx, majors)
	if err != nil {
		return nil, err
	}

	env.Say("core.create.difficulty")
	difficulties := character.Difficulties()
	labels := make([]string, len(difficulties))
	for i, d := range difficulties {
		labels[i] = string(d)
	}
	difficulty, err := env.Prompt.Choose(ctx, labels)
	if err != nil {
		return nil, err
	}

	student := character.New(name, majors[major], difficulties[difficulty])
	sess := session.New(student, world.RandomWeather(env.Dice))

	env.Say("core.plot.intro")
	plots := narrative.MajorPlots()
	labels = make([]string, len(plots))
	for i, p := range plots {
		labels[i] = string(p)
	}
	plot, err := env.Prompt.Choose(ctx, labels)
	if err != nil {
		return nil, err
	}
	if err := sess.Story.ChooseMajorPlot(plots[plot]); err != nil {
		return nil, err
	}
	env.Say("core.plot.chosen", string(plots[plot]))
	env.Logf("new game: %s, %s, %s, following %s", student.Name, student.Major, student.Difficulty, plots[plot])
	return sess, nil
}
