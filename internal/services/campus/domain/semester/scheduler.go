// Package semester drives a playthrough through its semesters: resources
// reset, free time, three event rounds, grades, and the narrative advance.
// After the eighth semester it runs the graduation reflection.
package semester

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/louisbranch/campuslife/internal/platform/errors"
	"github.com/louisbranch/campuslife/internal/platform/otel"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/activity"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/character"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/course"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/event"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/session"
)

// EventRounds is the number of dispatch rounds per semester.
const EventRounds = 3

// Free-time menu entries, numbered as the player sees them.
const (
	MenuStudy = iota + 1
	MenuRest
	MenuSocial
	MenuWork
	MenuClubs
	MenuResearch
	MenuItems
	MenuCourses
	MenuStatus
	MenuSave
	MenuContinue
)

// Phase is the scheduler state.
type Phase int

const (
	NotStarted Phase = iota
	SemesterActive
	SemesterEnding
	Graduated
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not_started"
	case SemesterActive:
		return "semester_active"
	case SemesterEnding:
		return "semester_ending"
	case Graduated:
		return "graduated"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Saver writes the session on demand and returns where it went.
type Saver interface {
	Save(ctx context.Context, sess *session.Session) (string, error)
}

// Checkpointer archives the session at the end of each semester.
type Checkpointer interface {
	Checkpoint(ctx context.Context, sess *session.Session, semesterGPA float64) error
}

// Scheduler runs semesters for one session.
type Scheduler struct {
	env         activity.Env
	sess        *session.Session
	dispatcher  *event.Dispatcher
	saver       Saver
	checkpoints Checkpointer
	tracer      trace.Tracer
	phase       Phase
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithSaver enables the save action in the free-time menu.
func WithSaver(saver Saver) Option {
	return func(s *Scheduler) { s.saver = saver }
}

// WithCheckpoints archives every finished semester.
func WithCheckpoints(checkpoints Checkpointer) Option {
	return func(s *Scheduler) { s.checkpoints = checkpoints }
}

// New returns a scheduler for sess.
func New(env activity.Env, sess *session.Session, dispatcher *event.Dispatcher, opts ...Option) *Scheduler {
	s := &Scheduler{
		env:        env,
		sess:       sess,
		dispatcher: dispatcher,
		tracer:     otel.Tracer("semester"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if sess.Graduated() {
		s.phase = Graduated
	}
	return s
}

// Phase reports the current scheduler state.
func (s *Scheduler) Phase() Phase {
	return s.phase
}

// Run plays every remaining semester, then graduation.
func (s *Scheduler) Run(ctx context.Context) error {
	for !s.sess.Graduated() {
		if err := s.PlaySemester(ctx); err != nil {
			return err
		}
	}
	return s.Graduate(ctx)
}

// PlaySemester runs one full semester cycle.
func (s *Scheduler) PlaySemester(ctx context.Context) (err error) {
	number := s.sess.Semester()
	ctx, span := s.tracer.Start(ctx, "campus.semester", trace.WithAttributes(
		attribute.Int("campus.semester", number),
		attribute.String("campus.player", s.sess.Student.Name),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := s.Start(ctx); err != nil {
		return err
	}
	if err := s.FreeTime(ctx); err != nil {
		return err
	}
	if err := s.Events(ctx); err != nil {
		return err
	}
	gpa := s.End(ctx)
	span.SetAttributes(attribute.Float64("campus.semester_gpa", gpa))
	return nil
}

// Start resets resources and runs course management.
func (s *Scheduler) Start(ctx context.Context) error {
	s.phase = SemesterActive
	student := s.sess.Student
	s.env.Say("campus.semester.begins", s.sess.Semester())
	s.env.Logf("semester %d begins for %s", s.sess.Semester(), student.Name)
	student.SetEnergy(student.MaxEnergy)
	student.SetStress(0)
	return activity.ManageCourses(ctx, s.env, s.sess)
}

// FreeTime offers campus activities until the player moves on to the
// semester's events.
func (s *Scheduler) FreeTime(ctx context.Context) error {
	activity.ApplyWeather(s.env, s.sess)
	for {
		options := []string{
			s.env.T("campus.menu.study"),
			s.env.T("campus.menu.rest"),
			s.env.T("campus.menu.social"),
			s.env.T("campus.menu.work"),
			s.env.T("campus.menu.clubs"),
			s.env.T("campus.menu.research"),
			s.env.T("campus.menu.items"),
			s.env.T("campus.menu.courses"),
			s.env.T("campus.menu.status"),
			s.env.T("campus.menu.save"),
			s.env.T("campus.menu.continue"),
		}
		s.env.Say("campus.menu.header", s.sess.Clock.String())
		choice, err := s.env.Prompt.Choose(ctx, options)
		if err != nil {
			return err
		}
		switch choice + 1 {
		case MenuStudy:
			activity.Study(s.env, s.sess)
			activity.PassTime(s.env, s.sess, 2)
		case MenuRest:
			activity.Rest(s.env, s.sess)
			activity.PassTime(s.env, s.sess, 2)
		case MenuSocial:
			err = activity.Social(ctx, s.env, s.sess)
		case MenuWork:
			err = activity.Work(ctx, s.env, s.sess)
		case MenuClubs:
			err = activity.Extracurricular(ctx, s.env, s.sess)
		case MenuResearch:
			err = activity.Research(ctx, s.env, s.sess)
		case MenuItems:
			err = activity.UseItem(ctx, s.env, s.sess)
		case MenuCourses:
			err = activity.ManageCourses(ctx, s.env, s.sess)
		case MenuStatus:
			s.status()
		case MenuSave:
			s.save(ctx)
		default:
			return nil
		}
		if err != nil {
			// Rule violations are reported and the menu comes back.
			code := apperrors.CodeOf(err)
			if code == apperrors.CodeUnknown || code.Fatal() {
				return err
			}
			s.env.Println(s.env.ErrorText(err))
			s.env.Logf("free time: %v", err)
		}
	}
}

// Events runs the dispatch rounds. Mental state is recomputed after each
// round and burnout forces a rest.
func (s *Scheduler) Events(ctx context.Context) error {
	student := s.sess.Student
	for round := 0; round < EventRounds; round++ {
		if err := s.dispatcher.Round(ctx, s.env, s.sess); err != nil {
			return err
		}
		if student.RefreshMentalState() == character.MentalBurnout {
			s.env.Say("campus.semester.burnout")
			activity.Rest(s.env, s.sess)
		}
	}
	return nil
}

// End grades the semester and advances the story and the student. It
// returns the semester GPA.
func (s *Scheduler) End(ctx context.Context) float64 {
	s.phase = SemesterEnding
	student := s.sess.Student
	s.env.Say("campus.semester.ends", s.sess.Semester())

	gpa := SemesterGPA(student.Courses)
	student.SetGPA((student.GPA + gpa) / 2)
	s.env.Say("campus.semester.gpa", gpa)
	s.env.Say("campus.semester.cumulative", student.GPA)
	s.env.Logf("semester %d ended: gpa %.2f, cumulative %.2f", s.sess.Semester(), gpa, student.GPA)

	s.sess.Story.AdvanceSemester()
	if learned := student.AdvanceSemester(); learned != "" {
		s.env.Say("campus.semester.learned", learned)
	}

	if s.checkpoints != nil {
		if err := s.checkpoints.Checkpoint(ctx, s.sess, gpa); err != nil {
			s.env.Logf("checkpoint semester %d: %v", s.sess.Semester()-1, err)
		}
	}

	if s.sess.Graduated() {
		s.phase = Graduated
	}
	return gpa
}

// SemesterGPA is the credit-weighted final grade, or 0 without credits.
// Each course's final grade is recalculated and stored.
func SemesterGPA(courses []*course.Course) float64 {
	var weighted float64
	var credits int
	for _, c := range courses {
		credits += c.Credits
		weighted += c.CalculateFinalGrade() * float64(c.Credits)
	}
	if credits == 0 {
		return 0
	}
	return weighted / float64(credits)
}

// Reflections are the graduation reflection options. The first three award
// distinct achievements; the rest award Campus Enthusiast.
func Reflections() []string {
	return []string{
		"Proud of your academic achievements",
		"Grateful for the friendships you've made",
		"Confident for the future ahead",
		"Excited for the next chapter",
		"Reflective about your experiences",
		"Hopeful about your future",
		"Nervous about the real world",
		"Curious about your next steps",
		"Excited about your career prospects",
		"Nostalgic about your time on campus",
	}
}

// ReflectionAchievement maps a 0-based reflection index to its achievement.
func ReflectionAchievement(choice int) string {
	switch choice {
	case 0:
		return "Academic Superstar"
	case 1:
		return "Social Butterfly"
	case 2:
		return "Future Leader"
	default:
		return "Campus Enthusiast"
	}
}

// Graduate runs the graduation reflection and prints the story summary.
func (s *Scheduler) Graduate(ctx context.Context) error {
	if !s.sess.Graduated() {
		return errors.New("graduate: semesters remain")
	}
	s.phase = Graduated
	s.env.Say("campus.graduation.header")
	s.env.Say("campus.graduation.gpa", s.sess.Student.GPA)
	s.env.Say("campus.graduation.reflect")
	choice, err := s.env.Prompt.Choose(ctx, Reflections())
	if err != nil {
		return err
	}
	s.sess.Story.AddAchievement(ReflectionAchievement(choice))
	s.env.Say("campus.graduation.summary")
	s.env.Println(s.sess.Story.Summary())
	s.env.Say("campus.graduation.thanks")
	s.env.Logf("%s graduated with gpa %.2f", s.sess.Student.Name, s.sess.Student.GPA)
	return nil
}

func (s *Scheduler) status() {
	student := s.sess.Student
	s.env.Say("campus.status.header", student.Name, student.Major, s.sess.Semester())
	s.env.Say("campus.status.resources", student.Energy, student.MaxEnergy, student.Stress, string(student.Mental))
	s.env.Say("campus.status.academics", student.GPA, student.Credits)
	s.env.Say("campus.status.money", student.Money)
	s.env.Say("campus.weather.current", string(s.sess.Weather))
}

func (s *Scheduler) save(ctx context.Context) {
	if s.saver == nil {
		s.env.Say("campus.save.disabled")
		return
	}
	path, err := s.saver.Save(ctx, s.sess)
	if err != nil {
		s.env.Say("campus.save.failed", s.env.ErrorText(err))
		s.env.Logf("save failed: %v", err)
		return
	}
	s.env.Say("campus.save.done", path)
}
