// Package session groups the state of one playthrough. A Session is created
// at new-game or load time and passed explicitly to every operation.
package session

import (
	"github.com/louisbranch/campuslife/internal/services/campus/domain/character"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/narrative"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/world"
)

// Session is the mutable game graph: the student, the story, and the campus
// environment. Student and Story advance semesters in lockstep but are
// otherwise independent.
type Session struct {
	Student *character.Student
	Story   *narrative.Progress
	Clock   world.Clock
	Weather world.Weather
}

// New starts a playthrough for student at the start of the day.
func New(student *character.Student, weather world.Weather) *Session {
	return &Session{
		Student: student,
		Story:   narrative.NewProgress(),
		Clock:   world.StartOfDay,
		Weather: weather,
	}
}

// Semester returns the story semester that drives the schedule.
func (s *Session) Semester() int {
	return s.Story.Semester
}

// Graduated reports whether all eight semesters are behind the student.
func (s *Session) Graduated() bool {
	return s.Story.Semester > FinalSemester
}

// FinalSemester is the last semester before graduation.
const FinalSemester = 8
