// Package render turns a session, and optionally its semester checkpoints,
// into a report: plain text for the console or an HTML page.
package render

import (
	"sort"

	"github.com/louisbranch/campuslife/internal/services/campus/domain/session"
	"github.com/louisbranch/campuslife/internal/services/campus/storage"
)

// Report is the read model shared by the text and HTML renderers.
type Report struct {
	Player     string
	Major      string
	Difficulty string
	Semester   int
	Graduated  bool
	MajorPlot  string

	GPA     float64
	Credits int
	Money   int
	Energy  int
	Stress  int
	Mental  string

	Courses       []CourseRow
	Research      []ResearchRow
	Arcs          []ArcRow
	Relationships []Relationship
	Decisions     []Decision
	Awareness     int
	Achievements  []string
	Checkpoints   []CheckpointRow
}

// CourseRow is one enrolled course.
type CourseRow struct {
	Name    string
	Credits int
	Grade   float64
}

// ResearchRow is one research project.
type ResearchRow struct {
	Name      string
	Progress  int
	Completed bool
}

// ArcRow is the position of one story arc.
type ArcRow struct {
	Name      string
	Milestone string
	Step      int
	Steps     int
	Finished  bool
}

// Relationship is an affinity toward one character.
type Relationship struct {
	Name     string
	Affinity int
}

// Decision is one recorded key decision.
type Decision struct {
	Topic  string
	Choice string
}

// CheckpointRow is one archived semester.
type CheckpointRow struct {
	Semester      int
	SemesterGPA   float64
	CumulativeGPA float64
}

// NewReport builds a report from sess. Checkpoints are listed in semester
// order whatever order they arrive in.
func NewReport(sess *session.Session, checkpoints []storage.Checkpoint) Report {
	student := sess.Student
	story := sess.Story
	r := Report{
		Player:     student.Name,
		Major:      student.Major,
		Difficulty: string(student.Difficulty),
		Semester:   sess.Semester(),
		Graduated:  sess.Graduated(),
		MajorPlot:  string(story.MajorPlot),
		GPA:        student.GPA,
		Credits:    student.Credits,
		Money:      student.Money,
		Energy:     student.Energy,
		Stress:     student.Stress,
		Mental:     string(student.Mental),
		Awareness:  story.GlobalAwareness,
	}
	for _, c := range student.Courses {
		r.Courses = append(r.Courses, CourseRow{Name: c.Name, Credits: c.Credits, Grade: c.ProjectedGrade()})
	}
	for _, p := range student.Research {
		r.Research = append(r.Research, ResearchRow{Name: p.Name, Progress: p.Progress, Completed: p.Completed})
	}
	for _, arc := range story.Arcs() {
		r.Arcs = append(r.Arcs, ArcRow{
			Name:      arc.Name,
			Milestone: arc.CurrentMilestone().Label(),
			Step:      arc.Current + 1,
			Steps:     len(arc.Milestones),
			Finished:  arc.Finished(),
		})
	}
	for name, affinity := range story.Relationships {
		r.Relationships = append(r.Relationships, Relationship{Name: name, Affinity: affinity})
	}
	sort.Slice(r.Relationships, func(i, j int) bool { return r.Relationships[i].Name < r.Relationships[j].Name })
	for topic, choice := range story.KeyDecisions {
		r.Decisions = append(r.Decisions, Decision{Topic: topic, Choice: choice})
	}
	sort.Slice(r.Decisions, func(i, j int) bool { return r.Decisions[i].Topic < r.Decisions[j].Topic })
	r.Achievements = story.AchievementList()

	for _, cp := range checkpoints {
		r.Checkpoints = append(r.Checkpoints, CheckpointRow{
			Semester:      cp.Semester,
			SemesterGPA:   cp.SemesterGPA,
			CumulativeGPA: cp.CumulativeGPA,
		})
	}
	sort.Slice(r.Checkpoints, func(i, j int) bool { return r.Checkpoints[i].Semester < r.Checkpoints[j].Semester })
	return r
}

// BestSemester returns the checkpoint with the highest semester GPA.
func (r Report) BestSemester() (CheckpointRow, bool) {
	if len(r.Checkpoints) == 0 {
		return CheckpointRow{}, false
	}
	best := r.Checkpoints[0]
	for _, cp := range r.Checkpoints[1:] {
		if cp.SemesterGPA > best.SemesterGPA {
			best = cp
		}
	}
	return best, true
}
