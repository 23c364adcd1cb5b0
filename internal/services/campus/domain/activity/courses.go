package activity

import (
	"context"

	"github.com/louisbranch/campuslife/internal/services/campus/domain/character"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/course"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/session"
)

const (
	midtermDifficultyFactor = 10
	finalDifficultyFactor   = 15
	examPassScore           = 100.0
	examFailScore           = 50.0
)

const (
	courseActionAddAssignment = iota
	courseActionGradeAssignment
	courseActionMidterm
	courseActionFinal
	courseActionBack
)

var courseActions = []string{"Add Assignment", "Grade Assignment", "Take Midterm", "Take Final", "Back"}

// ManageCourses enrolls a student without courses in a full load; otherwise
// it opens the course menu for one course.
func ManageCourses(ctx context.Context, env Env, sess *session.Session) error {
	if len(sess.Student.Courses) == 0 {
		return SelectCourses(ctx, env, sess)
	}
	return courseMenu(ctx, env, sess)
}

// SelectCourses forces the player to pick courses until the load is full
// or the catalog runs out.
func SelectCourses(ctx context.Context, env Env, sess *session.Session) error {
	student := sess.Student
	env.Say("campus.courses.select")
	for len(student.Courses) < character.MaxCourses {
		enrolled := make(map[string]bool, len(student.Courses))
		for _, c := range student.Courses {
			enrolled[c.Name] = true
		}
		var remaining []int
		var labels []string
		for i, offered := range env.Catalog.Courses {
			if enrolled[offered.Name] {
				continue
			}
			remaining = append(remaining, i)
			labels = append(labels, env.T("campus.courses.option", offered.Name, offered.Credits))
		}
		if len(remaining) == 0 {
			return nil
		}

		env.Say("campus.courses.available")
		choice, err := env.Prompt.Choose(ctx, labels)
		if err != nil {
			return err
		}
		offered := env.Catalog.Courses[remaining[choice]]
		if err := student.EnrollCourse(course.New(offered.Name, offered.Credits, offered.Difficulty)); err != nil {
			return err
		}
		env.Say("campus.courses.enrolled", offered.Name)
		env.Logf("enrolled in %s", offered.Name)
	}
	return nil
}

// courseMenu recomputes and stores every listed course's grade, then the
// chosen course's grade again after any action, Back included.
func courseMenu(ctx context.Context, env Env, sess *session.Session) error {
	student := sess.Student
	env.Say("campus.courses.current")
	labels := make([]string, len(student.Courses))
	for i, c := range student.Courses {
		labels[i] = env.T("campus.courses.grade_option", c.Name, c.CalculateFinalGrade())
	}
	choice, err := env.Prompt.Choose(ctx, labels)
	if err != nil {
		return err
	}
	chosen, err := student.Course(choice)
	if err != nil {
		return err
	}

	env.Say("campus.courses.managing", chosen.Name)
	action, err := env.Prompt.Choose(ctx, courseActions)
	if err != nil {
		return err
	}
	switch action {
	case courseActionAddAssignment:
		name, err := env.Prompt.Ask(ctx, env.T("campus.courses.assignment_name"))
		if err != nil {
			return err
		}
		weight, err := env.Prompt.AskFloat(ctx, env.T("campus.courses.assignment_weight"), 0, 1)
		if err != nil {
			return err
		}
		if err := chosen.AddAssignment(name, weight); err != nil {
			return err
		}
		env.Say("campus.courses.assignment_added", name, chosen.Name)
	case courseActionGradeAssignment:
		if len(chosen.Assignments) == 0 {
			env.Say("campus.courses.no_assignments")
			break
		}
		names := make([]string, len(chosen.Assignments))
		for i, a := range chosen.Assignments {
			names[i] = env.T("campus.courses.grade_option", a.Name, a.Grade)
		}
		index, err := env.Prompt.Choose(ctx, names)
		if err != nil {
			return err
		}
		grade, err := env.Prompt.AskFloat(ctx, env.T("campus.courses.grade_prompt"), 0, course.MaxGrade)
		if err != nil {
			return err
		}
		if err := chosen.GradeAssignment(index, grade); err != nil {
			return err
		}
		student.Stats.AssignmentsCompleted++
		env.Say("campus.courses.graded", chosen.CalculateFinalGrade())
	case courseActionMidterm:
		passed := AcademicChallenge(env, sess, chosen.Name+" Midterm", chosen.Difficulty*midtermDifficultyFactor)
		chosen.RecordMidterm(examScore(passed))
		env.Say("campus.courses.midterm", chosen.Midterm)
	case courseActionFinal:
		passed := AcademicChallenge(env, sess, chosen.Name+" Final", chosen.Difficulty*finalDifficultyFactor)
		chosen.RecordFinal(examScore(passed))
		env.Say("campus.courses.final", chosen.Final)
	}

	env.Say("campus.courses.updated", chosen.CalculateFinalGrade())
	return nil
}

func examScore(passed bool) float64 {
	if passed {
		return examPassScore
	}
	return examFailScore
}
