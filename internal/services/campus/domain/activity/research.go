package activity

import (
	"context"

	"github.com/louisbranch/campuslife/internal/services/campus/domain/research"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/session"
)

// Research starts a project when the student has none, otherwise works on
// one of them or starts another.
func Research(ctx context.Context, env Env, sess *session.Session) error {
	student := sess.Student
	available := unstartedProjects(sess)
	if len(student.Research) == 0 {
		return startProject(ctx, env, sess, available)
	}

	env.Say("campus.research.ongoing")
	labels := make([]string, 0, len(student.Research)+1)
	for _, p := range student.Research {
		labels = append(labels, env.T("campus.research.option", p.Name, p.Progress))
	}
	if len(available) > 0 {
		labels = append(labels, env.T("campus.research.new"))
	}
	choice, err := env.Prompt.Choose(ctx, labels)
	if err != nil {
		return err
	}
	if choice == len(student.Research) {
		return startProject(ctx, env, sess, available)
	}

	project := student.Research[choice]
	if project.Completed {
		env.Say("campus.research.done", project.Name)
		return nil
	}
	hours, err := env.Prompt.AskInt(ctx, env.T("campus.research.hours"), 1, maxShiftHours)
	if err != nil {
		return err
	}
	gained, err := student.WorkOnResearch(choice, hours, env.Dice)
	if err != nil {
		return err
	}
	PassTime(env, sess, hours)
	env.Say("campus.research.progress", gained, project.Name)
	if student.Research[choice].Completed {
		env.Say("campus.research.completed", project.Name)
		env.Logf("completed research %q", project.Name)
	}
	return nil
}

func startProject(ctx context.Context, env Env, sess *session.Session, available []research.Project) error {
	if len(available) == 0 {
		return nil
	}
	names := make([]string, len(available))
	for i, p := range available {
		names[i] = p.Name
	}
	env.Say("campus.research.header")
	choice, err := env.Prompt.Choose(ctx, names)
	if err != nil {
		return err
	}
	sess.Student.StartResearch(available[choice])
	env.Say("campus.research.started", available[choice].Name)
	return nil
}

func unstartedProjects(sess *session.Session) []research.Project {
	started := make(map[string]bool, len(sess.Student.Research))
	for _, p := range sess.Student.Research {
		started[p.Name] = true
	}
	var out []research.Project
	for _, p := range research.Catalog() {
		if !started[p.Name] {
			out = append(out, p)
		}
	}
	return out
}
