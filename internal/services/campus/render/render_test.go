package render

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/louisbranch/campuslife/internal/services/campus/domain/character"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/course"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/narrative"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/session"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/world"
	"github.com/louisbranch/campuslife/internal/services/campus/storage"
)

func reportSession(name string) *session.Session {
	student := character.New(name, "Arts", character.DifficultyEasy)
	c := course.New("World History", 3, 2)
	c.RecordMidterm(80)
	_ = student.EnrollCourse(c)
	sess := session.New(student, world.WeatherSunny)
	_ = sess.Story.ChooseMajorPlot(narrative.PlotSocialButterfly)
	sess.Story.AdjustRelationship("Xahoor", 20)
	sess.Story.AdjustRelationship("Classmates", 10)
	sess.Story.Decide("Roommate", "Coffee")
	sess.Story.AddAchievement("Roommate Roulette Survivor")
	sess.Story.AdvanceSemester()
	return sess
}

func checkpoints() []storage.Checkpoint {
	return []storage.Checkpoint{
		{Semester: 2, SemesterGPA: 3.5, CumulativeGPA: 2.9},
		{Semester: 1, SemesterGPA: 2.3, CumulativeGPA: 1.15},
		{Semester: 3, SemesterGPA: 1.0, CumulativeGPA: 1.95},
	}
}

func TestNewReport(t *testing.T) {
	r := NewReport(reportSession("Ada"), checkpoints())

	if r.Player != "Ada" || r.Semester != 2 || r.Graduated || r.MajorPlot != "Social Butterfly" {
		t.Fatalf("header = %+v", r)
	}
	if len(r.Courses) != 1 || r.Courses[0].Name != "World History" {
		t.Fatalf("courses = %+v", r.Courses)
	}
	if len(r.Arcs) != 4 || r.Arcs[0].Name != "Personal Growth" || r.Arcs[0].Step != 2 || r.Arcs[0].Steps != 6 {
		t.Fatalf("arcs = %+v", r.Arcs)
	}
	if r.Relationships[0].Name != "Classmates" || r.Relationships[1].Name != "Xahoor" {
		t.Fatalf("relationships = %+v", r.Relationships)
	}
	for i, cp := range r.Checkpoints {
		if cp.Semester != i+1 {
			t.Fatalf("checkpoints not sorted: %+v", r.Checkpoints)
		}
	}
	best, ok := r.BestSemester()
	if !ok || best.Semester != 2 {
		t.Fatalf("best semester = %+v, %v", best, ok)
	}
}

func TestBestSemesterWithoutCheckpoints(t *testing.T) {
	if _, ok := (Report{}).BestSemester(); ok {
		t.Fatal("expected no best semester")
	}
}

func TestText(t *testing.T) {
	var out bytes.Buffer
	if err := Text(&out, NewReport(reportSession("Ada"), checkpoints())); err != nil {
		t.Fatalf("text: %v", err)
	}
	text := out.String()
	for _, want := range []string{
		"Ada",
		"semester 2",
		"Major Plot",
		"Social Butterfly",
		"World History",
		"Identity Crisis",
		"Xahoor",
		"Roommate",
		"Cumulative GPA",
		"Achievements: Roommate Roulette Survivor",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("text missing %q:\n%s", want, text)
		}
	}
}

func TestTextFreshSession(t *testing.T) {
	sess := session.New(character.New("Lin", "Business", character.DifficultyHard), world.WeatherRainy)
	var out bytes.Buffer
	if err := Text(&out, NewReport(sess, nil)); err != nil {
		t.Fatalf("text: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "Not chosen yet") || !strings.Contains(text, "Achievements: none yet") {
		t.Fatalf("text = %s", text)
	}
	if strings.Contains(text, "Semester GPA") {
		t.Fatal("checkpoint table rendered without checkpoints")
	}
}

func TestPage(t *testing.T) {
	var out bytes.Buffer
	r := NewReport(reportSession("<Ada>"), checkpoints())
	if err := Page(r).Render(context.Background(), &out); err != nil {
		t.Fatalf("render: %v", err)
	}
	html := out.String()
	if !strings.HasPrefix(html, "<!DOCTYPE html>") || !strings.HasSuffix(html, "</html>") {
		t.Fatalf("not a document: %s", html)
	}
	if strings.Contains(html, "<Ada>") || !strings.Contains(html, "&lt;Ada&gt;") {
		t.Fatal("player name not escaped")
	}
	for _, want := range []string{
		`<section id="courses">`,
		`<section id="story">`,
		`<tr class="best"><td>2</td>`,
		`<li>Roommate Roulette Survivor</li>`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("html missing %q", want)
		}
	}
}

func TestPageOmitsEmptySections(t *testing.T) {
	sess := session.New(character.New("Lin", "Business", character.DifficultyHard), world.WeatherRainy)
	var out bytes.Buffer
	if err := Page(NewReport(sess, nil)).Render(context.Background(), &out); err != nil {
		t.Fatalf("render: %v", err)
	}
	html := out.String()
	if strings.Contains(html, `id="courses"`) || strings.Contains(html, `id="semesters"`) {
		t.Fatalf("empty sections rendered: %s", html)
	}
	if !strings.Contains(html, "None yet.") {
		t.Fatal("missing empty achievements note")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed pipe")
}

func TestPageReportsWriteErrors(t *testing.T) {
	err := Page(NewReport(reportSession("Ada"), nil)).Render(context.Background(), failingWriter{})
	if err == nil || err.Error() != "closed pipe" {
		t.Fatalf("err = %v, want closed pipe", err)
	}
}
