package narrative

import (
	"strings"
	"testing"

	apperrors "github.com/louisbranch/campuslife/internal/platform/errors"
)

func TestArcAdvanceSaturates(t *testing.T) {
	for k := 0; k <= 10; k++ {
		arc, err := NewArc(ArcSocialLife)
		if err != nil {
			t.Fatalf("new arc: %v", err)
		}
		for i := 0; i < k; i++ {
			arc.Advance()
		}
		want := min(k, len(arc.Milestones)-1)
		if arc.Current != want {
			t.Fatalf("after %d advances current = %d, want %d", k, arc.Current, want)
		}
	}
}

func TestArcAdvancePastEndReportsNoOp(t *testing.T) {
	arc, _ := NewArc(ArcCareerDevelopment)
	for arc.Advance() {
	}
	if !arc.Finished() || arc.CurrentMilestone() != JobOfferNegotiation {
		t.Fatalf("terminal milestone = %v", arc.CurrentMilestone())
	}
	for i := 0; i < 3; i++ {
		if arc.Advance() {
			t.Fatal("expected advance at terminal milestone to fail")
		}
	}
	if arc.CurrentMilestone() != JobOfferNegotiation {
		t.Fatalf("milestone moved to %v", arc.CurrentMilestone())
	}
}

func TestNewArcRejectsUnknown(t *testing.T) {
	if _, err := NewArc("side_quests"); apperrors.CodeOf(err) != apperrors.CodeUnknownArc {
		t.Fatalf("NewArc error = %v, want UNKNOWN_ARC", err)
	}
}

func TestArcSetCurrentRangeChecked(t *testing.T) {
	arc, _ := NewArc(ArcAcademicJourney)
	if err := arc.SetCurrent(3); err != nil {
		t.Fatalf("set current: %v", err)
	}
	if arc.CurrentMilestone() != ResearchProject {
		t.Fatalf("milestone = %v, want Research Project", arc.CurrentMilestone())
	}
	for _, index := range []int{-1, 6} {
		if err := arc.SetCurrent(index); apperrors.CodeOf(err) != apperrors.CodeInvalidMilestoneIndex {
			t.Fatalf("SetCurrent(%d) error = %v", index, err)
		}
	}
	if arc.Current != 3 {
		t.Fatalf("current = %d, want unchanged 3", arc.Current)
	}
}

func TestMilestonesBelongToTheirArcs(t *testing.T) {
	seen := map[Milestone]bool{}
	for _, id := range ArcIDs() {
		arc, _ := NewArc(id)
		if len(arc.Milestones) != 6 {
			t.Fatalf("%s has %d milestones, want 6", id, len(arc.Milestones))
		}
		for _, m := range arc.Milestones {
			if m.Arc() != id {
				t.Fatalf("%v belongs to %s, listed in %s", m, m.Arc(), id)
			}
			seen[m] = true
		}
	}
	if len(seen) != len(Milestones()) {
		t.Fatalf("arcs cover %d milestones, declared %d", len(seen), len(Milestones()))
	}
	for _, m := range Milestones() {
		parsed, ok := ParseMilestone(m.Key())
		if !ok || parsed != m {
			t.Fatalf("ParseMilestone(%q) = %v, %v", m.Key(), parsed, ok)
		}
	}
	if MilestoneUnknown.Valid() {
		t.Fatal("unknown milestone must not be valid")
	}
}

func TestProgressAdvanceSemesterMovesAllArcs(t *testing.T) {
	p := NewProgress()
	p.AdvanceSemester()
	if p.Semester != 2 {
		t.Fatalf("semester = %d, want 2", p.Semester)
	}
	for _, arc := range p.Arcs() {
		if arc.Current != 1 {
			t.Fatalf("%s current = %d, want 1", arc.ID, arc.Current)
		}
	}
	for i := 0; i < 10; i++ {
		p.AdvanceSemester()
	}
	for _, arc := range p.Arcs() {
		if !arc.Finished() {
			t.Fatalf("%s not finished after 11 semesters", arc.ID)
		}
	}
}

func TestChooseMajorPlotOnce(t *testing.T) {
	p := NewProgress()
	if err := p.ChooseMajorPlot(PlotResearchPioneer); err != nil {
		t.Fatalf("choose plot: %v", err)
	}
	if err := p.ChooseMajorPlot(PlotSocialButterfly); apperrors.CodeOf(err) != apperrors.CodeMajorPlotAlreadyChosen {
		t.Fatalf("second choice error = %v", err)
	}
	if p.MajorPlot != PlotResearchPioneer {
		t.Fatalf("plot = %q, want Research Pioneer", p.MajorPlot)
	}
}

func TestAchievementsAreIdempotent(t *testing.T) {
	p := NewProgress()
	p.AddAchievement("Career Planner")
	p.AddAchievement("Career Planner")
	if len(p.Achievements) != 1 || !p.HasAchievement("Career Planner") {
		t.Fatalf("achievements = %v, want one", p.AchievementList())
	}
}

func TestAwarenessIsMonotonic(t *testing.T) {
	p := NewProgress()
	p.RaiseAwareness(5)
	p.RaiseAwareness(-3)
	p.RaiseAwareness(10)
	if p.GlobalAwareness != 15 {
		t.Fatalf("awareness = %d, want 15", p.GlobalAwareness)
	}
}

func TestDecisionsLastWriteWins(t *testing.T) {
	p := NewProgress()
	p.Decide("Internship Focus", "Early Explorer")
	p.Decide("Internship Focus", "Late Bloomer")
	if p.KeyDecisions["Internship Focus"] != "Late Bloomer" {
		t.Fatalf("decision = %q", p.KeyDecisions["Internship Focus"])
	}
}

func TestSummaryListsArcsAndAchievements(t *testing.T) {
	p := NewProgress()
	p.AdjustRelationship("Xahoor", 20)
	p.AddAchievement("Oriented Freshman")
	p.AddAchievement("Career Planner")
	summary := p.Summary()
	for _, want := range []string{
		"Semester: 1",
		"Major Plot: Not chosen yet",
		"Personal Growth: Freshman Orientation",
		"Career Development: Career Center Visit",
		"Relationships: {Xahoor: 20}",
		"Achievements: Career Planner, Oriented Freshman",
	} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary missing %q:\n%s", want, summary)
		}
	}
}
