package character

import (
	"math"
	"testing"

	apperrors "github.com/louisbranch/campuslife/internal/platform/errors"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/course"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/research"
)

type fixedRoller int

func (f fixedRoller) Intn(int) int { return int(f) }

func TestNewStudentDefaults(t *testing.T) {
	s := New("Ada", "Computer Science", DifficultyEasy)
	if s.Semester != 1 || s.Energy != 100 || s.MaxEnergy != 100 {
		t.Fatalf("student = %+v, want semester 1 with 100/100 energy", s)
	}
	if s.Money != 1000 {
		t.Fatalf("easy money = %d, want 1000", s.Money)
	}
	if s.Mental != MentalGood {
		t.Fatalf("mental = %q, want good", s.Mental)
	}
	for _, skill := range []string{"Research", "Writing", "Programming", "Presentation", "Teamwork"} {
		if s.SkillLevels[skill] != 1 {
			t.Fatalf("skill level %s = %d, want 1", skill, s.SkillLevels[skill])
		}
	}

	hard := New("Bo", "Arts", DifficultyHard)
	if hard.Money != 500 {
		t.Fatalf("hard money = %d, want 500", hard.Money)
	}
	unknown := New("Cy", "Arts", Difficulty("legendary"))
	if unknown.Difficulty != DifficultyMedium || unknown.Money != 500 {
		t.Fatalf("unknown difficulty = %q/%d, want medium/500", unknown.Difficulty, unknown.Money)
	}
}

func TestMentalStateForBoundaries(t *testing.T) {
	tests := []struct {
		stress int
		want   MentalState
	}{
		{0, MentalExcellent},
		{19, MentalExcellent},
		{20, MentalGood},
		{39, MentalGood},
		{40, MentalOkay},
		{59, MentalOkay},
		{60, MentalStressed},
		{79, MentalStressed},
		{80, MentalBurnout},
		{100, MentalBurnout},
	}
	for _, tt := range tests {
		if got := MentalStateFor(tt.stress); got != tt.want {
			t.Fatalf("MentalStateFor(%d) = %q, want %q", tt.stress, got, tt.want)
		}
	}
}

func TestMentalStateNeverImprovesWithStress(t *testing.T) {
	prev := MentalStateFor(0).Rank()
	for stress := 1; stress <= 100; stress++ {
		rank := MentalStateFor(stress).Rank()
		if rank < prev {
			t.Fatalf("rank dropped at stress %d: %d < %d", stress, rank, prev)
		}
		prev = rank
	}
}

func TestClampInvariantHoldsAcrossMutations(t *testing.T) {
	s := New("Ada", "Engineering", DifficultyMedium)
	deltas := []int{-250, 40, 300, -7, 99, -1000, 12}
	for _, d := range deltas {
		s.AdjustEnergy(d)
		s.AdjustStress(d)
		s.AdjustGPA(float64(d) / 10)
		if s.Energy < 0 || s.Energy > s.MaxEnergy {
			t.Fatalf("energy %d outside [0,%d]", s.Energy, s.MaxEnergy)
		}
		if s.Stress < 0 || s.Stress > MaxStress {
			t.Fatalf("stress %d outside [0,100]", s.Stress)
		}
		if s.GPA < 0 || s.GPA > MaxGPA {
			t.Fatalf("gpa %v outside [0,4]", s.GPA)
		}
	}
}

func TestSetGPAIgnoresNaN(t *testing.T) {
	s := New("Ada", "Engineering", DifficultyMedium)
	s.SetGPA(3.2)
	s.SetGPA(math.NaN())
	if s.GPA != 3.2 {
		t.Fatalf("gpa = %v, want 3.2", s.GPA)
	}
	s.AdjustGPA(math.NaN())
	if s.GPA != 3.2 {
		t.Fatalf("gpa after NaN delta = %v, want 3.2", s.GPA)
	}
}

func TestStressMutationDoesNotRefreshMentalState(t *testing.T) {
	s := New("Ada", "Business", DifficultyMedium)
	s.AdjustStress(95)
	if s.Mental != MentalGood {
		t.Fatalf("mental = %q before refresh, want stale good", s.Mental)
	}
	if got := s.RefreshMentalState(); got != MentalBurnout || s.Mental != MentalBurnout {
		t.Fatalf("RefreshMentalState() = %q, want burnout", got)
	}
}

func TestAddCreditsNeverDecreases(t *testing.T) {
	s := New("Ada", "Business", DifficultyMedium)
	s.AddCredits(3)
	s.AddCredits(-2)
	s.AddCredits(0)
	if s.Credits != 3 {
		t.Fatalf("credits = %d, want 3", s.Credits)
	}
}

func TestRemoveItemByValue(t *testing.T) {
	s := New("Ada", "Arts", DifficultyMedium)
	coffee := Item{Name: "Coffee", Kind: ItemEnergyBoost, Value: 5}
	guide := Item{Name: "Study Guide", Kind: ItemStudyAid, Value: 30}
	s.AddItem(coffee)
	s.AddItem(guide)
	s.AddItem(coffee)

	if s.RemoveItem(Item{Name: "Calculator", Kind: ItemStudyAid, Value: 20}) {
		t.Fatal("expected absent item removal to be a no-op")
	}
	if len(s.Inventory) != 3 {
		t.Fatalf("inventory = %d, want 3", len(s.Inventory))
	}
	if !s.RemoveItem(Item{Name: "Coffee", Kind: ItemEnergyBoost, Value: 5}) {
		t.Fatal("expected equal item to be removed")
	}
	if len(s.Inventory) != 2 || s.Inventory[0] != guide || s.Inventory[1] != coffee {
		t.Fatalf("inventory = %+v, want [guide coffee]", s.Inventory)
	}
}

func TestUseItem(t *testing.T) {
	s := New("Ada", "Arts", DifficultyMedium)
	s.SetEnergy(50)
	s.SetStress(40)
	s.AddItem(Item{Name: "Energy Drink", Kind: ItemEnergyBoost, Value: 10})
	s.AddItem(Item{Name: "Textbook", Kind: ItemStudyAid, Value: 50})

	if _, err := s.UseItem(0); err != nil {
		t.Fatalf("use energy drink: %v", err)
	}
	if s.Energy != 60 {
		t.Fatalf("energy = %d, want 60", s.Energy)
	}
	if _, err := s.UseItem(0); err != nil {
		t.Fatalf("use textbook: %v", err)
	}
	if s.Stress != 0 {
		t.Fatalf("stress = %d, want 0", s.Stress)
	}
	if len(s.Inventory) != 0 {
		t.Fatalf("inventory = %d, want empty", len(s.Inventory))
	}
	if _, err := s.UseItem(0); apperrors.CodeOf(err) != apperrors.CodeInvalidIndex {
		t.Fatalf("UseItem on empty inventory error = %v, want INVALID_INDEX", err)
	}
}

func TestWorkJob(t *testing.T) {
	s := New("Ada", "Business", DifficultyMedium)
	if got := s.WorkJob(4); got != 0 {
		t.Fatalf("WorkJob() without job = %d, want 0", got)
	}
	if s.Energy != 100 || s.Stress != 0 || s.Money != 500 {
		t.Fatalf("student changed without job: %+v", s)
	}

	s.TakeJob(Job{Title: "Cafe Barista", HourlyRate: 15})
	if got := s.WorkJob(4); got != 60 {
		t.Fatalf("WorkJob(4) = %d, want 60", got)
	}
	if s.Energy != 80 {
		t.Fatalf("energy = %d, want 80", s.Energy)
	}
	if s.Stress != 8 {
		t.Fatalf("stress = %d, want 8", s.Stress)
	}
	if s.Money != 560 || s.Stats.MoneyEarned != 60 {
		t.Fatalf("money = %d earned = %d, want 560/60", s.Money, s.Stats.MoneyEarned)
	}
}

func TestWorkOnResearchRaisesSkillOnceOnCompletion(t *testing.T) {
	s := New("Ada", "Medicine", DifficultyMedium)
	s.StartResearch(research.New("Urban Planning Innovations", 2, 80))

	// 8 * (1 + 5) = 48 per session
	for i := 0; i < 2; i++ {
		if _, err := s.WorkOnResearch(0, 8, fixedRoller(4)); err != nil {
			t.Fatalf("work on research: %v", err)
		}
		s.SetEnergy(s.MaxEnergy)
	}
	if s.Research[0].Completed {
		t.Fatal("project completed too early")
	}
	if s.SkillLevels[SkillResearch] != 1 {
		t.Fatalf("research level = %d, want 1", s.SkillLevels[SkillResearch])
	}

	if _, err := s.WorkOnResearch(0, 8, fixedRoller(4)); err != nil {
		t.Fatalf("work on research: %v", err)
	}
	if !s.Research[0].Completed {
		t.Fatal("expected project to complete")
	}
	if s.SkillLevels[SkillResearch] != 2 {
		t.Fatalf("research level = %d, want 2", s.SkillLevels[SkillResearch])
	}

	stress := s.Stress
	gained, err := s.WorkOnResearch(0, 8, fixedRoller(4))
	if err != nil {
		t.Fatalf("work on completed research: %v", err)
	}
	if gained != 0 || s.SkillLevels[SkillResearch] != 2 || s.Stress != stress {
		t.Fatalf("completed project changed: gained=%d level=%d stress=%d", gained, s.SkillLevels[SkillResearch], s.Stress)
	}
}

func TestWorkOnResearchBoundsChecked(t *testing.T) {
	s := New("Ada", "Medicine", DifficultyMedium)
	for _, index := range []int{-1, 0, 3} {
		if _, err := s.WorkOnResearch(index, 2, fixedRoller(0)); apperrors.CodeOf(err) != apperrors.CodeInvalidIndex {
			t.Fatalf("WorkOnResearch(%d) error = %v, want INVALID_INDEX", index, err)
		}
	}
	if s.Energy != 100 {
		t.Fatalf("energy = %d, want untouched", s.Energy)
	}
}

func TestJoinExtracurricularLimits(t *testing.T) {
	s := New("Ada", "Arts", DifficultyMedium)
	for _, club := range []string{"Chess Club", "Drama Club", "Debate Team"} {
		if err := s.JoinExtracurricular(club); err != nil {
			t.Fatalf("join %s: %v", club, err)
		}
	}
	if err := s.JoinExtracurricular("Chess Club"); apperrors.CodeOf(err) != apperrors.CodeExtracurricularAlreadyJoined {
		t.Fatalf("duplicate join error = %v", err)
	}
	if err := s.JoinExtracurricular("Music Band"); apperrors.CodeOf(err) != apperrors.CodeExtracurricularLimitReached {
		t.Fatalf("fourth join error = %v", err)
	}
}

func TestEnrollCourseLimits(t *testing.T) {
	s := New("Ada", "Engineering", DifficultyMedium)
	names := []string{"Introduction to Programming", "Advanced Mathematics", "Business Ethics", "Data Structures"}
	for _, name := range names {
		if err := s.EnrollCourse(course.New(name, 3, 2)); err != nil {
			t.Fatalf("enroll %s: %v", name, err)
		}
	}
	if err := s.EnrollCourse(course.New("World History", 3, 2)); apperrors.CodeOf(err) != apperrors.CodeCourseLimitReached {
		t.Fatalf("fifth course error = %v", err)
	}
	if _, err := s.Course(4); apperrors.CodeOf(err) != apperrors.CodeInvalidIndex {
		t.Fatalf("Course(4) error = %v", err)
	}
	c, err := s.Course(1)
	if err != nil || c.Name != "Advanced Mathematics" {
		t.Fatalf("Course(1) = %v, %v", c, err)
	}

	other := New("Bo", "Engineering", DifficultyMedium)
	_ = other.EnrollCourse(course.New("Data Structures", 4, 3))
	if err := other.EnrollCourse(course.New("Data Structures", 4, 3)); apperrors.CodeOf(err) != apperrors.CodeCourseAlreadyEnrolled {
		t.Fatalf("duplicate course error = %v", err)
	}
}

func TestAdvanceSemester(t *testing.T) {
	s := New("Ada", "Computer Science", DifficultyMedium)
	s.SetEnergy(10)

	if learned := s.AdvanceSemester(); learned != "Computer Science Expertise Level 1" {
		t.Fatalf("semester 2 skill = %q", learned)
	}
	if s.Semester != 2 || s.MaxEnergy != 110 || s.Energy != 110 {
		t.Fatalf("student = semester %d energy %d/%d", s.Semester, s.Energy, s.MaxEnergy)
	}
	if learned := s.AdvanceSemester(); learned != "" {
		t.Fatalf("semester 3 skill = %q, want none", learned)
	}
	s.AdvanceSemester()
	want := []string{"Computer Science Expertise Level 1", "Computer Science Expertise Level 2"}
	if len(s.Skills) != len(want) {
		t.Fatalf("skills = %v, want %v", s.Skills, want)
	}
	for i := range want {
		if s.Skills[i] != want[i] {
			t.Fatalf("skills = %v, want %v", s.Skills, want)
		}
	}
	if s.MaxEnergy != 130 {
		t.Fatalf("max energy = %d, want 130", s.MaxEnergy)
	}
}

func TestRelationshipsAccumulate(t *testing.T) {
	s := New("Ada", "Arts", DifficultyMedium)
	s.AdjustRelationship("Friend_1", 50)
	s.AdjustRelationship("Friend_1", -5)
	if s.Relationships["Friend_1"] != 45 {
		t.Fatalf("affinity = %d, want 45", s.Relationships["Friend_1"])
	}
}

func TestParseDifficultyAndMentalState(t *testing.T) {
	if d, ok := ParseDifficulty(" HARD "); !ok || d != DifficultyHard {
		t.Fatalf("ParseDifficulty = %q, %v", d, ok)
	}
	if _, ok := ParseDifficulty("nightmare"); ok {
		t.Fatal("expected unknown difficulty to fail")
	}
	if m, ok := ParseMentalState("stressed"); !ok || m != MentalStressed {
		t.Fatalf("ParseMentalState = %q, %v", m, ok)
	}
	if _, ok := ParseMentalState("zen"); ok {
		t.Fatal("expected unknown mental state to fail")
	}
}
