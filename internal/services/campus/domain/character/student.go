// Package character owns the student's resources: energy, stress, GPA, money,
// credits, and the collections that grow through play.
package character

import (
	"fmt"
	"math"
	"strconv"

	apperrors "github.com/louisbranch/campuslife/internal/platform/errors"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/course"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/research"
)

const (
	StartingEnergy      = 100
	MaxStress           = 100
	MaxGPA              = 4.0
	MaxCourses          = 4
	MaxExtracurriculars = 3
	SemesterEnergyGain  = 10
	WorkEnergyPerHour   = 5
	WorkStressPerHour   = 2
	SkillResearch       = "Research"
)

// Student is the player character.
type Student struct {
	Name       string
	Major      string
	Difficulty Difficulty
	Semester   int

	Energy    int
	MaxEnergy int
	Stress    int
	GPA       float64
	Money     int
	Credits   int
	Mental    MentalState

	Inventory        []Item
	Skills           []string
	SkillLevels      map[string]int
	Relationships    map[string]int
	Courses          []*course.Course
	Job              *Job
	Extracurriculars []string
	Stats            Stats
	Research         []research.Project
}

// New returns a first-semester student.
func New(name, major string, difficulty Difficulty) *Student {
	if _, ok := ParseDifficulty(string(difficulty)); !ok {
		difficulty = DifficultyMedium
	}
	return &Student{
		Name:          name,
		Major:         major,
		Difficulty:    difficulty,
		Semester:      1,
		Energy:        StartingEnergy,
		MaxEnergy:     StartingEnergy,
		Money:         difficulty.StartingMoney(),
		Mental:        MentalGood,
		SkillLevels:   DefaultSkillLevels(),
		Relationships: map[string]int{},
	}
}

// AdjustEnergy applies delta and clamps to [0,MaxEnergy].
func (s *Student) AdjustEnergy(delta int) {
	s.SetEnergy(s.Energy + delta)
}

// SetEnergy sets energy, clamped to [0,MaxEnergy].
func (s *Student) SetEnergy(value int) {
	s.Energy = clamp(value, 0, s.MaxEnergy)
}

// AdjustStress applies delta and clamps to [0,100]. The mental state is not
// recomputed; see RefreshMentalState.
func (s *Student) AdjustStress(delta int) {
	s.SetStress(s.Stress + delta)
}

// SetStress sets stress, clamped to [0,100].
func (s *Student) SetStress(value int) {
	s.Stress = clamp(value, 0, MaxStress)
}

// AdjustGPA applies delta and clamps to [0,4].
func (s *Student) AdjustGPA(delta float64) {
	s.SetGPA(s.GPA + delta)
}

// SetGPA sets the GPA, clamped to [0,4]. NaN leaves the GPA unchanged.
func (s *Student) SetGPA(value float64) {
	switch {
	case math.IsNaN(value):
		return
	case value < 0:
		s.GPA = 0
	case value > MaxGPA:
		s.GPA = MaxGPA
	default:
		s.GPA = value
	}
}

// AddCredits adds earned credits. Non-positive amounts are ignored.
func (s *Student) AddCredits(n int) {
	if n > 0 {
		s.Credits += n
	}
}

// RefreshMentalState recomputes the mental state from current stress.
func (s *Student) RefreshMentalState() MentalState {
	s.Mental = MentalStateFor(s.Stress)
	return s.Mental
}

// AddItem appends item to the inventory.
func (s *Student) AddItem(item Item) {
	s.Inventory = append(s.Inventory, item)
}

// RemoveItem removes the first inventory entry equal to item.
func (s *Student) RemoveItem(item Item) bool {
	for i, held := range s.Inventory {
		if held == item {
			s.Inventory = append(s.Inventory[:i], s.Inventory[i+1:]...)
			return true
		}
	}
	return false
}

// HasItemKind reports whether any held item is of kind.
func (s *Student) HasItemKind(kind ItemKind) bool {
	for _, held := range s.Inventory {
		if held.Kind == kind {
			return true
		}
	}
	return false
}

// UseItem consumes the inventory entry at index: energy boosts restore
// energy and study aids relieve stress.
func (s *Student) UseItem(index int) (Item, error) {
	if index < 0 || index >= len(s.Inventory) {
		return Item{}, invalidIndex("item", index, len(s.Inventory))
	}
	item := s.Inventory[index]
	switch item.Kind {
	case ItemEnergyBoost:
		s.AdjustEnergy(item.Value)
	case ItemStudyAid:
		s.AdjustStress(-item.Value)
	}
	s.RemoveItem(item)
	return item, nil
}

// AddSkill appends a learned skill.
func (s *Student) AddSkill(name string) {
	s.Skills = append(s.Skills, name)
}

// RaiseSkillLevel adds delta to a skill level; unknown skills start at 0.
func (s *Student) RaiseSkillLevel(name string, delta int) {
	if s.SkillLevels == nil {
		s.SkillLevels = map[string]int{}
	}
	s.SkillLevels[name] += delta
}

// AdjustRelationship adds delta to the student's affinity with name.
func (s *Student) AdjustRelationship(name string, delta int) {
	if s.Relationships == nil {
		s.Relationships = map[string]int{}
	}
	s.Relationships[name] += delta
}

// TakeJob assigns the student a job.
func (s *Student) TakeJob(job Job) {
	s.Job = &job
}

// WorkJob works hours at the current job and returns the earnings, or 0
// without a job.
func (s *Student) WorkJob(hours int) int {
	if s.Job == nil {
		return 0
	}
	earned := hours * s.Job.HourlyRate
	s.Money += earned
	s.AdjustEnergy(-hours * WorkEnergyPerHour)
	s.AdjustStress(hours * WorkStressPerHour)
	s.Stats.MoneyEarned += earned
	return earned
}

// StartResearch adds a project to the student's research.
func (s *Student) StartResearch(project research.Project) {
	s.Research = append(s.Research, project)
}

// WorkOnResearch works hours on the project at index and returns the
// progress made. The Research skill level rises once when the project
// completes.
func (s *Student) WorkOnResearch(index, hours int, dice research.Roller) (int, error) {
	if index < 0 || index >= len(s.Research) {
		return 0, invalidIndex("research project", index, len(s.Research))
	}
	project := &s.Research[index]
	if project.Completed {
		return 0, nil
	}
	gained := project.Work(hours, s.SkillLevels[SkillResearch], dice)
	s.AdjustEnergy(-hours * WorkEnergyPerHour)
	s.AdjustStress(hours * WorkStressPerHour)
	if project.Completed {
		s.RaiseSkillLevel(SkillResearch, 1)
	}
	return gained, nil
}

// JoinExtracurricular adds an activity, up to three distinct ones.
func (s *Student) JoinExtracurricular(name string) error {
	for _, joined := range s.Extracurriculars {
		if joined == name {
			return apperrors.WithMetadata(
				apperrors.CodeExtracurricularAlreadyJoined,
				fmt.Sprintf("already a member of %s", name),
				map[string]string{"Name": name},
			)
		}
	}
	if len(s.Extracurriculars) >= MaxExtracurriculars {
		return apperrors.WithMetadata(
			apperrors.CodeExtracurricularLimitReached,
			fmt.Sprintf("extracurricular limit %d reached", MaxExtracurriculars),
			map[string]string{"Limit": strconv.Itoa(MaxExtracurriculars)},
		)
	}
	s.Extracurriculars = append(s.Extracurriculars, name)
	return nil
}

// EnrollCourse adds a course, up to four with distinct names.
func (s *Student) EnrollCourse(c *course.Course) error {
	for _, enrolled := range s.Courses {
		if enrolled.Name == c.Name {
			return apperrors.WithMetadata(
				apperrors.CodeCourseAlreadyEnrolled,
				fmt.Sprintf("already enrolled in %s", c.Name),
				map[string]string{"Name": c.Name},
			)
		}
	}
	if len(s.Courses) >= MaxCourses {
		return apperrors.WithMetadata(
			apperrors.CodeCourseLimitReached,
			fmt.Sprintf("course limit %d reached", MaxCourses),
			map[string]string{"Limit": strconv.Itoa(MaxCourses)},
		)
	}
	s.Courses = append(s.Courses, c)
	return nil
}

// Course returns the enrolled course at index.
func (s *Student) Course(index int) (*course.Course, error) {
	if index < 0 || index >= len(s.Courses) {
		return nil, invalidIndex("course", index, len(s.Courses))
	}
	return s.Courses[index], nil
}

// AdvanceSemester moves to the next semester, raising max energy and
// restoring energy. Every second semester the student gains a major
// expertise skill, which is returned; otherwise the result is empty.
func (s *Student) AdvanceSemester() string {
	s.Semester++
	s.MaxEnergy += SemesterEnergyGain
	s.Energy = s.MaxEnergy
	if s.Semester%2 != 0 {
		return ""
	}
	learned := fmt.Sprintf("%s Expertise Level %d", s.Major, s.Semester/2)
	s.AddSkill(learned)
	return learned
}

func invalidIndex(kind string, index, size int) error {
	return apperrors.WithMetadata(
		apperrors.CodeInvalidIndex,
		fmt.Sprintf("%s index %d out of range [0,%d)", kind, index, size),
		map[string]string{"Kind": kind, "Index": strconv.Itoa(index), "Size": strconv.Itoa(size)},
	)
}

func clamp(value, minValue, maxValue int) int {
	if value < minValue {
		return minValue
	}
	if value > maxValue {
		return maxValue
	}
	return value
}
