package character

import "strings"

// Difficulty selects the starting conditions of a new student.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties returns the difficulty tiers in menu order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// ParseDifficulty resolves a stored difficulty tag.
func ParseDifficulty(value string) (Difficulty, bool) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(value))); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, true
	default:
		return "", false
	}
}

// StartingMoney returns the money a new student receives.
func (d Difficulty) StartingMoney() int {
	if d == DifficultyEasy {
		return 1000
	}
	return 500
}

// MentalState is the wellbeing tier derived from stress.
type MentalState string

const (
	MentalExcellent MentalState = "excellent"
	MentalGood      MentalState = "good"
	MentalOkay      MentalState = "okay"
	MentalStressed  MentalState = "stressed"
	MentalBurnout   MentalState = "burnout"
)

var mentalStates = []MentalState{MentalExcellent, MentalGood, MentalOkay, MentalStressed, MentalBurnout}

// MentalStateFor maps stress to its tier at the 20/40/60/80 boundaries.
func MentalStateFor(stress int) MentalState {
	switch {
	case stress < 20:
		return MentalExcellent
	case stress < 40:
		return MentalGood
	case stress < 60:
		return MentalOkay
	case stress < 80:
		return MentalStressed
	default:
		return MentalBurnout
	}
}

// Rank orders tiers from 0 (excellent) to 4 (burnout); unknown tiers rank -1.
func (m MentalState) Rank() int {
	for i, state := range mentalStates {
		if state == m {
			return i
		}
	}
	return -1
}

// ParseMentalState resolves a stored mental state tag.
func ParseMentalState(value string) (MentalState, bool) {
	m := MentalState(strings.TrimSpace(value))
	if m.Rank() < 0 {
		return "", false
	}
	return m, true
}

// ItemKind classifies what an item does when used.
type ItemKind string

const (
	ItemStudyAid    ItemKind = "study_aid"
	ItemEnergyBoost ItemKind = "energy_boost"
)

// Valid reports whether k is a known kind.
func (k ItemKind) Valid() bool {
	return k == ItemStudyAid || k == ItemEnergyBoost
}

// Item is an inventory entry. Items compare by value.
type Item struct {
	Name  string
	Kind  ItemKind
	Value int
}

// Job is a part-time position.
type Job struct {
	Title      string
	HourlyRate int
}

// Stats counts lifetime activity.
type Stats struct {
	ClassesAttended      int
	AssignmentsCompleted int
	SocialEvents         int
	MoneyEarned          int
}

// Majors returns the majors offered at character creation.
func Majors() []string {
	return []string{"Computer Science", "Business", "Engineering", "Arts", "Medicine"}
}

// DefaultSkillLevels returns the skill levels of a new student.
func DefaultSkillLevels() map[string]int {
	return map[string]int{
		SkillResearch:  1,
		"Writing":      1,
		"Programming":  1,
		"Presentation": 1,
		"Teamwork":     1,
	}
}
