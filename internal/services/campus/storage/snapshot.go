package storage

import (
	"encoding/json"
	"fmt"
	"sort"

	apperrors "github.com/louisbranch/campuslife/internal/platform/errors"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/character"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/course"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/narrative"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/research"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/session"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/world"
)

// Snapshot is the save document.
type Snapshot struct {
	Player         Player `json:"player"`
	CurrentTime    string `json:"current_time"`
	CurrentWeather string `json:"current_weather"`
	StoryProgress  Story  `json:"story_progress"`
}

// Player is the serialized student. Pointer and omitempty fields are
// optional and fall back to new-student defaults.
type Player struct {
	Name             string         `json:"name"`
	Major            string         `json:"major"`
	Difficulty       string         `json:"difficulty,omitempty"`
	Semester         int            `json:"semester"`
	Energy           int            `json:"energy"`
	MaxEnergy        int            `json:"max_energy"`
	GPA              float64        `json:"gpa"`
	Credits          int            `json:"credits"`
	Inventory        []Item         `json:"inventory"`
	Skills           []string       `json:"skills"`
	Money            *int           `json:"money,omitempty"`
	MentalState      string         `json:"mental_state,omitempty"`
	StressLevel      *int           `json:"stress_level,omitempty"`
	Relationships    map[string]int `json:"relationships"`
	Job              *Job           `json:"job"`
	Extracurriculars []string       `json:"extracurriculars,omitempty"`
	Stats            *Stats         `json:"stats,omitempty"`
	ResearchProjects []Project      `json:"research_projects,omitempty"`
	SkillLevels      map[string]int `json:"skill_levels"`
	Courses          []Course       `json:"courses,omitempty"`
}

// Item is a serialized inventory item.
type Item struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value int    `json:"value"`
}

// Job is a serialized part-time job.
type Job struct {
	Title      string `json:"title"`
	HourlyRate int    `json:"hourly_rate"`
}

// Stats are serialized activity counters.
type Stats struct {
	ClassesAttended      int `json:"classes_attended"`
	AssignmentsCompleted int `json:"assignments_completed"`
	SocialEvents         int `json:"social_events"`
	MoneyEarned          int `json:"money_earned"`
}

// Project is a serialized research project.
type Project struct {
	Name       string `json:"name"`
	Difficulty int    `json:"difficulty"`
	Duration   int    `json:"duration"`
	Progress   int    `json:"progress"`
	Completed  bool   `json:"completed"`
}

// Course is a serialized enrolled course.
type Course struct {
	Name          string       `json:"name"`
	Credits       int          `json:"credits"`
	Difficulty    int          `json:"difficulty"`
	Assignments   []Assignment `json:"assignments,omitempty"`
	Midterm       float64      `json:"midterm"`
	Final         float64      `json:"final"`
	Attendance    int          `json:"attendance"`
	Participation float64      `json:"participation"`
}

// Assignment is a serialized course assignment.
type Assignment struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Grade  float64 `json:"grade"`
}

// Story is the serialized narrative progress.
type Story struct {
	Semester        int               `json:"semester"`
	MajorPlot       *string           `json:"major_plot"`
	StoryArcs       map[string]int    `json:"story_arcs"`
	Relationships   map[string]int    `json:"relationships"`
	KeyDecisions    map[string]string `json:"key_decisions"`
	GlobalAwareness int               `json:"global_awareness"`
	Achievements    []string          `json:"achievements"`
}

// Capture serializes the full session graph.
func Capture(sess *session.Session) Snapshot {
	return Snapshot{
		Player:         capturePlayer(sess.Student),
		CurrentTime:    sess.Clock.String(),
		CurrentWeather: string(sess.Weather),
		StoryProgress:  captureStory(sess.Story),
	}
}

func capturePlayer(s *character.Student) Player {
	money := s.Money
	stress := s.Stress
	p := Player{
		Name:             s.Name,
		Major:            s.Major,
		Difficulty:       string(s.Difficulty),
		Semester:         s.Semester,
		Energy:           s.Energy,
		MaxEnergy:        s.MaxEnergy,
		GPA:              s.GPA,
		Credits:          s.Credits,
		Inventory:        make([]Item, 0, len(s.Inventory)),
		Skills:           append([]string{}, s.Skills...),
		Money:            &money,
		MentalState:      string(s.Mental),
		StressLevel:      &stress,
		Relationships:    copyMap(s.Relationships),
		Extracurriculars: append([]string(nil), s.Extracurriculars...),
		Stats: &Stats{
			ClassesAttended:      s.Stats.ClassesAttended,
			AssignmentsCompleted: s.Stats.AssignmentsCompleted,
			SocialEvents:         s.Stats.SocialEvents,
			MoneyEarned:          s.Stats.MoneyEarned,
		},
		SkillLevels: copyMap(s.SkillLevels),
	}
	for _, item := range s.Inventory {
		p.Inventory = append(p.Inventory, Item{Name: item.Name, Type: string(item.Kind), Value: item.Value})
	}
	if s.Job != nil {
		p.Job = &Job{Title: s.Job.Title, HourlyRate: s.Job.HourlyRate}
	}
	for _, project := range s.Research {
		p.ResearchProjects = append(p.ResearchProjects, Project(project))
	}
	for _, c := range s.Courses {
		sc := Course{
			Name:          c.Name,
			Credits:       c.Credits,
			Difficulty:    c.Difficulty,
			Midterm:       c.Midterm,
			Final:         c.Final,
			Attendance:    c.Attendance,
			Participation: c.Participation,
		}
		for _, a := range c.Assignments {
			sc.Assignments = append(sc.Assignments, Assignment(a))
		}
		p.Courses = append(p.Courses, sc)
	}
	return p
}

func captureStory(p *narrative.Progress) Story {
	st := Story{
		Semester:        p.Semester,
		StoryArcs:       make(map[string]int, 4),
		Relationships:   copyMap(p.Relationships),
		KeyDecisions:    copyMap(p.KeyDecisions),
		GlobalAwareness: p.GlobalAwareness,
		Achievements:    p.AchievementList(),
	}
	if p.MajorPlot != "" {
		plot := string(p.MajorPlot)
		st.MajorPlot = &plot
	}
	for _, arc := range p.Arcs() {
		st.StoryArcs[string(arc.ID)] = arc.Current
	}
	return st
}

// Restore rebuilds a session from a snapshot.
func Restore(snap Snapshot) (*session.Session, error) {
	student, err := restorePlayer(snap.Player)
	if err != nil {
		return nil, err
	}
	clock, err := world.ParseClock(snap.CurrentTime)
	if err != nil {
		return nil, malformed("current_time", err.Error())
	}
	weather, ok := world.ParseWeather(snap.CurrentWeather)
	if !ok {
		return nil, malformed("current_weather", fmt.Sprintf("unknown weather %q", snap.CurrentWeather))
	}
	story, err := restoreStory(snap.StoryProgress)
	if err != nil {
		return nil, err
	}
	return &session.Session{Student: student, Story: story, Clock: clock, Weather: weather}, nil
}

func restorePlayer(p Player) (*character.Student, error) {
	difficulty := character.DifficultyMedium
	if p.Difficulty != "" {
		parsed, ok := character.ParseDifficulty(p.Difficulty)
		if !ok {
			return nil, malformed("player.difficulty", fmt.Sprintf("unknown difficulty %q", p.Difficulty))
		}
		difficulty = parsed
	}
	if p.Semester < 1 {
		return nil, malformed("player.semester", fmt.Sprintf("invalid semester %d", p.Semester))
	}
	s := character.New(p.Name, p.Major, difficulty)
	s.Semester = p.Semester
	s.Energy = p.Energy
	s.MaxEnergy = p.MaxEnergy
	s.GPA = p.GPA
	s.Credits = p.Credits
	for _, item := range p.Inventory {
		kind := character.ItemKind(item.Type)
		if !kind.Valid() {
			return nil, malformed("player.inventory", fmt.Sprintf("unknown item type %q", item.Type))
		}
		s.Inventory = append(s.Inventory, character.Item{Name: item.Name, Kind: kind, Value: item.Value})
	}
	if len(p.Skills) > 0 {
		s.Skills = append([]string(nil), p.Skills...)
	}
	if p.Money != nil {
		s.Money = *p.Money
	}
	if p.MentalState != "" {
		mental, ok := character.ParseMentalState(p.MentalState)
		if !ok {
			return nil, malformed("player.mental_state", fmt.Sprintf("unknown mental state %q", p.MentalState))
		}
		s.Mental = mental
	}
	if p.StressLevel != nil {
		s.Stress = *p.StressLevel
	}
	if p.Relationships != nil {
		s.Relationships = copyMap(p.Relationships)
	}
	if p.Job != nil {
		s.Job = &character.Job{Title: p.Job.Title, HourlyRate: p.Job.HourlyRate}
	}
	if len(p.Extracurriculars) > 0 {
		s.Extracurriculars = append([]string(nil), p.Extracurriculars...)
	}
	if p.Stats != nil {
		s.Stats = character.Stats{
			ClassesAttended:      p.Stats.ClassesAttended,
			AssignmentsCompleted: p.Stats.AssignmentsCompleted,
			SocialEvents:         p.Stats.SocialEvents,
			MoneyEarned:          p.Stats.MoneyEarned,
		}
	}
	for _, project := range p.ResearchProjects {
		s.Research = append(s.Research, research.Project(project))
	}
	if p.SkillLevels != nil {
		s.SkillLevels = copyMap(p.SkillLevels)
	}
	for _, sc := range p.Courses {
		c := course.New(sc.Name, sc.Credits, sc.Difficulty)
		c.Midterm = sc.Midterm
		c.Final = sc.Final
		c.Attendance = sc.Attendance
		c.Participation = sc.Participation
		for _, a := range sc.Assignments {
			c.Assignments = append(c.Assignments, course.Assignment(a))
		}
		s.Courses = append(s.Courses, c)
	}
	return s, nil
}

func restoreStory(st Story) (*narrative.Progress, error) {
	if st.Semester < 1 {
		return nil, malformed("story_progress.semester", fmt.Sprintf("invalid semester %d", st.Semester))
	}
	p := narrative.NewProgress()
	p.Semester = st.Semester
	if st.MajorPlot != nil {
		plot, ok := narrative.ParseMajorPlot(*st.MajorPlot)
		if !ok {
			return nil, malformed("story_progress.major_plot", fmt.Sprintf("unknown major plot %q", *st.MajorPlot))
		}
		p.MajorPlot = plot
	}
	for _, id := range sortedKeys(st.StoryArcs) {
		arc, err := p.Arc(narrative.ArcID(id))
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeSaveMalformed, "restore story arcs", err)
		}
		if err := arc.SetCurrent(st.StoryArcs[id]); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeSaveMalformed, "restore story arcs", err)
		}
	}
	if st.Relationships != nil {
		p.Relationships = copyMap(st.Relationships)
	}
	if st.KeyDecisions != nil {
		p.KeyDecisions = copyMap(st.KeyDecisions)
	}
	p.GlobalAwareness = st.GlobalAwareness
	for _, achievement := range st.Achievements {
		p.AddAchievement(achievement)
	}
	return p, nil
}

// requiredFields lists keys a save must carry, by object path.
var requiredFields = map[string][]string{
	"":               {"player", "current_time", "current_weather", "story_progress"},
	"player":         {"name", "major", "semester", "energy", "max_energy", "gpa", "credits", "inventory", "skills"},
	"story_progress": {"semester", "story_arcs"},
}

// Encode writes the snapshot as indented JSON.
func Encode(snap Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeSaveWriteFailed, "encode save", err)
	}
	return data, nil
}

// Decode parses a save document. Missing required fields are
// SAVE_MALFORMED.
func Decode(data []byte) (Snapshot, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return Snapshot{}, apperrors.Wrap(apperrors.CodeSaveMalformed, "decode save", err)
	}
	if err := requireKeys("", root); err != nil {
		return Snapshot{}, err
	}
	for _, section := range []string{"player", "story_progress"} {
		var nested map[string]json.RawMessage
		if err := json.Unmarshal(root[section], &nested); err != nil {
			return Snapshot{}, apperrors.Wrap(apperrors.CodeSaveMalformed, "decode "+section, err)
		}
		if err := requireKeys(section, nested); err != nil {
			return Snapshot{}, err
		}
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, apperrors.Wrap(apperrors.CodeSaveMalformed, "decode save", err)
	}
	return snap, nil
}

func requireKeys(section string, object map[string]json.RawMessage) error {
	for _, key := range requiredFields[section] {
		if _, ok := object[key]; !ok {
			field := key
			if section != "" {
				field = section + "." + key
			}
			return malformed(field, "missing required field")
		}
	}
	return nil
}

func malformed(field, reason string) error {
	return apperrors.WithMetadata(
		apperrors.CodeSaveMalformed,
		fmt.Sprintf("%s: %s", field, reason),
		map[string]string{"Field": field},
	)
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
