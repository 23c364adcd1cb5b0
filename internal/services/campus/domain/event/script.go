package event

import (
	"context"
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/louisbranch/campuslife/internal/services/campus/domain/activity"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/narrative"
	"github.com/louisbranch/campuslife/internal/services/campus/domain/session"
)

const (
	minChoices = 2
	maxChoices = 10
)

//go:embed events.yaml
var embeddedScripts []byte

// Effects are the state changes a choice applies.
type Effects struct {
	GPA           float64           `yaml:"gpa"`
	Stress        int               `yaml:"stress"`
	Energy        int               `yaml:"energy"`
	Money         int               `yaml:"money"`
	Skill         string            `yaml:"skill"`
	SkillLevels   map[string]int    `yaml:"skill_level"`
	Friends       map[string]int    `yaml:"friend"`
	Relationships map[string]int    `yaml:"relationship"`
	Decisions     map[string]string `yaml:"decision"`
	Awareness     int               `yaml:"awareness"`
	Challenge     *Challenge        `yaml:"challenge"`
}

// Challenge runs an academic challenge and applies the matching outcome.
type Challenge struct {
	Name       string  `yaml:"name"`
	Difficulty int     `yaml:"difficulty"`
	Success    Outcome `yaml:"success"`
	Failure    Outcome `yaml:"failure"`
}

// Outcome is narrated text plus effects.
type Outcome struct {
	Text    string  `yaml:"text"`
	Effects Effects `yaml:"effects"`
}

// Choice is one labeled option of a scripted event.
type Choice struct {
	Label   string  `yaml:"label"`
	Outcome string  `yaml:"outcome"`
	Effects Effects `yaml:"effects"`
}

// Script is a data-driven narrative event.
type Script struct {
	Milestone   narrative.Milestone `yaml:"-"`
	Intro       string              `yaml:"intro"`
	Achievement string              `yaml:"achievement"`
	Choices     []Choice            `yaml:"choices"`
}

type scriptFile struct {
	Events map[string]Script `yaml:"events"`
}

// LoadScripts parses the embedded event catalog.
func LoadScripts() ([]Script, error) {
	return ParseScripts(embeddedScripts)
}

// ParseScripts decodes an event catalog keyed by milestone key. Scripts are
// returned in milestone order.
func ParseScripts(data []byte) ([]Script, error) {
	var file scriptFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse event scripts: %w", err)
	}
	scripts := make([]Script, 0, len(file.Events))
	for key, script := range file.Events {
		milestone, ok := narrative.ParseMilestone(key)
		if !ok {
			return nil, fmt.Errorf("event script %q: unknown milestone", key)
		}
		script.Milestone = milestone
		if err := script.validate(); err != nil {
			return nil, fmt.Errorf("event script %q: %w", key, err)
		}
		scripts = append(scripts, script)
	}
	sort.Slice(scripts, func(i, j int) bool { return scripts[i].Milestone < scripts[j].Milestone })
	return scripts, nil
}

func (s Script) validate() error {
	if n := len(s.Choices); n < minChoices || n > maxChoices {
		return fmt.Errorf("has %d choices, want %d-%d", n, minChoices, maxChoices)
	}
	if strings.TrimSpace(s.Achievement) == "" {
		return fmt.Errorf("achievement is required")
	}
	for i, c := range s.Choices {
		if strings.TrimSpace(c.Label) == "" {
			return fmt.Errorf("choice %d: label is required", i+1)
		}
		if ch := c.Effects.Challenge; ch != nil && strings.TrimSpace(ch.Name) == "" {
			return fmt.Errorf("choice %d: challenge name is required", i+1)
		}
	}
	return nil
}

// Handler plays the script.
func (s Script) Handler() Handler {
	return func(ctx context.Context, env activity.Env, sess *session.Session) error {
		env.Println("\n" + s.Intro)
		labels := make([]string, len(s.Choices))
		for i, c := range s.Choices {
			labels[i] = c.Label
		}
		choice, err := env.Prompt.Choose(ctx, labels)
		if err != nil {
			return err
		}
		picked := s.Choices[choice]
		if picked.Outcome != "" {
			env.Println(picked.Outcome)
		}
		Apply(env, sess, picked.Effects)
		sess.Story.AddAchievement(s.Achievement)
		return nil
	}
}

// Apply mutates the session with effects. Character relationships come from
// the friend map; narrative relationships from the relationship map.
func Apply(env activity.Env, sess *session.Session, fx Effects) {
	student := sess.Student
	story := sess.Story

	if fx.GPA != 0 {
		student.AdjustGPA(fx.GPA)
	}
	if fx.Stress != 0 {
		student.AdjustStress(fx.Stress)
	}
	if fx.Energy != 0 {
		student.AdjustEnergy(fx.Energy)
	}
	student.Money += fx.Money
	if fx.Skill != "" {
		student.AddSkill(fx.Skill)
	}
	for _, name := range sortedKeys(fx.SkillLevels) {
		student.RaiseSkillLevel(name, fx.SkillLevels[name])
	}
	for _, name := range sortedKeys(fx.Friends) {
		student.AdjustRelationship(name, fx.Friends[name])
	}
	for _, name := range sortedKeys(fx.Relationships) {
		story.AdjustRelationship(name, fx.Relationships[name])
	}
	for _, decision := range sortedKeys(fx.Decisions) {
		story.Decide(decision, fx.Decisions[decision])
	}
	story.RaiseAwareness(fx.Awareness)

	if ch := fx.Challenge; ch != nil {
		outcome := ch.Failure
		if activity.AcademicChallenge(env, sess, ch.Name, ch.Difficulty) {
			outcome = ch.Success
		}
		if outcome.Text != "" {
			env.Println(outcome.Text)
		}
		Apply(env, sess, outcome.Effects)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
