// Package narrative tracks the story: four milestone arcs advancing once per
// semester, plus the narrative relationships, key decisions, global
// awareness, and achievements earned along the way.
//
// The relationships kept here are separate from the character's own
// friendship map. Events write to whichever namespace they name.
package narrative

import (
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/louisbranch/campuslife/internal/platform/errors"
)

// Progress is the story state of one playthrough.
type Progress struct {
	Semester        int
	MajorPlot       MajorPlot
	Relationships   map[string]int
	KeyDecisions    map[string]string
	GlobalAwareness int
	Achievements    map[string]struct{}

	arcs map[ArcID]*Arc
}

// NewProgress returns story state at the start of semester one.
func NewProgress() *Progress {
	p := &Progress{
		Semester:      1,
		Relationships: map[string]int{},
		KeyDecisions:  map[string]string{},
		Achievements:  map[string]struct{}{},
		arcs:          make(map[ArcID]*Arc, 4),
	}
	for _, id := range ArcIDs() {
		arc, _ := NewArc(id)
		p.arcs[id] = arc
	}
	return p
}

// Arc returns the arc with id.
func (p *Progress) Arc(id ArcID) (*Arc, error) {
	arc, ok := p.arcs[id]
	if !ok {
		return nil, apperrors.WithMetadata(
			apperrors.CodeUnknownArc,
			fmt.Sprintf("unknown arc %q", id),
			map[string]string{"Arc": string(id)},
		)
	}
	return arc, nil
}

// Arcs returns the arcs in dispatch order.
func (p *Progress) Arcs() []*Arc {
	out := make([]*Arc, 0, len(p.arcs))
	for _, id := range ArcIDs() {
		out = append(out, p.arcs[id])
	}
	return out
}

// AdvanceSemester bumps the semester and moves every arc forward once.
func (p *Progress) AdvanceSemester() {
	p.Semester++
	for _, arc := range p.Arcs() {
		arc.Advance()
	}
}

// ChooseMajorPlot commits to plot. It can only be chosen once.
func (p *Progress) ChooseMajorPlot(plot MajorPlot) error {
	if p.MajorPlot != "" {
		return apperrors.WithMetadata(
			apperrors.CodeMajorPlotAlreadyChosen,
			fmt.Sprintf("major plot already set to %s", p.MajorPlot),
			map[string]string{"Plot": string(p.MajorPlot)},
		)
	}
	p.MajorPlot = plot
	return nil
}

// AdjustRelationship adds delta to the narrative relationship with name.
func (p *Progress) AdjustRelationship(name string, delta int) {
	if p.Relationships == nil {
		p.Relationships = map[string]int{}
	}
	p.Relationships[name] += delta
}

// Decide records choice for decision, replacing any earlier choice.
func (p *Progress) Decide(decision, choice string) {
	if p.KeyDecisions == nil {
		p.KeyDecisions = map[string]string{}
	}
	p.KeyDecisions[decision] = choice
}

// RaiseAwareness increases global awareness. Awareness never decreases, so
// non-positive amounts are ignored.
func (p *Progress) RaiseAwareness(amount int) {
	if amount > 0 {
		p.GlobalAwareness += amount
	}
}

// AddAchievement records an achievement; repeats are ignored.
func (p *Progress) AddAchievement(name string) {
	if p.Achievements == nil {
		p.Achievements = map[string]struct{}{}
	}
	p.Achievements[name] = struct{}{}
}

// HasAchievement reports whether name was earned.
func (p *Progress) HasAchievement(name string) bool {
	_, ok := p.Achievements[name]
	return ok
}

// AchievementList returns the achievements sorted by name.
func (p *Progress) AchievementList() []string {
	out := make([]string, 0, len(p.Achievements))
	for name := range p.Achievements {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Summary renders the end-of-game story recap.
func (p *Progress) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Semester: %d\n", p.Semester)
	plot := string(p.MajorPlot)
	if plot == "" {
		plot = "Not chosen yet"
	}
	fmt.Fprintf(&b, "Major Plot: %s\n\n", plot)
	for _, arc := range p.Arcs() {
		fmt.Fprintf(&b, "%s: %s\n", arc.Name, arc.CurrentMilestone().Label())
	}
	fmt.Fprintf(&b, "\nRelationships: %s\n", formatInts(p.Relationships))
	fmt.Fprintf(&b, "Key Decisions: %s\n", formatStrings(p.KeyDecisions))
	fmt.Fprintf(&b, "Global Awareness: %d\n", p.GlobalAwareness)
	fmt.Fprintf(&b, "Achievements: %s\n", strings.Join(p.AchievementList(), ", "))
	return b.String()
}

func formatInts(m map[string]int) string {
	parts := make([]string, 0, len(m))
	for _, key := range sortedKeys(m) {
		parts = append(parts, fmt.Sprintf("%s: %d", key, m[key]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func formatStrings(m map[string]string) string {
	parts := make([]string, 0, len(m))
	for _, key := range sortedKeys(m) {
		parts = append(parts, fmt.Sprintf("%s: %s", key, m[key]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
