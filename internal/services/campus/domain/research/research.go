// Package research models long-running research projects.
package research

// CompletionThreshold is the progress at which a project completes.
const CompletionThreshold = 100

// Roller draws bounded random integers. *rand.Rand satisfies it.
type Roller interface {
	Intn(n int) int
}

// Project is a research project the student works on over time.
type Project struct {
	Name       string
	Difficulty int
	Duration   int
	Progress   int
	Completed  bool
}

// New returns a project with no progress.
func New(name string, difficulty, duration int) Project {
	return Project{Name: name, Difficulty: difficulty, Duration: duration}
}

// Work adds hours*(skillLevel+bonus) progress with bonus drawn from 1..5 and
// returns the amount added. Completed projects do not change.
func (p *Project) Work(hours, skillLevel int, dice Roller) int {
	if p.Completed {
		return 0
	}
	gained := hours * (skillLevel + dice.Intn(5) + 1)
	p.Progress += gained
	if p.Progress >= CompletionThreshold {
		p.Completed = true
	}
	return gained
}

// Catalog returns the projects a student can start.
func Catalog() []Project {
	return []Project{
		New("AI in Education", 3, 100),
		New("Sustainable Energy Solutions", 4, 150),
		New("Blockchain Applications", 3, 120),
		New("Genetic Engineering Ethics", 5, 200),
		New("Urban Planning Innovations", 2, 80),
	}
}
