package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Text writes r as aligned plain text.
func Text(w io.Writer, r Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	status := fmt.Sprintf("semester %d", r.Semester)
	if r.Graduated {
		status = "graduated"
	}
	plot := r.MajorPlot
	if plot == "" {
		plot = "Not chosen yet"
	}

	fmt.Fprintf(tw, "%s\t%s (%s, %s)\n", r.Player, r.Major, r.Difficulty, status)
	fmt.Fprintf(tw, "Major Plot\t%s\n", plot)
	fmt.Fprintf(tw, "GPA\t%.2f\n", r.GPA)
	fmt.Fprintf(tw, "Credits\t%d\n", r.Credits)
	fmt.Fprintf(tw, "Money\t$%d\n", r.Money)
	fmt.Fprintf(tw, "Energy / Stress\t%d / %d (%s)\n", r.Energy, r.Stress, r.Mental)
	fmt.Fprintf(tw, "Global Awareness\t%d\n", r.Awareness)

	if len(r.Courses) > 0 {
		fmt.Fprintln(tw, "\nCourses\tCredits\tGrade")
		for _, c := range r.Courses {
			fmt.Fprintf(tw, "%s\t%d\t%.1f\n", c.Name, c.Credits, c.Grade)
		}
	}
	if len(r.Research) > 0 {
		fmt.Fprintln(tw, "\nResearch\tProgress\t")
		for _, p := range r.Research {
			done := ""
			if p.Completed {
				done = "completed"
			}
			fmt.Fprintf(tw, "%s\t%d%%\t%s\n", p.Name, p.Progress, done)
		}
	}

	fmt.Fprintln(tw, "\nStory Arc\tMilestone\tStep")
	for _, arc := range r.Arcs {
		fmt.Fprintf(tw, "%s\t%s\t%d/%d\n", arc.Name, arc.Milestone, arc.Step, arc.Steps)
	}

	if len(r.Relationships) > 0 {
		fmt.Fprintln(tw, "\nRelationship\tAffinity")
		for _, rel := range r.Relationships {
			fmt.Fprintf(tw, "%s\t%d\n", rel.Name, rel.Affinity)
		}
	}
	if len(r.Decisions) > 0 {
		fmt.Fprintln(tw, "\nDecision\tChoice")
		for _, d := range r.Decisions {
			fmt.Fprintf(tw, "%s\t%s\n", d.Topic, d.Choice)
		}
	}
	if len(r.Checkpoints) > 0 {
		fmt.Fprintln(tw, "\nSemester\tSemester GPA\tCumulative GPA")
		for _, cp := range r.Checkpoints {
			fmt.Fprintf(tw, "%d\t%.2f\t%.2f\n", cp.Semester, cp.SemesterGPA, cp.CumulativeGPA)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	achievements := "none yet"
	if len(r.Achievements) > 0 {
		achievements = strings.Join(r.Achievements, ", ")
	}
	_, err := fmt.Fprintf(w, "\nAchievements: %s\n", achievements)
	return err
}
