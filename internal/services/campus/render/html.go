package render

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// Page renders r as a standalone HTML document.
func Page(r Report) templ.Component {
	title := r.Player + " - Campus Life"
	return layout(title,
		profileSection(r),
		coursesSection(r.Courses),
		arcsSection(r.Arcs),
		checkpointsSection(r),
		achievementsSection(r.Achievements),
	)
}

func layout(title string, sections ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
		h.text(title)
		h.raw(`</title></head><body><main class="report"><h1>`)
		h.text(title)
		h.raw(`</h1>`)
		if h.err != nil {
			return h.err
		}
		for _, section := range sections {
			if err := section.Render(ctx, w); err != nil {
				return err
			}
		}
		h.raw(`</main></body></html>`)
		return h.err
	})
}

func profileSection(r Report) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		status := "Semester " + strconv.Itoa(r.Semester)
		if r.Graduated {
			status = "Graduated"
		}
		plot := r.MajorPlot
		if plot == "" {
			plot = "Not chosen yet"
		}
		h := &htmlWriter{w: w}
		h.raw(`<section id="profile"><h2>Profile</h2><dl>`)
		h.term("Major", r.Major)
		h.term("Difficulty", r.Difficulty)
		h.term("Status", status)
		h.term("Major Plot", plot)
		h.term("GPA", fmt.Sprintf("%.2f", r.GPA))
		h.term("Credits", strconv.Itoa(r.Credits))
		h.term("Money", "$"+strconv.Itoa(r.Money))
		h.term("Mental State", r.Mental)
		h.term("Global Awareness", strconv.Itoa(r.Awareness))
		h.raw(`</dl></section>`)
		return h.err
	})
}

func coursesSection(courses []CourseRow) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if len(courses) == 0 {
			return nil
		}
		h := &htmlWriter{w: w}
		h.raw(`<section id="courses"><h2>Courses</h2><table><thead><tr><th>Course</th><th>Credits</th><th>Grade</th></tr></thead><tbody>`)
		for _, c := range courses {
			h.row(c.Name, strconv.Itoa(c.Credits), fmt.Sprintf("%.1f", c.Grade))
		}
		h.raw(`</tbody></table></section>`)
		return h.err
	})
}

func arcsSection(arcs []ArcRow) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<section id="story"><h2>Story</h2><ol>`)
		for _, arc := range arcs {
			if arc.Finished {
				h.raw(`<li class="finished">`)
			} else {
				h.raw(`<li>`)
			}
			h.raw(`<strong>`)
			h.text(arc.Name)
			h.raw(`</strong>: `)
			h.text(arc.Milestone)
			h.raw(`<progress max="`)
			h.text(strconv.Itoa(arc.Steps))
			h.raw(`" value="`)
			h.text(strconv.Itoa(arc.Step))
			h.raw(`"></progress></li>`)
		}
		h.raw(`</ol></section>`)
		return h.err
	})
}

func checkpointsSection(r Report) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if len(r.Checkpoints) == 0 {
			return nil
		}
		best, _ := r.BestSemester()
		h := &htmlWriter{w: w}
		h.raw(`<section id="semesters"><h2>Semesters</h2><table><thead><tr><th>Semester</th><th>Semester GPA</th><th>Cumulative GPA</th></tr></thead><tbody>`)
		for _, cp := range r.Checkpoints {
			if cp.Semester == best.Semester {
				h.raw(`<tr class="best">`)
			} else {
				h.raw(`<tr>`)
			}
			h.cells(strconv.Itoa(cp.Semester), fmt.Sprintf("%.2f", cp.SemesterGPA), fmt.Sprintf("%.2f", cp.CumulativeGPA))
			h.raw(`</tr>`)
		}
		h.raw(`</tbody></table></section>`)
		return h.err
	})
}

func achievementsSection(achievements []string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<section id="achievements"><h2>Achievements</h2>`)
		if len(achievements) == 0 {
			h.raw(`<p>None yet.</p></section>`)
			return h.err
		}
		h.raw(`<ul>`)
		for _, name := range achievements {
			h.raw(`<li>`)
			h.text(name)
			h.raw(`</li>`)
		}
		h.raw(`</ul></section>`)
		return h.err
	})
}

// htmlWriter keeps the first write error so sections read top to bottom.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) term(name, value string) {
	h.raw(`<dt>`)
	h.text(name)
	h.raw(`</dt><dd>`)
	h.text(value)
	h.raw(`</dd>`)
}

func (h *htmlWriter) cells(values ...string) {
	for _, v := range values {
		h.raw(`<td>`)
		h.text(v)
		h.raw(`</td>`)
	}
}

func (h *htmlWriter) row(values ...string) {
	h.raw(`<tr>`)
	h.cells(values...)
	h.raw(`</tr>`)
}
