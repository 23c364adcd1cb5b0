// Package course models an enrolled course: its assignments, exams, and the
// final grade derived from them.
package course

import (
	"fmt"
	"strconv"

	apperrors "github.com/louisbranch/campuslife/internal/platform/errors"
)

const (
	// AssignmentShare is the weight of the assignment sum in the final grade.
	AssignmentShare = 0.4

	// MidtermShare is the weight of the midterm in the final grade.
	MidtermShare = 0.3

	// FinalShare is the weight of the stored final grade in the final grade.
	FinalShare = 0.3

	MaxGrade = 100.0
)

// Assignment is one graded piece of coursework.
type Assignment struct {
	Name   string
	Weight float64
	Grade  float64
}

// Course is a course the student is enrolled in.
type Course struct {
	Name          string
	Credits       int
	Difficulty    int
	Assignments   []Assignment
	Midterm       float64
	Final         float64
	Attendance    int
	Participation float64
}

// New returns a course with no coursework recorded.
func New(name string, credits, difficulty int) *Course {
	return &Course{
		Name:       name,
		Credits:    credits,
		Difficulty: difficulty,
	}
}

// AddAssignment appends an ungraded assignment.
func (c *Course) AddAssignment(name string, weight float64) error {
	if !(weight >= 0 && weight <= 1) {
		return apperrors.WithMetadata(
			apperrors.CodeInvalidWeight,
			fmt.Sprintf("assignment weight %.2f outside [0,1]", weight),
			map[string]string{"Weight": strconv.FormatFloat(weight, 'f', 2, 64)},
		)
	}
	c.Assignments = append(c.Assignments, Assignment{Name: name, Weight: weight})
	return nil
}

// GradeAssignment records grade for the assignment at index.
func (c *Course) GradeAssignment(index int, grade float64) error {
	if index < 0 || index >= len(c.Assignments) {
		return invalidIndex(index, len(c.Assignments))
	}
	if !(grade >= 0 && grade <= MaxGrade) {
		return apperrors.WithMetadata(
			apperrors.CodeInvalidGrade,
			fmt.Sprintf("grade %.1f outside [0,100]", grade),
			map[string]string{"Grade": strconv.FormatFloat(grade, 'f', 1, 64)},
		)
	}
	c.Assignments[index].Grade = grade
	return nil
}

// AssignmentSum returns the weighted sum of assignment grades.
func (c *Course) AssignmentSum() float64 {
	var sum float64
	for _, a := range c.Assignments {
		sum += a.Grade * a.Weight
	}
	return sum
}

// CalculateFinalGrade stores and returns the course grade. The stored final
// grade is itself an input, so repeated calls drift upward.
func (c *Course) CalculateFinalGrade() float64 {
	c.Final = c.AssignmentSum()*AssignmentShare + c.Midterm*MidtermShare + c.Final*FinalShare
	return c.Final
}

// ProjectedGrade returns what CalculateFinalGrade would store, without
// storing it.
func (c *Course) ProjectedGrade() float64 {
	return c.AssignmentSum()*AssignmentShare + c.Midterm*MidtermShare + c.Final*FinalShare
}

// RecordMidterm sets the midterm score.
func (c *Course) RecordMidterm(score float64) {
	c.Midterm = score
}

// RecordFinal sets the final exam score.
func (c *Course) RecordFinal(score float64) {
	c.Final = score
}

func invalidIndex(index, size int) error {
	return apperrors.WithMetadata(
		apperrors.CodeInvalidIndex,
		fmt.Sprintf("assignment index %d out of range [0,%d)", index, size),
		map[string]string{"Index": strconv.Itoa(index), "Size": strconv.Itoa(size)},
	)
}
